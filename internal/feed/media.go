package feed

import (
	"net/url"
	"strings"

	"github.com/carloshsbsilva/ringconnect/internal/models"
)

// MediaKind identifies which representation a feed card should render.
type MediaKind string

const (
	MediaNone          MediaKind = "none"
	MediaImage         MediaKind = "image"
	MediaVideo         MediaKind = "video"
	MediaLinkCard      MediaKind = "link_card"
	MediaEmbeddedVideo MediaKind = "embedded_video"
	MediaSharedPost    MediaKind = "shared_post"
)

// MediaDirective tells the client what to render for a post's media slot.
type MediaDirective struct {
	Kind             MediaKind           `json:"kind"`
	URL              string              `json:"url,omitempty"`
	Preview          *models.LinkPreview `json:"preview,omitempty"`
	Provider         string              `json:"provider,omitempty"`
	VideoID          string              `json:"video_id,omitempty"`
	EmbedURL         string              `json:"embed_url,omitempty"`
	SharedFromPostID string              `json:"shared_from_post_id,omitempty"`
}

// SelectMedia picks the media representation for a post. The precedence
// order is load-bearing: records written before the unified media_url /
// media_type columns existed only carry the legacy image_url / video_url /
// link_url columns, and both generations must keep rendering correctly.
//
//  1. A repost renders the quoted original, never its own media fields.
//  2. Unified image.
//  3. Unified video.
//  4. Unified link with preview metadata.
//  5. Legacy image column.
//  6. Legacy video column, with YouTube links turned into embeds.
//  7. Legacy bare link column.
//  8. Nothing.
func SelectMedia(post *models.FeedPost) MediaDirective {
	if post.SharedFromPostID != nil && *post.SharedFromPostID != "" {
		return MediaDirective{Kind: MediaSharedPost, SharedFromPostID: *post.SharedFromPostID}
	}

	if post.MediaURL != "" {
		switch post.MediaType {
		case models.MediaTypeImage:
			return MediaDirective{Kind: MediaImage, URL: post.MediaURL}
		case models.MediaTypeVideo:
			return MediaDirective{Kind: MediaVideo, URL: post.MediaURL}
		}
	}
	if post.MediaType == models.MediaTypeLink && post.LinkURL != "" && post.LinkPreview != nil {
		return MediaDirective{Kind: MediaLinkCard, URL: post.LinkURL, Preview: post.LinkPreview}
	}

	if post.ImageURL != "" {
		return MediaDirective{Kind: MediaImage, URL: post.ImageURL}
	}

	if post.LegacyVideoURL != "" {
		if id := youtubeVideoID(post.LegacyVideoURL); id != "" {
			return MediaDirective{
				Kind:     MediaEmbeddedVideo,
				URL:      post.LegacyVideoURL,
				Provider: "youtube",
				VideoID:  id,
				EmbedURL: "https://www.youtube.com/embed/" + id,
			}
		}
		return MediaDirective{Kind: MediaVideo, URL: post.LegacyVideoURL}
	}

	if post.LinkURL != "" {
		return MediaDirective{Kind: MediaLinkCard, URL: post.LinkURL}
	}

	return MediaDirective{Kind: MediaNone}
}

// youtubeVideoID extracts the video id from a YouTube URL, or returns ""
// when the URL is not recognizably YouTube. Short links carry the id as
// the last path segment; canonical watch URLs carry it in the v parameter.
func youtubeVideoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) > 0 && segments[len(segments)-1] != "" {
			return segments[len(segments)-1]
		}
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id
		}
	}
	return ""
}
