// Package linkpreview fetches a page and extracts Open Graph metadata for
// link cards, falling back to the page title and hostname when tags are
// missing.
package linkpreview

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/go-resty/resty/v2"
)

const maxBodyBytes = 512 << 10

var (
	ogPattern = map[string]*regexp.Regexp{
		"title":       regexp.MustCompile(`(?is)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']*)["']`),
		"description": regexp.MustCompile(`(?is)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']*)["']`),
		"image":       regexp.MustCompile(`(?is)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']*)["']`),
		"site":        regexp.MustCompile(`(?is)<meta[^>]+property=["']og:site_name["'][^>]+content=["']([^"']*)["']`),
	}
	// Some pages emit content before property
	ogReversed = map[string]*regexp.Regexp{
		"title":       regexp.MustCompile(`(?is)<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:title["']`),
		"description": regexp.MustCompile(`(?is)<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:description["']`),
		"image":       regexp.MustCompile(`(?is)<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:image["']`),
		"site":        regexp.MustCompile(`(?is)<meta[^>]+content=["']([^"']*)["'][^>]+property=["']og:site_name["']`),
	}
	titlePattern    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDescPattern = regexp.MustCompile(`(?is)<meta[^>]+name=["']description["'][^>]+content=["']([^"']*)["']`)
)

// Fetcher retrieves link previews over HTTP.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher with sane timeouts for a user-facing call.
func NewFetcher() *Fetcher {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "RingConnect-LinkPreview/1.0")

	return &Fetcher{client: client}
}

// Fetch downloads the page at rawURL and extracts preview metadata.
// Every field is best-effort; the only hard failures are an invalid URL
// or an unreachable page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkPreview, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid url: %q", rawURL)
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode())
	}

	body := resp.String()
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}

	preview := Parse(body, parsed)
	return preview, nil
}

// Parse extracts preview fields from HTML. Exposed separately so the
// extraction rules are testable without a network.
func Parse(body string, pageURL *url.URL) *models.LinkPreview {
	preview := &models.LinkPreview{URL: pageURL.String()}

	preview.Title = extract(body, "title")
	preview.Description = extract(body, "description")
	preview.Image = extract(body, "image")
	preview.Site = extract(body, "site")

	if preview.Title == "" {
		if m := titlePattern.FindStringSubmatch(body); m != nil {
			preview.Title = strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	if preview.Title == "" {
		preview.Title = pageURL.Hostname()
	}
	if preview.Description == "" {
		if m := metaDescPattern.FindStringSubmatch(body); m != nil {
			preview.Description = strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	if preview.Site == "" {
		preview.Site = pageURL.Hostname()
	}

	// Relative og:image resolves against the page
	if preview.Image != "" {
		if imageURL, err := pageURL.Parse(preview.Image); err == nil {
			preview.Image = imageURL.String()
		}
	}

	return preview
}

func extract(body, field string) string {
	if m := ogPattern[field].FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(html.UnescapeString(m[1]))
	}
	if m := ogReversed[field].FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(html.UnescapeString(m[1]))
	}
	return ""
}
