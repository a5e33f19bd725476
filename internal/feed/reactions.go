// Package feed holds the pure data-shaping logic behind the feed views:
// reaction summarization, comment thread assembly, and media selection.
// Everything here operates on already-fetched rows and never touches the
// database.
package feed

import "github.com/carloshsbsilva/ringconnect/internal/models"

// ReactionRow is one (user, kind) reaction on a post.
type ReactionRow struct {
	UserID string
	Kind   models.ReactionKind
}

// ReactionSummary aggregates the reactions on a single post from the
// perspective of one viewer.
type ReactionSummary struct {
	Count      int                 `json:"count"`
	TopKind    models.ReactionKind `json:"top_kind,omitempty"`
	ViewerKind models.ReactionKind `json:"viewer_kind,omitempty"`
}

// Summarize computes the reaction count, the modal kind, and the viewer's
// own kind from a flat list of reaction rows. Ties for the top kind go to
// the kind seen first in input order, which is what a single left-to-right
// accumulation naturally produces. Empty input yields a zeroed summary.
func Summarize(reactions []ReactionRow, viewerID string) ReactionSummary {
	summary := ReactionSummary{Count: len(reactions)}
	if len(reactions) == 0 {
		return summary
	}

	counts := make(map[models.ReactionKind]int, len(models.ReactionKinds))
	order := make([]models.ReactionKind, 0, len(models.ReactionKinds))
	for _, r := range reactions {
		if counts[r.Kind] == 0 {
			order = append(order, r.Kind)
		}
		counts[r.Kind]++
		if r.UserID == viewerID {
			summary.ViewerKind = r.Kind
		}
	}

	best := 0
	for _, kind := range order {
		if counts[kind] > best {
			best = counts[kind]
			summary.TopKind = kind
		}
	}
	return summary
}

// ApplyReaction implements the reaction toggle: requesting the kind the
// viewer already holds (or no kind at all) clears the reaction, any other
// kind replaces it. current == "" means the viewer has no reaction.
// next == "" means the stored row should be deleted; otherwise the row is
// upserted to next, so repeated delivery of the same request is harmless.
func ApplyReaction(current, requested models.ReactionKind) (next models.ReactionKind) {
	if requested == "" || requested == current {
		return ""
	}
	return requested
}
