package feed

import (
	"testing"

	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, "viewer")
	assert.Equal(t, 0, summary.Count)
	assert.Empty(t, summary.TopKind)
	assert.Empty(t, summary.ViewerKind)
}

func TestSummarizeCountsAndViewer(t *testing.T) {
	rows := []ReactionRow{
		{UserID: "u1", Kind: models.ReactionGoWild},
		{UserID: "u2", Kind: models.ReactionCleanHit},
		{UserID: "u3", Kind: models.ReactionGoWild},
	}

	summary := Summarize(rows, "u2")
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, models.ReactionGoWild, summary.TopKind)
	assert.Equal(t, models.ReactionCleanHit, summary.ViewerKind)
}

func TestSummarizeTieBreakFirstSeen(t *testing.T) {
	rows := []ReactionRow{
		{UserID: "u1", Kind: models.ReactionOnTarget},
		{UserID: "u2", Kind: models.ReactionTooHeavy},
	}

	summary := Summarize(rows, "u3")
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, models.ReactionOnTarget, summary.TopKind, "first seen kind wins ties")
	assert.Empty(t, summary.ViewerKind)
}

func TestSummarizeViewerNotPresent(t *testing.T) {
	rows := []ReactionRow{
		{UserID: "u1", Kind: models.ReactionChampionMove},
	}

	summary := Summarize(rows, "someone-else")
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, models.ReactionChampionMove, summary.TopKind)
	assert.Empty(t, summary.ViewerKind)
}

func TestApplyReactionToggle(t *testing.T) {
	// Same kind again removes the reaction
	assert.Empty(t, ApplyReaction(models.ReactionGoWild, models.ReactionGoWild))

	// From nothing to a kind
	assert.Equal(t, models.ReactionGoWild, ApplyReaction("", models.ReactionGoWild))

	// Different kind replaces
	assert.Equal(t, models.ReactionTooHeavy, ApplyReaction(models.ReactionGoWild, models.ReactionTooHeavy))

	// Empty request always clears
	assert.Empty(t, ApplyReaction(models.ReactionCleanHit, ""))
	assert.Empty(t, ApplyReaction("", ""))
}

func TestApplyReactionAlternates(t *testing.T) {
	// Repeating the same request alternates between exactly two states
	state := models.ReactionKind("")
	for i := 0; i < 6; i++ {
		state = ApplyReaction(state, models.ReactionOnTarget)
		if i%2 == 0 {
			assert.Equal(t, models.ReactionOnTarget, state)
		} else {
			assert.Empty(t, state)
		}
	}
}
