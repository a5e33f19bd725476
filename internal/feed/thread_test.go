package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThreadEmpty(t *testing.T) {
	assert.Empty(t, BuildThread(nil))
	assert.Empty(t, BuildThread([]CommentRow{}))
}

func TestBuildThreadNesting(t *testing.T) {
	rows := []CommentRow{
		{ID: "1"},
		{ID: "2", ParentCommentID: "1"},
		{ID: "3", ParentCommentID: "99"}, // parent was deleted
	}

	roots := BuildThread(rows)
	require.Len(t, roots, 2)
	assert.Equal(t, "1", roots[0].ID)
	assert.Equal(t, "3", roots[1].ID, "orphaned reply becomes a root")

	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "2", roots[0].Replies[0].ID)
	assert.Empty(t, roots[1].Replies)
}

func TestBuildThreadPreservesInputOrder(t *testing.T) {
	rows := []CommentRow{
		{ID: "c2"},
		{ID: "c1"},
		{ID: "r1", ParentCommentID: "c2"},
		{ID: "r2", ParentCommentID: "c2"},
	}

	roots := BuildThread(rows)
	require.Len(t, roots, 2)
	assert.Equal(t, "c2", roots[0].ID, "must not re-sort roots")
	assert.Equal(t, "c1", roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, "r1", roots[0].Replies[0].ID)
	assert.Equal(t, "r2", roots[0].Replies[1].ID)
}

func TestBuildThreadDeepNestingStaysAttached(t *testing.T) {
	rows := []CommentRow{
		{ID: "a"},
		{ID: "b", ParentCommentID: "a"},
		{ID: "c", ParentCommentID: "b"}, // reply to a reply
	}

	roots := BuildThread(rows)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Replies, 1)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c", roots[0].Replies[0].Replies[0].ID)
}

func TestBuildThreadCarriesViewState(t *testing.T) {
	rows := []CommentRow{
		{ID: "1", LikeCount: 4, ViewerHasLiked: true, Content: "bora"},
	}

	roots := BuildThread(rows)
	require.Len(t, roots, 1)
	assert.Equal(t, 4, roots[0].LikeCount)
	assert.True(t, roots[0].ViewerHasLiked)
	assert.Equal(t, "bora", roots[0].Content)
}
