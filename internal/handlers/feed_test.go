package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// POST TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestCreatePost() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/posts", suite.athlete.ID, map[string]interface{}{
		"content": "primeiro treino da semana",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var view PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, suite.athlete.ID, view.UserID)
	assert.Equal(t, models.PostTypeGeneral, view.PostType)
	assert.Equal(t, "none", string(view.Media.Kind))
	assert.Equal(t, 0, view.Reactions.Count)
}

func (suite *HandlersTestSuite) TestCreateTrainingPost() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/posts", suite.athlete.ID, map[string]interface{}{
		"content":           "2h de sparring hoje",
		"post_type":         "training",
		"training_duration": 120,
		"did_sparring":      true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var view PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, models.PostTypeTraining, view.PostType)
	assert.Equal(t, 120, view.TrainingDuration)
	assert.True(t, view.DidSparring)
}

func (suite *HandlersTestSuite) TestCreatePostInvalidType() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/posts", suite.athlete.ID, map[string]interface{}{
		"content":   "oi",
		"post_type": "announcement",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestCreatePostMediaRequiresType() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/posts", suite.athlete.ID, map[string]interface{}{
		"content":   "olha esse golpe",
		"media_url": "https://cdn.ringconnect.test/posts/x.jpg",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestGetFeedNewestFirst() {
	t := suite.T()

	first := suite.createPost(suite.athlete.ID, "mais antigo")
	second := suite.createPost(suite.coach.ID, "mais novo")

	w := suite.doJSON("GET", "/api/v1/feed", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, second.ID, resp.Posts[0].ID)
	assert.Equal(t, first.ID, resp.Posts[1].ID)
}

func (suite *HandlersTestSuite) TestGetFeedExcludesUnpublished() {
	t := suite.T()

	draft := &models.FeedPost{
		UserID:      suite.athlete.ID,
		PostType:    models.PostTypeGeneral,
		Content:     "rascunho",
		IsPublished: false,
	}
	require.NoError(t, suite.db.Create(draft).Error)

	w := suite.doJSON("GET", "/api/v1/feed", "", nil)
	var resp struct {
		Posts []PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Posts)
}

func (suite *HandlersTestSuite) TestGetFeedFollowingFilter() {
	t := suite.T()

	suite.createPost(suite.coach.ID, "post do coach")
	suite.createPost(suite.athlete.ID, "post do atleta")
	suite.doJSON("POST", "/api/v1/users/"+suite.coach.ID+"/follow", suite.athlete.ID, nil)

	w := suite.doJSON("GET", "/api/v1/feed?following=true", suite.athlete.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, suite.coach.ID, resp.Posts[0].UserID)
}

func (suite *HandlersTestSuite) TestFeedCarriesViewerReaction() {
	t := suite.T()

	post := suite.createPost(suite.coach.ID, "jab cruzado")
	suite.doJSON("POST", "/api/v1/posts/"+post.ID+"/reactions", suite.athlete.ID,
		map[string]string{"reaction_type": "ontarget"})

	w := suite.doJSON("GET", "/api/v1/feed", suite.athlete.ID, nil)
	var resp struct {
		Posts []PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, 1, resp.Posts[0].Reactions.Count)
	assert.Equal(t, models.ReactionKind("ontarget"), resp.Posts[0].Reactions.ViewerKind)

	// Anonymous view has no viewer kind
	w = suite.doJSON("GET", "/api/v1/feed", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Posts[0].Reactions.ViewerKind)
}

// =============================================================================
// SHARE TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestSharePost() {
	t := suite.T()

	original := suite.createPost(suite.coach.ID, "técnica do dia")

	w := suite.doJSON("POST", "/api/v1/posts/"+original.ID+"/share", suite.athlete.ID,
		map[string]string{"caption": "olha isso"})
	require.Equal(t, http.StatusCreated, w.Code)

	var view PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotNil(t, view.SharedFromPostID)
	assert.Equal(t, original.ID, *view.SharedFromPostID)
	assert.Equal(t, "shared_post", string(view.Media.Kind))
	require.NotNil(t, view.SharedPost)
	assert.Equal(t, "técnica do dia", view.SharedPost.Content)
}

func (suite *HandlersTestSuite) TestShareOfShareFlattens() {
	t := suite.T()

	original := suite.createPost(suite.coach.ID, "raiz")

	w := suite.doJSON("POST", "/api/v1/posts/"+original.ID+"/share", suite.athlete.ID,
		map[string]string{"caption": "primeiro share"})
	require.Equal(t, http.StatusCreated, w.Code)
	var firstShare PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &firstShare))

	w = suite.doJSON("POST", "/api/v1/posts/"+firstShare.ID+"/share", suite.coach.ID,
		map[string]string{"caption": "segundo share"})
	require.Equal(t, http.StatusCreated, w.Code)
	var secondShare PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &secondShare))

	require.NotNil(t, secondShare.SharedFromPostID)
	assert.Equal(t, original.ID, *secondShare.SharedFromPostID)
}

func (suite *HandlersTestSuite) TestShareMissingPost() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/posts/00000000-0000-0000-0000-000000000000/share",
		suite.athlete.ID, map[string]string{"caption": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestDeletePostCascades() {
	t := suite.T()

	post := suite.createPost(suite.athlete.ID, "vou apagar")

	w := suite.doJSON("POST", "/api/v1/posts/"+post.ID+"/comments", suite.coach.ID,
		map[string]string{"content": "comentário"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.PostComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	suite.doJSON("POST", "/api/v1/comments/"+comment.ID+"/like", suite.athlete.ID, nil)
	suite.doJSON("POST", "/api/v1/posts/"+post.ID+"/reactions", suite.coach.ID,
		map[string]string{"reaction_type": "gowild"})

	w = suite.doJSON("DELETE", "/api/v1/posts/"+post.ID, suite.athlete.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments, likes, reactions int64
	suite.db.Model(&models.PostComment{}).Where("post_id = ?", post.ID).Count(&comments)
	suite.db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&likes)
	suite.db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&reactions)
	assert.Zero(t, comments)
	assert.Zero(t, likes)
	assert.Zero(t, reactions)
}

func (suite *HandlersTestSuite) TestUpdatePostOwnerOnly() {
	t := suite.T()

	post := suite.createPost(suite.athlete.ID, "texto original")

	w := suite.doJSON("PUT", "/api/v1/posts/"+post.ID, suite.coach.ID,
		map[string]string{"content": "invasão"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.doJSON("PUT", "/api/v1/posts/"+post.ID, suite.athlete.ID,
		map[string]string{"content": "texto corrigido"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.FeedPost
	suite.db.First(&updated, "id = ?", post.ID)
	assert.Equal(t, "texto corrigido", updated.Content)
}

func (suite *HandlersTestSuite) TestDeletePostNotOwnerForbidden() {
	t := suite.T()

	post := suite.createPost(suite.athlete.ID, "meu post")

	w := suite.doJSON("DELETE", "/api/v1/posts/"+post.ID, suite.coach.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestGetProfileCounts() {
	t := suite.T()

	suite.createPost(suite.coach.ID, "post 1")
	suite.createPost(suite.coach.ID, "post 2")
	suite.doJSON("POST", "/api/v1/users/"+suite.coach.ID+"/follow", suite.athlete.ID, nil)

	w := suite.doJSON("GET", "/api/v1/users/"+suite.coach.ID, suite.athlete.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		FollowerCount  int64 `json:"follower_count"`
		FollowingCount int64 `json:"following_count"`
		PostCount      int64 `json:"post_count"`
		ViewerFollows  bool  `json:"viewer_follows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.FollowerCount)
	assert.Equal(t, int64(2), resp.PostCount)
	assert.True(t, resp.ViewerFollows)
}
