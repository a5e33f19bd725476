package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CHAT TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestSendMessage() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/messages", suite.athlete.ID, map[string]string{
		"receiver_id": suite.coach.ID,
		"message":     "posso treinar amanhã?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var msg models.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, suite.athlete.ID, msg.SenderID)
	assert.Nil(t, msg.ReadAt)

	var count int64
	suite.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", suite.coach.ID, models.NotificationChatMessage).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func (suite *HandlersTestSuite) TestSendMessageToSelfRejected() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/messages", suite.athlete.ID, map[string]string{
		"receiver_id": suite.athlete.ID,
		"message":     "oi eu",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestConversationAndRead() {
	t := suite.T()

	suite.doJSON("POST", "/api/v1/messages", suite.athlete.ID, map[string]string{
		"receiver_id": suite.coach.ID, "message": "primeira",
	})
	suite.doJSON("POST", "/api/v1/messages", suite.coach.ID, map[string]string{
		"receiver_id": suite.athlete.ID, "message": "segunda",
	})

	w := suite.doJSON("GET", "/api/v1/messages/"+suite.coach.ID, suite.athlete.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var conv struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.Len(t, conv.Messages, 2)

	// The coach's message is unread until the athlete marks it
	w = suite.doJSON("PUT", "/api/v1/messages/"+suite.coach.ID+"/read", suite.athlete.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var marked struct {
		MarkedRead int64 `json:"marked_read"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &marked))
	assert.Equal(t, int64(1), marked.MarkedRead)

	var unread int64
	suite.db.Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND read_at IS NULL", suite.athlete.ID).
		Count(&unread)
	assert.Zero(t, unread)
}

func (suite *HandlersTestSuite) TestInboxSummaries() {
	t := suite.T()

	suite.doJSON("POST", "/api/v1/messages", suite.coach.ID, map[string]string{
		"receiver_id": suite.athlete.ID, "message": "bora",
	})
	suite.doJSON("POST", "/api/v1/messages", suite.coach.ID, map[string]string{
		"receiver_id": suite.athlete.ID, "message": "hoje às 19h",
	})

	w := suite.doJSON("GET", "/api/v1/messages", suite.athlete.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Conversations []ConversationSummary `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Conversations, 1)
	assert.Equal(t, suite.coach.ID, resp.Conversations[0].Peer.UserID)
	assert.Equal(t, "hoje às 19h", resp.Conversations[0].LastMessage.Message)
	assert.Equal(t, int64(2), resp.Conversations[0].UnreadCount)
}

// =============================================================================
// SPARRING TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestSparringRequestLifecycle() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/sparring", suite.athlete.ID, map[string]string{
		"requested_id": suite.coach.ID,
		"message":      "bora trocar uma luva?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var request models.SparringRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))
	assert.Equal(t, models.SparringStatusPending, request.Status)

	// Duplicate pending request is rejected
	w = suite.doJSON("POST", "/api/v1/sparring", suite.athlete.ID, map[string]string{
		"requested_id": suite.coach.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Only the invited side can answer
	w = suite.doJSON("PUT", "/api/v1/sparring/"+request.ID, suite.athlete.ID,
		map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.doJSON("PUT", "/api/v1/sparring/"+request.ID, suite.coach.ID,
		map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)

	// Answering twice fails
	w = suite.doJSON("PUT", "/api/v1/sparring/"+request.ID, suite.coach.ID,
		map[string]string{"status": "declined"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Both sides got notified once each
	var count int64
	suite.db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationSparringRequest).
		Count(&count)
	assert.Equal(t, int64(2), count)
}

func (suite *HandlersTestSuite) TestSparringWithSelfRejected() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/sparring", suite.athlete.ID, map[string]string{
		"requested_id": suite.athlete.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// =============================================================================
// MENTORSHIP TESTS
// =============================================================================

func (suite *HandlersTestSuite) createSession() models.MentorshipSession {
	w := suite.doJSON("POST", "/api/v1/mentorship/sessions", suite.coach.ID, map[string]interface{}{
		"title":            "Análise de luta",
		"description":      "Revisão de vídeo com feedback",
		"session_type":     "online",
		"duration_minutes": 60,
		"price":            150.0,
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code)
	var session models.MentorshipSession
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func (suite *HandlersTestSuite) TestOnlyCoachesOfferSessions() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/mentorship/sessions", suite.athlete.ID, map[string]interface{}{
		"title":            "Sessão",
		"description":      "x",
		"duration_minutes": 60,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestBookSessionAndConfirm() {
	t := suite.T()
	session := suite.createSession()

	w := suite.doJSON("POST", "/api/v1/mentorship/sessions/"+session.ID+"/book",
		suite.athlete.ID, map[string]string{"notes": "quero focar na defesa"})
	require.Equal(t, http.StatusCreated, w.Code)
	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	var count int64
	suite.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", suite.coach.ID, models.NotificationBooking).
		Count(&count)
	assert.Equal(t, int64(1), count)

	w = suite.doJSON("PUT", "/api/v1/mentorship/bookings/"+booking.ID+"/status",
		suite.coach.ID, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Booking
	suite.db.First(&updated, "id = ?", booking.ID)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
}

func (suite *HandlersTestSuite) TestAthleteCanOnlyCancelPending() {
	t := suite.T()
	session := suite.createSession()

	w := suite.doJSON("POST", "/api/v1/mentorship/sessions/"+session.ID+"/book",
		suite.athlete.ID, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	w = suite.doJSON("PUT", "/api/v1/mentorship/bookings/"+booking.ID+"/status",
		suite.athlete.ID, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.doJSON("PUT", "/api/v1/mentorship/bookings/"+booking.ID+"/status",
		suite.athlete.ID, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestCannotBookOwnSession() {
	t := suite.T()
	session := suite.createSession()

	w := suite.doJSON("POST", "/api/v1/mentorship/sessions/"+session.ID+"/book",
		suite.coach.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// =============================================================================
// TRAINING LOG TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestTrainingLogAndStats() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/training-logs", suite.athlete.ID, map[string]interface{}{
		"training_date":  time.Now().AddDate(0, 0, -4).Format("2006-01-02"),
		"duration_hours": 1.5,
		"did_sparring":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.doJSON("POST", "/api/v1/training-logs", suite.athlete.ID, map[string]interface{}{
		"training_date":      time.Now().AddDate(0, 0, -2).Format("2006-01-02"),
		"duration_hours":     2.0,
		"did_sparring_light": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.doJSON("GET", "/api/v1/users/"+suite.athlete.ID+"/training-stats?days=30", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats struct {
			Sessions      int64   `json:"sessions"`
			TotalHours    float64 `json:"total_hours"`
			SparringCount int64   `json:"sparring_count"`
			LightCount    int64   `json:"light_sparring_count"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Stats.Sessions)
	assert.InDelta(t, 3.5, resp.Stats.TotalHours, 0.001)
	assert.Equal(t, int64(1), resp.Stats.SparringCount)
	assert.Equal(t, int64(1), resp.Stats.LightCount)
}

// =============================================================================
// CHAMPIONSHIP TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestChampionshipLifecycle() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/championships", suite.athlete.ID, map[string]interface{}{
		"championship_name": "Copa São Paulo de Boxe",
		"year":              2024,
		"is_champion":       false,
		"position":          3,
		"opponent_name":     "José Aldo Jr",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Championship
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 3, created.Position)
	assert.False(t, created.IsChampion)

	w = suite.doJSON("PUT", "/api/v1/championships/"+created.ID, suite.athlete.ID,
		map[string]interface{}{"position": 1, "is_champion": true})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Championship
	suite.db.First(&updated, "id = ?", created.ID)
	assert.Equal(t, 1, updated.Position)
	assert.True(t, updated.IsChampion)

	w = suite.doJSON("GET", "/api/v1/users/"+suite.athlete.ID+"/championships", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Championships []models.Championship `json:"championships"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Championships, 1)
}

func (suite *HandlersTestSuite) TestChampionshipFutureYear() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/championships", suite.athlete.ID, map[string]interface{}{
		"championship_name": "Mundial de Muay Thai",
		"year":              time.Now().Year() + 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// =============================================================================
// VIDEO TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestUpdateVideoOwnerOnly() {
	t := suite.T()

	video := &models.Video{
		UserID:   suite.athlete.ID,
		Title:    "Sombra de segunda",
		VideoURL: "https://cdn.ringconnect.test/videos/v1.mp4",
		Status:   "ready",
	}
	require.NoError(t, suite.db.Create(video).Error)

	w := suite.doJSON("PUT", "/api/v1/videos/"+video.ID, suite.coach.ID,
		map[string]string{"title": "roubado"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.doJSON("PUT", "/api/v1/videos/"+video.ID, suite.athlete.ID,
		map[string]string{"title": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = suite.doJSON("PUT", "/api/v1/videos/"+video.ID, suite.athlete.ID,
		map[string]string{"title": "Sombra de segunda-feira", "description": "ritmo leve"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Video
	suite.db.First(&updated, "id = ?", video.ID)
	assert.Equal(t, "Sombra de segunda-feira", updated.Title)
	assert.Equal(t, "ritmo leve", updated.Description)
}

func (suite *HandlersTestSuite) TestTrainingLogBadDate() {
	t := suite.T()

	w := suite.doJSON("POST", "/api/v1/training-logs", suite.athlete.ID, map[string]interface{}{
		"training_date":  "25/08/2026",
		"duration_hours": 1.0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
