package handlers

import (
	"net/http"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// CreateMentorshipSession publishes a bookable session. Only coach
// profiles can offer mentorship.
// POST /api/v1/mentorship/sessions
func (h *Handlers) CreateMentorshipSession(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	if user.Profile == nil || user.Profile.UserType != models.UserTypeCoach {
		util.RespondForbidden(c, "only coaches can offer mentorship sessions")
		return
	}

	var req struct {
		Title           string  `json:"title" binding:"required,min=2,max=200"`
		Description     string  `json:"description" binding:"required,max=2000"`
		SessionType     string  `json:"session_type" binding:"omitempty,oneof=online in_person"`
		DurationMinutes int     `json:"duration_minutes" binding:"required,min=15,max=480"`
		Price           float64 `json:"price" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	session := models.MentorshipSession{
		CoachID:         user.ID,
		Title:           req.Title,
		Description:     req.Description,
		SessionType:     req.SessionType,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		util.RespondInternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetMentorshipSessions lists active sessions, optionally for one coach
// GET /api/v1/mentorship/sessions
func (h *Handlers) GetMentorshipSessions(c *gin.Context) {
	limit, offset := util.ParsePagination(c, 20, 100)

	query := database.DB.Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
	if coachID := c.Query("coach_id"); coachID != "" {
		query = query.Where("coach_id = ?", coachID)
	}

	var sessions []models.MentorshipSession
	if err := query.Find(&sessions).Error; err != nil {
		util.RespondInternalError(c, "failed to load sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// UpdateMentorshipSession updates a session the caller owns, including
// deactivating it
// PUT /api/v1/mentorship/sessions/:id
func (h *Handlers) UpdateMentorshipSession(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var session models.MentorshipSession
	if err := database.DB.First(&session, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "session")
		return
	}
	if session.CoachID != userID {
		util.RespondForbidden(c, "only the coach can update a session")
		return
	}

	var req struct {
		Title           *string  `json:"title"`
		Description     *string  `json:"description"`
		SessionType     *string  `json:"session_type"`
		DurationMinutes *int     `json:"duration_minutes"`
		Price           *float64 `json:"price"`
		IsActive        *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.SessionType != nil {
		updates["session_type"] = *req.SessionType
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&session).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update session")
			return
		}
	}

	c.JSON(http.StatusOK, session)
}

// BookSession reserves a mentorship session for the caller
// POST /api/v1/mentorship/sessions/:id/book
func (h *Handlers) BookSession(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var session models.MentorshipSession
	if err := database.DB.First(&session, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "session")
		return
	}
	if !session.IsActive {
		util.RespondValidationError(c, "session", "is no longer available")
		return
	}
	if session.CoachID == userID {
		util.RespondValidationError(c, "session", "cannot book your own session")
		return
	}

	var req struct {
		ScheduledDate *time.Time `json:"scheduled_date"`
		Notes         string     `json:"notes" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.ScheduledDate != nil && req.ScheduledDate.Before(time.Now()) {
		util.RespondValidationError(c, "scheduled_date", "must be in the future")
		return
	}

	booking := models.Booking{
		SessionID:     session.ID,
		AthleteID:     userID,
		CoachID:       session.CoachID,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
		Status:        models.BookingStatusPending,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		util.RespondInternalError(c, "failed to create booking")
		return
	}

	h.createNotification(models.Notification{
		UserID:        session.CoachID,
		Type:          models.NotificationBooking,
		Content:       profileName(userID) + " reservou a sessão " + session.Title,
		ActorID:       &userID,
		RelatedUserID: &userID,
	})

	c.JSON(http.StatusCreated, booking)
}

// GetBookings lists the caller's bookings in both roles. ?role=coach
// narrows to sessions they teach, ?role=athlete to ones they booked.
// GET /api/v1/mentorship/bookings
func (h *Handlers) GetBookings(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	limit, offset := util.ParsePagination(c, 20, 100)

	query := database.DB.Preload("Session").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
	switch c.Query("role") {
	case "coach":
		query = query.Where("coach_id = ?", userID)
	case "athlete":
		query = query.Where("athlete_id = ?", userID)
	default:
		query = query.Where("coach_id = ? OR athlete_id = ?", userID, userID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		util.RespondInternalError(c, "failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatus moves a booking through its lifecycle. The coach
// confirms, completes, or cancels; the athlete may only cancel, and
// only while the booking is pending.
// PUT /api/v1/mentorship/bookings/:id/status
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var booking models.Booking
	if err := database.DB.Preload("Session").First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "booking")
		return
	}

	switch {
	case booking.CoachID == userID:
	case booking.AthleteID == userID:
		if req.Status != models.BookingStatusCancelled {
			util.RespondForbidden(c, "athletes can only cancel a booking")
			return
		}
		if booking.Status != models.BookingStatusPending {
			util.RespondValidationError(c, "status", "only pending bookings can be cancelled")
			return
		}
	default:
		util.RespondForbidden(c, "not your booking")
		return
	}

	if booking.Status == models.BookingStatusCompleted || booking.Status == models.BookingStatusCancelled {
		util.RespondValidationError(c, "status", "booking is already "+booking.Status)
		return
	}

	if err := database.DB.Model(&booking).Update("status", req.Status).Error; err != nil {
		util.RespondInternalError(c, "failed to update booking")
		return
	}

	// Tell the other party
	recipient := booking.AthleteID
	if userID == booking.AthleteID {
		recipient = booking.CoachID
	}
	h.createNotification(models.Notification{
		UserID:        recipient,
		Type:          models.NotificationBooking,
		Content:       "Sua reserva de " + booking.Session.Title + " está " + req.Status,
		ActorID:       &userID,
		RelatedUserID: &userID,
	})

	c.JSON(http.StatusOK, booking)
}
