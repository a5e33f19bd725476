package models

import (
	"time"
)

// TrainingLog records one training session.
type TrainingLog struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index;type:uuid" json:"user_id"`

	TrainingDate     time.Time `gorm:"not null" json:"training_date"`
	DurationHours    float64   `gorm:"not null" json:"duration_hours"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`
	DidSparring      bool      `gorm:"default:false" json:"did_sparring"`
	DidSparringLight bool      `gorm:"default:false" json:"did_sparring_light"`

	GymID *string `gorm:"type:uuid;index" json:"gym_id,omitempty"`
	Gym   *Gym    `gorm:"foreignKey:GymID" json:"gyms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TrainingLog) TableName() string {
	return "training_logs"
}

// Championship is a competition result shown on the profile.
type Championship struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index;type:uuid" json:"user_id"`

	ChampionshipName string `gorm:"not null" json:"championship_name"`
	Year             int    `gorm:"not null" json:"year"`
	IsChampion       bool   `gorm:"default:false" json:"is_champion"`
	Position         int    `json:"position,omitempty"`
	OpponentName     string `json:"opponent_name,omitempty"`
	Notes            string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Championship) TableName() string {
	return "championships"
}

// Video statuses.
const (
	VideoStatusProcessing = "processing"
	VideoStatusReady      = "ready"
)

// Video is an uploaded technique/fight video.
type Video struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index;type:uuid" json:"user_id"`

	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	VideoURL     string `gorm:"not null" json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Status       string `gorm:"default:ready" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

// MentorshipSession is a bookable offering published by a coach.
type MentorshipSession struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CoachID string `gorm:"not null;index;type:uuid" json:"coach_id"`

	Title           string  `gorm:"not null" json:"title"`
	Description     string  `gorm:"type:text;not null" json:"description"`
	SessionType     string  `json:"session_type,omitempty"` // online, in_person
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"not null" json:"price"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MentorshipSession) TableName() string {
	return "mentorship_sessions"
}

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is an athlete's reservation of a mentorship session.
type Booking struct {
	ID        string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SessionID string            `gorm:"not null;index;type:uuid" json:"session_id"`
	Session   MentorshipSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	AthleteID string            `gorm:"not null;index;type:uuid" json:"athlete_id"`
	CoachID   string            `gorm:"not null;index;type:uuid" json:"coach_id"`

	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	Status        string     `gorm:"default:pending" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
