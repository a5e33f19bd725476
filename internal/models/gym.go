package models

import (
	"time"
)

// Gym is an academy profile managed by its owner.
type Gym struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OwnerID string `gorm:"not null;index;type:uuid" json:"owner_id"`

	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	LogoURL     string  `json:"logo_url,omitempty"`

	MonthlyFee      float64 `json:"monthly_fee,omitempty"`
	PrivateClassFee float64 `json:"private_class_fee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Gym) TableName() string {
	return "gyms"
}

// GymMember links an athlete to the gym they train at. Unique per pair.
type GymMember struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	GymID  string `gorm:"not null;index;type:uuid" json:"gym_id"`
	Gym    Gym    `gorm:"foreignKey:GymID" json:"-"`
	UserID string `gorm:"not null;index;type:uuid" json:"user_id"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (GymMember) TableName() string {
	return "gym_members"
}

// GymFollower is the torcida relation toward a gym. Unique per pair.
type GymFollower struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	GymID  string `gorm:"not null;index;type:uuid" json:"gym_id"`
	Gym    Gym    `gorm:"foreignKey:GymID" json:"-"`
	UserID string `gorm:"not null;index;type:uuid" json:"user_id"`

	FollowedAt time.Time `gorm:"autoCreateTime" json:"followed_at"`
}

func (GymFollower) TableName() string {
	return "gym_followers"
}
