package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a RingConnect account. Authentication state lives here;
// everything athletes show publicly lives on Profile.
type User struct {
	ID    string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	PasswordHash string `gorm:"type:text;not null" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`

	LastActiveAt *time.Time `json:"last_active_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserType discriminates athlete accounts from coaches and gym owners.
const (
	UserTypeAthlete  = "athlete"
	UserTypeCoach    = "coach"
	UserTypeGymOwner = "gym_owner"
)

// AthleteStatus values for the profile card.
const (
	AthleteStatusActive  = "active"
	AthleteStatusInjured = "injured"
	AthleteStatusRetired = "retired"
)

// Profile is the public athlete/coach profile backing every feed item.
type Profile struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null;type:uuid" json:"user_id"`

	FullName  string `gorm:"not null" json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `gorm:"type:text" json:"bio"`
	Location  string `json:"location"`

	// Fight record
	UserType           string  `gorm:"default:athlete" json:"user_type"`
	AthleteStatus      string  `gorm:"default:active" json:"athlete_status"`
	Category           string  `json:"category"` // boxing, muay thai, mma, bjj...
	ExperienceLevel    string  `json:"experience_level"`
	Gender             string  `json:"gender"`
	Weight             float64 `json:"weight"` // kg
	AmateurFights      int     `gorm:"default:0" json:"amateur_fights"`
	ProfessionalFights int     `gorm:"default:0" json:"professional_fights"`

	// Home gym, denormalized for athletes without a registered Gym
	GymName      string  `json:"gym_name"`
	GymAddress   string  `json:"gym_address"`
	GymLatitude  float64 `json:"gym_latitude"`
	GymLongitude float64 `json:"gym_longitude"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// WeightCategory derives the display category from weight and gender,
// mirroring the get_weight_category database function.
func (p *Profile) WeightCategory() string {
	w := p.Weight
	if w <= 0 {
		return ""
	}
	female := p.Gender == "female"
	switch {
	case w <= 48:
		return "Minimosca"
	case w <= 51:
		return "Mosca"
	case w <= 54:
		return "Galo"
	case w <= 57:
		return "Pena"
	case w <= 60:
		return "Leve"
	case w <= 63.5:
		return "Super Leve"
	case w <= 67:
		return "Meio Médio"
	case w <= 71:
		return "Médio"
	case w <= 75:
		return "Super Médio"
	case w <= 81:
		return "Meio Pesado"
	case w <= 91:
		if female {
			return "Pesado"
		}
		return "Cruzador"
	default:
		return "Pesado"
	}
}
