package handlers

import (
	"io"
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/storage"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// GetProfile returns a public profile with its fight record and social
// counts
// GET /api/v1/users/:id
func (h *Handlers) GetProfile(c *gin.Context) {
	viewerID, _ := c.Get("user_id")
	viewer, _ := viewerID.(string)
	targetID := c.Param("id")

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", targetID).First(&profile).Error; err != nil {
		util.RespondNotFound(c, "user")
		return
	}

	var followers, following, posts int64
	database.DB.Model(&models.UserFollow{}).Where("followed_user_id = ?", targetID).Count(&followers)
	database.DB.Model(&models.UserFollow{}).Where("follower_user_id = ?", targetID).Count(&following)
	database.DB.Model(&models.FeedPost{}).Where("user_id = ? AND is_published = ?", targetID, true).Count(&posts)

	viewerFollows := false
	if viewer != "" && viewer != targetID {
		var count int64
		database.DB.Model(&models.UserFollow{}).
			Where("follower_user_id = ? AND followed_user_id = ?", viewer, targetID).
			Count(&count)
		viewerFollows = count > 0
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":         profile,
		"weight_category": profile.WeightCategory(),
		"follower_count":  followers,
		"following_count": following,
		"post_count":      posts,
		"viewer_follows":  viewerFollows,
	})
}

// UpdateProfile updates the caller's own profile
// PUT /api/v1/profile
func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		util.RespondNotFound(c, "profile")
		return
	}

	var req struct {
		FullName           *string  `json:"full_name"`
		Bio                *string  `json:"bio"`
		Location           *string  `json:"location"`
		UserType           *string  `json:"user_type"`
		AthleteStatus      *string  `json:"athlete_status"`
		Category           *string  `json:"category"`
		ExperienceLevel    *string  `json:"experience_level"`
		Gender             *string  `json:"gender"`
		Weight             *float64 `json:"weight"`
		AmateurFights      *int     `json:"amateur_fights"`
		ProfessionalFights *int     `json:"professional_fights"`
		GymName            *string  `json:"gym_name"`
		GymAddress         *string  `json:"gym_address"`
		GymLatitude        *float64 `json:"gym_latitude"`
		GymLongitude       *float64 `json:"gym_longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	if req.UserType != nil {
		switch *req.UserType {
		case models.UserTypeAthlete, models.UserTypeCoach, models.UserTypeGymOwner:
		default:
			util.RespondValidationError(c, "user_type", "must be athlete, coach, or gym_owner")
			return
		}
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.UserType != nil {
		updates["user_type"] = *req.UserType
	}
	if req.AthleteStatus != nil {
		updates["athlete_status"] = *req.AthleteStatus
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ExperienceLevel != nil {
		updates["experience_level"] = *req.ExperienceLevel
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.AmateurFights != nil {
		updates["amateur_fights"] = *req.AmateurFights
	}
	if req.ProfessionalFights != nil {
		updates["professional_fights"] = *req.ProfessionalFights
	}
	if req.GymName != nil {
		updates["gym_name"] = *req.GymName
	}
	if req.GymAddress != nil {
		updates["gym_address"] = *req.GymAddress
	}
	if req.GymLatitude != nil {
		updates["gym_latitude"] = *req.GymLatitude
	}
	if req.GymLongitude != nil {
		updates["gym_longitude"] = *req.GymLongitude
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&profile).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update profile")
			return
		}
		h.syncProfileToSearch(&profile)
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar replaces the caller's avatar image
// POST /api/v1/profile/avatar
func (h *Handlers) UploadAvatar(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if h.uploader == nil {
		util.RespondInternalError(c, "media storage not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondBadRequest(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.RespondInternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondInternalError(c, "failed to read upload")
		return
	}

	result, err := h.uploader.Upload(c.Request.Context(), storage.FileKindAvatar,
		data, userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.RespondValidationError(c, "file", err.Error())
		return
	}

	if err := database.DB.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", result.URL).Error; err != nil {
		util.RespondInternalError(c, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": result.URL})
}

// SearchProfiles searches people by name, gym, location, and bio.
// Elasticsearch serves the query when available; otherwise a SQL
// ILIKE scan keeps search working.
// GET /api/v1/search/profiles
func (h *Handlers) SearchProfiles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		util.RespondValidationError(c, "q", "is required")
		return
	}
	userType := c.Query("user_type")
	category := c.Query("category")
	limit, offset := util.ParsePagination(c, 20, 100)

	if h.search != nil {
		result, err := h.search.SearchProfiles(c.Request.Context(), query, userType, category, limit, offset)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"profiles": result.Profiles,
				"total":    result.Total,
				"source":   "search",
			})
			return
		}
		logger.Warn("profile search failed, falling back to sql", err)
	}

	dbQuery := database.DB.
		Where("full_name ILIKE ? OR gym_name ILIKE ? OR location ILIKE ?",
			"%"+query+"%", "%"+query+"%", "%"+query+"%").
		Order("full_name ASC").
		Limit(limit).
		Offset(offset)
	if userType != "" {
		dbQuery = dbQuery.Where("user_type = ?", userType)
	}
	if category != "" {
		dbQuery = dbQuery.Where("category = ?", category)
	}

	var profiles []models.Profile
	if err := dbQuery.Find(&profiles).Error; err != nil {
		util.RespondInternalError(c, "search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"total":    len(profiles),
		"source":   "database",
	})
}
