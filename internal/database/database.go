package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection
func Initialize() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fallback to individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "ringconnect")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	gormLogger := logger.Default
	if os.Getenv("ENVIRONMENT") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	log.Println("Database connected")

	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		log.Printf("Warning: could not create uuid-ossp extension: %v", err)
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.FeedPost{},
		&models.PostComment{},
		&models.CommentLike{},
		&models.CommentMention{},
		&models.PostReaction{},
		&models.UserFollow{},
		&models.Gym{},
		&models.GymMember{},
		&models.GymFollower{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.SparringRequest{},
		&models.TrainingLog{},
		&models.Championship{},
		&models.Video{},
		&models.MentorshipSession{},
		&models.Booking{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// createIndexes creates uniqueness and performance indexes. The pair
// uniqueness rules here are invariants of the data model, not an
// optimization: one reaction per (post, user), one like per
// (comment, user), one directed follow per pair, no self-follow.
func createIndexes() error {
	// Reaction and like uniqueness (toggle semantics depend on these)
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_post_reactions_unique ON post_reactions (post_id, user_id)")
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_comment_likes_unique ON comment_likes (comment_id, user_id)")

	// Torcida uniqueness and the self-follow guard
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_follows_unique ON user_follows (follower_user_id, followed_user_id)")
	DB.Exec("ALTER TABLE user_follows DROP CONSTRAINT IF EXISTS chk_no_self_follow")
	DB.Exec("ALTER TABLE user_follows ADD CONSTRAINT chk_no_self_follow CHECK (follower_user_id <> followed_user_id)")

	// Gym membership/follow pair uniqueness
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_gym_members_unique ON gym_members (gym_id, user_id)")
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_gym_followers_unique ON gym_followers (gym_id, user_id)")

	// Feed queries
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_feed_posts_user_created ON feed_posts (user_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_feed_posts_published_created ON feed_posts (is_published, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_feed_posts_shared_from ON feed_posts (shared_from_post_id) WHERE shared_from_post_id IS NOT NULL")

	// Comment retrieval in creation order
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_post_comments_post_created ON post_comments (post_id, created_at ASC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_post_comments_parent ON post_comments (parent_comment_id) WHERE parent_comment_id IS NOT NULL")

	// Chat history between two users
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_pair ON chat_messages (sender_id, receiver_id, created_at)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_unread ON chat_messages (receiver_id) WHERE read_at IS NULL")

	// Notification bell
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications (user_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (user_id) WHERE read = false")

	// Training log listing and stats
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_training_logs_user_date ON training_logs (user_id, training_date DESC)")

	// Mentorship
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_mentorship_sessions_coach ON mentorship_sessions (coach_id) WHERE is_active = true")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_athlete ON bookings (athlete_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_coach ON bookings (coach_id, created_at DESC)")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
