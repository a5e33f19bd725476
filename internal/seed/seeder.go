package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

var categories = []string{"boxing", "muay_thai", "mma", "bjj", "kickboxing", "wrestling"}

var trainingPhrases = []string{
	"Treino pesado hoje: %s rounds de sparring e muita corda.",
	"Dia de fundamento. %s horas de técnica e sombra.",
	"Pads com o mestre, trabalhando o %s.",
	"Fechamos a semana com trocação leve. Evolução no %s.",
	"Circuito de força e condicionamento, depois %s rounds no saco.",
}

var techniques = []string{"jab", "cruzado", "clinch", "chute baixo", "armlock", "queda"}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	log := func(msg string) {
		logger.Log.Info(msg)
	}

	log("Creating users...")
	users, err := s.seedUsers(100)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log("Creating gyms...")
	gyms, err := s.seedGyms(users, 12)
	if err != nil {
		return fmt.Errorf("failed to seed gyms: %w", err)
	}

	log("Creating posts...")
	posts, err := s.seedPosts(users, gyms, 400)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	log("Creating comments...")
	if err := s.seedComments(users, posts, 800); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	log("Creating reactions...")
	if err := s.seedReactions(users, posts, 1500); err != nil {
		return fmt.Errorf("failed to seed reactions: %w", err)
	}

	log("Creating follows...")
	if err := s.seedFollows(users, 600); err != nil {
		return fmt.Errorf("failed to seed follows: %w", err)
	}

	log("Creating training logs...")
	if err := s.seedTrainingLogs(users, gyms, 500); err != nil {
		return fmt.Errorf("failed to seed training logs: %w", err)
	}

	log("Creating championships...")
	if err := s.seedChampionships(users, 150); err != nil {
		return fmt.Errorf("failed to seed championships: %w", err)
	}

	return nil
}

// SeedTest creates a small fixed cast for end-to-end tests
func (s *Seeder) SeedTest() error {
	specs := []struct {
		email    string
		fullName string
		userType string
	}{
		{"rafael@example.com", "Rafael Souza", models.UserTypeAthlete},
		{"amanda@example.com", "Amanda Lima", models.UserTypeAthlete},
		{"nogueira@example.com", "Mestre Nogueira", models.UserTypeCoach},
		{"carla@example.com", "Carla Dias", models.UserTypeGymOwner},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	for _, spec := range specs {
		var existing models.User
		if err := s.db.Where("email = ?", spec.email).First(&existing).Error; err == nil {
			continue
		}

		user := models.User{
			Email:        spec.email,
			PasswordHash: string(hashed),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create test user %s: %w", spec.email, err)
		}
		profile := models.Profile{
			UserID:   user.ID,
			FullName: spec.fullName,
			UserType: spec.userType,
			Category: "boxing",
			Location: "São Paulo, SP",
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create test profile %s: %w", spec.email, err)
		}
	}

	return nil
}

// Clean wipes all seeded data
func (s *Seeder) Clean() error {
	tables := []string{
		"bookings", "mentorship_sessions", "videos", "championships",
		"training_logs", "sparring_requests", "notifications", "chat_messages",
		"gym_followers", "gym_members", "gyms", "user_follows", "post_reactions",
		"comment_mentions", "comment_likes", "post_comments", "feed_posts",
		"profiles", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Email:        fmt.Sprintf("%s_%d@ringconnect.dev", gofakeit.Username(), i),
			PasswordHash: string(hashed),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}

		userType := models.UserTypeAthlete
		switch {
		case i%10 == 0:
			userType = models.UserTypeCoach
		case i%25 == 0:
			userType = models.UserTypeGymOwner
		}

		profile := models.Profile{
			UserID:             user.ID,
			FullName:           gofakeit.Name(),
			Bio:                gofakeit.Sentence(10),
			Location:           gofakeit.City() + ", " + gofakeit.StateAbr(),
			UserType:           userType,
			Category:           categories[rand.Intn(len(categories))],
			Weight:             float64(gofakeit.Number(52, 120)),
			AmateurFights:      gofakeit.Number(0, 30),
			ProfessionalFights: gofakeit.Number(0, 15),
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		user.Profile = &profile
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedGyms(users []models.User, count int) ([]models.Gym, error) {
	gyms := make([]models.Gym, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		gym := models.Gym{
			OwnerID:         owner.ID,
			Name:            gofakeit.LastName() + " Fight Team",
			Description:     gofakeit.Sentence(12),
			Address:         gofakeit.Street() + ", " + gofakeit.City(),
			Latitude:        gofakeit.Latitude(),
			Longitude:       gofakeit.Longitude(),
			MonthlyFee:      float64(gofakeit.Number(80, 400)),
			PrivateClassFee: float64(gofakeit.Number(50, 250)),
		}
		if err := s.db.Create(&gym).Error; err != nil {
			return nil, err
		}
		gyms = append(gyms, gym)

		// A slice of users joins each gym
		for j := 0; j < gofakeit.Number(3, 15); j++ {
			member := models.GymMember{
				GymID:  gym.ID,
				UserID: users[rand.Intn(len(users))].ID,
			}
			s.db.Create(&member) // dup pairs just fail the unique index
		}
	}
	return gyms, nil
}

func (s *Seeder) seedPosts(users []models.User, gyms []models.Gym, count int) ([]models.FeedPost, error) {
	posts := make([]models.FeedPost, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		content := fmt.Sprintf(
			trainingPhrases[rand.Intn(len(trainingPhrases))],
			techniques[rand.Intn(len(techniques))],
		)

		post := models.FeedPost{
			UserID:      author.ID,
			PostType:    models.PostTypeGeneral,
			Content:     content,
			IsPublished: true,
			CreatedAt:   gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}

		// A third are training posts, some tied to a gym
		if i%3 == 0 {
			post.PostType = models.PostTypeTraining
			post.TrainingDuration = gofakeit.Number(30, 180)
			post.DidSparring = gofakeit.Bool()
			if len(gyms) > 0 && gofakeit.Bool() {
				gymID := gyms[rand.Intn(len(gyms))].ID
				post.GymID = &gymID
			}
		}

		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	// Reshares over existing posts
	for i := 0; i < count/20; i++ {
		original := posts[rand.Intn(len(posts))]
		sharer := users[rand.Intn(len(users))]
		share := models.FeedPost{
			UserID:           sharer.ID,
			PostType:         models.PostTypeGeneral,
			Content:          gofakeit.Sentence(6),
			SharedFromPostID: &original.ID,
			IsPublished:      true,
		}
		if err := s.db.Create(&share).Error; err != nil {
			return nil, err
		}
		posts = append(posts, share)
	}

	return posts, nil
}

func (s *Seeder) seedComments(users []models.User, posts []models.FeedPost, count int) error {
	var parents []models.PostComment
	for i := 0; i < count; i++ {
		comment := models.PostComment{
			PostID:  posts[rand.Intn(len(posts))].ID,
			UserID:  users[rand.Intn(len(users))].ID,
			Content: gofakeit.Sentence(gofakeit.Number(3, 15)),
		}

		// A quarter are replies to an earlier comment on the same post
		if len(parents) > 0 && i%4 == 0 {
			parent := parents[rand.Intn(len(parents))]
			comment.PostID = parent.PostID
			comment.ParentCommentID = &parent.ID
		}

		if err := s.db.Create(&comment).Error; err != nil {
			return err
		}
		if comment.ParentCommentID == nil {
			parents = append(parents, comment)
		}
	}
	return nil
}

func (s *Seeder) seedReactions(users []models.User, posts []models.FeedPost, count int) error {
	kinds := models.ReactionKinds
	for i := 0; i < count; i++ {
		reaction := models.PostReaction{
			PostID:       posts[rand.Intn(len(posts))].ID,
			UserID:       users[rand.Intn(len(users))].ID,
			ReactionType: kinds[rand.Intn(len(kinds))],
		}
		// One reaction per (post, user); collisions just skip
		s.db.Create(&reaction)
	}
	return nil
}

func (s *Seeder) seedFollows(users []models.User, count int) error {
	for i := 0; i < count; i++ {
		follower := users[rand.Intn(len(users))]
		followed := users[rand.Intn(len(users))]
		if follower.ID == followed.ID {
			continue
		}
		follow := models.UserFollow{
			FollowerUserID: follower.ID,
			FollowedUserID: followed.ID,
		}
		s.db.Create(&follow)
	}
	return nil
}

func (s *Seeder) seedTrainingLogs(users []models.User, gyms []models.Gym, count int) error {
	for i := 0; i < count; i++ {
		log := models.TrainingLog{
			UserID:        users[rand.Intn(len(users))].ID,
			TrainingDate:  gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
			DurationHours: float64(gofakeit.Number(1, 6)) * 0.5,
			Notes:         gofakeit.Sentence(8),
			DidSparring:   gofakeit.Bool(),
		}
		if len(gyms) > 0 && gofakeit.Bool() {
			gymID := gyms[rand.Intn(len(gyms))].ID
			log.GymID = &gymID
		}
		if err := s.db.Create(&log).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedChampionships(users []models.User, count int) error {
	events := []string{
		"Copa São Paulo de Boxe", "Campeonato Paulista de MMA",
		"Open Rio de Muay Thai", "Brasileiro de Jiu-Jitsu",
		"Torneio Interacademias", "Desafio Norte-Nordeste",
	}
	for i := 0; i < count; i++ {
		isChampion := gofakeit.Bool()
		position := 1
		if !isChampion {
			position = gofakeit.Number(2, 8)
		}
		championship := models.Championship{
			UserID:           users[rand.Intn(len(users))].ID,
			ChampionshipName: events[rand.Intn(len(events))],
			Year:             gofakeit.Number(2015, time.Now().Year()),
			IsChampion:       isChampion,
			Position:         position,
			OpponentName:     gofakeit.Name(),
		}
		if err := s.db.Create(&championship).Error; err != nil {
			return err
		}
	}
	return nil
}
