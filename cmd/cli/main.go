package main

import (
	"fmt"
	"os"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ringconnect",
	Short: "RingConnect admin CLI",
	Long:  `Administrative commands for a RingConnect deployment: inspect counts and manage accounts directly against the database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return database.Initialize()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = database.Close()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts for the main tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := []struct {
			name  string
			model interface{}
		}{
			{"users", &models.User{}},
			{"profiles", &models.Profile{}},
			{"posts", &models.FeedPost{}},
			{"comments", &models.PostComment{}},
			{"reactions", &models.PostReaction{}},
			{"follows", &models.UserFollow{}},
			{"gyms", &models.Gym{}},
			{"chat messages", &models.ChatMessage{}},
			{"notifications", &models.Notification{}},
			{"training logs", &models.TrainingLog{}},
			{"championships", &models.Championship{}},
			{"bookings", &models.Booking{}},
		}
		for _, t := range tables {
			var count int64
			if err := database.DB.Model(t.model).Count(&count).Error; err != nil {
				return fmt.Errorf("counting %s: %w", t.name, err)
			}
			fmt.Printf("%-15s %d\n", t.name, count)
		}
		return nil
	},
}

var promoteCoachCmd = &cobra.Command{
	Use:   "promote-coach <email>",
	Short: "Change a user's profile type to coach",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		var user models.User
		if err := database.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
			return fmt.Errorf("no user with email %s", email)
		}

		result := database.DB.Model(&models.Profile{}).
			Where("user_id = ?", user.ID).
			Update("user_type", models.UserTypeCoach)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %s has no profile", email)
		}

		fmt.Printf("%s is now a coach\n", email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(promoteCoachCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
