package main

import (
	"fmt"
	"log"
	"os"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	if err := logger.Initialize("info", "seed.log"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		run(func(s *seed.Seeder) error { return s.SeedDev() }, "Development seed complete")
	case "test":
		run(func(s *seed.Seeder) error { return s.SeedTest() }, "Test seed complete")
	case "clean":
		run(func(s *seed.Seeder) error { return s.Clean() }, "Seed data removed")
	default:
		fmt.Println("Usage: seed [dev|test|clean]")
		fmt.Println("  dev   - Seed development database with realistic data")
		fmt.Println("  test  - Seed test database with a fixed cast")
		fmt.Println("  clean - Remove all seed data (use with caution)")
		os.Exit(1)
	}
}

func run(fn func(*seed.Seeder) error, doneMsg string) {
	if err := database.Initialize(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := fn(seed.NewSeeder(database.DB)); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println(doneMsg)
}
