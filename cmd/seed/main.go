// Command main runs the database seeder for the classifieds board.
package main

import (
	"flag"
	"log"

	"classifieds/internal/auth"
	"classifieds/internal/config"
	"classifieds/internal/database"
	"classifieds/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numAds := flag.Int("ads", 100, "Number of advertisements to create")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	fakerSeed := flag.Int64("seed", 0, "Faker seed (0 = random)")
	flag.Parse()

	log.Printf("Target: %d users, %d advertisements, clean=%v", *numUsers, *numAds, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create hasher: %v", err)
	}

	s := seed.NewSeeder(db, hasher, *fakerSeed)
	if err := s.Run(seed.Options{
		NumUsers: *numUsers,
		NumAds:   *numAds,
		Clean:    *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All seeded users have the password: %s", seed.DefaultPassword)
}
