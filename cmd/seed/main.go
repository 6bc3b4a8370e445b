// Command seed fills the database with the demo dataset or generated volume data.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	demo := flag.Bool("demo", true, "Seed the fixed demo accounts and posts")
	numUsers := flag.Int("users", 0, "Number of generated users")
	numPosts := flag.Int("posts", 0, "Number of generated posts")
	maxComments := flag.Int("comments", 3, "Maximum generated comments per post")
	ratio := flag.Float64("published", 0.7, "Share of generated posts that are published")
	randSeed := flag.Int64("seed", 0, "Random seed for generated data (0 picks one)")
	clean := flag.Bool("clean", false, "Remove all users, posts and comments before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()

	if *clean {
		log.Println("Cleaning database...")
		if err := seed.ClearAll(ctx, db); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
	}

	if *demo {
		log.Println("Seeding demo data...")
		if _, err := seed.Demo(ctx, db); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
	}

	if *numUsers > 0 {
		log.Printf("Generating %d users and %d posts...", *numUsers, *numPosts)
		f, err := seed.NewFactory(db, seed.Options{
			Users:          *numUsers,
			Posts:          *numPosts,
			MaxComments:    *maxComments,
			PublishedRatio: *ratio,
			Seed:           *randSeed,
		})
		if err != nil {
			log.Fatalf("Invalid seeding options: %v", err)
		}
		res, err := f.Volume(ctx)
		if err != nil {
			log.Fatalf("Volume seeding failed: %v", err)
		}
		log.Printf("Generated %d users, %d posts, %d comments (password %q)",
			len(res.Users), len(res.Posts), res.Comments, seed.VolumePassword)
	}

	log.Println("Seeding completed successfully")
}
