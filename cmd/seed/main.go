package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"gridspot/internal/bookings"
	"gridspot/internal/holders"
	"gridspot/internal/shared/config"
	"gridspot/internal/shared/database"
	"gridspot/internal/tiers"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	operatorSecret := flag.String("operator-secret", "", "print a bcrypt hash for OPERATOR_SECRET_HASH and exit")
	withDemo := flag.Bool("demo", false, "also seed demo holders and bookings")
	flag.Parse()

	if *operatorSecret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*operatorSecret), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash operator secret: %v", err)
		}
		fmt.Printf("OPERATOR_SECRET_HASH=%s\n", string(hash))
		return
	}

	fmt.Println("🌱 Starting GridSpot Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🌱 Seeding tier configuration...")
	if err := seeder.SeedTiers(); err != nil {
		log.Fatalf("Failed to seed tiers: %v", err)
	}
	fmt.Println("✅ Tier configuration seeded")

	if *withDemo {
		fmt.Println("\n🌱 Seeding demo data...")
		if err := seeder.SeedDemo(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		fmt.Println("✅ Demo data seeded")
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready.")
}

// SeedTiers inserts the default tier rows, leaving operator-tuned rows alone
func (s *Seeder) SeedTiers() error {
	repo := tiers.NewRepository(s.db.GetPostgreSQL())
	return repo.SeedDefaults(context.Background())
}

// SeedDemo creates a handful of holders and active bookings for local
// development
func (s *Seeder) SeedDemo() error {
	ctx := context.Background()
	holderRepo := holders.NewRepository(s.db.GetPostgreSQL())

	demo := []struct {
		name, email string
		x, y        int
		tier        tiers.Tier
		days        int
		display     string
	}{
		{"Ada Example", "ada@example.com", 18, 18, tiers.TierOne, 30, "Ada's Pixel"},
		{"Ben Example", "ben@example.com", 16, 17, tiers.TierTen, 14, "Ben's Corner Shop"},
		{"Cora Example", "cora@example.com", 0, 0, tiers.TierCornerTen, 60, "Cora's Banner"},
		{"Dev Example", "dev@example.com", 5, 30, tiers.TierViral, 7, "Dev's Experiment"},
	}

	for _, d := range demo {
		holder, err := holderRepo.ResolveOrCreate(ctx, d.name, d.email)
		if err != nil {
			return fmt.Errorf("holder %s: %w", d.email, err)
		}

		start := bookings.DateOnly(time.Now())
		booking := &bookings.Booking{
			ID:                uuid.New(),
			SlotX:             d.x,
			SlotY:             d.y,
			Tier:              d.tier,
			HolderID:          holder.ID,
			Status:            bookings.StatusActive,
			StartDate:         start,
			EndDate:           start.AddDate(0, 0, d.days),
			AmountCents:       int64(d.days) * 100,
			CheckoutSessionID: "seed_" + uuid.NewString(),
			DisplayName:       d.display,
			TargetURL:         "https://example.com",
		}
		if err := s.db.GetPostgreSQL().WithContext(ctx).Create(booking).Error; err != nil {
			return fmt.Errorf("booking (%d,%d): %w", d.x, d.y, err)
		}
		fmt.Printf("  • %s on (%d,%d) for %d days\n", d.display, d.x, d.y, d.days)
	}

	return nil
}
