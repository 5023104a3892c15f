// cmd/promo-importer - Bulk-load promo codes from a JSON file
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"selfhack/database"
	"selfhack/models"

	"github.com/joho/godotenv"
)

type promoEntry struct {
	Code         string     `json:"code"`
	Plan         string     `json:"plan"`
	DurationDays int        `json:"duration_days"`
	MaxUses      int        `json:"max_uses"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func main() {
	path := flag.String("file", "./data/promo_codes.json", "path to the promo codes JSON file")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var entries []promoEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d promo codes\n\n", len(entries))

	invalid := 0
	for i, e := range entries {
		if err := validate(e); err != nil {
			fmt.Printf("  [%d] %s: %v\n", i, e.Code, err)
			invalid++
		}
	}
	if invalid > 0 {
		log.Fatalf("%d invalid entries, nothing imported", invalid)
	}

	if *dryRun {
		fmt.Println("Dry run: all entries valid, nothing written")
		return
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	imported := 0
	for _, e := range entries {
		code := models.PromoCode{
			Code:         strings.ToUpper(strings.TrimSpace(e.Code)),
			Plan:         e.Plan,
			DurationDays: e.DurationDays,
			MaxUses:      e.MaxUses,
			IsActive:     true,
			ExpiresAt:    e.ExpiresAt,
		}

		var existing models.PromoCode
		if err := db.Where("code = ?", code.Code).First(&existing).Error; err == nil {
			fmt.Printf("Skipping %s (already exists)\n", code.Code)
			continue
		}

		if err := db.Create(&code).Error; err != nil {
			log.Fatalf("Failed to import %s: %v", code.Code, err)
		}
		imported++
	}

	fmt.Printf("\n✅ Imported %d promo codes\n", imported)
}

func validate(e promoEntry) error {
	if strings.TrimSpace(e.Code) == "" {
		return fmt.Errorf("empty code")
	}
	if !models.PaidPlan(e.Plan) {
		return fmt.Errorf("plan must be premium or pro, got %q", e.Plan)
	}
	if e.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive")
	}
	if e.MaxUses <= 0 {
		return fmt.Errorf("max_uses must be positive")
	}
	if e.ExpiresAt != nil && e.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("expires_at is in the past")
	}
	return nil
}
