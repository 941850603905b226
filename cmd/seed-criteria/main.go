package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"applauncher-backend/config"
	"applauncher-backend/models"
	"applauncher-backend/repository"
	"applauncher-backend/service"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables: %v", err)
	}

	userID := flag.String("user", "dev-user", "owner of the seeded set")
	global := flag.Bool("global", false, "also make the seeded set the global selection")
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	store, closeStore, err := repository.Open(ctx, cfg.Storage,
		os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), nil)
	if err != nil {
		log.Fatalf("Failed to open criteria store: %v", err)
	}
	defer closeStore()

	criteria := service.NewCriteriaService(
		service.WithCriteriaRepository(store),
		service.WithSelectionRepository(store),
	)

	// Check if the user already has sets
	existing, err := criteria.ListCriteria(ctx, *userID)
	if err != nil {
		log.Fatalf("Failed to list criteria: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("User %s already has %d criteria sets (newest: %s)", *userID, len(existing), existing[0].ID)
		return
	}

	set, err := criteria.SaveCriteria(ctx, service.SaveCriteriaRequest{
		UserID: *userID,
		Name:   "Voorbeeld: Subsidieregeling culturele evenementen",
		Criteria: []models.SubsidyCriterion{
			{ID: 1, Text: "De aanvrager is een rechtspersoon zonder winstoogmerk (artikel 2, eerste lid)."},
			{ID: 2, Text: "Het evenement vindt plaats binnen de gemeente (artikel 3)."},
			{ID: 3, Text: "De aanvraag bevat een sluitende begroting (artikel 4:84 Awb)."},
			{ID: 4, Text: "De aanvraag is uiterlijk acht weken voor het evenement ingediend (artikel 5)."},
		},
		Summary: "Voorbeeldregeling voor lokale culturele evenementen.",
	})
	if err != nil {
		log.Fatalf("Failed to save criteria: %v", err)
	}

	if *global {
		seeder := models.User{ID: *userID, Name: "Seed", Role: models.RoleAdmin}
		if err := criteria.SetGlobalSelection(ctx, seeder, set.ID); err != nil {
			log.Fatalf("Failed to set global selection: %v", err)
		}
	}

	fmt.Printf("✅ Criteria set created successfully!\n")
	fmt.Printf("   ID: %s\n", set.ID)
	fmt.Printf("   User: %s\n", set.UserID)
	fmt.Printf("   Name: %s\n", set.Name)
	fmt.Printf("   Global: %t\n", *global)
}
