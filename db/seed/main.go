package main

import (
	"log"
	"time"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/pkg/database"
)

func main() {
	cfg := environments.Load()

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	storage := time.FixedZone("storage", int(cfg.Timezone.StorageOffset/time.Second))
	scheduleAt := database.NextMorning(time.Now(), storage)

	result, err := database.SeedTestData(db, scheduleAt)
	if err != nil {
		log.Fatalf("Failed to seed test data: %v", err)
	}

	if result != nil {
		log.Printf("Seeded sequence %s (%d flows, %d leads)", result.SequenceID, result.Flows, result.Leads)
	}

	log.Println("Seed completed successfully")
}
