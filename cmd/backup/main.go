package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-applybot-automation/internal/config"
	"go-applybot-automation/internal/database"
)

func main() {
	out := flag.String("out", "", "backup file path (default: timestamped file under db/backups)")
	flag.Parse()

	cfg := config.Load()

	store, err := database.Open(cfg.DatabasePath, cfg.MaxConnections)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	path, err := store.Backup(ctx, *out)
	if err != nil {
		log.Fatalf("❌ Backup failed: %v", err)
	}
	log.Printf("✅ Backup written to %s", path)
}
