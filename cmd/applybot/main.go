package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-applybot-automation/internal/applicator"
	"go-applybot-automation/internal/config"
	"go-applybot-automation/internal/database"
	"go-applybot-automation/internal/engine"
	"go-applybot-automation/internal/models"
	"go-applybot-automation/internal/reporter"
)

func main() {
	jobID := flag.String("job", "", "apply to a single job id")
	resumeID := flag.String("resume", "", "resume id to apply with (required)")
	userID := flag.String("user", "", "apply to every 'new' job of this user")
	genericForm := flag.Bool("generic-form", false, "fill common form fields before submitting")
	flag.Parse()

	if *resumeID == "" || (*jobID == "" && *userID == "") {
		log.Fatal("Usage: applybot -resume <id> (-job <id> | -user <id>) [-generic-form]")
	}

	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Database: %s", cfg.DatabasePath)

	//open store; the entry point owns its lifecycle
	store, err := database.Open(cfg.DatabasePath, cfg.MaxConnections)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer store.Close()

	eng := engine.New(cfg, store)

	if cfg.TelegramToken != "" {
		rep, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram reporting disabled: %v", err)
		} else {
			eng.SetReporter(rep)
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	if *genericForm {
		eng.SetSubmitter(applicator.NewGenericForm())
	}

	log.Println("🚀 Starting ApplyBot Automation...")

	if !eng.InitializeBrowser() {
		log.Fatal("❌ Failed to initialize browser")
	}
	defer eng.CloseBrowser()

	//setup context with timeout = 10 mins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *jobID != "" {
		report(eng.ApplyToJob(ctx, *jobID, *resumeID))
		return
	}

	//apply to every new job for the user, one at a time
	jobs, err := store.ListJobsByStatus(ctx, *userID, models.JobStatusNew)
	if err != nil {
		log.Fatalf("❌ Failed to list jobs: %v", err)
	}
	log.Printf("📋 Found %d new jobs for user %s", len(jobs), *userID)

	submitted := 0
	for _, job := range jobs {
		res := eng.ApplyToJob(ctx, job.ID, *resumeID)
		report(res)
		if res.Success {
			submitted++
		}
	}
	log.Printf("🏁 Done. %d/%d applications submitted.", submitted, len(jobs))
}

func report(res engine.Result) {
	if res.Success {
		log.Printf("✅ Submitted, application id: %s", res.ApplicationID)
	} else {
		log.Printf("❌ Failed: %s", res.Error)
	}
}
