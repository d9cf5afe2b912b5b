package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-applybot-automation/internal/applicator"
	"go-applybot-automation/internal/browser"
	"go-applybot-automation/internal/config"
	"go-applybot-automation/internal/database"
	"go-applybot-automation/internal/models"
	"go-applybot-automation/internal/reporter"

	"github.com/google/uuid"
)

// Result is the single failure surface every caller sees: lower-layer faults
// never escape ApplyToJob as errors.
type Result struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Engine orchestrates one end-to-end application attempt at a time. It owns
// exactly one browser session between InitializeBrowser and CloseBrowser and
// holds only request-scoped copies of entities; the store owns all state.
type Engine struct {
	cfg       *config.Config
	store     *database.Store
	browser   browser.Browser
	submitter applicator.Submitter
	reporter  *reporter.TelegramReporter
}

func New(cfg *config.Config, store *database.Store) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     store,
		submitter: applicator.Noop{},
	}
}

// SetSubmitter replaces the form-submission step run between navigation and
// persistence.
func (e *Engine) SetSubmitter(s applicator.Submitter) {
	if s != nil {
		e.submitter = s
	}
}

// SetReporter enables Telegram outcome notifications.
func (e *Engine) SetReporter(r *reporter.TelegramReporter) {
	e.reporter = r
}

// SetBrowser injects a browser directly, bypassing the factory. Used by
// tests and callers shipping their own binding.
func (e *Engine) SetBrowser(b browser.Browser) {
	e.browser = b
}

// InitializeBrowser builds the configured browser binding and acquires its
// session. Any failure is logged and reported as false; nothing panics.
func (e *Engine) InitializeBrowser() bool {
	b, err := browser.Create(e.cfg.Browser.Type, browser.Config{
		NavigationTimeout: time.Duration(e.cfg.Browser.NavigationTimeoutSeconds) * time.Second,
		Humanize:          e.cfg.Browser.Humanize,
		ScreenshotDir:     e.cfg.ScreenshotDir,
	})
	if err != nil {
		log.Printf("❌ Could not create browser: %v", err)
		return false
	}

	if !b.Initialize(e.cfg.Browser.Headless) {
		log.Printf("❌ Browser failed to initialize")
		return false
	}

	e.browser = b
	return true
}

// ApplyToJob runs one application attempt: load job and resume, drive the
// browser through the job's URL and the submission step, then record exactly
// one Application row with a fresh id. Every failure comes back as a Result.
func (e *Engine) ApplyToJob(ctx context.Context, jobID, resumeID string) Result {
	job, jobErr := e.store.GetJob(ctx, jobID)
	resume, resumeErr := e.store.GetResume(ctx, resumeID)

	if errors.Is(jobErr, database.ErrNotFound) || errors.Is(resumeErr, database.ErrNotFound) {
		log.Printf("❌ Job or resume not found (job=%s resume=%s)", jobID, resumeID)
		return Result{Success: false, Error: "Job or resume not found"}
	}
	if jobErr != nil {
		return e.fail(nil, fmt.Sprintf("load job: %v", jobErr))
	}
	if resumeErr != nil {
		return e.fail(nil, fmt.Sprintf("load resume: %v", resumeErr))
	}

	if e.browser == nil {
		log.Printf("❌ Browser not initialized")
		return Result{Success: false, Error: "Browser not initialized"}
	}

	log.Printf("🚀 Applying to %q at %s (%s)", job.Title, job.Company, job.URL)

	if !e.browser.Navigate(job.URL, true) {
		return e.fail(job, fmt.Sprintf("navigation to %s failed", job.URL))
	}

	if err := e.submitter.Submit(ctx, e.browser, job, resume); err != nil {
		return e.fail(job, fmt.Sprintf("form submission failed: %v", err))
	}

	now := time.Now().UTC()
	app := &models.Application{
		ID:        uuid.NewString(),
		JobID:     job.ID,
		UserID:    job.UserID,
		ResumeID:  resume.ID,
		Status:    models.ApplicationStatusSubmitted,
		AppliedAt: &now,
	}
	if err := e.store.SaveApplication(ctx, app); err != nil {
		return e.fail(job, fmt.Sprintf("record application: %v", err))
	}

	// best effort: the application row is the source of truth, the job
	// status just tracks it
	applied := models.JobStatusApplied
	if err := e.store.UpdateJob(ctx, job.ID, database.JobUpdate{Status: &applied, AppliedAt: &now}); err != nil {
		log.Printf("⚠️ Could not mark job %s applied: %v", job.ID, err)
	}

	log.Printf("✅ Application %s submitted for job %s", app.ID, job.ID)
	if e.reporter != nil {
		if err := e.reporter.SendSubmitted(job, app.ID); err != nil {
			log.Printf("⚠️ Could not send telegram report: %v", err)
		}
	}

	return Result{Success: true, ApplicationID: app.ID}
}

// CloseBrowser releases the held browser session; safe to call repeatedly.
func (e *Engine) CloseBrowser() {
	if e.browser != nil {
		e.browser.Close()
		e.browser = nil
	}
}

func (e *Engine) fail(job *models.Job, reason string) Result {
	log.Printf("❌ Application failed: %s", reason)
	if e.reporter != nil && job != nil {
		if err := e.reporter.SendFailed(job, reason); err != nil {
			log.Printf("⚠️ Could not send telegram report: %v", err)
		}
	}
	return Result{Success: false, Error: reason}
}
