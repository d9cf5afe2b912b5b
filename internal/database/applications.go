package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-applybot-automation/internal/models"

	"github.com/doug-martin/goqu/v9"
)

// SaveApplication records one application attempt. Every attempt gets its
// own row; (job_id, resume_id) is deliberately not unique so retries leave
// an audit trail. The referenced job, user and resume must all exist.
func (s *Store) SaveApplication(ctx context.Context, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	if !app.Status.Valid() {
		return fmt.Errorf("invalid application status %q", app.Status)
	}

	app.LastUpdated = time.Now().UTC()

	record := goqu.Record{
		"id":           app.ID,
		"job_id":       app.JobID,
		"user_id":      app.UserID,
		"resume_id":    app.ResumeID,
		"status":       string(app.Status),
		"last_updated": app.LastUpdated,
	}
	if app.AppliedAt != nil {
		record["applied_at"] = *app.AppliedAt
	}
	if app.CoverLetterPath != nil {
		record["cover_letter_path"] = *app.CoverLetterPath
	}
	if app.Notes != nil {
		record["notes"] = *app.Notes
	}

	query, args, err := builder.Insert("applications").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return fmt.Errorf("build application insert: %w", err)
	}

	if err := s.execute(ctx, query, args...); err != nil {
		return fmt.Errorf("save application %s: %w", app.ID, err)
	}
	return nil
}

// GetApplication retrieves an application attempt by id.
func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	query, args, err := builder.From("applications").Prepared(true).
		Select("id", "job_id", "user_id", "resume_id", "cover_letter_path",
			"status", "applied_at", "last_updated", "response_received_at",
			"response_type", "notes").
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build application select: %w", err)
	}

	var app models.Application
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		var coverLetter, responseType, notes sql.NullString
		var appliedAt, responseAt sql.NullTime
		var status string

		row := conn.QueryRowContext(ctx, query, args...)
		err := row.Scan(&app.ID, &app.JobID, &app.UserID, &app.ResumeID,
			&coverLetter, &status, &appliedAt, &app.LastUpdated,
			&responseAt, &responseType, &notes)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("application %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("scan application: %w", err)
		}

		app.Status = models.ApplicationStatus(status)
		if coverLetter.Valid {
			app.CoverLetterPath = &coverLetter.String
		}
		if appliedAt.Valid {
			app.AppliedAt = &appliedAt.Time
		}
		if responseAt.Valid {
			app.ResponseReceivedAt = &responseAt.Time
		}
		if responseType.Valid {
			app.ResponseType = &responseType.String
		}
		if notes.Valid {
			app.Notes = &notes.String
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// HasSubmittedApplication reports whether a submitted attempt already exists
// for the (jobID, resumeID) pair. The engine does not gate on this; callers
// wanting idempotent applies check it first.
func (s *Store) HasSubmittedApplication(ctx context.Context, jobID, resumeID string) (bool, error) {
	query, args, err := builder.From("applications").Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("job_id").Eq(jobID),
			goqu.C("resume_id").Eq(resumeID),
			goqu.C("status").Eq(string(models.ApplicationStatusSubmitted)),
		).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build application count: %w", err)
	}

	var count int
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		if err := conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return fmt.Errorf("count applications: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
