package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-applybot-automation/internal/models"

	"github.com/doug-martin/goqu/v9"
)

var jobColumns = []any{
	"id", "user_id", "title", "company", "location", "job_board", "url",
	"description", "status", "match_score", "applied_at", "created_at",
	"last_updated", "notes",
}

// SaveJob inserts a new job row. The user must exist; the status defaults
// to "new" when unset.
func (s *Store) SaveJob(ctx context.Context, job *models.Job) error {
	if job.Status == "" {
		job.Status = models.JobStatusNew
	}
	if !job.Status.Valid() {
		return fmt.Errorf("invalid job status %q", job.Status)
	}
	if job.MatchScore < 0 {
		return fmt.Errorf("match score must be >= 0, got %v", job.MatchScore)
	}

	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.LastUpdated = now

	record := goqu.Record{
		"id":           job.ID,
		"user_id":      job.UserID,
		"title":        job.Title,
		"company":      job.Company,
		"location":     job.Location,
		"job_board":    job.JobBoard,
		"url":          job.URL,
		"description":  job.Description,
		"status":       string(job.Status),
		"match_score":  job.MatchScore,
		"created_at":   job.CreatedAt,
		"last_updated": job.LastUpdated,
	}
	if job.AppliedAt != nil {
		record["applied_at"] = *job.AppliedAt
	}
	if job.Notes != nil {
		record["notes"] = *job.Notes
	}

	query, args, err := builder.Insert("jobs").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return fmt.Errorf("build job insert: %w", err)
	}

	if err := s.execute(ctx, query, args...); err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

// GetJob retrieves a job by id.
func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	query, args, err := builder.From("jobs").Prepared(true).
		Select(jobColumns...).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build job select: %w", err)
	}

	var job *models.Job
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, query, args...)
		j, err := scanJob(row.Scan)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("job %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("scan job: %w", err)
		}
		job = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobsByStatus returns a user's jobs in the given state, newest first.
func (s *Store) ListJobsByStatus(ctx context.Context, userID string, status models.JobStatus) ([]*models.Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid job status %q", status)
	}

	query, args, err := builder.From("jobs").Prepared(true).
		Select(jobColumns...).
		Where(goqu.C("user_id").Eq(userID), goqu.C("status").Eq(string(status))).
		Order(goqu.C("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build job list: %w", err)
	}

	var jobs []*models.Job
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			job, err := scanJob(rows.Scan)
			if err != nil {
				return fmt.Errorf("scan job: %w", err)
			}
			jobs = append(jobs, job)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func scanJob(scan func(dest ...any) error) (*models.Job, error) {
	var job models.Job
	var location, description, notes sql.NullString
	var appliedAt sql.NullTime
	var status string

	err := scan(&job.ID, &job.UserID, &job.Title, &job.Company, &location,
		&job.JobBoard, &job.URL, &description, &status, &job.MatchScore,
		&appliedAt, &job.CreatedAt, &job.LastUpdated, &notes)
	if err != nil {
		return nil, err
	}

	job.Status = models.JobStatus(status)
	job.Location = location.String
	job.Description = description.String
	if appliedAt.Valid {
		job.AppliedAt = &appliedAt.Time
	}
	if notes.Valid {
		job.Notes = &notes.String
	}
	return &job, nil
}

// JobUpdate describes a partial update of a job row. Only non-nil fields are
// written, so arbitrary field names can never reach the query; last_updated
// is always touched.
type JobUpdate struct {
	Title       *string
	Company     *string
	Location    *string
	Description *string
	Status      *models.JobStatus
	MatchScore  *float64
	AppliedAt   *time.Time
	Notes       *string
}

func (u JobUpdate) record() (goqu.Record, error) {
	record := goqu.Record{}
	if u.Title != nil {
		record["title"] = *u.Title
	}
	if u.Company != nil {
		record["company"] = *u.Company
	}
	if u.Location != nil {
		record["location"] = *u.Location
	}
	if u.Description != nil {
		record["description"] = *u.Description
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return nil, fmt.Errorf("invalid job status %q", *u.Status)
		}
		record["status"] = string(*u.Status)
	}
	if u.MatchScore != nil {
		if *u.MatchScore < 0 {
			return nil, fmt.Errorf("match score must be >= 0, got %v", *u.MatchScore)
		}
		record["match_score"] = *u.MatchScore
	}
	if u.AppliedAt != nil {
		record["applied_at"] = *u.AppliedAt
	}
	if u.Notes != nil {
		record["notes"] = *u.Notes
	}

	if len(record) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	return record, nil
}

// UpdateJob applies a validated partial update to the job with the given id.
func (s *Store) UpdateJob(ctx context.Context, id string, update JobUpdate) error {
	record, err := update.record()
	if err != nil {
		return err
	}
	record["last_updated"] = time.Now().UTC()

	query, args, err := builder.Update("jobs").Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build job update: %w", err)
	}

	if err := s.execute(ctx, query, args...); err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	return nil
}
