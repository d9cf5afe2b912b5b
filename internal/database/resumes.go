package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-applybot-automation/internal/models"

	"github.com/doug-martin/goqu/v9"
)

// SaveResume upserts a resume keyed by id: insert if absent, otherwise only
// file_path, parsed_data and last_updated change. user_id and created_at are
// immutable after the first insert.
func (s *Store) SaveResume(ctx context.Context, resume *models.Resume) error {
	var parsed any
	if resume.ParsedData != nil {
		data, err := json.Marshal(resume.ParsedData)
		if err != nil {
			return fmt.Errorf("marshal parsed resume data: %w", err)
		}
		parsed = string(data)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO resumes (id, user_id, file_path, parsed_data, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id)
		DO UPDATE SET file_path = excluded.file_path, parsed_data = excluded.parsed_data, last_updated = excluded.last_updated`

	if err := s.execute(ctx, query, resume.ID, resume.UserID, resume.FilePath, parsed, now, now); err != nil {
		return fmt.Errorf("save resume %s: %w", resume.ID, err)
	}
	return nil
}

// GetResume retrieves a resume by id, deserializing the structured
// parsed-data blob when present.
func (s *Store) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	query, args, err := builder.From("resumes").Prepared(true).
		Select("id", "user_id", "file_path", "parsed_data", "created_at", "last_updated").
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build resume select: %w", err)
	}

	var resume models.Resume
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		var parsed sql.NullString

		row := conn.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&resume.ID, &resume.UserID, &resume.FilePath, &parsed, &resume.CreatedAt, &resume.LastUpdated); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("resume %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("scan resume: %w", err)
		}

		if parsed.Valid && parsed.String != "" {
			var data models.ParsedResume
			if err := json.Unmarshal([]byte(parsed.String), &data); err != nil {
				return fmt.Errorf("unmarshal parsed resume data: %w", err)
			}
			resume.ParsedData = &data
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resume, nil
}
