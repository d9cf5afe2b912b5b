package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBackupDir is where timestamped backups land when no path is given.
const DefaultBackupDir = "db/backups"

// Backup writes a full page-level copy of the store to path, or to
// db/backups/backup_<YYYYMMDD_HHMMSS>.db when path is empty. The copy runs
// online via VACUUM INTO; active connections keep working.
func (s *Store) Backup(ctx context.Context, path string) (string, error) {
	if path == "" {
		timestamp := time.Now().Format("20060102_150405")
		path = filepath.Join(DefaultBackupDir, fmt.Sprintf("backup_%s.db", timestamp))
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create backup directory: %w", err)
		}
	}

	// VACUUM INTO takes a filename expression, not a bind parameter
	escaped := strings.ReplaceAll(path, "'", "''")
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", escaped)); err != nil {
			return fmt.Errorf("backup database: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
