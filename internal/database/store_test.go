package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go-applybot-automation/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), 3)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, store *Store) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func seedResume(t *testing.T, store *Store, userID string) *models.Resume {
	t.Helper()
	resume := &models.Resume{
		ID:       uuid.NewString(),
		UserID:   userID,
		FilePath: "/resumes/base.pdf",
	}
	require.NoError(t, store.SaveResume(context.Background(), resume))
	return resume
}

func seedJob(t *testing.T, store *Store, userID string) *models.Job {
	t.Helper()
	job := &models.Job{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    "Backend Engineer",
		Company:  "Acme",
		JobBoard: "indeed",
		URL:      "https://example.com/apply",
	}
	require.NoError(t, store.SaveJob(context.Background(), job))
	return job
}

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		ID:           "u1",
		Email:        "u1@example.com",
		PasswordHash: "hash",
		Settings:     []byte(`{"theme":"dark"}`),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1@example.com", got.Email)
	require.JSONEq(t, `{"theme":"dark"}`, string(got.Settings))
	require.Nil(t, got.LastLogin)

	byEmail, err := store.GetUserByEmail(ctx, "u1@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", byEmail.ID)

	require.NoError(t, store.UpdateLastLogin(ctx, "u1"))
	got, err = store.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &models.User{ID: "u1", Email: "same@example.com", PasswordHash: "h"}))
	err := store.CreateUser(ctx, &models.User{ID: "u2", Email: "same@example.com", PasswordHash: "h"})
	require.Error(t, err)
}

func TestGetUserNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUser(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveResumeRequiresUser(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveResume(context.Background(), &models.Resume{
		ID:       "r1",
		UserID:   "ghost",
		FilePath: "/resumes/base.pdf",
	})
	require.Error(t, err, "foreign key to users must be enforced")
}

func TestSaveResumeUpsertIdempotence(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	resume := &models.Resume{
		ID:       "r1",
		UserID:   user.ID,
		FilePath: "/resumes/v1.pdf",
		ParsedData: &models.ParsedResume{
			PersonalInformation: models.PersonalInformation{FullName: "Jane Doe"},
		},
	}
	require.NoError(t, store.SaveResume(ctx, resume))

	first, err := store.GetResume(ctx, "r1")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	resume.FilePath = "/resumes/v2.pdf"
	resume.ParsedData.PersonalInformation.FullName = "Jane A. Doe"
	require.NoError(t, store.SaveResume(ctx, resume))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM resumes WHERE id = 'r1'").Scan(&count))
	require.Equal(t, 1, count, "upsert must keep exactly one row per id")

	second, err := store.GetResume(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "/resumes/v2.pdf", second.FilePath)
	require.Equal(t, "Jane A. Doe", second.ParsedData.PersonalInformation.FullName)
	require.True(t, second.LastUpdated.After(first.LastUpdated), "last_updated must advance")
	require.Equal(t, first.UserID, second.UserID, "user_id is immutable on upsert")
}

func TestSaveAndUpdateJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store)
	job := seedJob(t, store, user.ID)

	got, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusNew, got.Status)
	require.Nil(t, got.AppliedAt)

	time.Sleep(20 * time.Millisecond)

	score := 7.5
	title := "Senior Backend Engineer"
	require.NoError(t, store.UpdateJob(ctx, job.ID, JobUpdate{Title: &title, MatchScore: &score}))

	updated, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, "Senior Backend Engineer", updated.Title)
	require.Equal(t, 7.5, updated.MatchScore)
	require.Equal(t, "Acme", updated.Company, "untouched columns keep their values")
	require.True(t, updated.LastUpdated.After(got.LastUpdated))
}

func TestUpdateJobValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store)
	job := seedJob(t, store, user.ID)

	require.Error(t, store.UpdateJob(ctx, job.ID, JobUpdate{}), "empty update is rejected")

	bad := models.JobStatus("teleported")
	require.Error(t, store.UpdateJob(ctx, job.ID, JobUpdate{Status: &bad}))

	negative := -1.0
	require.Error(t, store.UpdateJob(ctx, job.ID, JobUpdate{MatchScore: &negative}))
}

func TestListJobsByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	seedJob(t, store, user.ID)
	applied := seedJob(t, store, user.ID)
	status := models.JobStatusApplied
	require.NoError(t, store.UpdateJob(ctx, applied.ID, JobUpdate{Status: &status}))

	newJobs, err := store.ListJobsByStatus(ctx, user.ID, models.JobStatusNew)
	require.NoError(t, err)
	require.Len(t, newJobs, 1)

	appliedJobs, err := store.ListJobsByStatus(ctx, user.ID, models.JobStatusApplied)
	require.NoError(t, err)
	require.Len(t, appliedJobs, 1)
	require.Equal(t, applied.ID, appliedJobs[0].ID)
}

func TestApplicationForeignKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store)
	resume := seedResume(t, store, user.ID)
	job := seedJob(t, store, user.ID)

	err := store.SaveApplication(ctx, &models.Application{
		ID:       uuid.NewString(),
		JobID:    "ghost-job",
		UserID:   user.ID,
		ResumeID: resume.ID,
		Status:   models.ApplicationStatusSubmitted,
	})
	require.Error(t, err, "dangling job reference must fail")

	app := &models.Application{
		ID:       uuid.NewString(),
		JobID:    job.ID,
		UserID:   user.ID,
		ResumeID: resume.ID,
		Status:   models.ApplicationStatusSubmitted,
	}
	require.NoError(t, store.SaveApplication(ctx, app))

	got, err := store.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusSubmitted, got.Status)
	require.Equal(t, job.ID, got.JobID)

	has, err := store.HasSubmittedApplication(ctx, job.ID, resume.ID)
	require.NoError(t, err)
	require.True(t, has)

	has, err = store.HasSubmittedApplication(ctx, job.ID, "other-resume")
	require.NoError(t, err)
	require.False(t, has)
}

func TestBackupRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store)
	resume := seedResume(t, store, user.ID)
	job := seedJob(t, store, user.ID)
	require.NoError(t, store.SaveApplication(ctx, &models.Application{
		ID:       uuid.NewString(),
		JobID:    job.ID,
		UserID:   user.ID,
		ResumeID: resume.ID,
		Status:   models.ApplicationStatusSubmitted,
	}))

	backupPath := filepath.Join(t.TempDir(), "backup.db")
	got, err := store.Backup(ctx, backupPath)
	require.NoError(t, err)
	require.Equal(t, backupPath, got)

	restored, err := Open(backupPath, 1)
	require.NoError(t, err)
	defer restored.Close()

	for _, table := range []string{"users", "resumes", "jobs", "applications"} {
		var orig, backed int
		require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&orig))
		require.NoError(t, restored.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&backed))
		require.Equal(t, orig, backed, "row count mismatch in %s", table)
	}

	copiedUser, err := restored.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, copiedUser.Email)

	copiedJob, err := restored.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, job.ID, copiedJob.ID)
}

func TestPoolNeverExceedsCapacity(t *testing.T) {
	store := newTestStore(t) // maxConnections = 3
	ctx := context.Background()
	user := seedUser(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := store.GetUser(ctx, user.ID); err != nil {
					t.Errorf("concurrent GetUser failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, store.IdleConnections(), 3, "pool must never hold more idle connections than its bound")
}

func TestPoolReusesProbedConnections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conn, err := store.pool.acquire(ctx)
	require.NoError(t, err)
	store.pool.release(conn)
	require.Equal(t, 1, store.IdleConnections())

	again, err := store.pool.acquire(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, store.IdleConnections(), "acquire pops the idle connection")
	store.pool.release(again)
}

func TestExecuteRollsBackOnFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	// second row violates the unique email constraint; nothing may persist
	err := store.execute(ctx,
		fmt.Sprintf("INSERT INTO users (id, email, password_hash) VALUES ('x1', '%s', 'h')", user.Email))
	require.Error(t, err)

	_, err = store.GetUser(ctx, "x1")
	require.ErrorIs(t, err, ErrNotFound)
}
