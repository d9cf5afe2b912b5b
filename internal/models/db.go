package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusNew       JobStatus = "new"
	JobStatusApplied   JobStatus = "applied"
	JobStatusFailed    JobStatus = "failed"
	JobStatusInterview JobStatus = "interview"
	JobStatusOffer     JobStatus = "offer"
	JobStatusRejected  JobStatus = "rejected"
)

// Valid reports whether the status is one of the known job states.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusNew, JobStatusApplied, JobStatusFailed, JobStatusInterview, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusFailed    ApplicationStatus = "failed"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusSubmitted, ApplicationStatusFailed:
		return true
	}
	return false
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Settings     []byte     `json:"settings,omitempty"` // Raw JSON blob
}

type Resume struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	FilePath    string        `json:"file_path"`
	ParsedData  *ParsedResume `json:"parsed_data,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	LastUpdated time.Time     `json:"last_updated"`
}

type Job struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	JobBoard    string     `json:"job_board"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Status      JobStatus  `json:"status"`
	MatchScore  float64    `json:"match_score"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUpdated time.Time  `json:"last_updated"`
	Notes       *string    `json:"notes,omitempty"`
}

type Application struct {
	ID                 string            `json:"id"`
	JobID              string            `json:"job_id"`
	UserID             string            `json:"user_id"`
	ResumeID           string            `json:"resume_id"`
	CoverLetterPath    *string           `json:"cover_letter_path,omitempty"`
	Status             ApplicationStatus `json:"status"`
	AppliedAt          *time.Time        `json:"applied_at,omitempty"`
	LastUpdated        time.Time         `json:"last_updated"`
	ResponseReceivedAt *time.Time        `json:"response_received_at,omitempty"`
	ResponseType       *string           `json:"response_type,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
}
