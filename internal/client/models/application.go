// Package models defines the job board records exchanged with the API and
// the application status workflow.
package models

import "time"

// Application is a candidate's submission to one job.
type Application struct {
	ID          string         `json:"_id"`
	Job         Ref[Job]       `json:"jobId"`
	Candidate   Ref[User]      `json:"candidateId"`
	EmployerID  string         `json:"employerId"`
	CoverLetter string         `json:"coverLetter,omitempty"`
	ResumeURL   string         `json:"resumeUrl"`
	Status      Status         `json:"status"`
	History     []HistoryEntry `json:"statusHistory"`
	IsWithdrawn bool           `json:"isWithdrawn"`
	WithdrawnAt *time.Time     `json:"withdrawnAt,omitempty"`
	AppliedAt   time.Time      `json:"appliedAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// HistoryEntry is one audit record of a status change.
type HistoryEntry struct {
	Status    Status    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Note      string    `json:"note,omitempty"`
}

// ApplicationInput is the body of a new application.
type ApplicationInput struct {
	JobID       string `json:"jobId" validate:"required"`
	ResumeURL   string `json:"resumeUrl" validate:"required,url"`
	CoverLetter string `json:"coverLetter,omitempty" validate:"max=5000"`
}

// StatusUpdate is the body of a status change.
type StatusUpdate struct {
	Status Status `json:"status"`
	Note   string `json:"note,omitempty"`
}
