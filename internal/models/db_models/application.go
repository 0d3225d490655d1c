package db_models

import "github.com/google/uuid"

// ApplicationRecord is the per-candidate ledger entry for one application.
type ApplicationRecord struct {
	RecordModel
	CandidateEmail string         `gorm:"not null;uniqueIndex:idx_application_candidate_job,priority:1" json:"candidate"`
	JobID          uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_application_candidate_job,priority:2" json:"jobId"`
	CompanyEmail   string         `gorm:"index" json:"companyEmail,omitempty"`
	CompanyName    string         `json:"company,omitempty"`
	JobTitle       string         `json:"title,omitempty"`
	CoverLetter    string         `gorm:"type:text" json:"coverLetter,omitempty"`
	AppliedAt      int64          `json:"appliedTime"`
	DndStats       PipelineStatus `gorm:"type:varchar(20);not null" json:"dndStats"`

	ScheduleInterview InterviewSchedule `gorm:"embedded;embeddedPrefix:interview_" json:"-"`
}

func (ApplicationRecord) TableName() string { return "applications" }
