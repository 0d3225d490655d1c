package db_models

import (
	"strings"

	"github.com/google/uuid"
)

// PipelineStatus is the stage of an applicant on a company's board.
// Stages are ordered by convention only; any stage may be set to any other.
type PipelineStatus string

const (
	StatusApplicant   PipelineStatus = "applicant"
	StatusPreSelected PipelineStatus = "pre-selected"
	StatusInterview   PipelineStatus = "interview"
	StatusSelected    PipelineStatus = "selected"
)

var PipelineStatuses = []PipelineStatus{StatusApplicant, StatusPreSelected, StatusInterview, StatusSelected}

func ParsePipelineStatus(s string) (PipelineStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range PipelineStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type InterviewSchedule struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	MeetingLink string `json:"meetingLink"`
}

func (s InterviewSchedule) IsZero() bool {
	return s.Date == "" && s.Time == "" && s.MeetingLink == ""
}

// ApplicantSnapshot is the candidate profile copied onto a job at apply
// time. One row per (job, email).
type ApplicantSnapshot struct {
	RecordModel
	JobID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant_email,priority:1" json:"jobId"`
	Email       string         `gorm:"not null;uniqueIndex:idx_job_applicant_email,priority:2" json:"email"`
	ApplicantID uuid.UUID      `gorm:"type:uuid;index" json:"applicantId"`
	Name        string         `json:"name"`
	Photo       string         `json:"profile,omitempty"`
	City        string         `json:"city,omitempty"`
	Country     string         `json:"country,omitempty"`
	Position    string         `json:"position,omitempty"`
	Status      string         `json:"status,omitempty"`
	SalaryMin   int64          `json:"salaryRangeMin"`
	SalaryMax   int64          `json:"salaryRangeMax"`
	AppliedAt   int64          `gorm:"index" json:"appliedTime"`
	DndStats    PipelineStatus `gorm:"type:varchar(20);index;not null" json:"dndStats"`
	Resume      string         `json:"resume"`

	ScheduleInterview InterviewSchedule `gorm:"embedded;embeddedPrefix:interview_" json:"-"`
}

func (ApplicantSnapshot) TableName() string { return "job_applicants" }
