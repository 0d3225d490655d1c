package response_models

import "lumijob/internal/models/db_models"

type ApplicantResponse struct {
	ID                string                       `json:"id"`
	JobID             string                       `json:"jobId"`
	ApplicantID       string                       `json:"applicantId"`
	Email             string                       `json:"email"`
	Name              string                       `json:"name"`
	Photo             string                       `json:"profile,omitempty"`
	City              string                       `json:"city,omitempty"`
	Country           string                       `json:"country,omitempty"`
	Position          string                       `json:"position,omitempty"`
	Status            string                       `json:"status,omitempty"`
	SalaryMin         int64                        `json:"salaryRangeMin"`
	SalaryMax         int64                        `json:"salaryRangeMax"`
	AppliedAt         int64                        `json:"appliedTime"`
	DndStats          string                       `json:"dndStats"`
	Resume            string                       `json:"resume"`
	ScheduleInterview *db_models.InterviewSchedule `json:"scheduleInterview,omitempty"`
}

func NewApplicantResponse(s db_models.ApplicantSnapshot) ApplicantResponse {
	return ApplicantResponse{
		ID:                s.ID.String(),
		JobID:             s.JobID.String(),
		ApplicantID:       s.ApplicantID.String(),
		Email:             s.Email,
		Name:              s.Name,
		Photo:             s.Photo,
		City:              s.City,
		Country:           s.Country,
		Position:          s.Position,
		Status:            s.Status,
		SalaryMin:         s.SalaryMin,
		SalaryMax:         s.SalaryMax,
		AppliedAt:         s.AppliedAt,
		DndStats:          string(s.DndStats),
		Resume:            s.Resume,
		ScheduleInterview: schedulePtr(s.ScheduleInterview),
	}
}

func NewApplicantResponses(in []db_models.ApplicantSnapshot) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(in))
	for _, s := range in {
		out = append(out, NewApplicantResponse(s))
	}
	return out
}

// SelectedApplicantResponse is one row per applicant across a company's jobs.
type SelectedApplicantResponse struct {
	ApplicantResponse
	JobIDs []string `json:"jobIds"`
}

type ApplicationResponse struct {
	ID                string                       `json:"id"`
	Candidate         string                       `json:"candidate"`
	JobID             string                       `json:"jobId"`
	CompanyEmail      string                       `json:"companyEmail,omitempty"`
	CompanyName       string                       `json:"company,omitempty"`
	JobTitle          string                       `json:"title,omitempty"`
	CoverLetter       string                       `json:"coverLetter,omitempty"`
	AppliedAt         int64                        `json:"appliedTime"`
	DndStats          string                       `json:"dndStats"`
	ScheduleInterview *db_models.InterviewSchedule `json:"scheduleInterview,omitempty"`
}

func NewApplicationResponse(r db_models.ApplicationRecord) ApplicationResponse {
	return ApplicationResponse{
		ID:                r.ID.String(),
		Candidate:         r.CandidateEmail,
		JobID:             r.JobID.String(),
		CompanyEmail:      r.CompanyEmail,
		CompanyName:       r.CompanyName,
		JobTitle:          r.JobTitle,
		CoverLetter:       r.CoverLetter,
		AppliedAt:         r.AppliedAt,
		DndStats:          string(r.DndStats),
		ScheduleInterview: schedulePtr(r.ScheduleInterview),
	}
}

func NewApplicationResponses(in []db_models.ApplicationRecord) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(in))
	for _, r := range in {
		out = append(out, NewApplicationResponse(r))
	}
	return out
}

// ScheduledInterviewResponse carries the updated ledger record, which is
// nil when the application has no ledger row, and the applicant row.
type ScheduledInterviewResponse struct {
	Record    *ApplicationResponse `json:"record"`
	Applicant ApplicantResponse    `json:"applicant"`
}

func NewScheduledInterviewResponse(rec *db_models.ApplicationRecord, snap db_models.ApplicantSnapshot) ScheduledInterviewResponse {
	out := ScheduledInterviewResponse{Applicant: NewApplicantResponse(snap)}
	if rec != nil {
		r := NewApplicationResponse(*rec)
		out.Record = &r
	}
	return out
}

func schedulePtr(s db_models.InterviewSchedule) *db_models.InterviewSchedule {
	if s.IsZero() {
		return nil
	}
	return &s
}
