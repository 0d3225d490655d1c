package response_models

import "lumijob/internal/models/db_models"

type JobResponse struct {
	ID           string              `json:"id"`
	CompanyEmail string              `json:"email"`
	CompanyName  string              `json:"company,omitempty"`
	Title        string              `json:"title"`
	Category     string              `json:"category,omitempty"`
	JobType      string              `json:"jobType,omitempty"`
	Salary       string              `json:"salary,omitempty"`
	Location     string              `json:"location,omitempty"`
	Description  string              `json:"description,omitempty"`
	Skills       []string            `json:"skills,omitempty"`
	Deadline     string              `json:"deadline,omitempty"`
	Date         string              `json:"date,omitempty"`
	PostedAt     int64               `json:"postedAt"`
	Applicants   []ApplicantResponse `json:"applicants"`
}

func NewJobResponse(j db_models.JobPosting) JobResponse {
	return JobResponse{
		ID:           j.ID.String(),
		CompanyEmail: j.CompanyEmail,
		CompanyName:  j.CompanyName,
		Title:        j.Title,
		Category:     j.Category,
		JobType:      j.JobType,
		Salary:       j.Salary,
		Location:     j.Location,
		Description:  j.Description,
		Skills:       []string(j.Skills),
		Deadline:     j.Deadline,
		Date:         j.PostedDate,
		PostedAt:     j.CreatedAt,
		Applicants:   NewApplicantResponses(j.Applicants),
	}
}

func NewJobResponses(in []db_models.JobPosting) []JobResponse {
	out := make([]JobResponse, 0, len(in))
	for _, j := range in {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type InsertedResponse struct {
	InsertedID string `json:"insertedId"`
}
