package db_models

import "gorm.io/datatypes"

type JobPosting struct {
	BaseModel
	CompanyEmail string                      `gorm:"index;not null" json:"email"`
	CompanyName  string                      `json:"company,omitempty"`
	Title        string                      `gorm:"index" json:"title"`
	Category     string                      `gorm:"index" json:"category,omitempty"`
	JobType      string                      `gorm:"index" json:"jobType,omitempty"`
	Salary       string                      `json:"salary,omitempty"`
	Location     string                      `json:"location,omitempty"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	Skills       datatypes.JSONSlice[string] `json:"skills,omitempty"`
	Deadline     string                      `json:"deadline,omitempty"`
	PostedDate   string                      `gorm:"index" json:"date,omitempty"` // YYYY-MM-DD

	Applicants []ApplicantSnapshot `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applicants"`
}
