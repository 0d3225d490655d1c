package db_models

import "gorm.io/datatypes"

type CandidateProfile struct {
	BaseModel
	Email     string                      `gorm:"uniqueIndex;not null" json:"email"`
	Name      string                      `json:"name"`
	Photo     string                      `json:"photo,omitempty"`
	City      string                      `json:"city,omitempty"`
	Country   string                      `json:"country,omitempty"`
	Position  string                      `json:"position,omitempty"`
	Resume    string                      `json:"resume,omitempty"`
	SalaryMin int64                       `json:"salaryRangeMin"`
	SalaryMax int64                       `json:"salaryRangeMax"`
	Status    string                      `json:"status,omitempty"` // premium tier label
	Skills    datatypes.JSONSlice[string] `json:"skills,omitempty"`
}

type CompanyProfile struct {
	BaseModel
	Email   string `gorm:"uniqueIndex;not null" json:"email"`
	Name    string `json:"name"`
	Photo   string `json:"photo,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Website string `json:"website,omitempty"`
	Sector  string `json:"sector,omitempty"`
	About   string `gorm:"type:text" json:"about,omitempty"`
}
