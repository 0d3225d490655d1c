package db_models

type Bookmark struct {
	BaseModel
	Email       string `gorm:"index;not null" json:"email"`
	JobID       string `gorm:"index" json:"jobId"`
	JobTitle    string `json:"title,omitempty"`
	CompanyName string `json:"company,omitempty"`
}
