package request_models

type PostJobRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	CompanyName string   `json:"company"`
	Title       string   `json:"title" binding:"required,max=200"`
	Category    string   `json:"category"`
	JobType     string   `json:"jobType"`
	Salary      string   `json:"salary"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Deadline    string   `json:"deadline"`
	Date        string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type BookmarkRequest struct {
	Email       string `json:"email" binding:"required,email"`
	JobID       string `json:"jobId" binding:"required"`
	JobTitle    string `json:"title"`
	CompanyName string `json:"company"`
}
