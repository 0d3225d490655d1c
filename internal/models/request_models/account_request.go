package request_models

type CreateAccountRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=candidate company"`
	Photo string `json:"photo" binding:"omitempty,url"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateProfileRequest carries the fields of either profile kind; Role picks
// which one is written.
type UpdateProfileRequest struct {
	Role      string   `json:"role" binding:"required"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Position  string   `json:"position"`
	SalaryMin int64    `json:"salaryRangeMin" binding:"gte=0"`
	SalaryMax int64    `json:"salaryRangeMax" binding:"gte=0"`
	Skills    []string `json:"skills"`
	Website   string   `json:"website"`
	Sector    string   `json:"sector"`
	About     string   `json:"about"`
}
