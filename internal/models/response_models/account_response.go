package response_models

import "lumijob/internal/models/db_models"

type AccountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	Photo    string `json:"photo,omitempty"`
	Package  string `json:"package,omitempty"`
	Status   string `json:"status,omitempty"`
	CanPost  int    `json:"canPost"`
	CanApply int    `json:"canApply"`
}

func NewAccountResponse(a db_models.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID.String(),
		Name:     a.Name,
		Email:    a.Email,
		Role:     string(a.Role),
		Photo:    a.Photo,
		Package:  a.Package,
		Status:   a.Status,
		CanPost:  a.CanPost,
		CanApply: a.CanApply,
	}
}

// CheckRoleResponse.Role is the role string, or false when none is set.
type CheckRoleResponse struct {
	Role interface{} `json:"role"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
