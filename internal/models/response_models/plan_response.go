package response_models

import (
	"github.com/google/uuid"
	"lumijob/internal/models/db_models"
)

type PlanResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"` // e.g. "candidate_pro", "company_basic"
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Role        string    `json:"role"`  // role whose quota the plan sets
	Price       int64     `json:"price"` // minor units, 999 = $9.99
	Currency    string    `json:"currency"`
	PostLimit   int       `json:"postLimit"`
	ApplyLimit  int       `json:"applyLimit"`
	Features    []string  `json:"features,omitempty"`
}

func NewPlanResponse(p db_models.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Role:        string(p.Role),
		Price:       p.PriceMinor,
		Currency:    p.Currency,
		PostLimit:   p.PostLimit,
		ApplyLimit:  p.ApplyLimit,
		Features:    []string(p.Features),
	}
}

type SubscriptionStatusResponse struct {
	Email    string `json:"email"`
	PlanCode string `json:"plan_code"`
	Package  string `json:"package"`
	Status   string `json:"status"`
	StartsAt int64  `json:"starts_at"`
	CanPost  int    `json:"canPost"`
	CanApply int    `json:"canApply"`
}
