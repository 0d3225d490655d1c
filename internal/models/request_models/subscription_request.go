package request_models

// ApplySubscriptionRequest is sent by the payment collaborator once a
// payment has settled.
type ApplySubscriptionRequest struct {
	Email       string `json:"email" binding:"required,email"`
	PlanCode    string `json:"plan_code" binding:"required"`
	Provider    string `json:"provider"`
	ProviderRef string `json:"provider_ref"`
	AmountMinor int64  `json:"amount" binding:"gte=0"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}
