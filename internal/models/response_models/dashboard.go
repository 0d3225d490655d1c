package response_models

type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type AccountStats struct {
	Total  int64            `json:"total"`
	New    int64            `json:"new"`
	ByRole map[string]int64 `json:"by_role"`
}

type JobStats struct {
	Total         int64        `json:"total"`
	New           int64        `json:"new"`
	TopCategories []LabelCount `json:"top_categories"`
}

// PipelineStats always carries every pipeline status in ByStatus.
type PipelineStats struct {
	Applicants       int64            `json:"applicants"`
	NewApplications  int64            `json:"new_applications"`
	ByStatus         map[string]int64 `json:"by_status"`
	SelectionRatePct float64          `json:"selection_rate_pct"`
}

type PlanMixItem struct {
	PlanCode string  `json:"plan_code"`
	Count    int64   `json:"count"`
	Percent  float64 `json:"percent"`
}

type RevenueItem struct {
	Currency    string `json:"currency"`
	AmountMinor int64  `json:"amount_minor"`
}

type SubscriptionStats struct {
	Active  int64         `json:"active"`
	PlanMix []PlanMixItem `json:"plan_mix"`
	Revenue []RevenueItem `json:"revenue"`
}

type DashboardReport struct {
	WindowDays    int               `json:"window_days"`
	Since         int64             `json:"since"`
	Accounts      AccountStats      `json:"accounts"`
	Jobs          JobStats          `json:"jobs"`
	Pipeline      PipelineStats     `json:"pipeline"`
	Subscriptions SubscriptionStats `json:"subscriptions"`
}
