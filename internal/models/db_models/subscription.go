package db_models

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusReplaced SubscriptionStatus = "replaced"
)

// Subscription is the history of plans applied to an account. The current
// quotas live on Account; this table is the audit trail.
type Subscription struct {
	BaseModel
	AccountEmail string             `gorm:"index;not null" json:"email"`
	PlanCode     string             `gorm:"index" json:"planCode"`
	Status       SubscriptionStatus `gorm:"type:varchar(20);index" json:"status"`
	StartsAt     int64              `gorm:"not null" json:"startsAt"`
	Provider     string             `gorm:"index" json:"provider,omitempty"`
	ProviderRef  string             `gorm:"index" json:"providerRef,omitempty"`
	AmountMinor  int64              `json:"amount"`
	Currency     string             `gorm:"size:3" json:"currency,omitempty"`
}
