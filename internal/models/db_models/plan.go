package db_models

import "gorm.io/datatypes"

// Plan is a subscription package. Applying a plan to an account sets the
// quota field matching the plan's role.
type Plan struct {
	BaseModel
	Code        string                      `gorm:"uniqueIndex" json:"code"`
	Name        string                      `json:"name"`
	Description *string                     `json:"description,omitempty"`
	Role        Role                        `gorm:"type:varchar(20);index" json:"role"`
	PriceMinor  int64                       `json:"price"` // 999 = $9.99
	Currency    string                      `gorm:"size:3" json:"currency"`
	PostLimit   int                         `json:"postLimit"`
	ApplyLimit  int                         `json:"applyLimit"`
	IsActive    bool                        `gorm:"default:true" json:"isActive"`
	Features    datatypes.JSONSlice[string] `json:"features,omitempty"`
}
