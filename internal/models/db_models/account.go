package db_models

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleCompany
}

// Account is the identity record. CanPost and CanApply are quota limits set
// by the subscription package; usage is always counted, never stored.
type Account struct {
	BaseModel
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Role     Role   `gorm:"type:varchar(20)" json:"role,omitempty"`
	Photo    string `json:"photo,omitempty"`
	Package  string `json:"package,omitempty"`
	Status   string `json:"status,omitempty"`
	CanPost  int    `gorm:"not null;default:0" json:"canPost"`
	CanApply int    `gorm:"not null;default:0" json:"canApply"`
}
