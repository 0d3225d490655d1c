package db_models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&CandidateProfile{},
		&CompanyProfile{},
		&Plan{},
		&Subscription{},
		&JobPosting{},
		&ApplicantSnapshot{},
		&ApplicationRecord{},
		&Bookmark{},
	}
}
