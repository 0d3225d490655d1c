package request_models

type ApplyRequest struct {
	Email       string `json:"email" binding:"required,email"`
	JobID       string `json:"jobId" binding:"required,uuid"`
	CoverLetter string `json:"coverLetter" binding:"max=5000"`
}

// UpdateApplicantStatusRequest moves one applicant of the job in the path.
type UpdateApplicantStatusRequest struct {
	ApplicantID string `json:"applicantId" binding:"required,uuid"`
	Status      string `json:"dndStats" binding:"required"`
}

type ScheduleInterviewRequest struct {
	JobID       string `json:"jobId" binding:"required,uuid"`
	Email       string `json:"email" binding:"required,email"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	MeetingLink string `json:"meetingLink" binding:"omitempty,url"`
}

// WithdrawRequest removes an application. ID is the ledger record id.
type WithdrawRequest struct {
	ID    string `json:"id"`
	JobID string `json:"jobId"`
	Email string `json:"email" binding:"required,email"`
}
