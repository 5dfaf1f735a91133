package domain

import "time"

// ApplicantStatus represents lifecycle states for an applicant.
// Eligibility is decided once at submission time; Accepted is terminal.
type ApplicantStatus int

const (
	StatusEligible   ApplicantStatus = 0
	StatusIneligible ApplicantStatus = 1
	StatusAccepted   ApplicantStatus = 2
)

// Applicant is the domain model for a single admissions submission.
type Applicant struct {
	ID           int64
	StudentID    string
	FirstName    string
	LastName     string
	Gender       string
	DOB          string
	CollegeYear  string
	TotalCredits int
	PhoneNumber  string
	Email        string
	PasswordHash *string
	Role         int
	Status       ApplicantStatus
	GPA          float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
