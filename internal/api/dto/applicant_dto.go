package dto

import "github.com/spec-kit/admissions-service/internal/domain"

// SubmitRequest carries the raw registration form fields.
type SubmitRequest struct {
	StudentID    string  `json:"student_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Gender       string  `json:"gender"`
	DOB          string  `json:"dob"`
	CollegeYear  string  `json:"college_year"`
	TotalCredits int     `json:"total_credits"`
	PhoneNumber  string  `json:"phone_number"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         int     `json:"role"`
	GPA          float64 `json:"gpa"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AcceptRequest identifies the applicant to accept.
type AcceptRequest struct {
	StudentID string `json:"student_id"`
}

// LoginUser is the credential-free view returned on successful login.
type LoginUser struct {
	Email  string `json:"email"`
	Status int    `json:"status"`
	Role   int    `json:"role"`
}

// ApplicantView is the listing representation; the password hash is never
// serialized.
type ApplicantView struct {
	ID           int64   `json:"id"`
	StudentID    string  `json:"student_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Gender       string  `json:"gender"`
	DOB          string  `json:"dob"`
	CollegeYear  string  `json:"college_year"`
	TotalCredits int     `json:"total_credits"`
	PhoneNumber  string  `json:"phone_number"`
	Email        string  `json:"email"`
	Role         int     `json:"role"`
	Status       int     `json:"status"`
	GPA          float64 `json:"gpa"`
}

// NewApplicantView maps a domain record for display.
func NewApplicantView(applicant domain.Applicant) ApplicantView {
	return ApplicantView{
		ID:           applicant.ID,
		StudentID:    applicant.StudentID,
		FirstName:    applicant.FirstName,
		LastName:     applicant.LastName,
		Gender:       applicant.Gender,
		DOB:          applicant.DOB,
		CollegeYear:  applicant.CollegeYear,
		TotalCredits: applicant.TotalCredits,
		PhoneNumber:  applicant.PhoneNumber,
		Email:        applicant.Email,
		Role:         applicant.Role,
		Status:       int(applicant.Status),
		GPA:          applicant.GPA,
	}
}
