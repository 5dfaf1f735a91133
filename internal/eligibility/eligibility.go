package eligibility

import (
	"time"

	"github.com/spec-kit/admissions-service/internal/domain"
)

const dobLayout = "2006-01-02"

// Admission thresholds. All three are strict lower bounds: hitting the
// threshold exactly counts as failing.
const (
	MinGPA     = 3.2
	MinCredits = 12
	MinAge     = 23
)

// ComputeAge returns the whole number of completed years between dob
// (YYYY-MM-DD) and now. An unparseable dob yields 0; submissions with a
// bad date degrade to an age that fails eligibility rather than erroring.
func ComputeAge(dob string, now time.Time) int {
	birth, err := time.Parse(dobLayout, dob)
	if err != nil {
		return 0
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Decide computes the admission eligibility for a submission. Pure: no
// I/O, no clock access, no mutable state.
func Decide(gpa float64, creditHours, age int) domain.ApplicantStatus {
	if gpa <= MinGPA || creditHours <= MinCredits || age <= MinAge {
		return domain.StatusIneligible
	}
	return domain.StatusEligible
}
