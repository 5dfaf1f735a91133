package eligibility

import (
	"testing"
	"time"

	"github.com/spec-kit/admissions-service/internal/domain"
)

var now = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

func TestComputeAge_CompletedYears(t *testing.T) {
	cases := []struct {
		name string
		dob  string
		want int
	}{
		{"birthday already passed this year", "2001-06-15", 25},
		{"birthday later this year", "2001-11-02", 24},
		{"birthday today", "2001-08-28", 25},
		{"birthday tomorrow", "2001-08-29", 24},
		{"born this year", "2026-01-10", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeAge(tc.dob, now); got != tc.want {
				t.Fatalf("ComputeAge(%q) = %d, want %d", tc.dob, got, tc.want)
			}
		})
	}
}

func TestComputeAge_UnparseableDateDegradesToZero(t *testing.T) {
	for _, dob := range []string{"", "not-a-date", "15/06/2001", "2001-13-40"} {
		if got := ComputeAge(dob, now); got != 0 {
			t.Fatalf("ComputeAge(%q) = %d, want 0", dob, got)
		}
	}
}

func TestDecide_ThresholdsAreStrict(t *testing.T) {
	cases := []struct {
		name    string
		gpa     float64
		credits int
		age     int
		want    domain.ApplicantStatus
	}{
		{"gpa at threshold fails", 3.2, 13, 24, domain.StatusIneligible},
		{"gpa just above passes", 3.3, 13, 24, domain.StatusEligible},
		{"credits at threshold fail", 3.3, 12, 24, domain.StatusIneligible},
		{"age at threshold fails", 3.3, 13, 23, domain.StatusIneligible},
		{"all above thresholds", 3.5, 15, 25, domain.StatusEligible},
		{"all below thresholds", 2.0, 6, 18, domain.StatusIneligible},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.gpa, tc.credits, tc.age); got != tc.want {
				t.Fatalf("Decide(%v, %d, %d) = %d, want %d", tc.gpa, tc.credits, tc.age, got, tc.want)
			}
		})
	}
}

func TestDecide_ZeroAgeFromBadDateIsIneligible(t *testing.T) {
	age := ComputeAge("garbage", now)
	if got := Decide(4.0, 20, age); got != domain.StatusIneligible {
		t.Fatalf("expected ineligible for degraded age, got %d", got)
	}
}
