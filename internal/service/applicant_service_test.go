package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admissions-service/internal/auth"
	"github.com/spec-kit/admissions-service/internal/domain"
	"github.com/spec-kit/admissions-service/internal/events"
	"github.com/spec-kit/admissions-service/pkg/util"
)

type fakeApplicantRepo struct {
	mu        sync.Mutex
	nextID    int64
	byEmail   map[string]*domain.Applicant
	byStudent map[string]*domain.Applicant
	order     []string
	insertErr error
}

func newFakeApplicantRepo() *fakeApplicantRepo {
	return &fakeApplicantRepo{
		nextID:    1,
		byEmail:   make(map[string]*domain.Applicant),
		byStudent: make(map[string]*domain.Applicant),
	}
}

func (r *fakeApplicantRepo) Insert(ctx context.Context, applicant *domain.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.byStudent[applicant.StudentID]; exists {
		return fmt.Errorf("duplicate student_id %s", applicant.StudentID)
	}
	applicant.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	applicant.CreatedAt = now
	applicant.UpdatedAt = now
	stored := *applicant
	r.byEmail[applicant.Email] = &stored
	r.byStudent[applicant.StudentID] = &stored
	r.order = append(r.order, applicant.StudentID)
	return nil
}

func (r *fakeApplicantRepo) FindByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	applicant := r.byEmail[email]
	if applicant == nil {
		return nil, pgx.ErrNoRows
	}
	copy := *applicant
	return &copy, nil
}

func (r *fakeApplicantRepo) ListAll(ctx context.Context) ([]domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	applicants := make([]domain.Applicant, 0, len(r.order))
	for _, studentID := range r.order {
		applicants = append(applicants, *r.byStudent[studentID])
	}
	return applicants, nil
}

func (r *fakeApplicantRepo) SetAccepted(ctx context.Context, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if applicant, ok := r.byStudent[studentID]; ok {
		applicant.Status = domain.StatusAccepted
		applicant.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *fakeApplicantRepo) stored(studentID string) *domain.Applicant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byStudent[studentID]
}

func newTestService(repo *fakeApplicantRepo, dispatcher events.Dispatcher) *ApplicantService {
	return NewApplicantService(ApplicantDependencies{
		Repo:       repo,
		Dispatcher: dispatcher,
		BcryptCost: bcrypt.MinCost,
		Clock: func() time.Time {
			return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
		},
	})
}

func submitInput(studentID, email string, gpa float64) SubmitInput {
	return SubmitInput{
		StudentID:    studentID,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Gender:       "female",
		DOB:          "2001-06-15",
		CollegeYear:  "senior",
		TotalCredits: 15,
		PhoneNumber:  "555-0100",
		Email:        email,
		Password:     "hunter2",
		Role:         1,
		GPA:          gpa,
	}
}

func isUnauthorized(err error) bool {
	var domainErr *util.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "UNAUTHORIZED"
}

func TestSubmit_ComputesEligibilityAndHashesPassword(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	id, err := svc.Submit(context.Background(), submitInput("S100", "ada@example.com", 3.5))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated row id")
	}

	stored := repo.stored("S100")
	if stored == nil {
		t.Fatal("expected applicant to be persisted")
	}
	if stored.Status != domain.StatusEligible {
		t.Fatalf("expected eligible status, got %d", stored.Status)
	}
	if stored.PasswordHash == nil || *stored.PasswordHash == "hunter2" {
		t.Fatal("plaintext password must never be stored")
	}
	if ok, err := auth.VerifyPassword(*stored.PasswordHash, "hunter2"); err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestSubmit_LowGPAIsIneligible(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Submit(context.Background(), submitInput("S101", "low@example.com", 3.0)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stored := repo.stored("S101"); stored.Status != domain.StatusIneligible {
		t.Fatalf("expected ineligible status, got %d", stored.Status)
	}
}

func TestSubmit_BadDOBDegradesToIneligible(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	input := submitInput("S102", "baddate@example.com", 3.9)
	input.DOB = "June 15 2001"
	if _, err := svc.Submit(context.Background(), input); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stored := repo.stored("S102"); stored.Status != domain.StatusIneligible {
		t.Fatalf("expected ineligible status for unparseable dob, got %d", stored.Status)
	}
}

func TestSubmit_MissingPasswordDefaultsToEmpty(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	input := submitInput("S103", "nopass@example.com", 3.5)
	input.Password = ""
	if _, err := svc.Submit(context.Background(), input); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stored := repo.stored("S103")
	if stored.PasswordHash == nil || *stored.PasswordHash == "" {
		t.Fatal("expected empty password to be hashed, not skipped")
	}
	if ok, err := auth.VerifyPassword(*stored.PasswordHash, ""); err != nil || !ok {
		t.Fatalf("expected empty string to verify, got ok=%v err=%v", ok, err)
	}
}

func TestSubmit_StoreFailureIsServerError(t *testing.T) {
	repo := newFakeApplicantRepo()
	repo.insertErr = errors.New("connection refused")
	svc := newTestService(repo, nil)

	_, err := svc.Submit(context.Background(), submitInput("S104", "fail@example.com", 3.5))
	if err == nil {
		t.Fatal("expected error")
	}
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected internal error, got %v", err)
	}
	if repo.stored("S104") != nil {
		t.Fatal("expected no partial write")
	}
}

func TestLogin_SuccessReturnsNoHash(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Submit(context.Background(), submitInput("S200", "login@example.com", 3.5)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	result, err := svc.Login(context.Background(), "login@example.com", "hunter2")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Email != "login@example.com" {
		t.Fatalf("unexpected email %q", result.Email)
	}
	if result.Status != domain.StatusEligible {
		t.Fatalf("unexpected status %d", result.Status)
	}
	if result.Role != 1 {
		t.Fatalf("unexpected role %d", result.Role)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Submit(context.Background(), submitInput("S201", "known@example.com", 3.5)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "hunter2"},
		{"wrong password", "known@example.com", "wrong"},
		{"missing password", "known@example.com", ""},
	}

	var messages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			if !isUnauthorized(err) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			messages = append(messages, err.Error())
		})
	}
	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Fatalf("failure messages leak detail: %q vs %q", messages[0], messages[i])
		}
	}
}

func TestLogin_MissingStoredHashIsUnauthorized(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	empty := ""
	applicant := &domain.Applicant{StudentID: "S202", Email: "nohash@example.com", PasswordHash: &empty}
	if err := repo.Insert(context.Background(), applicant); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	_, err := svc.Login(context.Background(), "nohash@example.com", "anything")
	if !isUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestList_StripsPasswordHash(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Submit(context.Background(), submitInput("S300", "list@example.com", 3.5)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	applicants, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(applicants) != 1 {
		t.Fatalf("expected 1 applicant, got %d", len(applicants))
	}
	if applicants[0].PasswordHash != nil {
		t.Fatal("listing must not expose password hashes")
	}
}

func TestAccept_UnknownStudentIsSuccess(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	if err := svc.Accept(context.Background(), "missing"); err != nil {
		t.Fatalf("expected success for unknown student_id, got %v", err)
	}
	if len(repo.order) != 0 {
		t.Fatal("expected no rows mutated")
	}
}

func TestAccept_IsIdempotent(t *testing.T) {
	repo := newFakeApplicantRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Submit(context.Background(), submitInput("S400", "accept@example.com", 3.0)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stored := repo.stored("S400"); stored.Status != domain.StatusIneligible {
		t.Fatalf("expected ineligible before accept, got %d", stored.Status)
	}

	// accepting an ineligible applicant is permitted
	for i := 0; i < 2; i++ {
		if err := svc.Accept(context.Background(), "S400"); err != nil {
			t.Fatalf("expected nil error on accept #%d, got %v", i+1, err)
		}
	}
	if stored := repo.stored("S400"); stored.Status != domain.StatusAccepted {
		t.Fatalf("expected accepted status, got %d", stored.Status)
	}
}

func TestSubmitAcceptListScenario(t *testing.T) {
	repo := newFakeApplicantRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var mu sync.Mutex
	var seen []events.EventType
	record := func(ctx context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventApplicantSubmitted, record)
	dispatcher.Subscribe(events.EventApplicantAccepted, record)

	svc := newTestService(repo, dispatcher)

	if _, err := svc.Submit(context.Background(), submitInput("S500", "ineligible@example.com", 3.0)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), submitInput("S501", "eligible@example.com", 3.5)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if repo.stored("S500").Status != domain.StatusIneligible {
		t.Fatal("expected S500 ineligible")
	}
	if repo.stored("S501").Status != domain.StatusEligible {
		t.Fatal("expected S501 eligible")
	}

	if err := svc.Accept(context.Background(), "S501"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	applicants, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(applicants) != 2 {
		t.Fatalf("expected 2 applicants, got %d", len(applicants))
	}
	var accepted *domain.Applicant
	for i := range applicants {
		if applicants[i].StudentID == "S501" {
			accepted = &applicants[i]
		}
		if applicants[i].PasswordHash != nil {
			t.Fatal("listing must not expose password hashes")
		}
	}
	if accepted == nil || accepted.Status != domain.StatusAccepted {
		t.Fatal("expected S501 to be accepted in the listing")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Fatalf("expected 3 events, got %d", len(seen))
	}
	if seen[2] != events.EventApplicantAccepted {
		t.Fatalf("expected final event to be accepted, got %s", seen[2])
	}
}
