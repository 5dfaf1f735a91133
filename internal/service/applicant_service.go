package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admissions-service/internal/auth"
	"github.com/spec-kit/admissions-service/internal/cache"
	"github.com/spec-kit/admissions-service/internal/domain"
	"github.com/spec-kit/admissions-service/internal/eligibility"
	"github.com/spec-kit/admissions-service/internal/events"
	"github.com/spec-kit/admissions-service/internal/repository"
	"github.com/spec-kit/admissions-service/pkg/util"
)

// SubmitInput carries the raw form fields of one admissions submission.
type SubmitInput struct {
	StudentID    string
	FirstName    string
	LastName     string
	Gender       string
	DOB          string
	CollegeYear  string
	TotalCredits int
	PhoneNumber  string
	Email        string
	Password     string
	Role         int
	GPA          float64
}

// LoginResult is what a successful login exposes: never the password hash.
type LoginResult struct {
	Email  string
	Status domain.ApplicantStatus
	Role   int
}

// ApplicantService orchestrates intake, authentication and status
// transitions over a shared store handle. It holds no mutable state of its
// own, so any number of requests may run through it concurrently.
type ApplicantService struct {
	applicants repository.ApplicantRepository
	listCache  *cache.ApplicantCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// ApplicantDependencies encapsulates collaborator requirements.
type ApplicantDependencies struct {
	Repo       repository.ApplicantRepository
	ListCache  *cache.ApplicantCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
	Clock      func() time.Time
}

// NewApplicantService builds the service.
func NewApplicantService(deps ApplicantDependencies) *ApplicantService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicantService{
		applicants: deps.Repo,
		listCache:  deps.ListCache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: deps.BcryptCost,
		now:        clock,
	}
}

// Submit hashes the credential, computes eligibility and persists the
// applicant in a single insert. A missing password is hashed as the empty
// string rather than rejected; an unparseable dob degrades age to 0.
// Returns the generated row id.
func (s *ApplicantService) Submit(ctx context.Context, input SubmitInput) (int64, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return 0, util.NewInternalError(err)
	}

	age := eligibility.ComputeAge(input.DOB, s.now())
	status := eligibility.Decide(input.GPA, input.TotalCredits, age)

	applicant := &domain.Applicant{
		StudentID:    input.StudentID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		DOB:          input.DOB,
		CollegeYear:  input.CollegeYear,
		TotalCredits: input.TotalCredits,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		PasswordHash: &hash,
		Role:         input.Role,
		Status:       status,
		GPA:          input.GPA,
	}
	if err := s.applicants.Insert(ctx, applicant); err != nil {
		return 0, util.NewInternalError(err)
	}

	s.invalidateListing(ctx)
	s.publishEvent(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicantSubmitted,
		StudentID: applicant.StudentID,
		Timestamp: s.now(),
		Payload: events.ApplicantSubmittedPayload{
			Email:  applicant.Email,
			Status: applicant.Status,
		},
	})

	return applicant.ID, nil
}

// Login authenticates an applicant by email and password. An unknown
// email, a missing credential on either side and a wrong password are all
// indistinguishable to the caller.
func (s *ApplicantService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	applicant, err := s.applicants.FindByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewUnauthorized("invalid email or password")
	}
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	if password == "" || applicant.PasswordHash == nil || *applicant.PasswordHash == "" {
		return nil, util.NewUnauthorized("invalid email or password")
	}

	ok, err := auth.VerifyPassword(*applicant.PasswordHash, password)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	if !ok {
		return nil, util.NewUnauthorized("invalid email or password")
	}

	return &LoginResult{
		Email:  applicant.Email,
		Status: applicant.Status,
		Role:   applicant.Role,
	}, nil
}

// List returns every stored applicant with the password hash stripped.
// Served from the listing cache when warm; the store is the fallback.
func (s *ApplicantService) List(ctx context.Context) ([]domain.Applicant, error) {
	if cached, ok := s.listCache.GetList(ctx); ok {
		return cached, nil
	}

	applicants, err := s.applicants.ListAll(ctx)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	for i := range applicants {
		applicants[i].PasswordHash = nil
	}

	if err := s.listCache.SetList(ctx, applicants); err != nil {
		s.logger.Warn("failed to cache applicant listing", zap.Error(err))
	}
	return applicants, nil
}

// Accept transitions the matching applicant to Accepted. Accepting an
// unknown student_id succeeds without mutating anything, and repeated
// accepts are idempotent.
func (s *ApplicantService) Accept(ctx context.Context, studentID string) error {
	if err := s.applicants.SetAccepted(ctx, studentID); err != nil {
		return util.NewInternalError(err)
	}

	s.invalidateListing(ctx)
	s.publishEvent(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicantAccepted,
		StudentID: studentID,
		Timestamp: s.now(),
	})
	return nil
}

func (s *ApplicantService) invalidateListing(ctx context.Context) {
	if err := s.listCache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate applicant listing cache", zap.Error(err))
	}
}

func (s *ApplicantService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
