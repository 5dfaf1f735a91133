package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admissions-service/internal/domain"
)

// ApplicantRepository defines persistence access for applicant records.
// Every method issues a single statement; cross-request safety comes from
// per-statement atomicity, not application-level transactions.
type ApplicantRepository interface {
	Insert(ctx context.Context, applicant *domain.Applicant) error
	FindByEmail(ctx context.Context, email string) (*domain.Applicant, error)
	ListAll(ctx context.Context) ([]domain.Applicant, error)
	SetAccepted(ctx context.Context, studentID string) error
}

type applicantRepository struct {
	pool *pgxpool.Pool
}

// NewApplicantRepository returns a Postgres-backed implementation.
func NewApplicantRepository(pool *pgxpool.Pool) ApplicantRepository {
	return &applicantRepository{pool: pool}
}

func (r *applicantRepository) Insert(ctx context.Context, applicant *domain.Applicant) error {
	const query = `
        INSERT INTO applicants (student_id, first_name, last_name, gender, dob, college_year,
            total_credits, phone_number, email, password_hash, role, status, gpa)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		applicant.StudentID,
		applicant.FirstName,
		applicant.LastName,
		applicant.Gender,
		applicant.DOB,
		applicant.CollegeYear,
		applicant.TotalCredits,
		applicant.PhoneNumber,
		applicant.Email,
		applicant.PasswordHash,
		applicant.Role,
		applicant.Status,
		applicant.GPA,
	).Scan(&applicant.ID, &applicant.CreatedAt, &applicant.UpdatedAt)
}

func (r *applicantRepository) FindByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	const query = `
        SELECT id, student_id, first_name, last_name, gender, dob, college_year,
               total_credits, phone_number, email, password_hash, role, status, gpa,
               created_at, updated_at
        FROM applicants WHERE email=$1`

	var applicant domain.Applicant
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&applicant.ID,
		&applicant.StudentID,
		&applicant.FirstName,
		&applicant.LastName,
		&applicant.Gender,
		&applicant.DOB,
		&applicant.CollegeYear,
		&applicant.TotalCredits,
		&applicant.PhoneNumber,
		&applicant.Email,
		&applicant.PasswordHash,
		&applicant.Role,
		&applicant.Status,
		&applicant.GPA,
		&applicant.CreatedAt,
		&applicant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) ListAll(ctx context.Context) ([]domain.Applicant, error) {
	const query = `
        SELECT id, student_id, first_name, last_name, gender, dob, college_year,
               total_credits, phone_number, email, password_hash, role, status, gpa,
               created_at, updated_at
        FROM applicants ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applicants := make([]domain.Applicant, 0)
	for rows.Next() {
		var applicant domain.Applicant
		if err := rows.Scan(
			&applicant.ID,
			&applicant.StudentID,
			&applicant.FirstName,
			&applicant.LastName,
			&applicant.Gender,
			&applicant.DOB,
			&applicant.CollegeYear,
			&applicant.TotalCredits,
			&applicant.PhoneNumber,
			&applicant.Email,
			&applicant.PasswordHash,
			&applicant.Role,
			&applicant.Status,
			&applicant.GPA,
			&applicant.CreatedAt,
			&applicant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applicants = append(applicants, applicant)
	}
	return applicants, rows.Err()
}

// SetAccepted marks the matching applicant as accepted. Zero rows affected
// is success: accepting an unknown student_id is a silent no-op.
func (r *applicantRepository) SetAccepted(ctx context.Context, studentID string) error {
	const query = `
        UPDATE applicants SET status=$1, updated_at=NOW()
        WHERE student_id=$2`

	_, err := r.pool.Exec(ctx, query, domain.StatusAccepted, studentID)
	return err
}
