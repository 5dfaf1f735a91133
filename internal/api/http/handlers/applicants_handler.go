package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admissions-service/internal/api/dto"
	"github.com/spec-kit/admissions-service/internal/service"
)

// ApplicantsHandler exposes the four intake operations.
type ApplicantsHandler struct {
	applicants *service.ApplicantService
}

// NewApplicantsHandler constructs handler.
func NewApplicantsHandler(applicantService *service.ApplicantService) *ApplicantsHandler {
	return &ApplicantsHandler{applicants: applicantService}
}

// Submit handles POST /submit.
func (h *ApplicantsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.applicants.Submit(c.UserContext(), service.SubmitInput{
		StudentID:    req.StudentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		DOB:          req.DOB,
		CollegeYear:  req.CollegeYear,
		TotalCredits: req.TotalCredits,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		GPA:          req.GPA,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Form submitted successfully",
		"data_id": id,
	})
}

// Login handles POST /login.
func (h *ApplicantsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.applicants.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"user": dto.LoginUser{
			Email:  result.Email,
			Status: int(result.Status),
			Role:   result.Role,
		},
	})
}

// List handles GET /applicants.
func (h *ApplicantsHandler) List(c *fiber.Ctx) error {
	applicants, err := h.applicants.List(c.UserContext())
	if err != nil {
		return err
	}

	views := make([]dto.ApplicantView, 0, len(applicants))
	for _, applicant := range applicants {
		views = append(views, dto.NewApplicantView(applicant))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Applicants retrieved",
		"data":    views,
	})
}

// Accept handles POST /accept.
func (h *ApplicantsHandler) Accept(c *fiber.Ctx) error {
	var req dto.AcceptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.applicants.Accept(c.UserContext(), req.StudentID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Applicant accepted",
	})
}
