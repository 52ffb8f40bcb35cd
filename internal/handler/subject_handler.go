package handler

import (
	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubjectHandler handles subject registry requests
type SubjectHandler struct {
	subjects  service.SubjectService
	questions service.QuestionService
}

func NewSubjectHandler(subjects service.SubjectService, questions service.QuestionService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, questions: questions}
}

// ListSubjects godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.SubjectResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /subjects [get]
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.subjects.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubjectResponses(subjects))
}

// GetSubject godoc
// @Summary Get a subject
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subject ID"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subjects/{id} [get]
func (h *SubjectHandler) GetSubject(c *fiber.Ctx) error {
	subject, err := h.subjects.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubjectResponse(subject))
}

// CreateSubject godoc
// @Summary Create a subject
// @Description The id defaults to the lower-cased code with spaces replaced by dashes.
// @Tags subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subject body dto.SubjectRequest true "Subject"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /subjects [post]
func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	var req dto.SubjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	subject, err := h.subjects.Create(c.UserContext(), &domain.Subject{ID: req.ID, Name: req.Name, Code: req.Code})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSubjectResponse(subject))
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subject ID"
// @Param subject body dto.SubjectRequest true "Subject"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subjects/{id} [put]
func (h *SubjectHandler) UpdateSubject(c *fiber.Ctx) error {
	var req dto.SubjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	subject, err := h.subjects.Update(c.UserContext(), c.Params("id"), &domain.Subject{Name: req.Name, Code: req.Code})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubjectResponse(subject))
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Description Questions and papers of the subject are kept.
// @Tags subjects
// @Security ApiKeyAuth
// @Param id path string true "Subject ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) DeleteSubject(c *fiber.Ctx) error {
	if err := h.subjects.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSubjectQuestions godoc
// @Summary List the questions of a subject
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subject ID or code"
// @Param category query string false "Category, e.g. mcq or 4marks"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subjects/{id}/questions [get]
func (h *SubjectHandler) ListSubjectQuestions(c *fiber.Ctx) error {
	category, err := parseCategoryParam(c.Query("category"))
	if err != nil {
		return err
	}
	questions, err := h.questions.ListBySubject(c.UserContext(), c.Params("id"), category)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions))
}

// GetAvailability godoc
// @Summary Questions available per category
// @Description Stored question counts of a subject for all five categories.
// @Tags subjects
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subject ID or code"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subjects/{id}/availability [get]
func (h *SubjectHandler) GetAvailability(c *fiber.Ctx) error {
	counts, err := h.questions.Availability(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAvailabilityResponse(c.Params("id"), counts))
}
