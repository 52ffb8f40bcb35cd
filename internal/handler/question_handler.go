package handler

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/importer"
	"examcraft/internal/logger"
	"examcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question bank requests
type QuestionHandler struct {
	questions service.QuestionService
	imports   service.ImportService
}

func NewQuestionHandler(questions service.QuestionService, imports service.ImportService) *QuestionHandler {
	return &QuestionHandler{questions: questions, imports: imports}
}

// ListQuestions godoc
// @Summary List questions
// @Description Filters combine; search matches question text case-insensitively.
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param subject_id query string false "Subject ID"
// @Param category query string false "Category"
// @Param difficulty query string false "easy, medium or hard"
// @Param search query string false "Text search"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	var q dto.QuestionListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	filter := domain.QuestionFilter{SubjectID: strings.TrimSpace(q.SubjectID), Search: strings.TrimSpace(q.Search)}

	var err error
	if filter.Category, err = parseCategoryParam(q.Category); err != nil {
		return err
	}
	if strings.TrimSpace(q.Difficulty) != "" {
		if filter.Difficulty, err = domain.ParseDifficultyLevel(q.Difficulty); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("difficulty", q.Difficulty, "one of easy, medium, hard")}
		}
	}

	questions, err := h.questions.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions))
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	question, err := h.questions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(question))
}

// CreateQuestion godoc
// @Summary Add a question
// @Description Options and correct answer are only kept for MCQ questions.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param question body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	question, err := questionFromRequest(c)
	if err != nil {
		return err
	}
	created, err := h.questions.Create(c.UserContext(), question)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: created.ID})
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	question, err := questionFromRequest(c)
	if err != nil {
		return err
	}
	updated, err := h.questions.Update(c.UserContext(), id, question)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(updated))
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Papers that used the question keep its id and report it as missing.
// @Tags questions
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	if err := h.questions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkUpload godoc
// @Summary Bulk upload questions
// @Description Accepts a multipart "file" field or a raw body. Valid rows are stored; invalid rows are reported with their row number.
// @Tags questions
// @Accept multipart/form-data
// @Accept text/csv
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param format query string false "csv or json; inferred from the file name or content type"
// @Param file formData file false "Question file"
// @Success 200 {object} dto.ImportReport
// @Failure 400 {object} middleware.ErrorResponse
// @Router /questions/bulk [post]
func (h *QuestionHandler) BulkUpload(c *fiber.Ctx) error {
	formatHint := c.Query("format")
	var body io.Reader

	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return domain.NewInvalidInputError("Could not read uploaded file").WithContext("reason", err.Error())
		}
		defer f.Close()
		body = f
		if formatHint == "" && strings.EqualFold(filepath.Ext(fileHeader.Filename), ".json") {
			formatHint = string(importer.FormatJSON)
		}
	} else {
		if len(c.Body()) == 0 {
			return domain.NewInvalidInputError("Upload a file in the \"file\" field or send it as the request body")
		}
		body = bytes.NewReader(c.Body())
		if formatHint == "" && strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			formatHint = string(importer.FormatJSON)
		}
	}

	format, err := importer.ParseFormat(formatHint)
	if err != nil {
		return err
	}
	report, err := h.imports.Import(c.UserContext(), format, body)
	if err != nil {
		return err
	}
	logger.Get().Info("Bulk upload finished",
		zap.String("userID", principalID(c)),
		zap.Int("inserted", report.Inserted),
		zap.Int("errors", len(report.Errors)))
	return c.JSON(report)
}

// DownloadTemplate godoc
// @Summary CSV template for bulk upload
// @Tags questions
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Router /questions/template.csv [get]
func (h *QuestionHandler) DownloadTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="question_template.csv"`)
	return c.SendString(importer.TemplateCSV)
}

func questionFromRequest(c *fiber.Ctx) (*domain.Question, error) {
	var req dto.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	category, err := parseCategoryParam(req.Category)
	if err != nil {
		return nil, err
	}
	difficulty, err := domain.ParseDifficultyLevel(req.DifficultyLevel)
	if err != nil {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("difficulty_level", req.DifficultyLevel, "one of easy, medium, hard")}
	}
	return &domain.Question{
		SubjectID:       req.SubjectID,
		Category:        category,
		QuestionText:    req.QuestionText,
		Options:         req.Options,
		CorrectAnswer:   req.CorrectAnswer,
		DifficultyLevel: difficulty,
	}, nil
}
