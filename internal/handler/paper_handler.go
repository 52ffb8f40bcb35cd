package handler

import (
	"fmt"

	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/middleware"
	"examcraft/internal/render"
	"examcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PaperHandler handles paper generation, retrieval and export
type PaperHandler struct {
	generator service.PaperGenerator
	papers    service.PaperService
	exports   service.ExportService
}

func NewPaperHandler(generator service.PaperGenerator, papers service.PaperService, exports service.ExportService) *PaperHandler {
	return &PaperHandler{generator: generator, papers: papers, exports: exports}
}

// GeneratePaper godoc
// @Summary Generate a paper with five sets
// @Description Draws the requested number of questions per category and stores sets A to E. When any category is short, nothing is stored and every shortfall is reported.
// @Tags papers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.GeneratePaperRequest true "Generation request"
// @Success 201 {object} dto.PaperResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse "Insufficient questions, see details.shortfalls"
// @Router /papers/generate [post]
func (h *PaperHandler) GeneratePaper(c *fiber.Ctx) error {
	var req dto.GeneratePaperRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	paper, err := h.generator.Generate(c.UserContext(), req.ToDomain(principalID(c)))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPaperResponse(paper))
}

// ListMyPapers godoc
// @Summary List my papers
// @Tags papers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.PaperResponse
// @Router /papers [get]
func (h *PaperHandler) ListMyPapers(c *fiber.Ctx) error {
	papers, err := h.papers.ListMine(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaperResponses(papers))
}

// ListAllPapers godoc
// @Summary List every paper
// @Tags papers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.PaperResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /papers/all [get]
func (h *PaperHandler) ListAllPapers(c *fiber.Ctx) error {
	papers, err := h.papers.ListAll(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaperResponses(papers))
}

// GetPaper godoc
// @Summary Get a paper
// @Tags papers
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Paper ID"
// @Success 200 {object} dto.PaperResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /papers/{id} [get]
func (h *PaperHandler) GetPaper(c *fiber.Ctx) error {
	paper, err := h.papers.Get(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaperResponse(paper))
}

// DeletePaper godoc
// @Summary Delete a paper and its sets
// @Tags papers
// @Security ApiKeyAuth
// @Param id path string true "Paper ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /papers/{id} [delete]
func (h *PaperHandler) DeletePaper(c *fiber.Ctx) error {
	if err := h.papers.Delete(c.UserContext(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListVariants godoc
// @Summary Set labels of every paper
// @Tags papers
// @Produce json
// @Success 200 {object} dto.VariantsResponse
// @Router /papers/variants [get]
func (h *PaperHandler) ListVariants(c *fiber.Ctx) error {
	return c.JSON(dto.VariantsResponse{Variants: domain.VariantLabels()})
}

// GetVariant godoc
// @Summary One set grouped into sections
// @Description Questions deleted since generation are listed in missing_question_ids.
// @Tags papers
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Paper ID"
// @Param variant path string true "A to E"
// @Success 200 {object} dto.ResolvedVariantResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /papers/{id}/variants/{variant} [get]
func (h *PaperHandler) GetVariant(c *fiber.Ctx) error {
	resolved, err := h.papers.ResolveVariant(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), variantParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResolvedVariantResponse(resolved, render.SectionTitle))
}

// PrintVariant godoc
// @Summary Printable HTML of one set
// @Tags papers
// @Produce html
// @Security ApiKeyAuth
// @Param id path string true "Paper ID"
// @Param variant path string true "A to E"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /papers/{id}/variants/{variant}/print [get]
func (h *PaperHandler) PrintVariant(c *fiber.Ctx) error {
	html, err := h.exports.HTML(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), variantParam(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// DownloadPDF godoc
// @Summary PDF of one set
// @Tags papers
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param id path string true "Paper ID"
// @Param variant path string true "A to E"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} middleware.ErrorResponse "Unknown paper, or PDF export disabled"
// @Router /papers/{id}/variants/{variant}/pdf [get]
func (h *PaperHandler) DownloadPDF(c *fiber.Ctx) error {
	id, variant := c.Params("id"), variantParam(c)
	pdf, err := h.exports.PDF(c.UserContext(), middleware.GetPrincipal(c), id, variant)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="paper-%s-set-%s.pdf"`, id, variant))
	return c.Send(pdf)
}
