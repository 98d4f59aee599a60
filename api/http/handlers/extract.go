package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobtion/api/http/presenter"
	"jobtion/pkg/vacancy"
)

type ExtractHandler struct {
	uc vacancy.ExtractService
}

func NewExtractHandler(uc vacancy.ExtractService) *ExtractHandler {
	return &ExtractHandler{uc: uc}
}

type extractRequest struct {
	URL string `json:"url"`
}

// Extract fetches a job posting URL and returns the structured posting.
// @Summary Extract a structured job posting from a URL
// @Description Fetches the page, strips it to visible text and synthesizes title, company, location, a short description, requirements and keywords.
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body extractRequest true "Posting URL"
// @Success 200 {object} vacancy.JobPosting
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /extract [post]
func (h *ExtractHandler) Extract(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.URL) == "" {
		return presenter.Error(c, http.StatusBadRequest, "URL is required")
	}
	job, err := h.uc.Extract(c.Context(), req.URL)
	if err != nil {
		return presenter.Fault(c, err)
	}
	return presenter.JSON(c, http.StatusOK, job)
}
