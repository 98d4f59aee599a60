package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobtion/api/http/presenter"
	"jobtion/pkg/resume"
	"jobtion/pkg/tailor"
	"jobtion/pkg/vacancy"
)

type TailorHandler struct {
	svc tailor.Service
}

func NewTailorHandler(svc tailor.Service) *TailorHandler {
	return &TailorHandler{svc: svc}
}

type tailorRequest struct {
	Resume *resume.Document    `json:"resume"`
	JobURL string              `json:"jobUrl"`
	Job    *vacancy.JobPosting `json:"job"`
}

// Tailor rewrites a structured resume's prose for a target job posting.
// @Summary Tailor a resume to a job posting
// @Description Takes the structured resume plus either a posting URL or an already-extracted posting, and returns the optimized experiences, projects, skills and an optional summary, alongside the posting used. All entry ids and factual fields are preserved.
// @Tags    resume
// @Accept  json
// @Produce json
// @Param   input body tailorRequest true "Resume and job target"
// @Success 200 {object} tailor.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /tailor-resume [post]
func (h *TailorHandler) Tailor(c *fiber.Ctx) error {
	var req tailorRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	if req.Resume == nil {
		return presenter.Error(c, http.StatusBadRequest, "resume data is required")
	}
	if strings.TrimSpace(req.JobURL) == "" && req.Job == nil {
		return presenter.Error(c, http.StatusBadRequest, "job URL or job details are required")
	}
	res, err := h.svc.Tailor(c.Context(), tailor.Input{
		Resume: *req.Resume,
		JobURL: req.JobURL,
		Job:    req.Job,
	})
	if err != nil {
		return presenter.Fault(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}
