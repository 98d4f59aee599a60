package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"jobtion/api/http/presenter"
	"jobtion/pkg/resume"
)

type ResumeHandler struct {
	parser resume.ParseService
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(parser resume.ParseService, maxUploadMB int) *ResumeHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 15
	}
	return &ResumeHandler{parser: parser, maxBytes: int64(maxUploadMB) << 20}
}

// Parse handles an uploaded resume PDF: extracts its text, asks the model
// for the structured document and returns it with ids populated.
// @Summary Parse an uploaded resume PDF into a structured document
// @Description Accepts a PDF, extracts the text layer and synthesizes profile, experiences, projects, education and skills. Every entry gets a fresh unique id.
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Resume file (PDF)"
// @Success 200 {object} resume.Document
// @Failure 400 {object} presenter.ErrorResponse "Missing file, non-PDF, or no extractable text"
// @Failure 500 {object} presenter.ErrorResponse "Missing credential or model failure"
// @Router  /parse-resume [post]
func (h *ResumeHandler) Parse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "no file provided")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	doc, err := h.parser.Parse(c.Context(), fh.Filename, data)
	if err != nil {
		return presenter.Fault(c, err)
	}
	return presenter.JSON(c, http.StatusOK, doc)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
