package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobtion/api/http/presenter"
	"jobtion/pkg/tracker"
)

type JobsHandler struct {
	uc tracker.UseCase
}

func NewJobsHandler(uc tracker.UseCase) *JobsHandler { return &JobsHandler{uc: uc} }

type jobRecordRequest struct {
	Title        string   `json:"title"`
	Link         string   `json:"link"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Salary       string   `json:"salary"`
	DueDate      string   `json:"dueDate"`
	Type         string   `json:"type"`
	TypeColor    string   `json:"typeColor"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
}

func (r jobRecordRequest) toRecord() tracker.JobRecord {
	return tracker.JobRecord{
		Title:        r.Title,
		Link:         r.Link,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
		Salary:       r.Salary,
		DueDate:      r.DueDate,
		Type:         r.Type,
		TypeColor:    r.TypeColor,
		Status:       tracker.Status(r.Status),
		Notes:        r.Notes,
	}
}

// @Summary Create a tracked job application
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   input body jobRecordRequest true "Job record"
// @Success 201 {object} tracker.JobRecord
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req jobRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	rec, err := h.uc.Create(c.Context(), req.toRecord())
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, rec)
}

// @Summary List tracked job applications, most recently updated first
// @Tags    tracker
// @Produce json
// @Success 200 {array} tracker.JobRecord
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	recs, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list job records")
	}
	return presenter.JSON(c, http.StatusOK, recs)
}

// @Summary Replace a tracked job application
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   id path string true "Record ID (UUID)"
// @Param   input body jobRecordRequest true "Job record"
// @Success 200 {object} tracker.JobRecord
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req jobRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	rec := req.toRecord()
	rec.ID = id
	updated, err := h.uc.Update(c.Context(), rec)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

type statusRequest struct {
	Status string `json:"status"`
}

// @Summary Set the status of a tracked job application
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   id path string true "Record ID (UUID)"
// @Param   input body statusRequest true "New status"
// @Success 200 {object} tracker.JobRecord
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/status [patch]
func (h *JobsHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	rec, err := h.uc.SetStatus(c.Context(), id, tracker.Status(req.Status))
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// @Summary Delete a tracked job application
// @Tags    tracker
// @Produce json
// @Param   id path string true "Record ID (UUID)"
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return trackerError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func trackerError(c *fiber.Ctx, err error) error {
	var ve tracker.ErrValidation
	if errors.As(err, &ve) {
		return presenter.Error(c, http.StatusBadRequest, ve.Error())
	}
	if errors.Is(err, tracker.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, "job record not found")
	}
	return presenter.Error(c, http.StatusInternalServerError, err.Error())
}
