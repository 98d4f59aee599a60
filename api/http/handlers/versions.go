package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobtion/api/http/presenter"
	"jobtion/pkg/resume"
	"jobtion/pkg/state"
)

type StateHandler struct {
	uc state.UseCase
}

func NewStateHandler(uc state.UseCase) *StateHandler { return &StateHandler{uc: uc} }

// @Summary Load the stored base resume
// @Tags    state
// @Produce json
// @Success 200 {object} resume.Document
// @Failure 404 {object} presenter.ErrorResponse "No resume stored yet"
// @Router  /resume [get]
func (h *StateHandler) GetResume(c *fiber.Ctx) error {
	doc, ok, err := h.uc.LoadResume(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load resume")
	}
	if !ok {
		return presenter.Error(c, http.StatusNotFound, "no resume stored")
	}
	return presenter.JSON(c, http.StatusOK, doc)
}

// @Summary Store the base resume, replacing any previous one
// @Tags    state
// @Accept  json
// @Produce json
// @Param   input body resume.Document true "Resume document"
// @Success 200 {object} resume.Document
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resume [put]
func (h *StateHandler) PutResume(c *fiber.Ctx) error {
	var doc resume.Document
	if err := c.BodyParser(&doc); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	if err := h.uc.SaveResume(c.Context(), doc); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save resume")
	}
	return presenter.JSON(c, http.StatusOK, doc)
}

// @Summary Delete the stored base resume
// @Tags    state
// @Produce json
// @Success 204 {object} nil
// @Router  /resume [delete]
func (h *StateHandler) DeleteResume(c *fiber.Ctx) error {
	if err := h.uc.DeleteResume(c.Context()); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete resume")
	}
	return c.SendStatus(http.StatusNoContent)
}

type saveVersionRequest struct {
	Name   string          `json:"name"`
	Resume resume.Document `json:"resume"`
}

// @Summary Save a named snapshot of a resume document
// @Tags    state
// @Accept  json
// @Produce json
// @Param   input body saveVersionRequest true "Version name and resume payload"
// @Success 201 {object} state.SavedVersion
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /versions [post]
func (h *StateHandler) SaveVersion(c *fiber.Ctx) error {
	var req saveVersionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return presenter.Error(c, http.StatusBadRequest, "version name is required")
	}
	v, err := h.uc.SaveVersion(c.Context(), req.Name, req.Resume)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save version")
	}
	return presenter.JSON(c, http.StatusCreated, v)
}

// @Summary List saved resume versions, newest first
// @Tags    state
// @Produce json
// @Success 200 {array} state.VersionMeta
// @Router  /versions [get]
func (h *StateHandler) ListVersions(c *fiber.Ctx) error {
	metas, err := h.uc.ListVersions(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list versions")
	}
	return presenter.JSON(c, http.StatusOK, metas)
}

// @Summary Load a saved resume version
// @Tags    state
// @Produce json
// @Param   id path string true "Version ID (UUID)"
// @Success 200 {object} state.SavedVersion
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /versions/{id} [get]
func (h *StateHandler) GetVersion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	v, err := h.uc.GetVersion(c.Context(), id)
	if err != nil {
		if errors.Is(err, state.ErrVersionNotFound) {
			return presenter.Error(c, http.StatusNotFound, "version not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load version")
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// @Summary Delete a saved resume version
// @Tags    state
// @Produce json
// @Param   id path string true "Version ID (UUID)"
// @Success 204 {object} nil
// @Router  /versions/{id} [delete]
func (h *StateHandler) DeleteVersion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.DeleteVersion(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete version")
	}
	return c.SendStatus(http.StatusNoContent)
}
