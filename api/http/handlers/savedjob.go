package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobraft/backend/api/http/presenter"
	"github.com/jobraft/backend/pkg/job"
	"github.com/jobraft/backend/pkg/savedjob"
	"github.com/jobraft/backend/pkg/security/jwt"
)

type SavedJobHandler struct {
	uc savedjob.UseCase
}

func NewSavedJobHandler(uc savedjob.UseCase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

type savedStateResponse struct {
	Saved bool `json:"saved"`
}

// Save bookmarks a job. Saving twice is fine and reports saved either way.
// @Summary Save job
// @Tags    saved-jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} savedStateResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/saved [put]
func (h *SavedJobHandler) Save(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Save(c.Context(), uid, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return serverError(c, err, "save job")
	}
	return presenter.JSON(c, http.StatusOK, savedStateResponse{Saved: true})
}

// Unsave removes a bookmark; removing an absent one still succeeds.
// @Summary Unsave job
// @Tags    saved-jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} savedStateResponse
// @Router  /jobs/{id}/saved [delete]
func (h *SavedJobHandler) Unsave(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Unsave(c.Context(), uid, jobID); err != nil {
		return serverError(c, err, "unsave job")
	}
	return presenter.JSON(c, http.StatusOK, savedStateResponse{Saved: false})
}

// State reports whether the caller has bookmarked the job.
// @Summary Saved state
// @Tags    saved-jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} savedStateResponse
// @Router  /jobs/{id}/saved [get]
func (h *SavedJobHandler) State(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	saved, err := h.uc.IsSaved(c.Context(), uid, jobID)
	if err != nil {
		return serverError(c, err, "load saved state")
	}
	return presenter.JSON(c, http.StatusOK, savedStateResponse{Saved: saved})
}

// Toggle flips the bookmark and reports the resulting state.
// @Summary Toggle saved job
// @Tags    saved-jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} savedStateResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/saved/toggle [post]
func (h *SavedJobHandler) Toggle(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	saved, err := h.uc.Toggle(c.Context(), uid, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return serverError(c, err, "toggle saved job")
	}
	return presenter.JSON(c, http.StatusOK, savedStateResponse{Saved: saved})
}

// Mine lists the caller's bookmarked jobs, most recently saved first.
// @Summary My saved jobs
// @Tags    saved-jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} job.Job
// @Router  /me/saved-jobs [get]
func (h *SavedJobHandler) Mine(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	jobs, err := h.uc.ListJobs(c.Context(), uid, limit, offset)
	if err != nil {
		return serverError(c, err, "load saved jobs")
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}
