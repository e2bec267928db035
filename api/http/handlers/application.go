package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobraft/backend/api/http/presenter"
	"github.com/jobraft/backend/pkg/application"
	"github.com/jobraft/backend/pkg/job"
	"github.com/jobraft/backend/pkg/security/jwt"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	CoverLetter *string `json:"cover_letter"`
	ResumeURL   *string `json:"resume_url"`
}

// Apply submits an application for the authenticated seeker. A repeat
// submission for the same job returns 409 with a friendly message.
// @Summary Apply to job
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Param   input body applyRequest true "application payload"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	app, err := h.uc.Apply(c.Context(), application.Application{
		JobID:       jobID,
		SeekerID:    uid,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyApplied):
			return presenter.Error(c, http.StatusConflict, err.Error())
		case errors.Is(err, application.ErrSubmitDenied):
			return presenter.Error(c, http.StatusForbidden, err.Error())
		case errors.Is(err, job.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "job not found")
		default:
			return serverError(c, err, "submit application")
		}
	}
	return presenter.JSON(c, http.StatusCreated, app)
}

// Mine lists the caller's applications newest-first.
// @Summary My applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Router  /me/applications [get]
func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	apps, err := h.uc.ListForSeeker(c.Context(), uid, limit, offset)
	if err != nil {
		return serverError(c, err, "load applications")
	}
	return presenter.JSON(c, http.StatusOK, apps)
}

// ForJob lists applications for a posting the caller owns.
// @Summary Applications for a job
// @Tags    applications
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applications [get]
func (h *ApplicationHandler) ForJob(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	limit, offset := parseLimitOffset(c, 50)
	apps, err := h.uc.ListForJob(c.Context(), uid, jobID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotJobOwner):
			return presenter.Error(c, http.StatusForbidden, "job does not belong to you")
		case errors.Is(err, job.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "job not found")
		default:
			return serverError(c, err, "load applications")
		}
	}
	return presenter.JSON(c, http.StatusOK, apps)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances an application through the review pipeline.
// @Summary Update application status
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id path string true "application id (UUID)"
// @Param   input body statusRequest true "new status"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	app, err := h.uc.AdvanceStatus(c.Context(), uid, appID, application.Status(req.Status))
	if err != nil {
		var verr application.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, application.ErrNotJobOwner):
			return presenter.Error(c, http.StatusForbidden, "application does not belong to your job")
		case errors.Is(err, application.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "application not found")
		default:
			return serverError(c, err, "update application")
		}
	}
	return presenter.JSON(c, http.StatusOK, app)
}
