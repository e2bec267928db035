package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobraft/backend/api/http/presenter"
	"github.com/jobraft/backend/pkg/company"
	"github.com/jobraft/backend/pkg/job"
	"github.com/jobraft/backend/pkg/security/jwt"
)

type JobHandler struct {
	uc job.UseCase
}

func NewJobHandler(uc job.UseCase) *JobHandler { return &JobHandler{uc: uc} }

// List returns postings newest-first with company denormalized; an empty
// board yields [] with 200, never an error.
// @Summary List jobs
// @Tags    jobs
// @Produce json
// @Param   q query string false "title search"
// @Param   employment_type query string false "full-time|part-time|contract|internship"
// @Param   location_type query string false "onsite|hybrid|remote"
// @Param   active query bool false "active postings only"
// @Success 200 {array} job.Job
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	f := job.Filter{
		Query:          c.Query("q"),
		EmploymentType: job.EmploymentType(c.Query("employment_type")),
		LocationType:   job.LocationType(c.Query("location_type")),
		ActiveOnly:     c.QueryBool("active"),
		Limit:          limit,
		Offset:         offset,
	}
	if f.EmploymentType != "" && !f.EmploymentType.Valid() {
		return presenter.Error(c, http.StatusBadRequest, "unknown employment_type")
	}
	if f.LocationType != "" && !f.LocationType.Valid() {
		return presenter.Error(c, http.StatusBadRequest, "unknown location_type")
	}
	jobs, err := h.uc.List(c.Context(), f)
	if err != nil {
		return serverError(c, err, "list jobs")
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// GetByID returns one posting.
// @Summary Job detail
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	j, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return serverError(c, err, "load job")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

type publishJobRequest struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	EmploymentType string `json:"employment_type"`
	LocationType   string `json:"location_type"`
	LocationText   string `json:"location_text"`
	MinSalary      *int64 `json:"min_salary"`
	MaxSalary      *int64 `json:"max_salary"`
	Currency       string `json:"currency"`
	Tags           string `json:"tags"`
}

// Publish creates a posting or republishes an existing one (same id).
// Validation is type coercion only, as the editor form does.
// @Summary Publish job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body publishJobRequest true "job payload; tags are comma separated"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Publish(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req publishJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid company_id")
	}
	j := job.Job{
		CompanyID:      companyID,
		Title:          req.Title,
		Description:    req.Description,
		EmploymentType: job.EmploymentType(req.EmploymentType),
		LocationType:   job.LocationType(req.LocationType),
		LocationText:   req.LocationText,
		MinSalary:      req.MinSalary,
		MaxSalary:      req.MaxSalary,
		Currency:       req.Currency,
		Tags:           job.SplitTags(req.Tags),
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid job id")
		}
		j.ID = id
	}
	published, err := h.uc.Publish(c.Context(), uid, j)
	if err != nil {
		var verr job.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, job.ErrNotJobOwner):
			return presenter.Error(c, http.StatusForbidden, "job does not belong to you")
		case errors.Is(err, job.ErrNotCompanyOwner):
			return presenter.Error(c, http.StatusForbidden, "company does not belong to you")
		case errors.Is(err, company.ErrNotFound):
			return presenter.Error(c, http.StatusBadRequest, "company not found")
		default:
			return serverError(c, err, "publish job")
		}
	}
	return presenter.JSON(c, http.StatusCreated, published)
}
