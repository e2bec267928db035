package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobraft/backend/api/http/presenter"
	"github.com/jobraft/backend/pkg/company"
	"github.com/jobraft/backend/pkg/job"
	"github.com/jobraft/backend/pkg/security/jwt"
)

type CompanyHandler struct {
	companies company.UseCase
	jobs      job.UseCase
}

func NewCompanyHandler(companies company.UseCase, jobs job.UseCase) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobs: jobs}
}

type createCompanyRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	Website string `json:"website"`
	About   string `json:"about"`
}

// Create registers a company owned by the caller.
// @Summary Create company
// @Tags    companies
// @Accept  json
// @Produce json
// @Param   input body createCompanyRequest true "company payload"
// @Security BearerAuth
// @Success 201 {object} company.Company
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	created, err := h.companies.Create(c.Context(), company.Company{
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		Website:   req.Website,
		About:     req.About,
		CreatedBy: uid,
	})
	if err != nil {
		var verr company.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return serverError(c, err, "create company")
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// MyCompany returns the caller's company. 404 means "show the creation form".
// @Summary Own company
// @Tags    companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} company.Company
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /me/company [get]
func (h *CompanyHandler) MyCompany(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	myCompany, err := h.companies.MyCompany(c.Context(), uid)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "no company yet")
		}
		return serverError(c, err, "load company")
	}
	return presenter.JSON(c, http.StatusOK, myCompany)
}

// MyCompanyJobs lists the postings of the caller's company for the dashboard.
// @Summary Own company's jobs
// @Tags    companies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /me/company/jobs [get]
func (h *CompanyHandler) MyCompanyJobs(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	myCompany, err := h.companies.MyCompany(c.Context(), uid)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "no company yet")
		}
		return serverError(c, err, "load company")
	}
	limit, offset := parseLimitOffset(c, 50)
	jobs, err := h.jobs.ListByCompany(c.Context(), myCompany.ID, limit, offset)
	if err != nil {
		return serverError(c, err, "load company jobs")
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}
