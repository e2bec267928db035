package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobraft/backend/api/http/presenter"
	"github.com/jobraft/backend/pkg/auth"
	"github.com/jobraft/backend/pkg/profile"
	"github.com/jobraft/backend/pkg/security/jwt"
)

type ProfileHandler struct {
	profiles profile.UseCase
	users    auth.UserRepository
}

func NewProfileHandler(profiles profile.UseCase, users auth.UserRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users}
}

type profileDTO struct {
	UserID    string  `json:"user_id"`
	Role      string  `json:"role"`
	FullName  string  `json:"full_name"`
	Headline  string  `json:"headline"`
	Location  string  `json:"location"`
	AvatarURL string  `json:"avatar_url"`
	CompanyID *string `json:"company_id"`
}

func toProfileDTO(p profile.Profile) profileDTO {
	dto := profileDTO{
		UserID:    p.UserID.String(),
		Role:      string(p.Role),
		FullName:  p.FullName,
		Headline:  p.Headline,
		Location:  p.Location,
		AvatarURL: p.AvatarURL,
	}
	if p.CompanyID != nil {
		s := p.CompanyID.String()
		dto.CompanyID = &s
	}
	return dto
}

// Me returns the authenticated identity with its resolved profile. The
// resolution may create the profile row on first call.
// @Summary Current identity and profile
// @Tags    me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	prof, err := h.profiles.Ensure(c.Context(), uid, jwt.RoleHint(c), "")
	if err != nil {
		if errors.Is(err, profile.ErrNoProfile) {
			// Identity without a profile: still a valid session.
			return presenter.JSON(c, http.StatusOK, fiber.Map{"id": uid.String(), "profile": nil})
		}
		return serverError(c, err, "resolve profile")
	}
	payload := fiber.Map{"id": uid.String(), "profile": toProfileDTO(prof)}
	if user, err := h.users.GetByID(c.Context(), uid); err == nil {
		payload["email"] = user.Email
	}
	return presenter.JSON(c, http.StatusOK, payload)
}

type updateProfileRequest struct {
	Role      string `json:"role"`
	FullName  string `json:"full_name"`
	Headline  string `json:"headline"`
	Location  string `json:"location"`
	AvatarURL string `json:"avatar_url"`
	CompanyID string `json:"company_id"`
}

// UpdateProfile upserts the caller's profile (the settings path).
// @Summary Update own profile
// @Tags    me
// @Accept  json
// @Produce json
// @Param   input body updateProfileRequest true "profile fields"
// @Security BearerAuth
// @Success 200 {object} profileDTO
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	p := profile.Profile{
		UserID:    uid,
		Role:      profile.Role(req.Role),
		FullName:  req.FullName,
		Headline:  req.Headline,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
	}
	if p.Role == "" {
		// keep the current role when callers omit it
		if current, err := h.profiles.Get(c.Context(), uid); err == nil {
			p.Role = current.Role
		} else {
			p.Role = profile.RoleSeeker
		}
	}
	if req.CompanyID != "" {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid company_id")
		}
		p.CompanyID = &companyID
	}

	updated, err := h.profiles.Update(c.Context(), p)
	if err != nil {
		var verr profile.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return serverError(c, err, "update profile")
	}
	return presenter.JSON(c, http.StatusOK, toProfileDTO(updated))
}
