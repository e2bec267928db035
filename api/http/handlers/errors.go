package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jobraft/backend/api/http/presenter"
)

// serverError handles failures with no friendly mapping: the cause is logged
// and its message passed through to the caller.
func serverError(c *fiber.Ctx, err error, op string) error {
	log.Error().Err(err).Str("op", op).Str("path", c.Path()).Msg("request failed")
	return presenter.Error(c, http.StatusInternalServerError, err.Error())
}
