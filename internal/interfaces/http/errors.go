// Package http expone la API local que consume el front-end de escritorio.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
)

// mapError traduce los errores de dominio a la respuesta uniforme de la API.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoSelection):
		return respond(c, fiber.StatusBadRequest, "NO_SELECTION", err)
	case errors.Is(err, domain.ErrInvalidQuantity):
		return respond(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrMissingInvoice):
		return respond(c, fiber.StatusConflict, "MISSING_INVOICE", err)
	case errors.Is(err, domain.ErrJobRunning):
		return respond(c, fiber.StatusConflict, "JOB_RUNNING", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrNotAuthenticated):
		return respond(c, fiber.StatusUnauthorized, "NOT_AUTHENTICATED", err)
	case errors.Is(err, domain.ErrBadCredential):
		return respond(c, fiber.StatusForbidden, "BAD_CREDENTIAL", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
