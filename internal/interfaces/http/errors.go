package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/domain"
)

// writeError traduce errores de dominio a códigos HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyIssued):
		status, code = fiber.StatusConflict, "ALREADY_ISSUED"
	case errors.Is(err, domain.ErrAlreadyPrepared):
		status, code = fiber.StatusConflict, "ALREADY_PREPARED"
	case errors.Is(err, domain.ErrNotPrepared):
		status, code = fiber.StatusConflict, "NOT_PREPARED"
	case errors.Is(err, domain.ErrLocked):
		status, code = fiber.StatusConflict, "LOCKED"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInvalidBackup):
		status, code = fiber.StatusBadRequest, "INVALID_BACKUP"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusUnprocessableEntity, "VALIDATION"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
