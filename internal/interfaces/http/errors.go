package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recepciones-api/internal/application/dto"
	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/pkg/validator"
)

// respondError traduce errores de dominio a status HTTP y cuerpo ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var inUse *domain.LocalInUseError
	var partial *domain.PartialMutationError
	switch {
	case errors.As(err, &inUse):
		return fiber.StatusConflict, dto.ErrorResponse{Code: inUse.Reason, Message: domain.ReasonMessage(inUse.Reason)}
	case errors.As(err, &partial):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code:    "PARTIAL_MUTATION",
			Message: "la operación quedó incompleta; reintente para completarla",
			Fields:  map[string]string{"operation": partial.Operation, "failed_step": partial.Step},
		}
	case errors.Is(err, domain.ErrLookupFailed):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "LOOKUP_FAILED", Message: "no se pudo consultar el almacén de datos, reintente"}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"}
	case errors.Is(err, domain.ErrLocalNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "LOCAL_NOT_FOUND", Message: "local no encontrado"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida para el rol o local del actor"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// parseBody decodifica y valida el cuerpo. Si falla ya respondió 400 y devuelve false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validator.Validate(out); fields != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: fields})
	}
	return true, nil
}

// pageFromQuery lee limit/offset con los topes de dto.PageRequest.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
