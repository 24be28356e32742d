package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recepciones-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"denegado", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"usuario inexistente", domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
		{"local inexistente", fmt.Errorf("assign: %w", domain.ErrLocalNotFound), fiber.StatusNotFound, "LOCAL_NOT_FOUND"},
		{"consulta fallida", domain.NewLookupError("perfil", cause), fiber.StatusServiceUnavailable, "LOOKUP_FAILED"},
		{"parcial", &domain.PartialMutationError{Operation: "delete-user", Step: "delete-profile", Completed: []string{"delete-locals"}, Err: cause}, fiber.StatusInternalServerError, "PARTIAL_MUTATION"},
		{"local en uso", &domain.LocalInUseError{Local: "Mall A", Reason: domain.ReasonInReceptionData}, fiber.StatusConflict, domain.ReasonInReceptionData},
		{"email duplicado", domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"desconocido", cause, fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Message, cause.Error(), "no se exponen errores del almacén")
		})
	}
}

func TestMapError_ParcialIncluyePaso(t *testing.T) {
	_, body := mapError(&domain.PartialMutationError{Operation: "delete-user", Step: "delete-identity", Err: errors.New("x")})
	assert.Equal(t, "delete-user", body.Fields["operation"])
	assert.Equal(t, "delete-identity", body.Fields["failed_step"])
}
