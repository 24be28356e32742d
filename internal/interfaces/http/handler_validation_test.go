package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recepciones-api/internal/application/dto"
	apphttp "github.com/jhoicas/recepciones-api/internal/interfaces/http"
)

// Los cuerpos inválidos se rechazan antes de llegar al caso de uso (nil aquí).
func TestHandlers_ValidacionDeCuerpo(t *testing.T) {
	app := fiber.New()
	users := apphttp.NewUserHandler(nil)
	locals := apphttp.NewLocalHandler(nil)
	app.Post("/users", users.Create)
	app.Put("/users/:id", users.Update)
	app.Post("/locals", locals.Create)

	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{"rol desconocido", "/users", `{"email":"a@example.com","password":"12345678","full_name":"A","role":"Gerente"}`, "role"},
		{"email inválido", "/users", `{"email":"no-es-email","password":"12345678","full_name":"A","role":"Store Operator"}`, "email"},
		{"password corta", "/users", `{"email":"a@example.com","password":"123","full_name":"A","role":"Store Operator"}`, "password"},
		{"tipo de local", "/locals", `{"name":"Mall A","type":"oficina"}`, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "VALIDATION", body.Code)
			assert.Contains(t, body.Fields, tt.field)
		})
	}

	req := httptest.NewRequest(http.MethodPut, "/users/u1", strings.NewReader(`{"status":"suspendido"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/locals", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}
