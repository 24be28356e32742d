package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recepciones-api/internal/application/dto"
	"github.com/jhoicas/recepciones-api/internal/application/usecase"
)

// LocalHandler maneja las peticiones HTTP para locales (protegido).
type LocalHandler struct {
	uc *usecase.LocalUseCase
}

// NewLocalHandler construye el handler.
func NewLocalHandler(uc *usecase.LocalUseCase) *LocalHandler {
	return &LocalHandler{uc: uc}
}

// Create godoc
// @Summary      Crear local
// @Tags         locals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocalRequest  true  "Datos del local"
// @Success      201   {object}  dto.LocalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locals [post]
func (h *LocalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocalRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByName godoc
// @Summary      Obtener local por nombre
// @Tags         locals
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del local"
// @Success      200   {object}  dto.LocalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locals/{name} [get]
func (h *LocalHandler) GetByName(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), localName(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOCAL_NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar locales
// @Tags         locals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.LocalListResponse
// @Router       /api/locals [get]
func (h *LocalHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tipo o dirección de un local
// @Tags         locals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string                  true  "Nombre del local"
// @Param        body  body  dto.UpdateLocalRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.LocalResponse
// @Router       /api/locals/{name} [put]
func (h *LocalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocalRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), localName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deletable godoc
// @Summary      ¿Se puede eliminar el local?
// @Tags         locals
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del local"
// @Success      200   {object}  access.LocalDeletionCheck
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/locals/{name}/deletable [get]
func (h *LocalHandler) Deletable(c *fiber.Ctx) error {
	out, err := h.uc.CanDelete(c.UserContext(), localName(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar local
// @Tags         locals
// @Security     Bearer
// @Param        name  path  string  true  "Nombre del local"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locals/{name} [delete]
func (h *LocalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), localName(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// localName los nombres llevan espacios ("Mall A"); el parámetro llega URL-encoded.
func localName(c *fiber.Ctx) string {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Params("name")
	}
	return name
}
