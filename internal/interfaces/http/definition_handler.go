package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/application/usecase"
)

// DefinitionHandler maneja la generación, validación e historial de definiciones.
type DefinitionHandler struct {
	uc *usecase.DefinitionUseCase
}

// NewDefinitionHandler construye el handler.
func NewDefinitionHandler(uc *usecase.DefinitionUseCase) *DefinitionHandler {
	return &DefinitionHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar una definición de tenant
// @Description  Compila la instrucción para el idioma e industria pedidos y la envía al proveedor.
// @Description  Devuelve el texto del proveedor sin modificar.
// @Tags         definition
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateDefinitionRequest  true  "provider, locale, industry y definition (todos opcionales)"
// @Success      200   {object}  dto.GenerationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /definition [post]
func (h *DefinitionHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateDefinitionRequest
	if ok, err := decodeBody(c, &req); !ok {
		return err
	}
	result, err := h.uc.Generate(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// Validate godoc
// @Summary      Validar una definición contra el contrato del despliegue
// @Tags         definition
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ValidateDefinitionRequest  true  "definition como string JSON u objeto"
// @Success      200   {object}  dto.ValidationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /definition/validate [post]
func (h *DefinitionHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateDefinitionRequest
	if ok, err := decodeBody(c, &req); !ok {
		return err
	}
	result, err := h.uc.ValidateDocument(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// List godoc
// @Summary      Historial de generaciones
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "máximo 100"  default(20)
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.GenerationListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /definition [get]
func (h *DefinitionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "limit y offset deben ser enteros")
	}
	res, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Get godoc
// @Summary      Obtener una generación del historial
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la generación"
// @Success      200  {object}  dto.GenerationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /definition/{id} [get]
func (h *DefinitionHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Schema godoc
// @Summary      Descripción estructurada del contrato de una versión
// @Tags         schema
// @Security     Bearer
// @Produce      json
// @Param        version  path      string  true  "v1, v2 o v3"
// @Success      200      {object}  schema.Contract
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /schema/{version} [get]
func (h *DefinitionHandler) Schema(c *fiber.Ctx) error {
	contract, err := h.uc.Contract(c.Params("version"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(contract)
}

// decodeBody exige un objeto JSON no vacío. Si falla ya escribió la respuesta 400.
func decodeBody(c *fiber.Ctx, dst any) (bool, error) {
	body := bytes.TrimSpace(c.Body())
	var fields map[string]json.RawMessage
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return false, badRequest(c, "NO_DATA", "No data provided")
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo de la petición inválido: se espera un objeto JSON")
	}
	if len(fields) == 0 {
		return false, badRequest(c, "NO_DATA", "No data provided")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo de la petición inválido: "+err.Error())
	}
	return true, nil
}
