package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/pkg/validator"
)

// StockHandler maneja las mutaciones de stock: el endpoint que consumen los
// plugins y la actualización masiva.
type StockHandler struct {
	uc *inventory.StockUseCase
	v  validator.Validator
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, v validator.Validator) *StockHandler {
	return &StockHandler{uc: uc, v: v}
}

// UpdateStock godoc
// @Summary      Fijar el stock de un producto (contrato de plugins)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "Nuevo stock"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /api/products/{id}/stock [patch]
func (h *StockHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.v.Validate(in); err != nil {
		return respondValidation(c, "datos inválidos", validator.Messages(err))
	}

	source := in.UserSource
	if source == "" {
		source = GetSource(c)
	}
	res, err := h.uc.UpdateStock(c.UserContext(), int64(id), *in.Stock, source)
	if err != nil {
		return respondDomainError(c, err)
	}

	// Contrato plano que esperan los plugins: solo los cuatro campos.
	return respondOK(c, dto.StockUpdateData{
		ProductID:     res.Product.ID,
		PreviousStock: res.Log.PreviousStock,
		NewStock:      res.Log.NewStock,
		ChangeAmount:  res.ChangeAmount,
	})
}

// BulkUpdateStock godoc
// @Summary      Actualización masiva de stock (todo o nada)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateStockRequest  true  "Lote de actualizaciones"
// @Success      200   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /api/products/bulk-update-stock [post]
func (h *StockHandler) BulkUpdateStock(c *fiber.Ctx) error {
	var in dto.BulkUpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.v.Validate(in); err != nil {
		return respondValidation(c, "datos inválidos", validator.Messages(err))
	}

	source := in.UserSource
	if source == "" {
		source = GetSource(c)
	}
	out, err := h.uc.BulkUpdateStock(c.UserContext(), in.Updates, source)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}
