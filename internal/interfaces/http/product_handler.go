package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/internal/application/usecase"
	"github.com/jhoicas/inventory-sync-api/pkg/validator"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	stockUC *inventory.StockUseCase
	v       validator.Validator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stockUC *inventory.StockUseCase, v validator.Validator) *ProductHandler {
	return &ProductHandler{uc: uc, stockUC: stockUC, v: v}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.v.Validate(in); err != nil {
		return respondValidation(c, "datos inválidos", validator.Messages(err))
	}
	out, err := h.stockUC.CreateProduct(c.UserContext(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return respondError(c, fiber.StatusNotFound, "producto no encontrado")
	}
	return respondOK(c, out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        search     query  string  false  "Busca en nombre y referencia"
// @Param        name       query  string  false  "Filtro por nombre"
// @Param        reference  query  string  false  "Filtro por referencia"
// @Param        min_stock  query  int     false  "Stock mínimo"
// @Param        max_stock  query  int     false  "Stock máximo"
// @Param        page       query  int     false  "Página (1-indexed)"
// @Param        per_page   query  int     false  "Tamaño de página"
// @Success      200        {object}  Envelope
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ListProductsQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, fiber.StatusBadRequest, "query inválida")
	}
	if err := h.v.Validate(q); err != nil {
		return respondValidation(c, "filtros inválidos", validator.Messages(err))
	}
	out, err := h.uc.List(q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.v.Validate(in); err != nil {
		return respondValidation(c, "datos inválidos", validator.Messages(err))
	}

	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return respondError(c, fiber.StatusNotFound, "producto no encontrado")
	}

	// Si vino stock, esa parte pasa por el motor de mutaciones para que el
	// cambio quede en el historial.
	if in.CurrentStock != nil && *in.CurrentStock != out.CurrentStock {
		source := in.UserSource
		if source == "" {
			source = GetSource(c)
		}
		res, err := h.stockUC.UpdateStock(c.UserContext(), int64(id), *in.CurrentStock, source)
		if err != nil {
			return respondDomainError(c, err)
		}
		out = &res.Product
	}
	return respondOK(c, out)
}

// Delete godoc
// @Summary      Eliminar producto y su historial
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	deleted, err := h.stockUC.DeleteProduct(c.UserContext(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if !deleted {
		return respondError(c, fiber.StatusNotFound, "producto no encontrado")
	}
	return respondMessage(c, "producto eliminado")
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         products
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (usa el configurado si se omite; 0 lista solo agotados)"
// @Success      200        {object}  Envelope
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	// Ausente y 0 explícito son consultas distintas: el default solo aplica
	// cuando el parámetro no vino.
	var threshold *int64
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return respondError(c, fiber.StatusBadRequest, "threshold inválido")
		}
		threshold = &v
	}
	out, err := h.uc.LowStock(threshold)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}
