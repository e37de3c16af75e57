package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/pkg/validator"
)

// InventoryLogHandler maneja las consultas del historial de inventario.
type InventoryLogHandler struct {
	queryUC  *inventory.LogQueryUseCase
	exportUC *inventory.ExportUseCase
	v        validator.Validator
}

// NewInventoryLogHandler construye el handler.
func NewInventoryLogHandler(queryUC *inventory.LogQueryUseCase, exportUC *inventory.ExportUseCase, v validator.Validator) *InventoryLogHandler {
	return &InventoryLogHandler{queryUC: queryUC, exportUC: exportUC, v: v}
}

// Index godoc
// @Summary      Historial de inventario filtrado y paginado
// @Tags         inventory-logs
// @Produce      json
// @Param        product_id   query  int     false  "Filtro por producto"
// @Param        date_from    query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        date_to      query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        user_source  query  string  false  "Filtro por fuente (parcial)"
// @Param        page         query  int     false  "Página (1-indexed)"
// @Param        per_page     query  int     false  "Tamaño de página"
// @Success      200          {object}  Envelope
// @Router       /api/inventory-logs [get]
func (h *InventoryLogHandler) Index(c *fiber.Ctx) error {
	var q dto.ListLogsQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, fiber.StatusBadRequest, "query inválida")
	}
	if err := h.v.Validate(q); err != nil {
		return respondValidation(c, "filtros inválidos", validator.Messages(err))
	}
	out, err := h.queryUC.List(q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// ByProduct godoc
// @Summary      Últimos movimientos de un producto
// @Tags         inventory-logs
// @Produce      json
// @Param        id     path   int  true   "ID del producto"
// @Param        limit  query  int  false  "Máximo de movimientos"
// @Success      200    {object}  Envelope
// @Router       /api/products/{id}/inventory-logs [get]
func (h *InventoryLogHandler) ByProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "id inválido")
	}
	limit := c.QueryInt("limit", 0)
	out, err := h.queryUC.ForProduct(int64(id), limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.Map{
		"product_id": id,
		"count":      len(out),
		"logs":       out,
	})
}

// Statistics godoc
// @Summary      Estadísticas del historial
// @Tags         inventory-logs
// @Produce      json
// @Param        date_from  query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        date_to    query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Success      200        {object}  Envelope
// @Router       /api/inventory-logs/statistics [get]
func (h *InventoryLogHandler) Statistics(c *fiber.Ctx) error {
	var q dto.StatisticsQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, fiber.StatusBadRequest, "query inválida")
	}
	if err := h.v.Validate(q); err != nil {
		return respondValidation(c, "filtros inválidos", validator.Messages(err))
	}
	out, err := h.queryUC.Statistics(q)
	if err != nil {
		return respondDomainError(c, err)
	}

	// El eco del período consultado acompaña a los agregados.
	period := map[string]any{}
	if q.DateFrom != "" {
		period["date_from"] = q.DateFrom
	}
	if q.DateTo != "" {
		period["date_to"] = q.DateTo
	}
	return respondOK(c, fiber.Map{
		"statistics": out,
		"period":     period,
	})
}

// Export godoc
// @Summary      Exportar el historial (csv, json, xml o pdf)
// @Tags         inventory-logs
// @Produce      octet-stream
// @Param        product_id  query  int     false  "Filtro por producto"
// @Param        date_from   query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        date_to     query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        format      query  string  false  "csv (default), json, xml o pdf"
// @Success      200  {file}  file
// @Router       /api/inventory-logs/export [get]
func (h *InventoryLogHandler) Export(c *fiber.Ctx) error {
	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, fiber.StatusBadRequest, "query inválida")
	}
	if err := h.v.Validate(q); err != nil {
		return respondValidation(c, "filtros inválidos", validator.Messages(err))
	}
	file, err := h.exportUC.Export(q)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Content)
}
