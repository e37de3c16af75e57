package dto

import (
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
)

// UpdateStockRequest body para PATCH /api/products/{id}/stock (endpoint que
// usan los plugins de los CMS). Stock es puntero para distinguir 0 de ausente.
type UpdateStockRequest struct {
	Stock      *int64 `json:"stock" validate:"required"`
	UserSource string `json:"user_source"`
}

// BulkUpdateEntry una entrada del lote. Ambos campos son obligatorios;
// el chequeo estructural es una pre-pasada sobre todo el lote.
type BulkUpdateEntry struct {
	ProductID *int64 `json:"product_id"`
	Stock     *int64 `json:"stock"`
}

// BulkUpdateStockRequest body para POST /api/products/bulk-update-stock.
type BulkUpdateStockRequest struct {
	Updates    []BulkUpdateEntry `json:"updates" validate:"required,min=1"`
	UserSource string            `json:"user_source"`
}

// StockUpdateData data del endpoint legacy de stock: el contrato que esperan
// los plugins (product_id, previous_stock, new_stock, change_amount).
type StockUpdateData struct {
	ProductID     int64 `json:"product_id"`
	PreviousStock int64 `json:"previous_stock"`
	NewStock      int64 `json:"new_stock"`
	ChangeAmount  int64 `json:"change_amount"`
}

// StockUpdateResult resultado completo de una mutación (bulk incluido).
type StockUpdateResult struct {
	Product      ProductResponse      `json:"product"`
	Log          InventoryLogResponse `json:"log"`
	ChangeAmount int64                `json:"change_amount"`
}

// BulkUpdateResponse resultado de un lote aplicado completo.
type BulkUpdateResponse struct {
	UpdatedCount int                 `json:"updated_count"`
	Results      []StockUpdateResult `json:"results"`
}

// InventoryLogResponse representación JSON de un registro del historial.
// CreatedAt usa el formato plano que renderiza el panel admin.
type InventoryLogResponse struct {
	ID               int64  `json:"id"`
	ProductID        int64  `json:"product_id"`
	ProductName      string `json:"product_name,omitempty"`
	ProductReference string `json:"product_reference,omitempty"`
	TransactionID    string `json:"transaction_id"`
	PreviousStock    int64  `json:"previous_stock"`
	NewStock         int64  `json:"new_stock"`
	ChangeAmount     int64  `json:"change_amount"`
	FormattedChange  string `json:"formatted_change"`
	UserSource       string `json:"user_source"`
	CreatedAt        string `json:"created_at"`
}

const logTimeLayout = "2006-01-02 15:04:05"

// LogFromEntity convierte la entidad a su representación JSON.
func LogFromEntity(l *entity.InventoryLog) InventoryLogResponse {
	return InventoryLogResponse{
		ID:               l.ID,
		ProductID:        l.ProductID,
		ProductName:      l.ProductName,
		ProductReference: l.ProductReference,
		TransactionID:    l.TransactionID,
		PreviousStock:    l.PreviousStock,
		NewStock:         l.NewStock,
		ChangeAmount:     l.ChangeAmount,
		FormattedChange:  l.FormattedChange(),
		UserSource:       l.UserSource,
		CreatedAt:        l.CreatedAt.Format(logTimeLayout),
	}
}

// ListLogsQuery filtros de GET /api/inventory-logs.
// Las fechas llegan como YYYY-MM-DD y son inclusivas por fecha calendario.
type ListLogsQuery struct {
	ProductID  *int64 `query:"product_id" validate:"omitempty,gt=0"`
	DateFrom   string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	UserSource string `query:"user_source"`
	PageQuery
}

// LogListResponse página del historial más el eco de filtros aplicados.
type LogListResponse struct {
	Items          []InventoryLogResponse `json:"items"`
	Pagination     Pagination             `json:"pagination"`
	FiltersApplied map[string]any         `json:"filters_applied"`
}

// StatisticsQuery filtros de GET /api/inventory-logs/statistics.
type StatisticsQuery struct {
	DateFrom string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// StatisticsResponse agregados del rango consultado.
type StatisticsResponse struct {
	TotalLogs           int64 `json:"total_logs"`
	TotalStockIncreases int64 `json:"total_stock_increases"`
	TotalStockDecreases int64 `json:"total_stock_decreases"`
	NetChange           int64 `json:"net_change"`
}

// ExportQuery filtros de GET /api/inventory-logs/export.
type ExportQuery struct {
	ProductID *int64 `query:"product_id" validate:"omitempty,gt=0"`
	DateFrom  string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Format    string `query:"format" validate:"omitempty,oneof=csv json xml pdf"`
}
