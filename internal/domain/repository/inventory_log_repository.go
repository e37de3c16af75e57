package repository

import (
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
)

// LogFilter filtros del historial de inventario (AND entre todos).
// DateFrom/DateTo son inclusivos y comparan por fecha calendario de
// created_at. UserSource filtra por substring sin distinguir mayúsculas.
type LogFilter struct {
	ProductID  *int64
	DateFrom   *time.Time
	DateTo     *time.Time
	UserSource string
}

// InventoryLogRepository define el puerto de persistencia del historial.
// Los registros son append-only: no existe Update.
type InventoryLogRepository interface {
	// Create inserta el registro y asigna ID y CreatedAt.
	Create(log *entity.InventoryLog) error
	// ListFiltered lista con JOIN a products (nombre y referencia),
	// ordenado por created_at DESC con desempate por id DESC.
	ListFiltered(filter LogFilter, limit, offset int) ([]*entity.InventoryLog, error)
	CountFiltered(filter LogFilter) (int, error)
	// ListByProduct lista los últimos registros de un producto (mismo orden).
	ListByProduct(productID int64, limit int) ([]*entity.InventoryLog, error)
	// DeleteByProduct borra todo el historial de un producto. Solo se usa
	// dentro de la transacción de borrado del producto.
	DeleteByProduct(productID int64) error
	// Statistics agrega los registros del rango (cotas opcionales, inclusivas
	// por fecha calendario).
	Statistics(from, to *time.Time) (*entity.InventoryStatistics, error)
}
