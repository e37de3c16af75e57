package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// mutaciones: el update de stock y el insert del log confirman juntos o
// se revierte todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}

// LogPDFGenerator genera el reporte PDF del historial (puerto del export).
type LogPDFGenerator interface {
	GenerateLogsPDF(logs []*entity.InventoryLog, generatedAt time.Time) ([]byte, error)
}

// LogXMLBuilder genera el documento XML del historial (puerto del export).
type LogXMLBuilder interface {
	BuildLogsXML(logs []*entity.InventoryLog, generatedAt time.Time) ([]byte, error)
}
