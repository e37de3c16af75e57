package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/domain"
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

// Fuentes por defecto de las mutaciones. Los plugins de los CMS envían la
// suya propia en user_source (ej. "wordpress_plugin", "prestashop_plugin").
const (
	DefaultSource  = "api"
	BulkSource     = "bulk_api"
	CreationSource = "creation"
)

// BulkError lote rechazado completo: ninguna mutación del lote quedó
// confirmada. Errors lista los motivos por entrada.
type BulkError struct {
	Errors []string
}

func (e *BulkError) Error() string {
	return "bulk update rechazado: " + strings.Join(e.Errors, "; ")
}

// StockUseCase es el motor de mutaciones de stock. Cada operación es un
// transaction script sobre un TxRunner explícito: bloqueo de fila
// (SELECT FOR UPDATE), update de stock, insert del log y Commit/Rollback.
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase construye el motor.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// UpdateStock fija el stock de un producto y registra el cambio en el
// historial, todo en una transacción. Retorna domain.ErrNegativeStock antes
// de abrir la transacción si newStock < 0, domain.ErrNotFound si el producto
// no existe, y *domain.MutationError (tx revertida) ante fallas de
// almacenamiento.
func (uc *StockUseCase) UpdateStock(ctx context.Context, productID, newStock int64, userSource string) (*dto.StockUpdateResult, error) {
	if newStock < 0 {
		return nil, domain.ErrNegativeStock
	}
	if userSource == "" {
		userSource = DefaultSource
	}

	txID := uuid.New().String()
	var result *dto.StockUpdateResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		res, err := applyMutation(productRepo, logRepo, productID, newStock, userSource, txID, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, domain.NewMutationError(err)
	}
	return result, nil
}

// applyMutation es el núcleo compartido por la mutación simple y el bulk.
// Asume una transacción en curso: bloquea la fila del producto, fija el
// stock y agrega exactamente un registro al historial. ChangeAmount se
// recalcula siempre aquí; nunca lo aporta el caller.
func applyMutation(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	productID, newStock int64,
	userSource, txID string,
	now time.Time,
) (*dto.StockUpdateResult, error) {
	if newStock < 0 {
		return nil, domain.ErrNegativeStock
	}
	product, err := productRepo.GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	previous := product.CurrentStock
	change := newStock - previous

	if err := productRepo.UpdateStock(productID, newStock); err != nil {
		return nil, err
	}
	product.CurrentStock = newStock
	product.UpdatedAt = now

	log := &entity.InventoryLog{
		ProductID:     productID,
		TransactionID: txID,
		PreviousStock: previous,
		NewStock:      newStock,
		ChangeAmount:  change,
		UserSource:    userSource,
		CreatedAt:     now,
	}
	if err := logRepo.Create(log); err != nil {
		return nil, err
	}
	log.ProductName = product.Name
	log.ProductReference = product.Reference

	return &dto.StockUpdateResult{
		Product:      dto.ProductFromEntity(product),
		Log:          dto.LogFromEntity(log),
		ChangeAmount: change,
	}, nil
}

// BulkUpdateStock aplica un lote de mutaciones con semántica todo-o-nada.
// Primero una pre-pasada estructural sobre todas las entradas (se reportan
// todas las inválidas, no solo la primera); con cero errores estructurales,
// todas las mutaciones corren en una única transacción externa y la primera
// falla revierte el lote completo. Retorna *BulkError cuando el lote fue
// rechazado.
func (uc *StockUseCase) BulkUpdateStock(ctx context.Context, updates []dto.BulkUpdateEntry, userSource string) (*dto.BulkUpdateResponse, error) {
	if userSource == "" {
		userSource = BulkSource
	}

	var structural []string
	for i, u := range updates {
		switch {
		case u.ProductID == nil || u.Stock == nil:
			structural = append(structural, fmt.Sprintf("entrada %d: falta product_id o stock", i))
		case *u.Stock < 0:
			structural = append(structural, fmt.Sprintf("entrada %d: el stock no puede ser negativo", i))
		}
	}
	if len(structural) > 0 {
		return nil, &BulkError{Errors: structural}
	}

	// Un único transaction_id para todo el lote: los registros del historial
	// quedan agrupados por la misma llamada.
	txID := uuid.New().String()
	now := time.Now()
	results := make([]dto.StockUpdateResult, 0, len(updates))

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		for _, u := range updates {
			res, err := applyMutation(productRepo, logRepo, *u.ProductID, *u.Stock, userSource, txID, now)
			if err != nil {
				return &BulkError{Errors: []string{fmt.Sprintf("producto %d: %v", *u.ProductID, err)}}
			}
			results = append(results, *res)
		}
		return nil
	})
	if err != nil {
		var be *BulkError
		if errors.As(err, &be) {
			return nil, be
		}
		return nil, domain.NewMutationError(err)
	}

	return &dto.BulkUpdateResponse{
		UpdatedCount: len(results),
		Results:      results,
	}, nil
}

// CreateProduct crea el producto y, si el stock inicial es mayor a cero,
// el registro de creación del historial, en la misma transacción.
// Referencia duplicada retorna domain.ErrDuplicate.
func (uc *StockUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	initial := int64(0)
	if in.CurrentStock != nil {
		initial = *in.CurrentStock
	}
	if initial < 0 {
		return nil, domain.ErrNegativeStock
	}
	reference := in.Reference
	if reference == "" {
		reference = generateReference()
	}
	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
	}

	now := time.Now()
	product := &entity.Product{
		Name:         in.Name,
		Reference:    reference,
		CurrentStock: initial,
		Price:        price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if initial > 0 {
			return logRepo.Create(&entity.InventoryLog{
				ProductID:     product.ID,
				TransactionID: uuid.New().String(),
				PreviousStock: 0,
				NewStock:      initial,
				ChangeAmount:  initial,
				UserSource:    CreationSource,
				CreatedAt:     now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewMutationError(err)
	}

	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// DeleteProduct borra el historial completo del producto y luego el
// producto, en una transacción: ambos borrados confirman juntos o ninguno.
// Retorna false (sin error) si el producto no existía.
func (uc *StockUseCase) DeleteProduct(ctx context.Context, productID int64) (bool, error) {
	deleted := false
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return nil
		}
		if err := logRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		if err := productRepo.Delete(productID); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, domain.NewMutationError(err)
	}
	return deleted, nil
}

// generateReference genera una referencia del estilo REF-3F2A9C41 cuando el
// caller no envía una en la creación.
func generateReference() string {
	return "REF-" + strings.ToUpper(uuid.New().String()[:8])
}
