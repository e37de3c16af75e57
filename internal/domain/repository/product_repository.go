package repository

import (
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos (AND entre todos).
// Search busca por substring en name O reference; Name y Reference filtran
// cada campo por separado. Min/MaxStock son cotas inclusivas sobre
// current_stock (nil = sin cota).
type ProductFilter struct {
	Search    string
	Name      string
	Reference string
	MinStock  *int64
	MaxStock  *int64
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto y asigna su ID. Retorna domain.ErrDuplicate
	// si la referencia ya existe.
	Create(product *entity.Product) error
	// GetByID retorna nil, nil si el producto no existe.
	GetByID(id int64) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la
	// transacción en curso. Retorna nil, nil si el producto no existe.
	GetByIDForUpdate(id int64) (*entity.Product, error)
	GetByReference(reference string) (*entity.Product, error)
	// Update modifica name, reference y price. El stock NO se toca aquí:
	// se maneja vía UpdateStock desde el motor de mutaciones.
	Update(product *entity.Product) error
	// UpdateStock fija current_stock del producto (solo motor de mutaciones).
	UpdateStock(productID, newStock int64) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(filter ProductFilter) (int, error)
	// ListLowStock retorna los productos con current_stock <= threshold.
	ListLowStock(threshold int64) ([]*entity.Product, error)
	Delete(id int64) error
}
