package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// Reference es opcional: si no se envía, el backend genera una.
// CurrentStock es puntero para distinguir "0 explícito" de "ausente".
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,max=255"`
	Reference    string           `json:"reference" validate:"omitempty,max=100"`
	CurrentStock *int64           `json:"current_stock" validate:"required,gte=0"`
	Price        *decimal.Decimal `json:"price,omitempty"`
}

// UpdateProductRequest body para PATCH/PUT /api/products/{id}.
// Si CurrentStock viene presente, el handler enruta por el motor de
// mutaciones (con log); el resto de campos se actualizan directo.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,max=255"`
	Reference    *string          `json:"reference" validate:"omitempty,max=100"`
	CurrentStock *int64           `json:"current_stock" validate:"omitempty,gte=0"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	UserSource   string           `json:"user_source"`
}

// ListProductsQuery filtros de GET /api/products.
type ListProductsQuery struct {
	Search    string `query:"search"`
	Name      string `query:"name"`
	Reference string `query:"reference"`
	MinStock  *int64 `query:"min_stock" validate:"omitempty,gte=0"`
	MaxStock  *int64 `query:"max_stock" validate:"omitempty,gte=0"`
	PageQuery
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Reference    string          `json:"reference"`
	CurrentStock int64           `json:"current_stock"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductFromEntity convierte la entidad a su representación JSON.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Reference:    p.Reference,
		CurrentStock: p.CurrentStock,
		Price:        p.Price,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// LowStockResponse respuesta de GET /api/products/low-stock.
type LowStockResponse struct {
	Threshold int64             `json:"threshold"`
	Count     int               `json:"count"`
	Products  []ProductResponse `json:"products"`
}
