package usecase

import (
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

// ProductUseCase consultas y actualizaciones de campos no-stock de productos.
// Las mutaciones de stock pasan siempre por el motor transaccional de
// inventario; aquí nunca se toca current_stock.
type ProductUseCase struct {
	repo              repository.ProductRepository
	defaultPerPage    int
	maxPerPage        int
	lowStockThreshold int64
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, defaultPerPage, maxPerPage int, lowStockThreshold int64) *ProductUseCase {
	if defaultPerPage < 1 {
		defaultPerPage = 15
	}
	if maxPerPage < 1 {
		maxPerPage = 100
	}
	if lowStockThreshold < 0 {
		lowStockThreshold = 10
	}
	return &ProductUseCase{
		repo:              repo,
		defaultPerPage:    defaultPerPage,
		maxPerPage:        maxPerPage,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetByID obtiene un producto por ID. Retorna nil, nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// List lista productos con filtros y paginación, del más nuevo al más viejo.
func (uc *ProductUseCase) List(q dto.ListProductsQuery) (*dto.ProductListResponse, error) {
	q.Defaults(uc.defaultPerPage, uc.maxPerPage)
	filter := repository.ProductFilter{
		Search:    q.Search,
		Name:      q.Name,
		Reference: q.Reference,
		MinStock:  q.MinStock,
		MaxStock:  q.MaxStock,
	}

	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	offset := (q.Page - 1) * q.PerPage
	list, err := uc.repo.List(filter, q.PerPage, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.NewPagination(q.Page, q.PerPage, total),
	}, nil
}

// Update actualiza nombre, referencia y precio. current_stock no se toca aquí:
// si el caller mandó stock, el handler enruta esa parte por el motor de
// mutaciones para que quede el registro en el historial.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Reference != nil {
		product.Reference = *in.Reference
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// LowStock lista productos con stock en o bajo el umbral. threshold nil usa
// el umbral configurado; 0 explícito lista solo los agotados.
func (uc *ProductUseCase) LowStock(threshold *int64) (*dto.LowStockResponse, error) {
	t := uc.lowStockThreshold
	if threshold != nil {
		t = *threshold
	}
	list, err := uc.repo.ListLowStock(t)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.LowStockResponse{
		Threshold: t,
		Count:     len(items),
		Products:  items,
	}, nil
}
