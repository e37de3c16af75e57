package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-sync-api/internal/domain"
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, reference, current_stock, price, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna su ID (BIGSERIAL).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, reference, current_stock, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.Reference, product.CurrentStock, product.Price,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Reference, &p.CurrentStock, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Retorna nil, nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Dos mutaciones concurrentes sobre el mismo producto quedan serializadas aquí;
// sobre productos distintos no se bloquean entre sí.
func (r *ProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// GetByReference obtiene un producto por referencia. Retorna nil, nil si no existe.
func (r *ProductRepo) GetByReference(reference string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE reference = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, reference))
	if err != nil {
		return nil, fmt.Errorf("get product by reference: %w", err)
	}
	return p, nil
}

// Update actualiza name, reference y price. No permite modificar el stock
// (se maneja vía UpdateStock desde el motor de mutaciones).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, reference = $3, price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Reference, product.Price, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija current_stock del producto (usado por el motor de mutaciones).
func (r *ProductRepo) UpdateStock(productID, newStock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		productID, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// buildProductWhere arma el WHERE dinámico del filtro y sus argumentos.
func buildProductWhere(filter repository.ProductFilter) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR reference ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.Name != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+filter.Name+"%")
		pos++
	}
	if filter.Reference != "" {
		where += fmt.Sprintf(" AND reference ILIKE $%d", pos)
		args = append(args, "%"+filter.Reference+"%")
		pos++
	}
	if filter.MinStock != nil {
		where += fmt.Sprintf(" AND current_stock >= $%d", pos)
		args = append(args, *filter.MinStock)
		pos++
	}
	if filter.MaxStock != nil {
		where += fmt.Sprintf(" AND current_stock <= $%d", pos)
		args = append(args, *filter.MaxStock)
		pos++
	}
	return where, args
}

// List lista productos filtrados, más recientes primero (id DESC).
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	where, args := buildProductWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY id DESC LIMIT $%d OFFSET $%d",
		productColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Reference, &p.CurrentStock, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta los productos que cumplen el filtro (para la paginación).
func (r *ProductRepo) Count(filter repository.ProductFilter) (int, error) {
	where, args := buildProductWhere(filter)
	var total int
	err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM products"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// ListLowStock lista los productos con current_stock <= threshold.
func (r *ProductRepo) ListLowStock(threshold int64) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE current_stock <= $1 ORDER BY current_stock ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Reference, &p.CurrentStock, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
