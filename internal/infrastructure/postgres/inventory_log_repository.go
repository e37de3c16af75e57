package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla inventory_logs es append-only: solo INSERT, SELECT y el DELETE
// en cascada del borrado de producto.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create persiste un registro del historial y asigna su ID.
func (r *InventoryLogRepo) Create(log *entity.InventoryLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_logs (product_id, transaction_id, previous_stock, new_stock, change_amount, user_source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		log.ProductID, log.TransactionID, log.PreviousStock, log.NewStock,
		log.ChangeAmount, log.UserSource, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("create inventory log: %w", err)
	}
	return nil
}

// buildLogWhere arma el WHERE dinámico del filtro y sus argumentos.
// Las fechas comparan por fecha calendario (inclusive en ambos extremos).
func buildLogWhere(filter repository.LogFilter) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.ProductID != nil {
		where += fmt.Sprintf(" AND l.product_id = $%d", pos)
		args = append(args, *filter.ProductID)
		pos++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND l.created_at::date >= $%d::date", pos)
		args = append(args, *filter.DateFrom)
		pos++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND l.created_at::date <= $%d::date", pos)
		args = append(args, *filter.DateTo)
		pos++
	}
	if filter.UserSource != "" {
		where += fmt.Sprintf(" AND l.user_source ILIKE $%d", pos)
		args = append(args, "%"+filter.UserSource+"%")
		pos++
	}
	return where, args
}

const logColumns = `l.id, l.product_id, l.transaction_id, l.previous_stock, l.new_stock,
		l.change_amount, l.user_source, l.created_at, p.name, p.reference`

// ListFiltered lista el historial con datos del producto, más reciente primero
// (created_at DESC, desempate por id DESC para que el orden sea estable).
func (r *InventoryLogRepo) ListFiltered(filter repository.LogFilter, limit, offset int) ([]*entity.InventoryLog, error) {
	where, args := buildLogWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_logs l
		JOIN products p ON p.id = l.product_id
		%s ORDER BY l.created_at DESC, l.id DESC LIMIT $%d OFFSET $%d`,
		logColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var l entity.InventoryLog
		if err := rows.Scan(&l.ID, &l.ProductID, &l.TransactionID, &l.PreviousStock, &l.NewStock,
			&l.ChangeAmount, &l.UserSource, &l.CreatedAt, &l.ProductName, &l.ProductReference); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CountFiltered cuenta los registros que cumplen el filtro (para la paginación).
func (r *InventoryLogRepo) CountFiltered(filter repository.LogFilter) (int, error) {
	where, args := buildLogWhere(filter)
	var total int
	err := r.q.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM inventory_logs l"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count inventory logs: %w", err)
	}
	return total, nil
}

// ListByProduct lista los últimos registros de un producto (mismo orden que ListFiltered).
func (r *InventoryLogRepo) ListByProduct(productID int64, limit int) ([]*entity.InventoryLog, error) {
	query := `
		SELECT ` + logColumns + `
		FROM inventory_logs l
		JOIN products p ON p.id = l.product_id
		WHERE l.product_id = $1
		ORDER BY l.created_at DESC, l.id DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list logs by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var l entity.InventoryLog
		if err := rows.Scan(&l.ID, &l.ProductID, &l.TransactionID, &l.PreviousStock, &l.NewStock,
			&l.ChangeAmount, &l.UserSource, &l.CreatedAt, &l.ProductName, &l.ProductReference); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteByProduct borra todo el historial de un producto (parte de la
// transacción de borrado del producto).
func (r *InventoryLogRepo) DeleteByProduct(productID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_logs WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete logs by product: %w", err)
	}
	return nil
}

// Statistics agrega los registros del rango: total, suma de incrementos,
// valor absoluto de la suma de decrementos y cambio neto.
func (r *InventoryLogRepo) Statistics(from, to *time.Time) (*entity.InventoryStatistics, error) {
	filter := repository.LogFilter{DateFrom: from, DateTo: to}
	where, args := buildLogWhere(filter)
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(l.change_amount) FILTER (WHERE l.change_amount > 0), 0),
		       COALESCE(ABS(SUM(l.change_amount) FILTER (WHERE l.change_amount < 0)), 0)
		FROM inventory_logs l` + where

	var s entity.InventoryStatistics
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.TotalLogs, &s.TotalStockIncreases, &s.TotalStockDecreases,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory statistics: %w", err)
	}
	s.NetChange = s.TotalStockIncreases - s.TotalStockDecreases
	return &s, nil
}
