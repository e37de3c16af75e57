package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/domain"
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional para los tests del motor:
// el runner toma un snapshot antes de ejecutar y lo restaura si la función
// retorna error, igual que un Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products      map[int64]*entity.Product
	logs          []*entity.InventoryLog
	nextProductID int64
	nextLogID     int64
}

func newMemStore() *memStore {
	return &memStore{
		products:      make(map[int64]*entity.Product),
		nextProductID: 1,
		nextLogID:     1,
	}
}

func (s *memStore) addProduct(id int64, name, reference string, stock int64) *entity.Product {
	now := time.Now()
	p := &entity.Product{
		ID: id, Name: name, Reference: reference,
		CurrentStock: stock, CreatedAt: now, UpdatedAt: now,
	}
	s.products[id] = p
	if id >= s.nextProductID {
		s.nextProductID = id + 1
	}
	return p
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:      make(map[int64]*entity.Product, len(s.products)),
		logs:          make([]*entity.InventoryLog, len(s.logs)),
		nextProductID: s.nextProductID,
		nextLogID:     s.nextLogID,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for i, l := range s.logs {
		cl := *l
		c.logs[i] = &cl
	}
	return c
}

// failures puntos de inyección de fallas de almacenamiento.
type failures struct {
	updateStockFor int64 // falla UpdateStock para este producto (0 = nunca)
	logCreate      bool  // falla todo Create de logs
}

type memProductRepo struct {
	s    *memStore
	fail *failures
}

func (r *memProductRepo) Create(product *entity.Product) error {
	for _, p := range r.s.products {
		if p.Reference == product.Reference {
			return domain.ErrDuplicate
		}
	}
	product.ID = r.s.nextProductID
	r.s.nextProductID++
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetByReference(reference string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Reference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	p, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Name = product.Name
	p.Reference = product.Reference
	p.Price = product.Price
	p.UpdatedAt = product.UpdatedAt
	return nil
}

func (r *memProductRepo) UpdateStock(productID, newStock int64) error {
	if r.fail != nil && r.fail.updateStockFor == productID {
		return errDeBD
	}
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	return nil
}

func (r *memProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	all := r.filtered(filter)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memProductRepo) Count(filter repository.ProductFilter) (int, error) {
	return len(r.filtered(filter)), nil
}

func (r *memProductRepo) filtered(filter repository.ProductFilter) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(p.Reference), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Reference != "" && !strings.Contains(strings.ToLower(p.Reference), strings.ToLower(filter.Reference)) {
			continue
		}
		if filter.MinStock != nil && p.CurrentStock < *filter.MinStock {
			continue
		}
		if filter.MaxStock != nil && p.CurrentStock > *filter.MaxStock {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memProductRepo) ListLowStock(threshold int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CurrentStock <= threshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrentStock != out[j].CurrentStock {
			return out[i].CurrentStock < out[j].CurrentStock
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memProductRepo) Delete(id int64) error {
	delete(r.s.products, id)
	return nil
}

type memLogRepo struct {
	s    *memStore
	fail *failures
}

func (r *memLogRepo) Create(log *entity.InventoryLog) error {
	if r.fail != nil && r.fail.logCreate {
		return errDeBD
	}
	log.ID = r.s.nextLogID
	r.s.nextLogID++
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	cp := *log
	r.s.logs = append(r.s.logs, &cp)
	return nil
}

// dateOnly trunca a fecha calendario, igual que la comparación ::date en SQL.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func matches(l *entity.InventoryLog, filter repository.LogFilter) bool {
	if filter.ProductID != nil && l.ProductID != *filter.ProductID {
		return false
	}
	if filter.DateFrom != nil && dateOnly(l.CreatedAt).Before(dateOnly(*filter.DateFrom)) {
		return false
	}
	if filter.DateTo != nil && dateOnly(l.CreatedAt).After(dateOnly(*filter.DateTo)) {
		return false
	}
	if filter.UserSource != "" && !strings.Contains(strings.ToLower(l.UserSource), strings.ToLower(filter.UserSource)) {
		return false
	}
	return true
}

func (r *memLogRepo) ListFiltered(filter repository.LogFilter, limit, offset int) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	for _, l := range r.s.logs {
		if matches(l, filter) {
			cp := *l
			if p, ok := r.s.products[l.ProductID]; ok {
				cp.ProductName = p.Name
				cp.ProductReference = p.Reference
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *memLogRepo) CountFiltered(filter repository.LogFilter) (int, error) {
	count := 0
	for _, l := range r.s.logs {
		if matches(l, filter) {
			count++
		}
	}
	return count, nil
}

func (r *memLogRepo) ListByProduct(productID int64, limit int) ([]*entity.InventoryLog, error) {
	return r.ListFiltered(repository.LogFilter{ProductID: &productID}, limit, 0)
}

func (r *memLogRepo) DeleteByProduct(productID int64) error {
	var kept []*entity.InventoryLog
	for _, l := range r.s.logs {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	r.s.logs = kept
	return nil
}

func (r *memLogRepo) Statistics(from, to *time.Time) (*entity.InventoryStatistics, error) {
	filter := repository.LogFilter{DateFrom: from, DateTo: to}
	stats := &entity.InventoryStatistics{}
	for _, l := range r.s.logs {
		if !matches(l, filter) {
			continue
		}
		stats.TotalLogs++
		if l.ChangeAmount > 0 {
			stats.TotalStockIncreases += l.ChangeAmount
		} else if l.ChangeAmount < 0 {
			stats.TotalStockDecreases += -l.ChangeAmount
		}
	}
	stats.NetChange = stats.TotalStockIncreases - stats.TotalStockDecreases
	return stats, nil
}

// memTxRunner snapshot antes de ejecutar; restaura el almacén completo si la
// función retorna error.
type memTxRunner struct {
	s    *memStore
	fail *failures
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&memProductRepo{s: r.s, fail: r.fail}, &memLogRepo{s: r.s, fail: r.fail})
	if err != nil {
		*r.s = *snapshot
		return err
	}
	return nil
}

var errDeBD = errSentinel("falla simulada de almacenamiento")

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
