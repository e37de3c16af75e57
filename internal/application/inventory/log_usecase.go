package inventory

import (
	"time"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/domain"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
)

// QueryConfig parámetros de paginación y export del motor de consultas.
type QueryConfig struct {
	DefaultPerPage int
	MaxPerPage     int
	ExportLimit    int
}

// LogQueryUseCase resuelve las consultas de solo lectura sobre el historial:
// listado filtrado con paginación, historial por producto y estadísticas.
type LogQueryUseCase struct {
	logRepo     repository.InventoryLogRepository
	productRepo repository.ProductRepository
	cfg         QueryConfig
}

// NewLogQueryUseCase construye el motor de consultas del historial.
func NewLogQueryUseCase(logRepo repository.InventoryLogRepository, productRepo repository.ProductRepository, cfg QueryConfig) *LogQueryUseCase {
	if cfg.DefaultPerPage < 1 {
		cfg.DefaultPerPage = 10
	}
	if cfg.MaxPerPage < 1 {
		cfg.MaxPerPage = 100
	}
	if cfg.ExportLimit < 1 {
		cfg.ExportLimit = 1000
	}
	return &LogQueryUseCase{logRepo: logRepo, productRepo: productRepo, cfg: cfg}
}

// List retorna una página del historial, del más reciente al más antiguo,
// con el eco de los filtros que efectivamente se aplicaron.
func (uc *LogQueryUseCase) List(q dto.ListLogsQuery) (*dto.LogListResponse, error) {
	q.Defaults(uc.cfg.DefaultPerPage, uc.cfg.MaxPerPage)
	filter := buildLogFilter(q.ProductID, q.DateFrom, q.DateTo, q.UserSource)

	total, err := uc.logRepo.CountFiltered(filter)
	if err != nil {
		return nil, err
	}
	offset := (q.Page - 1) * q.PerPage
	logs, err := uc.logRepo.ListFiltered(filter, q.PerPage, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.LogFromEntity(l))
	}

	applied := map[string]any{}
	if q.ProductID != nil {
		applied["product_id"] = *q.ProductID
	}
	if q.DateFrom != "" {
		applied["date_from"] = q.DateFrom
	}
	if q.DateTo != "" {
		applied["date_to"] = q.DateTo
	}
	if q.UserSource != "" {
		applied["user_source"] = q.UserSource
	}

	return &dto.LogListResponse{
		Items:          items,
		Pagination:     dto.NewPagination(q.Page, q.PerPage, total),
		FiltersApplied: applied,
	}, nil
}

// ForProduct retorna los últimos movimientos de un producto (sin paginar,
// acotado por limit). Producto inexistente retorna domain.ErrNotFound.
func (uc *LogQueryUseCase) ForProduct(productID int64, limit int) ([]dto.InventoryLogResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	switch {
	case limit < 1:
		limit = uc.cfg.DefaultPerPage
	case limit > uc.cfg.MaxPerPage:
		limit = uc.cfg.MaxPerPage
	}
	logs, err := uc.logRepo.ListByProduct(productID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.LogFromEntity(l))
	}
	return items, nil
}

// Statistics agrega el rango pedido (fechas calendario, inclusivas).
func (uc *LogQueryUseCase) Statistics(q dto.StatisticsQuery) (*dto.StatisticsResponse, error) {
	from := parseDate(q.DateFrom)
	to := parseDate(q.DateTo)
	stats, err := uc.logRepo.Statistics(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.StatisticsResponse{
		TotalLogs:           stats.TotalLogs,
		TotalStockIncreases: stats.TotalStockIncreases,
		TotalStockDecreases: stats.TotalStockDecreases,
		NetChange:           stats.NetChange,
	}, nil
}

func buildLogFilter(productID *int64, dateFrom, dateTo, userSource string) repository.LogFilter {
	return repository.LogFilter{
		ProductID:  productID,
		DateFrom:   parseDate(dateFrom),
		DateTo:     parseDate(dateTo),
		UserSource: userSource,
	}
}

// parseDate interpreta YYYY-MM-DD; el formato ya viene validado en el DTO,
// así que una cadena inválida se trata igual que ausente.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
