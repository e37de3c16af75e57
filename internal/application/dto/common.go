package dto

// Pagination metadatos de página que consume el panel admin. Se calculan
// siempre con la misma fórmula, independiente de las primitivas del motor
// de almacenamiento, para que el comportamiento sea reproducible.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// NewPagination calcula los metadatos de página:
// last_page = ceil(total/per_page) con mínimo 1;
// from = (page-1)*per_page + 1, o 0 si total es 0;
// to = min(from+per_page-1, total).
func NewPagination(page, perPage, total int) Pagination {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	from := 0
	to := 0
	if total > 0 {
		from = (page-1)*perPage + 1
		if from > total {
			from = 0
		} else {
			to = from + perPage - 1
			if to > total {
				to = total
			}
		}
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}

// PageQuery parámetros de paginación en query string (1-indexed).
type PageQuery struct {
	Page    int `query:"page" validate:"omitempty,gte=1"`
	PerPage int `query:"per_page" validate:"omitempty,gte=1,lte=100"`
}

// Defaults aplica valores por defecto y la cota superior de per_page.
func (p *PageQuery) Defaults(defaultPerPage, maxPerPage int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}
