package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
)

func TestNewPagination_PaginaIntermedia(t *testing.T) {
	p := dto.NewPagination(3, 10, 47)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 47, p.Total)
	assert.Equal(t, 5, p.LastPage)
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 30, p.To)
}

func TestNewPagination_UltimaPaginaParcial(t *testing.T) {
	p := dto.NewPagination(5, 10, 47)
	assert.Equal(t, 41, p.From)
	assert.Equal(t, 47, p.To)
}

func TestNewPagination_TotalCero(t *testing.T) {
	p := dto.NewPagination(1, 10, 0)
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 0, p.To)
}

func TestNewPagination_PaginaMasAllaDelTotal(t *testing.T) {
	p := dto.NewPagination(9, 10, 5)
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 0, p.To)
}

func TestNewPagination_TotalExacto(t *testing.T) {
	p := dto.NewPagination(2, 10, 20)
	assert.Equal(t, 2, p.LastPage)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 20, p.To)
}

func TestPageQueryDefaults(t *testing.T) {
	q := dto.PageQuery{}
	q.Defaults(10, 100)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PerPage)

	q = dto.PageQuery{Page: 2, PerPage: 500}
	q.Defaults(10, 100)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 100, q.PerPage, "per_page se acota al máximo")
}
