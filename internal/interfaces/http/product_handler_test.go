package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-sync-api/internal/application/usecase"
	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
	"github.com/jhoicas/inventory-sync-api/internal/domain/repository"
	apphttp "github.com/jhoicas/inventory-sync-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-sync-api/pkg/validator"
)

type lowStockRepo struct {
	repository.ProductRepository
	products []*entity.Product
}

func (r *lowStockRepo) ListLowStock(threshold int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CurrentStock <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func buildLowStockApp(products ...*entity.Product) *fiber.App {
	app := fiber.New()
	uc := usecase.NewProductUseCase(&lowStockRepo{products: products}, 15, 100, 10)
	h := apphttp.NewProductHandler(uc, nil, validator.New())
	app.Get("/api/products/low-stock", h.LowStock)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/products/low-stock
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockEndpoint_SinUmbralUsaElConfigurado(t *testing.T) {
	app := buildLowStockApp(
		&entity.Product{ID: 1, Name: "Camiseta", CurrentStock: 3},
		&entity.Product{ID: 2, Name: "Pantalón", CurrentStock: 50},
	)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/low-stock", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), data["threshold"])
	assert.Equal(t, float64(1), data["count"])
}

func TestLowStockEndpoint_CeroExplicitoNoEsAusente(t *testing.T) {
	app := buildLowStockApp(
		&entity.Product{ID: 1, Name: "Camiseta", CurrentStock: 0},
		&entity.Product{ID: 2, Name: "Pantalón", CurrentStock: 5},
		&entity.Product{ID: 3, Name: "Gorra", CurrentStock: 50},
	)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/low-stock?threshold=0", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	// threshold=0 pide solo los agotados, no el umbral por defecto.
	assert.Equal(t, float64(0), data["threshold"])
	assert.Equal(t, float64(1), data["count"])
}

func TestLowStockEndpoint_UmbralInvalido(t *testing.T) {
	app := buildLowStockApp()

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/low-stock?threshold=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/low-stock?threshold=-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
