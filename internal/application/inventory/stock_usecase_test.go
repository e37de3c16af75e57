package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-sync-api/internal/application/dto"
	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/internal/domain"
)

func newEngine(s *memStore, fail *failures) *inventory.StockUseCase {
	return inventory.NewStockUseCase(&memTxRunner{s: s, fail: fail})
}

func i64(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStock_MutacionConLog(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	res, err := newEngine(s, nil).UpdateStock(context.Background(), 1, 30, "wordpress_plugin")
	require.NoError(t, err)

	assert.Equal(t, int64(30), res.Product.CurrentStock)
	assert.Equal(t, int64(50), res.Log.PreviousStock)
	assert.Equal(t, int64(30), res.Log.NewStock)
	assert.Equal(t, int64(-20), res.ChangeAmount)
	assert.Equal(t, "-20", res.Log.FormattedChange)
	assert.Equal(t, "wordpress_plugin", res.Log.UserSource)
	assert.NotEmpty(t, res.Log.TransactionID)

	// El almacén quedó consistente: stock nuevo y exactamente un log.
	assert.Equal(t, int64(30), s.products[1].CurrentStock)
	require.Len(t, s.logs, 1)
	assert.Equal(t, int64(-20), s.logs[0].ChangeAmount)
}

func TestUpdateStock_MismoValorRegistraCambioCero(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	res, err := newEngine(s, nil).UpdateStock(context.Background(), 1, 50, "api")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.ChangeAmount)
	assert.Equal(t, "+0", res.Log.FormattedChange)
	require.Len(t, s.logs, 1)
}

func TestUpdateStock_FuenteVaciaUsaDefault(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	res, err := newEngine(s, nil).UpdateStock(context.Background(), 1, 40, "")
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultSource, res.Log.UserSource)
}

func TestUpdateStock_NegativoRechazadoSinTocarNada(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	_, err := newEngine(s, nil).UpdateStock(context.Background(), 1, -5, "api")
	require.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, int64(50), s.products[1].CurrentStock)
	assert.Empty(t, s.logs)
}

func TestUpdateStock_ProductoInexistente(t *testing.T) {
	s := newMemStore()

	_, err := newEngine(s, nil).UpdateStock(context.Background(), 99, 10, "api")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.logs)
}

func TestUpdateStock_FallaDelLogRevierteElStock(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	_, err := newEngine(s, &failures{logCreate: true}).UpdateStock(context.Background(), 1, 10, "api")
	require.Error(t, err)

	var me *domain.MutationError
	require.ErrorAs(t, err, &me)

	// Rollback: el stock no cambió y no quedó log parcial.
	assert.Equal(t, int64(50), s.products[1].CurrentStock)
	assert.Empty(t, s.logs)
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkUpdateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkUpdateStock_LoteCompleto(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)
	s.addProduct(2, "Pantalón", "REF-PANT01", 20)

	out, err := newEngine(s, nil).BulkUpdateStock(context.Background(), []dto.BulkUpdateEntry{
		{ProductID: i64(1), Stock: i64(45)},
		{ProductID: i64(2), Stock: i64(25)},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, out.UpdatedCount)
	require.Len(t, out.Results, 2)
	assert.Equal(t, int64(-5), out.Results[0].ChangeAmount)
	assert.Equal(t, int64(5), out.Results[1].ChangeAmount)
	assert.Equal(t, inventory.BulkSource, out.Results[0].Log.UserSource)

	// Todos los logs del lote comparten transaction_id.
	require.Len(t, s.logs, 2)
	assert.Equal(t, s.logs[0].TransactionID, s.logs[1].TransactionID)
}

func TestBulkUpdateStock_PrePasadaReportaTodasLasEntradasInvalidas(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	_, err := newEngine(s, nil).BulkUpdateStock(context.Background(), []dto.BulkUpdateEntry{
		{ProductID: i64(1), Stock: i64(10)},
		{ProductID: nil, Stock: i64(5)},
		{ProductID: i64(1), Stock: i64(-3)},
	}, "bulk_api")

	var be *inventory.BulkError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Errors, 2)
	assert.Contains(t, be.Errors[0], "entrada 1")
	assert.Contains(t, be.Errors[1], "entrada 2")

	// Nada se aplicó, ni siquiera la entrada válida.
	assert.Equal(t, int64(50), s.products[1].CurrentStock)
	assert.Empty(t, s.logs)
}

func TestBulkUpdateStock_ProductoInexistenteRevierteElLote(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)
	s.addProduct(2, "Pantalón", "REF-PANT01", 20)

	_, err := newEngine(s, nil).BulkUpdateStock(context.Background(), []dto.BulkUpdateEntry{
		{ProductID: i64(1), Stock: i64(45)},
		{ProductID: i64(99), Stock: i64(5)},
		{ProductID: i64(2), Stock: i64(25)},
	}, "bulk_api")

	var be *inventory.BulkError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, strings.Join(be.Errors, ";"), "producto 99")

	// Todo o nada: la primera mutación aplicada también se revirtió.
	assert.Equal(t, int64(50), s.products[1].CurrentStock)
	assert.Equal(t, int64(20), s.products[2].CurrentStock)
	assert.Empty(t, s.logs)
}

func TestBulkUpdateStock_FallaDeAlmacenamientoRevierteElLote(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)
	s.addProduct(2, "Pantalón", "REF-PANT01", 20)

	_, err := newEngine(s, &failures{updateStockFor: 2}).BulkUpdateStock(context.Background(), []dto.BulkUpdateEntry{
		{ProductID: i64(1), Stock: i64(45)},
		{ProductID: i64(2), Stock: i64(25)},
	}, "bulk_api")
	require.Error(t, err)

	assert.Equal(t, int64(50), s.products[1].CurrentStock)
	assert.Equal(t, int64(20), s.products[2].CurrentStock)
	assert.Empty(t, s.logs)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateProduct / DeleteProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ConStockInicialRegistraLogDeCreacion(t *testing.T) {
	s := newMemStore()

	stock := int64(100)
	out, err := newEngine(s, nil).CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:         "Camiseta",
		Reference:    "REF-CAMI01",
		CurrentStock: &stock,
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, int64(100), out.CurrentStock)

	require.Len(t, s.logs, 1)
	assert.Equal(t, int64(0), s.logs[0].PreviousStock)
	assert.Equal(t, int64(100), s.logs[0].NewStock)
	assert.Equal(t, inventory.CreationSource, s.logs[0].UserSource)
}

func TestCreateProduct_StockCeroNoRegistraLog(t *testing.T) {
	s := newMemStore()

	stock := int64(0)
	_, err := newEngine(s, nil).CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:         "Camiseta",
		CurrentStock: &stock,
	})
	require.NoError(t, err)
	assert.Empty(t, s.logs)
}

func TestCreateProduct_SinReferenciaGeneraUna(t *testing.T) {
	s := newMemStore()

	stock := int64(5)
	out, err := newEngine(s, nil).CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:         "Camiseta",
		CurrentStock: &stock,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Reference, "REF-"), "referencia generada: %s", out.Reference)
	assert.Len(t, out.Reference, len("REF-")+8)
}

func TestCreateProduct_ReferenciaDuplicada(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 10)

	stock := int64(5)
	_, err := newEngine(s, nil).CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:         "Otra",
		Reference:    "REF-CAMI01",
		CurrentStock: &stock,
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_FallaDelLogRevierteElProducto(t *testing.T) {
	s := newMemStore()

	stock := int64(10)
	_, err := newEngine(s, &failures{logCreate: true}).CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:         "Camiseta",
		Reference:    "REF-CAMI01",
		CurrentStock: &stock,
	})
	require.Error(t, err)
	assert.Empty(t, s.products)
	assert.Empty(t, s.logs)
}

func TestDeleteProduct_BorraProductoYHistorial(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)
	s.addProduct(2, "Pantalón", "REF-PANT01", 20)
	engine := newEngine(s, nil)

	_, err := engine.UpdateStock(context.Background(), 1, 40, "api")
	require.NoError(t, err)
	_, err = engine.UpdateStock(context.Background(), 2, 25, "api")
	require.NoError(t, err)

	deleted, err := engine.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, exists := s.products[1]
	assert.False(t, exists)
	// Solo sobrevive el historial del otro producto.
	require.Len(t, s.logs, 1)
	assert.Equal(t, int64(2), s.logs[0].ProductID)
}

func TestDeleteProduct_InexistenteRetornaFalse(t *testing.T) {
	s := newMemStore()

	deleted, err := newEngine(s, nil).DeleteProduct(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMutationError_ConservaLaCausa(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "Camiseta", "REF-CAMI01", 50)

	_, err := newEngine(s, &failures{logCreate: true}).UpdateStock(context.Background(), 1, 10, "api")
	var me *domain.MutationError
	require.ErrorAs(t, err, &me)
	assert.True(t, errors.Is(err, errDeBD))
}
