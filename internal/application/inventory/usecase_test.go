package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
	"github.com/tu-usuario/resto-admin/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seedItem(t *testing.T, store *memory.Store, id string, stock string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Items().Create(&entity.Item{
		ID:           id,
		Name:         "Tomate " + id,
		SKU:          "SKU-" + id,
		CategoryID:   "cat-1",
		Unit:         "kg",
		CostPrice:    dec("10"),
		CurrentStock: dec(stock),
		ReorderLevel: dec("2"),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func TestApplyDelta_StockInActualizaStockYLibro(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "5")
	uc := inventory.NewStockUseCase(store)

	newStock, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ItemID: "item-1",
		Delta:  dec("3"),
		Type:   entity.LogTypeStockIn,
		Reason: "Compra semanal",
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, newStock.Equal(dec("8")))

	item, err := store.Items().GetByID("item-1")
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(dec("8")), "el contador debe coincidir con el libro")

	entries, err := store.Logs().Query(repository.LogFilter{ItemID: "item-1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, entity.LogTypeStockIn, e.Type)
	assert.True(t, e.PreviousStock.Equal(dec("5")))
	assert.True(t, e.Quantity.Equal(dec("3")))
	assert.True(t, e.NewStock.Equal(dec("8")))
	assert.True(t, e.PreviousStock.Add(e.Quantity).Equal(e.NewStock),
		"invariante del libro: previous + quantity = new")
}

func TestApplyDelta_SalidaInsuficienteNoDejaRastro(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "2")
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ItemID: "item-1",
		Delta:  dec("-5"),
		Type:   entity.LogTypeStockOut,
		Reason: "Sale - SALE-20260831-120000",
		UserID: "user-1",
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(dec("2")))
	assert.True(t, stockErr.Requested.Equal(dec("5")))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: ni el stock ni el libro cambiaron.
	item, _ := store.Items().GetByID("item-1")
	assert.True(t, item.CurrentStock.Equal(dec("2")))
	entries, _ := store.Logs().Query(repository.LogFilter{ItemID: "item-1"})
	assert.Empty(t, entries)
}

func TestApplyDelta_AjusteNegativoHastaCero(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "4")
	uc := inventory.NewStockUseCase(store)

	newStock, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ItemID: "item-1",
		Delta:  dec("-4"),
		Type:   entity.LogTypeAdjustment,
		Reason: "Conteo físico",
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.True(t, newStock.IsZero(), "un ajuste puede dejar el stock exactamente en cero")

	// Pero nunca bajo cero.
	_, err = uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ItemID: "item-1",
		Delta:  dec("-1"),
		Type:   entity.LogTypeAdjustment,
		Reason: "Conteo físico",
		UserID: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyDelta_ReglasDeSigno(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "5")
	uc := inventory.NewStockUseCase(store)

	cases := []struct {
		name  string
		delta string
		typ   string
	}{
		{"STOCK_IN negativo", "-1", entity.LogTypeStockIn},
		{"STOCK_OUT positivo", "1", entity.LogTypeStockOut},
		{"WASTE positivo", "1", entity.LogTypeWaste},
		{"delta cero", "0", entity.LogTypeAdjustment},
		{"tipo desconocido", "1", "TRANSFER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
				ItemID: "item-1",
				Delta:  dec(tc.delta),
				Type:   tc.typ,
				Reason: "x",
				UserID: "user-1",
			})
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApplyDelta_RazonVaciaRechazada(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "5")
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ItemID: "item-1",
		Delta:  dec("1"),
		Type:   entity.LogTypeStockIn,
		Reason: "   ",
		UserID: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyDelta_ItemInactivoEsNotFound(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "5")
	require.NoError(t, store.Items().SetActive("item-1", false, time.Now()))
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ItemID: "item-1",
		Delta:  dec("1"),
		Type:   entity.LogTypeStockIn,
		Reason: "Compra",
		UserID: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordWaste_SiempreDescuenta(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "item-1", "5")
	uc := inventory.NewAdjustmentUseCase(inventory.NewStockUseCase(store))

	newStock, err := uc.RecordWaste(context.Background(), "item-1", dec("2"), "Se venció", "user-1")
	require.NoError(t, err)
	assert.True(t, newStock.Equal(dec("3")))

	entries, _ := store.Logs().Query(repository.LogFilter{ItemID: "item-1", Type: entity.LogTypeWaste})
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(dec("-2")), "la merma se asienta con delta negativo")

	_, err = uc.RecordWaste(context.Background(), "item-1", dec("-2"), "Se venció", "user-1")
	assert.True(t, errors.Is(err, domain.ErrValidation), "cantidad negativa en merma se rechaza")
}
