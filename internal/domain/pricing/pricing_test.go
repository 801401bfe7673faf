package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/resto-admin/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestEffectiveSellingPrice_PrecioExplicito(t *testing.T) {
	price := dec("15.50")
	got := pricing.EffectiveSellingPrice(dec("10"), &price)
	assert.True(t, got.Equal(dec("15.50")), "con precio explícito no aplica fallback")
}

func TestEffectiveSellingPrice_FallbackCostoPor13(t *testing.T) {
	got := pricing.EffectiveSellingPrice(dec("10"), nil)
	assert.True(t, got.Equal(dec("13")), "sin precio explícito: costo × 1.3, got %s", got)
}

func TestEffectiveSellingPrice_PrecioCeroUsaFallback(t *testing.T) {
	zero := decimal.Zero
	got := pricing.EffectiveSellingPrice(dec("10"), &zero)
	assert.True(t, got.Equal(dec("13")), "precio cero cuenta como no configurado")
}

func TestProfitMarginPct(t *testing.T) {
	got := pricing.ProfitMarginPct(dec("9"), dec("39"))
	assert.True(t, got.Equal(dec("23.08")), "9/39 × 100 redondeado = 23.08, got %s", got)
}

func TestProfitMarginPct_IngresoCeroNoDividePorCero(t *testing.T) {
	assert.True(t, pricing.ProfitMarginPct(dec("5"), decimal.Zero).IsZero())
	assert.True(t, pricing.ProfitMarginPct(dec("5"), dec("-1")).IsZero())
}

func TestLineRevenueYLineCost(t *testing.T) {
	assert.True(t, pricing.LineRevenue(dec("13"), dec("3")).Equal(dec("39")))
	assert.True(t, pricing.LineCost(dec("10"), dec("3")).Equal(dec("30")))
}
