package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	consumption   []repository.SaleConsumptionRow
	salesByDay    []repository.DailySalesRow
	payments      []repository.PaymentMethodRow
	expensesByDay []repository.ExpenseDayRow
	cogsByDay     []repository.CogsDayRow

	inventoryValue   decimal.Decimal
	cashSales        decimal.Decimal
	unpaidExpenses   decimal.Decimal
	pendingPayroll   decimal.Decimal
	revenueTotal     decimal.Decimal
	approvedExpenses decimal.Decimal

	salesErr         error
	consumptionCalls int
}

func (f *fakeReportRepo) GetSaleConsumption(_ context.Context, _, _ time.Time) ([]repository.SaleConsumptionRow, error) {
	f.consumptionCalls++
	return f.consumption, nil
}

func (f *fakeReportRepo) GetSalesByDay(_ context.Context, _, _ time.Time) ([]repository.DailySalesRow, error) {
	return f.salesByDay, f.salesErr
}

func (f *fakeReportRepo) GetSalesByPaymentMethod(_ context.Context, _, _ time.Time) ([]repository.PaymentMethodRow, error) {
	return f.payments, nil
}

func (f *fakeReportRepo) GetExpensesByDay(_ context.Context, _, _ time.Time) ([]repository.ExpenseDayRow, error) {
	return f.expensesByDay, nil
}

func (f *fakeReportRepo) GetCOGSByDay(_ context.Context, _, _ time.Time) ([]repository.CogsDayRow, error) {
	return f.cogsByDay, nil
}

func (f *fakeReportRepo) GetInventoryValue(_ context.Context) (decimal.Decimal, error) {
	return f.inventoryValue, nil
}

func (f *fakeReportRepo) GetCashSalesTotal(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.cashSales, nil
}

func (f *fakeReportRepo) GetUnpaidExpensesTotal(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.unpaidExpenses, nil
}

func (f *fakeReportRepo) GetPendingPayrollTotal(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.pendingPayroll, nil
}

func (f *fakeReportRepo) GetRevenueTotal(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.revenueTotal, nil
}

func (f *fakeReportRepo) GetApprovedExpensesTotal(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.approvedExpenses, nil
}

type memCache struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	payload, ok := c.data[key]
	return payload, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = payload
	return nil
}

func newUC(repo *fakeReportRepo, cache ReportCache) *ReportsUseCase {
	return NewReportsUseCase(repo, cache, time.UTC, d("0.4"), zerolog.Nop())
}

// ── Rentabilidad ──────────────────────────────────────────────────────────────

func TestGetProfitAnalysis_AgrupaPorItemYDia(t *testing.T) {
	explicit := d("20")
	repo := &fakeReportRepo{consumption: []repository.SaleConsumptionRow{
		// Sin precio explícito: el efectivo es costo × 1.3 = 13.
		{Day: "2025-06-17", ItemID: "i1", ItemName: "Limonada", CategoryID: "c1", CategoryName: "Bebidas",
			QuantitySold: d("2"), CostPrice: d("10")},
		{Day: "2025-06-18", ItemID: "i1", ItemName: "Limonada", CategoryID: "c1", CategoryName: "Bebidas",
			QuantitySold: d("1"), CostPrice: d("10")},
		{Day: "2025-06-18", ItemID: "i2", ItemName: "Arepa", CategoryID: "c2", CategoryName: "Comida",
			QuantitySold: d("5"), CostPrice: d("8"), SellingPrice: &explicit},
	}}
	uc := newUC(repo, nil)

	out, err := uc.GetProfitAnalysis(context.Background(), PeriodThisMonth)
	require.NoError(t, err)

	// Limonada: 3 × 13 = 39 ingreso, 30 costo. Arepa: 5 × 20 = 100, costo 40.
	require.Len(t, out.Items, 2)
	assert.Equal(t, "i2", out.Items[0].ItemID, "ordenado por utilidad descendente")
	assert.True(t, out.Items[0].Profit.Equal(d("60")))
	assert.True(t, out.Items[1].QuantitySold.Equal(d("3")), "las filas del mismo ítem se suman")
	assert.True(t, out.Items[1].Profit.Equal(d("9")))

	require.Len(t, out.Daily, 2)
	assert.Equal(t, "2025-06-17", out.Daily[0].Date, "días en orden cronológico")
	assert.True(t, out.Daily[1].Revenue.Equal(d("113")))

	assert.True(t, out.TotalRevenue.Equal(d("139")))
	assert.True(t, out.TotalCost.Equal(d("70")))
	assert.True(t, out.TotalProfit.Equal(d("69")))
}

func TestGetProfitAnalysis_SinVentasMargenCero(t *testing.T) {
	uc := newUC(&fakeReportRepo{}, nil)
	out, err := uc.GetProfitAnalysis(context.Background(), PeriodToday)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.ProfitMargin.IsZero(), "sin ingreso el margen es 0, no una división por cero")
}

func TestGetProfitAnalysis_PeriodoInvalido(t *testing.T) {
	uc := newUC(&fakeReportRepo{}, nil)
	_, err := uc.GetProfitAnalysis(context.Background(), "quarter")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Cache ─────────────────────────────────────────────────────────────────────

func TestGetProfitAnalysis_SegundaLecturaDesdeCache(t *testing.T) {
	repo := &fakeReportRepo{consumption: []repository.SaleConsumptionRow{
		{Day: "2025-06-18", ItemID: "i1", ItemName: "Limonada", CategoryID: "c1", CategoryName: "Bebidas",
			QuantitySold: d("1"), CostPrice: d("10")},
	}}
	cache := newMemCache()
	uc := newUC(repo, cache)

	first, err := uc.GetProfitAnalysis(context.Background(), PeriodToday)
	require.NoError(t, err)
	second, err := uc.GetProfitAnalysis(context.Background(), PeriodToday)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.consumptionCalls, "la segunda lectura no toca la base")
	assert.True(t, second.TotalRevenue.Equal(first.TotalRevenue))
}

func TestGetProfitAnalysis_CacheRotoSeDegrada(t *testing.T) {
	repo := &fakeReportRepo{}
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	uc := newUC(repo, cache)

	_, err := uc.GetProfitAnalysis(context.Background(), PeriodToday)
	require.NoError(t, err, "un cache caído nunca tumba el reporte")
	assert.Equal(t, 1, repo.consumptionCalls)
}

// ── Análisis comprensivo ──────────────────────────────────────────────────────

func TestGetComprehensiveAnalysis_CasaBucketsPorFecha(t *testing.T) {
	repo := &fakeReportRepo{
		salesByDay: []repository.DailySalesRow{
			{Day: "2025-06-17", Revenue: d("200"), SaleCount: 4},
		},
		expensesByDay: []repository.ExpenseDayRow{
			{Day: "2025-06-18", Category: "STOCK", Amount: d("50")},
			{Day: "2025-06-18", Category: "SERVICES", Amount: d("30")},
		},
		cogsByDay: []repository.CogsDayRow{
			{Day: "2025-06-17", Cost: d("80")},
		},
		payments: []repository.PaymentMethodRow{
			{Method: "CASH", Total: d("200"), SaleCount: 4},
		},
	}
	uc := newUC(repo, nil)

	out, err := uc.GetComprehensiveAnalysis(context.Background(), PeriodThisMonth)
	require.NoError(t, err)

	// Día con ventas pero sin gastos y viceversa: la fuente ausente vale cero.
	require.Len(t, out.Daily, 2)
	d17, d18 := out.Daily[0], out.Daily[1]
	assert.Equal(t, "2025-06-17", d17.Date)
	assert.True(t, d17.Expenses.IsZero())
	assert.True(t, d17.NetProfit.Equal(d("120")), "200 − 0 − 80")
	assert.True(t, d18.Revenue.IsZero())
	assert.True(t, d18.NetProfit.Equal(d("-80")), "0 − 80 − 0")

	assert.True(t, out.Revenue.Equal(d("200")))
	assert.True(t, out.DirectCosts.Equal(d("130")), "COGS 80 + gastos STOCK 50")
	assert.True(t, out.TotalExpenses.Equal(d("160")), "COGS 80 + gastos aprobados 80")
	assert.True(t, out.GrossProfit.Equal(d("70")))
	assert.True(t, out.NetProfit.Equal(d("40")))
	require.Len(t, out.PaymentMethods, 1)
	assert.Equal(t, "CASH", out.PaymentMethods[0].Method)
}

func TestGetComprehensiveAnalysis_FalloDeConsultaEsAgregacion(t *testing.T) {
	repo := &fakeReportRepo{salesErr: errors.New("timeout")}
	uc := newUC(repo, nil)
	_, err := uc.GetComprehensiveAnalysis(context.Background(), PeriodToday)
	assert.ErrorIs(t, err, domain.ErrAggregation, "ningún fallback parcial")
}

// ── Balance general ───────────────────────────────────────────────────────────

func TestGetBalanceSheet_DiscrepanciaYReparto(t *testing.T) {
	repo := &fakeReportRepo{
		inventoryValue:   d("500"),
		cashSales:        d("300"),
		unpaidExpenses:   d("120"),
		pendingPayroll:   d("80"),
		revenueTotal:     d("1000"),
		approvedExpenses: d("899.99"),
	}
	uc := newUC(repo, nil)

	out, err := uc.GetBalanceSheet(context.Background(), "2025-06-18")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-18", out.AsOf)
	assert.True(t, out.Assets.Total.Equal(d("800")))
	assert.True(t, out.Liabilities.Total.Equal(d("200")))

	// Utilidades retenidas 100.01, reparto 40/60: A recibe 40.00 y B el resto,
	// de modo que A + B == retenidas exactamente.
	assert.True(t, out.Equity.RetainedEarnings.Equal(d("100.01")))
	assert.True(t, out.Equity.PartnerASplit.Equal(d("40.00")), "got %s", out.Equity.PartnerASplit)
	assert.True(t, out.Equity.PartnerBSplit.Equal(d("60.01")))

	// 800 − 200 − 100.01: la ecuación contable no cierra y eso se expone.
	assert.True(t, out.Discrepancy.Equal(d("499.99")), "got %s", out.Discrepancy)
}

func TestGetBalanceSheet_FechaInvalida(t *testing.T) {
	uc := newUC(&fakeReportRepo{}, nil)
	_, err := uc.GetBalanceSheet(context.Background(), "18/06/2025")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Resumen diario ────────────────────────────────────────────────────────────

func TestGetDailySummary_TotalesDelDia(t *testing.T) {
	repo := &fakeReportRepo{
		consumption: []repository.SaleConsumptionRow{
			{Day: "2025-06-18", ItemID: "i1", ItemName: "Limonada", CategoryName: "Bebidas",
				QuantitySold: d("4"), CostPrice: d("10")},
		},
		salesByDay: []repository.DailySalesRow{
			{Day: "2025-06-18", Revenue: d("52"), SaleCount: 3},
		},
	}
	uc := newUC(repo, nil)

	out, err := uc.GetDailySummary(context.Background(), "2025-06-18")
	require.NoError(t, err)
	assert.Equal(t, 3, out.SaleCount)
	require.Len(t, out.Items, 1)
	assert.True(t, out.TotalRevenue.Equal(d("52")), "4 × 13")
	assert.True(t, out.TotalProfit.Equal(d("12")))
}
