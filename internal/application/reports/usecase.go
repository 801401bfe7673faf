package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/pricing"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

const cacheTTL = 60 * time.Second

// ReportCache cachea reportes ya serializados. Un fallo del cache nunca es
// fatal: se loggea y se recalcula.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// ReportsUseCase es el motor de agregación financiera: solo lecturas sobre
// libro, ventas y gastos. Cualquier fallo de consulta se reporta como
// ErrAggregation y el reporte queda no disponible (sin fallback parcial).
type ReportsUseCase struct {
	reportRepo repository.ReportRepository
	cache      ReportCache
	loc        *time.Location
	splitA     decimal.Decimal // participación del socio A (0-1); solo display
	log        zerolog.Logger
}

// NewReportsUseCase construye el motor. splitA es la fracción del socio A en
// el reparto de utilidades (ej. 0.40 para 40/60).
func NewReportsUseCase(
	reportRepo repository.ReportRepository,
	cache ReportCache,
	loc *time.Location,
	splitA decimal.Decimal,
	log zerolog.Logger,
) *ReportsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportsUseCase{reportRepo: reportRepo, cache: cache, loc: loc, splitA: splitA, log: log}
}

// ── Rentabilidad por ítem / día ───────────────────────────────────────────────

// GetProfitAnalysis agrupa el consumo por venta (STOCK_OUT con razón "Sale")
// por ítem y por día. El precio efectivo sale de la misma función de pricing
// que usa el checkout: reporte y venta no pueden discrepar.
func (uc *ReportsUseCase) GetProfitAnalysis(ctx context.Context, period string) (*dto.ProfitAnalysisDTO, error) {
	start, end, err := PeriodRange(period, time.Now(), uc.loc)
	if err != nil {
		return nil, err
	}

	cacheKey := "reports:profit:" + period
	var cached dto.ProfitAnalysisDTO
	if uc.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	rows, err := uc.reportRepo.GetSaleConsumption(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: consumo por venta: %v", domain.ErrAggregation, err)
	}

	itemTotals := make(map[string]*dto.ItemProfitDTO)
	dailyTotals := make(map[string]*dto.DailyProfitDTO)
	var totalRevenue, totalCost decimal.Decimal

	for _, row := range rows {
		price := pricing.EffectiveSellingPrice(row.CostPrice, row.SellingPrice)
		revenue := pricing.LineRevenue(price, row.QuantitySold)
		cost := pricing.LineCost(row.CostPrice, row.QuantitySold)
		profit := revenue.Sub(cost)

		it, ok := itemTotals[row.ItemID]
		if !ok {
			it = &dto.ItemProfitDTO{ItemID: row.ItemID, ItemName: row.ItemName, CategoryName: row.CategoryName}
			itemTotals[row.ItemID] = it
		}
		it.QuantitySold = it.QuantitySold.Add(row.QuantitySold)
		it.Revenue = it.Revenue.Add(revenue)
		it.Cost = it.Cost.Add(cost)
		it.Profit = it.Profit.Add(profit)

		day, ok := dailyTotals[row.Day]
		if !ok {
			day = &dto.DailyProfitDTO{Date: row.Day}
			dailyTotals[row.Day] = day
		}
		day.Revenue = day.Revenue.Add(revenue)
		day.Cost = day.Cost.Add(cost)
		day.Profit = day.Profit.Add(profit)

		totalRevenue = totalRevenue.Add(revenue)
		totalCost = totalCost.Add(cost)
	}

	items := make([]dto.ItemProfitDTO, 0, len(itemTotals))
	for _, it := range itemTotals {
		it.ProfitMargin = pricing.ProfitMarginPct(it.Profit, it.Revenue)
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Profit.GreaterThan(items[j].Profit) })

	daily := make([]dto.DailyProfitDTO, 0, len(dailyTotals))
	for _, d := range dailyTotals {
		daily = append(daily, *d)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	totalProfit := totalRevenue.Sub(totalCost)
	out := &dto.ProfitAnalysisDTO{
		Period:       periodDTO(period, start, end),
		Items:        items,
		Daily:        daily,
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		TotalProfit:  totalProfit,
		ProfitMargin: pricing.ProfitMarginPct(totalProfit, totalRevenue),
	}
	uc.cacheSet(ctx, cacheKey, out)
	return out, nil
}

// GetCategoryProfitAnalysis agrupa el mismo consumo por categoría.
func (uc *ReportsUseCase) GetCategoryProfitAnalysis(ctx context.Context, period string) (*dto.CategoryProfitAnalysisDTO, error) {
	start, end, err := PeriodRange(period, time.Now(), uc.loc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.GetSaleConsumption(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: consumo por venta: %v", domain.ErrAggregation, err)
	}

	byCategory := make(map[string]*dto.CategoryProfitDTO)
	for _, row := range rows {
		price := pricing.EffectiveSellingPrice(row.CostPrice, row.SellingPrice)
		revenue := pricing.LineRevenue(price, row.QuantitySold)
		cost := pricing.LineCost(row.CostPrice, row.QuantitySold)

		cat, ok := byCategory[row.CategoryID]
		if !ok {
			cat = &dto.CategoryProfitDTO{CategoryID: row.CategoryID, CategoryName: row.CategoryName}
			byCategory[row.CategoryID] = cat
		}
		cat.QuantitySold = cat.QuantitySold.Add(row.QuantitySold)
		cat.Revenue = cat.Revenue.Add(revenue)
		cat.Cost = cat.Cost.Add(cost)
		cat.Profit = cat.Profit.Add(revenue.Sub(cost))
	}

	categories := make([]dto.CategoryProfitDTO, 0, len(byCategory))
	for _, cat := range byCategory {
		cat.ProfitMargin = pricing.ProfitMarginPct(cat.Profit, cat.Revenue)
		categories = append(categories, *cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Profit.GreaterThan(categories[j].Profit) })

	return &dto.CategoryProfitAnalysisDTO{
		Period:     periodDTO(period, start, end),
		Categories: categories,
	}, nil
}

// ── Análisis comprensivo ──────────────────────────────────────────────────────

// GetComprehensiveAnalysis combina tres fuentes agrupadas por separado
// (ventas, gastos aprobados/pagados, COGS del libro) casando buckets por
// fecha calendario; un bucket ausente en una fuente cuenta como cero.
func (uc *ReportsUseCase) GetComprehensiveAnalysis(ctx context.Context, period string) (*dto.ComprehensiveAnalysisDTO, error) {
	start, end, err := PeriodRange(period, time.Now(), uc.loc)
	if err != nil {
		return nil, err
	}

	cacheKey := "reports:comprehensive:" + period
	var cached dto.ComprehensiveAnalysisDTO
	if uc.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	// Tres consultas independientes en paralelo.
	type salesResult struct {
		rows []repository.DailySalesRow
		err  error
	}
	type expensesResult struct {
		rows []repository.ExpenseDayRow
		err  error
	}
	type cogsResult struct {
		rows []repository.CogsDayRow
		err  error
	}
	salesCh := make(chan salesResult, 1)
	expensesCh := make(chan expensesResult, 1)
	cogsCh := make(chan cogsResult, 1)

	go func() {
		rows, err := uc.reportRepo.GetSalesByDay(ctx, start, end)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetExpensesByDay(ctx, start, end)
		expensesCh <- expensesResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetCOGSByDay(ctx, start, end)
		cogsCh <- cogsResult{rows, err}
	}()

	salesRes := <-salesCh
	expensesRes := <-expensesCh
	cogsRes := <-cogsCh
	if salesRes.err != nil {
		return nil, fmt.Errorf("%w: ventas por día: %v", domain.ErrAggregation, salesRes.err)
	}
	if expensesRes.err != nil {
		return nil, fmt.Errorf("%w: gastos por día: %v", domain.ErrAggregation, expensesRes.err)
	}
	if cogsRes.err != nil {
		return nil, fmt.Errorf("%w: COGS por día: %v", domain.ErrAggregation, cogsRes.err)
	}

	paymentRows, err := uc.reportRepo.GetSalesByPaymentMethod(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: métodos de pago: %v", domain.ErrAggregation, err)
	}

	buckets := make(map[string]*dto.DailyBucketDTO)
	bucket := func(day string) *dto.DailyBucketDTO {
		b, ok := buckets[day]
		if !ok {
			b = &dto.DailyBucketDTO{Date: day}
			buckets[day] = b
		}
		return b
	}

	var revenue, totalApprovedExpenses, stockExpenses, cogs decimal.Decimal
	for _, row := range salesRes.rows {
		bucket(row.Day).Revenue = bucket(row.Day).Revenue.Add(row.Revenue)
		revenue = revenue.Add(row.Revenue)
	}
	for _, row := range expensesRes.rows {
		bucket(row.Day).Expenses = bucket(row.Day).Expenses.Add(row.Amount)
		totalApprovedExpenses = totalApprovedExpenses.Add(row.Amount)
		if row.Category == "STOCK" {
			stockExpenses = stockExpenses.Add(row.Amount)
		}
	}
	for _, row := range cogsRes.rows {
		bucket(row.Day).COGS = bucket(row.Day).COGS.Add(row.Cost)
		cogs = cogs.Add(row.Cost)
	}

	daily := make([]dto.DailyBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		b.NetProfit = b.Revenue.Sub(b.Expenses).Sub(b.COGS)
		daily = append(daily, *b)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	paymentMethods := make([]dto.PaymentMethodDTO, 0, len(paymentRows))
	for _, row := range paymentRows {
		paymentMethods = append(paymentMethods, dto.PaymentMethodDTO{
			Method:    row.Method,
			Total:     row.Total,
			SaleCount: row.SaleCount,
		})
	}

	directCosts := cogs.Add(stockExpenses)
	totalExpenses := cogs.Add(totalApprovedExpenses)
	out := &dto.ComprehensiveAnalysisDTO{
		Period:         periodDTO(period, start, end),
		Revenue:        revenue,
		DirectCosts:    directCosts,
		TotalExpenses:  totalExpenses,
		GrossProfit:    revenue.Sub(directCosts),
		NetProfit:      revenue.Sub(totalExpenses),
		PaymentMethods: paymentMethods,
		Daily:          daily,
	}
	uc.cacheSet(ctx, cacheKey, out)
	return out, nil
}

// ── Balance general ───────────────────────────────────────────────────────────

// GetBalanceSheet arma la foto a la fecha de corte. El valor del inventario
// es el stock vivo (no histórico); el resto son acumulados hasta la fecha.
// La discrepancia assets − liabilities − equity se calcula y expone siempre.
func (uc *ReportsUseCase) GetBalanceSheet(ctx context.Context, asOfStr string) (*dto.BalanceSheetDTO, error) {
	asOf, err := uc.parseDate(asOfStr)
	if err != nil {
		return nil, err
	}
	cutoff := asOf.Add(24*time.Hour - time.Nanosecond)

	inventoryValue, err := uc.reportRepo.GetInventoryValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: valor de inventario: %v", domain.ErrAggregation, err)
	}
	cashSales, err := uc.reportRepo.GetCashSalesTotal(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: ventas en efectivo: %v", domain.ErrAggregation, err)
	}
	unpaidExpenses, err := uc.reportRepo.GetUnpaidExpensesTotal(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: gastos sin pagar: %v", domain.ErrAggregation, err)
	}
	pendingPayroll, err := uc.reportRepo.GetPendingPayrollTotal(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: nómina pendiente: %v", domain.ErrAggregation, err)
	}
	revenueTotal, err := uc.reportRepo.GetRevenueTotal(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: ingreso acumulado: %v", domain.ErrAggregation, err)
	}
	approvedExpenses, err := uc.reportRepo.GetApprovedExpensesTotal(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: gastos acumulados: %v", domain.ErrAggregation, err)
	}

	assetsTotal := inventoryValue.Add(cashSales)
	liabsTotal := unpaidExpenses.Add(pendingPayroll)
	retained := revenueTotal.Sub(approvedExpenses)

	// Reparto 40/60 (configurable) solo informativo.
	partnerA := retained.Mul(uc.splitA).Round(2)
	partnerB := retained.Sub(partnerA)

	return &dto.BalanceSheetDTO{
		AsOf: asOf.Format("2006-01-02"),
		Assets: dto.BalanceAssetsDTO{
			InventoryValue: inventoryValue,
			CashSales:      cashSales,
			Total:          assetsTotal,
		},
		Liabilities: dto.BalanceLiabsDTO{
			UnpaidExpenses: unpaidExpenses,
			PendingPayroll: pendingPayroll,
			Total:          liabsTotal,
		},
		Equity: dto.BalanceEquityDTO{
			RetainedEarnings: retained,
			PartnerASplit:    partnerA,
			PartnerBSplit:    partnerB,
			Total:            retained,
		},
		Discrepancy: assetsTotal.Sub(liabsTotal).Sub(retained),
	}, nil
}

// ── Resumen diario ────────────────────────────────────────────────────────────

// GetDailySummary arma el desglose por ítem y los totales de un día.
func (uc *ReportsUseCase) GetDailySummary(ctx context.Context, dateStr string) (*dto.DailySummaryDTO, error) {
	day, err := uc.parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	start := day
	end := day.Add(24*time.Hour - time.Nanosecond)

	rows, err := uc.reportRepo.GetSaleConsumption(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: consumo por venta: %v", domain.ErrAggregation, err)
	}
	salesRows, err := uc.reportRepo.GetSalesByDay(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: ventas por día: %v", domain.ErrAggregation, err)
	}

	items := make([]dto.ItemProfitDTO, 0, len(rows))
	var totalRevenue, totalCost decimal.Decimal
	for _, row := range rows {
		price := pricing.EffectiveSellingPrice(row.CostPrice, row.SellingPrice)
		revenue := pricing.LineRevenue(price, row.QuantitySold)
		cost := pricing.LineCost(row.CostPrice, row.QuantitySold)
		profit := revenue.Sub(cost)
		items = append(items, dto.ItemProfitDTO{
			ItemID:       row.ItemID,
			ItemName:     row.ItemName,
			CategoryName: row.CategoryName,
			QuantitySold: row.QuantitySold,
			Revenue:      revenue,
			Cost:         cost,
			Profit:       profit,
			ProfitMargin: pricing.ProfitMarginPct(profit, revenue),
		})
		totalRevenue = totalRevenue.Add(revenue)
		totalCost = totalCost.Add(cost)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Revenue.GreaterThan(items[j].Revenue) })

	saleCount := 0
	for _, row := range salesRows {
		saleCount += row.SaleCount
	}

	return &dto.DailySummaryDTO{
		Date:         day.Format("2006-01-02"),
		Items:        items,
		SaleCount:    saleCount,
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		TotalProfit:  totalRevenue.Sub(totalCost),
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// parseDate interpreta YYYY-MM-DD en la zona del negocio; vacío = hoy.
func (uc *ReportsUseCase) parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().In(uc.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, uc.loc)
	if err != nil {
		return time.Time{}, domain.ErrValidation
	}
	return t, nil
}

func periodDTO(keyword string, start, end time.Time) dto.PeriodDTO {
	return dto.PeriodDTO{
		Keyword:   keyword,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
}

// cacheGet intenta poblar v desde el cache; cualquier fallo se degrada a miss.
func (uc *ReportsUseCase) cacheGet(ctx context.Context, key string, v any) bool {
	if uc.cache == nil {
		return false
	}
	payload, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache de reportes: get falló")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache de reportes: payload corrupto")
		return false
	}
	return true
}

// cacheSet guarda el reporte serializado; el fallo no afecta la respuesta.
func (uc *ReportsUseCase) cacheSet(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, payload, cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache de reportes: set falló")
	}
}
