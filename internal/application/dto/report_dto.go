package dto

import "github.com/shopspring/decimal"

// ── Rentabilidad por ítem / categoría / día ───────────────────────────────────

// ItemProfitDTO rentabilidad de un ítem en el período.
type ItemProfitDTO struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	CategoryName string          `json:"category_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // profit/revenue × 100, 0 si revenue es 0
}

// CategoryProfitDTO rentabilidad agregada por categoría.
type CategoryProfitDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

// DailyProfitDTO bucket diario de rentabilidad.
type DailyProfitDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// ProfitAnalysisDTO respuesta de GET /api/reports/profit.
type ProfitAnalysisDTO struct {
	Period       PeriodDTO        `json:"period"`
	Items        []ItemProfitDTO  `json:"items"`
	Daily        []DailyProfitDTO `json:"daily"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	TotalProfit  decimal.Decimal  `json:"total_profit"`
	ProfitMargin decimal.Decimal  `json:"profit_margin"`
}

// CategoryProfitAnalysisDTO respuesta de GET /api/reports/profit/categories.
type CategoryProfitAnalysisDTO struct {
	Period     PeriodDTO           `json:"period"`
	Categories []CategoryProfitDTO `json:"categories"`
}

// ── Análisis comprensivo del período ──────────────────────────────────────────

// DailyBucketDTO bucket diario del análisis comprensivo. Cada fuente
// (ventas, gastos, COGS) puede estar ausente en una fecha; ausente = cero.
type DailyBucketDTO struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"` // gastos aprobados/pagados del día
	COGS      decimal.Decimal `json:"cogs"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// PaymentMethodDTO desglose por método de pago.
type PaymentMethodDTO struct {
	Method    string          `json:"method"`
	Total     decimal.Decimal `json:"total"`
	SaleCount int             `json:"sale_count"`
}

// ComprehensiveAnalysisDTO respuesta de GET /api/reports/comprehensive.
type ComprehensiveAnalysisDTO struct {
	Period         PeriodDTO          `json:"period"`
	Revenue        decimal.Decimal    `json:"revenue"`
	DirectCosts    decimal.Decimal    `json:"direct_costs"`   // COGS + gastos STOCK
	TotalExpenses  decimal.Decimal    `json:"total_expenses"` // COGS + todos los gastos aprobados/pagados
	GrossProfit    decimal.Decimal    `json:"gross_profit"`   // revenue - direct_costs
	NetProfit      decimal.Decimal    `json:"net_profit"`     // revenue - total_expenses
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"`
	Daily          []DailyBucketDTO   `json:"daily"`
}

// ── Balance general ───────────────────────────────────────────────────────────

// BalanceSheetDTO respuesta de GET /api/reports/balance-sheet. Discrepancy se
// expone siempre, incluso cuando no es cero.
type BalanceSheetDTO struct {
	AsOf        string              `json:"as_of"`
	Assets      BalanceAssetsDTO    `json:"assets"`
	Liabilities BalanceLiabsDTO     `json:"liabilities"`
	Equity      BalanceEquityDTO    `json:"equity"`
	Discrepancy decimal.Decimal     `json:"discrepancy"` // assets - liabilities - equity
}

// BalanceAssetsDTO activos: inventario vivo + ventas en efectivo acumuladas.
type BalanceAssetsDTO struct {
	InventoryValue decimal.Decimal `json:"inventory_value"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	Total          decimal.Decimal `json:"total"`
}

// BalanceLiabsDTO pasivos: gastos sin pagar + nómina pendiente.
type BalanceLiabsDTO struct {
	UnpaidExpenses decimal.Decimal `json:"unpaid_expenses"`
	PendingPayroll decimal.Decimal `json:"pending_payroll"`
	Total          decimal.Decimal `json:"total"`
}

// BalanceEquityDTO patrimonio. El reparto entre socios es solo informativo;
// no altera la identidad contable.
type BalanceEquityDTO struct {
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	PartnerASplit    decimal.Decimal `json:"partner_a_split"`
	PartnerBSplit    decimal.Decimal `json:"partner_b_split"`
	Total            decimal.Decimal `json:"total"`
}

// ── Resumen diario de ventas ──────────────────────────────────────────────────

// DailySummaryDTO respuesta de GET /api/reports/daily-summary.
type DailySummaryDTO struct {
	Date         string          `json:"date"`
	Items        []ItemProfitDTO `json:"items"`
	SaleCount    int             `json:"sale_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	Keyword   string `json:"keyword,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
