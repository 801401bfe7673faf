package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resultados crudos de las consultas de agregación. El cálculo de
// revenue/profit con el fallback de precio vive en el caso de uso
// (internal/domain/pricing), no en SQL, para que venta y reporte compartan
// exactamente la misma política.

// SaleConsumptionRow consumo por día e ítem derivado del libro: entradas
// STOCK_OUT cuya razón contiene "Sale".
type SaleConsumptionRow struct {
	Day          string // YYYY-MM-DD en la zona horaria del negocio
	ItemID       string
	ItemName     string
	CategoryID   string
	CategoryName string
	QuantitySold decimal.Decimal // Σ|quantity|
	CostPrice    decimal.Decimal
	SellingPrice *decimal.Decimal // nil = sin precio explícito
}

// DailySalesRow ventas agregadas por día (solo COMPLETED).
type DailySalesRow struct {
	Day       string
	Revenue   decimal.Decimal // Σ final_amount
	Discounts decimal.Decimal
	SaleCount int
}

// PaymentMethodRow desglose por método de pago.
type PaymentMethodRow struct {
	Method    string
	Total     decimal.Decimal
	SaleCount int
}

// ExpenseDayRow gastos aprobados/pagados agregados por día y categoría.
type ExpenseDayRow struct {
	Day      string
	Category string
	Amount   decimal.Decimal
}

// CogsDayRow costo de ventas por día derivado del libro.
type CogsDayRow struct {
	Day  string
	Cost decimal.Decimal
}

// ReportRepository consultas de solo lectura para el motor de agregación
// financiera. No toma locks; lee datos confirmados.
type ReportRepository interface {
	GetSaleConsumption(ctx context.Context, from, to time.Time) ([]SaleConsumptionRow, error)
	GetSalesByDay(ctx context.Context, from, to time.Time) ([]DailySalesRow, error)
	GetSalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodRow, error)
	GetExpensesByDay(ctx context.Context, from, to time.Time) ([]ExpenseDayRow, error)
	GetCOGSByDay(ctx context.Context, from, to time.Time) ([]CogsDayRow, error)

	// Balance: GetInventoryValue es una foto viva (Σ stock × costo de ítems
	// activos), no histórica; el resto son acumulados hasta la fecha de corte.
	GetInventoryValue(ctx context.Context) (decimal.Decimal, error)
	GetCashSalesTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
	GetUnpaidExpensesTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
	GetPendingPayrollTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
	GetRevenueTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
	GetApprovedExpensesTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
}
