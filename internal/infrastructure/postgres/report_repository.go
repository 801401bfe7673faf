package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación financiera sobre PostgreSQL. Solo lee
// datos confirmados (sin locks). Las fechas se agrupan por día calendario en
// la zona horaria del negocio.
type ReportRepo struct {
	q  Querier
	tz string // ej. America/Bogota
}

// NewReportRepository construye el adaptador de reportes. tz define el día
// calendario de los buckets.
func NewReportRepository(q Querier, tz string) *ReportRepo {
	if tz == "" {
		tz = "UTC"
	}
	return &ReportRepo{q: q, tz: tz}
}

// GetSaleConsumption agrega las salidas por venta del libro: entradas
// STOCK_OUT cuya razón contiene "Sale", por día e ítem. La cantidad vendida
// es Σ|quantity| (quantity es negativo en una salida).
func (r *ReportRepo) GetSaleConsumption(ctx context.Context, from, to time.Time) ([]repository.SaleConsumptionRow, error) {
	query := `
		SELECT DATE(l.created_at AT TIME ZONE $1)::text AS day,
		       i.id, i.name, c.id, c.name,
		       SUM(ABS(l.quantity)) AS quantity_sold,
		       i.cost_price, i.selling_price
		FROM inventory_logs l
		JOIN items i ON i.id = l.item_id
		JOIN categories c ON c.id = i.category_id
		WHERE l.type = 'STOCK_OUT'
		  AND l.reason ILIKE '%Sale%'
		  AND l.created_at BETWEEN $2 AND $3
		GROUP BY day, i.id, i.name, c.id, c.name, i.cost_price, i.selling_price
		ORDER BY day, i.name`
	rows, err := r.q.Query(ctx, query, r.tz, from, to)
	if err != nil {
		return nil, fmt.Errorf("sale consumption: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleConsumptionRow
	for rows.Next() {
		var row repository.SaleConsumptionRow
		if err := rows.Scan(&row.Day, &row.ItemID, &row.ItemName, &row.CategoryID, &row.CategoryName,
			&row.QuantitySold, &row.CostPrice, &row.SellingPrice); err != nil {
			return nil, fmt.Errorf("scan sale consumption: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetSalesByDay agrega ventas COMPLETED por día.
func (r *ReportRepo) GetSalesByDay(ctx context.Context, from, to time.Time) ([]repository.DailySalesRow, error) {
	query := `
		SELECT DATE(sale_date AT TIME ZONE $1)::text AS day,
		       COALESCE(SUM(final_amount), 0),
		       COALESCE(SUM(discount), 0),
		       COUNT(*)
		FROM sales
		WHERE status = 'COMPLETED' AND sale_date BETWEEN $2 AND $3
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, r.tz, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	var list []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Discounts, &row.SaleCount); err != nil {
			return nil, fmt.Errorf("scan sales by day: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetSalesByPaymentMethod desglosa ventas COMPLETED por método de pago.
func (r *ReportRepo) GetSalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]repository.PaymentMethodRow, error) {
	query := `
		SELECT payment_method, COALESCE(SUM(final_amount), 0), COUNT(*)
		FROM sales
		WHERE status = 'COMPLETED' AND sale_date BETWEEN $1 AND $2
		GROUP BY payment_method
		ORDER BY payment_method`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by payment method: %w", err)
	}
	defer rows.Close()
	var list []repository.PaymentMethodRow
	for rows.Next() {
		var row repository.PaymentMethodRow
		if err := rows.Scan(&row.Method, &row.Total, &row.SaleCount); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetExpensesByDay agrega gastos APPROVED o PAID por día y categoría.
func (r *ReportRepo) GetExpensesByDay(ctx context.Context, from, to time.Time) ([]repository.ExpenseDayRow, error) {
	query := `
		SELECT DATE(expense_date AT TIME ZONE $1)::text AS day, category, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE status IN ('APPROVED', 'PAID') AND expense_date BETWEEN $2 AND $3
		GROUP BY day, category
		ORDER BY day, category`
	rows, err := r.q.Query(ctx, query, r.tz, from, to)
	if err != nil {
		return nil, fmt.Errorf("expenses by day: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpenseDayRow
	for rows.Next() {
		var row repository.ExpenseDayRow
		if err := rows.Scan(&row.Day, &row.Category, &row.Amount); err != nil {
			return nil, fmt.Errorf("scan expense day: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetCOGSByDay costo de lo vendido por día: salidas por venta del libro
// valoradas al costo del ítem.
func (r *ReportRepo) GetCOGSByDay(ctx context.Context, from, to time.Time) ([]repository.CogsDayRow, error) {
	query := `
		SELECT DATE(l.created_at AT TIME ZONE $1)::text AS day,
		       COALESCE(SUM(ABS(l.quantity) * i.cost_price), 0)
		FROM inventory_logs l
		JOIN items i ON i.id = l.item_id
		WHERE l.type = 'STOCK_OUT'
		  AND l.reason ILIKE '%Sale%'
		  AND l.created_at BETWEEN $2 AND $3
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, r.tz, from, to)
	if err != nil {
		return nil, fmt.Errorf("cogs by day: %w", err)
	}
	defer rows.Close()
	var list []repository.CogsDayRow
	for rows.Next() {
		var row repository.CogsDayRow
		if err := rows.Scan(&row.Day, &row.Cost); err != nil {
			return nil, fmt.Errorf("scan cogs day: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetInventoryValue valor vivo del inventario: Σ stock × costo de ítems activos.
func (r *ReportRepo) GetInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return r.scanTotal(ctx,
		`SELECT COALESCE(SUM(current_stock * cost_price), 0) FROM items WHERE active`,
		"inventory value")
}

// GetCashSalesTotal efectivo acumulado de ventas COMPLETED hasta la fecha de corte.
func (r *ReportRepo) GetCashSalesTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return r.scanTotal(ctx,
		`SELECT COALESCE(SUM(final_amount), 0) FROM sales
		 WHERE status = 'COMPLETED' AND payment_method = 'CASH' AND sale_date <= $1`,
		"cash sales total", asOf)
}

// GetUnpaidExpensesTotal gastos no-nómina comprometidos y sin pagar
// (PENDING o APPROVED). La nómina pendiente se reporta aparte para no
// contarla dos veces.
func (r *ReportRepo) GetUnpaidExpensesTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return r.scanTotal(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE status IN ('PENDING', 'APPROVED') AND category <> 'PAYROLL' AND expense_date <= $1`,
		"unpaid expenses total", asOf)
}

// GetPendingPayrollTotal nómina comprometida y sin pagar.
func (r *ReportRepo) GetPendingPayrollTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return r.scanTotal(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE status IN ('PENDING', 'APPROVED') AND category = 'PAYROLL' AND expense_date <= $1`,
		"pending payroll total", asOf)
}

// GetRevenueTotal ingreso acumulado de ventas COMPLETED hasta la fecha de corte.
func (r *ReportRepo) GetRevenueTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return r.scanTotal(ctx,
		`SELECT COALESCE(SUM(final_amount), 0) FROM sales
		 WHERE status = 'COMPLETED' AND sale_date <= $1`,
		"revenue total", asOf)
}

// GetApprovedExpensesTotal gastos APPROVED o PAID acumulados hasta la fecha de corte.
func (r *ReportRepo) GetApprovedExpensesTotal(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return r.scanTotal(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE status IN ('APPROVED', 'PAID') AND expense_date <= $1`,
		"approved expenses total", asOf)
}

func (r *ReportRepo) scanTotal(ctx context.Context, query, op string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
