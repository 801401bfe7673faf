package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto.
const (
	ExpenseCatStock       = "STOCK"
	ExpenseCatPayroll     = "PAYROLL"
	ExpenseCatOperational = "OPERATIONAL"
	ExpenseCatUtilities   = "UTILITIES"
	ExpenseCatMarketing   = "MARKETING"
	ExpenseCatOther       = "OTHER"
)

// Estados del ciclo de aprobación de un gasto.
const (
	ExpenseStatusPending  = "PENDING"
	ExpenseStatusApproved = "APPROVED"
	ExpenseStatusRejected = "REJECTED"
	ExpenseStatusPaid     = "PAID"
)

// Expense es un evento de costo fuera del libro de inventario.
// Los gastos PAYROLL pendientes cuentan como pasivo en el balance.
type Expense struct {
	ID          string
	Category    string
	Description string
	Amount      decimal.Decimal // > 0
	ExpenseDate time.Time
	Status      string
	EmployeeID  string // opcional, para gastos de nómina
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidExpenseCategory informa si s es una categoría de gasto conocida.
func ValidExpenseCategory(s string) bool {
	switch s {
	case ExpenseCatStock, ExpenseCatPayroll, ExpenseCatOperational,
		ExpenseCatUtilities, ExpenseCatMarketing, ExpenseCatOther:
		return true
	}
	return false
}

// ValidExpenseStatus informa si s es un estado de gasto conocido.
func ValidExpenseStatus(s string) bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected, ExpenseStatusPaid:
		return true
	}
	return false
}
