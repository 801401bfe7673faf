package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest cuerpo para POST /api/expenses. Nace en PENDING.
type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"` // YYYY-MM-DD; vacío = hoy
	EmployeeID  string          `json:"employee_id"`
}

// ExpenseStatusRequest cuerpo para PATCH /api/expenses/:id/status.
type ExpenseStatusRequest struct {
	Status string `json:"status"`
}

// ExpenseDTO representación de un gasto en respuestas.
type ExpenseDTO struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Status      string          `json:"status"`
	EmployeeID  string          `json:"employee_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
}

// ExpenseListRequest filtros para GET /api/expenses.
type ExpenseListRequest struct {
	Category string `query:"category"`
	Status   string `query:"status"`
	From     string `query:"from"`
	To       string `query:"to"`
	PageRequest
}
