package repository

import (
	"time"

	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

// ExpenseFilter filtra el listado de gastos.
type ExpenseFilter struct {
	Category string
	Status   string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ExpenseRepository puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	UpdateStatus(id, status string, at time.Time) error
	List(filter ExpenseFilter) ([]*entity.Expense, error)
}
