package expenses_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/application/expenses"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

type fakeExpenseRepo struct {
	byID map[string]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{byID: map[string]*entity.Expense{}}
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) UpdateStatus(id, status string, at time.Time) error {
	e, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = at
	return nil
}

func (r *fakeExpenseRepo) List(_ repository.ExpenseFilter) ([]*entity.Expense, error) {
	out := make([]*entity.Expense, 0, len(r.byID))
	for _, e := range r.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func createExpense(t *testing.T, uc *expenses.ExpenseUseCase) *dto.ExpenseDTO {
	t.Helper()
	out, err := uc.Create(dto.CreateExpenseRequest{
		Category:    entity.ExpenseCatOperational,
		Description: "Gas de la cocina",
		Amount:      decimal.NewFromInt(120),
		ExpenseDate: "2025-06-18",
	}, "user-1")
	require.NoError(t, err)
	return out
}

func TestCreateExpense_NacePendiente(t *testing.T) {
	uc := expenses.NewExpenseUseCase(newFakeExpenseRepo())
	out := createExpense(t, uc)
	assert.Equal(t, entity.ExpenseStatusPending, out.Status)
	assert.Equal(t, "user-1", out.CreatedBy)
	assert.Equal(t, "2025-06-18", out.ExpenseDate.Format("2006-01-02"))
}

func TestCreateExpense_Validaciones(t *testing.T) {
	uc := expenses.NewExpenseUseCase(newFakeExpenseRepo())

	_, err := uc.Create(dto.CreateExpenseRequest{
		Category: entity.ExpenseCatStock, Amount: decimal.NewFromInt(10),
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrValidation, "descripción vacía")

	_, err = uc.Create(dto.CreateExpenseRequest{
		Category: "TRAVEL", Description: "x", Amount: decimal.NewFromInt(10),
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrValidation, "categoría desconocida")

	_, err = uc.Create(dto.CreateExpenseRequest{
		Category: entity.ExpenseCatStock, Description: "x", Amount: decimal.Zero,
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrValidation, "monto en cero")
}

// El ciclo de vida completo: PENDING → APPROVED → PAID.
func TestUpdateStatus_FlujoDeAprobacion(t *testing.T) {
	uc := expenses.NewExpenseUseCase(newFakeExpenseRepo())
	out := createExpense(t, uc)

	approved, err := uc.UpdateStatus(out.ID, entity.ExpenseStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseStatusApproved, approved.Status)

	paid, err := uc.UpdateStatus(out.ID, entity.ExpenseStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.ExpenseStatusPaid, paid.Status)
}

func TestUpdateStatus_TransicionesProhibidas(t *testing.T) {
	cases := []struct {
		name string
		path []string // estados a aplicar en orden; el último debe fallar
	}{
		{"pendiente directo a pagado", []string{entity.ExpenseStatusPaid}},
		{"rechazado es terminal", []string{entity.ExpenseStatusRejected, entity.ExpenseStatusApproved}},
		{"pagado es terminal", []string{entity.ExpenseStatusApproved, entity.ExpenseStatusPaid, entity.ExpenseStatusRejected}},
		{"volver a pendiente", []string{entity.ExpenseStatusApproved, entity.ExpenseStatusPending}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := expenses.NewExpenseUseCase(newFakeExpenseRepo())
			out := createExpense(t, uc)

			for i, status := range tc.path {
				_, err := uc.UpdateStatus(out.ID, status)
				if i < len(tc.path)-1 {
					require.NoError(t, err)
					continue
				}
				assert.ErrorIs(t, err, domain.ErrConflict)
			}

			// El estado almacenado no cambió con el intento rechazado.
			current, err := uc.GetByID(out.ID)
			require.NoError(t, err)
			if len(tc.path) > 1 {
				assert.Equal(t, tc.path[len(tc.path)-2], current.Status)
			} else {
				assert.Equal(t, entity.ExpenseStatusPending, current.Status)
			}
		})
	}
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	uc := expenses.NewExpenseUseCase(newFakeExpenseRepo())
	out := createExpense(t, uc)
	_, err := uc.UpdateStatus(out.ID, "ARCHIVED")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_GastoInexistente(t *testing.T) {
	uc := expenses.NewExpenseUseCase(newFakeExpenseRepo())
	_, err := uc.UpdateStatus("no-existe", entity.ExpenseStatusApproved)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
