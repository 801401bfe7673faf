package expenses

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// transiciones de estado permitidas para un gasto.
var allowedTransitions = map[string][]string{
	entity.ExpenseStatusPending:  {entity.ExpenseStatusApproved, entity.ExpenseStatusRejected},
	entity.ExpenseStatusApproved: {entity.ExpenseStatusPaid, entity.ExpenseStatusRejected},
	entity.ExpenseStatusRejected: {},
	entity.ExpenseStatusPaid:     {},
}

// ExpenseUseCase maneja el registro y aprobación de gastos operativos.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseUseCase(expenseRepo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo}
}

// Create registra un gasto en estado PENDING.
func (uc *ExpenseUseCase) Create(req dto.CreateExpenseRequest, userID string) (*dto.ExpenseDTO, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", domain.ErrValidation)
	}
	if !entity.ValidExpenseCategory(req.Category) {
		return nil, fmt.Errorf("%w: categoría de gasto inválida: %s", domain.ErrValidation, req.Category)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrValidation)
	}

	now := time.Now()
	expenseDate := now
	if req.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de gasto inválida", domain.ErrValidation)
		}
		expenseDate = parsed
	}

	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Status:      entity.ExpenseStatusPending,
		EmployeeID:  req.EmployeeID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseDTO(expense), nil
}

// GetByID busca un gasto.
func (uc *ExpenseUseCase) GetByID(id string) (*dto.ExpenseDTO, error) {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseDTO(expense), nil
}

// UpdateStatus aplica una transición validando el grafo permitido:
// PENDING → APPROVED|REJECTED, APPROVED → PAID|REJECTED; los estados
// terminales no admiten cambios.
func (uc *ExpenseUseCase) UpdateStatus(id, newStatus string) (*dto.ExpenseDTO, error) {
	if !entity.ValidExpenseStatus(newStatus) {
		return nil, fmt.Errorf("%w: estado de gasto inválido: %s", domain.ErrValidation, newStatus)
	}
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}

	valid := false
	for _, allowed := range allowedTransitions[expense.Status] {
		if allowed == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: transición de %s a %s no permitida", domain.ErrConflict, expense.Status, newStatus)
	}

	now := time.Now()
	if err := uc.expenseRepo.UpdateStatus(id, newStatus, now); err != nil {
		return nil, err
	}
	expense.Status = newStatus
	expense.UpdatedAt = now
	return toExpenseDTO(expense), nil
}

// List filtra gastos por categoría, estado y rango de fechas.
func (uc *ExpenseUseCase) List(req dto.ExpenseListRequest) ([]dto.ExpenseDTO, error) {
	if req.Category != "" && !entity.ValidExpenseCategory(req.Category) {
		return nil, fmt.Errorf("%w: categoría de gasto inválida: %s", domain.ErrValidation, req.Category)
	}
	if req.Status != "" && !entity.ValidExpenseStatus(req.Status) {
		return nil, fmt.Errorf("%w: estado de gasto inválido: %s", domain.ErrValidation, req.Status)
	}

	req.DefaultPage()
	filter := repository.ExpenseFilter{
		Category: req.Category,
		Status:   req.Status,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if req.From != "" {
		from, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha inicial inválida", domain.ErrValidation)
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha final inválida", domain.ErrValidation)
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	list, err := uc.expenseRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseDTO, 0, len(list))
	for _, expense := range list {
		out = append(out, *toExpenseDTO(expense))
	}
	return out, nil
}

func toExpenseDTO(e *entity.Expense) *dto.ExpenseDTO {
	return &dto.ExpenseDTO{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Status:      e.Status,
		EmployeeID:  e.EmployeeID,
		CreatedBy:   e.CreatedBy,
	}
}
