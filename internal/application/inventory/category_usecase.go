package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías con el mismo corte desactivar/purgar
// que los ítems.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create valida unicidad de nombre (case-insensitive) y persiste.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	if existing, err := uc.categoryRepo.GetByName(name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// List devuelve las categorías.
func (uc *CategoryUseCase) List(ctx context.Context, onlyActive bool) ([]*entity.Category, error) {
	return uc.categoryRepo.List(onlyActive)
}

// Deactivate siempre es seguro.
func (uc *CategoryUseCase) Deactivate(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.SetActive(id, false, time.Now())
}

// Purge elimina solo si no hay ítems asociados.
func (uc *CategoryUseCase) Purge(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	hasItems, err := uc.categoryRepo.HasItems(id)
	if err != nil {
		return err
	}
	if hasItems {
		return domain.ErrConflict
	}
	return uc.categoryRepo.Delete(id)
}
