package repository

import (
	"time"

	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para categorías de ítems.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error) // case-insensitive
	List(onlyActive bool) ([]*entity.Category, error)
	Update(category *entity.Category) error
	SetActive(id string, active bool, at time.Time) error
	Delete(id string) error
	// HasItems informa si la categoría tiene ítems asociados (precondición de purga).
	HasItems(id string) (bool, error)
}
