package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

// ItemRepository puerto de persistencia para ítems del inventario.
// UpdateStock es de uso exclusivo del Stock Mutator; ningún otro caso de uso
// debe tocar current_stock.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido
	// dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Item, error)
	GetByIDs(ids []string) (map[string]*entity.Item, error)
	GetByName(name string) (*entity.Item, error) // case-insensitive
	GetBySKU(sku string) (*entity.Item, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Item, error)
	// ListBelowReorderLevel devuelve ítems activos con stock <= nivel de reorden.
	ListBelowReorderLevel() ([]*entity.Item, error)
	// UpdateInfo actualiza los campos descriptivos (nunca el stock).
	UpdateInfo(item *entity.Item) error
	UpdateStock(id string, newStock decimal.Decimal, at time.Time) error
	SetActive(id string, active bool, at time.Time) error
	Delete(id string) error
}
