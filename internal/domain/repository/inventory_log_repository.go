package repository

import (
	"time"

	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

// LogFilter filtra la consulta del libro de inventario.
type LogFilter struct {
	ItemID     string
	Type       string
	Reference  string
	ReasonLike string // coincidencia por substring en reason
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// InventoryLogRepository puerto del libro de inventario. El libro es
// append-only: no se exponen operaciones de update ni delete.
type InventoryLogRepository interface {
	// Append persiste una entrada nueva. Falla con ErrValidation si
	// PreviousStock + Quantity != NewStock.
	Append(entry *entity.InventoryLogEntry) error
	// Query devuelve entradas ordenadas por created_at descendente.
	Query(filter LogFilter) ([]*entity.InventoryLogEntry, error)
	// ListByReference devuelve las entradas de un tipo ligadas a una venta.
	ListByReference(reference, logType string) ([]*entity.InventoryLogEntry, error)
	// HasEntriesForItem informa si el ítem tiene historial (precondición de purga).
	HasEntriesForItem(itemID string) (bool, error)
}
