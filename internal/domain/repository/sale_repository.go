package repository

import (
	"time"

	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas. Una venta solo muta para
// pasar a REFUNDED; el resto del registro es de solo lectura tras el commit.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido
	// dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Sale, error)
	// UpdateStatus cambia el estado y reemplaza las notas (el caso de uso
	// concatena la razón del reembolso, nunca pisa las notas originales).
	UpdateStatus(id, status, notes string, at time.Time) error
	List(from, to *time.Time, status string, limit, offset int) ([]*entity.Sale, error)
}
