package inventory

import (
	"context"

	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura del stock y el
// append al libro sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}
