package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// SaleTxRunner abre una transacción con los repositorios de venta e
// inventario atados a ella: la cabecera de la venta y todas sus mutaciones
// de stock se confirman o revierten juntas.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		logRepo repository.InventoryLogRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockMutator es el cuello estrecho por el que este procesador descuenta y
// repone stock dentro de su propia transacción.
type StockMutator interface {
	ApplyDeltaInTx(
		itemRepo repository.ItemRepository,
		logRepo repository.InventoryLogRepository,
		in inventory.ApplyDeltaInput,
		now time.Time,
	) (decimal.Decimal, error)
}
