package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// StockUseCase es el único camino por el que cambia items.current_stock:
// bloquea la fila del ítem (SELECT FOR UPDATE), recalcula el stock y agrega
// la entrada al libro con snapshots consistentes, todo en una transacción.
// No sabe nada de ventas, reembolsos ni reportes.
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// ApplyDeltaInput entrada para una mutación de stock.
type ApplyDeltaInput struct {
	ItemID    string
	Delta     decimal.Decimal // con signo; el tipo restringe el signo permitido
	Type      string          // STOCK_IN | STOCK_OUT | ADJUSTMENT | WASTE
	Reason    string
	UserID    string
	Reference string // opcional: id de la venta
}

// validate aplica las reglas de tipo y signo antes de tocar la BD.
func (in ApplyDeltaInput) validate() error {
	if in.ItemID == "" || in.UserID == "" || strings.TrimSpace(in.Reason) == "" {
		return domain.ErrValidation
	}
	if in.Delta.IsZero() {
		return domain.ErrValidation
	}
	switch in.Type {
	case entity.LogTypeStockIn:
		if in.Delta.IsNegative() {
			return domain.ErrValidation
		}
	case entity.LogTypeStockOut, entity.LogTypeWaste:
		if in.Delta.IsPositive() {
			return domain.ErrValidation
		}
	case entity.LogTypeAdjustment:
		// cualquier signo
	default:
		return domain.ErrValidation
	}
	return nil
}

// ApplyDelta abre su propia transacción y aplica la mutación. Devuelve el
// stock resultante.
func (uc *StockUseCase) ApplyDelta(ctx context.Context, in ApplyDeltaInput) (decimal.Decimal, error) {
	if err := in.validate(); err != nil {
		return decimal.Zero, err
	}
	var newStock decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		var err error
		newStock, err = uc.ApplyDeltaInTx(itemRepo, logRepo, in, time.Now())
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newStock, nil
}

// ApplyDeltaInTx aplica la mutación usando los repositorios del caller (su
// misma transacción). Lo usan el procesador de ventas y el reembolso para
// agrupar varias mutaciones con la cabecera de la venta.
func (uc *StockUseCase) ApplyDeltaInTx(
	itemRepo repository.ItemRepository,
	logRepo repository.InventoryLogRepository,
	in ApplyDeltaInput,
	now time.Time,
) (decimal.Decimal, error) {
	if err := in.validate(); err != nil {
		return decimal.Zero, err
	}

	// Relectura bajo lock: dos ventas concurrentes sobre el mismo ítem se
	// serializan aquí y la segunda ve el stock ya descontado.
	item, err := itemRepo.GetByIDForUpdate(in.ItemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil || !item.Active {
		return decimal.Zero, domain.ErrNotFound
	}

	newStock := item.CurrentStock.Add(in.Delta)
	if newStock.IsNegative() {
		if in.Type == entity.LogTypeStockOut || in.Type == entity.LogTypeWaste {
			return decimal.Zero, &domain.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: item.CurrentStock,
				Requested: in.Delta.Abs(),
			}
		}
		// Un ajuste puede dejar el stock en cero pero no bajo cero.
		return decimal.Zero, domain.ErrValidation
	}

	if err := itemRepo.UpdateStock(item.ID, newStock, now); err != nil {
		return decimal.Zero, err
	}
	entry := &entity.InventoryLogEntry{
		ID:            uuid.New().String(),
		ItemID:        item.ID,
		UserID:        in.UserID,
		Type:          in.Type,
		Quantity:      in.Delta,
		PreviousStock: item.CurrentStock,
		NewStock:      newStock,
		Reason:        in.Reason,
		Reference:     in.Reference,
		CreatedAt:     now,
	}
	if err := logRepo.Append(entry); err != nil {
		return decimal.Zero, err
	}
	return newStock, nil
}
