package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

// AdjustmentUseCase registra movimientos que no nacen de una venta:
// correcciones de conteo y mermas. Delega todo en el Stock Mutator.
type AdjustmentUseCase struct {
	stock *StockUseCase
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(stock *StockUseCase) *AdjustmentUseCase {
	return &AdjustmentUseCase{stock: stock}
}

// RecordAdjustment aplica una corrección con signo libre (tipo ADJUSTMENT).
func (uc *AdjustmentUseCase) RecordAdjustment(
	ctx context.Context,
	itemID string,
	delta decimal.Decimal,
	reason, userID string,
) (decimal.Decimal, error) {
	return uc.stock.ApplyDelta(ctx, ApplyDeltaInput{
		ItemID: itemID,
		Delta:  delta,
		Type:   entity.LogTypeAdjustment,
		Reason: reason,
		UserID: userID,
	})
}

// RecordWaste registra una merma. Quantity debe ser positiva; el delta
// aplicado siempre descuenta.
func (uc *AdjustmentUseCase) RecordWaste(
	ctx context.Context,
	itemID string,
	quantity decimal.Decimal,
	reason, userID string,
) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, domain.ErrValidation
	}
	return uc.stock.ApplyDelta(ctx, ApplyDeltaInput{
		ItemID: itemID,
		Delta:  quantity.Neg(),
		Type:   entity.LogTypeWaste,
		Reason: reason,
		UserID: userID,
	})
}
