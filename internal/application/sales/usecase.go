package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/pricing"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// SalesUseCase convierte un carrito en una venta confirmada con su rastro en
// el libro de inventario, y deshace ventas con entradas compensatorias.
// Toda línea se valida antes de escribir nada: una línea mala aborta la venta
// completa sin descuentos parciales.
type SalesUseCase struct {
	txRunner SaleTxRunner
	stock    StockMutator
	itemRepo repository.ItemRepository
	saleRepo repository.SaleRepository
	logRepo  repository.InventoryLogRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner SaleTxRunner,
	stock StockMutator,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	logRepo repository.InventoryLogRepository,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner: txRunner,
		stock:    stock,
		itemRepo: itemRepo,
		saleRepo: saleRepo,
		logRepo:  logRepo,
	}
}

// saleNumber genera SALE-<yyyyMMdd>-<hhmmss>. La unicidad es al segundo; el
// índice único de sale_number convierte una colisión en ErrDuplicate en vez
// de corromper datos.
func saleNumber(now time.Time) string {
	return fmt.Sprintf("SALE-%s-%s", now.Format("20060102"), now.Format("150405"))
}

// CreateSale valida el carrito completo, resuelve precios, calcula totales y
// confirma venta + descuentos de stock + entradas del libro en una sola
// transacción.
func (uc *SalesUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if userID == "" || len(in.Items) == 0 {
		return nil, domain.ErrValidation
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrValidation
	}
	if in.DiscountAmount.IsNegative() {
		return nil, domain.ErrValidation
	}

	// Una sola lectura para todos los ítems referenciados.
	ids := make([]string, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ItemID == "" {
			return nil, domain.ErrValidation
		}
		ids = append(ids, line.ItemID)
	}
	itemsByID, err := uc.itemRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	// Validar todas las líneas antes de cualquier efecto.
	type pricedLine struct {
		item    *entity.Item
		qty     decimal.Decimal
		price   decimal.Decimal
		revenue decimal.Decimal
		cost    decimal.Decimal
	}
	lines := make([]pricedLine, 0, len(in.Items))
	var totalAmount, totalCost decimal.Decimal
	for _, line := range in.Items {
		item, ok := itemsByID[line.ItemID]
		if !ok || item == nil || !item.Active {
			return nil, domain.ErrNotFound
		}
		if !line.Quantity.IsPositive() {
			return nil, domain.ErrValidation
		}
		if line.Quantity.GreaterThan(item.CurrentStock) {
			return nil, &domain.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: item.CurrentStock,
				Requested: line.Quantity,
			}
		}
		price := pricing.EffectiveSellingPrice(item.CostPrice, item.SellingPrice)
		if line.PriceOverride != nil {
			if !line.PriceOverride.IsPositive() {
				return nil, domain.ErrValidation
			}
			price = *line.PriceOverride
		}
		revenue := pricing.LineRevenue(price, line.Quantity)
		cost := pricing.LineCost(item.CostPrice, line.Quantity)
		totalAmount = totalAmount.Add(revenue)
		totalCost = totalCost.Add(cost)
		lines = append(lines, pricedLine{item: item, qty: line.Quantity, price: price, revenue: revenue, cost: cost})
	}

	finalAmount := totalAmount.Sub(in.DiscountAmount)
	if finalAmount.IsNegative() {
		finalAmount = decimal.Zero
	}
	grossProfit := finalAmount.Sub(totalCost)

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		SaleNumber:    saleNumber(now),
		UserID:        userID,
		SaleDate:      now,
		TotalAmount:   totalAmount,
		Discount:      in.DiscountAmount,
		FinalAmount:   finalAmount,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusCompleted,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Cabecera + mutaciones de stock en una transacción. Si el stock cambió
	// entre la validación y el lock (carrera con otra venta), el mutador
	// vuelve a chequear bajo SELECT FOR UPDATE y el rollback deja todo como
	// estaba.
	err = uc.txRunner.RunSale(ctx, func(
		itemRepo repository.ItemRepository,
		logRepo repository.InventoryLogRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := uc.stock.ApplyDeltaInTx(itemRepo, logRepo, inventory.ApplyDeltaInput{
				ItemID:    line.item.ID,
				Delta:     line.qty.Neg(),
				Type:      entity.LogTypeStockOut,
				Reason:    "Sale - " + sale.SaleNumber,
				UserID:    userID,
				Reference: sale.ID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateSaleResponse{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		FinalAmount: finalAmount,
		GrossProfit: grossProfit,
	}, nil
}

// RefundSale marca la venta como REFUNDED y repone el stock con entradas
// STOCK_IN compensatorias; las entradas originales jamás se tocan.
func (uc *SalesUseCase) RefundSale(ctx context.Context, userID, saleID, reason string) error {
	if saleID == "" {
		return domain.ErrValidation
	}
	now := time.Now()
	return uc.txRunner.RunSale(ctx, func(
		itemRepo repository.ItemRepository,
		logRepo repository.InventoryLogRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Las lecturas que deciden el reembolso viven dentro de la tx, con la
		// fila de la venta bloqueada: dos reembolsos concurrentes se
		// serializan y el segundo ve REFUNDED.
		sale, err := saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusRefunded {
			return domain.ErrConflict
		}

		entries, err := logRepo.ListByReference(saleID, entity.LogTypeStockOut)
		if err != nil {
			return err
		}

		notes := sale.Notes
		if reason != "" {
			if notes != "" {
				notes += " | "
			}
			notes += "Refund: " + reason
		}

		if err := saleRepo.UpdateStatus(saleID, entity.SaleStatusRefunded, notes, now); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := uc.stock.ApplyDeltaInTx(itemRepo, logRepo, inventory.ApplyDeltaInput{
				ItemID:    entry.ItemID,
				Delta:     entry.Quantity.Abs(),
				Type:      entity.LogTypeStockIn,
				Reason:    "Refund - " + sale.SaleNumber,
				UserID:    userID,
				Reference: sale.ID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetSale consulta una venta por id.
func (uc *SalesUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleDTO, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := toSaleDTO(sale)
	return &out, nil
}

// ListSales lista ventas por rango de fechas y estado.
func (uc *SalesUseCase) ListSales(ctx context.Context, from, to *time.Time, status string, limit, offset int) ([]dto.SaleDTO, error) {
	list, err := uc.saleRepo.List(from, to, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleDTO(s))
	}
	return out, nil
}

func toSaleDTO(s *entity.Sale) dto.SaleDTO {
	return dto.SaleDTO{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		UserID:        s.UserID,
		SaleDate:      s.SaleDate,
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Notes:         s.Notes,
	}
}
