package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/pricing"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// Auditor registra eventos de auditoría (desactivaciones, purgas). Un fallo
// del auditor nunca debe abortar la operación principal.
type Auditor interface {
	Audit(event, itemID, userID string) error
}

// ItemUseCase administra el ciclo de vida de los ítems. El stock inicial
// entra por el Stock Mutator como cualquier otro movimiento; este caso de
// uso jamás escribe current_stock directamente.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	logRepo  repository.InventoryLogRepository
	stock    *StockUseCase
	auditor  Auditor
	log      zerolog.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	logRepo repository.InventoryLogRepository,
	stock *StockUseCase,
	auditor Auditor,
	log zerolog.Logger,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, logRepo: logRepo, stock: stock, auditor: auditor, log: log}
}

// Create valida unicidad de nombre (case-insensitive) y SKU, persiste el ítem
// y registra el stock inicial como un STOCK_IN del libro.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if name == "" || sku == "" || in.CategoryID == "" || in.Unit == "" {
		return nil, domain.ErrValidation
	}
	if !in.CostPrice.IsPositive() {
		return nil, domain.ErrValidation
	}
	if in.SellingPrice != nil && !in.SellingPrice.IsPositive() {
		return nil, domain.ErrValidation
	}
	if in.InitialStock.IsNegative() || in.ReorderLevel.IsNegative() {
		return nil, domain.ErrValidation
	}

	if existing, err := uc.itemRepo.GetByName(name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.itemRepo.GetBySKU(sku); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Name:         name,
		SKU:          sku,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		CurrentStock: decimal.Zero,
		ReorderLevel: in.ReorderLevel,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}

	if in.InitialStock.IsPositive() {
		newStock, err := uc.stock.ApplyDelta(ctx, ApplyDeltaInput{
			ItemID: item.ID,
			Delta:  in.InitialStock,
			Type:   entity.LogTypeStockIn,
			Reason: "Initial stock",
			UserID: userID,
		})
		if err != nil {
			return nil, err
		}
		item.CurrentStock = newStock
	}
	return item, nil
}

// GetByID obtiene un ítem.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List devuelve ítems paginados.
func (uc *ItemUseCase) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(onlyActive, limit, offset)
}

// Update modifica campos descriptivos. El stock no se toca por aquí.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		if !strings.EqualFold(name, item.Name) {
			if existing, err := uc.itemRepo.GetByName(name); err != nil {
				return nil, err
			} else if existing != nil && existing.ID != item.ID {
				return nil, domain.ErrDuplicate
			}
		}
		item.Name = name
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		item.SupplierID = *in.SupplierID
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		if !in.CostPrice.IsPositive() {
			return nil, domain.ErrValidation
		}
		item.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		if !in.SellingPrice.IsPositive() {
			return nil, domain.ErrValidation
		}
		item.SellingPrice = in.SellingPrice
	}
	if in.ReorderLevel != nil {
		if in.ReorderLevel.IsNegative() {
			return nil, domain.ErrValidation
		}
		item.ReorderLevel = *in.ReorderLevel
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.UpdateInfo(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Deactivate marca el ítem como inactivo. Siempre es seguro: el historial
// queda intacto. El fallo del auditor se degrada a warning.
func (uc *ItemUseCase) Deactivate(ctx context.Context, id, userID string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.SetActive(id, false, time.Now()); err != nil {
		return err
	}
	if uc.auditor != nil {
		if err := uc.auditor.Audit("item.deactivated", id, userID); err != nil {
			uc.log.Warn().Err(err).Str("item_id", id).Msg("auditoría de desactivación falló")
		}
	}
	return nil
}

// Purge elimina físicamente un ítem. Precondición explícita: sin historial en
// el libro. No se infiere la intención de un error de llave foránea.
func (uc *ItemUseCase) Purge(ctx context.Context, id, userID string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	hasHistory, err := uc.logRepo.HasEntriesForItem(id)
	if err != nil {
		return err
	}
	if hasHistory {
		return domain.ErrConflict
	}
	if err := uc.itemRepo.Delete(id); err != nil {
		return err
	}
	if uc.auditor != nil {
		if err := uc.auditor.Audit("item.purged", id, userID); err != nil {
			uc.log.Warn().Err(err).Str("item_id", id).Msg("auditoría de purga falló")
		}
	}
	return nil
}

// LowStockList devuelve los ítems en o bajo su nivel de reorden con el costo
// estimado de reponer el déficit.
func (uc *ItemUseCase) LowStockList(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListBelowReorderLevel()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		deficit := it.ReorderLevel.Sub(it.CurrentStock)
		if deficit.IsNegative() {
			deficit = decimal.Zero
		}
		out = append(out, dto.LowStockItemDTO{
			ItemID:        it.ID,
			Name:          it.Name,
			SKU:           it.SKU,
			Unit:          it.Unit,
			CurrentStock:  it.CurrentStock,
			ReorderLevel:  it.ReorderLevel,
			Deficit:       deficit,
			EstimatedCost: deficit.Mul(it.CostPrice),
		})
	}
	return out, nil
}

// ToItemResponse arma la representación pública, incluyendo el precio
// efectivo que usaría una venta hoy.
func ToItemResponse(item *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		SKU:            item.SKU,
		CategoryID:     item.CategoryID,
		SupplierID:     item.SupplierID,
		Unit:           item.Unit,
		CostPrice:      item.CostPrice,
		SellingPrice:   item.SellingPrice,
		EffectivePrice: pricing.EffectiveSellingPrice(item.CostPrice, item.SellingPrice),
		CurrentStock:   item.CurrentStock,
		ReorderLevel:   item.ReorderLevel,
		Active:         item.Active,
	}
}
