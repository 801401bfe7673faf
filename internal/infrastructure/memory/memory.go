// Package memory implementa los puertos de persistencia en mapas con mutex.
// Se usa en tests de casos de uso: mismas semánticas que el adaptador de
// PostgreSQL, incluyendo rollback por snapshot en el TxRunner.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/application/sales"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

var (
	_ repository.ItemRepository         = (*ItemRepo)(nil)
	_ repository.InventoryLogRepository = (*LogRepo)(nil)
	_ repository.SaleRepository         = (*SaleRepo)(nil)
	_ inventory.TxRunner                = (*Store)(nil)
	_ sales.SaleTxRunner                = (*Store)(nil)
)

// Store estado compartido de los repos en memoria.
type Store struct {
	mu    sync.Mutex
	items map[string]entity.Item
	logs  []entity.InventoryLogEntry
	sales map[string]entity.Sale
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items: make(map[string]entity.Item),
		sales: make(map[string]entity.Sale),
	}
}

// Items devuelve la vista ItemRepository del store.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Logs devuelve la vista InventoryLogRepository del store.
func (s *Store) Logs() *LogRepo { return &LogRepo{s: s} }

// Sales devuelve la vista SaleRepository del store.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// snapshot copia el estado para poder restaurarlo si el callback falla.
func (s *Store) snapshot() (map[string]entity.Item, []entity.InventoryLogEntry, map[string]entity.Sale) {
	items := make(map[string]entity.Item, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	logs := append([]entity.InventoryLogEntry(nil), s.logs...)
	salesCopy := make(map[string]entity.Sale, len(s.sales))
	for k, v := range s.sales {
		salesCopy[k] = v
	}
	return items, logs, salesCopy
}

// Run emula una transacción: si fn falla, el estado vuelve al snapshot.
func (s *Store) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	s.mu.Lock()
	items, logs, salesCopy := s.snapshot()
	s.mu.Unlock()

	if err := fn(s.Items(), s.Logs()); err != nil {
		s.mu.Lock()
		s.items, s.logs, s.sales = items, logs, salesCopy
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunSale igual que Run pero con el repo de ventas incluido.
func (s *Store) RunSale(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	logRepo repository.InventoryLogRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.mu.Lock()
	items, logs, salesCopy := s.snapshot()
	s.mu.Unlock()

	if err := fn(s.Items(), s.Logs(), s.Sales()); err != nil {
		s.mu.Lock()
		s.items, s.logs, s.sales = items, logs, salesCopy
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── ItemRepository ────────────────────────────────────────────────────────────

type ItemRepo struct {
	s *Store
}

func (r *ItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.items {
		if strings.EqualFold(existing.Name, item.Name) || (item.SKU != "" && existing.SKU == item.SKU) {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item, ok := r.s.items[id]; ok {
		out := item
		return &out, nil
	}
	return nil, nil
}

func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *ItemRepo) GetByIDs(ids []string) (map[string]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		if item, ok := r.s.items[id]; ok {
			copied := item
			out[id] = &copied
		}
	}
	return out, nil
}

func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if strings.EqualFold(item.Name, name) {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if item.SKU == sku {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Item
	for _, item := range r.s.items {
		if onlyActive && !item.Active {
			continue
		}
		copied := item
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *ItemRepo) ListBelowReorderLevel() ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Item
	for _, item := range r.s.items {
		if item.Active && item.CurrentStock.LessThanOrEqual(item.ReorderLevel) {
			copied := item
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CurrentStock.Sub(list[i].ReorderLevel).LessThan(list[j].CurrentStock.Sub(list[j].ReorderLevel))
	})
	return list, nil
}

func (r *ItemRepo) UpdateInfo(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *item
	updated.CurrentStock = existing.CurrentStock // el stock solo muta vía UpdateStock
	r.s.items[item.ID] = updated
	return nil
}

func (r *ItemRepo) UpdateStock(id string, newStock decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentStock = newStock
	item.UpdatedAt = at
	r.s.items[id] = item
	return nil
}

func (r *ItemRepo) SetActive(id string, active bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Active = active
	item.UpdatedAt = at
	r.s.items[id] = item
	return nil
}

func (r *ItemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

// ── InventoryLogRepository ────────────────────────────────────────────────────

type LogRepo struct {
	s *Store
}

func (r *LogRepo) Append(entry *entity.InventoryLogEntry) error {
	if !entry.PreviousStock.Add(entry.Quantity).Equal(entry.NewStock) {
		return fmt.Errorf("%w: previous_stock + quantity != new_stock", domain.ErrValidation)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, *entry)
	return nil
}

func (r *LogRepo) Query(filter repository.LogFilter) ([]*entity.InventoryLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InventoryLogEntry
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		e := r.s.logs[i]
		if filter.ItemID != "" && e.ItemID != filter.ItemID {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Reference != "" && e.Reference != filter.Reference {
			continue
		}
		if filter.ReasonLike != "" && !strings.Contains(strings.ToLower(e.Reason), strings.ToLower(filter.ReasonLike)) {
			continue
		}
		if filter.From != nil && e.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.CreatedAt.After(*filter.To) {
			continue
		}
		copied := e
		list = append(list, &copied)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(list) {
			return nil, nil
		}
		list = list[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *LogRepo) ListByReference(reference, logType string) ([]*entity.InventoryLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InventoryLogEntry
	for _, e := range r.s.logs {
		if e.Reference == reference && e.Type == logType {
			copied := e
			list = append(list, &copied)
		}
	}
	return list, nil
}

func (r *LogRepo) HasEntriesForItem(itemID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.logs {
		if e.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

// ── SaleRepository ────────────────────────────────────────────────────────────

type SaleRepo struct {
	s *Store
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale, ok := r.s.sales[id]; ok {
		out := sale
		return &out, nil
	}
	return nil, nil
}

func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *SaleRepo) UpdateStatus(id, status, notes string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	sale.Notes = notes
	sale.UpdatedAt = at
	r.s.sales[id] = sale
	return nil
}

func (r *SaleRepo) List(from, to *time.Time, status string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Sale
	for _, sale := range r.s.sales {
		if from != nil && sale.SaleDate.Before(*from) {
			continue
		}
		if to != nil && sale.SaleDate.After(*to) {
			continue
		}
		if status != "" && sale.Status != status {
			continue
		}
		copied := sale
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SaleDate.After(list[j].SaleDate) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
