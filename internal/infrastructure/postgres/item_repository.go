package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, sku, category_id, supplier_id, unit, cost_price, selling_price, current_stock, reorder_level, active, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.CategoryID, nullIfEmpty(item.SupplierID), item.Unit,
		item.CostPrice, item.SellingPrice, item.CurrentStock, item.ReorderLevel,
		item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetByIDForUpdate obtiene un ítem bloqueando la fila hasta el fin de la transacción.
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// GetByIDs obtiene varios ítems en una sola consulta.
func (r *ItemRepo) GetByIDs(ids []string) (map[string]*entity.Item, error) {
	if len(ids) == 0 {
		return map[string]*entity.Item{}, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Item, len(ids))
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out[item.ID] = item
	}
	return out, rows.Err()
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE LOWER(name) = LOWER($1)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get item by name")
}

// GetBySKU busca por SKU exacto.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get item by sku")
}

// List lista ítems con paginación; onlyActive filtra los desactivados.
func (r *ItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListBelowReorderLevel lista ítems activos con stock en o por debajo del nivel de reorden.
func (r *ItemRepo) ListBelowReorderLevel() ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE active AND current_stock <= reorder_level
		ORDER BY current_stock - reorder_level`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// UpdateInfo actualiza los campos descriptivos. No toca current_stock: eso es
// exclusivo de UpdateStock.
func (r *ItemRepo) UpdateInfo(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, sku = $3, category_id = $4, supplier_id = $5, unit = $6,
			cost_price = $7, selling_price = $8, reorder_level = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.CategoryID, nullIfEmpty(item.SupplierID), item.Unit,
		item.CostPrice, item.SellingPrice, item.ReorderLevel, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock fija el total corrido del ítem.
func (r *ItemRepo) UpdateStock(id string, newStock decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		id, newStock, at,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva un ítem.
func (r *ItemRepo) SetActive(id string, active bool, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET active = $2, updated_at = $3 WHERE id = $1`,
		id, active, at,
	)
	if err != nil {
		return fmt.Errorf("set item active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente un ítem (solo si no tiene historial; lo valida el caso de uso).
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	item, err := scanItemRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func scanItemRow(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var supplierID *string
	err := row.Scan(
		&it.ID, &it.Name, &it.SKU, &it.CategoryID, &supplierID, &it.Unit,
		&it.CostPrice, &it.SellingPrice, &it.CurrentStock, &it.ReorderLevel,
		&it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		it.SupplierID = *supplierID
	}
	return &it, nil
}

func scanItem(rows pgx.Rows) (*entity.Item, error) {
	item, err := scanItemRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return item, nil
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
