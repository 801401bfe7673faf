package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

const logColumns = `id, item_id, user_id, type, quantity, previous_stock, new_stock, reason, reference, created_at`

// InventoryLogRepo implementación del libro de inventario sobre PostgreSQL.
// Solo inserta y consulta: el libro no se actualiza ni se borra.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append persiste una entrada nueva validando la aritmética de snapshots.
func (r *InventoryLogRepo) Append(entry *entity.InventoryLogEntry) error {
	if !entry.PreviousStock.Add(entry.Quantity).Equal(entry.NewStock) {
		return fmt.Errorf("%w: previous_stock + quantity != new_stock", domain.ErrValidation)
	}
	if !entity.ValidLogType(entry.Type) {
		return fmt.Errorf("%w: tipo de movimiento desconocido: %s", domain.ErrValidation, entry.Type)
	}
	query := `
		INSERT INTO inventory_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ItemID, entry.UserID, entry.Type, entry.Quantity,
		entry.PreviousStock, entry.NewStock, entry.Reason, nullIfEmpty(entry.Reference), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// Query devuelve entradas del libro, más recientes primero.
func (r *InventoryLogRepo) Query(filter repository.LogFilter) ([]*entity.InventoryLogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM inventory_logs WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.ItemID != "" {
		query += ` AND item_id = ` + arg(filter.ItemID)
	}
	if filter.Type != "" {
		query += ` AND type = ` + arg(filter.Type)
	}
	if filter.Reference != "" {
		query += ` AND reference = ` + arg(filter.Reference)
	}
	if filter.ReasonLike != "" {
		query += ` AND reason ILIKE ` + arg("%"+filter.ReasonLike+"%")
	}
	if filter.From != nil {
		query += ` AND created_at >= ` + arg(*filter.From)
	}
	if filter.To != nil {
		query += ` AND created_at <= ` + arg(*filter.To)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory logs: %w", err)
	}
	defer rows.Close()
	return collectLogEntries(rows)
}

// ListByReference devuelve las entradas de un tipo ligadas a una referencia (ej. venta).
func (r *InventoryLogRepo) ListByReference(reference, logType string) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT ` + logColumns + ` FROM inventory_logs
		WHERE reference = $1 AND type = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, reference, logType)
	if err != nil {
		return nil, fmt.Errorf("list logs by reference: %w", err)
	}
	defer rows.Close()
	return collectLogEntries(rows)
}

// HasEntriesForItem informa si el ítem aparece en el libro.
func (r *InventoryLogRepo) HasEntriesForItem(itemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM inventory_logs WHERE item_id = $1)`, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item history: %w", err)
	}
	return exists, nil
}

func collectLogEntries(rows pgx.Rows) ([]*entity.InventoryLogEntry, error) {
	var list []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		var reference *string
		if err := rows.Scan(
			&e.ID, &e.ItemID, &e.UserID, &e.Type, &e.Quantity,
			&e.PreviousStock, &e.NewStock, &e.Reason, &reference, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		if reference != nil {
			e.Reference = *reference
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
