package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_number, user_id, sale_date, total_amount, discount, final_amount, payment_method, status, notes, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta. El índice único sobre sale_number convierte una
// colisión de número en ErrDuplicate.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.UserID, sale.SaleDate,
		sale.TotalAmount, sale.Discount, sale.FinalAmount,
		sale.PaymentMethod, sale.Status, sale.Notes, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.getOne(`SELECT ` + saleColumns + ` FROM sales WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene una venta bloqueando la fila hasta el fin de la transacción.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.getOne(`SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleNumber, &s.UserID, &s.SaleDate,
		&s.TotalAmount, &s.Discount, &s.FinalAmount,
		&s.PaymentMethod, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// UpdateStatus cambia el estado de la venta y reemplaza las notas.
func (r *SaleRepo) UpdateStatus(id, status, notes string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		id, status, notes, at,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas por rango de fecha y estado, más recientes primero.
func (r *SaleRepo) List(from, to *time.Time, status string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if from != nil {
		query += ` AND sale_date >= ` + arg(*from)
	}
	if to != nil {
		query += ` AND sale_date <= ` + arg(*to)
	}
	if status != "" {
		query += ` AND status = ` + arg(status)
	}
	query += ` ORDER BY sale_date DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.SaleNumber, &s.UserID, &s.SaleDate,
			&s.TotalAmount, &s.Discount, &s.FinalAmount,
			&s.PaymentMethod, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
