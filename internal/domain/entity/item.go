package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un insumo o producto almacenado del restaurante.
// CurrentStock es un contador desnormalizado que solo muta el Stock Mutator;
// el historial completo vive en inventory_logs.
type Item struct {
	ID           string
	Name         string // único por restaurante (case-insensitive)
	SKU          string // único
	CategoryID   string
	SupplierID   string // opcional
	Unit         string // kg, litro, unidad, etc.
	CostPrice    decimal.Decimal // > 0
	SellingPrice *decimal.Decimal // nil = usar fallback costo × 1.3
	CurrentStock decimal.Decimal // >= 0, total corrido
	ReorderLevel decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
