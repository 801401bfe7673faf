package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	LogTypeStockIn    = "STOCK_IN"   // entrada (compra, devolución por reembolso)
	LogTypeStockOut   = "STOCK_OUT"  // salida (venta)
	LogTypeAdjustment = "ADJUSTMENT" // corrección de conteo
	LogTypeWaste      = "WASTE"      // merma / desperdicio
)

// InventoryLogEntry es un hecho inmutable del libro de inventario.
// Invariante: NewStock = PreviousStock + Quantity, y tras el commit
// NewStock coincide con items.current_stock. Las correcciones son
// entradas nuevas, nunca mutaciones.
type InventoryLogEntry struct {
	ID            string
	ItemID        string
	UserID        string
	Type          string
	Quantity      decimal.Decimal // delta con signo: positivo entra, negativo sale
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	Reference     string // opcional: id de la venta que originó el movimiento
	CreatedAt     time.Time
}

// ValidLogType informa si s es un tipo de movimiento conocido.
func ValidLogType(s string) bool {
	switch s {
	case LogTypeStockIn, LogTypeStockOut, LogTypeAdjustment, LogTypeWaste:
		return true
	}
	return false
}
