package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRequest cuerpo para POST /api/inventory/adjustments.
// Delta puede ser positivo o negativo; nunca deja el stock bajo cero.
type AdjustmentRequest struct {
	ItemID string          `json:"item_id"`
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}

// WasteRequest cuerpo para POST /api/inventory/waste. Quantity es positiva;
// el movimiento registrado siempre descuenta.
type WasteRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
}

// StockResponse resultado de una mutación de stock.
type StockResponse struct {
	ItemID   string          `json:"item_id"`
	NewStock decimal.Decimal `json:"new_stock"`
}

// MovementQueryRequest filtros para GET /api/inventory/movements.
type MovementQueryRequest struct {
	ItemID string `query:"item_id"`
	Type   string `query:"type"`
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`
	PageRequest
}

// MovementDTO entrada del libro en respuestas.
type MovementDTO struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	UserID        string          `json:"user_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
