package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del carrito.
type SaleLineRequest struct {
	ItemID        string           `json:"item_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PriceOverride *decimal.Decimal `json:"price_override"` // null = precio del ítem o fallback
}

// CreateSaleRequest cuerpo para POST /api/sales.
type CreateSaleRequest struct {
	Items          []SaleLineRequest `json:"items"`
	PaymentMethod  string            `json:"payment_method"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	Notes          string            `json:"notes"`
}

// CreateSaleResponse resultado del checkout.
type CreateSaleResponse struct {
	SaleID      string          `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
}

// RefundRequest cuerpo para POST /api/sales/:id/refund.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// SaleDTO representación de una venta en listados y consultas.
type SaleDTO struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	UserID        string          `json:"user_id"`
	SaleDate      time.Time       `json:"sale_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
}

// SaleListRequest filtros para GET /api/sales.
type SaleListRequest struct {
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`
	Status string `query:"status"`
	PageRequest
}
