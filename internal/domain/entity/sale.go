package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusRefunded  = "REFUNDED"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
	PaymentOther    = "OTHER"
)

// Sale es un evento de ingreso. Los ítems consumidos no tienen tabla de
// detalle propia: son las entradas STOCK_OUT del libro cuya Reference es
// el id de la venta.
type Sale struct {
	ID            string
	SaleNumber    string // SALE-<yyyyMMdd>-<hhmmss>, índice único
	UserID        string
	SaleDate      time.Time
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	FinalAmount   decimal.Decimal // max(0, TotalAmount - Discount)
	PaymentMethod string
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidPaymentMethod informa si s es un método de pago conocido.
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}
