// Package pricing centraliza la política de precio de venta (servicio de dominio).
// La venta y los reportes deben usar exactamente la misma función para que el
// margen calculado en caja y el margen reportado coincidan.
package pricing

import "github.com/shopspring/decimal"

// DefaultMarkup es el recargo aplicado cuando el ítem no tiene precio de
// venta explícito: precio = costo × 1.3.
var DefaultMarkup = decimal.NewFromFloat(1.3)

// EffectiveSellingPrice devuelve el precio de venta efectivo: el precio
// almacenado si existe, o el fallback costo × 1.3.
func EffectiveSellingPrice(costPrice decimal.Decimal, sellingPrice *decimal.Decimal) decimal.Decimal {
	if sellingPrice != nil && sellingPrice.GreaterThan(decimal.Zero) {
		return *sellingPrice
	}
	return costPrice.Mul(DefaultMarkup)
}

// LineRevenue calcula el ingreso de una línea: precio × cantidad.
func LineRevenue(price, qty decimal.Decimal) decimal.Decimal {
	return price.Mul(qty)
}

// LineCost calcula el costo de una línea: costo × cantidad.
func LineCost(costPrice, qty decimal.Decimal) decimal.Decimal {
	return costPrice.Mul(qty)
}

// ProfitMarginPct devuelve profit/revenue × 100 redondeado a 2 decimales;
// cero cuando no hay ingreso (protege la división por cero).
func ProfitMarginPct(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
