package dto

import "github.com/shopspring/decimal"

// CreateItemRequest cuerpo para POST /api/items.
type CreateItemRequest struct {
	Name         string           `json:"name"`
	SKU          string           `json:"sku"`
	CategoryID   string           `json:"category_id"`
	SupplierID   string           `json:"supplier_id"`
	Unit         string           `json:"unit"`
	CostPrice    decimal.Decimal  `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"` // null = fallback costo × 1.3
	InitialStock decimal.Decimal  `json:"initial_stock"`
	ReorderLevel decimal.Decimal  `json:"reorder_level"`
}

// UpdateItemRequest cuerpo para PUT /api/items/:id. Solo campos descriptivos;
// el stock únicamente cambia por el libro de movimientos.
type UpdateItemRequest struct {
	Name         *string          `json:"name"`
	CategoryID   *string          `json:"category_id"`
	SupplierID   *string          `json:"supplier_id"`
	Unit         *string          `json:"unit"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// ItemResponse representación de un ítem en respuestas.
type ItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	CategoryID    string           `json:"category_id"`
	SupplierID    string           `json:"supplier_id,omitempty"`
	Unit          string           `json:"unit"`
	CostPrice     decimal.Decimal  `json:"cost_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
	EffectivePrice decimal.Decimal `json:"effective_price"` // precio que usaría una venta hoy
	CurrentStock  decimal.Decimal  `json:"current_stock"`
	ReorderLevel  decimal.Decimal  `json:"reorder_level"`
	Active        bool             `json:"active"`
}

// LowStockItemDTO fila de la lista de reposición.
type LowStockItemDTO struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Deficit      decimal.Decimal `json:"deficit"`        // reorden - stock actual
	EstimatedCost decimal.Decimal `json:"estimated_cost"` // déficit × costo
}

// CategoryRequest cuerpo para crear/editar categorías.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
