package entity

import "time"

// Category agrupa ítems del inventario (bebidas, carnes, abarrotes...).
type Category struct {
	ID          string
	Name        string // único (case-insensitive)
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
