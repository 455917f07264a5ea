package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size es una presentación de un producto (ej: "Pequeño", "24 porciones") con precio propio.
type Size struct {
	ID        string
	ProductID string
	Label     string
	Price     decimal.Decimal
	CreatedAt time.Time
}
