package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio del catálogo de la empresa.
// Price es el precio de venta configurado; se usa como respaldo cuando una línea no trae precio.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string // unidad de medida libre (und, kg, porción...)
	Sizes       []*Size
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SizeByID devuelve el tamaño del producto con el ID dado o nil.
func (p *Product) SizeByID(id string) *Size {
	for _, s := range p.Sizes {
		if s.ID == id {
			return s
		}
	}
	return nil
}
