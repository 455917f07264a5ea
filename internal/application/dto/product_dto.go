package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string              `json:"sku" validate:"required,min=1,max=100"`
	Name        string              `json:"name" validate:"required,min=1,max=200"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Unit        string              `json:"unit" validate:"omitempty,max=30"`
	Sizes       []CreateSizeRequest `json:"sizes,omitempty" validate:"dive"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit" validate:"omitempty,max=30"`
}

// CreateSizeRequest tamaño o presentación de un producto con precio propio.
type CreateSizeRequest struct {
	Label string          `json:"label" validate:"required,min=1,max=100"`
	Price decimal.Decimal `json:"price"`
}

// SizeResponse salida de un tamaño.
type SizeResponse struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Sizes       []SizeResponse  `json:"sizes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
