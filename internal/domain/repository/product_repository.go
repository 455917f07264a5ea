package repository

import (
	"context"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus tamaños (DIP).
// GetByID carga también Sizes; ListByCompany no.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error

	CreateSize(ctx context.Context, size *entity.Size) error
	DeleteSize(ctx context.Context, productID, sizeID string) error
}
