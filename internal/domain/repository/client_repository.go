package repository

import (
	"context"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para los clientes de cada empresa.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Client, error)
	// ListByCompany filtra por nombre (ILIKE) cuando search no está vacío.
	ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
