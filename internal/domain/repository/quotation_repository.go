package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// QuotationFilter criterios de listado. Los campos vacíos no filtran.
type QuotationFilter struct {
	CompanyID string
	Status    entity.QuotationStatus
	Kind      entity.QuotationKind
	ClientID  string
	Limit     int
	Offset    int
}

// QuotationRepository define el puerto de persistencia para cotizaciones y sus líneas.
type QuotationRepository interface {
	// Create guarda cabecera y líneas.
	Create(ctx context.Context, q *entity.Quotation) error
	// Update guarda contenido y totales y reemplaza las líneas. Nunca modifica Number.
	Update(ctx context.Context, q *entity.Quotation) error
	UpdateStatus(ctx context.Context, q *entity.Quotation) error
	// GetByID devuelve la cotización con sus líneas o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	// List devuelve cabeceras (sin líneas) y el total de registros que cumplen el filtro.
	List(ctx context.Context, filter QuotationFilter) ([]*entity.Quotation, int, error)
	Delete(ctx context.Context, id string) error
	// CountByScope cuántas cotizaciones existen para el dueño y la variante.
	CountByScope(ctx context.Context, ownerScope string, kind entity.QuotationKind) (int64, error)
	// ListOverdue cotizaciones abiertas (draft, sent, viewed) con expires_at anterior a now.
	ListOverdue(ctx context.Context, companyID string, now time.Time) ([]*entity.Quotation, error)
}
