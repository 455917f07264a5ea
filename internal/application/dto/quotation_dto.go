package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest línea enviada por el cliente. Quantity, UnitPrice y Description son opcionales:
// si faltan se completan con el catálogo. No existe campo para el total de línea.
type QuotationItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	SizeID      string           `json:"size_id,omitempty"`
	Description string           `json:"description,omitempty" validate:"omitempty,max=500"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// DiscountRequest descuento global. Kind vacío con value 0 = sin descuento.
type DiscountRequest struct {
	Kind  string          `json:"kind" validate:"omitempty,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value"`
}

// CateringEventRequest datos del evento (solo kind=catering).
type CateringEventRequest struct {
	EventDate  string `json:"event_date" validate:"required,datetime=2006-01-02"`
	GuestCount int    `json:"guest_count" validate:"required,gt=0"`
	Venue      string `json:"venue,omitempty" validate:"omitempty,max=300"`
	MenuNotes  string `json:"menu_notes,omitempty"`
}

// CreateQuotationRequest body para POST /api/quotations.
// No incluye número ni totales: ambos los calcula el servidor.
type CreateQuotationRequest struct {
	Kind      string                 `json:"kind" validate:"omitempty,oneof=standard catering"`
	ClientID  string                 `json:"client_id" validate:"required"`
	Title     string                 `json:"title" validate:"omitempty,max=200"`
	Items     []QuotationItemRequest `json:"items" validate:"dive"`
	Discount  DiscountRequest        `json:"discount"`
	TaxRate   decimal.Decimal        `json:"tax_rate"`
	Notes     string                 `json:"notes,omitempty"`
	IssueDate string                 `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Event     *CateringEventRequest  `json:"event,omitempty"`
}

// UpdateQuotationRequest body para PUT /api/quotations/:id. Los campos ausentes no cambian;
// items presente reemplaza todas las líneas.
type UpdateQuotationRequest struct {
	ClientID *string                `json:"client_id" validate:"omitempty,min=1"`
	Title    *string                `json:"title" validate:"omitempty,max=200"`
	Items    []QuotationItemRequest `json:"items" validate:"omitempty,dive"`
	Discount *DiscountRequest       `json:"discount"`
	TaxRate  *decimal.Decimal       `json:"tax_rate"`
	Notes    *string                `json:"notes"`
	Event    *CateringEventRequest  `json:"event"`
}

// UpdateQuotationStatusRequest body para PATCH /api/quotations/:id/status.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// QuotationListRequest filtros de GET /api/quotations.
type QuotationListRequest struct {
	Status   string `query:"status"`
	Kind     string `query:"kind"`
	ClientID string `query:"client_id"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// Page paginación pedida en el listado.
func (r QuotationListRequest) Page() PageRequest {
	return PageRequest{Limit: r.Limit, Offset: r.Offset}
}

// QuotationTotalsResponse totales redondeados a 2 decimales para presentación.
type QuotationTotalsResponse struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	TaxableBase    string `json:"taxable_base"`
	TaxAmount      string `json:"tax_amount"`
	GrandTotal     string `json:"grand_total"`
}

// QuotationItemResponse línea en respuestas.
type QuotationItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	ProductID   string          `json:"product_id"`
	SizeID      string          `json:"size_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   string          `json:"line_total"`
}

// DiscountResponse descuento aplicado.
type DiscountResponse struct {
	Kind  string          `json:"kind,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// CateringEventResponse datos del evento.
type CateringEventResponse struct {
	EventDate     string `json:"event_date"`
	GuestCount    int    `json:"guest_count"`
	Venue         string `json:"venue,omitempty"`
	MenuNotes     string `json:"menu_notes,omitempty"`
	PricePerGuest string `json:"price_per_guest"`
}

// QuotationResponse cotización completa.
type QuotationResponse struct {
	ID        string                  `json:"id"`
	CompanyID string                  `json:"company_id"`
	ClientID  string                  `json:"client_id"`
	CreatedBy string                  `json:"created_by,omitempty"`
	Kind      string                  `json:"kind"`
	Number    string                  `json:"number"`
	Title     string                  `json:"title,omitempty"`
	Status    string                  `json:"status"`
	Items     []QuotationItemResponse `json:"items"`
	Discount  DiscountResponse        `json:"discount"`
	TaxRate   decimal.Decimal         `json:"tax_rate"`
	Totals    QuotationTotalsResponse `json:"totals"`
	Notes     string                  `json:"notes,omitempty"`
	Event     *CateringEventResponse  `json:"event,omitempty"`
	IssueDate string                  `json:"issue_date"`
	ExpiresAt string                  `json:"expires_at"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// QuotationListResponse lista paginada de cotizaciones (sin líneas).
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ExpireQuotationsResponse resultado del barrido de vencimiento.
type ExpireQuotationsResponse struct {
	Expired int      `json:"expired"`
	IDs     []string `json:"ids"`
}
