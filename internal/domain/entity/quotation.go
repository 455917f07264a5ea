package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus estado del ciclo de vida de una cotización.
type QuotationStatus string

// Estados válidos. accepted y expired bloquean la edición de contenido.
const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusViewed   QuotationStatus = "viewed"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusExpired  QuotationStatus = "expired"
)

// QuotationStatuses lista los seis estados en orden de progresión.
var QuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusViewed,
	QuotationStatusAccepted,
	QuotationStatusRejected,
	QuotationStatusExpired,
}

// Valid informa si el estado es uno de los seis enumerados.
func (s QuotationStatus) Valid() bool {
	for _, v := range QuotationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// QuotationKind variante de cotización.
type QuotationKind string

const (
	QuotationKindStandard QuotationKind = "standard"
	QuotationKindCatering QuotationKind = "catering"
)

// Valid informa si la variante es conocida.
func (k QuotationKind) Valid() bool {
	return k == QuotationKindStandard || k == QuotationKindCatering
}

// DiscountKind tipo de descuento global.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Discount descuento global aplicado sobre el subtotal.
// Con Kind percentage, Value se interpreta como porcentaje (no se limita a 100).
type Discount struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// Tax impuesto global aplicado sobre la base gravable.
type Tax struct {
	RatePercent decimal.Decimal
}

// QuotationItem línea de una cotización. LineTotal siempre se recalcula como Quantity * UnitPrice.
type QuotationItem struct {
	ID          string
	QuotationID string
	Position    int
	ProductID   string
	SizeID      string // vacío si la línea no usa tamaño
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// QuotationTotals totales derivados; nunca se aceptan desde el cliente.
type QuotationTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// CateringEvent datos del evento para cotizaciones de catering.
type CateringEvent struct {
	EventDate  time.Time
	GuestCount int
	Venue      string
	MenuNotes  string
}

// Quotation agregado raíz de una cotización.
type Quotation struct {
	ID         string
	CompanyID  string
	OwnerScope string // clave del consecutivo (empresa o usuario)
	CreatedBy  string
	ClientID   string
	Kind       QuotationKind
	Number     string // asignado una sola vez al crear
	Title      string
	Status     QuotationStatus
	Items      []QuotationItem
	Discount   Discount
	Tax        Tax
	Totals     QuotationTotals
	Notes      string
	Event      *CateringEvent // solo para Kind catering
	IssueDate  time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
