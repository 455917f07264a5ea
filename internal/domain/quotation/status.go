package quotation

import (
	"fmt"
	"time"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// TransitionPolicy decide si un cambio de estado está permitido.
type TransitionPolicy interface {
	Allows(from, to entity.QuotationStatus) bool
}

// PermissivePolicy permite cualquier cambio entre los seis estados.
type PermissivePolicy struct{}

func (PermissivePolicy) Allows(_, _ entity.QuotationStatus) bool { return true }

// ForwardPolicy: draft → sent → viewed → accepted; rejected y expired desde cualquier estado previo a accepted.
// Mantener el mismo estado siempre se permite.
type ForwardPolicy struct{}

var forwardTransitions = map[entity.QuotationStatus][]entity.QuotationStatus{
	entity.QuotationStatusDraft:  {entity.QuotationStatusSent, entity.QuotationStatusRejected, entity.QuotationStatusExpired},
	entity.QuotationStatusSent:   {entity.QuotationStatusViewed, entity.QuotationStatusAccepted, entity.QuotationStatusRejected, entity.QuotationStatusExpired},
	entity.QuotationStatusViewed: {entity.QuotationStatusAccepted, entity.QuotationStatusRejected, entity.QuotationStatusExpired},
}

func (ForwardPolicy) Allows(from, to entity.QuotationStatus) bool {
	if from == to {
		return true
	}
	for _, s := range forwardTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SetStatus es el único punto que cambia el estado de una cotización.
func SetStatus(q *entity.Quotation, to entity.QuotationStatus, policy TransitionPolicy, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, to)
	}
	if policy == nil {
		policy = PermissivePolicy{}
	}
	if !policy.Allows(q.Status, to) {
		return fmt.Errorf("%w: transición %s → %s no permitida", domain.ErrInvalidState, q.Status, to)
	}
	q.Status = to
	q.UpdatedAt = now
	return nil
}

// CanEditContent es falso para cotizaciones aceptadas o vencidas.
func CanEditContent(q *entity.Quotation) bool {
	return q.Status != entity.QuotationStatusAccepted && q.Status != entity.QuotationStatusExpired
}

// CanDelete es falso solo para cotizaciones aceptadas.
func CanDelete(q *entity.Quotation) bool {
	return q.Status != entity.QuotationStatusAccepted
}

// EnsureEditable devuelve ErrInvalidState si el contenido no se puede modificar.
func EnsureEditable(q *entity.Quotation) error {
	if !CanEditContent(q) {
		return fmt.Errorf("%w: la cotización %s está en estado %s", domain.ErrInvalidState, q.Number, q.Status)
	}
	return nil
}

// IsOverdue informa si la cotización superó su vigencia sin haber sido cerrada.
func IsOverdue(q *entity.Quotation, now time.Time) bool {
	if q.ExpiresAt.IsZero() || !now.After(q.ExpiresAt) {
		return false
	}
	switch q.Status {
	case entity.QuotationStatusDraft, entity.QuotationStatusSent, entity.QuotationStatusViewed:
		return true
	}
	return false
}

// ExpiryDate fecha de vencimiento a partir de la emisión y los días de vigencia.
func ExpiryDate(issue time.Time, validityDays int) time.Time {
	if validityDays <= 0 {
		validityDays = entity.DefaultValidityDays
	}
	return issue.AddDate(0, 0, validityDays)
}
