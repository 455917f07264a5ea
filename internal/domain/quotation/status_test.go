package quotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
)

var now = time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)

func TestSetStatus_PermisivoPermiteCualquierCambio(t *testing.T) {
	for _, from := range entity.QuotationStatuses {
		for _, to := range entity.QuotationStatuses {
			q := &entity.Quotation{Status: from}
			require.NoError(t, quotation.SetStatus(q, to, quotation.PermissivePolicy{}, now), "%s → %s", from, to)
			assert.Equal(t, to, q.Status)
			assert.Equal(t, now, q.UpdatedAt)
		}
	}
}

func TestSetStatus_PoliticaNilEsPermisiva(t *testing.T) {
	q := &entity.Quotation{Status: entity.QuotationStatusAccepted}
	require.NoError(t, quotation.SetStatus(q, entity.QuotationStatusDraft, nil, now))
	assert.Equal(t, entity.QuotationStatusDraft, q.Status)
}

func TestSetStatus_EstadoDesconocido(t *testing.T) {
	q := &entity.Quotation{Status: entity.QuotationStatusDraft}
	err := quotation.SetStatus(q, "archived", quotation.PermissivePolicy{}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.QuotationStatusDraft, q.Status)
}

func TestSetStatus_PoliticaDeAvance(t *testing.T) {
	policy := quotation.ForwardPolicy{}
	allowed := []struct{ from, to entity.QuotationStatus }{
		{entity.QuotationStatusDraft, entity.QuotationStatusSent},
		{entity.QuotationStatusSent, entity.QuotationStatusViewed},
		{entity.QuotationStatusViewed, entity.QuotationStatusAccepted},
		{entity.QuotationStatusSent, entity.QuotationStatusAccepted},
		{entity.QuotationStatusDraft, entity.QuotationStatusExpired},
		{entity.QuotationStatusViewed, entity.QuotationStatusRejected},
		{entity.QuotationStatusAccepted, entity.QuotationStatusAccepted},
	}
	for _, tc := range allowed {
		q := &entity.Quotation{Status: tc.from}
		assert.NoError(t, quotation.SetStatus(q, tc.to, policy, now), "%s → %s", tc.from, tc.to)
	}

	denied := []struct{ from, to entity.QuotationStatus }{
		{entity.QuotationStatusDraft, entity.QuotationStatusAccepted},
		{entity.QuotationStatusAccepted, entity.QuotationStatusDraft},
		{entity.QuotationStatusExpired, entity.QuotationStatusSent},
		{entity.QuotationStatusRejected, entity.QuotationStatusAccepted},
		{entity.QuotationStatusViewed, entity.QuotationStatusSent},
	}
	for _, tc := range denied {
		q := &entity.Quotation{Status: tc.from}
		err := quotation.SetStatus(q, tc.to, policy, now)
		assert.ErrorIs(t, err, domain.ErrInvalidState, "%s → %s", tc.from, tc.to)
		assert.Equal(t, tc.from, q.Status)
	}
}

func TestCanEditContent(t *testing.T) {
	editable := map[entity.QuotationStatus]bool{
		entity.QuotationStatusDraft:    true,
		entity.QuotationStatusSent:     true,
		entity.QuotationStatusViewed:   true,
		entity.QuotationStatusRejected: true,
		entity.QuotationStatusAccepted: false,
		entity.QuotationStatusExpired:  false,
	}
	for status, want := range editable {
		q := &entity.Quotation{Status: status}
		assert.Equal(t, want, quotation.CanEditContent(q), status)
		if want {
			assert.NoError(t, quotation.EnsureEditable(q))
		} else {
			assert.ErrorIs(t, quotation.EnsureEditable(q), domain.ErrInvalidState)
		}
	}
}

func TestCanDelete(t *testing.T) {
	for _, status := range entity.QuotationStatuses {
		q := &entity.Quotation{Status: status}
		assert.Equal(t, status != entity.QuotationStatusAccepted, quotation.CanDelete(q), status)
	}
}

func TestIsOverdue(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, quotation.IsOverdue(&entity.Quotation{Status: entity.QuotationStatusSent, ExpiresAt: past}, now))
	assert.True(t, quotation.IsOverdue(&entity.Quotation{Status: entity.QuotationStatusDraft, ExpiresAt: past}, now))
	assert.False(t, quotation.IsOverdue(&entity.Quotation{Status: entity.QuotationStatusSent, ExpiresAt: future}, now))
	assert.False(t, quotation.IsOverdue(&entity.Quotation{Status: entity.QuotationStatusAccepted, ExpiresAt: past}, now))
	assert.False(t, quotation.IsOverdue(&entity.Quotation{Status: entity.QuotationStatusRejected, ExpiresAt: past}, now))
	assert.False(t, quotation.IsOverdue(&entity.Quotation{Status: entity.QuotationStatusDraft}, now))
}

func TestExpiryDate(t *testing.T) {
	issue := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC), quotation.ExpiryDate(issue, 10))
	assert.Equal(t, time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC), quotation.ExpiryDate(issue, 0))
}
