package quotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
)

func TestAssignDocumentNumber_FormatoYSecuencia(t *testing.T) {
	createdAt := time.Date(2025, time.April, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "QUO-202504-0001", quotation.AssignDocumentNumber("company-1", createdAt, 0, "QUO"))
	assert.Equal(t, "QUO-202504-0002", quotation.AssignDocumentNumber("company-1", createdAt, 1, "QUO"))
}

func TestAssignDocumentNumber_PrefijoPorDefecto(t *testing.T) {
	createdAt := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "QUO-202512-0008", quotation.AssignDocumentNumber("company-1", createdAt, 7, ""))
	assert.Equal(t, "QUO-202512-0008", quotation.AssignDocumentNumber("company-1", createdAt, 7, "   "))
}

func TestFormatNumber_MasDeCuatroDigitos(t *testing.T) {
	createdAt := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "CAT-202601-12345", quotation.FormatNumber("CAT", createdAt, 12345))
}

func TestSequenceScope_SeriePorVariante(t *testing.T) {
	assert.Equal(t, "c1:standard", quotation.SequenceScope("c1", entity.QuotationKindStandard))
	assert.Equal(t, "c1:catering", quotation.SequenceScope("c1", entity.QuotationKindCatering))
	assert.Equal(t, "c1:standard", quotation.SequenceScope("c1", ""))
}
