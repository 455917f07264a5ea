package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

func sampleDocument(kind entity.QuotationKind) *appquotation.Document {
	issue := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	q := &entity.Quotation{
		ID:     "q-1",
		Kind:   kind,
		Number: "QUO-202504-0001",
		Items: []entity.QuotationItem{{
			Description: "Torta de chocolate",
			Quantity:    decimal.NewFromInt(3),
			UnitPrice:   decimal.RequireFromString("10.005"),
			LineTotal:   decimal.RequireFromString("30.015"),
		}},
		Discount:  entity.Discount{Kind: entity.DiscountPercentage, Value: decimal.NewFromInt(10)},
		Tax:       entity.Tax{RatePercent: decimal.NewFromInt(19)},
		IssueDate: issue,
		ExpiresAt: issue.AddDate(0, 0, 30),
		Notes:     "Entrega incluida",
	}
	if kind == entity.QuotationKindCatering {
		q.Number = "CAT-202504-0001"
		q.Event = &entity.CateringEvent{EventDate: issue.AddDate(0, 1, 0), GuestCount: 40, Venue: "Salón Real", MenuNotes: "Sin gluten"}
	}
	return &appquotation.Document{
		Quotation: q,
		Company:   &entity.Company{Name: "Dulce Hogar SAS", TaxID: "900123456"},
		Client:    &entity.Client{Name: "ACME", TaxID: "800111222"},
	}
}

func TestGenerateQuotationPDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	for _, kind := range []entity.QuotationKind{entity.QuotationKindStandard, entity.QuotationKindCatering} {
		out, err := g.GenerateQuotationPDF(context.Background(), sampleDocument(kind))
		require.NoError(t, err, kind)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), kind)
	}
}

func TestGenerateQuotationPDFWithoutClient(t *testing.T) {
	doc := sampleDocument(entity.QuotationKindStandard)
	doc.Client = nil
	doc.Quotation.Items = nil
	_, err := NewMarotoPDFGenerator().GenerateQuotationPDF(context.Background(), doc)
	require.NoError(t, err)
}

func TestGenerateQuotationPDFIncomplete(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateQuotationPDF(context.Background(), &appquotation.Document{})
	require.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "$0,00",
		"945":         "$945,00",
		"1234567.891": "$1.234.567,89",
		"10.005":      "$10,01",
		"-2.5":        "-$2,50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}
