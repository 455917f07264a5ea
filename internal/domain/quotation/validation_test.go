package quotation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
)

func cake() *entity.Product {
	return &entity.Product{
		ID:    "prod-1",
		Name:  "Torta de chocolate",
		Price: dec("80000"),
		Sizes: []*entity.Size{
			{ID: "size-s", ProductID: "prod-1", Label: "Pequeña", Price: dec("45000")},
			{ID: "size-l", ProductID: "prod-1", Label: "Grande", Price: dec("120000")},
		},
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestResolveItem_ValoresDelCatalogo(t *testing.T) {
	item, err := quotation.ResolveItem(quotation.ItemInput{ProductID: "prod-1"}, cake())
	require.NoError(t, err)
	assertDec(t, "1", item.Quantity, "cantidad")
	assertDec(t, "80000", item.UnitPrice, "precio")
	assert.Equal(t, "Torta de chocolate", item.Description)
}

func TestResolveItem_PrecioDelTamano(t *testing.T) {
	item, err := quotation.ResolveItem(quotation.ItemInput{ProductID: "prod-1", SizeID: "size-l", Quantity: ptr(dec("3"))}, cake())
	require.NoError(t, err)
	assertDec(t, "3", item.Quantity, "cantidad")
	assertDec(t, "120000", item.UnitPrice, "precio")
	assert.Equal(t, "Torta de chocolate (Grande)", item.Description)
	assert.Equal(t, "size-l", item.SizeID)
}

func TestResolveItem_ValoresExplicitosTienenPrioridad(t *testing.T) {
	in := quotation.ItemInput{
		ProductID:   "prod-1",
		SizeID:      "size-s",
		Description: "Torta especial",
		UnitPrice:   ptr(dec("0")),
	}
	item, err := quotation.ResolveItem(in, cake())
	require.NoError(t, err)
	assertDec(t, "0", item.UnitPrice, "precio")
	assert.Equal(t, "Torta especial", item.Description)
}

func TestResolveItem_Errores(t *testing.T) {
	_, err := quotation.ResolveItem(quotation.ItemInput{ProductID: "nope"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = quotation.ResolveItem(quotation.ItemInput{ProductID: "prod-1", SizeID: "size-x"}, cake())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = quotation.ResolveItem(quotation.ItemInput{ProductID: "prod-1", Quantity: ptr(dec("0"))}, cake())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = quotation.ResolveItem(quotation.ItemInput{ProductID: "prod-1", UnitPrice: ptr(dec("-1"))}, cake())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateEvent(t *testing.T) {
	assert.NoError(t, quotation.ValidateEvent(entity.QuotationKindStandard, nil))

	assert.ErrorIs(t, quotation.ValidateEvent(entity.QuotationKindCatering, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, quotation.ValidateEvent(entity.QuotationKindCatering, &entity.CateringEvent{GuestCount: 10}), domain.ErrInvalidInput)

	ev := &entity.CateringEvent{EventDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)}
	assert.ErrorIs(t, quotation.ValidateEvent(entity.QuotationKindCatering, ev), domain.ErrInvalidInput)

	ev.GuestCount = 50
	assert.NoError(t, quotation.ValidateEvent(entity.QuotationKindCatering, ev))
}
