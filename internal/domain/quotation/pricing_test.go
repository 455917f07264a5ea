package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(productID, qty, price string) entity.QuotationItem {
	return entity.QuotationItem{ProductID: productID, Quantity: dec(qty), UnitPrice: dec(price)}
}

func percent(v string) entity.Discount {
	return entity.Discount{Kind: entity.DiscountPercentage, Value: dec(v)}
}

func fixed(v string) entity.Discount {
	return entity.Discount{Kind: entity.DiscountFixed, Value: dec(v)}
}

func tax(v string) entity.Tax { return entity.Tax{RatePercent: dec(v)} }

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", field, want, got.String())
}

func assertTotalsEqual(t *testing.T, a, b entity.QuotationTotals) {
	t.Helper()
	assert.True(t, a.Subtotal.Equal(b.Subtotal), "subtotal")
	assert.True(t, a.DiscountAmount.Equal(b.DiscountAmount), "descuento")
	assert.True(t, a.TaxableBase.Equal(b.TaxableBase), "base gravable")
	assert.True(t, a.TaxAmount.Equal(b.TaxAmount), "impuesto")
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal), "total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo de totales
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_DescuentoPorcentualEImpuesto(t *testing.T) {
	items := []entity.QuotationItem{item("p1", "10", "100")}

	totals, err := quotation.ComputeTotals(items, percent("10"), tax("5"))
	require.NoError(t, err)

	assertDec(t, "1000", totals.Subtotal, "subtotal")
	assertDec(t, "100", totals.DiscountAmount, "descuento")
	assertDec(t, "900", totals.TaxableBase, "base gravable")
	assertDec(t, "45", totals.TaxAmount, "impuesto")
	assertDec(t, "945", totals.GrandTotal, "total")
}

func TestComputeTotals_DescuentoFijoNoDependeDelSubtotal(t *testing.T) {
	small, err := quotation.ComputeTotals([]entity.QuotationItem{item("p1", "5", "100")}, fixed("50"), tax("0"))
	require.NoError(t, err)
	assertDec(t, "500", small.Subtotal, "subtotal")
	assertDec(t, "50", small.DiscountAmount, "descuento")
	assertDec(t, "450", small.GrandTotal, "total")

	large, err := quotation.ComputeTotals([]entity.QuotationItem{item("p1", "20", "100")}, fixed("50"), tax("0"))
	require.NoError(t, err)
	assertDec(t, "50", large.DiscountAmount, "descuento")
}

func TestComputeTotals_SinItems(t *testing.T) {
	totals, err := quotation.ComputeTotals(nil, percent("10"), tax("19"))
	require.NoError(t, err)

	assertDec(t, "0", totals.Subtotal, "subtotal")
	assertDec(t, "0", totals.DiscountAmount, "descuento")
	assertDec(t, "0", totals.TaxableBase, "base gravable")
	assertDec(t, "0", totals.TaxAmount, "impuesto")
	assertDec(t, "0", totals.GrandTotal, "total")
}

func TestComputeTotals_SinDescuento(t *testing.T) {
	totals, err := quotation.ComputeTotals([]entity.QuotationItem{item("p1", "2", "50")}, entity.Discount{}, tax("19"))
	require.NoError(t, err)
	assertDec(t, "0", totals.DiscountAmount, "descuento")
	assertDec(t, "119", totals.GrandTotal, "total")
}

func TestComputeTotals_Idempotente(t *testing.T) {
	items := []entity.QuotationItem{
		item("p1", "3", "19.99"),
		item("p2", "1.5", "7.333"),
		item("p3", "12", "0.1"),
	}
	first, err := quotation.ComputeTotals(items, percent("7.5"), tax("19"))
	require.NoError(t, err)
	second, err := quotation.ComputeTotals(items, percent("7.5"), tax("19"))
	require.NoError(t, err)

	assertTotalsEqual(t, first, second)
}

func TestComputeTotals_SubtotalIndependienteDelOrden(t *testing.T) {
	a := item("p1", "3", "19.99")
	b := item("p2", "1.5", "7.333")
	c := item("p3", "12", "0.1")

	orders := [][]entity.QuotationItem{{a, b, c}, {c, b, a}, {b, a, c}, {c, a, b}}
	want := dec("3").Mul(dec("19.99")).Add(dec("1.5").Mul(dec("7.333"))).Add(dec("12").Mul(dec("0.1")))

	for _, items := range orders {
		totals, err := quotation.ComputeTotals(items, entity.Discount{}, tax("0"))
		require.NoError(t, err)
		assert.Truef(t, want.Equal(totals.Subtotal), "subtotal %s != %s", totals.Subtotal, want)
	}
}

func TestComputeTotals_IgnoraLineTotalRecibido(t *testing.T) {
	it := item("p1", "2", "3")
	it.LineTotal = dec("999")

	totals, err := quotation.ComputeTotals([]entity.QuotationItem{it}, entity.Discount{}, tax("0"))
	require.NoError(t, err)
	assertDec(t, "6", totals.Subtotal, "subtotal")
}

func TestComputeTotals_SinDerivaDecimal(t *testing.T) {
	// Con float64, 0.1 * 3 = 0.30000000000000004.
	items := []entity.QuotationItem{item("p1", "3", "0.1")}
	var totals entity.QuotationTotals
	var err error
	for i := 0; i < 100; i++ {
		totals, err = quotation.ComputeTotals(items, entity.Discount{}, tax("0"))
		require.NoError(t, err)
	}
	assert.Equal(t, "0.3", totals.Subtotal.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento mayor al subtotal
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_DescuentoMayorAlSubtotal_PorDefectoNoSeLimita(t *testing.T) {
	totals, err := quotation.ComputeTotals([]entity.QuotationItem{item("p1", "1", "500")}, fixed("600"), tax("10"))
	require.NoError(t, err)

	assertDec(t, "600", totals.DiscountAmount, "descuento")
	assertDec(t, "-100", totals.TaxableBase, "base gravable")
	assertDec(t, "-10", totals.TaxAmount, "impuesto")
	assertDec(t, "-110", totals.GrandTotal, "total")
}

func TestComputeTotals_DescuentoMayorAlSubtotal_ModoEstrictoRechaza(t *testing.T) {
	engine := quotation.Engine{RejectDiscountOverSubtotal: true}

	_, err := engine.ComputeTotals([]entity.QuotationItem{item("p1", "1", "500")}, fixed("600"), tax("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = engine.ComputeTotals([]entity.QuotationItem{item("p1", "1", "500")}, percent("120"), tax("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	totals, err := engine.ComputeTotals([]entity.QuotationItem{item("p1", "1", "500")}, fixed("500"), tax("10"))
	require.NoError(t, err)
	assertDec(t, "0", totals.GrandTotal, "total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y precisión
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_Validaciones(t *testing.T) {
	cases := []struct {
		name     string
		items    []entity.QuotationItem
		discount entity.Discount
		tax      entity.Tax
	}{
		{"cantidad cero", []entity.QuotationItem{item("p1", "0", "10")}, entity.Discount{}, tax("0")},
		{"cantidad negativa", []entity.QuotationItem{item("p1", "-1", "10")}, entity.Discount{}, tax("0")},
		{"precio negativo", []entity.QuotationItem{item("p1", "1", "-10")}, entity.Discount{}, tax("0")},
		{"sin producto", []entity.QuotationItem{item("", "1", "10")}, entity.Discount{}, tax("0")},
		{"descuento negativo", nil, percent("-1"), tax("0")},
		{"tipo de descuento desconocido", nil, entity.Discount{Kind: "bogus", Value: dec("1")}, tax("0")},
		{"descuento sin tipo", nil, entity.Discount{Value: dec("5")}, tax("0")},
		{"impuesto mayor a 100", nil, entity.Discount{}, tax("100.01")},
		{"impuesto negativo", nil, entity.Discount{}, tax("-0.5")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := quotation.ComputeTotals(tc.items, tc.discount, tc.tax)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestComputeTotals_PrecisionExcedida(t *testing.T) {
	_, err := quotation.ComputeTotals([]entity.QuotationItem{item("p1", "0.00001", "0.000001")}, entity.Discount{}, tax("0"))
	assert.ErrorIs(t, err, domain.ErrPrecision)

	_, err = quotation.ComputeTotals([]entity.QuotationItem{item("p1", "1000000000", "1000000000")}, entity.Discount{}, tax("0"))
	assert.ErrorIs(t, err, domain.ErrPrecision)
}

func TestRecomputeLines_AsignaTotalesYPosiciones(t *testing.T) {
	in := []entity.QuotationItem{item("p1", "2", "3.5"), item("p2", "1", "10")}
	in[0].LineTotal = dec("1")

	out, err := quotation.RecomputeLines(in)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assertDec(t, "7", out[0].LineTotal, "línea 1")
	assertDec(t, "10", out[1].LineTotal, "línea 2")
	assert.Equal(t, 1, out[0].Position)
	assert.Equal(t, 2, out[1].Position)
	// la entrada no se modifica
	assertDec(t, "1", in[0].LineTotal, "entrada")
}

func TestRound_MitadHaciaArriba(t *testing.T) {
	assert.Equal(t, "2.35", quotation.Round(dec("2.345")).StringFixed(2))
	assert.Equal(t, "2.34", quotation.Round(dec("2.344")).StringFixed(2))
	assert.Equal(t, "-2.35", quotation.Round(dec("-2.345")).StringFixed(2))

	rounded := quotation.RoundTotals(entity.QuotationTotals{GrandTotal: dec("10.005"), TaxAmount: dec("1.994")})
	assert.Equal(t, "10.01", rounded.GrandTotal.StringFixed(2))
	assert.Equal(t, "1.99", rounded.TaxAmount.StringFixed(2))
}
