// Package quotation contiene el motor de precios, la numeración y las reglas de estado de las
// cotizaciones. No hace I/O: recibe valores y devuelve valores o errores de dominio.
package quotation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// Límites de almacenamiento: NUMERIC(30,10) en PostgreSQL.
const (
	MaxFractionDigits = 10
	MaxIntegerDigits  = 18
	// PresentationPlaces decimales usados al mostrar montos (DTO y PDF).
	PresentationPlaces = 2
)

var (
	hundred      = decimal.NewFromInt(100)
	integerLimit = decimal.New(1, MaxIntegerDigits)
)

// Engine calcula totales de cotización.
// RejectDiscountOverSubtotal convierte un descuento mayor al subtotal en error de validación;
// por defecto se permite y la base gravable queda negativa.
type Engine struct {
	RejectDiscountOverSubtotal bool
}

// ComputeTotals aplica el motor por defecto (sin límite de descuento).
func ComputeTotals(items []entity.QuotationItem, discount entity.Discount, tax entity.Tax) (entity.QuotationTotals, error) {
	return Engine{}.ComputeTotals(items, discount, tax)
}

// ComputeTotals deriva subtotal, descuento, base gravable, impuesto y total.
// El LineTotal de cada ítem se recalcula; el valor recibido se ignora.
// Sin redondeo intermedio: el redondeo a 2 decimales ocurre solo al presentar.
func (e Engine) ComputeTotals(items []entity.QuotationItem, discount entity.Discount, tax entity.Tax) (entity.QuotationTotals, error) {
	if err := ValidateDiscount(discount); err != nil {
		return entity.QuotationTotals{}, err
	}
	if err := ValidateTax(tax); err != nil {
		return entity.QuotationTotals{}, err
	}

	subtotal := decimal.Zero
	for i, item := range items {
		line, err := LineTotal(item)
		if err != nil {
			return entity.QuotationTotals{}, fmt.Errorf("línea %d: %w", i+1, err)
		}
		subtotal = subtotal.Add(line)
	}

	var discountAmount decimal.Decimal
	switch discount.Kind {
	case entity.DiscountFixed:
		discountAmount = discount.Value
	default:
		discountAmount = subtotal.Mul(discount.Value).Div(hundred)
	}
	if e.RejectDiscountOverSubtotal && discountAmount.GreaterThan(subtotal) {
		return entity.QuotationTotals{}, fmt.Errorf("%w: el descuento (%s) supera el subtotal (%s)",
			domain.ErrInvalidInput, discountAmount.String(), subtotal.String())
	}

	taxableBase := subtotal.Sub(discountAmount)
	taxAmount := taxableBase.Mul(tax.RatePercent).Div(hundred)
	grandTotal := taxableBase.Add(taxAmount)

	totals := entity.QuotationTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableBase:    taxableBase,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
	}
	checks := []struct {
		name  string
		value decimal.Decimal
	}{
		{"subtotal", totals.Subtotal},
		{"descuento", totals.DiscountAmount},
		{"base gravable", totals.TaxableBase},
		{"impuesto", totals.TaxAmount},
		{"total", totals.GrandTotal},
	}
	for _, c := range checks {
		if err := CheckPrecision(c.name, c.value); err != nil {
			return entity.QuotationTotals{}, err
		}
	}
	return totals, nil
}

// LineTotal valida la línea y devuelve Quantity * UnitPrice.
func LineTotal(item entity.QuotationItem) (decimal.Decimal, error) {
	if err := ValidateItem(item); err != nil {
		return decimal.Zero, err
	}
	total := item.Quantity.Mul(item.UnitPrice)
	if err := CheckPrecision("total de línea", total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RecomputeLines devuelve una copia de los ítems con LineTotal y Position recalculados.
func RecomputeLines(items []entity.QuotationItem) ([]entity.QuotationItem, error) {
	out := make([]entity.QuotationItem, len(items))
	for i, item := range items {
		total, err := LineTotal(item)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		item.LineTotal = total
		item.Position = i + 1
		out[i] = item
	}
	return out, nil
}

// CheckPrecision falla con ErrPrecision si v no cabe en NUMERIC(30,10) sin truncar.
func CheckPrecision(name string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MaxFractionDigits)) {
		return fmt.Errorf("%w: %s %s tiene más de %d decimales", domain.ErrPrecision, name, v.String(), MaxFractionDigits)
	}
	if v.Abs().GreaterThanOrEqual(integerLimit) {
		return fmt.Errorf("%w: %s %s excede %d dígitos enteros", domain.ErrPrecision, name, v.String(), MaxIntegerDigits)
	}
	return nil
}

// Round redondea un monto para presentación: mitad hacia arriba (alejándose de cero) a 2 decimales.
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(PresentationPlaces)
}

// RoundTotals devuelve los totales redondeados para presentación.
func RoundTotals(t entity.QuotationTotals) entity.QuotationTotals {
	return entity.QuotationTotals{
		Subtotal:       Round(t.Subtotal),
		DiscountAmount: Round(t.DiscountAmount),
		TaxableBase:    Round(t.TaxableBase),
		TaxAmount:      Round(t.TaxAmount),
		GrandTotal:     Round(t.GrandTotal),
	}
}
