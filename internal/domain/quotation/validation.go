package quotation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// ValidateItem: producto presente, cantidad > 0 y precio >= 0.
func ValidateItem(item entity.QuotationItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if !item.Quantity.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateDiscount: tipo conocido y valor >= 0. Un tipo vacío solo se acepta con valor 0 (sin descuento).
func ValidateDiscount(d entity.Discount) error {
	switch d.Kind {
	case entity.DiscountPercentage, entity.DiscountFixed:
	case "":
		if !d.Value.IsZero() {
			return fmt.Errorf("%w: tipo de descuento requerido", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: tipo de descuento desconocido %q", domain.ErrInvalidInput, d.Kind)
	}
	if d.Value.IsNegative() {
		return fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateTax: tasa en [0, 100].
func ValidateTax(t entity.Tax) error {
	if t.RatePercent.IsNegative() || t.RatePercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: la tasa de impuesto debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateEvent exige fecha y número de invitados para cotizaciones de catering.
func ValidateEvent(kind entity.QuotationKind, ev *entity.CateringEvent) error {
	if kind != entity.QuotationKindCatering {
		return nil
	}
	if ev == nil || ev.EventDate.IsZero() {
		return fmt.Errorf("%w: la fecha del evento es requerida", domain.ErrInvalidInput)
	}
	if ev.GuestCount <= 0 {
		return fmt.Errorf("%w: el número de invitados debe ser mayor que 0", domain.ErrInvalidInput)
	}
	return nil
}

// ItemInput línea tal como llega del llamador; Quantity y UnitPrice nil significan "no enviado".
type ItemInput struct {
	ProductID   string
	SizeID      string
	Description string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// ResolveItem completa la línea con los valores del catálogo:
// cantidad ausente = 1, precio ausente = precio del tamaño o del producto, descripción ausente = nombre.
// product debe ser el producto referenciado (nil = no existe).
func ResolveItem(in ItemInput, product *entity.Product) (entity.QuotationItem, error) {
	if product == nil {
		return entity.QuotationItem{}, fmt.Errorf("%w: producto %s no existe", domain.ErrInvalidInput, in.ProductID)
	}
	var size *entity.Size
	if in.SizeID != "" {
		size = product.SizeByID(in.SizeID)
		if size == nil {
			return entity.QuotationItem{}, fmt.Errorf("%w: tamaño %s no pertenece al producto %s",
				domain.ErrInvalidInput, in.SizeID, product.ID)
		}
	}

	item := entity.QuotationItem{
		ProductID:   product.ID,
		SizeID:      in.SizeID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.Zero,
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	switch {
	case in.UnitPrice != nil:
		item.UnitPrice = *in.UnitPrice
	case size != nil:
		item.UnitPrice = size.Price
	default:
		item.UnitPrice = product.Price
	}
	if item.Description == "" {
		item.Description = product.Name
		if size != nil {
			item.Description += " (" + size.Label + ")"
		}
	}
	if err := ValidateItem(item); err != nil {
		return entity.QuotationItem{}, err
	}
	return item, nil
}
