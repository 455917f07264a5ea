package quotation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizaciones-api/internal/application/dto"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	domquotation "github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
)

// ToResponse convierte la entidad a DTO. Los montos derivados se redondean a 2 decimales aquí y solo aquí.
func ToResponse(q *entity.Quotation) *dto.QuotationResponse {
	if q == nil {
		return nil
	}
	totals := domquotation.RoundTotals(q.Totals)
	resp := &dto.QuotationResponse{
		ID:        q.ID,
		CompanyID: q.CompanyID,
		ClientID:  q.ClientID,
		CreatedBy: q.CreatedBy,
		Kind:      string(q.Kind),
		Number:    q.Number,
		Title:     q.Title,
		Status:    string(q.Status),
		Items:     make([]dto.QuotationItemResponse, 0, len(q.Items)),
		Discount:  dto.DiscountResponse{Kind: string(q.Discount.Kind), Value: q.Discount.Value},
		TaxRate:   q.Tax.RatePercent,
		Totals: dto.QuotationTotalsResponse{
			Subtotal:       money(totals.Subtotal),
			DiscountAmount: money(totals.DiscountAmount),
			TaxableBase:    money(totals.TaxableBase),
			TaxAmount:      money(totals.TaxAmount),
			GrandTotal:     money(totals.GrandTotal),
		},
		Notes:     q.Notes,
		IssueDate: q.IssueDate.Format(dateLayout),
		ExpiresAt: q.ExpiresAt.Format(dateLayout),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	for _, item := range q.Items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			ProductID:   item.ProductID,
			SizeID:      item.SizeID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   money(domquotation.Round(item.LineTotal)),
		})
	}
	if q.Event != nil {
		resp.Event = &dto.CateringEventResponse{
			EventDate:     q.Event.EventDate.Format(dateLayout),
			GuestCount:    q.Event.GuestCount,
			Venue:         q.Event.Venue,
			MenuNotes:     q.Event.MenuNotes,
			PricePerGuest: money(domquotation.Round(PricePerGuest(q))),
		}
	}
	return resp
}

func money(v decimal.Decimal) string {
	return v.StringFixed(domquotation.PresentationPlaces)
}
