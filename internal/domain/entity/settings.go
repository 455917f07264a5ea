package entity

import "time"

// Valores por defecto de la configuración de cotizaciones.
const (
	DefaultQuotationPrefix = "QUO"
	DefaultCateringPrefix  = "CAT"
	DefaultValidityDays    = 30
)

// Settings configuración de cotizaciones por empresa: prefijos de numeración y vigencia.
// No define descuentos ni impuestos por defecto; esos vienen en cada cotización.
type Settings struct {
	CompanyID      string
	Prefix         string
	CateringPrefix string
	ValidityDays   int
	UpdatedAt      time.Time
}

// DefaultSettings devuelve la configuración que aplica cuando la empresa no ha guardado ninguna.
func DefaultSettings(companyID string) *Settings {
	return &Settings{
		CompanyID:      companyID,
		Prefix:         DefaultQuotationPrefix,
		CateringPrefix: DefaultCateringPrefix,
		ValidityDays:   DefaultValidityDays,
	}
}

// PrefixFor devuelve el prefijo de numeración según el tipo de cotización.
func (s *Settings) PrefixFor(kind QuotationKind) string {
	if kind == QuotationKindCatering {
		if s.CateringPrefix != "" {
			return s.CateringPrefix
		}
		return DefaultCateringPrefix
	}
	if s.Prefix != "" {
		return s.Prefix
	}
	return DefaultQuotationPrefix
}
