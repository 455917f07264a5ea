package dto

import "time"

// UpdateSettingsRequest body para PUT /api/settings. Los campos ausentes conservan su valor.
type UpdateSettingsRequest struct {
	Prefix         *string `json:"prefix" validate:"omitempty,min=1,max=10,alphanum"`
	CateringPrefix *string `json:"catering_prefix" validate:"omitempty,min=1,max=10,alphanum"`
	ValidityDays   *int    `json:"validity_days" validate:"omitempty,min=1,max=365"`
}

// SettingsResponse configuración de cotizaciones de la empresa.
type SettingsResponse struct {
	CompanyID      string     `json:"company_id"`
	Prefix         string     `json:"prefix"`
	CateringPrefix string     `json:"catering_prefix"`
	ValidityDays   int        `json:"validity_days"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
