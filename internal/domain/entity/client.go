package entity

import "time"

// Client representa un cliente de la empresa al que se le emiten cotizaciones.
type Client struct {
	ID          string
	CompanyID   string
	Name        string
	TaxID       string
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
