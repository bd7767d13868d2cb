package entity

import "time"

// Client representa un cliente de la empresa; las cotizaciones lo referencian por ID.
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
