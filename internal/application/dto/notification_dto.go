package dto

import "time"

// LowStockNotification producto en o por debajo de su mínimo.
type LowStockNotification struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	TotalStock int    `json:"total_stock"`
	MinStock   int    `json:"min_stock"`
	Status     string `json:"status"`
}

// ExpiryNotification producto caducado o que caduca dentro de la ventana.
type ExpiryNotification struct {
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	ExpiresAt  time.Time `json:"expires_at"`
	Expired    bool      `json:"expired"`
	TotalStock int       `json:"total_stock"`
}

// NotificationsResponse conjunto calculado en el momento (sin estado de leído).
type NotificationsResponse struct {
	LowStock    []LowStockNotification `json:"low_stock"`
	Expiring    []ExpiryNotification   `json:"expiring"`
	GeneratedAt time.Time              `json:"generated_at"`
}
