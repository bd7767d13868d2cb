package entity

// Tipos de ubicación de stock.
const (
	LocationTypeWarehouse = "warehouse" // bodega propia
	LocationTypeCustomer  = "customer"  // en consignación en el cliente
	LocationTypeTransit   = "transit"   // en tránsito
)

// StockLocation representa dónde está físicamente parte del stock de un producto.
// IsMain no es único: varias ubicaciones pueden estar marcadas como principales.
type StockLocation struct {
	ID        string
	ProductID string
	Name      string
	Type      string
	Quantity  int // siempre >= 0
	IsMain    bool
}

// IsValidLocationType indica si t es un tipo de ubicación conocido.
func IsValidLocationType(t string) bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeCustomer, LocationTypeTransit:
		return true
	}
	return false
}
