package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "entry"      // entrada
	MovementTypeExit       = "exit"       // salida
	MovementTypeTransfer   = "transfer"   // entre ubicaciones
	MovementTypeAdjustment = "adjustment" // ajuste
)

// StockMovement es un registro histórico (solo anexar) de un cambio de stock.
// No alimenta las StockLocation: ambos se mantienen por separado y pueden divergir.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int
	From      string // nombre de la ubicación origen (si aplica)
	To        string // nombre de la ubicación destino (si aplica)
	Timestamp time.Time
	Actor     string
	Notes     string
}

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}
