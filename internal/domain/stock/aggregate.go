// Package stock contiene los cálculos derivados del stock (servicio de dominio puro).
// Nada de lo que se calcula aquí se persiste: se recalcula en cada lectura.
package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// Status estado de stock de un producto.
type Status string

const (
	StatusOut Status = "out"
	StatusLow Status = "low"
	StatusIn  Status = "in"
)

// UncategorizedFamily agrupa en la valorización los productos sin familia.
const UncategorizedFamily = "uncategorized"

// TotalStock suma las cantidades de todas las ubicaciones (0 si no hay ninguna).
func TotalStock(locations []entity.StockLocation) int {
	total := 0
	for _, l := range locations {
		total += l.Quantity
	}
	return total
}

// ComputeStatus clasifica el stock total frente al mínimo.
// total == 0 tiene prioridad; total == minStock cuenta como bajo.
func ComputeStatus(total, minStock int) Status {
	if total == 0 {
		return StatusOut
	}
	if IsLowStock(total, minStock) {
		return StatusLow
	}
	return StatusIn
}

// IsLowStock criterio de notificación: minStock > 0 y stock <= minStock.
func IsLowStock(total, minStock int) bool {
	return minStock > 0 && total <= minStock
}

// Value devuelve total * precio unitario.
func Value(total int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(total)))
}

// Snapshot es la vista calculada de un producto con sus ubicaciones.
type Snapshot struct {
	Product   entity.Product
	Locations []entity.StockLocation
	Total     int
	Status    Status
	Value     decimal.Decimal
}

// NewSnapshot calcula total, estado y valor para un producto.
func NewSnapshot(p entity.Product, locations []entity.StockLocation) Snapshot {
	total := TotalStock(locations)
	return Snapshot{
		Product:   p,
		Locations: locations,
		Total:     total,
		Status:    ComputeStatus(total, p.MinStock),
		Value:     Value(total, p.Price),
	}
}

// PortfolioValue suma el valor de un conjunto de productos.
func PortfolioValue(snaps []Snapshot) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range snaps {
		sum = sum.Add(s.Value)
	}
	return sum
}

// FamilyValuation valorización agregada de una familia.
type FamilyValuation struct {
	Family   string
	Products int
	Units    int
	Value    decimal.Decimal
}

// ValuationByFamily agrupa por el texto de Family; vacío cae en UncategorizedFamily.
// El resultado se ordena por nombre de familia.
func ValuationByFamily(snaps []Snapshot) []FamilyValuation {
	byFamily := make(map[string]*FamilyValuation)
	for _, s := range snaps {
		family := s.Product.Family
		if family == "" {
			family = UncategorizedFamily
		}
		fv, ok := byFamily[family]
		if !ok {
			fv = &FamilyValuation{Family: family, Value: decimal.Zero}
			byFamily[family] = fv
		}
		fv.Products++
		fv.Units += s.Total
		fv.Value = fv.Value.Add(s.Value)
	}
	out := make([]FamilyValuation, 0, len(byFamily))
	for _, fv := range byFamily {
		out = append(out, *fv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Family < out[j].Family })
	return out
}

// LowStock filtra los productos que disparan la alerta de stock bajo.
func LowStock(snaps []Snapshot) []Snapshot {
	out := make([]Snapshot, 0)
	for _, s := range snaps {
		if IsLowStock(s.Total, s.Product.MinStock) {
			out = append(out, s)
		}
	}
	return out
}

// ExpiringWithin filtra los productos con caducidad en [.., now+window] (incluye ya caducados).
func ExpiringWithin(snaps []Snapshot, now time.Time, window time.Duration) []Snapshot {
	limit := now.Add(window)
	out := make([]Snapshot, 0)
	for _, s := range snaps {
		if s.Product.ExpiresAt != nil && !s.Product.ExpiresAt.After(limit) {
			out = append(out, s)
		}
	}
	return out
}

// MainLocation devuelve la primera ubicación marcada como principal (orden por nombre, luego ID).
// Varias pueden estar marcadas; no se resuelve el conflicto, solo se elige una para mostrar.
func MainLocation(locations []entity.StockLocation) (entity.StockLocation, bool) {
	var found *entity.StockLocation
	for i := range locations {
		l := &locations[i]
		if !l.IsMain {
			continue
		}
		if found == nil || l.Name < found.Name || (l.Name == found.Name && l.ID < found.ID) {
			found = l
		}
	}
	if found == nil {
		return entity.StockLocation{}, false
	}
	return *found, true
}
