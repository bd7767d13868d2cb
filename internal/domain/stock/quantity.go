package stock

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// CoerceQuantity convierte la cantidad que llega de un formulario a un entero >= 0.
// Nunca falla: cualquier valor no interpretable se convierte en 0.
//
// Cadenas: se toma el prefijo numérico ("12abc" -> 12, "3.9" -> 3, "abc" -> 0).
// Números: se truncan. Negativos se fijan en 0.
func CoerceQuantity(v any) int {
	var n int
	switch x := v.(type) {
	case nil, bool:
		return 0
	case string:
		n = parseIntPrefix(x)
	case float64:
		n = truncFloat(x)
	case float32:
		n = truncFloat(float64(x))
	default:
		i, err := cast.ToIntE(x)
		if err != nil {
			return 0
		}
		n = i
	}
	if n < 0 {
		return 0
	}
	return n
}

func truncFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// parseIntPrefix interpreta el prefijo decimal de s (con signo opcional).
func parseIntPrefix(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n >= math.MaxInt32 {
			n = math.MaxInt32
			break
		}
	}
	if neg {
		return -n
	}
	return n
}
