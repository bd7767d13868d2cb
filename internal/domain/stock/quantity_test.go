package stock_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
)

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{"abc", 0},
		{"", 0},
		{"  12 ", 12},
		{"12abc", 12},
		{"3.9", 3},
		{"-4", 0},
		{"+7", 7},
		{float64(10), 10},
		{float64(3.7), 3},
		{float64(-2), 0},
		{math.NaN(), 0},
		{int(5), 5},
		{int64(9), 9},
		{json.Number("15"), 15},
		{nil, 0},
		{true, 0},
		{[]int{1}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stock.CoerceQuantity(tc.in), "entrada %#v", tc.in)
	}
}
