package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
)

func snapshot(name, family string, price string, minStock int, qty ...int) stock.Snapshot {
	p := entity.Product{ID: name, Name: name, Reference: "REF-" + name, Family: family, Unit: "un", Price: decimal.RequireFromString(price), MinStock: minStock}
	locs := make([]entity.StockLocation, 0, len(qty))
	for i, q := range qty {
		locs = append(locs, entity.StockLocation{ID: name + string(rune('a'+i)), Name: "Bodega", Quantity: q, IsMain: i == 0})
	}
	return stock.NewSnapshot(p, locs)
}

func TestExcelWriter_WriteStockReport(t *testing.T) {
	snaps := []stock.Snapshot{
		snapshot("Tornillo", "Ferretería", "0.5", 10, 4, 2),
		snapshot("Pintura", "", "12", 0, 3),
	}

	out, err := NewExcelWriter().WriteStockReport(snaps, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetStock, SheetFamilies}, f.GetSheetList())

	rows, err := f.GetRows(SheetStock)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Referencia", rows[0][0])
	assert.Equal(t, []string{"REF-Tornillo", "Tornillo", "Ferretería", "un", "6", "10", "low", "0.5", "3", "Bodega"}, rows[1])
	assert.Equal(t, "in", rows[2][6])

	fam, err := f.GetRows(SheetFamilies)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferretería", "1", "6", "3"}, fam[1])
	assert.Equal(t, stock.UncategorizedFamily, fam[2][0])
	assert.Equal(t, "Total", fam[4][0])
	assert.Equal(t, "39", fam[4][3])
}

func TestExcelWriter_SinProductos(t *testing.T) {
	out, err := NewExcelWriter().WriteStockReport(nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetStock)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
