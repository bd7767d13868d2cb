// Package report genera el informe de stock en XLSX.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
)

// Nombres de hoja del informe.
const (
	SheetStock    = "Stock"
	SheetFamilies = "Families"
)

var (
	stockHeader    = []any{"Referencia", "Producto", "Familia", "Unidad", "Stock", "Mínimo", "Estado", "Precio", "Valor", "Ubicación principal"}
	stockWidths    = []float64{16, 32, 18, 10, 10, 10, 10, 12, 14, 24}
	familiesHeader = []any{"Familia", "Productos", "Unidades", "Valor"}
)

// ExcelWriter escribe el informe con excelize.
type ExcelWriter struct{}

// NewExcelWriter construye el writer.
func NewExcelWriter() *ExcelWriter { return &ExcelWriter{} }

// WriteStockReport devuelve el libro con una fila por producto en "Stock"
// y la valorización agregada en "Families".
func (w *ExcelWriter) WriteStockReport(snaps []stock.Snapshot, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStock); err != nil {
		return nil, fmt.Errorf("report: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetFamilies); err != nil {
		return nil, fmt.Errorf("report: crear hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("report: estilo: %w", err)
	}

	if err := writeStockSheet(f, snaps, bold); err != nil {
		return nil, err
	}
	if err := writeFamiliesSheet(f, snaps, bold, generatedAt); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeStockSheet(f *excelize.File, snaps []stock.Snapshot, headerStyle int) error {
	if err := f.SetSheetRow(SheetStock, "A1", &stockHeader); err != nil {
		return fmt.Errorf("report: cabecera stock: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(stockHeader), 1)
	_ = f.SetCellStyle(SheetStock, "A1", last, headerStyle)

	for i, s := range snaps {
		main := ""
		if l, ok := stock.MainLocation(s.Locations); ok {
			main = l.Name
		}
		price, _ := s.Product.Price.Float64()
		value, _ := s.Value.Float64()
		row := []any{
			s.Product.Reference, s.Product.Name, s.Product.Family, s.Product.Unit,
			s.Total, s.Product.MinStock, string(s.Status), price, value, main,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetStock, cell, &row); err != nil {
			return fmt.Errorf("report: fila %d: %w", i+2, err)
		}
	}
	for i, wdt := range stockWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetStock, col, col, wdt)
	}
	return nil
}

func writeFamiliesSheet(f *excelize.File, snaps []stock.Snapshot, headerStyle int, generatedAt time.Time) error {
	if err := f.SetSheetRow(SheetFamilies, "A1", &familiesHeader); err != nil {
		return fmt.Errorf("report: cabecera familias: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(familiesHeader), 1)
	_ = f.SetCellStyle(SheetFamilies, "A1", last, headerStyle)

	families := stock.ValuationByFamily(snaps)
	for i, fv := range families {
		value, _ := fv.Value.Float64()
		row := []any{fv.Family, fv.Products, fv.Units, value}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetFamilies, cell, &row); err != nil {
			return fmt.Errorf("report: familia %s: %w", fv.Family, err)
		}
	}

	totalRow := len(families) + 3
	total, _ := stock.PortfolioValue(snaps).Float64()
	summary := []any{"Total", len(snaps), nil, total}
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := f.SetSheetRow(SheetFamilies, cell, &summary); err != nil {
		return fmt.Errorf("report: total: %w", err)
	}
	end, _ := excelize.CoordinatesToCellName(len(familiesHeader), totalRow)
	_ = f.SetCellStyle(SheetFamilies, cell, end, headerStyle)

	stamp, _ := excelize.CoordinatesToCellName(1, totalRow+2)
	_ = f.SetCellValue(SheetFamilies, stamp, "Generado: "+generatedAt.UTC().Format(time.RFC3339))
	_ = f.SetColWidth(SheetFamilies, "A", "A", 24)
	return nil
}
