package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"picklist/internal"
	"picklist/internal/picklist"
)

// ExportPickListXLSX writes rendered pick list lines with style and sizes in
// separate columns. The first row carries the last sync time.
func ExportPickListXLSX(lines []string, lastSync *time.Time, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	_ = f.SetCellValue(sheet, "A1", "last_sync")
	_ = f.SetCellValue(sheet, "B1", FormatLastSync(lastSync))
	writeRow(f, sheet, 2, "style", "sizes")

	for i, line := range lines {
		style, sizes := picklist.SplitLine(line)
		if sizes == "" {
			writeRow(f, sheet, i+3, style)
			continue
		}
		writeRow(f, sheet, i+3, style, sizes)
	}

	return save(f, outputPath)
}

// ExportStoreItemsXLSX writes one row per line item of a store's orders.
func ExportStoreItemsXLSX(rows []internal.StoreItemRow, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	writeRow(f, sheet, 1, "order_datetime", "order_number", "customer", "sku", "description", "quantity")
	for i, row := range rows {
		writeRow(f, sheet, i+2, row.OrderDatetime, row.OrderNumber, row.Customer, row.SKU, row.Description, row.Quantity)
	}

	return save(f, outputPath)
}

// FormatLastSync renders the last sync time for people, or "never".
func FormatLastSync(lastSync *time.Time) string {
	if lastSync == nil {
		return "never"
	}
	return lastSync.Local().Format(DisplayLayout)
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func save(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// SafeFileName turns a store name into something usable in a file name.
func SafeFileName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(strings.TrimSpace(input))
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
