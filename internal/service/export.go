package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportFormat is the file type of an inventory export
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"

	inventorySheet = "Inventory"
	// built-in spreadsheet number format "0.00"
	twoDecimalsNumFmt = 2
)

var exportHeader = []string{"Barcode", "Name", "Category", "Price", "Cost", "Stock", "Value"}

// ParseExportFormat reads the format query parameter. Empty means CSV.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", invalid("unknown export format %q", raw)
}

// Filename is the attachment name for an export taken at now
func (f ExportFormat) Filename(now time.Time) string {
	return fmt.Sprintf("inventory_%s.%s", now.Format(isoDate), f)
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// WriteInventoryCSV writes a header row then one row per product.
// Price, Cost and Value carry exactly two decimals and Value is Price times Stock.
func WriteInventoryCSV(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.Barcode,
			p.Name,
			p.Category,
			decimal.NewFromFloat(p.Price).StringFixed(2),
			decimal.NewFromFloat(p.Cost).StringFixed(2),
			strconv.Itoa(p.Stock),
			lineValue(p.Price, p.Stock).StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", p.Barcode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteInventoryXLSX writes the same rows as WriteInventoryCSV to a single sheet workbook
func WriteInventoryXLSX(w io.Writer, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(inventorySheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			p.Barcode,
			p.Name,
			p.Category,
			decimal.NewFromFloat(p.Price).Round(2).InexactFloat64(),
			decimal.NewFromFloat(p.Cost).Round(2).InexactFloat64(),
			p.Stock,
			lineValue(p.Price, p.Stock).Round(2).InexactFloat64(),
		}
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %s: %w", p.Barcode, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: twoDecimalsNumFmt})
	if err != nil {
		return fmt.Errorf("create xlsx style: %w", err)
	}
	for _, cols := range []string{"D:E", "G"} {
		if err := f.SetColStyle(inventorySheet, cols, style); err != nil {
			return fmt.Errorf("style xlsx columns %s: %w", cols, err)
		}
	}

	return f.Write(w)
}
