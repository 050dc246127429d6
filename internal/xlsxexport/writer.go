// Package xlsxexport writes the GST breakdown of a document as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bizdocs/internal/gst"
)

const (
	ItemsSheet = "Items"
	TaxSheet   = "Tax Analysis"
)

var itemColumns = []string{
	"S.No",
	"Description",
	"HSN/SAC",
	"Quantity",
	"Rate",
	"Discount %",
	"Tax %",
	"Taxable Amount",
}

var taxColumns = []string{
	"HSN/SAC",
	"Taxable Value",
	"CGST Rate",
	"CGST Amount",
	"SGST Rate",
	"SGST Amount",
	"Total Tax",
}

// Writer builds a workbook and streams it to an io.Writer.
type Writer struct {
	file *excelize.File
}

// NewWriter creates an empty workbook with the Items and Tax Analysis sheets.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ItemsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename items sheet: %w", err)
	}
	if _, err := f.NewSheet(TaxSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create tax sheet: %w", err)
	}
	return &Writer{file: f}, nil
}

// WriteResult fills both sheets from an aggregation result.
func (w *Writer) WriteResult(res *gst.Result) error {
	if err := w.writeItems(res.Items); err != nil {
		return err
	}
	return w.writeTax(res)
}

func (w *Writer) writeItems(items []gst.Item) error {
	if err := w.row(ItemsSheet, 1, toRow(itemColumns)); err != nil {
		return err
	}
	for i := range items {
		it := &items[i]
		row := []interface{}{
			i + 1,
			it.Name,
			it.HSNCode,
			it.Quantity,
			round2(it.UnitPrice),
			it.DiscountPercent,
			it.TaxRatePercent,
			round2(it.TaxableAmount),
		}
		if err := w.row(ItemsSheet, i+2, row); err != nil {
			return err
		}
	}
	return w.file.SetColWidth(ItemsSheet, "B", "B", 40)
}

func (w *Writer) writeTax(res *gst.Result) error {
	if err := w.row(TaxSheet, 1, toRow(taxColumns)); err != nil {
		return err
	}
	for i := range res.Groups {
		g := &res.Groups[i]
		row := []interface{}{
			g.HSNCode,
			round2(g.TaxableValue),
			g.HalfRate(),
			round2(g.CentralTax),
			g.HalfRate(),
			round2(g.StateTax),
			round2(g.TotalTax),
		}
		if err := w.row(TaxSheet, i+2, row); err != nil {
			return err
		}
	}

	t := res.Totals
	next := len(res.Groups) + 2
	totals := []interface{}{"Total", round2(t.Subtotal), "", round2(t.TotalCentralTax), "", round2(t.TotalStateTax), round2(t.TotalTax)}
	if err := w.row(TaxSheet, next, totals); err != nil {
		return err
	}
	if err := w.row(TaxSheet, next+1, []interface{}{"Grand Total", round2(t.GrandTotal)}); err != nil {
		return err
	}
	if err := w.row(TaxSheet, next+2, []interface{}{"Amount in Words", t.GrandTotalWords}); err != nil {
		return err
	}
	return w.row(TaxSheet, next+3, []interface{}{"Tax in Words", t.TaxWords})
}

func (w *Writer) row(sheet string, n int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, n, err)
	}
	return nil
}

// WriteTo writes the workbook to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	return w.file.WriteTo(out)
}

// Close releases the workbook.
func (w *Writer) Close() error {
	return w.file.Close()
}

func toRow(cols []string) []interface{} {
	row := make([]interface{}, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename makes a document number safe for use as a file name.
// Replaces other characters with _, collapses runs of underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the attachment name for a tax-analysis export.
// Format: tax_analysis_{sanitized_number}.xlsx
func BuildFilename(number string) string {
	s := SanitizeFilename(number)
	if s == "" {
		return "tax_analysis.xlsx"
	}
	return fmt.Sprintf("tax_analysis_%s.xlsx", s)
}
