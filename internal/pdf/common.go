package pdf

import (
	"fmt"
	"math"
	"time"
)

const (
	a4Width  = 595.28
	a4Height = 841.89

	invoiceMargin   = 30.0
	quotationMargin = 25.0

	// Column widths may leave this much of the printable width unused.
	widthTolerance = 0.5
)

var (
	invoiceColumns = []float64{30, 215, 60, 30, 60, 40, 40, 60}
	invoiceHeaders = []string{"Sl.No", "Description", "HSN/SAC", "Qty", "Rate", "Unit", "Disc %", "Amount"}

	taxColumns = []float64{100, 105, 50, 60, 50, 60, 110}

	quotationColumns = []float64{34, 259, 50, 40, 80, 82}
	quotationHeaders = []string{"S.No", "Material Description", "HSN", "Qty", "Unit Price", "Amount"}
)

func init() {
	mustSum("invoice items", invoiceColumns, a4Width-2*invoiceMargin)
	mustSum("tax analysis", taxColumns, a4Width-2*invoiceMargin)
	mustSum("quotation items", quotationColumns, a4Width-2*quotationMargin)
	if len(invoiceHeaders) != len(invoiceColumns) || len(quotationHeaders) != len(quotationColumns) {
		panic("pdf: header and column counts differ")
	}
}

func mustSum(name string, cols []float64, printable float64) {
	if err := checkColumns(cols, printable); err != nil {
		panic(fmt.Sprintf("pdf: %s columns: %v", name, err))
	}
}

func checkColumns(cols []float64, printable float64) error {
	var total float64
	for _, w := range cols {
		if w <= 0 {
			return fmt.Errorf("non-positive width %v", w)
		}
		total += w
	}
	if math.Abs(total-printable) > widthTolerance {
		return fmt.Errorf("widths sum to %.2f, printable width is %.2f", total, printable)
	}
	return nil
}

func sum(ws []float64) float64 {
	var t float64
	for _, w := range ws {
		t += w
	}
	return t
}

// frame is the printable area of a page.
type frame struct {
	left, right float64
	width       float64
	pageWidth   float64
}

func newFrame(c Canvas, margin float64) frame {
	w, _ := c.PageSize()
	return frame{left: margin, right: w - margin, width: w - 2*margin, pageWidth: w}
}

// continuation draws the condensed header repeated on every page after the first.
func continuation(c Canvas, f frame, company, title, numberLabel string) func(y float64) float64 {
	return func(y float64) float64 {
		c.SetStrokeColor(0, 0, 0)
		c.SetFont(Bold, 11)
		c.Text(company, f.left, y, TextOptions{Width: f.width / 3})
		c.SetFont(Bold, 14)
		c.Text(title, 0, y, TextOptions{Width: f.pageWidth, Align: AlignCenter})
		c.SetFont(Regular, 10)
		c.Text(numberLabel, f.left, y+20, TextOptions{Width: f.width, Align: AlignRight})
		y += 45
		c.Line(f.left, y, f.right, y)
		return y + 10
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func quantity(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "02-01-2006", "02/01/2006"}

// displayDate renders ISO style dates as dd/mm/yyyy and passes anything else through.
func displayDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

const continuationHeight = 55.0

// gridRow draws cell texts centered in their columns with vertical rules
// on every column edge.
func gridRow(c Canvas, x, y, h, textOffset float64, cols []float64, cells []string) {
	cx := x
	for i, w := range cols {
		c.Line(cx, y, cx, y+h)
		if i < len(cells) {
			c.Text(cells[i], cx+2, y+textOffset, TextOptions{Width: w - 4, Align: AlignCenter})
		}
		cx += w
	}
	c.Line(cx, y, cx, y+h)
}
