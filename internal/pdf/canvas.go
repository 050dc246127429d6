// Package pdf lays out invoices and quotations onto paginated A4 pages.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// Font styles accepted by Canvas.SetFont.
const (
	Regular = ""
	Bold    = "B"
)

// Align positions text inside its box.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// TextOptions bounds a text run. A zero Width draws a single unwrapped line.
type TextOptions struct {
	Width float64
	Align Align
}

// Canvas is the drawing surface the layout code renders onto.
// Coordinates are in points from the top-left corner of the current page.
type Canvas interface {
	AddPage()
	PageSize() (width, height float64)
	SetFont(style string, size float64)
	SetStrokeColor(r, g, b int)
	Rect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	Text(s string, x, y float64, opts TextOptions)
	// TextHeight is the height s occupies when wrapped to width in the current font.
	TextHeight(s string, width float64) float64
	// Image draws the image at path scaled to width and returns the drawn height.
	Image(path string, x, y, width float64) (float64, error)
	PageCount() int
	Output(w io.Writer) error
}

const (
	fontFamily     = "Helvetica"
	lineSpacing    = 1.15
	cellPadding    = 2.0
	defaultFontPts = 10.0
)

type fpdfCanvas struct {
	doc       *fpdf.Fpdf
	translate func(string) string
}

// NewCanvas returns an A4 portrait Canvas backed by fpdf with automatic page
// breaks disabled; pagination is left to Layout.
func NewCanvas(title string) Canvas {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCellMargin(cellPadding)
	doc.SetTitle(title, true)
	doc.SetCreator("bizdocs", true)
	doc.SetFont(fontFamily, Regular, defaultFontPts)
	doc.SetLineWidth(0.75)

	return &fpdfCanvas{
		doc:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *fpdfCanvas) AddPage() {
	c.doc.AddPage()
}

func (c *fpdfCanvas) PageSize() (float64, float64) {
	return c.doc.GetPageSize()
}

func (c *fpdfCanvas) SetFont(style string, size float64) {
	c.doc.SetFont(fontFamily, style, size)
}

func (c *fpdfCanvas) SetStrokeColor(r, g, b int) {
	c.doc.SetDrawColor(r, g, b)
}

func (c *fpdfCanvas) Rect(x, y, w, h float64) {
	c.doc.Rect(x, y, w, h, "D")
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.doc.Line(x1, y1, x2, y2)
}

func (c *fpdfCanvas) lineHeight() float64 {
	size, _ := c.doc.GetFontSize()
	return size * lineSpacing
}

func (c *fpdfCanvas) Text(s string, x, y float64, opts TextOptions) {
	if s == "" {
		return
	}
	align := string(opts.Align)
	if align == "" {
		align = string(AlignLeft)
	}
	width := opts.Width
	if width <= 0 {
		// Widest line plus padding keeps MultiCell from wrapping.
		for _, line := range strings.Split(s, "\n") {
			if w := c.doc.GetStringWidth(line); w > width {
				width = w
			}
		}
		width += 2*cellPadding + 1
	}
	c.doc.SetXY(x, y)
	c.doc.MultiCell(width, c.lineHeight(), c.translate(s), "", align, false)
}

func (c *fpdfCanvas) TextHeight(s string, width float64) float64 {
	if s == "" {
		return 0
	}
	var lines int
	if width <= 0 {
		lines = len(strings.Split(strings.TrimRight(s, "\n"), "\n"))
	} else {
		lines = len(c.doc.SplitText(s, width))
	}
	return float64(lines) * c.lineHeight()
}

func (c *fpdfCanvas) Image(path string, x, y, width float64) (float64, error) {
	opts := fpdf.ImageOptions{ReadDpi: true}
	info := c.doc.RegisterImageOptions(path, opts)
	if err := c.doc.Error(); err != nil {
		return 0, fmt.Errorf("loading image %s: %w", path, err)
	}
	if info == nil || info.Width() == 0 {
		return 0, fmt.Errorf("image %s has no width", path)
	}
	height := width * info.Height() / info.Width()
	c.doc.ImageOptions(path, x, y, width, height, false, opts, 0, "")
	return height, c.doc.Error()
}

func (c *fpdfCanvas) PageCount() int {
	return c.doc.PageCount()
}

func (c *fpdfCanvas) Output(w io.Writer) error {
	return c.doc.Output(w)
}
