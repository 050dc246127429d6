package pdf

import (
	"fmt"
	"io"
	"strings"

	"bizdocs/internal/document"
	"bizdocs/internal/domain"
	"bizdocs/internal/gst"
)

// QuotationData is everything printed on a quotation. Tax must come from
// aggregating Quotation.LineItems().
type QuotationData struct {
	Company   document.Company
	Customer  document.Party
	Quotation document.Quotation
	Tax       *gst.Result
	// LogoPath is an optional PNG or JPEG drawn in the top-left corner.
	LogoPath string
}

const (
	quotationTitle = "Quotation"
	logoWidth      = 65.0
	defaultIntro   = "We are pleased to quote our best prices for the following items:"
)

// WriteQuotation renders the quotation and writes the finished PDF to w.
func WriteQuotation(w io.Writer, d *QuotationData) error {
	c := NewCanvas(quotationTitle + " " + d.Quotation.Number)
	if err := RenderQuotation(c, d); err != nil {
		return err
	}
	if err := c.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w: %w", domain.ErrOutputFailed, err)
	}
	return nil
}

// RenderQuotation lays the quotation out on c. The thank-you footer is pinned
// to the bottom margin of the last page.
func RenderQuotation(c Canvas, d *QuotationData) error {
	if d == nil || d.Tax == nil {
		return fmt.Errorf("quotation has no tax summary: %w", domain.ErrInvalidData)
	}
	if len(d.Quotation.Items) == 0 {
		return fmt.Errorf("quotation has no items: %w", domain.ErrInvalidData)
	}
	if len(d.Tax.Items) < len(d.Quotation.Items) {
		return fmt.Errorf("tax summary covers %d of %d items: %w",
			len(d.Tax.Items), len(d.Quotation.Items), domain.ErrInvalidData)
	}

	l := NewLayout(c, quotationMargin)
	f := newFrame(c, quotationMargin)
	r := &quotationRenderer{
		c:    c,
		f:    f,
		l:    l,
		d:    d,
		cont: continuation(c, f, d.Company.Name, quotationTitle+" (Continuation)", "Quotation No: "+d.Quotation.Number),
	}

	for _, section := range []func() error{r.header, r.reference, r.items, r.totals, r.terms, r.footer} {
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}

type quotationRenderer struct {
	c    Canvas
	f    frame
	l    *Layout
	d    *QuotationData
	cont func(y float64) float64
}

func (r *quotationRenderer) issuerLines() []string {
	co := r.d.Company
	lines := []string{co.Address}
	if co.City != "" {
		lines = append(lines, co.City)
	}
	if co.State != "" {
		lines = append(lines, co.State)
	}
	lines = append(lines, "India")
	if co.GSTIN != "" {
		lines = append(lines, "GSTIN: "+co.GSTIN)
	}
	return lines
}

func (r *quotationRenderer) header() error {
	c, f := r.c, r.f
	top := r.l.Top()

	var logoH float64
	if r.d.LogoPath != "" {
		h, err := c.Image(r.d.LogoPath, f.left, top, logoWidth)
		if err != nil {
			return fmt.Errorf("quotation logo: %w", err)
		}
		logoH = h
	}

	right := TextOptions{Width: f.width, Align: AlignRight}
	c.SetFont(Bold, 14)
	nameH := c.TextHeight(r.d.Company.Name, f.width)
	lines := r.issuerLines()
	c.SetFont(Regular, 10)
	issuerH := nameH
	for _, line := range lines {
		issuerH += c.TextHeight(line, f.width)
	}

	rule := top + logoH + 10
	if bottom := top + 15 + issuerH; bottom > rule {
		rule = bottom
	}

	return r.l.Place(Block{
		Height: rule + 13 - r.l.Y(),
		Draw: func(float64) float64 {
			y := top + 15
			c.SetFont(Bold, 14)
			c.Text(r.d.Company.Name, f.left, y, right)
			y += nameH
			c.SetFont(Regular, 10)
			for _, line := range lines {
				c.Text(line, f.left, y, right)
				y += c.TextHeight(line, f.width)
			}
			c.SetStrokeColor(0x11, 0x1a, 0x2e)
			c.Line(f.left, rule+7, f.right, rule+7)
			c.SetStrokeColor(0, 0, 0)
			return rule + 13
		},
	})
}

func (r *quotationRenderer) reference() error {
	c, f, q, cu := r.c, r.f, r.d.Quotation, r.d.Customer
	toW := f.width/3 - 10
	to := strings.Join([]string{"To,", cu.Name, cu.Address}, "\n")
	intro := q.Intro
	if intro == "" {
		intro = defaultIntro
	}

	c.SetFont(Regular, 10)
	toH := c.TextHeight(to, toW)
	if toH < 24 {
		toH = 24
	}
	introH := c.TextHeight(intro, f.width)

	return r.l.Place(Block{
		Height: 5 + toH + 10 + introH + 15,
		Header: r.cont,
		Draw: func(y float64) float64 {
			th := y + 5
			c.SetFont(Bold, 10)
			c.Text("Quotation No", f.left, th, TextOptions{Width: f.width, Align: AlignCenter})
			c.Text("Date: "+displayDate(q.Date), f.left, th, TextOptions{Width: f.width, Align: AlignRight})
			c.SetFont(Regular, 10)
			c.Text(q.Number, f.left, th+12, TextOptions{Width: f.width, Align: AlignCenter})
			c.Text(to, f.left, th, TextOptions{Width: toW})

			y = th + toH + 10
			c.Text(intro, f.left, y, TextOptions{Width: f.width})
			return y + introH + 15
		},
	})
}

func (r *quotationRenderer) drawItemsHeader(y float64) float64 {
	c, f := r.c, r.f
	c.SetFont(Bold, 10)
	x := f.left
	for i, w := range quotationColumns {
		align := AlignLeft
		if i >= 4 {
			align = AlignRight
		}
		c.Text(quotationHeaders[i], x, y, TextOptions{Width: w, Align: align})
		x += w
	}
	c.SetStrokeColor(0, 0, 0)
	c.Line(f.left, y+15, f.right, y+15)
	return y + 25
}

// rows excludes the installation line, which is shown in the totals instead.
func (r *quotationRenderer) rows() []gst.Item {
	return r.d.Tax.Items[:len(r.d.Quotation.Items)]
}

func (r *quotationRenderer) installationCharge() float64 {
	var charge float64
	for _, it := range r.d.Tax.Items[len(r.d.Quotation.Items):] {
		charge += it.TaxableAmount
	}
	return charge
}

func (r *quotationRenderer) rowHeight(it gst.Item) float64 {
	r.c.SetFont(Regular, 10)
	return r.c.TextHeight(it.Name, quotationColumns[1]-2) + 8
}

func (r *quotationRenderer) items() error {
	rows := r.rows()
	first := 25.0
	if len(rows) > 0 {
		first += r.rowHeight(rows[0])
	}
	if err := r.l.Place(Block{Height: first, Header: r.cont, Draw: r.drawItemsHeader}); err != nil {
		return err
	}

	c, f := r.c, r.f
	nextPage := func(y float64) float64 {
		return r.drawItemsHeader(r.cont(y))
	}
	for i, it := range rows {
		h := r.rowHeight(it)
		cells := []string{
			fmt.Sprint(i + 1),
			it.Name,
			it.HSNCode,
			quantity(it.Quantity),
			"Rs. " + money(it.UnitPrice),
			"Rs. " + money(it.TaxableAmount),
		}
		err := r.l.Place(Block{
			Height: h,
			Header: nextPage,
			Draw: func(y float64) float64 {
				c.SetFont(Regular, 10)
				x := f.left
				for j, w := range quotationColumns {
					align := AlignLeft
					if j >= 4 {
						align = AlignRight
					}
					c.Text(cells[j], x, y, TextOptions{Width: w - 2, Align: align})
					x += w
				}
				c.SetStrokeColor(0xe0, 0xe0, 0xe0)
				c.Line(f.left, y+h-2, f.right, y+h-2)
				c.SetStrokeColor(0, 0, 0)
				return y + h
			},
		})
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *quotationRenderer) totals() error {
	c, f, t := r.c, r.f, r.d.Tax.Totals
	install := r.installationCharge()
	words := "In Words: " + t.GrandTotalWords

	c.SetFont(Regular, 10)
	wordsH := c.TextHeight(words, f.width)
	const line = 15.0

	return r.l.Place(Block{
		Height: 10 + 5*line + 5 + wordsH + 10,
		Header: r.cont,
		Draw: func(y float64) float64 {
			colX := f.right - 250
			right := TextOptions{Width: 250, Align: AlignRight}
			y += 10
			c.SetFont(Regular, 10)
			for _, row := range []struct {
				label  string
				amount float64
			}{
				{"Untaxed Amount", t.Subtotal - install},
				{"Installation charges", install},
				{"SGST", t.TotalStateTax},
				{"CGST", t.TotalCentralTax},
			} {
				c.Text(fmt.Sprintf("%s: Rs. %s", row.label, money(row.amount)), colX, y, right)
				y += line
			}
			c.Line(f.right-140, y, f.right, y)
			y += 5
			c.SetFont(Bold, 10)
			c.Text("Total: Rs. "+money(t.GrandTotal), colX, y, right)
			y += line
			c.SetFont(Regular, 10)
			c.Text(words, f.left, y, TextOptions{Width: f.width})
			return y + wordsH + 10
		},
	})
}

func (r *quotationRenderer) terms() error {
	terms := r.d.Quotation.Terms
	if len(terms) == 0 {
		return nil
	}
	c, f := r.c, r.f
	termX := f.left + 25
	termW := f.width - 50

	texts := make([]string, len(terms))
	heights := make([]float64, len(terms))
	c.SetFont(Regular, 10)
	for i, term := range terms {
		texts[i] = fmt.Sprintf("%d. %s", i+1, term)
		heights[i] = c.TextHeight(texts[i], termW) + 3
	}

	err := r.l.Place(Block{
		Height: 17 + heights[0],
		Header: r.cont,
		Draw: func(y float64) float64 {
			c.SetFont(Bold, 10)
			c.Text("Terms and Conditions:", f.left, y, TextOptions{})
			return y + 17
		},
	})
	if err != nil {
		return err
	}
	for i := range texts {
		text, h := texts[i], heights[i]
		err := r.l.Place(Block{
			Height: h,
			Header: r.cont,
			Draw: func(y float64) float64 {
				c.SetFont(Regular, 10)
				c.Text(text, termX, y, TextOptions{Width: termW})
				return y + h
			},
		})
		if err != nil {
			return fmt.Errorf("term %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *quotationRenderer) footer() error {
	c, f, co := r.c, r.f, r.d.Company
	thanks := fmt.Sprintf("Thank you,\n%s,\n%s.", co.Name, co.City)
	contact := "Email: " + co.Email

	c.SetFont(Regular, 10)
	thanksH := c.TextHeight(thanks, 250)
	contactH := c.TextHeight(contact, f.width)

	return r.l.Place(Block{
		Height: thanksH + contactH + 10,
		Header: r.cont,
		Draw: func(float64) float64 {
			bottom := r.l.Bottom()
			c.SetFont(Regular, 10)
			c.Text(thanks, f.left, bottom-thanksH-contactH-5, TextOptions{Width: 250})
			cy := bottom - contactH
			c.Text(contact, f.left, cy, TextOptions{Width: f.width})
			if co.Phone != "" {
				c.Text("Contact: "+co.Phone, f.left, cy, TextOptions{Width: f.width, Align: AlignRight})
			}
			return bottom
		},
	})
}
