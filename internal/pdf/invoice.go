package pdf

import (
	"fmt"
	"io"

	"bizdocs/internal/document"
	"bizdocs/internal/domain"
	"bizdocs/internal/gst"
)

// InvoiceData is everything printed on a tax invoice. Tax must come from
// aggregating Invoice.LineItems().
type InvoiceData struct {
	Company  document.Company
	Customer document.Party
	Invoice  document.Invoice
	Tax      *gst.Result
}

const (
	invoiceTitle       = "Tax Invoice"
	invoiceHeaderBox   = 90.0
	itemsHeaderHeight  = 20.0
	totalsBoxHeight    = 80.0
	declarationHeight  = 90.0
	footerSafetyMargin = 10.0
	taxHeaderHeight    = 35.0
	taxRowHeight       = 20.0
)

// WriteInvoice renders the invoice and writes the finished PDF to w.
func WriteInvoice(w io.Writer, d *InvoiceData) error {
	c := NewCanvas(invoiceTitle + " " + d.Invoice.Number)
	if err := RenderInvoice(c, d); err != nil {
		return err
	}
	if err := c.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w: %w", domain.ErrOutputFailed, err)
	}
	return nil
}

// RenderInvoice lays the invoice out on c: header, buyer, item table, totals
// and declaration footer, then the tax analysis table.
func RenderInvoice(c Canvas, d *InvoiceData) error {
	if d == nil || d.Tax == nil {
		return fmt.Errorf("invoice has no tax summary: %w", domain.ErrInvalidData)
	}
	if len(d.Invoice.Items) == 0 {
		return fmt.Errorf("invoice has no items: %w", domain.ErrInvalidData)
	}
	l := NewLayout(c, invoiceMargin)
	f := newFrame(c, invoiceMargin)
	number := "Invoice No: " + d.Invoice.Number
	r := &invoiceRenderer{
		c:        c,
		f:        f,
		l:        l,
		d:        d,
		cont:     continuation(c, f, d.Company.Name, invoiceTitle+" (Continuation)", number),
		contTax:  continuation(c, f, d.Company.Name, invoiceTitle+" (Tax Analysis)", number),
		tableW:   sum(invoiceColumns),
		taxTable: sum(taxColumns),
	}

	for _, section := range []func() error{r.header, r.buyer, r.items, r.footer, r.taxAnalysis} {
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}

type invoiceRenderer struct {
	c        Canvas
	f        frame
	l        *Layout
	d        *InvoiceData
	cont     func(y float64) float64
	contTax  func(y float64) float64
	tableW   float64
	taxTable float64
}

func (r *invoiceRenderer) header() error {
	return r.l.Place(Block{
		Height: 20 + invoiceHeaderBox,
		Header: r.cont,
		Draw:   r.drawHeader,
	})
}

func (r *invoiceRenderer) drawHeader(y float64) float64 {
	c, f, co := r.c, r.f, r.d.Company
	c.SetFont(Bold, 14)
	c.Text(invoiceTitle, 0, y, TextOptions{Width: f.pageWidth, Align: AlignCenter})

	y += 20
	half := f.width / 2
	c.Rect(f.left, y, f.width, invoiceHeaderBox)
	c.Line(f.left+half, y, f.left+half, y+invoiceHeaderBox)

	left := TextOptions{Width: half - 10}
	c.SetFont(Bold, 11)
	c.Text(co.Name, f.left+5, y+5, left)
	c.SetFont(Regular, 9)
	c.Text(co.Address, f.left+5, y+22, left)
	c.Text(fmt.Sprintf("%s, %s", co.City, co.State), f.left+5, y+35, left)
	c.Text("GSTIN: "+co.GSTIN, f.left+5, y+50, left)
	c.Text("e-Mail: "+co.Email, f.left+5, y+65, left)

	rx := f.left + half + 10
	value := TextOptions{Width: half - 20, Align: AlignRight}
	c.SetFont(Bold, 9)
	c.Text("Invoice No:", rx, y+5, TextOptions{})
	c.Text("Dated:", rx, y+20, TextOptions{})
	c.SetFont(Regular, 9)
	c.Text(r.d.Invoice.Number, rx, y+5, value)
	c.Text(displayDate(r.d.Invoice.Date), rx, y+20, value)

	return y + invoiceHeaderBox
}

func (r *invoiceRenderer) buyer() error {
	c, f, cu := r.c, r.f, r.d.Customer
	textW := f.width - 55

	c.SetFont(Regular, 9)
	addressH := c.TextHeight(cu.Address, textW)
	boxH := addressH + 30
	if cu.GSTIN != "" {
		boxH += 15
	}

	return r.l.Place(Block{
		Height: boxH,
		Header: r.cont,
		Draw: func(y float64) float64 {
			c.Rect(f.left, y, f.width, boxH)
			c.SetFont(Bold, 9)
			c.Text("Buyer:", f.left+5, y+5, TextOptions{})
			c.SetFont(Regular, 9)
			c.Text(cu.Name, f.left+50, y+5, TextOptions{Width: textW})
			c.Text(cu.Address, f.left+50, y+20, TextOptions{Width: textW})
			if cu.GSTIN != "" {
				c.Text("GSTIN: "+cu.GSTIN, f.left+50, y+20+addressH+5, TextOptions{Width: textW})
			}
			return y + boxH
		},
	})
}

func (r *invoiceRenderer) drawItemsHeader(y float64) float64 {
	r.c.SetStrokeColor(0, 0, 0)
	r.c.Rect(r.f.left, y, r.tableW, itemsHeaderHeight)
	r.c.SetFont(Bold, 9)
	gridRow(r.c, r.f.left, y, itemsHeaderHeight, 5, invoiceColumns, invoiceHeaders)
	return y + itemsHeaderHeight
}

func (r *invoiceRenderer) rowHeight(it gst.Item) float64 {
	r.c.SetFont(Regular, 9)
	return r.c.TextHeight(it.Name, invoiceColumns[1]-4) + 8
}

func (r *invoiceRenderer) items() error {
	rows := r.d.Tax.Items
	first := itemsHeaderHeight
	if len(rows) > 0 {
		first += r.rowHeight(rows[0])
	}
	if err := r.l.Place(Block{Height: first, Header: r.cont, Draw: r.drawItemsHeader}); err != nil {
		return err
	}

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
			money(it.UnitPrice),
			"nos",
			money(it.DiscountPercent),
			money(it.TaxableAmount),
		}
		err := r.l.Place(Block{
			Height: h,
			Header: nextPage,
			Draw: func(y float64) float64 {
				r.c.SetFont(Regular, 9)
				r.c.Line(r.f.left, y+h, r.f.left+r.tableW, y+h)
				gridRow(r.c, r.f.left, y, h, 4, invoiceColumns, cells)
				return y + h
			},
		})
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *invoiceRenderer) footer() error {
	c, f := r.c, r.f
	half := f.width / 2

	c.SetFont(Regular, 9)
	declH := c.TextHeight(r.d.Invoice.Declaration, half-10)
	bottomH := declarationHeight
	if h := 18 + declH + 8; h > bottomH {
		bottomH = h
	}

	return r.l.Place(Block{
		Height: totalsBoxHeight + bottomH,
		Margin: footerSafetyMargin,
		Header: r.cont,
		Draw: func(y float64) float64 {
			y = r.drawTotals(y)
			return r.drawDeclaration(y, bottomH)
		},
	})
}

func (r *invoiceRenderer) drawTotals(y float64) float64 {
	c, f, t := r.c, r.f, r.d.Tax.Totals
	c.Rect(f.left, y, f.width, totalsBoxHeight)
	colX := f.right - 200
	c.Line(colX, y, colX, y+totalsBoxHeight)

	value := TextOptions{Width: 90, Align: AlignRight}
	for _, row := range []struct {
		label  string
		amount float64
		dy     float64
	}{
		{"Sub Total", t.Subtotal, 5},
		{"CGST", t.TotalCentralTax, 20},
		{"SGST", t.TotalStateTax, 35},
		{"Total", t.GrandTotal, 55},
	} {
		c.SetFont(Bold, 9)
		c.Text(row.label, colX+5, y+row.dy, TextOptions{})
		c.SetFont(Regular, 9)
		c.Text(money(row.amount), colX+100, y+row.dy, value)
	}

	c.SetFont(Bold, 9)
	c.Text("Chargeable Amount (In Words):", f.left+5, y+5, TextOptions{})
	c.SetFont(Regular, 9)
	c.Text(t.GrandTotalWords, f.left+5, y+20, TextOptions{Width: colX - f.left - 10})
	return y + totalsBoxHeight
}

func (r *invoiceRenderer) drawDeclaration(y, h float64) float64 {
	c, f, co := r.c, r.f, r.d.Company
	half := f.width / 2
	mid := f.left + half
	c.Rect(f.left, y, f.width, h)
	c.Line(mid, y, mid, y+h)

	col := TextOptions{Width: half - 10, Align: AlignCenter}
	c.SetFont(Bold, 9)
	c.Text("Declaration:", f.left+5, y+5, col)
	c.SetFont(Regular, 9)
	c.Text(r.d.Invoice.Declaration, f.left+5, y+18, col)

	rx := mid + 5
	ruleY := y + declarationHeight/2 + 5
	c.Line(mid, ruleY, f.right, ruleY)
	c.SetFont(Bold, 9)
	c.Text("Company Bank Details:", rx, y+5, TextOptions{})
	c.SetFont(Regular, 9)
	c.Text("Bank Name: "+co.BankDetails.BankName, rx, y+18, TextOptions{})
	account := "Account No: " + co.BankDetails.AccountNo
	if co.BankDetails.IFSC != "" {
		account += "   IFSC: " + co.BankDetails.IFSC
	}
	c.Text(account, rx, y+31, TextOptions{Width: half - 10})

	sign := TextOptions{Width: half - 15, Align: AlignRight}
	c.SetFont(Bold, 9)
	c.Text("For "+co.Name, rx, ruleY+8, sign)
	c.Text("Authorized Signature", rx, ruleY+28, sign)
	return y + h
}

func (r *invoiceRenderer) taxAnalysis() error {
	c, f, groups := r.c, r.f, r.d.Tax.Groups

	c.SetFont(Regular, 9)
	wordsH := c.TextHeight(r.d.Tax.Totals.TaxWords, f.width)
	closing := taxRowHeight + 10 + 12 + wordsH

	// Reserve the whole table when it fits on one page so it is not split.
	intro := 15 + 25 + taxHeaderHeight
	full := intro + float64(len(groups))*taxRowHeight + closing
	if full <= r.l.Capacity()-continuationHeight {
		intro = full
	} else if len(groups) > 0 {
		intro += taxRowHeight
	}

	err := r.l.Place(Block{
		Height: intro,
		Header: r.contTax,
		Draw: func(y float64) float64 {
			c.SetFont(Bold, 12)
			c.Text("(Tax Analysis)", 0, y+15, TextOptions{Width: f.pageWidth, Align: AlignCenter})
			return r.drawTaxHeader(y + 15 + 25)
		},
	})
	if err != nil {
		return err
	}

	nextPage := func(y float64) float64 {
		return r.drawTaxHeader(r.contTax(y))
	}
	for _, g := range groups {
		cells := []string{
			g.HSNCode,
			money(g.TaxableValue),
			money(g.HalfRate()) + "%",
			money(g.CentralTax),
			money(g.HalfRate()) + "%",
			money(g.StateTax),
			money(g.TotalTax),
		}
		err := r.l.Place(Block{
			Height: taxRowHeight,
			Header: nextPage,
			Draw: func(y float64) float64 {
				c.SetFont(Regular, 9)
				c.Rect(f.left, y, r.taxTable, taxRowHeight)
				gridRow(c, f.left, y, taxRowHeight, 6, taxColumns, cells)
				return y + taxRowHeight
			},
		})
		if err != nil {
			return fmt.Errorf("tax group %s: %w", g.HSNCode, err)
		}
	}

	t := r.d.Tax.Totals
	return r.l.Place(Block{
		Height: closing,
		Header: nextPage,
		Draw: func(y float64) float64 {
			c.SetFont(Bold, 9)
			c.Rect(f.left, y, r.taxTable, taxRowHeight)
			gridRow(c, f.left, y, taxRowHeight, 6, taxColumns, []string{
				"Total", money(t.Subtotal), "", money(t.TotalCentralTax), "", money(t.TotalStateTax), money(t.TotalTax),
			})
			y += taxRowHeight + 10
			c.Text("Tax Amount (in words):", f.left, y, TextOptions{})
			c.SetFont(Regular, 9)
			c.Text(t.TaxWords, f.left, y+12, TextOptions{Width: f.width})
			return y + 12 + wordsH
		},
	})
}

func (r *invoiceRenderer) drawTaxHeader(y float64) float64 {
	c, x := r.c, r.f.left
	cols := taxColumns
	h := taxHeaderHeight
	c.SetStrokeColor(0, 0, 0)
	c.Rect(x, y, r.taxTable, h)

	edges := []float64{
		x,
		x + cols[0],
		x + cols[0] + cols[1],
		x + cols[0] + cols[1] + cols[2] + cols[3],
		x + cols[0] + cols[1] + cols[2] + cols[3] + cols[4] + cols[5],
		x + r.taxTable,
	}
	for _, ex := range edges {
		c.Line(ex, y, ex, y+h)
	}
	sub := edges[2]
	mid := y + h/2
	c.Line(sub, mid, edges[4], mid)
	c.Line(sub+cols[2], mid, sub+cols[2], y+h)
	c.Line(sub+cols[2]+cols[3]+cols[4], mid, sub+cols[2]+cols[3]+cols[4], y+h)

	c.SetFont(Bold, 9)
	c.Text("HSN/SAC", edges[0], y+12, TextOptions{Width: cols[0], Align: AlignCenter})
	c.Text("Taxable Value", edges[1], y+12, TextOptions{Width: cols[1], Align: AlignCenter})
	c.Text("Central Tax", edges[2], y+4, TextOptions{Width: cols[2] + cols[3], Align: AlignCenter})
	c.Text("State Tax", edges[3], y+4, TextOptions{Width: cols[4] + cols[5], Align: AlignCenter})
	c.Text("Total Tax", edges[4], y+12, TextOptions{Width: cols[6], Align: AlignCenter})

	c.SetFont(Bold, 8)
	sx := sub
	for i, label := range []string{"Rate", "Amount", "Rate", "Amount"} {
		c.Text(label, sx, mid+4, TextOptions{Width: cols[i+2], Align: AlignCenter})
		sx += cols[i+2]
	}
	return y + h
}
