package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/document"
	"bizdocs/internal/domain"
	"bizdocs/internal/gst"
)

func testCompany() document.Company {
	return document.Company{
		Name:    "Industech Automations",
		Address: "No 25b Kuruvikaran Salai",
		City:    "Madurai",
		State:   "Tamil Nadu",
		GSTIN:   "33CHVPD3453N1ZW",
		Email:   "accounts@industech.example",
		Phone:   "9500000000",
		BankDetails: document.BankDetails{
			BankName:  "State Bank of India",
			AccountNo: "00000012345678",
			IFSC:      "SBIN0000001",
		},
	}
}

func testCustomer() document.Party {
	return document.Party{
		Name:    "Meenakshi Textiles",
		Address: "14 North Masi Street, Madurai 625001",
		GSTIN:   "33AAACM1234A1Z5",
	}
}

func lineItems(n int, name func(i int) string, hsn func(i int) string) []gst.LineItem {
	items := make([]gst.LineItem, n)
	for i := range items {
		items[i] = gst.LineItem{
			Name:           name(i),
			HSNCode:        hsn(i),
			Quantity:       gst.Float(2),
			UnitPrice:      gst.Float(1250),
			TaxRatePercent: 18,
		}
	}
	return items
}

func invoiceData(t *testing.T, items []gst.LineItem) *InvoiceData {
	t.Helper()
	inv := document.Invoice{
		Number:      "INV-2025-0042",
		Date:        "2025-03-05",
		Declaration: "We declare that this invoice shows the actual price of the goods described.",
		Items:       items,
	}
	lines, err := inv.LineItems()
	require.NoError(t, err)
	res, err := gst.Aggregate(lines)
	require.NoError(t, err)
	return &InvoiceData{Company: testCompany(), Customer: testCustomer(), Invoice: inv, Tax: res}
}

func itemName(i int) string { return fmt.Sprintf("Item %02d", i+1) }

func sameHSN(int) string { return "8525" }

func assertWithinBottomMargin(t *testing.T, rec *recorder, margin float64) {
	t.Helper()
	for page, y := range rec.maxY {
		assert.LessOrEqual(t, y, a4Height-margin+1e-6, "page %d draws below the bottom margin", page+1)
	}
}

func TestRenderInvoice_SinglePage(t *testing.T) {
	rec := newRecorder()
	d := invoiceData(t, lineItems(3, itemName, sameHSN))

	require.NoError(t, RenderInvoice(rec, d))

	assert.Equal(t, 1, rec.PageCount())
	assert.Equal(t, 1, rec.count("Sl.No"))
	assert.Equal(t, 1, rec.count("Tax Invoice"))
	assert.Equal(t, 1, rec.count("(Tax Analysis)"))
	assert.Empty(t, rec.pagesWithPrefix("Tax Invoice ("))
	assert.Equal(t, 1, rec.count("Rupees Eight Thousand Eight Hundred and Fifty only"))
	assert.Equal(t, 1, rec.count("05/03/2025"))
	assertWithinBottomMargin(t, rec, invoiceMargin)
}

func TestRenderInvoice_PaginatesLongItemList(t *testing.T) {
	rec := newRecorder()
	d := invoiceData(t, lineItems(80, itemName, sameHSN))

	require.NoError(t, RenderInvoice(rec, d))
	require.Greater(t, rec.PageCount(), 1)

	rowPages := map[int]bool{}
	for i := 0; i < 80; i++ {
		for p := range rec.pagesWith(itemName(i)) {
			rowPages[p] = true
		}
	}
	headerPages := rec.pagesWith("Sl.No")
	require.Len(t, headerPages, len(rowPages))
	for p := range rowPages {
		assert.Equal(t, 1, headerPages[p], "column header once on page %d", p)
	}

	continued := rec.pagesWithPrefix("Tax Invoice (")
	assert.False(t, continued[1])
	for p := 2; p <= rec.PageCount(); p++ {
		assert.True(t, continued[p], "continuation header on page %d", p)
	}
	assertWithinBottomMargin(t, rec, invoiceMargin)
}

func TestRenderInvoice_RowHeightFollowsWrappedDescription(t *testing.T) {
	word := strings.Repeat("x", 40)
	long := strings.Join([]string{word, word, word, word, word}, " ")
	rec := newRecorder()
	d := invoiceData(t, lineItems(1, func(int) string { return long }, sameHSN))

	require.NoError(t, RenderInvoice(rec, d))

	var nameY, subtotalY float64
	for _, tc := range rec.texts {
		switch tc.text {
		case long:
			nameY = tc.y
		case "Sub Total":
			subtotalY = tc.y
		}
	}
	require.NotZero(t, nameY)
	require.NotZero(t, subtotalY)

	rowTop := nameY - 4
	footerTop := subtotalY - 5
	assert.InDelta(t, 5*9*lineSpacing+8, footerTop-rowTop, 1e-6)
}

func TestRenderInvoice_RowTallerThanPage(t *testing.T) {
	huge := strings.TrimSpace(strings.Repeat("word ", 3000))
	rec := newRecorder()
	d := invoiceData(t, lineItems(1, func(int) string { return huge }, sameHSN))

	err := RenderInvoice(rec, d)
	assert.ErrorIs(t, err, domain.ErrLayoutOverflow)
}

func TestRenderInvoice_TaxAnalysisSpansPages(t *testing.T) {
	rec := newRecorder()
	d := invoiceData(t, lineItems(45, itemName, func(i int) string { return fmt.Sprintf("85%02d", i) }))
	require.Len(t, d.Tax.Groups, 45)

	require.NoError(t, RenderInvoice(rec, d))

	taxPages := rec.pagesWith("Total Tax")
	assert.Greater(t, len(taxPages), 1)
	for p, n := range taxPages {
		assert.Equal(t, 1, n, "tax table header once on page %d", p)
	}
	assert.Equal(t, 1, rec.count("Tax Amount (in words):"))
	assert.NotEmpty(t, rec.pagesWithPrefix("Tax Invoice (Tax Analysis)"))
	assertWithinBottomMargin(t, rec, invoiceMargin)
}

func TestRenderInvoice_InstallationRow(t *testing.T) {
	rec := newRecorder()
	d := invoiceData(t, lineItems(2, itemName, sameHSN))
	d.Invoice.Installation = &document.Installation{Amount: 1500}
	lines, err := d.Invoice.LineItems()
	require.NoError(t, err)
	res, err := gst.Aggregate(lines)
	require.NoError(t, err)
	d.Tax = res

	require.NoError(t, RenderInvoice(rec, d))
	assert.Equal(t, 1, rec.count(document.InstallationName))
	assert.Equal(t, 2, rec.count("998739"), "item row and tax analysis row")
}

func TestRenderInvoice_MissingTax(t *testing.T) {
	err := RenderInvoice(newRecorder(), &InvoiceData{})
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestRenderInvoice_NoItems(t *testing.T) {
	rec := newRecorder()
	d := invoiceData(t, lineItems(1, itemName, sameHSN))
	d.Invoice.Items = nil

	assert.ErrorIs(t, RenderInvoice(rec, d), domain.ErrInvalidData)
	assert.Zero(t, rec.PageCount())
}

func TestWriteInvoice_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	d := invoiceData(t, lineItems(3, itemName, sameHSN))

	require.NoError(t, WriteInvoice(&buf, d))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderInvoice_FpdfPaginates(t *testing.T) {
	c := NewCanvas("test")
	d := invoiceData(t, lineItems(80, itemName, sameHSN))

	require.NoError(t, RenderInvoice(c, d))
	assert.Greater(t, c.PageCount(), 1)

	var buf bytes.Buffer
	require.NoError(t, c.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
