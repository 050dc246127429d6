// Package document holds the request records rendered into invoices and quotations.
package document

import (
	"fmt"

	"bizdocs/internal/domain"
	"bizdocs/internal/gst"
)

// Installation line defaults.
const (
	InstallationName    = "Installation & Commissioning Charges"
	InstallationHSN     = "998739"
	InstallationTaxRate = 18.0
)

// BankDetails identifies the account printed in the invoice footer.
type BankDetails struct {
	BankName  string `json:"bankName"`
	AccountNo string `json:"accountNo"`
	IFSC      string `json:"ifsc" binding:"omitempty,ifsc"`
}

// Company is the issuer of a document.
type Company struct {
	Name        string      `json:"name" binding:"required"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	GSTIN       string      `json:"gstin" binding:"omitempty,gstin"`
	Email       string      `json:"email" binding:"omitempty,email"`
	Phone       string      `json:"phone"`
	BankDetails BankDetails `json:"bankDetails"`
}

// Party is the customer a document is addressed to.
type Party struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin" binding:"omitempty,gstin"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// Installation is an optional installation charge billed as an extra line.
type Installation struct {
	Amount  float64  `json:"amount"`
	HSN     string   `json:"hsn"`
	TaxRate *float64 `json:"taxRate"`
}

// Invoice is the body of a tax invoice.
type Invoice struct {
	Number       string         `json:"number" binding:"required"`
	Date         string         `json:"date" binding:"required"`
	Declaration  string         `json:"declaration"`
	Items        []gst.LineItem `json:"items" binding:"required,min=1,dive"`
	Installation *Installation  `json:"installation"`
}

// LineItems returns the invoice items with the installation line appended when due.
// The installation line alone never makes a billable invoice.
func (inv *Invoice) LineItems() ([]gst.LineItem, error) {
	if len(inv.Items) == 0 {
		return nil, fmt.Errorf("invoice.items: at least one item is required: %w", domain.ErrInvalidData)
	}
	return withInstallation(inv.Items, inv.Installation), nil
}

// Quotation is the body of a price quotation.
type Quotation struct {
	Number       string         `json:"number" binding:"required"`
	Date         string         `json:"date" binding:"required"`
	Intro        string         `json:"intro"`
	Items        []gst.LineItem `json:"items" binding:"required,min=1,dive"`
	Installation *Installation  `json:"installation"`
	Terms        []string       `json:"terms"`
}

// LineItems returns the quotation items with the installation line appended when due.
func (q *Quotation) LineItems() ([]gst.LineItem, error) {
	if len(q.Items) == 0 {
		return nil, fmt.Errorf("quotation.items: at least one item is required: %w", domain.ErrInvalidData)
	}
	return withInstallation(q.Items, q.Installation), nil
}

// InvoiceRequest is the payload for generating an invoice.
type InvoiceRequest struct {
	Company   Company `json:"company" binding:"required"`
	Customer  Party   `json:"customer" binding:"required"`
	Invoice   Invoice `json:"invoice" binding:"required"`
	SendEmail bool    `json:"send_email"`
}

// QuotationRequest is the payload for generating a quotation.
type QuotationRequest struct {
	Company   Company   `json:"company" binding:"required"`
	Customer  Party     `json:"customer" binding:"required"`
	Quotation Quotation `json:"quotation" binding:"required"`
	SendEmail bool      `json:"send_email"`
}

// withInstallation never modifies items; a new slice is returned when a line is added.
func withInstallation(items []gst.LineItem, inst *Installation) []gst.LineItem {
	if inst == nil || inst.Amount <= 0 {
		return items
	}
	for i := range items {
		if items[i].Name == InstallationName {
			return items
		}
	}

	hsn := inst.HSN
	if hsn == "" {
		hsn = InstallationHSN
	}
	rate := InstallationTaxRate
	if inst.TaxRate != nil {
		rate = *inst.TaxRate
	}

	out := make([]gst.LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, gst.LineItem{
		Name:           InstallationName,
		HSNCode:        hsn,
		Quantity:       gst.Float(1),
		UnitPrice:      gst.Float(inst.Amount),
		TaxRatePercent: rate,
	})
}
