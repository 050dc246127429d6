// Package gst computes GST tax splits for document line items and renders
// amounts in words using the Indian numbering system.
package gst

import (
	"fmt"
	"math"

	"bizdocs/internal/domain"
)

// LineItem is one billable row as supplied by the caller.
// Quantity and UnitPrice are required; a nil value is reported as invalid data.
type LineItem struct {
	Name            string   `json:"name" binding:"required"`
	HSNCode         string   `json:"hsn"`
	Quantity        *float64 `json:"qty" binding:"required"`
	UnitPrice       *float64 `json:"unitPrice" binding:"required"`
	DiscountPercent float64  `json:"discount"`
	TaxRatePercent  float64  `json:"taxRate"`
}

// Item is a LineItem enriched with its computed taxable amount.
type Item struct {
	Name            string  `json:"name"`
	HSNCode         string  `json:"hsn"`
	Quantity        float64 `json:"qty"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount"`
	TaxRatePercent  float64 `json:"tax_rate"`
	TaxableAmount   float64 `json:"taxable_amount"`
}

// Group accumulates the taxable value of every item sharing an HSN/SAC code.
type Group struct {
	HSNCode        string  `json:"hsn"`
	TaxRatePercent float64 `json:"tax_rate"`
	TaxableValue   float64 `json:"taxable_value"`
	CentralTax     float64 `json:"cgst_amount"`
	StateTax       float64 `json:"sgst_amount"`
	TotalTax       float64 `json:"total_tax"`
}

// HalfRate is the CGST (or SGST) rate applied to the group.
func (g Group) HalfRate() float64 {
	return g.TaxRatePercent / 2
}

// Totals are the document-level sums.
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	TotalCentralTax float64 `json:"total_cgst"`
	TotalStateTax   float64 `json:"total_sgst"`
	TotalTax        float64 `json:"total_tax"`
	GrandTotal      float64 `json:"grand_total"`
	GrandTotalWords string  `json:"grand_total_words"`
	TaxWords        string  `json:"tax_words"`
}

// Result is the output of Aggregate.
type Result struct {
	Items  []Item  `json:"items"`
	Groups []Group `json:"groups"`
	Totals Totals  `json:"totals"`

	// RateConflicts lists HSN codes that appeared with more than one rate.
	// The first rate seen for a code is the one applied.
	RateConflicts []string `json:"rate_conflicts,omitempty"`
}

// Aggregate computes per-item taxable amounts, groups items by HSN/SAC code and
// splits each group's tax evenly between central and state components.
//
// Groups are returned in order of first appearance. The input slice is not modified.
func Aggregate(items []LineItem) (*Result, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("items must be a non-empty list: %w", domain.ErrInvalidData)
	}

	res := &Result{Items: make([]Item, 0, len(items))}
	index := make(map[string]int)
	conflicted := make(map[string]bool)

	for i := range items {
		item, err := enrich(i, &items[i])
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, item)
		res.Totals.Subtotal += item.TaxableAmount

		gi, ok := index[item.HSNCode]
		if !ok {
			index[item.HSNCode] = len(res.Groups)
			res.Groups = append(res.Groups, Group{
				HSNCode:        item.HSNCode,
				TaxRatePercent: item.TaxRatePercent,
			})
			gi = len(res.Groups) - 1
		} else if res.Groups[gi].TaxRatePercent != item.TaxRatePercent && !conflicted[item.HSNCode] {
			conflicted[item.HSNCode] = true
			res.RateConflicts = append(res.RateConflicts, item.HSNCode)
		}
		res.Groups[gi].TaxableValue += item.TaxableAmount
	}

	for i := range res.Groups {
		g := &res.Groups[i]
		g.TotalTax = g.TaxableValue * g.TaxRatePercent / 100
		g.CentralTax = g.TotalTax / 2
		g.StateTax = g.TotalTax / 2

		res.Totals.TotalCentralTax += g.CentralTax
		res.Totals.TotalStateTax += g.StateTax
		res.Totals.TotalTax += g.TotalTax
	}
	res.Totals.GrandTotal = res.Totals.Subtotal + res.Totals.TotalTax

	var err error
	if res.Totals.GrandTotalWords, err = ToWords(res.Totals.GrandTotal); err != nil {
		return nil, fmt.Errorf("grand total in words: %w", err)
	}
	if res.Totals.TaxWords, err = ToWords(res.Totals.TotalTax); err != nil {
		return nil, fmt.Errorf("tax amount in words: %w", err)
	}
	return res, nil
}

func enrich(i int, li *LineItem) (Item, error) {
	if li.Quantity == nil {
		return Item{}, fmt.Errorf("items[%d].qty is required: %w", i, domain.ErrInvalidData)
	}
	if li.UnitPrice == nil {
		return Item{}, fmt.Errorf("items[%d].unitPrice is required: %w", i, domain.ErrInvalidData)
	}
	qty, price := *li.Quantity, *li.UnitPrice
	switch {
	case !finite(qty) || qty < 0:
		return Item{}, fmt.Errorf("items[%d].qty must be a non-negative number: %w", i, domain.ErrInvalidData)
	case !finite(price) || price < 0:
		return Item{}, fmt.Errorf("items[%d].unitPrice must be a non-negative number: %w", i, domain.ErrInvalidData)
	case !finite(li.DiscountPercent) || li.DiscountPercent < 0 || li.DiscountPercent > 100:
		return Item{}, fmt.Errorf("items[%d].discount must be within [0,100]: %w", i, domain.ErrInvalidData)
	case !finite(li.TaxRatePercent) || li.TaxRatePercent < 0:
		return Item{}, fmt.Errorf("items[%d].taxRate must be a non-negative number: %w", i, domain.ErrInvalidData)
	}

	gross := qty * price
	return Item{
		Name:            li.Name,
		HSNCode:         li.HSNCode,
		Quantity:        qty,
		UnitPrice:       price,
		DiscountPercent: li.DiscountPercent,
		TaxRatePercent:  li.TaxRatePercent,
		TaxableAmount:   gross - gross*li.DiscountPercent/100,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Float returns a pointer to v, for building LineItems in code.
func Float(v float64) *float64 {
	return &v
}
