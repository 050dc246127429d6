// Command render turns an invoice or quotation request (JSON) into a PDF in
// the output directory without publishing, mailing or recording it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
	"bizdocs/internal/document"
	"bizdocs/internal/domain"
	"bizdocs/internal/gst"
	"bizdocs/internal/logger"
	"bizdocs/internal/pdf"
	"bizdocs/internal/service"
	"bizdocs/internal/storage/localdir"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	kind := flag.String("kind", string(domain.DocumentKindInvoice), "invoice or quotation")
	in := flag.String("in", "", "request JSON file (default stdin)")
	out := flag.String("out", cfg.Render.OutputDir, "output directory")
	logo := flag.String("logo", cfg.Render.LogoPath, "quotation logo (PNG or JPEG)")
	flag.Parse()

	path, err := run(domain.DocumentKind(*kind), *in, *out, *logo, log)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println(path)
}

func run(kind domain.DocumentKind, in, out, logo string, log *logrus.Logger) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown kind %q", kind)
	}

	var r io.Reader = os.Stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)

	var (
		number   string
		items    []gst.LineItem
		itemsErr error
		write    func(tax *gst.Result) func(io.Writer) error
	)
	switch kind {
	case domain.DocumentKindQuotation:
		var req document.QuotationRequest
		if err := dec.Decode(&req); err != nil {
			return "", fmt.Errorf("decoding request: %w", err)
		}
		number = req.Quotation.Number
		items, itemsErr = req.Quotation.LineItems()
		write = func(tax *gst.Result) func(io.Writer) error {
			data := &pdf.QuotationData{Company: req.Company, Customer: req.Customer, Quotation: req.Quotation, Tax: tax, LogoPath: logo}
			return func(w io.Writer) error { return pdf.WriteQuotation(w, data) }
		}
	default:
		var req document.InvoiceRequest
		if err := dec.Decode(&req); err != nil {
			return "", fmt.Errorf("decoding request: %w", err)
		}
		number = req.Invoice.Number
		items, itemsErr = req.Invoice.LineItems()
		write = func(tax *gst.Result) func(io.Writer) error {
			data := &pdf.InvoiceData{Company: req.Company, Customer: req.Customer, Invoice: req.Invoice, Tax: tax}
			return func(w io.Writer) error { return pdf.WriteInvoice(w, data) }
		}
	}

	if itemsErr != nil {
		return "", itemsErr
	}
	tax, err := gst.Aggregate(items)
	if err != nil {
		return "", err
	}
	for _, code := range tax.RateConflicts {
		log.WithField("hsn", code).Warn("items share an HSN code with different tax rates, first rate applied")
	}

	name, err := service.FileName(kind, number)
	if err != nil {
		return "", err
	}
	path, size, err := localdir.WriteFile(out, name, write(tax))
	if err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{"bytes": size, "grand_total": tax.Totals.GrandTotal}).Infof("rendered %s", path)
	return path, nil
}
