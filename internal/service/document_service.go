package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
	"bizdocs/internal/document"
	"bizdocs/internal/domain"
	"bizdocs/internal/gst"
	"bizdocs/internal/pdf"
	"bizdocs/internal/port"
	"bizdocs/internal/storage/localdir"
	"bizdocs/internal/xlsxexport"
)

const mailBody = "Please find the attached file."

// GenerationResult describes a rendered, published and recorded document.
type GenerationResult struct {
	Record *domain.DocumentRecord `json:"record"`
	Totals gst.Totals             `json:"totals"`
	Path   string                 `json:"-"`
}

// TaxExport is a rendered tax-analysis workbook.
type TaxExport struct {
	FileName string
	Data     []byte
}

// DocumentService defines the document generation contract.
type DocumentService interface {
	GenerateInvoice(ctx context.Context, req *document.InvoiceRequest, createdBy string) (*GenerationResult, error)
	GenerateQuotation(ctx context.Context, req *document.QuotationRequest, createdBy string) (*GenerationResult, error)
	ExportTaxAnalysis(ctx context.Context, req *document.InvoiceRequest) (*TaxExport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	List(ctx context.Context, kind domain.DocumentKind, offset, limit int) ([]domain.DocumentRecord, int, error)
}

type documentService struct {
	repo       port.DocumentRepository
	storage    port.ObjectStorage
	mailer     port.Mailer
	storageCfg config.StorageConfig
	renderCfg  config.RenderConfig
	log        *logrus.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	repo port.DocumentRepository,
	storage port.ObjectStorage,
	mailer port.Mailer,
	storageCfg config.StorageConfig,
	renderCfg config.RenderConfig,
	log *logrus.Logger,
) DocumentService {
	return &documentService{
		repo:       repo,
		storage:    storage,
		mailer:     mailer,
		storageCfg: storageCfg,
		renderCfg:  renderCfg,
		log:        log,
	}
}

// job is one document on its way through render, publish, mail and record.
type job struct {
	op        string
	kind      domain.DocumentKind
	number    string
	company   *document.Company
	customer  *document.Party
	sendEmail bool
	tax       *gst.Result
	write     func(io.Writer) error
}

func (s *documentService) GenerateInvoice(ctx context.Context, req *document.InvoiceRequest, createdBy string) (*GenerationResult, error) {
	const op = "documentService.GenerateInvoice"
	items, err := req.Invoice.LineItems()
	if err != nil {
		return nil, err
	}
	tax, err := s.aggregate(op, req.Invoice.Number, items)
	if err != nil {
		return nil, err
	}
	data := &pdf.InvoiceData{
		Company:  req.Company,
		Customer: req.Customer,
		Invoice:  req.Invoice,
		Tax:      tax,
	}
	return s.generate(ctx, &job{
		op:        op,
		kind:      domain.DocumentKindInvoice,
		number:    req.Invoice.Number,
		company:   &req.Company,
		customer:  &req.Customer,
		sendEmail: req.SendEmail,
		tax:       tax,
		write:     func(w io.Writer) error { return pdf.WriteInvoice(w, data) },
	}, createdBy)
}

func (s *documentService) GenerateQuotation(ctx context.Context, req *document.QuotationRequest, createdBy string) (*GenerationResult, error) {
	const op = "documentService.GenerateQuotation"
	items, err := req.Quotation.LineItems()
	if err != nil {
		return nil, err
	}
	tax, err := s.aggregate(op, req.Quotation.Number, items)
	if err != nil {
		return nil, err
	}
	data := &pdf.QuotationData{
		Company:   req.Company,
		Customer:  req.Customer,
		Quotation: req.Quotation,
		Tax:       tax,
		LogoPath:  s.renderCfg.LogoPath,
	}
	return s.generate(ctx, &job{
		op:        op,
		kind:      domain.DocumentKindQuotation,
		number:    req.Quotation.Number,
		company:   &req.Company,
		customer:  &req.Customer,
		sendEmail: req.SendEmail,
		tax:       tax,
		write:     func(w io.Writer) error { return pdf.WriteQuotation(w, data) },
	}, createdBy)
}

func (s *documentService) ExportTaxAnalysis(_ context.Context, req *document.InvoiceRequest) (*TaxExport, error) {
	const op = "documentService.ExportTaxAnalysis"
	items, err := req.Invoice.LineItems()
	if err != nil {
		return nil, err
	}
	tax, err := s.aggregate(op, req.Invoice.Number, items)
	if err != nil {
		return nil, err
	}

	w, err := xlsxexport.NewWriter()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer w.Close()

	if err := w.WriteResult(tax); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrOutputFailed, err)
	}
	return &TaxExport{
		FileName: xlsxexport.BuildFilename(req.Invoice.Number),
		Data:     buf.Bytes(),
	}, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, kind domain.DocumentKind, offset, limit int) ([]domain.DocumentRecord, int, error) {
	if kind != "" && !kind.IsValid() {
		return nil, 0, fmt.Errorf("unknown document kind %q: %w", kind, domain.ErrInvalidData)
	}
	return s.repo.List(ctx, kind, offset, limit)
}

// aggregate runs the tax aggregation and reports codes billed at more than one rate.
func (s *documentService) aggregate(op, number string, items []gst.LineItem) (*gst.Result, error) {
	tax, err := gst.Aggregate(items)
	if err != nil {
		return nil, err
	}
	for _, code := range tax.RateConflicts {
		s.log.WithFields(logrus.Fields{"number": number, "hsn": code}).
			Warnf("%s: items share an HSN code with different tax rates, first rate applied", op)
	}
	return tax, nil
}

func (s *documentService) generate(ctx context.Context, j *job, createdBy string) (*GenerationResult, error) {
	name, err := FileName(j.kind, j.number)
	if err != nil {
		return nil, err
	}

	filePath, size, err := localdir.WriteFile(s.renderCfg.OutputDir, name, j.write)
	if err != nil {
		s.log.WithError(err).Errorf("%s: rendering %s failed", j.op, name)
		return nil, fmt.Errorf("%s: %w", j.op, err)
	}
	s.log.Infof("%s: wrote %s (%d bytes)", j.op, filePath, size)

	key := s.storageKey(name)
	publicURL, err := s.publish(ctx, j.op, filePath, key, size)
	if err != nil {
		return nil, err
	}

	emailed := false
	if j.sendEmail {
		if j.customer.Email == "" {
			s.log.Warnf("%s: send_email requested but customer %q has no email address", j.op, j.customer.Name)
		} else {
			mail := port.DocumentMail{
				To:             j.customer.Email,
				Subject:        fmt.Sprintf("%s from %s", j.kind.Label(), j.company.Name),
				Body:           mailBody,
				AttachmentName: name,
				AttachmentPath: filePath,
			}
			if err := s.mailer.SendDocument(ctx, mail); err != nil {
				s.log.WithError(err).Errorf("%s: mailing %s to %s failed", j.op, name, j.customer.Email)
				return nil, fmt.Errorf("%s: %w: %w", j.op, domain.ErrMailFailed, err)
			}
			emailed = true
		}
	}

	rec := &domain.DocumentRecord{
		Kind:          j.kind,
		Number:        j.number,
		CustomerName:  j.customer.Name,
		CustomerEmail: j.customer.Email,
		FileName:      name,
		FileSize:      size,
		StorageKey:    key,
		PublicURL:     publicURL,
		GrandTotal:    j.tax.Totals.GrandTotal,
		Emailed:       emailed,
		CreatedBy:     createdBy,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.WithError(err).Errorf("%s: recording %s failed", j.op, name)
		return nil, fmt.Errorf("%s: recording document: %w", j.op, err)
	}

	return &GenerationResult{Record: rec, Totals: j.tax.Totals, Path: filePath}, nil
}

// publish uploads the rendered file and grants public read access to it.
func (s *documentService) publish(ctx context.Context, op, filePath, key string, size int64) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%s: reopening %s: %w: %w", op, filePath, domain.ErrOutputFailed, err)
	}
	defer f.Close()

	start := time.Now()
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.storageCfg.Bucket,
		Key:         key,
		Body:        f,
		ContentType: domain.ContentTypePDF,
		Size:        size,
	})
	if err != nil {
		s.log.WithError(err).Errorf("%s: upload of %s failed", op, key)
		return "", fmt.Errorf("%s: %w: %w", op, domain.ErrUploadFailed, err)
	}

	publicURL, err := s.storage.MakePublic(ctx, s.storageCfg.Bucket, key)
	if err != nil {
		s.log.WithError(err).Errorf("%s: making %s public failed", op, key)
		return "", fmt.Errorf("%s: %w: %w", op, domain.ErrUploadFailed, err)
	}
	s.log.Infof("%s: published %s in %s", op, publicURL, time.Since(start).Round(time.Millisecond))
	return publicURL, nil
}

func (s *documentService) storageKey(name string) string {
	if s.storageCfg.Prefix == "" {
		return name
	}
	return path.Join(s.storageCfg.Prefix, name)
}

// FileName is the output file name for a document: <kind>_<number>.pdf, with
// the number reduced to letters, digits, hyphens and underscores.
func FileName(kind domain.DocumentKind, number string) (string, error) {
	safe := xlsxexport.SanitizeFilename(number)
	if safe == "" {
		return "", fmt.Errorf("document number %q has no usable characters: %w", number, domain.ErrInvalidData)
	}
	return fmt.Sprintf("%s_%s.pdf", kind, safe), nil
}
