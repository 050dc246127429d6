package domain

// DocumentKind identifies which generator produced a document.
type DocumentKind string

const (
	DocumentKindInvoice   DocumentKind = "invoice"
	DocumentKindQuotation DocumentKind = "quotation"
)

// Title returns the heading printed on the document.
func (k DocumentKind) Title() string {
	switch k {
	case DocumentKindQuotation:
		return "Quotation"
	default:
		return "Tax Invoice"
	}
}

// UserRole is carried in the bearer token.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// ContentTypePDF is the MIME type of every generated document.
const ContentTypePDF = "application/pdf"

// Label is the short name used in mail subjects and file names.
func (k DocumentKind) Label() string {
	switch k {
	case DocumentKindQuotation:
		return "Quotation"
	default:
		return "Invoice"
	}
}

// IsValid reports whether k is a known kind.
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindInvoice || k == DocumentKindQuotation
}
