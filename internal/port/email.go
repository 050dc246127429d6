package port

import "context"

// DocumentMail is a plain-text message carrying one file attachment.
type DocumentMail struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	AttachmentPath string
}

// Mailer defines the contract for emailing generated documents.
type Mailer interface {
	SendDocument(ctx context.Context, mail DocumentMail) error
}
