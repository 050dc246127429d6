package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"bizdocs/internal/port"
)

type noopMailer struct {
	log *logrus.Logger
}

// NewNoopMailer creates a Mailer that only logs what would have been sent.
func NewNoopMailer(log *logrus.Logger) port.Mailer {
	return &noopMailer{log: log}
}

func (m *noopMailer) SendDocument(_ context.Context, mail port.DocumentMail) error {
	m.log.WithFields(logrus.Fields{
		"to":         mail.To,
		"subject":    mail.Subject,
		"attachment": mail.AttachmentName,
	}).Info("[NOOP EMAIL] document mail")
	return nil
}
