package noop

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/port"
)

func TestSendDocument_Logs(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	err := NewNoopMailer(log).SendDocument(context.Background(), port.DocumentMail{
		To:             "buyer@example.com",
		Subject:        "Quotation from Acme",
		AttachmentName: "quotation_Q1.pdf",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "buyer@example.com")
	assert.Contains(t, buf.String(), "quotation_Q1.pdf")
}
