package ses

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/port"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	return &sesv2.SendEmailOutput{}, f.err
}

func writeAttachment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice_INV-7.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSendDocument_RawMessage(t *testing.T) {
	fake := &fakeSES{}
	m := &sesMailer{client: fake, fromAddress: "billing@acme.example", fromName: "Acme Accounts"}
	pdf := "%PDF-1.3 " + strings.Repeat("x", 200)

	err := m.SendDocument(context.Background(), port.DocumentMail{
		To:             "buyer@example.com",
		Subject:        "Invoice from Acme",
		Body:           "Please find the attached file.",
		AttachmentName: "invoice_INV-7.pdf",
		AttachmentPath: writeAttachment(t, pdf),
	})
	require.NoError(t, err)
	require.NotNil(t, fake.input)
	assert.Equal(t, []string{"buyer@example.com"}, fake.input.Destination.ToAddresses)

	msg, err := mail.ReadMessage(bytes.NewReader(fake.input.Content.Raw.Data))
	require.NoError(t, err)
	assert.Equal(t, "Invoice from Acme", msg.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	r := multipart.NewReader(msg.Body, params["boundary"])
	text, err := r.NextPart()
	require.NoError(t, err)
	body, _ := io.ReadAll(text)
	assert.Contains(t, string(body), "Please find the attached file.")

	att, err := r.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "invoice_INV-7.pdf", att.FileName())
	assert.Contains(t, att.Header.Get("Content-Type"), "application/pdf")
}

func TestSendDocument_MissingAttachment(t *testing.T) {
	fake := &fakeSES{}
	m := &sesMailer{client: fake, fromAddress: "billing@acme.example"}

	err := m.SendDocument(context.Background(), port.DocumentMail{
		To:             "buyer@example.com",
		AttachmentPath: filepath.Join(t.TempDir(), "missing.pdf"),
	})
	assert.Error(t, err)
	assert.Nil(t, fake.input)
}

func TestSendDocument_SESError(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	m := &sesMailer{client: fake, fromAddress: "billing@acme.example"}

	err := m.SendDocument(context.Background(), port.DocumentMail{
		To:             "buyer@example.com",
		AttachmentPath: writeAttachment(t, "%PDF"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
