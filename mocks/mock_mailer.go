package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizdocs/internal/port"
)

// MockMailer is a mock implementation of port.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendDocument(ctx context.Context, mail port.DocumentMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}
