package mocks

import (
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
)

// MockFileLister is a mock implementation of port.FileLister.
type MockFileLister struct {
	mock.Mock
}

func (m *MockFileLister) List(dir string) ([]domain.FileEntry, error) {
	args := m.Called(dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileEntry), args.Error(1)
}
