package mocks

import (
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) List() ([]domain.FileEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileEntry), args.Error(1)
}

func (m *MockFileService) Path(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}
