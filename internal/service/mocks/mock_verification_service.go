package mocks

import (
	"context"

	"docverify/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockVerificationService is a testify mock of service.VerificationService.
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Verify(ctx context.Context, content []byte, filename, contentType string) (*service.VerificationResult, error) {
	args := m.Called(ctx, content, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerificationResult), args.Error(1)
}
