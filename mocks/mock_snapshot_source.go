package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hawafiz/internal/domain"
)

type MockSnapshotSource struct {
	mock.Mock
}

func (m *MockSnapshotSource) FetchSnapshot(ctx context.Context, window domain.DateWindow) (*domain.Snapshot, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}
