package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hawafiz/internal/domain"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) MonthlyBonus(ctx context.Context, period domain.Period) (*domain.BonusReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BonusReport), args.Error(1)
}
