package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hawafiz/internal/config"
	"hawafiz/internal/domain"
	"hawafiz/internal/service"
	"hawafiz/mocks"
)

func date(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

func newService(source *mocks.MockSnapshotSource) service.ReportService {
	return service.NewReportService(
		source,
		&config.QoyodConfig{WindowMonths: 4},
		&config.ReportConfig{CartonMarker: "كرتون"},
	)
}

func TestFetchWindow(t *testing.T) {
	w := service.FetchWindow(domain.Period{Year: 2024, Month: time.March}, 4)
	assert.Equal(t, date(2023, time.December, 1), w.From, "window reaches back across the year boundary")
	assert.Equal(t, date(2024, time.March, 31), w.To)

	w = service.FetchWindow(domain.Period{Year: 2024, Month: time.June}, 1)
	assert.Equal(t, date(2024, time.June, 1), w.From)
	assert.Equal(t, date(2024, time.June, 30), w.To)

	w = service.FetchWindow(domain.Period{Year: 2024, Month: time.June}, 0)
	assert.Equal(t, date(2024, time.June, 1), w.From, "window is at least the target month")
}

func TestMonthlyBonus_ComputesReport(t *testing.T) {
	period := domain.Period{Year: 2024, Month: time.March}
	snap := &domain.Snapshot{
		Products: []domain.Product{{ID: "p1", Name: "شاي"}},
		Invoices: []domain.Invoice{
			{
				Reference: "INV-1",
				Status:    domain.StatusPaid,
				IssueDate: date(2024, time.March, 5),
				Total:     115,
				Payments:  []domain.Payment{{Amount: 115, Date: date(2024, time.March, 5)}},
				LineItems: []domain.LineItem{
					{ProductID: "p1", Quantity: 2, UnitPrice: 50, TaxPercent: 15},
				},
			},
			{Reference: "INV-2", Status: domain.StatusDraft},
		},
		FetchedAt: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	}

	source := new(mocks.MockSnapshotSource)
	expectedWindow := service.FetchWindow(period, 4)
	source.On("FetchSnapshot", mock.Anything, expectedWindow).Return(snap, nil)

	report, err := newService(source).MonthlyBonus(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, period, report.Period)
	assert.Equal(t, expectedWindow, report.Window)
	require.Len(t, report.Lines, 1)
	require.Len(t, report.Excluded, 1)

	assert.Equal(t, 2, report.Summary.InvoiceCount)
	assert.Equal(t, 1, report.Summary.IncludedCount)
	assert.Equal(t, 1, report.Summary.ExcludedCount)
	assert.Equal(t, 1, report.Summary.LineCount)
	assert.Equal(t, 1, report.Summary.ProductCount)
	assert.InDelta(t, 115, report.Summary.TotalSales, 1e-9)
	assert.InDelta(t, 1.15, report.Summary.TotalBonus, 1e-9)
	assert.Equal(t, 0, report.Summary.DeferredLines)
	assert.Equal(t, snap.FetchedAt, report.FetchedAt)

	source.AssertExpectations(t)
}

func TestMonthlyBonus_SourceErrorPropagates(t *testing.T) {
	source := new(mocks.MockSnapshotSource)
	source.On("FetchSnapshot", mock.Anything, mock.Anything).Return(nil, domain.ErrSnapshotUnavailable)

	_, err := newService(source).MonthlyBonus(context.Background(), domain.Period{Year: 2024, Month: time.March})
	assert.True(t, errors.Is(err, domain.ErrSnapshotUnavailable))
}
