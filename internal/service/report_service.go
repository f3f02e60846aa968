package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"hawafiz/internal/config"
	"hawafiz/internal/domain"
	"hawafiz/internal/engine"
	"hawafiz/internal/port"
)

// ReportService computes monthly bonus reports from fresh Qoyod snapshots.
type ReportService interface {
	MonthlyBonus(ctx context.Context, period domain.Period) (*domain.BonusReport, error)
}

type reportService struct {
	source       port.SnapshotSource
	windowMonths int
	cartonMarker string
}

// NewReportService creates a ReportService backed by the given source.
func NewReportService(source port.SnapshotSource, qcfg *config.QoyodConfig, rcfg *config.ReportConfig) ReportService {
	return &reportService{
		source:       source,
		windowMonths: qcfg.WindowMonths,
		cartonMarker: rcfg.CartonMarker,
	}
}

// MonthlyBonus fetches a snapshot covering the target month plus enough
// earlier months to catch old invoices settled in the target month, runs the
// engine, and assembles the report.
func (s *reportService) MonthlyBonus(ctx context.Context, period domain.Period) (*domain.BonusReport, error) {
	window := FetchWindow(period, s.windowMonths)

	snap, err := s.source.FetchSnapshot(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot for %s: %w", period, err)
	}

	res := engine.Compute(snap, period, engine.Options{CartonMarker: s.cartonMarker})

	report := &domain.BonusReport{
		Period:    period,
		Window:    window,
		Lines:     res.Lines,
		Excluded:  res.Excluded,
		Summary:   summarize(snap, &res),
		FetchedAt: snap.FetchedAt,
	}

	log.Printf("service.ReportService: %s: %d bonus lines, %d excluded of %d invoices",
		period, len(report.Lines), len(report.Excluded), report.Summary.InvoiceCount)

	return report, nil
}

// FetchWindow is the issue-date range fetched for a target month: the first
// day of (months-1) months before the period through the period's last day.
// Deferred invoices issued in an earlier month can still count toward the
// target month, so the window reaches back past it.
func FetchWindow(period domain.Period, months int) domain.DateWindow {
	if months < 1 {
		months = 1
	}
	start := time.Date(period.Year, period.Month-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
	return domain.DateWindow{
		From: domain.Date{Year: start.Year(), Month: start.Month(), Day: start.Day()},
		To:   period.End(),
	}
}

func summarize(snap *domain.Snapshot, res *engine.Result) domain.ReportSummary {
	sum := domain.ReportSummary{
		InvoiceCount:    len(snap.Invoices),
		IncludedCount:   len(snap.Invoices) - len(res.Excluded),
		ExcludedCount:   len(res.Excluded),
		LineCount:       len(res.Lines),
		ProductCount:    len(snap.Products),
		CreditNoteCount: len(snap.CreditNotes),
	}
	for i := range res.Lines {
		sum.TotalSales += res.Lines[i].TotalSales
		sum.TotalBonus += res.Lines[i].BonusAmount
		if res.Lines[i].Deferred {
			sum.DeferredLines++
		}
	}
	return sum
}
