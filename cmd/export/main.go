// Command export computes one monthly bonus report and writes it to disk.
// Usage: go run ./cmd/export -month 2024-03 -format xlsx -out bonus.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hawafiz/internal/config"
	"hawafiz/internal/domain"
	"hawafiz/internal/export"
	"hawafiz/internal/port"
	"hawafiz/internal/qoyod"
	"hawafiz/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	monthFlag := flag.String("month", "", "target month as YYYY-MM (default: current month)")
	formatFlag := flag.String("format", "csv", "output format: csv or xlsx")
	outFlag := flag.String("out", "", "output path (default: bonus_<month>.<ext>)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	period := domain.Period{Year: time.Now().UTC().Year(), Month: time.Now().UTC().Month()}
	if *monthFlag != "" {
		period, err = domain.ParsePeriod(*monthFlag)
		if err != nil {
			return fmt.Errorf("parsing -month: %w", err)
		}
	}

	exporters := map[string]port.ReportExporter{
		"csv":  export.NewCSVExporter(),
		"xlsx": export.NewExcelExporter(),
	}
	exporter, ok := exporters[*formatFlag]
	if !ok {
		return fmt.Errorf("parsing -format: %w", domain.ErrUnsupportedFormat)
	}

	client := qoyod.NewClient(&cfg.Qoyod)
	reportSvc := service.NewReportService(client, &cfg.Qoyod, &cfg.Report)

	report, err := reportSvc.MonthlyBonus(context.Background(), period)
	if err != nil {
		return fmt.Errorf("computing report for %s: %w", period, err)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = fmt.Sprintf("bonus_%s.%s", period, exporter.FileExt())
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := exporter.Write(out, report); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	log.Printf("wrote %s: %d bonus lines, %d excluded invoices", outPath, len(report.Lines), len(report.Excluded))
	return nil
}
