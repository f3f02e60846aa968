package port

import (
	"io"

	"hawafiz/internal/domain"
)

// ReportExporter renders a bonus report to a download format. The engine
// itself owns no file format; exporters are the presentation layer.
type ReportExporter interface {
	ContentType() string
	FileExt() string
	Write(w io.Writer, report *domain.BonusReport) error
}
