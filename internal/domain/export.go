package domain

import "context"

// Export formats
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
)

// Export is a rendered report ready to be served as a download.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ExportUsecase interface {
	ExportJobs(ctx context.Context, filter JobFilter, format string) (*Export, error)
}
