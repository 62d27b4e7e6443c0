package ports

import "brwatch/internal/types"

// ReportWriterPort persists a snapshot report to disk.
type ReportWriterPort interface {
	WriteReport(path string, report types.Report) error
}
