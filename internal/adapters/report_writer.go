package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"brwatch/internal/ports"
	"brwatch/internal/types"
)

type ReportWriterAdapter struct{}

func NewReportWriterAdapter() ReportWriterAdapter {
	return ReportWriterAdapter{}
}

func (a ReportWriterAdapter) WriteReport(path string, report types.Report) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal report").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}

var _ ports.ReportWriterPort = ReportWriterAdapter{}
