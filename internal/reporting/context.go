package reporting

import (
	"io"
	"log/slog"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reportconfig"
)

// IReportContext is what a report builder needs besides the summary itself.
type IReportContext interface {
	ReportConfiguration() reportconfig.IReportConfiguration
	FileSystem() filesystem.Filesystem
	Stdout() io.Writer
	Logger() *slog.Logger
}

// ReportContext is a concrete implementation of IReportContext.
type ReportContext struct {
	Cfg reportconfig.IReportConfiguration
	FS  filesystem.Filesystem
	Out io.Writer
	Log *slog.Logger
}

func (rc *ReportContext) ReportConfiguration() reportconfig.IReportConfiguration { return rc.Cfg }
func (rc *ReportContext) FileSystem() filesystem.Filesystem                      { return rc.FS }
func (rc *ReportContext) Stdout() io.Writer                                      { return rc.Out }
func (rc *ReportContext) Logger() *slog.Logger                                   { return rc.Log }

// NewReportContext creates a new ReportContext. Nil dependencies fall back to
// the host filesystem, a discarded stdout and the default logger.
func NewReportContext(config reportconfig.IReportConfiguration, fsys filesystem.Filesystem, out io.Writer, logger *slog.Logger) *ReportContext {
	if fsys == nil {
		fsys = filesystem.DefaultFS{}
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportContext{Cfg: config, FS: fsys, Out: out, Log: logger}
}
