package app

import (
	"time"

	"brwatch/internal/adapters"
	"brwatch/internal/ports"
)

// Service wires the application operations to their adapters. The
// probe and watcher are factories because they bind to the resolved
// build directory, which is only known per load.
type Service struct {
	PackageInfo ports.PackageInfoPort
	NewProbe    func(buildDir string) ports.StampProbePort
	NewWatcher  func() ports.StampWatcherPort
	Reports     ports.ReportWriterPort
	Clock       func() time.Time
}

func NewService() Service {
	return Service{
		PackageInfo: adapters.NewShowInfoAdapter(),
		NewProbe: func(buildDir string) ports.StampProbePort {
			return adapters.NewStampProbeAdapter(buildDir)
		},
		NewWatcher: func() ports.StampWatcherPort {
			return adapters.NewStampWatchAdapter()
		},
		Reports: adapters.NewReportWriterAdapter(),
		Clock:   time.Now,
	}
}
