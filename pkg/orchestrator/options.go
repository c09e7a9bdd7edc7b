package orchestrator

import (
	"time"

	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/naming"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. Every run logs with its own id, asset and path fields.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithCacheDir sets the directory every file cache node writes to.
func WithCacheDir(dir string) Option {
	return func(o *Orchestrator) {
		o.cacheDir = dir
	}
}

// WithOpener sets how the export folder is shown after a run.
func WithOpener(opener naming.FolderOpener) Option {
	return func(o *Orchestrator) {
		o.opener = opener
	}
}

// WithClock sets the clock used to time runs.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithBuildOptions sets a factory called once per run for the build options observing it.
func WithBuildOptions(factory func(req Request) []model.BuildOption) Option {
	return func(o *Orchestrator) {
		o.buildOptions = factory
	}
}
