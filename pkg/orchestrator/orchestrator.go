// Package orchestrator runs the remesh and UV builds for one asset at a time and owns the networks they create.
//
// An Orchestrator moves through an explicit state machine:
//
//	Idle --Run--> Built --Clear--> Cleared --Run--> Built
//
// Run is accepted from Idle, Built and Cleared. Every state moves to Closed on Close, after which nothing is
// accepted. Operations that do not fit the current state fail with ErrInvalidTransition or ErrNoRun instead of
// relying on call order.
package orchestrator

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/logging"
	"github.com/askiada/go-uvtool/pkg/naming"
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// Request is the input of a run.
type Request struct {
	ImportPath string
	// ExportPath is the directory the FBX export is written to.
	ExportPath      string
	ApplyReduction  bool
	OpenFolderAfter bool
}

// RunRecord describes a successful run. Node paths are weak references: they resolve to nothing once cleared.
type RunRecord struct {
	ID         uuid.UUID
	Request    Request
	AssetName  string
	ExportFile string
	Elapsed    time.Duration

	RemeshContainer host.Path
	UVContainer     host.Path

	RemeshTerminal host.Path
	// RemeshCache is empty when caching was skipped.
	RemeshCache host.Path
	UVTerminal  host.Path
	UVCache     host.Path
	Export      host.Path
	Visualizer  host.Path
}

// Orchestrator builds the networks of a run inside a host.
type Orchestrator struct {
	mu           sync.Mutex
	host         host.Host
	logger       *zap.Logger
	cacheDir     string
	opener       naming.FolderOpener
	now          func() time.Time
	buildOptions func(req Request) []model.BuildOption

	state      State
	record     *RunRecord
	containers []host.Path
}

// New creates an Idle orchestrator writing to h.
func New(h host.Host, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		host:     h,
		cacheDir: filepath.Join(os.TempDir(), naming.CacheDirName),
		opener:   naming.NewSystemOpener(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	o.logger = logging.OrNop(o.logger)

	return o
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Record returns a copy of the last Run Record, or nil before the first successful run.
func (o *Orchestrator) Record() *RunRecord {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.record == nil {
		return nil
	}

	record := *o.record

	return &record
}

func nodePath(node *model.NodeInfo) host.Path {
	if node == nil {
		return ""
	}

	return node.Path
}

// Run builds the remesh network then the UV network reading it, each in a fresh container, and moves to Built.
// Missing paths fail with ErrPreconditionUnmet before anything is created. A host failure aborts the run; the
// containers it created are still owned by the orchestrator and removed by the next Clear.
func (o *Orchestrator) Run(req Request) (*RunRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == Closed {
		return nil, transition(o.state, Built)
	}

	if req.ImportPath == "" || req.ExportPath == "" {
		o.logger.Error("Run refused", zap.Error(ErrPreconditionUnmet),
			zap.String("path", req.ImportPath), zap.String("export", req.ExportPath))

		return nil, ErrPreconditionUnmet
	}

	asset := naming.AssetName(req.ImportPath)
	if asset == "" {
		err := errors.Wrapf(ErrPreconditionUnmet, "import path %q has no file name", req.ImportPath)
		o.logger.Error("Run refused", zap.Error(err), zap.String("path", req.ImportPath))

		return nil, err
	}

	record := &RunRecord{
		ID:        uuid.New(),
		Request:   req,
		AssetName: asset,
	}
	logger := o.logger.With(
		zap.String("run", record.ID.String()),
		zap.String("asset", record.AssetName),
		zap.String("path", req.ImportPath),
	)
	logger.Info("Setting up nodes", zap.Bool("reduce", req.ApplyReduction))

	start := o.now()

	err := o.build(logger, record)
	if err != nil {
		logger.Error("Run failed", zap.Error(err))

		return nil, err
	}

	record.Elapsed = o.now().Sub(start)
	logger.Info("Export completed",
		zap.String("elapsed", formatSeconds(record.Elapsed)),
		zap.String("export", record.ExportFile),
	)

	if req.OpenFolderAfter {
		err := o.opener.Open(req.ExportPath)
		if err != nil {
			logger.Warn("Unable to open export folder", zap.Error(err), zap.String("export", req.ExportPath))
		}
	}

	o.record = record
	o.state = Built

	copied := *record

	return &copied, nil
}

func (o *Orchestrator) build(logger *zap.Logger, record *RunRecord) error {
	var opts []model.BuildOption
	if o.buildOptions != nil {
		opts = o.buildOptions(record.Request)
	}

	b, err := pipeline.New(o.host, logger, opts...)
	if err != nil {
		return errors.Wrap(err, "unable to create builder")
	}

	record.RemeshContainer, err = o.addContainer(b, record.AssetName+"_remesh")
	if err != nil {
		return err
	}

	record.UVContainer, err = o.addContainer(b, record.AssetName+"_uv")
	if err != nil {
		return err
	}

	remesh, err := pipeline.BuildRemesh(b, pipeline.RemeshRequest{
		Container:  record.RemeshContainer,
		SourceFile: record.Request.ImportPath,
		Asset:      record.AssetName,
		Reduce:     record.Request.ApplyReduction,
		CacheDir:   o.cacheDir,
	})
	if err != nil {
		return errors.Wrap(err, "unable to build remesh network")
	}

	record.RemeshTerminal = remesh.Terminal.Path
	record.RemeshCache = nodePath(remesh.Cache)

	uv, err := pipeline.BuildUV(b, pipeline.UVRequest{
		Container: record.UVContainer,
		Source:    remesh.Terminal,
		Asset:     record.AssetName,
		ExportDir: record.Request.ExportPath,
		CacheDir:  o.cacheDir,
	})
	if err != nil {
		return errors.Wrap(err, "unable to build UV network")
	}

	record.UVTerminal = uv.Terminal.Path
	record.UVCache = nodePath(uv.Cache)
	record.Export = uv.Export.Path
	record.Visualizer = uv.Visualizer.Path
	record.ExportFile = uv.ExportFile

	return errors.Wrap(b.Finish(), "unable to finish build")
}

func (o *Orchestrator) addContainer(b *pipeline.Builder, name string) (host.Path, error) {
	container, err := pipeline.AddContainer(b, name)
	if err != nil {
		return "", err
	}

	o.containers = append(o.containers, container)

	return container, nil
}

// Clear destroys every container created since the last Clear, with all their nodes, and moves to Cleared.
// The Run Record is kept. Clearing twice is a no-op; clearing before anything was created is refused.
func (o *Orchestrator) Clear() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case o.state == Closed:
		return transition(o.state, Cleared)
	case o.state == Cleared && len(o.containers) == 0:
		return nil
	case o.state == Idle && len(o.containers) == 0:
		return transition(o.state, Cleared)
	}

	o.logger.Info("Clearing nodes", zap.Int("containers", len(o.containers)))

	for len(o.containers) > 0 {
		container := o.containers[0]

		err := o.host.Destroy(container)
		if err != nil && !errors.Is(err, host.ErrNodeNotFound) {
			o.logger.Error("Unable to clear container", zap.Error(err), zap.String("path", string(container)))

			return errors.Wrapf(err, "unable to destroy %s", container)
		}

		o.containers = o.containers[1:]
	}

	o.state = Cleared

	return nil
}

// SetOverlayVisibility shows or hides the UV island overlay of the last run. Showing it moves the display flag
// to the visualizer; hiding it gives the flag back to the UV network output.
func (o *Orchestrator) SetOverlayVisibility(visible bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case Idle:
		return ErrNoRun
	case Cleared, Closed:
		return errors.Wrapf(ErrInvalidTransition, "overlay unavailable when %s", o.state)
	}

	logger := o.logger.With(zap.String("asset", o.record.AssetName), zap.String("path", string(o.record.Visualizer)))
	logger.Info("Toggling UV shell", zap.Bool("visible", visible))

	err := o.host.SetParam(o.record.Visualizer, operator.VisualizeIslandsParam, visible)
	if err != nil {
		logger.Error("Unable to toggle UV shell", zap.Error(err))

		return errors.Wrap(err, "unable to set overlay")
	}

	displayed := o.record.UVTerminal
	if visible {
		displayed = o.record.Visualizer
	}

	err = o.host.SetDisplayFlag(displayed, true)
	if err != nil {
		logger.Error("Unable to toggle UV shell", zap.Error(err))

		return errors.Wrap(err, "unable to set display flag")
	}

	return nil
}

// Close ends the session. The host keeps whatever was built.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != Closed {
		o.logger.Debug("Session closed", zap.Stringer("from", o.state))
		o.state = Closed
	}

	return nil
}
