package orchestrator_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/host/memhost"
	"github.com/askiada/go-uvtool/pkg/orchestrator"
	"github.com/askiada/go-uvtool/pkg/pipeline/measure"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(dir string) error {
	f.opened = append(f.opened, dir)

	return f.err
}

type failingHost struct {
	*memhost.Host
	failType host.NodeType
}

func (f *failingHost) CreateNode(parent host.Path, nodeType host.NodeType, name string) (host.Path, error) {
	if nodeType == f.failType {
		return "", assert.AnError
	}

	return f.Host.CreateNode(parent, nodeType, name)
}

type fixture struct {
	host   *memhost.Host
	orch   *orchestrator.Orchestrator
	opener *fakeOpener
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T, opts ...orchestrator.Option) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		host:   memhost.New(),
		opener: &fakeOpener{},
		logs:   logs,
	}

	opts = append([]orchestrator.Option{
		orchestrator.WithLogger(zap.New(core)),
		orchestrator.WithCacheDir(t.TempDir()),
		orchestrator.WithOpener(f.opener),
	}, opts...)
	f.orch = orchestrator.New(f.host, opts...)

	return f
}

func crate(reduce bool) orchestrator.Request {
	return orchestrator.Request{
		ImportPath:     "C:/models/Crate01.fbx",
		ExportPath:     "C:/models",
		ApplyReduction: reduce,
	}
}

func (f *fixture) param(t *testing.T, node host.Path, key string) any {
	t.Helper()

	value, err := f.host.Param(node, key)
	require.NoError(t, err)

	return value
}

func TestRunCrateScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.Equal(t, orchestrator.Idle, f.orch.State())
	assert.Nil(t, f.orch.Record())

	record, err := f.orch.Run(crate(false))
	require.NoError(t, err)

	assert.Equal(t, orchestrator.Built, f.orch.State())
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "Crate01", record.AssetName)
	assert.Equal(t, "C:/models/Crate01_NewUV.fbx", record.ExportFile)
	assert.Equal(t, "C:/models/Crate01_NewUV.fbx", f.param(t, record.Export, "sopoutput"))
	assert.Equal(t, host.Path("/obj/Crate01_remesh"), record.RemeshContainer)
	assert.Equal(t, host.Path("/obj/Crate01_uv"), record.UVContainer)
	assert.NotEmpty(t, record.RemeshCache)
	assert.NotEmpty(t, record.UVCache)
	assert.Empty(t, f.opener.opened)

	upstream, err := f.host.ActiveUpstream(record.RemeshTerminal)
	require.NoError(t, err)
	assert.Contains(t, upstream, record.RemeshContainer.Join("clean"))
	assert.NotContains(t, upstream, record.RemeshContainer.Join("polyReduce"))

	assert.Equal(t, record, f.orch.Record())

	setup := f.logs.FilterMessage("Setting up nodes").All()
	require.Len(t, setup, 1)
	assert.Equal(t, "Crate01", setup[0].ContextMap()["asset"])
	assert.Equal(t, record.ID.String(), setup[0].ContextMap()["run"])
}

func TestRunReduction(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	record, err := f.orch.Run(crate(true))
	require.NoError(t, err)

	reduce := record.RemeshContainer.Join("polyReduce")
	assert.Equal(t, 1000, f.param(t, reduce, "finalcount"))
	assert.Equal(t, 2, f.param(t, reduce, "target"))

	upstream, err := f.host.ActiveUpstream(record.RemeshTerminal)
	require.NoError(t, err)
	assert.Contains(t, upstream, reduce)
}

func TestRunPreconditions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.orch.Run(orchestrator.Request{ExportPath: "C:/models"})
	assert.ErrorIs(t, err, orchestrator.ErrPreconditionUnmet)

	_, err = f.orch.Run(orchestrator.Request{ImportPath: "C:/models/Crate01.fbx"})
	assert.ErrorIs(t, err, orchestrator.ErrPreconditionUnmet)

	children, err := f.host.Children(f.host.Root())
	require.NoError(t, err)
	assert.Empty(t, children, "nothing is created when a path is missing")
	assert.Equal(t, orchestrator.Idle, f.orch.State())
	assert.Equal(t, 2, f.logs.FilterMessage("Run refused").Len())
}

func TestRunRefusesPathWithoutFileName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	for _, importPath := range []string{"/", "///", `\`} {
		_, err := f.orch.Run(orchestrator.Request{ImportPath: importPath, ExportPath: "C:/models"})
		assert.ErrorIs(t, err, orchestrator.ErrPreconditionUnmet, importPath)
	}

	children, err := f.host.Children(f.host.Root())
	require.NoError(t, err)
	assert.Empty(t, children, "no container is created without an asset name")
	assert.Equal(t, orchestrator.Idle, f.orch.State())
	assert.Nil(t, f.orch.Record())
}

func TestDefaultCacheDir(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	orch := orchestrator.New(h, orchestrator.WithOpener(&fakeOpener{}))

	record, err := orch.Run(crate(false))
	require.NoError(t, err)
	require.NotEmpty(t, record.RemeshCache)

	dir, err := h.Param(record.RemeshCache, "basedir")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), "uv_tool_cache"), dir)
}

func TestClearKeepsRecord(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	ticks := []time.Time{start, start.Add(1500 * time.Millisecond)}
	clock := func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]

		return now
	}

	f := newFixture(t, orchestrator.WithClock(clock))

	record, err := f.orch.Run(crate(false))
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, record.Elapsed)
	assert.Equal(t, "Successfully processed in 1.50 seconds", record.Summary())

	require.NoError(t, f.orch.Clear())
	assert.Equal(t, orchestrator.Cleared, f.orch.State())

	children, err := f.host.Children(f.host.Root())
	require.NoError(t, err)
	assert.Empty(t, children)
	assert.False(t, f.host.Exists(record.RemeshTerminal))

	kept := f.orch.Record()
	require.NotNil(t, kept)
	assert.Equal(t, "Crate01", kept.AssetName)
	assert.Equal(t, 1500*time.Millisecond, kept.Elapsed)

	require.NoError(t, f.orch.Clear(), "clearing twice is a no-op")
	assert.ErrorIs(t, f.orch.SetOverlayVisibility(true), orchestrator.ErrInvalidTransition)
}

func TestRunTwiceBuildsIndependentNetworks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	first, err := f.orch.Run(crate(false))
	require.NoError(t, err)
	second, err := f.orch.Run(crate(false))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.RemeshContainer, second.RemeshContainer)
	assert.NotEqual(t, first.UVContainer, second.UVContainer)
	assert.Equal(t, string(first.RemeshTerminal), f.param(t, first.UVContainer.Join("importRemesh"), "objpath1"))
	assert.Equal(t, string(second.RemeshTerminal), f.param(t, second.UVContainer.Join("importRemesh"), "objpath1"))
	assert.Equal(t, first.ExportFile, second.ExportFile)

	children, err := f.host.Children(f.host.Root())
	require.NoError(t, err)
	assert.Len(t, children, 4)

	require.NoError(t, f.orch.Clear())

	children, err = f.host.Children(f.host.Root())
	require.NoError(t, err)
	assert.Empty(t, children)
	assert.Equal(t, second.ID, f.orch.Record().ID)

	third, err := f.orch.Run(crate(false))
	require.NoError(t, err)
	assert.Equal(t, orchestrator.Built, f.orch.State())
	assert.Equal(t, host.Path("/obj/Crate01_remesh"), third.RemeshContainer, "cleared names are free again")
}

func TestIdleTransitions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.ErrorIs(t, f.orch.Clear(), orchestrator.ErrInvalidTransition)
	assert.ErrorIs(t, f.orch.SetOverlayVisibility(true), orchestrator.ErrNoRun)
	assert.Equal(t, orchestrator.Idle, f.orch.State())
}

func TestSetOverlayVisibility(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	record, err := f.orch.Run(crate(false))
	require.NoError(t, err)

	require.NoError(t, f.orch.SetOverlayVisibility(true))
	assert.Equal(t, true, f.param(t, record.Visualizer, "visualize_islands"))
	on, err := f.host.DisplayFlag(record.Visualizer)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = f.host.DisplayFlag(record.UVTerminal)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, f.orch.SetOverlayVisibility(false))
	assert.Equal(t, false, f.param(t, record.Visualizer, "visualize_islands"))
	on, err = f.host.DisplayFlag(record.Visualizer)
	require.NoError(t, err)
	assert.False(t, on)
	on, err = f.host.DisplayFlag(record.UVTerminal)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestOpenFolderAfter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	req := crate(false)
	req.OpenFolderAfter = true

	_, err := f.orch.Run(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"C:/models"}, f.opener.opened)

	f.opener.err = assert.AnError
	_, err = f.orch.Run(req)
	require.NoError(t, err, "opening the folder is best effort")
	assert.Equal(t, 1, f.logs.FilterMessage("Unable to open export folder").Len())
}

func TestClose(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.orch.Run(crate(false))
	require.NoError(t, err)
	require.NoError(t, f.orch.Close())
	require.NoError(t, f.orch.Close())
	assert.Equal(t, orchestrator.Closed, f.orch.State())

	_, err = f.orch.Run(crate(false))
	assert.ErrorIs(t, err, orchestrator.ErrInvalidTransition)
	assert.ErrorIs(t, f.orch.Clear(), orchestrator.ErrInvalidTransition)
	assert.ErrorIs(t, f.orch.SetOverlayVisibility(true), orchestrator.ErrInvalidTransition)
	assert.Equal(t, "closed", orchestrator.Closed.String())
}

func TestHostFailureLeavesContainersForClear(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := &failingHost{Host: memhost.New(), failType: host.TypeUVFlatten}
	orch := orchestrator.New(h,
		orchestrator.WithLogger(zap.New(core)),
		orchestrator.WithCacheDir(t.TempDir()),
		orchestrator.WithOpener(&fakeOpener{}),
	)

	_, err := orch.Run(crate(false))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, orchestrator.Idle, orch.State())
	assert.Nil(t, orch.Record())

	failed := logs.FilterMessage("Run failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "Crate01", failed[0].ContextMap()["asset"])
	assert.Equal(t, "C:/models/Crate01.fbx", failed[0].ContextMap()["path"])

	children, err := h.Children(h.Root())
	require.NoError(t, err)
	assert.Len(t, children, 2, "partial networks stay until cleared")

	require.NoError(t, orch.Clear())
	assert.Equal(t, orchestrator.Cleared, orch.State())

	children, err = h.Children(h.Root())
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestBuildOptionsPerRun(t *testing.T) {
	t.Parallel()

	var measures []*measure.DefaultMeasure
	f := newFixture(t, orchestrator.WithBuildOptions(func(req orchestrator.Request) []model.BuildOption {
		m := measure.NewDefaultMeasure()
		measures = append(measures, m)

		return []model.BuildOption{measure.BuildMeasure(m)}
	}))

	first, err := f.orch.Run(crate(false))
	require.NoError(t, err)
	_, err = f.orch.Run(crate(true))
	require.NoError(t, err)

	require.Len(t, measures, 2)
	assert.NotNil(t, measures[0].GetMetric(string(first.Export)))
	assert.Nil(t, measures[1].GetMetric(string(first.Export)))
}
