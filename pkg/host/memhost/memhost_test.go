package memhost_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/host/memhost"
)

func newContainer(t *testing.T, h *memhost.Host, name string) host.Path {
	t.Helper()
	container, err := h.CreateNode(h.Root(), host.TypeGeo, name)
	require.NoError(t, err)

	return container
}

func TestCreateNodeUniqueNames(t *testing.T) {
	t.Parallel()

	h := memhost.New()

	first, err := h.CreateNode(h.Root(), host.TypeGeo, "")
	require.NoError(t, err)
	second, err := h.CreateNode(h.Root(), host.TypeGeo, "")
	require.NoError(t, err)
	assert.Equal(t, host.Path("/obj/geo1"), first)
	assert.Equal(t, host.Path("/obj/geo2"), second)

	named, err := h.CreateNode(h.Root(), host.TypeGeo, "crate_remesh")
	require.NoError(t, err)
	again, err := h.CreateNode(h.Root(), host.TypeGeo, "crate_remesh")
	require.NoError(t, err)
	assert.Equal(t, host.Path("/obj/crate_remesh"), named)
	assert.Equal(t, host.Path("/obj/crate_remesh1"), again)

	children, err := h.Children(h.Root())
	require.NoError(t, err)
	assert.Equal(t, []host.Path{first, second, named, again}, children)
}

func TestCreateNodeErrors(t *testing.T) {
	t.Parallel()

	h := memhost.New()

	_, err := h.CreateNode(h.Root(), host.NodeType("vdbsmooth"), "smooth")
	assert.ErrorIs(t, err, host.ErrUnknownNodeType)

	_, err = h.CreateNode(h.Root(), host.TypeGeo, "a/b")
	assert.ErrorIs(t, err, host.ErrInvalidName)

	_, err = h.CreateNode(host.Path("/obj/missing"), host.TypeNull, "out")
	assert.ErrorIs(t, err, host.ErrNodeNotFound)
}

func TestParams(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	geo := newContainer(t, h, "geo")
	reduce, err := h.CreateNode(geo, host.TypePolyReduce, "polyReduce")
	require.NoError(t, err)

	require.NoError(t, h.SetParam(reduce, "finalcount", 1000))
	got, err := h.Param(reduce, "finalcount")
	require.NoError(t, err)
	assert.Equal(t, 1000, got)

	_, err = h.Param(reduce, "percentage")
	assert.ErrorIs(t, err, host.ErrParamNotFound)

	assert.ErrorIs(t, h.SetParam(reduce, "finalcount", int64(1000)), host.ErrInvalidParam)
	assert.ErrorIs(t, h.SetParam(reduce, "", 1), host.ErrInvalidParam)
	assert.ErrorIs(t, h.SetParam(geo.Join("nope"), "x", 1), host.ErrNodeNotFound)
}

func TestSetInput(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	geo := newContainer(t, h, "geo")
	a, err := h.CreateNode(geo, host.TypeClean, "a")
	require.NoError(t, err)
	b, err := h.CreateNode(geo, host.TypeClean, "b")
	require.NoError(t, err)
	c, err := h.CreateNode(geo, host.TypeSwitch, "c")
	require.NoError(t, err)

	require.NoError(t, h.SetInput(c, 1, b))
	require.NoError(t, h.SetInput(c, 0, a))

	inputs, err := h.Inputs(c)
	require.NoError(t, err)
	assert.Equal(t, []host.Path{a, b}, inputs)

	// replacing an input drops the old connection
	require.NoError(t, h.SetInput(c, 0, b))
	inputs, err = h.Inputs(c)
	require.NoError(t, err)
	assert.Equal(t, []host.Path{b, b}, inputs)

	assert.ErrorIs(t, h.SetInput(b, 0, c), host.ErrInvalidInput, "cycle")
	assert.ErrorIs(t, h.SetInput(a, -1, b), host.ErrInvalidInput)
	assert.ErrorIs(t, h.SetInput(a, 0, a), host.ErrInvalidInput)

	other := newContainer(t, h, "other")
	foreign, err := h.CreateNode(other, host.TypeNull, "out")
	require.NoError(t, err)
	assert.ErrorIs(t, h.SetInput(a, 0, foreign), host.ErrInvalidInput)
}

func TestDisplayFlagIsExclusive(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	geo := newContainer(t, h, "geo")
	out, err := h.CreateNode(geo, host.TypeNull, "MESH_OUT")
	require.NoError(t, err)
	vis, err := h.CreateNode(geo, host.TypeVisualizeUVs, "uvVisualizer")
	require.NoError(t, err)

	require.NoError(t, h.SetDisplayFlag(out, true))
	require.NoError(t, h.SetDisplayFlag(vis, true))

	on, err := h.DisplayFlag(out)
	require.NoError(t, err)
	assert.False(t, on)
	on, err = h.DisplayFlag(vis)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, h.SetDisplayFlag(vis, false))
	on, err = h.DisplayFlag(vis)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestActiveUpstream(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	geo := newContainer(t, h, "geo")
	clean, err := h.CreateNode(geo, host.TypeClean, "clean")
	require.NoError(t, err)
	reduce, err := h.CreateNode(geo, host.TypePolyReduce, "polyReduce")
	require.NoError(t, err)
	sw, err := h.CreateNode(geo, host.TypeSwitch, "switch")
	require.NoError(t, err)
	require.NoError(t, h.SetInput(reduce, 0, clean))
	require.NoError(t, h.SetInput(sw, 0, clean))
	require.NoError(t, h.SetInput(sw, 1, reduce))

	require.NoError(t, h.SetParam(sw, "input", 0))
	upstream, err := h.ActiveUpstream(sw)
	require.NoError(t, err)
	assert.Equal(t, []host.Path{clean}, upstream)

	require.NoError(t, h.SetParam(sw, "input", 1))
	upstream, err = h.ActiveUpstream(sw)
	require.NoError(t, err)
	assert.Equal(t, []host.Path{reduce, clean}, upstream)

	uv := newContainer(t, h, "uv")
	merge, err := h.CreateNode(uv, host.TypeObjectMerge, "importRemesh")
	require.NoError(t, err)
	require.NoError(t, h.SetParam(merge, "objpath1", string(sw)))
	upstream, err = h.ActiveUpstream(merge)
	require.NoError(t, err)
	assert.Equal(t, []host.Path{sw, reduce, clean}, upstream)

	// the reference is weak: once the remesh side is gone nothing resolves.
	require.NoError(t, h.Destroy(geo))
	upstream, err = h.ActiveUpstream(merge)
	require.NoError(t, err)
	assert.Empty(t, upstream)
}

func TestDestroy(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	geo := newContainer(t, h, "geo")
	a, err := h.CreateNode(geo, host.TypeFile, "importFile")
	require.NoError(t, err)
	b, err := h.CreateNode(geo, host.TypeClean, "clean")
	require.NoError(t, err)
	require.NoError(t, h.SetInput(b, 0, a))

	require.NoError(t, h.Destroy(a))
	assert.False(t, h.Exists(a))
	inputs, err := h.Inputs(b)
	require.NoError(t, err)
	assert.Equal(t, []host.Path{""}, inputs)

	require.NoError(t, h.Destroy(geo))
	assert.False(t, h.Exists(geo))
	assert.False(t, h.Exists(b))

	children, err := h.Children(h.Root())
	require.NoError(t, err)
	assert.Empty(t, children)

	assert.ErrorIs(t, h.Destroy(geo), host.ErrNodeNotFound)
	assert.ErrorIs(t, h.Destroy(h.Root()), host.ErrInvalidName)

	// the name is free again
	again := newContainer(t, h, "geo")
	assert.Equal(t, geo, again)
}

func TestDump(t *testing.T) {
	t.Parallel()

	h := memhost.New()
	geo := newContainer(t, h, "geo")
	out, err := h.CreateNode(geo, host.TypeNull, "MESH_OUT")
	require.NoError(t, err)
	require.NoError(t, h.SetDisplayFlag(out, true))
	require.NoError(t, h.SetParam(out, "comment", "terminal"))

	buf := &bytes.Buffer{}
	require.NoError(t, h.Dump(buf, geo))

	var snap memhost.Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, "/obj/geo", snap.Path)
	require.Len(t, snap.Children, 1)
	assert.Equal(t, "/obj/geo/MESH_OUT", snap.Children[0].Path)
	assert.True(t, snap.Children[0].Display)
	assert.Equal(t, "terminal", snap.Children[0].Params["comment"])
}
