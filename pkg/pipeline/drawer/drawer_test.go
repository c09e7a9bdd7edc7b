package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-uvtool/pkg/host/memhost"
	"github.com/askiada/go-uvtool/pkg/pipeline"
	"github.com/askiada/go-uvtool/pkg/pipeline/drawer"
	"github.com/askiada/go-uvtool/pkg/pipeline/measure"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := drawer.NewDOTWriter(&buf)

	require.NoError(t, d.AddNode("a", map[string]string{"label": "first"}))
	require.NoError(t, d.AddNode("b", nil))
	require.NoError(t, d.AddNode("c", nil))
	require.NoError(t, d.AddLink("a", "b"))
	require.NoError(t, d.AddReference("b", "c"))
	assert.Error(t, d.AddLink("a", "missing"))
	assert.Error(t, d.AddNode("a", nil))
	require.NoError(t, d.SetTotalTime("c", time.Now()))
	require.NoError(t, d.Draw())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.Contains(t, out, `"a" -> "b"`)
	assert.Contains(t, out, `"b" -> "c" [ style="dashed"`)
	assert.Contains(t, out, `label="first"`)
	assert.Contains(t, out, `label=<c <BR />`)
	assert.Less(t, strings.Index(out, `"a" [`), strings.Index(out, `"b" [`), "nodes keep insertion order")
}

func TestBuildDrawer(t *testing.T) {
	t.Parallel()

	dotFile := filepath.Join(t.TempDir(), "network.dot")
	m := measure.NewDefaultMeasure()

	h := memhost.New()
	b, err := pipeline.New(h, nil, measure.BuildMeasure(m), drawer.BuildDrawer(drawer.NewDOTDrawer(dotFile), m))
	require.NoError(t, err)

	remeshContainer, err := pipeline.AddContainer(b, "Crate01_remesh")
	require.NoError(t, err)
	remesh, err := pipeline.BuildRemesh(b, pipeline.RemeshRequest{
		Container:  remeshContainer,
		SourceFile: "/models/Crate01.fbx",
		Asset:      "Crate01",
		CacheDir:   t.TempDir(),
	})
	require.NoError(t, err)

	uvContainer, err := pipeline.AddContainer(b, "Crate01_uv")
	require.NoError(t, err)
	_, err = pipeline.BuildUV(b, pipeline.UVRequest{
		Container: uvContainer,
		Source:    remesh.Terminal,
		Asset:     "Crate01",
		ExportDir: "/out",
		CacheDir:  t.TempDir(),
	})
	require.NoError(t, err)
	require.NoError(t, b.Finish())

	content, err := os.ReadFile(dotFile)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, `"start" -> "/obj/Crate01_remesh/importFile"`)
	assert.Contains(t, out, `"/obj/Crate01_remesh/clean" -> "/obj/Crate01_remesh/polyReduce"`)
	assert.Contains(t, out, `"/obj/Crate01_remesh/polyReduce" -> "/obj/Crate01_remesh/switch"`)
	assert.Contains(t, out, `"/obj/Crate01_remesh/MESH_OUT" -> "/obj/Crate01_uv/importRemesh"`)
	assert.Contains(t, out, `"/obj/Crate01_uv/outputROP" -> "end"`)
	assert.Contains(t, out, `shape="diamond"`)
	assert.Contains(t, out, "fillcolor")
	assert.Contains(t, out, "outputROP (rop_fbx)")
}
