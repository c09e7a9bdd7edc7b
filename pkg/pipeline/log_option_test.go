package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/askiada/go-uvtool/pkg/host/memhost"
	"github.com/askiada/go-uvtool/pkg/pipeline"
)

func TestLogNodes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	b, err := pipeline.New(memhost.New(), nil, pipeline.LogNodes(zap.New(core)))
	require.NoError(t, err)

	container, err := pipeline.AddContainer(b, "Crate01_remesh")
	require.NoError(t, err)
	_, err = pipeline.BuildRemesh(b, pipeline.RemeshRequest{
		Container:  container,
		SourceFile: "/models/Crate01.fbx",
		Asset:      "Crate01",
		CacheDir:   t.TempDir(),
	})
	require.NoError(t, err)
	require.NoError(t, b.Finish())

	assert.Equal(t, 8, logs.FilterMessage("Creating node").Len())
	created := logs.FilterMessage("Node created").All()
	require.Len(t, created, 8)
	assert.Equal(t, "/obj/Crate01_remesh/importFile", created[0].ContextMap()["path"])
	assert.Empty(t, created[0].ContextMap()["inputs"], "the start marker is not an input")

	finished := logs.FilterMessage("Build finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(8), finished[0].ContextMap()["nodes"])
}
