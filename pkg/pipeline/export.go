package pipeline

import (
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/naming"
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

const (
	// OutputName is the name of the terminal node of every network.
	OutputName = "MESH_OUT"
	// ExportName is the name of the export ROP.
	ExportName = "outputROP"
)

// AddContainer creates an empty network under the host root. The host picks a free name when name is taken.
func AddContainer(b *Builder, name string) (host.Path, error) {
	if err := b.check(); err != nil {
		return "", err
	}

	path, err := b.host.CreateNode(b.host.Root(), host.TypeGeo, name)
	if err != nil {
		return "", errors.Wrapf(err, "unable to create container %s", name)
	}

	return path, nil
}

// EnsureCacheDir creates dir and its parents when they are missing.
func EnsureCacheDir(dir string) error {
	if dir == "" {
		return errors.Wrap(ErrCacheDirUnavailable, "no directory configured")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(ErrCacheDirUnavailable, "%s: %v", dir, err)
	}

	return nil
}

// AddFileCache adds a single frame file cache writing <cacheDir>/<baseName>. It fails with ErrCacheDirUnavailable,
// before creating anything, when cacheDir cannot be created.
func AddFileCache(b *Builder, name string, input *model.NodeInfo, baseName, cacheDir string) (*model.NodeInfo, error) {
	if err := EnsureCacheDir(cacheDir); err != nil {
		return nil, err
	}

	return AddNode(b, name, input, operator.SnapshotCache(baseName, cacheDir))
}

// AddOutput adds the MESH_OUT null reading input and makes it the displayed node of its network.
func AddOutput(b *Builder, input *model.NodeInfo) (*model.NodeInfo, error) {
	out, err := AddNode(b, OutputName, input, operator.Null{})
	if err != nil {
		return nil, err
	}

	err = SetDisplay(b, out, true)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// AddExport adds the FBX ROP writing <exportDir>/<asset>_NewUV.fbx from input.
func AddExport(b *Builder, input *model.NodeInfo, exportDir, asset string) (*model.NodeInfo, error) {
	return AddSink(b, ExportName, input, operator.FBXExport{Output: naming.ExportFile(exportDir, asset)})
}
