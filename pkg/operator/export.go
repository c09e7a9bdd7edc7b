package operator

import (
	"path/filepath"
	"strings"

	"github.com/askiada/go-uvtool/pkg/host"
)

// FileCache writes its input to disk once and reads it back downstream.
type FileCache struct {
	BaseName      string
	BaseDir       string
	TimeDependent bool
	EnableVersion bool
}

// SnapshotCache caches a single frame, without versioning, under dir.
func SnapshotCache(baseName, dir string) FileCache {
	return FileCache{BaseName: baseName, BaseDir: dir}
}

func (o FileCache) Type() host.NodeType { return host.TypeFileCache }

func (o FileCache) Validate() error {
	if o.BaseName == "" {
		return invalid(o, "base name must be set")
	}

	if strings.ContainsAny(o.BaseName, `/\`) {
		return invalid(o, "base name %q contains a path separator", o.BaseName)
	}

	if o.BaseDir == "" {
		return invalid(o, "base directory must be set")
	}

	return nil
}

func (o FileCache) Params() []host.Param {
	trange := 0
	if o.TimeDependent {
		trange = 1
	}

	return []host.Param{
		{Key: "basename", Value: o.BaseName},
		{Key: "basedir", Value: o.BaseDir},
		{Key: "trange", Value: trange},
		{Key: "enableversion", Value: o.EnableVersion},
	}
}

// Null marks the output of a chain.
type Null struct{}

func (o Null) Type() host.NodeType { return host.TypeNull }

func (o Null) Validate() error { return nil }

func (o Null) Params() []host.Param { return nil }

// FBXExport writes its input to an FBX file when the host executes it.
type FBXExport struct {
	Output string
}

func (o FBXExport) Type() host.NodeType { return host.TypeFBXExport }

func (o FBXExport) Validate() error {
	if o.Output == "" {
		return invalid(o, "output file must be set")
	}

	if !strings.EqualFold(filepath.Ext(o.Output), ".fbx") {
		return invalid(o, "output %q is not an .fbx file", o.Output)
	}

	return nil
}

func (o FBXExport) Params() []host.Param {
	return []host.Param{{Key: "sopoutput", Value: o.Output}}
}
