package pipeline

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/naming"
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// UVRequest configures BuildUV.
type UVRequest struct {
	Container host.Path
	// Source is the node whose output is unwrapped, read by path.
	Source    *model.NodeInfo
	Asset     string
	ExportDir string
	CacheDir  string
}

// UV holds the nodes of the UV network the caller keeps a handle on. Cache is nil when caching was skipped.
type UV struct {
	Terminal   *model.NodeInfo
	Cache      *model.NodeInfo
	Export     *model.NodeInfo
	Visualizer *model.NodeInfo
	ExportFile string
}

// BuildUV builds the UV network: merge the source, measure curvature, group sharp edges, cut seams along them,
// unwrap, pack into the unit square, add the hidden island overlay, cache, expose MESH_OUT and add the FBX export.
func BuildUV(b *Builder, req UVRequest) (*UV, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	if req.Source == nil {
		return nil, ErrInputMustBeSet
	}

	exportFile := naming.ExportFile(req.ExportDir, req.Asset)
	logger := b.logger.With(zap.String("asset", req.Asset), zap.String("path", exportFile))
	logger.Info("Creating UV layout", zap.String("container", string(req.Container)), zap.String("source", string(req.Source.Path)))

	merged, err := AddReference(b, req.Container, "importRemesh", req.Source)
	if err != nil {
		return nil, errors.Wrap(err, "unable to add remesh import")
	}

	measured, err := AddNode(b, "measure", merged, operator.PointCurvature())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add curvature measure")
	}

	grouped, err := AddNode(b, "group", measured, operator.SharpEdges())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add sharp edge group")
	}

	flattened, err := AddNode(b, "uvFlatten", grouped, operator.FlattenAlongSharpEdges())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add flatten")
	}

	unwrapped, err := AddNode(b, "uvUnwrap", flattened, operator.Unwrap())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add unwrap")
	}

	packed, err := AddNode(b, "uvLayout", unwrapped, operator.PackUnitSquare())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add layout")
	}

	res := &UV{ExportFile: exportFile}

	res.Visualizer, err = AddNode(b, "uvVisualizer", packed, operator.VisualizeUVs{})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add visualizer")
	}

	err = SetDisplay(b, res.Visualizer, false)
	if err != nil {
		return nil, err
	}

	tail := res.Visualizer

	res.Cache, err = AddFileCache(b, req.Asset+"_cache", res.Visualizer, req.Asset, req.CacheDir)
	switch {
	case errors.Is(err, ErrCacheDirUnavailable):
		logger.Error("Caching skipped", zap.Error(err))
	case err != nil:
		return nil, errors.Wrap(err, "unable to add cache")
	default:
		tail = res.Cache
	}

	res.Terminal, err = AddOutput(b, tail)
	if err != nil {
		return nil, errors.Wrap(err, "unable to add output")
	}

	res.Export, err = AddExport(b, res.Terminal, req.ExportDir, req.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "unable to add export")
	}

	logger.Info("UV layout created", zap.String("terminal", string(res.Terminal.Path)))

	return res, nil
}
