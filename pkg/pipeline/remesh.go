package pipeline

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// RemeshRequest configures BuildRemesh.
type RemeshRequest struct {
	// Container is the network the nodes are created in.
	Container host.Path
	// SourceFile is the mesh file to import.
	SourceFile string
	Asset      string
	// Reduce selects the reduced mesh instead of the cleaned one.
	Reduce   bool
	CacheDir string
}

// Remesh holds the nodes other networks depend on. Cache is nil when caching was skipped.
type Remesh struct {
	Terminal *model.NodeInfo
	Cache    *model.NodeInfo
}

// BuildRemesh builds the cleanup network: import, strip UVs, drop collision geometry, clean, optionally reduce,
// cache and expose the result on MESH_OUT.
func BuildRemesh(b *Builder, req RemeshRequest) (*Remesh, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	logger := b.logger.With(zap.String("asset", req.Asset), zap.String("path", req.SourceFile))
	logger.Info("Creating remesh layout", zap.String("container", string(req.Container)), zap.Bool("reduce", req.Reduce))

	imported, err := AddRootNode(b, req.Container, "importFile", operator.FileImport{File: req.SourceFile})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add import")
	}

	stripped, err := AddNode(b, "attribDelete", imported, operator.StripUVs())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add attribute delete")
	}

	noCollision, err := AddNode(b, "deleteUCX", stripped, operator.Blast{Group: operator.CollisionGroup})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add collision delete")
	}

	cleaned, err := AddNode(b, "clean", noCollision, operator.Clean{})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add clean")
	}

	reduced, err := AddNode(b, "polyReduce", cleaned, operator.ReduceToPolygons())
	if err != nil {
		return nil, errors.Wrap(err, "unable to add reduction")
	}

	selected, err := AddSelector(b, "switch", operator.Select(req.Reduce), cleaned, reduced)
	if err != nil {
		return nil, errors.Wrap(err, "unable to add switch")
	}

	res := &Remesh{}
	tail := selected

	res.Cache, err = AddFileCache(b, req.Asset+"_cache", selected, req.Asset+"_clean", req.CacheDir)
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

	logger.Info("Remesh layout created", zap.String("terminal", string(res.Terminal.Path)))

	return res, nil
}
