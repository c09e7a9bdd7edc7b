package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// AddRootNode adds a node without input under container.
func AddRootNode(b *Builder, container host.Path, name string, op operator.Operator) (*model.NodeInfo, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	node := &model.NodeInfo{
		Kind: model.RootKind,
		Name: name,
		Type: op.Type(),
	}

	err := createNode(b, container, node, op, []*model.NodeInfo{model.StartNode}, nil)
	if err != nil {
		return nil, err
	}

	return node, nil
}

// AddReference adds an object merge under container that reads source by path. Nothing connects the two nodes:
// once source is destroyed the reference resolves to nothing.
func AddReference(b *Builder, container host.Path, name string, source *model.NodeInfo) (*model.NodeInfo, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	if source == nil {
		return nil, ErrInputMustBeSet
	}

	if !b.host.Exists(source.Path) {
		return nil, errors.Wrapf(host.ErrNodeNotFound, "reference %s", source.Path)
	}

	op := operator.ObjectMerge{ObjPath: source.Path}
	node := &model.NodeInfo{
		Kind: model.ReferenceKind,
		Name: name,
		Type: op.Type(),
	}

	err := createNode(b, container, node, op, []*model.NodeInfo{source}, nil)
	if err != nil {
		return nil, err
	}

	return node, nil
}
