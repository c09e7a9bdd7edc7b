package pipeline

import (
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// AddSink adds the node that ends a chain, e.g. an export ROP. The sink is only constructed, never executed.
func AddSink(b *Builder, name string, input *model.NodeInfo, op operator.Operator) (*model.NodeInfo, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	node := &model.NodeInfo{
		Kind: model.SinkKind,
		Name: name,
		Type: op.Type(),
	}
	parents := []*model.NodeInfo{input}

	err := createNode(b, input.Path.Parent(), node, op, parents, parents)
	if err != nil {
		return nil, err
	}

	return node, nil
}
