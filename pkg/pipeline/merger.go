package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// AddSelector adds a switch reading inputs in order. Only the input selected by sw is passed through.
func AddSelector(b *Builder, name string, sw operator.Switch, inputs ...*model.NodeInfo) (*model.NodeInfo, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, ErrInputMustBeSet
	}

	if len(inputs) != sw.Inputs {
		return nil, errors.Wrapf(ErrSelectorInputs, "%s: %d inputs given, %d expected", name, len(inputs), sw.Inputs)
	}

	for _, input := range inputs {
		if input == nil {
			return nil, ErrInputMustBeSet
		}
	}

	node := &model.NodeInfo{
		Kind: model.SelectorKind,
		Name: name,
		Type: sw.Type(),
	}

	err := createNode(b, inputs[0].Path.Parent(), node, sw, inputs, inputs)
	if err != nil {
		return nil, err
	}

	return node, nil
}
