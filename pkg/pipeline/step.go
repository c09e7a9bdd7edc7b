package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/operator"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// createNode creates node under container, connects inputs by index and applies op. parents are the nodes reported
// to the build options; they differ from inputs for references.
func createNode(b *Builder, container host.Path, node *model.NodeInfo, op operator.Operator, parents, inputs []*model.NodeInfo) error {
	err := op.Validate()
	if err != nil {
		return errors.Wrapf(err, "unable to configure %s", node.Name)
	}

	for _, opt := range b.opts {
		err := opt.PrepareNode(parents, node)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare %s", node.Name)
		}
	}

	start := time.Now()

	path, err := b.host.CreateNode(container, op.Type(), node.Name)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", node.Name)
	}

	node.Path = path

	for idx, input := range inputs {
		err := b.host.SetInput(path, idx, input.Path)
		if err != nil {
			return errors.Wrapf(err, "unable to connect %s to input %d of %s", input.Path, idx, path)
		}
	}

	err = operator.Apply(b.host, path, op)
	if err != nil {
		return errors.Wrapf(err, "unable to configure %s", path)
	}

	elapsed := time.Since(start)

	for _, opt := range b.opts {
		err := opt.OnNodeCreated(parents, node, elapsed)
		if err != nil {
			return errors.Wrapf(err, "unable to run after node function for %s", path)
		}
	}

	return nil
}

// AddNode adds a node that reads input. The node is created next to input.
func AddNode(b *Builder, name string, input *model.NodeInfo, op operator.Operator) (*model.NodeInfo, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	node := &model.NodeInfo{
		Kind: model.StepKind,
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

// SetDisplay sets the display flag of node.
func SetDisplay(b *Builder, node *model.NodeInfo, on bool) error {
	if err := b.check(); err != nil {
		return err
	}

	if node == nil {
		return ErrInputMustBeSet
	}

	return errors.Wrapf(b.host.SetDisplayFlag(node.Path, on), "unable to set display flag of %s", node.Path)
}
