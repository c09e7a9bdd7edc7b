package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/pkg/pipeline/measure"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

var kindShapes = map[model.NodeKind]string{
	model.RootKind:      "box",
	model.StepKind:      "box",
	model.SelectorKind:  "diamond",
	model.ReferenceKind: "note",
	model.SinkKind:      "cylinder",
	model.MarkerKind:    "circle",
}

type buildDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

func nodeAttributes(node *model.NodeInfo) map[string]string {
	label := node.Name
	if node.Type != "" {
		label += " (" + string(node.Type) + ")"
	}

	return map[string]string{
		"label": label,
		"shape": kindShapes[node.Kind],
	}
}

func (bd *buildDrawer) New() error {
	bd.startTime = time.Now()

	err := bd.AddNode(model.StartNode.Key(), nodeAttributes(model.StartNode))
	if err != nil {
		return errors.Wrap(err, "unable to add start node to drawer")
	}

	err = bd.AddNode(model.EndNode.Key(), nodeAttributes(model.EndNode))
	if err != nil {
		return errors.Wrap(err, "unable to add end node to drawer")
	}

	return nil
}

func (bd *buildDrawer) PrepareNode(parents []*model.NodeInfo, node *model.NodeInfo) error {
	return nil
}

func (bd *buildDrawer) OnNodeCreated(parents []*model.NodeInfo, node *model.NodeInfo, elapsed time.Duration) error {
	err := bd.AddNode(node.Key(), nodeAttributes(node))
	if err != nil {
		return err
	}

	for _, parent := range parents {
		if node.Kind == model.ReferenceKind {
			err = bd.AddReference(parent.Key(), node.Key())
		} else {
			err = bd.AddLink(parent.Key(), node.Key())
		}

		if err != nil {
			return err
		}
	}

	if node.Kind == model.SinkKind {
		return bd.AddLink(node.Key(), model.EndNode.Key())
	}

	return nil
}

func (bd *buildDrawer) Finish() error {
	if bd.m != nil {
		err := bd.SetTotalTime(model.EndNode.Key(), bd.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		err = bd.AddMeasure(bd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := bd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw network")
	}

	return nil
}

// BuildDrawer draws every node the builder creates and writes the drawing when the build finishes. m is optional;
// when set, its durations colour the drawing. m must be fed by a measure option placed before this one.
func BuildDrawer(drawer Drawer, m measure.Measure) model.BuildOption {
	return &buildDrawer{Drawer: drawer, m: m}
}
