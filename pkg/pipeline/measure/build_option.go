package measure

import (
	"time"

	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

type buildMeasure struct {
	Measure
	now       func() time.Time
	startTime time.Time
	ready     map[string]time.Time
}

func (bm *buildMeasure) New() error {
	bm.startTime = bm.now()
	bm.ready = map[string]time.Time{model.StartNode.Key(): bm.startTime}
	bm.AddMetric(model.StartNode.Key())
	bm.AddMetric(model.EndNode.Key())

	return nil
}

func (bm *buildMeasure) PrepareNode(parents []*model.NodeInfo, node *model.NodeInfo) error {
	return nil
}

func (bm *buildMeasure) OnNodeCreated(parents []*model.NodeInfo, node *model.NodeInfo, elapsed time.Duration) error {
	now := bm.now()
	mt := bm.AddMetric(node.Key())
	mt.AddDuration(elapsed)

	for _, parent := range parents {
		if at, ok := bm.ready[parent.Key()]; ok {
			mt.AddTransportDuration(parent.Key(), now.Sub(at))
		}
	}

	bm.ready[node.Key()] = now

	if node.Kind == model.SinkKind {
		mt.SetTotalDuration(now.Sub(bm.startTime))
	}

	return nil
}

func (bm *buildMeasure) Finish() error {
	bm.GetMetric(model.EndNode.Key()).SetTotalDuration(bm.now().Sub(bm.startTime))

	return nil
}

// BuildMeasure records the construction duration of every node in m.
func BuildMeasure(m Measure) model.BuildOption {
	return &buildMeasure{Measure: m, now: time.Now}
}
