package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/logging"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

type nodeLogger struct {
	logger *zap.Logger
	total  int
}

func (nl *nodeLogger) New() error {
	nl.total = 0

	return nil
}

func (nl *nodeLogger) PrepareNode(parents []*model.NodeInfo, node *model.NodeInfo) error {
	nl.logger.Debug("Creating node", zap.String("name", node.Name), zap.String("type", string(node.Type)))

	return nil
}

func (nl *nodeLogger) OnNodeCreated(parents []*model.NodeInfo, node *model.NodeInfo, elapsed time.Duration) error {
	inputs := make([]string, 0, len(parents))
	for _, parent := range parents {
		if parent.Kind == model.MarkerKind {
			continue
		}

		inputs = append(inputs, parent.Key())
	}

	nl.total++
	nl.logger.Debug("Node created",
		zap.String("path", string(node.Path)),
		zap.String("kind", string(node.Kind)),
		zap.Strings("inputs", inputs),
		zap.Duration("elapsed", elapsed),
	)

	return nil
}

func (nl *nodeLogger) Finish() error {
	nl.logger.Debug("Build finished", zap.Int("nodes", nl.total))

	return nil
}

// LogNodes logs every node the builder creates at debug level.
func LogNodes(logger *zap.Logger) model.BuildOption {
	return &nodeLogger{logger: logging.OrNop(logger)}
}
