package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/logging"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

// Builder creates nodes in a host and reports each of them to the build options.
type Builder struct {
	host      host.Host
	logger    *zap.Logger
	opts      []model.BuildOption
	startTime time.Time
	finished  bool
}

// New creates a new builder.
func New(h host.Host, logger *zap.Logger, opts ...model.BuildOption) (*Builder, error) {
	if h == nil {
		return nil, errors.New("host must be set")
	}

	b := &Builder{
		host:      h,
		logger:    logging.OrNop(logger),
		opts:      opts,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply build option")
		}
	}

	return b, nil
}

// Host returns the host the builder writes to.
func (b *Builder) Host() host.Host {
	return b.host
}

// Elapsed returns the time spent since the builder was created.
func (b *Builder) Elapsed() time.Duration {
	return time.Since(b.startTime)
}

// Finish runs the Finish hook of every option. No node can be added afterwards.
func (b *Builder) Finish() error {
	if b == nil {
		return ErrBuilderMustBeSet
	}

	if b.finished {
		return ErrBuilderFinished
	}

	b.finished = true

	for _, opt := range b.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish build option")
		}
	}

	return nil
}

func (b *Builder) check() error {
	if b == nil {
		return ErrBuilderMustBeSet
	}

	if b.finished {
		return ErrBuilderFinished
	}

	return nil
}
