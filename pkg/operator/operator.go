// Package operator holds one typed configuration struct per host node type.
//
// A configuration is validated before any node is created, so an impossible parameter combination fails fast
// with ErrInvalidConfig instead of being silently ignored by the host.
package operator

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/pkg/host"
)

var ErrInvalidConfig = errors.New("invalid operator configuration")

// Operator is the configuration of a single host node.
type Operator interface {
	// Type returns the host node type the configuration applies to.
	Type() host.NodeType
	// Validate reports why the configuration cannot be applied.
	Validate() error
	// Params returns the parameters to set on the node, in order.
	Params() []host.Param
}

// Apply validates op and sets its parameters on node.
func Apply(h host.Host, node host.Path, op Operator) error {
	if err := op.Validate(); err != nil {
		return err
	}

	for _, param := range op.Params() {
		if err := h.SetParam(node, param.Key, param.Value); err != nil {
			return errors.Wrapf(err, "unable to set %s on %s", param.Key, node)
		}
	}

	return nil
}

func invalid(op Operator, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, "%s: "+format, append([]any{op.Type()}, args...)...)
}
