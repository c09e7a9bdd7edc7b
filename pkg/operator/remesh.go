package operator

import (
	"strings"

	"github.com/askiada/go-uvtool/pkg/host"
)

// FileImport reads geometry from disk.
type FileImport struct {
	File string
}

func (o FileImport) Type() host.NodeType { return host.TypeFile }

func (o FileImport) Validate() error {
	if strings.TrimSpace(o.File) == "" {
		return invalid(o, "file must be set")
	}

	return nil
}

func (o FileImport) Params() []host.Param {
	return []host.Param{{Key: "file", Value: o.File}}
}

// AttribDelete removes vertex attributes.
type AttribDelete struct {
	VertexAttribs []string
}

// StripUVs discards both UV channels; they are always derived again downstream.
func StripUVs() AttribDelete {
	return AttribDelete{VertexAttribs: []string{"uv", "uv2"}}
}

func (o AttribDelete) Type() host.NodeType { return host.TypeAttribDelete }

func (o AttribDelete) Validate() error {
	if len(o.VertexAttribs) == 0 {
		return invalid(o, "no attribute to delete")
	}

	for _, name := range o.VertexAttribs {
		if name == "" || strings.ContainsAny(name, " \t") {
			return invalid(o, "bad attribute name %q", name)
		}
	}

	return nil
}

func (o AttribDelete) Params() []host.Param {
	return []host.Param{{Key: "vtxdel", Value: strings.Join(o.VertexAttribs, " ")}}
}

// CollisionGroup matches primitives named with the collision mesh convention.
const CollisionGroup = "@name=UCX"

// Blast deletes the primitives matched by Group.
type Blast struct {
	Group string
}

func (o Blast) Type() host.NodeType { return host.TypeBlast }

func (o Blast) Validate() error {
	if o.Group == "" {
		return invalid(o, "group must be set")
	}

	return nil
}

func (o Blast) Params() []host.Param {
	return []host.Param{{Key: "group", Value: o.Group}}
}

// Clean merges coincident points and removes degenerate primitives with the host defaults.
type Clean struct{}

func (o Clean) Type() host.NodeType { return host.TypeClean }

func (o Clean) Validate() error { return nil }

func (o Clean) Params() []host.Param { return nil }

// ReduceTarget selects how PolyReduce measures its goal.
type ReduceTarget int

const (
	ReducePercentage ReduceTarget = iota
	ReducePointCount
	ReducePolygonCount
)

// DefaultFinalCount is the polygon budget of the reduced variant.
const DefaultFinalCount = 1000

// PolyReduce lowers the polygon count.
type PolyReduce struct {
	Target     ReduceTarget
	FinalCount int
}

// ReduceToPolygons reduces to exactly DefaultFinalCount polygons whatever the input density.
func ReduceToPolygons() PolyReduce {
	return PolyReduce{Target: ReducePolygonCount, FinalCount: DefaultFinalCount}
}

func (o PolyReduce) Type() host.NodeType { return host.TypePolyReduce }

func (o PolyReduce) Validate() error {
	if o.Target != ReducePolygonCount && o.Target != ReducePointCount {
		return invalid(o, "unsupported target %d", o.Target)
	}

	if o.FinalCount <= 0 {
		return invalid(o, "final count must be positive, got %d", o.FinalCount)
	}

	return nil
}

func (o PolyReduce) Params() []host.Param {
	return []host.Param{
		{Key: "target", Value: int(o.Target)},
		{Key: "finalcount", Value: o.FinalCount},
	}
}

// Switch passes exactly one of its Inputs through.
type Switch struct {
	Input  int
	Inputs int
}

// Select picks the second of two inputs when second is true.
func Select(second bool) Switch {
	sw := Switch{Inputs: 2}
	if second {
		sw.Input = 1
	}

	return sw
}

func (o Switch) Type() host.NodeType { return host.TypeSwitch }

func (o Switch) Validate() error {
	if o.Inputs < 1 {
		return invalid(o, "needs at least one input")
	}

	if o.Input < 0 || o.Input >= o.Inputs {
		return invalid(o, "input %d out of range [0, %d)", o.Input, o.Inputs)
	}

	return nil
}

func (o Switch) Params() []host.Param {
	return []host.Param{{Key: "input", Value: o.Input}}
}
