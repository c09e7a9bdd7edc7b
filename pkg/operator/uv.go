package operator

import (
	"github.com/askiada/go-uvtool/pkg/host"
)

const (
	// UVAttrib is the vertex attribute every UV node reads and writes.
	UVAttrib = "uv"
	// CurvatureAttrib receives the per point curvature.
	CurvatureAttrib = "curvature"
	// SharpEdgesGroup is the edge group used as forced seams.
	SharpEdgesGroup = "sharp_edges"
)

// ObjectMerge references the output of another network by path. The path is looked up by the host each
// time, the referenced network keeps its own lifetime.
type ObjectMerge struct {
	ObjPath host.Path
}

func (o ObjectMerge) Type() host.NodeType { return host.TypeObjectMerge }

func (o ObjectMerge) Validate() error {
	if !o.ObjPath.Within(host.RootPath) || o.ObjPath == host.RootPath {
		return invalid(o, "path %q is not under %s", o.ObjPath, host.RootPath)
	}

	return nil
}

func (o ObjectMerge) Params() []host.Param {
	return []host.Param{{Key: "objpath1", Value: string(o.ObjPath)}}
}

// MeasureKind is the quantity a Measure node computes.
type MeasureKind int

const (
	MeasurePerimeter MeasureKind = 1
	MeasureArea      MeasureKind = 2
	MeasureVolume    MeasureKind = 3
	MeasureCurvature MeasureKind = 4
)

// GroupType is the element class of a group or attribute.
type GroupType int

const (
	GroupPoints     GroupType = 0
	GroupPrimitives GroupType = 1
	GroupEdges      GroupType = 2
)

// Measure stores a measurement in an attribute.
type Measure struct {
	Kind       MeasureKind
	AttribName string
	GroupType  GroupType
}

// PointCurvature measures curvature per point into CurvatureAttrib.
func PointCurvature() Measure {
	return Measure{Kind: MeasureCurvature, AttribName: CurvatureAttrib, GroupType: GroupPoints}
}

func (o Measure) Type() host.NodeType { return host.TypeMeasure }

func (o Measure) Validate() error {
	if o.Kind < MeasurePerimeter || o.Kind > MeasureCurvature {
		return invalid(o, "unknown measure %d", o.Kind)
	}

	if o.AttribName == "" {
		return invalid(o, "attribute name must be set")
	}

	if o.Kind == MeasureCurvature && o.GroupType != GroupPoints {
		return invalid(o, "curvature is only measured on points")
	}

	return nil
}

func (o Measure) Params() []host.Param {
	return []host.Param{
		{Key: "measure", Value: int(o.Kind)},
		{Key: "attribname", Value: o.AttribName},
		{Key: "grouptype", Value: int(o.GroupType)},
	}
}

// GroupBase selects what a new group starts from.
type GroupBase int

const (
	// BaseEmpty starts from an empty group.
	BaseEmpty GroupBase = 0
	// BaseExisting unions with a group of the same name.
	BaseExisting GroupBase = 1
)

const (
	DefaultMinEdgeAngle = 80.0
	DefaultMaxEdgeAngle = 110.0
)

// GroupCreate builds an edge group from dihedral angle limits.
type GroupCreate struct {
	GroupName    string
	GroupType    GroupType
	GroupEdges   bool
	UseMinAngle  bool
	UseMaxAngle  bool
	MinEdgeAngle float64
	MaxEdgeAngle float64
	Unshared     bool
	Base         GroupBase
}

// SharpEdges groups edges whose dihedral angle is in [80, 110] degrees, unshared edges included, into
// SharpEdgesGroup starting from an empty group.
func SharpEdges() GroupCreate {
	return GroupCreate{
		GroupName:    SharpEdgesGroup,
		GroupType:    GroupEdges,
		GroupEdges:   true,
		UseMinAngle:  true,
		UseMaxAngle:  true,
		MinEdgeAngle: DefaultMinEdgeAngle,
		MaxEdgeAngle: DefaultMaxEdgeAngle,
		Unshared:     true,
		Base:         BaseEmpty,
	}
}

func (o GroupCreate) Type() host.NodeType { return host.TypeGroupCreate }

func (o GroupCreate) Validate() error {
	if o.GroupName == "" {
		return invalid(o, "group name must be set")
	}

	if o.GroupType != GroupEdges || !o.GroupEdges {
		return invalid(o, "angle limits need an edge group")
	}

	if o.MinEdgeAngle < 0 || o.MaxEdgeAngle > 180 {
		return invalid(o, "angles must be within [0, 180], got [%g, %g]", o.MinEdgeAngle, o.MaxEdgeAngle)
	}

	if o.UseMinAngle && o.UseMaxAngle && o.MinEdgeAngle > o.MaxEdgeAngle {
		return invalid(o, "min angle %g above max angle %g", o.MinEdgeAngle, o.MaxEdgeAngle)
	}

	return nil
}

func (o GroupCreate) Params() []host.Param {
	return []host.Param{
		{Key: "groupname", Value: o.GroupName},
		{Key: "grouptype", Value: int(o.GroupType)},
		{Key: "groupedges", Value: o.GroupEdges},
		{Key: "dominedgeangle", Value: o.UseMinAngle},
		{Key: "domaxedgeangle", Value: o.UseMaxAngle},
		{Key: "minedgeangle", Value: o.MinEdgeAngle},
		{Key: "maxedgeangle", Value: o.MaxEdgeAngle},
		{Key: "unshared", Value: o.Unshared},
		{Key: "groupbase", Value: int(o.Base)},
	}
}

// Selects reports whether an edge joins the group: its dihedral angle, in degrees, must be within the enabled
// limits whatever the edge's boundary status. Unshared edges are only eligible when Unshared is set; callers
// pass them with the angle they measured, 0 when none exists.
func (o GroupCreate) Selects(angle float64, shared bool) bool {
	if !shared && !o.Unshared {
		return false
	}

	if o.UseMinAngle && angle < o.MinEdgeAngle {
		return false
	}

	if o.UseMaxAngle && angle > o.MaxEdgeAngle {
		return false
	}

	return o.UseMinAngle || o.UseMaxAngle
}

// UVFlatten flattens UVs, cutting along SeamGroup.
type UVFlatten struct {
	SeamGroup         string
	UVAttrib          string
	KeepExistingSeams bool
}

// FlattenAlongSharpEdges cuts along SharpEdgesGroup and keeps seams already present.
func FlattenAlongSharpEdges() UVFlatten {
	return UVFlatten{SeamGroup: SharpEdgesGroup, UVAttrib: UVAttrib, KeepExistingSeams: true}
}

func (o UVFlatten) Type() host.NodeType { return host.TypeUVFlatten }

func (o UVFlatten) Validate() error {
	if o.UVAttrib == "" {
		return invalid(o, "uv attribute must be set")
	}

	return nil
}

func (o UVFlatten) Params() []host.Param {
	return []host.Param{
		{Key: "seamgroup", Value: o.SeamGroup},
		{Key: "uvattrib", Value: o.UVAttrib},
		{Key: "keepexistingseams", Value: o.KeepExistingSeams},
	}
}

// UVUnwrap unwraps islands with Spacing between them.
type UVUnwrap struct {
	UVAttrib string
	Spacing  float64
}

func Unwrap() UVUnwrap {
	return UVUnwrap{UVAttrib: UVAttrib, Spacing: 1}
}

func (o UVUnwrap) Type() host.NodeType { return host.TypeUVUnwrap }

func (o UVUnwrap) Validate() error {
	if o.UVAttrib == "" {
		return invalid(o, "uv attribute must be set")
	}

	if o.Spacing < 0 {
		return invalid(o, "negative spacing %g", o.Spacing)
	}

	return nil
}

func (o UVUnwrap) Params() []host.Param {
	return []host.Param{
		{Key: "uvattrib", Value: o.UVAttrib},
		{Key: "spacing", Value: o.Spacing},
	}
}

// UVLayout packs islands into the unit square.
type UVLayout struct {
	UVAttrib         string
	PackBetween      bool
	Padding          int
	PaddingBoundary  bool
	AxisAlignIslands bool
	StackIslands     bool
	InvertedOverlays bool
}

// PackUnitSquare packs every island with 5 units of padding, stacking identical islands.
func PackUnitSquare() UVLayout {
	return UVLayout{
		UVAttrib:         UVAttrib,
		PackBetween:      true,
		Padding:          5,
		PaddingBoundary:  true,
		AxisAlignIslands: false,
		StackIslands:     true,
		InvertedOverlays: true,
	}
}

func (o UVLayout) Type() host.NodeType { return host.TypeUVLayout }

func (o UVLayout) Validate() error {
	if o.UVAttrib == "" {
		return invalid(o, "uv attribute must be set")
	}

	if o.Padding < 0 {
		return invalid(o, "negative padding %d", o.Padding)
	}

	return nil
}

func (o UVLayout) Params() []host.Param {
	return []host.Param{
		{Key: "uvattrib", Value: o.UVAttrib},
		{Key: "packbetween", Value: o.PackBetween},
		{Key: "padding", Value: o.Padding},
		{Key: "paddingboundary", Value: o.PaddingBoundary},
		{Key: "axisalignislands", Value: o.AxisAlignIslands},
		{Key: "stackislands", Value: o.StackIslands},
		{Key: "invertedoverlays", Value: o.InvertedOverlays},
	}
}

// VisualizeIslandsParam toggles the island overlay of a VisualizeUVs node.
const VisualizeIslandsParam = "visualize_islands"

// VisualizeUVs overlays UV islands in the viewport.
type VisualizeUVs struct {
	VisualizeIslands bool
}

func (o VisualizeUVs) Type() host.NodeType { return host.TypeVisualizeUVs }

func (o VisualizeUVs) Validate() error { return nil }

func (o VisualizeUVs) Params() []host.Param {
	return []host.Param{{Key: VisualizeIslandsParam, Value: o.VisualizeIslands}}
}
