package host

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrInvalidName     = errors.New("invalid node name")
	ErrInvalidParam    = errors.New("invalid parameter value")
	ErrParamNotFound   = errors.New("parameter not found")
	ErrInvalidInput    = errors.New("invalid input connection")
	ErrUnknownNodeType = errors.New("unknown node type")
)

// NodeType is the host type tag of a node.
type NodeType string

const (
	TypeGeo          NodeType = "geo"
	TypeFile         NodeType = "file"
	TypeAttribDelete NodeType = "attribdelete"
	TypeBlast        NodeType = "blast"
	TypeClean        NodeType = "clean"
	TypePolyReduce   NodeType = "polyreduce"
	TypeSwitch       NodeType = "switch"
	TypeFileCache    NodeType = "filecache"
	TypeNull         NodeType = "null"
	TypeObjectMerge  NodeType = "object_merge"
	TypeMeasure      NodeType = "measure"
	TypeGroupCreate  NodeType = "groupcreate"
	TypeUVFlatten    NodeType = "uvflatten"
	TypeUVUnwrap     NodeType = "uvunwrap"
	TypeUVLayout     NodeType = "uvlayout"
	TypeVisualizeUVs NodeType = "visualize_uvs"
	TypeFBXExport    NodeType = "rop_fbx"
)

var knownTypes = map[NodeType]struct{}{
	TypeGeo: {}, TypeFile: {}, TypeAttribDelete: {}, TypeBlast: {}, TypeClean: {},
	TypePolyReduce: {}, TypeSwitch: {}, TypeFileCache: {}, TypeNull: {}, TypeObjectMerge: {},
	TypeMeasure: {}, TypeGroupCreate: {}, TypeUVFlatten: {}, TypeUVUnwrap: {}, TypeUVLayout: {},
	TypeVisualizeUVs: {}, TypeFBXExport: {},
}

// Known reports whether the host provides the node type.
func (t NodeType) Known() bool {
	_, ok := knownTypes[t]

	return ok
}

// Path addresses a node in the host hierarchy, e.g. /obj/crate_remesh/MESH_OUT.
type Path string

// RootPath is the object level every container is created under.
const RootPath Path = "/obj"

// Join returns the path of the child named name.
func (p Path) Join(name string) Path {
	return Path(path.Join(string(p), name))
}

// Name returns the last element of the path.
func (p Path) Name() string {
	return path.Base(string(p))
}

// Parent returns the path of the owning node.
func (p Path) Parent() Path {
	return Path(path.Dir(string(p)))
}

// Within reports whether p is parent itself or lives under it.
func (p Path) Within(parent Path) bool {
	return p == parent || strings.HasPrefix(string(p), string(parent)+"/")
}

func (p Path) String() string {
	return string(p)
}

// Param is a named parameter value. Values are string, int, float64 or bool.
type Param struct {
	Key   string
	Value any
}

// ValidValue reports whether the host can store v as a parameter value.
func ValidValue(v any) bool {
	switch v.(type) {
	case string, int, float64, bool:
		return true
	default:
		return false
	}
}

// Host is the node-graph API used to build pipelines.
type Host interface {
	// Root returns the object level path.
	Root() Path
	// CreateNode creates a node of the given type under parent. The returned path may carry a numeric
	// suffix when name is already taken.
	CreateNode(parent Path, nodeType NodeType, name string) (Path, error)
	// SetInput connects the primary output of source to the input index of node.
	SetInput(node Path, index int, source Path) error
	// SetParam sets a named parameter.
	SetParam(node Path, key string, value any) error
	// Param returns a named parameter.
	Param(node Path, key string) (any, error)
	// SetDisplayFlag sets the display flag of node.
	SetDisplayFlag(node Path, on bool) error
	// Children lists the direct children of node in creation order.
	Children(node Path) ([]Path, error)
	// Destroy deletes node and everything it owns.
	Destroy(node Path) error
	// Exists reports whether path resolves to a node.
	Exists(node Path) bool
}
