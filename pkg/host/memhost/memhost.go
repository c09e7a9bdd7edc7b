// Package memhost is an in-process implementation of the host node-graph API.
//
// Nodes live in a directed graph whose edges are input connections (source -> consumer). Ownership is kept
// separately: every node belongs to exactly one parent and destroying a parent destroys its whole subtree.
// No geometry is ever evaluated; the host only records what was built.
package memhost

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-uvtool/internal/store"
	"github.com/askiada/go-uvtool/pkg/host"
)

// Node is a node recorded by the host.
type Node struct {
	Path     host.Path
	Type     host.NodeType
	Params   map[string]any
	Inputs   []host.Path
	Display  bool
	children []host.Path
}

func nodeHash(n *Node) host.Path {
	return n.Path
}

// Host is the in-memory host.
type Host struct {
	mu    sync.Mutex
	store store.CustomStore[host.Path, *Node]
	graph graph.Graph[host.Path, *Node]
}

// New creates a host holding only the object level.
func New() *Host {
	st := store.NewMemoryStore[host.Path, *Node]()
	h := &Host{
		store: st,
		graph: graph.NewWithStore(nodeHash, st, graph.Directed(), graph.PreventCycles()),
	}

	// the root cannot collide in an empty store.
	_ = h.graph.AddVertex(&Node{Path: host.RootPath, Params: map[string]any{}})

	return h
}

func (h *Host) Root() host.Path {
	return host.RootPath
}

func (h *Host) node(p host.Path) (*Node, error) {
	n, err := h.graph.Vertex(p)
	if err != nil {
		return nil, errors.Wrapf(host.ErrNodeNotFound, "%s", p)
	}

	return n, nil
}

func (h *Host) Exists(p host.Path) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.node(p)

	return err == nil
}

func validName(name string) bool {
	return !strings.ContainsAny(name, "/ \t\n")
}

// uniqueName returns name, or name followed by the smallest free numeric suffix.
func uniqueName(parent *Node, name string, suffixFirst bool) string {
	taken := make(map[string]struct{}, len(parent.children))
	for _, child := range parent.children {
		taken[child.Name()] = struct{}{}
	}

	if !suffixFirst {
		if _, ok := taken[name]; !ok {
			return name
		}
	}

	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func (h *Host) CreateNode(parent host.Path, nodeType host.NodeType, name string) (host.Path, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !nodeType.Known() {
		return "", errors.Wrapf(host.ErrUnknownNodeType, "%q", nodeType)
	}

	if !validName(name) {
		return "", errors.Wrapf(host.ErrInvalidName, "%q", name)
	}

	parentNode, err := h.node(parent)
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve parent")
	}

	suffixFirst := name == ""
	if suffixFirst {
		name = string(nodeType)
	}

	n := &Node{
		Path:   parent.Join(uniqueName(parentNode, name, suffixFirst)),
		Type:   nodeType,
		Params: make(map[string]any),
	}

	err = h.graph.AddVertex(n, graph.VertexAttribute("type", string(nodeType)))
	if err != nil {
		return "", errors.Wrapf(err, "unable to add node %s", n.Path)
	}

	parentNode.children = append(parentNode.children, n.Path)

	return n.Path, nil
}

func (h *Host) SetInput(p host.Path, index int, source host.Path) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 {
		return errors.Wrapf(host.ErrInvalidInput, "negative index %d on %s", index, p)
	}

	n, err := h.node(p)
	if err != nil {
		return err
	}

	if _, err = h.node(source); err != nil {
		return err
	}

	if source.Parent() != p.Parent() {
		return errors.Wrapf(host.ErrInvalidInput, "%s and %s are in different networks", source, p)
	}

	err = h.graph.AddEdge(source, p)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(host.ErrInvalidInput, "%s -> %s: %v", source, p, err)
	}

	for len(n.Inputs) <= index {
		n.Inputs = append(n.Inputs, "")
	}

	previous := n.Inputs[index]
	n.Inputs[index] = source

	if previous != "" && previous != source && !connected(n, previous) {
		if err := h.graph.RemoveEdge(previous, p); err != nil {
			return errors.Wrapf(err, "unable to disconnect %s from %s", previous, p)
		}
	}

	return nil
}

func connected(n *Node, source host.Path) bool {
	for _, in := range n.Inputs {
		if in == source {
			return true
		}
	}

	return false
}

func (h *Host) SetParam(p host.Path, key string, value any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if key == "" || !host.ValidValue(value) {
		return errors.Wrapf(host.ErrInvalidParam, "%s %q=%v (%T)", p, key, value, value)
	}

	n, err := h.node(p)
	if err != nil {
		return err
	}

	n.Params[key] = value

	return nil
}

func (h *Host) Param(p host.Path, key string) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.node(p)
	if err != nil {
		return nil, err
	}

	v, ok := n.Params[key]
	if !ok {
		return nil, errors.Wrapf(host.ErrParamNotFound, "%s %q", p, key)
	}

	return v, nil
}

// SetDisplayFlag sets the display flag. A network displays one node at a time, so turning the flag on
// clears it on the siblings.
func (h *Host) SetDisplayFlag(p host.Path, on bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.node(p); err != nil {
		return err
	}

	if on {
		parent, err := h.node(p.Parent())
		if err != nil {
			return err
		}

		for _, sibling := range parent.children {
			if sibling == p {
				continue
			}
			if err := h.setDisplay(sibling, false); err != nil {
				return err
			}
		}
	}

	return h.setDisplay(p, on)
}

func (h *Host) setDisplay(p host.Path, on bool) error {
	n, err := h.node(p)
	if err != nil {
		return err
	}

	n.Display = on

	return h.store.UpdateVertex(p, func(props *graph.VertexProperties) {
		if on {
			props.Attributes["style"] = "bold"
		} else {
			delete(props.Attributes, "style")
		}
	})
}

func (h *Host) Children(p host.Path) ([]host.Path, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.node(p)
	if err != nil {
		return nil, err
	}

	children := make([]host.Path, len(n.children))
	copy(children, n.children)

	return children, nil
}

// Destroy removes p, everything under it and every connection touching those nodes. Inputs of surviving
// nodes that pointed into the subtree are left unset.
func (h *Host) Destroy(p host.Path) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p == host.RootPath {
		return errors.Wrap(host.ErrInvalidName, "the object level cannot be destroyed")
	}

	n, err := h.node(p)
	if err != nil {
		return err
	}

	subtree := h.collect(n, nil)
	removed := make(map[host.Path]struct{}, len(subtree))
	for _, doomed := range subtree {
		removed[doomed.Path] = struct{}{}
	}

	for _, doomed := range subtree {
		if err := h.disconnect(doomed, removed); err != nil {
			return err
		}
	}

	for _, doomed := range subtree {
		if err := h.graph.RemoveVertex(doomed.Path); err != nil {
			return errors.Wrapf(err, "unable to remove %s", doomed.Path)
		}
	}

	parent, err := h.node(p.Parent())
	if err != nil {
		return err
	}

	for i, child := range parent.children {
		if child == p {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)

			break
		}
	}

	return nil
}

// collect returns n and its descendants, children first.
func (h *Host) collect(n *Node, acc []*Node) []*Node {
	for _, childPath := range n.children {
		child, err := h.node(childPath)
		if err != nil {
			continue
		}
		acc = h.collect(child, acc)
	}

	return append(acc, n)
}

func (h *Host) disconnect(n *Node, removed map[host.Path]struct{}) error {
	for _, in := range n.Inputs {
		if in == "" {
			continue
		}
		err := h.graph.RemoveEdge(in, n.Path)
		if err != nil && !errors.Is(err, graph.ErrEdgeNotFound) {
			return errors.Wrapf(err, "unable to disconnect %s", n.Path)
		}
	}

	for _, otherPath := range h.store.OrderedVertices() {
		if _, ok := removed[otherPath]; ok {
			continue
		}
		other, err := h.node(otherPath)
		if err != nil {
			continue
		}
		for i, in := range other.Inputs {
			if in != n.Path {
				continue
			}
			other.Inputs[i] = ""
			err := h.graph.RemoveEdge(n.Path, otherPath)
			if err != nil && !errors.Is(err, graph.ErrEdgeNotFound) {
				return errors.Wrapf(err, "unable to disconnect %s from %s", n.Path, otherPath)
			}
		}
	}

	return nil
}

var _ host.Host = (*Host)(nil)
