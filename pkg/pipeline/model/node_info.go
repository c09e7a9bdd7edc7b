package model

import "github.com/askiada/go-uvtool/pkg/host"

// NodeKind tells how a node was attached to the network.
type NodeKind string

const (
	// RootKind nodes have no input.
	RootKind NodeKind = "root"
	// StepKind nodes read a single input.
	StepKind NodeKind = "step"
	// SelectorKind nodes read several inputs and pass one of them through.
	SelectorKind NodeKind = "selector"
	// ReferenceKind nodes read another network by path instead of by connection.
	ReferenceKind NodeKind = "reference"
	// SinkKind nodes end a chain.
	SinkKind NodeKind = "sink"
	// MarkerKind is used for the start and end markers.
	MarkerKind NodeKind = "marker"
)

// NodeInfo describes a node created by the builder. Path is empty until the host created the node.
type NodeInfo struct {
	Kind NodeKind
	Name string
	Type host.NodeType
	Path host.Path
}

// Key identifies the node across networks.
func (n *NodeInfo) Key() string {
	if n.Path == "" {
		return n.Name
	}

	return string(n.Path)
}

var (
	// StartNode is the virtual parent of every root node.
	StartNode = &NodeInfo{Kind: MarkerKind, Name: "start"}
	// EndNode is the virtual child of every sink.
	EndNode = &NodeInfo{Kind: MarkerKind, Name: "end"}
)
