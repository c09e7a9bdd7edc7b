package model

import "time"

// BuildOption defines the interface for build options. An option observes every node the builder creates.
type BuildOption interface {
	// New initialises the build option.
	New() error
	// PrepareNode runs before the node is created in the host. node.Path is not set yet.
	PrepareNode(parents []*NodeInfo, node *NodeInfo) error
	// OnNodeCreated runs once the node is created, connected and configured.
	OnNodeCreated(parents []*NodeInfo, node *NodeInfo, elapsed time.Duration) error
	// Finish runs after the build is finished.
	Finish() error
}
