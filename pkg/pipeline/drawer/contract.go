// Package drawer renders the network built by the pipeline builder as a Graphviz DOT file.
package drawer

import (
	"time"

	"github.com/askiada/go-uvtool/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a built network.
type Drawer interface {
	// AddNode adds a node to the drawing.
	AddNode(name string, attributes map[string]string) error
	// AddLink adds a connection between a parent and a child node.
	AddLink(parentName, childName string) error
	// AddReference adds a by-path dependency between a referenced node and the node reading it.
	AddReference(parentName, childName string) error
	// Draw writes the drawing.
	Draw() error
	// SetTotalTime labels the node with the time spent since startTime.
	SetTotalTime(name string, startTime time.Time) error
	// AddMeasure colours nodes and links from the measure.
	AddMeasure(measure measure.Measure) error
}
