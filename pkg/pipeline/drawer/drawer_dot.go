package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-uvtool/internal/store"
	"github.com/askiada/go-uvtool/pkg/pipeline/measure"
)

// DOTDrawer is a drawer that writes the network as a DOT file. Nodes keep the order they were added in.
type DOTDrawer struct {
	graph    graph.Graph[string, string]
	store    store.CustomStore[string, string]
	fileName string
	out      io.Writer
}

// NewDOTDrawer creates a drawer writing to fileName.
func NewDOTDrawer(fileName string) *DOTDrawer {
	st := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		fileName: fileName,
		store:    st,
		graph:    graph.NewWithStore(graph.StringHash, st, graph.Directed()),
	}
}

// NewDOTWriter creates a drawer writing to out.
func NewDOTWriter(out io.Writer) *DOTDrawer {
	d := NewDOTDrawer("")
	d.out = out

	return d
}

// AddNode adds a node to the drawing.
func (d *DOTDrawer) AddNode(name string, attributes map[string]string) error {
	opts := make([]func(*graph.VertexProperties), 0, len(attributes))
	for k, v := range attributes {
		opts = append(opts, graph.VertexAttribute(k, v))
	}

	err := d.graph.AddVertex(name, opts...)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between parent and child nodes.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// AddReference adds a dashed link between parent and child nodes.
func (d *DOTDrawer) AddReference(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName, graph.EdgeAttribute("style", "dashed"))
	if err != nil {
		return errors.Wrapf(err, "unable to add reference from %s to %s", parentName, childName)
	}

	return nil
}

// Draw writes the DOT description.
func (d *DOTDrawer) Draw() error {
	if d.out != nil {
		return dot(d.graph, d.store.OrderedVertices(), d.out)
	}

	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}

	err = dot(d.graph, d.store.OrderedVertices(), file)
	if err != nil {
		_ = file.Close()

		return errors.Wrapf(err, "unable to create dot file %s", d.fileName)
	}

	return errors.Wrapf(file.Close(), "unable to close dot file %s", d.fileName)
}

// SetTotalTime labels the node with the time spent since startTime.
func (d *DOTDrawer) SetTotalTime(name string, startTime time.Time) error {
	return d.setXLabel(name, time.Since(startTime).String())
}

func (d *DOTDrawer) setXLabel(name, xlabel string) error {
	err := d.store.UpdateVertex(name, func(props *graph.VertexProperties) {
		props.Attributes["xlabel"] = xlabel
	})
	if err != nil {
		return errors.Wrapf(err, "unable to update vertex %s", name)
	}

	return nil
}

const maxRGB = 240

// gradient maps value between minValue and maxValue from blue to red.
func gradient(value, minValue, maxValue time.Duration) (string, error) {
	fraction := 1.0
	if maxValue > minValue {
		fraction = float64(value-minValue) / float64(maxValue-minValue)
	}

	red := maxRGB * fraction
	blue := maxRGB - red

	colour, err := colors.RGB(uint8(red), 0, uint8(blue))
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return colour.ToHEX().String(), nil
}

func bounds(values []time.Duration) (time.Duration, time.Duration) {
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return values[0], values[len(values)-1]
}

// AddMeasure colours every measured node by its construction duration and every link by the time between its
// two ends being ready. Slow is red, fast is blue.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	nodeElapsed := []time.Duration{}
	linkElapsed := []time.Duration{}

	metrics := msr.AllMetrics()
	for _, mt := range metrics {
		if avg := mt.AVGDuration(); avg > 0 {
			nodeElapsed = append(nodeElapsed, avg)
		}

		for _, info := range mt.AVGTransportDuration() {
			if info.Elapsed > 0 {
				linkElapsed = append(linkElapsed, info.Elapsed)
			}
		}
	}

	var err error

	if len(nodeElapsed) > 0 {
		minNode, maxNode := bounds(nodeElapsed)

		err = d.colourNodes(metrics, minNode, maxNode)
		if err != nil {
			return err
		}
	}

	if len(linkElapsed) > 0 {
		minLink, maxLink := bounds(linkElapsed)

		err = d.colourLinks(metrics, minLink, maxLink)
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DOTDrawer) colourNodes(metrics map[string]measure.Metric, minValue, maxValue time.Duration) error {
	for name, mt := range metrics {
		if _, err := d.graph.Vertex(name); err != nil {
			continue
		}

		xlabel := ""
		if avg := mt.AVGDuration(); avg > 0 {
			colour, err := gradient(avg, minValue, maxValue)
			if err != nil {
				return err
			}

			xlabel = avg.String()

			err = d.store.UpdateVertex(name, func(props *graph.VertexProperties) {
				props.Attributes["style"] = "filled"
				props.Attributes["fillcolor"] = colour
				props.Attributes["fontcolor"] = "white"
			})
			if err != nil {
				return errors.Wrap(err, "unable to update vertex")
			}
		}

		if total := mt.GetTotalDuration(); total > 0 {
			if xlabel != "" {
				xlabel += ", "
			}

			xlabel += "end: " + total.String()
		}

		if xlabel != "" {
			if err := d.setXLabel(name, xlabel); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *DOTDrawer) colourLinks(metrics map[string]measure.Metric, minValue, maxValue time.Duration) error {
	for name, mt := range metrics {
		for input, info := range mt.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			if _, err := d.graph.Edge(input, name); err != nil {
				continue
			}

			colour, err := gradient(info.Elapsed, minValue, maxValue)
			if err != nil {
				return err
			}

			err = d.graph.UpdateEdge(input, name,
				graph.EdgeAttribute("label", info.Elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", colour),
			)
			if err != nil {
				return errors.Wrap(err, "unable to update edge")
			}
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(g graph.Graph[string, string], order []string, wrt io.Writer) error {
	desc, err := generateDOT(g, order)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

func generateDOT(gra graph.Graph[string, string], order []string) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   map[string]string{"rankdir": "TB"},
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for _, vertex := range order {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))
		for k, v := range sourceProperties.Attributes {
			sourceAttributes[k] = v
		}

		htmlAttributes := make(map[string]string)

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			label := vertex
			if l, ok := sourceAttributes["label"]; ok {
				label = l
			}

			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, label, xlabel)

			delete(sourceAttributes, "xlabel")
			delete(sourceAttributes, "label")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}

		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			stmt := statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
