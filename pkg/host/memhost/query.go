package memhost

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-uvtool/pkg/host"
)

// Type returns the node type of p.
func (h *Host) Type(p host.Path) (host.NodeType, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.node(p)
	if err != nil {
		return "", err
	}

	return n.Type, nil
}

// Inputs returns the input connections of p by index. Unset indices are empty paths.
func (h *Host) Inputs(p host.Path) ([]host.Path, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.node(p)
	if err != nil {
		return nil, err
	}

	inputs := make([]host.Path, len(n.Inputs))
	copy(inputs, n.Inputs)

	return inputs, nil
}

// DisplayFlag returns the display flag of p.
func (h *Host) DisplayFlag(p host.Path) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.node(p)
	if err != nil {
		return false, err
	}

	return n.Display, nil
}

// ActiveUpstream returns the nodes p actually reads from, nearest first. A switch only reads its selected
// input and an object merge reads the node named by its objpath1 parameter when that path still resolves.
func (h *Host) ActiveUpstream(p host.Path) ([]host.Path, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start, err := h.node(p)
	if err != nil {
		return nil, err
	}

	var upstream []host.Path
	visited := map[host.Path]struct{}{p: {}}
	queue := []*Node{start}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, source := range activeInputs(n) {
			if _, ok := visited[source]; ok {
				continue
			}
			visited[source] = struct{}{}

			next, err := h.node(source)
			if err != nil {
				continue
			}
			upstream = append(upstream, source)
			queue = append(queue, next)
		}
	}

	return upstream, nil
}

func activeInputs(n *Node) []host.Path {
	switch n.Type {
	case host.TypeSwitch:
		selected, _ := n.Params["input"].(int)
		if selected < 0 || selected >= len(n.Inputs) || n.Inputs[selected] == "" {
			return nil
		}

		return []host.Path{n.Inputs[selected]}
	case host.TypeObjectMerge:
		ref, _ := n.Params["objpath1"].(string)
		if ref == "" {
			return nil
		}

		return []host.Path{host.Path(ref)}
	default:
		inputs := make([]host.Path, 0, len(n.Inputs))
		for _, in := range n.Inputs {
			if in != "" {
				inputs = append(inputs, in)
			}
		}

		return inputs
	}
}

// Snapshot is a serialisable view of a node and everything under it.
type Snapshot struct {
	Path     string         `yaml:"path"`
	Type     string         `yaml:"type,omitempty"`
	Display  bool           `yaml:"display,omitempty"`
	Inputs   []string       `yaml:"inputs,omitempty"`
	Params   map[string]any `yaml:"params,omitempty"`
	Children []Snapshot     `yaml:"children,omitempty"`
}

// Snapshot captures p and its descendants.
func (h *Host) Snapshot(p host.Path) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.node(p)
	if err != nil {
		return Snapshot{}, err
	}

	return h.snapshot(n), nil
}

func (h *Host) snapshot(n *Node) Snapshot {
	snap := Snapshot{
		Path:    string(n.Path),
		Type:    string(n.Type),
		Display: n.Display,
	}

	for _, in := range n.Inputs {
		snap.Inputs = append(snap.Inputs, string(in))
	}

	if len(n.Params) > 0 {
		snap.Params = make(map[string]any, len(n.Params))
		for k, v := range n.Params {
			snap.Params[k] = v
		}
	}

	for _, childPath := range n.children {
		child, err := h.node(childPath)
		if err != nil {
			continue
		}
		snap.Children = append(snap.Children, h.snapshot(child))
	}

	return snap
}

// Dump writes the snapshot of p as YAML.
func (h *Host) Dump(w io.Writer, p host.Path) error {
	snap, err := h.Snapshot(p)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(snap); err != nil {
		return errors.Wrap(err, "unable to encode snapshot")
	}

	return errors.Wrap(enc.Close(), "unable to flush snapshot")
}
