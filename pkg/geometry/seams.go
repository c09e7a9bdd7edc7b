package geometry

// EdgeSelector decides whether an edge belongs to a group from its dihedral angle, or from the fact it is not
// shared by two faces.
type EdgeSelector interface {
	Selects(angle float64, shared bool) bool
}

// SelectEdges returns the edges sel puts in the group. Edges next to a degenerate face are treated as unshared.
// Unshared edges are passed with an angle of 0.
func (m *Mesh) SelectEdges(sel EdgeSelector) []Edge {
	var selected []Edge

	for _, e := range m.Edges() {
		angle, ok := m.DihedralAngle(e)
		if sel.Selects(angle, ok) {
			selected = append(selected, e)
		}
	}

	return selected
}

// Report summarises the seam selection on a mesh.
type Report struct {
	Name     string `yaml:"name"`
	Points   int    `yaml:"points"`
	Faces    int    `yaml:"faces"`
	Edges    int    `yaml:"edges"`
	Boundary int    `yaml:"boundary"`
	Seams    int    `yaml:"seams"`
}

// Analyze counts the edges of m and the ones sel selects as seams.
func Analyze(m *Mesh, sel EdgeSelector) Report {
	edges := m.Edges()

	report := Report{
		Name:   m.Name,
		Points: len(m.Points),
		Faces:  len(m.Faces),
		Edges:  len(edges),
		Seams:  len(m.SelectEdges(sel)),
	}

	for _, e := range edges {
		if !e.Shared() {
			report.Boundary++
		}
	}

	return report
}
