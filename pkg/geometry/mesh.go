// Package geometry holds a minimal polygon mesh and the edge analysis behind the sharp edge seam group, so the
// seams a UV network will cut can be previewed without the host.
package geometry

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is a polygon mesh. Faces index Points counter-clockwise.
type Mesh struct {
	Name   string
	Points []r3.Vec
	Faces  [][]int
}

// Validate checks every face has at least three distinct in-range points.
func (m *Mesh) Validate() error {
	for fIdx, face := range m.Faces {
		if len(face) < 3 {
			return errors.Wrapf(ErrInvalidMesh, "face %d has %d points", fIdx, len(face))
		}

		seen := make(map[int]struct{}, len(face))
		for _, p := range face {
			if p < 0 || p >= len(m.Points) {
				return errors.Wrapf(ErrInvalidMesh, "face %d references point %d of %d", fIdx, p, len(m.Points))
			}

			if _, ok := seen[p]; ok {
				return errors.Wrapf(ErrInvalidMesh, "face %d uses point %d twice", fIdx, p)
			}

			seen[p] = struct{}{}
		}
	}

	return nil
}

// FaceNormal returns the unit normal of face fIdx using Newell's method. A degenerate face has a zero normal.
func (m *Mesh) FaceNormal(fIdx int) r3.Vec {
	face := m.Faces[fIdx]

	var n r3.Vec
	for i := range face {
		cur := m.Points[face[i]]
		next := m.Points[face[(i+1)%len(face)]]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}

	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}

	return r3.Unit(n)
}

// Edge is an undirected edge, A < B, with the faces using it.
type Edge struct {
	A, B  int
	Faces []int
}

// Shared reports whether exactly two faces meet at the edge. Boundary and non-manifold edges are not shared.
func (e Edge) Shared() bool {
	return len(e.Faces) == 2
}

func sortPair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}

	return [2]int{b, a}
}

// Edges returns every edge of the mesh ordered by point indices.
func (m *Mesh) Edges() []Edge {
	faces := make(map[[2]int][]int)

	for fIdx, face := range m.Faces {
		for i := range face {
			key := sortPair(face[i], face[(i+1)%len(face)])
			faces[key] = append(faces[key], fIdx)
		}
	}

	edges := make([]Edge, 0, len(faces))
	for key, list := range faces {
		edges = append(edges, Edge{A: key[0], B: key[1], Faces: list})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}

		return edges[i].B < edges[j].B
	})

	return edges
}

// DihedralAngle returns the angle in degrees between the normals of the two faces sharing e: 0 on a flat
// surface, 90 on a cube edge. ok is false when the edge is not shared or a face is degenerate.
func (m *Mesh) DihedralAngle(e Edge) (angle float64, ok bool) {
	if !e.Shared() {
		return 0, false
	}

	n0 := m.FaceNormal(e.Faces[0])
	n1 := m.FaceNormal(e.Faces[1])

	if n0 == (r3.Vec{}) || n1 == (r3.Vec{}) {
		return 0, false
	}

	cos := math.Max(-1, math.Min(1, r3.Dot(n0, n1)))

	return math.Acos(cos) * 180 / math.Pi, true
}
