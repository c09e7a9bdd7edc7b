package geometry

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrMalformedOBJ = errors.New("malformed OBJ")

// ReadOBJFile reads the Wavefront OBJ file at path. The mesh is named after the file when it has no object name.
func ReadOBJFile(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	m, err := ReadOBJ(file)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	if m.Name == "" {
		m.Name = path
	}

	return m, nil
}

// ReadOBJ reads the points and faces of a Wavefront OBJ stream. Texture coordinates, normals and every other
// statement are ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			if len(fields) > 1 && m.Name == "" {
				m.Name = strings.Join(fields[1:], " ")
			}
		case "v":
			p, err := parsePoint(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}

			m.Points = append(m.Points, p)
		case "f":
			face, err := parseFace(fields[1:], len(m.Points))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}

			m.Faces = append(m.Faces, face)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read OBJ")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func parsePoint(fields []string) (r3.Vec, error) {
	if len(fields) < 3 {
		return r3.Vec{}, errors.Wrapf(ErrMalformedOBJ, "vertex has %d coordinates", len(fields))
	}

	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return r3.Vec{}, errors.Wrapf(ErrMalformedOBJ, "vertex coordinate %q", fields[i])
		}

		coords[i] = v
	}

	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// parseFace resolves v, v/vt, v//vn and v/vt/vn references, 1-based or negative relative to the points read so far.
func parseFace(fields []string, points int) ([]int, error) {
	if len(fields) < 3 {
		return nil, errors.Wrapf(ErrMalformedOBJ, "face has %d points", len(fields))
	}

	face := make([]int, 0, len(fields))
	for _, field := range fields {
		ref, _, _ := strings.Cut(field, "/")

		idx, err := strconv.Atoi(ref)
		if err != nil || idx == 0 {
			return nil, errors.Wrapf(ErrMalformedOBJ, "face reference %q", field)
		}

		if idx < 0 {
			idx += points
		} else {
			idx--
		}

		if idx < 0 || idx >= points {
			return nil, errors.Wrapf(ErrMalformedOBJ, "face reference %q out of range", field)
		}

		face = append(face, idx)
	}

	return face, nil
}
