// Wavefront OBJ parser. Supports the v/vn/vt/f/o/usemtl directives;
// groups, smoothing groups and free-form surfaces are ignored.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/mesh2pov/pkg/math"
	"github.com/Faultbox/mesh2pov/pkg/mesh"
)

// OBJ parse errors reported as per-line warnings.
var (
	errBadFloat = errors.New("malformed float")
	errBadIndex = errors.New("malformed index")
)

// LineWarning records a malformed OBJ data line. The line's data is
// discarded and parsing continues.
type LineWarning struct {
	Line int    // 1-based line number
	Text string // trimmed line content
	Err  error
}

// String formats the warning for logging.
func (w LineWarning) String() string {
	return fmt.Sprintf("line %d: %q: %v", w.Line, w.Text, w.Err)
}

// OBJ is a parsed Wavefront OBJ file. Object and material names are
// tracked for inspection only; emission does not consume them.
type OBJ struct {
	Mesh      *mesh.Mesh
	Objects   []string // names from `o` directives, in file order
	Materials []string // names from `usemtl` directives, first use only
	Warnings  []LineWarning
}

// objState carries the per-line parse state threaded through the loop.
type objState struct {
	object   string // current `o` name
	material string // current `usemtl` name
	seenMtl  map[string]bool
}

// ParseOBJ parses OBJ data from a byte slice. Malformed data lines are
// recorded as warnings, never as errors.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{
		Mesh: &mesh.Mesh{Provenance: mesh.Polygonal},
	}
	st := objState{seenMtl: make(map[string]bool)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := parseOBJLine(obj, &st, line); err != nil {
			obj.Warnings = append(obj.Warnings, LineWarning{Line: lineNum, Text: line, Err: err})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ data: %w", err)
	}

	return obj, nil
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OBJ file %s: %w", path, err)
	}
	return obj, nil
}

// parseOBJLine handles one non-empty, non-comment line. A returned error
// means the line was malformed and none of its data was kept.
func parseOBJLine(obj *OBJ, st *objState, line string) error {
	fields := strings.Fields(line)
	m := obj.Mesh

	switch strings.ToLower(fields[0]) {
	case "v":
		if len(fields) < 4 {
			return nil
		}
		p, err := parseVec3(fields[1:4])
		if err != nil {
			return err
		}
		m.Positions = append(m.Positions, p)

	case "vn":
		if len(fields) < 4 {
			return nil
		}
		n, err := parseVec3(fields[1:4])
		if err != nil {
			return err
		}
		m.Normals = append(m.Normals, n)

	case "vt":
		if len(fields) < 3 {
			return nil
		}
		u, err := parseFloat(fields[1])
		if err != nil {
			return err
		}
		v, err := parseFloat(fields[2])
		if err != nil {
			return err
		}
		m.UVs = append(m.UVs, math.Vec2{X: u, Y: v})

	case "f":
		if len(fields) < 4 {
			return nil
		}
		face := make(mesh.Face, 0, len(fields)-1)
		for _, tok := range fields[1:] {
			c, err := parseCorner(tok)
			if err != nil {
				return err
			}
			face = append(face, c)
		}
		m.Faces = append(m.Faces, face)

	case "o":
		if len(fields) >= 2 {
			st.object = fields[1]
			obj.Objects = append(obj.Objects, fields[1])
		}

	case "usemtl":
		if len(fields) >= 2 {
			st.material = fields[1]
			if !st.seenMtl[fields[1]] {
				st.seenMtl[fields[1]] = true
				obj.Materials = append(obj.Materials, fields[1])
			}
		}
	}
	// Unknown directives are ignored.

	return nil
}

// parseCorner parses one face corner token of the form
// "pos", "pos/uv", "pos//normal" or "pos/uv/normal". Indices are 1-based
// in the file and converted to 0-based; an empty subfield yields
// mesh.NoIndex.
func parseCorner(tok string) (mesh.Corner, error) {
	sub := strings.Split(tok, "/")

	pos, err := parseIndex(sub[0])
	if err != nil {
		return mesh.Corner{}, err
	}

	c := mesh.Corner{Position: pos, UV: mesh.NoIndex, Normal: mesh.NoIndex}
	if len(sub) > 1 && sub[1] != "" {
		if c.UV, err = parseIndex(sub[1]); err != nil {
			return mesh.Corner{}, err
		}
	}
	if len(sub) > 2 && sub[2] != "" {
		if c.Normal, err = parseIndex(sub[2]); err != nil {
			return mesh.Corner{}, err
		}
	}
	return c, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadIndex, s)
	}
	return i - 1, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadFloat, s)
	}
	return f, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	x, err := parseFloat(fields[0])
	if err != nil {
		return math.Vec3{}, err
	}
	y, err := parseFloat(fields[1])
	if err != nil {
		return math.Vec3{}, err
	}
	z, err := parseFloat(fields[2])
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: x, Y: y, Z: z}, nil
}
