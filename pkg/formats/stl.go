// STL (STereoLithography) parser for both ASCII and binary layouts.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/mesh2pov/pkg/math"
	"github.com/Faultbox/mesh2pov/pkg/mesh"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrMalformedSTLData = errors.New("malformed STL data")
)

// asciiSTLMarker opens every ASCII STL stream. Anything else is treated
// as the fixed binary layout.
var asciiSTLMarker = []byte("solid")

// STLFormat identifies the on-disk STL layout.
type STLFormat int

const (
	STLBinary STLFormat = iota
	STLASCII
)

// String returns a human-readable format name.
func (f STLFormat) String() string {
	switch f {
	case STLBinary:
		return "binary"
	case STLASCII:
		return "ASCII"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// STL is a parsed STL file. The mesh is always PreTriangulated with no
// texture coordinates, and its position list is deduplicated: identical
// vertex triples share one index.
type STL struct {
	Mesh   *mesh.Mesh
	Format STLFormat
}

// ParseSTL parses STL data, detecting the layout from the leading bytes.
func ParseSTL(data []byte) (*STL, error) {
	stl := &STL{
		Mesh: &mesh.Mesh{Provenance: mesh.PreTriangulated},
	}
	dedup := newVertexTable(stl.Mesh)

	if bytes.HasPrefix(data, asciiSTLMarker) {
		stl.Format = STLASCII
		if err := parseASCIISTL(stl.Mesh, dedup, data); err != nil {
			return nil, err
		}
	} else {
		stl.Format = STLBinary
		if err := parseBinarySTL(stl.Mesh, dedup, data); err != nil {
			return nil, err
		}
	}

	return stl, nil
}

// LoadSTL reads and parses an STL file from disk.
func LoadSTL(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	stl, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("parsing STL file %s: %w", path, err)
	}
	return stl, nil
}

// vertexTable deduplicates positions under exact float equality. Its
// lifetime is scoped to a single parse.
type vertexTable struct {
	mesh  *mesh.Mesh
	index map[math.Vec3]int
}

func newVertexTable(m *mesh.Mesh) *vertexTable {
	return &vertexTable{mesh: m, index: make(map[math.Vec3]int)}
}

// indexOf returns the index of p, appending it if unseen.
func (t *vertexTable) indexOf(p math.Vec3) int {
	if i, ok := t.index[p]; ok {
		return i
	}
	i := len(t.mesh.Positions)
	t.mesh.Positions = append(t.mesh.Positions, p)
	t.index[p] = i
	return i
}

// binarySTLTriangle is one 50-byte record of the binary layout.
type binarySTLTriangle struct {
	Normal   [3]float32
	Vertices [3][3]float32
	Attr     uint16 // attribute byte count, ignored
}

// parseBinarySTL parses the fixed binary layout: 80-byte header, uint32
// little-endian triangle count, then 50-byte triangle records.
func parseBinarySTL(m *mesh.Mesh, dedup *vertexTable, data []byte) error {
	if len(data) < 84 {
		return fmt.Errorf("%w: %d bytes, need at least 84", ErrTruncatedSTLData, len(data))
	}

	count := binary.LittleEndian.Uint32(data[80:84])
	r := bytes.NewReader(data[84:])

	for i := uint32(0); i < count; i++ {
		var tri binarySTLTriangle
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return fmt.Errorf("%w: reading triangle %d of %d", ErrTruncatedSTLData, i, count)
		}

		m.Normals = append(m.Normals, math.Vec3{
			X: float64(tri.Normal[0]),
			Y: float64(tri.Normal[1]),
			Z: float64(tri.Normal[2]),
		})
		ni := len(m.Normals) - 1

		face := make(mesh.Face, 3)
		for j, v := range tri.Vertices {
			p := math.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
			face[j] = mesh.Corner{Position: dedup.indexOf(p), UV: mesh.NoIndex, Normal: ni}
		}
		m.Faces = append(m.Faces, face)
	}

	return nil
}

// parseASCIISTL parses the textual layout. A facet block only produces a
// face when exactly 3 vertices and a normal were collected; the pending
// state resets at every endfacet regardless.
func parseASCIISTL(m *mesh.Mesh, dedup *vertexTable, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pending []math.Vec3
	haveNormal := false

	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) == 0 {
			continue
		}

		switch string(fields[0]) {
		case "facet":
			if len(fields) >= 5 && string(fields[1]) == "normal" {
				n, err := parseVec3(fieldStrings(fields[2:5]))
				if err != nil {
					return fmt.Errorf("%w: %v", ErrMalformedSTLData, err)
				}
				m.Normals = append(m.Normals, n)
				haveNormal = true
			}

		case "vertex":
			if len(fields) >= 4 {
				p, err := parseVec3(fieldStrings(fields[1:4]))
				if err != nil {
					return fmt.Errorf("%w: %v", ErrMalformedSTLData, err)
				}
				pending = append(pending, p)
			}

		case "endfacet":
			if len(pending) == 3 && haveNormal {
				ni := len(m.Normals) - 1
				face := make(mesh.Face, 3)
				for j, p := range pending {
					face[j] = mesh.Corner{Position: dedup.indexOf(p), UV: mesh.NoIndex, Normal: ni}
				}
				m.Faces = append(m.Faces, face)
			}
			pending = pending[:0]
			haveNormal = false
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSTLData, err)
	}

	return nil
}

func fieldStrings(fields [][]byte) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
