// Package mesh defines the unified in-memory mesh model produced by the
// format parsers and consumed by the scene writer.
package mesh

import (
	"fmt"

	"github.com/Faultbox/mesh2pov/pkg/math"
)

// NoIndex marks an absent attribute index on a face corner.
const NoIndex = -1

// Provenance describes how a mesh's faces were produced.
type Provenance int

const (
	// Polygonal faces may have any number of corners and need fan
	// triangulation before emission (OBJ sources).
	Polygonal Provenance = iota
	// PreTriangulated faces are guaranteed to be triangles already
	// (STL sources).
	PreTriangulated
)

// String returns a human-readable provenance name.
func (p Provenance) String() string {
	switch p {
	case Polygonal:
		return "Polygonal"
	case PreTriangulated:
		return "PreTriangulated"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Corner references one vertex of a face. UV and Normal are NoIndex when
// the attribute is absent for this corner.
type Corner struct {
	Position int
	UV       int
	Normal   int
}

// Face is an ordered sequence of corners. Parsers never store faces with
// fewer than three corners.
type Face []Corner

// Mesh holds the parsed geometry of one model file.
type Mesh struct {
	Positions []math.Vec3 // Vertex positions, 0-based
	Normals   []math.Vec3 // Normal vectors (may be empty)
	UVs       []math.Vec2 // Texture coordinates (always empty for STL)
	Faces     []Face
	Provenance Provenance
}

// HasGeometry reports whether the mesh contains anything worth emitting.
func (m *Mesh) HasGeometry() bool {
	return len(m.Positions) > 0 && len(m.Faces) > 0
}

// Validate checks that every stored face index is in range for its
// attribute list. A mesh must pass before emission.
func (m *Mesh) Validate() error {
	for fi, face := range m.Faces {
		for ci, c := range face {
			if c.Position < 0 || c.Position >= len(m.Positions) {
				return fmt.Errorf("face %d corner %d: position index %d out of range [0,%d)", fi, ci, c.Position, len(m.Positions))
			}
			if c.Normal != NoIndex && c.Normal >= len(m.Normals) {
				return fmt.Errorf("face %d corner %d: normal index %d out of range [0,%d)", fi, ci, c.Normal, len(m.Normals))
			}
			if c.UV != NoIndex && c.UV >= len(m.UVs) {
				return fmt.Errorf("face %d corner %d: uv index %d out of range [0,%d)", fi, ci, c.UV, len(m.UVs))
			}
		}
	}
	return nil
}
