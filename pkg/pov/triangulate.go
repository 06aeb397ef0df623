package pov

import "github.com/Faultbox/mesh2pov/pkg/mesh"

// TriangleCount returns the number of triangles the mesh will emit.
// Pre-triangulated faces map one-to-one; polygonal faces with n corners
// fan into n-2 triangles. Faces with fewer than 3 corners are excluded.
func TriangleCount(m *mesh.Mesh) int {
	total := 0
	for _, face := range m.Faces {
		if len(face) < 3 {
			continue
		}
		if m.Provenance == mesh.PreTriangulated {
			total++
		} else {
			total += len(face) - 2
		}
	}
	return total
}

// eachTriangle calls fn once per output triangle with its three corners.
// Polygonal faces are fan-decomposed anchored at corner 0: triangle k
// uses corners (0, k, k+1).
func eachTriangle(m *mesh.Mesh, fn func(c0, c1, c2 mesh.Corner)) {
	for _, face := range m.Faces {
		if len(face) < 3 {
			continue
		}
		if m.Provenance == mesh.PreTriangulated {
			fn(face[0], face[1], face[2])
			continue
		}
		for k := 1; k < len(face)-1; k++ {
			fn(face[0], face[k], face[k+1])
		}
	}
}

// attrIndex substitutes the first element for an absent attribute index.
// The output format has no sentinel notion.
func attrIndex(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
