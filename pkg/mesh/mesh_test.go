package mesh

import (
	"testing"

	"github.com/Faultbox/mesh2pov/pkg/math"
)

func TestProvenanceString(t *testing.T) {
	tests := []struct {
		p    Provenance
		want string
	}{
		{Polygonal, "Polygonal"},
		{PreTriangulated, "PreTriangulated"},
		{Provenance(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Provenance(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := &Mesh{
		Positions: []math.Vec3{{}, {X: 1}, {Y: 1}},
		Normals:   []math.Vec3{{X: 1}},
		Faces: []Face{
			{{Position: 0, UV: NoIndex, Normal: 0}, {Position: 1, UV: NoIndex, Normal: 0}, {Position: 2, UV: NoIndex, Normal: 0}},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid mesh failed validation: %v", err)
	}

	tests := []struct {
		name   string
		corner Corner
	}{
		{"position out of range", Corner{Position: 3, UV: NoIndex, Normal: NoIndex}},
		{"negative position", Corner{Position: -1, UV: NoIndex, Normal: NoIndex}},
		{"normal out of range", Corner{Position: 0, UV: NoIndex, Normal: 1}},
		{"uv out of range", Corner{Position: 0, UV: 0, Normal: NoIndex}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{
				Positions: valid.Positions,
				Normals:   valid.Normals,
				Faces:     []Face{{tt.corner, {Position: 1, UV: NoIndex, Normal: NoIndex}, {Position: 2, UV: NoIndex, Normal: NoIndex}}},
			}
			if err := m.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestHasGeometry(t *testing.T) {
	empty := &Mesh{}
	if empty.HasGeometry() {
		t.Error("empty mesh reports geometry")
	}

	noFaces := &Mesh{Positions: []math.Vec3{{}}}
	if noFaces.HasGeometry() {
		t.Error("mesh without faces reports geometry")
	}
}

func TestBoundsExtend(t *testing.T) {
	b := NewBounds()
	b.Extend(math.Vec3{X: -1, Y: 2, Z: 0})
	b.Extend(math.Vec3{X: 3, Y: -2, Z: 5})

	wantMin := math.Vec3{X: -1, Y: -2, Z: 0}
	wantMax := math.Vec3{X: 3, Y: 2, Z: 5}
	if b.Min != wantMin || b.Max != wantMax {
		t.Errorf("bounds = %v..%v, want %v..%v", b.Min, b.Max, wantMin, wantMax)
	}

	center := b.Center()
	if center != (math.Vec3{X: 1, Y: 0, Z: 2.5}) {
		t.Errorf("Center() = %v", center)
	}
}

func TestBoundsDiagonalUnitCube(t *testing.T) {
	b := NewBounds()
	b.Extend(math.Vec3{X: -0.5, Y: -0.5, Z: -0.5})
	b.Extend(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	got := b.Diagonal()
	want := 1.7320508075688772 // sqrt(3)
	if got < want-1e-12 || got > want+1e-12 {
		t.Errorf("Diagonal() = %v, want %v", got, want)
	}
}
