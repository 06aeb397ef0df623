package pov

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/mesh2pov/pkg/math"
	"github.com/Faultbox/mesh2pov/pkg/mesh"
)

// triangleMesh is a minimal polygonal mesh: one triangle with a normal.
func triangleMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Provenance: mesh.Polygonal,
		Positions:  []math.Vec3{{}, {X: 1}, {Y: 1}},
		Normals:    []math.Vec3{{Z: 1}},
		Faces: []mesh.Face{
			{
				{Position: 0, UV: mesh.NoIndex, Normal: 0},
				{Position: 1, UV: mesh.NoIndex, Normal: 0},
				{Position: 2, UV: mesh.NoIndex, Normal: 0},
			},
		},
	}
}

func renderScene(t *testing.T, m *mesh.Mesh, cfg Config) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewSceneWriter(m, cfg).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return buf.String()
}

func TestWrite_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radiosity = true
	cfg.AreaLights = true
	cfg.Pitch = -30
	cfg.Yaw = 45

	first := renderScene(t, triangleMesh(), cfg)
	second := renderScene(t, triangleMesh(), cfg)
	if first != second {
		t.Error("two writes of the same scene differ")
	}
}

func TestWrite_MeshBlock(t *testing.T) {
	out := renderScene(t, triangleMesh(), DefaultConfig())

	for _, want := range []string{
		"mesh2 {",
		"vertex_vectors {",
		"normal_vectors {",
		"face_indices {",
		"normal_indices {",
		"<0, 1, 2>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// No UVs in the mesh: no uv streams.
	if strings.Contains(out, "uv_vectors") || strings.Contains(out, "uv_indices") {
		t.Error("uv blocks emitted for a mesh without texture coordinates")
	}
}

func TestWrite_YInversion(t *testing.T) {
	m := triangleMesh()
	m.Positions[1] = math.Vec3{X: 1, Y: 2, Z: 3}
	out := renderScene(t, m, DefaultConfig())

	if !strings.Contains(out, "<1.000000, -2.000000, 3.000000>") {
		t.Error("Y coordinate not inverted in vertex output")
	}
}

func TestWrite_FlipX(t *testing.T) {
	m := triangleMesh()
	m.Positions[1] = math.Vec3{X: 1, Y: 2, Z: 3}

	cfg := DefaultConfig()
	cfg.FlipX = true
	out := renderScene(t, m, cfg)

	if !strings.Contains(out, "<-1.000000, -2.000000, 3.000000>") {
		t.Error("X coordinate not flipped in vertex output")
	}
}

func TestWrite_ZeroNormalRemapped(t *testing.T) {
	m := triangleMesh()
	m.Normals[0] = math.Vec3{}
	out := renderScene(t, m, DefaultConfig())

	start := strings.Index(out, "normal_vectors {")
	if start < 0 {
		t.Fatal("normal_vectors block missing")
	}
	block := out[start:]
	block = block[:strings.Index(block, "}")]

	if !strings.Contains(block, "<1.000000, 0.000000, 0.000000>") {
		t.Error("zero normal not remapped to (1, 0, 0)")
	}
	if strings.Contains(block, "<0.000000, 0.000000, 0.000000>") {
		t.Error("literal zero normal emitted")
	}
	if strings.Contains(out, "-0.000000") {
		t.Error("negative zero leaked into output")
	}
}

func TestWrite_SentinelNormalIndexSubstituted(t *testing.T) {
	// Normals exist but the face corners don't reference them: the
	// normal_indices stream substitutes index 0.
	m := triangleMesh()
	for i := range m.Faces[0] {
		m.Faces[0][i].Normal = mesh.NoIndex
	}
	out := renderScene(t, m, DefaultConfig())

	idx := strings.Index(out, "normal_indices {")
	if idx < 0 {
		t.Fatal("normal_indices block missing")
	}
	if !strings.Contains(out[idx:], "<0, 0, 0>") {
		t.Error("sentinel normal indices not substituted with 0")
	}
}

func TestWrite_UVBlocks(t *testing.T) {
	m := triangleMesh()
	m.UVs = []math.Vec2{{X: 0.25, Y: 0.75}}
	for i := range m.Faces[0] {
		m.Faces[0][i].UV = 0
	}
	out := renderScene(t, m, DefaultConfig())

	if !strings.Contains(out, "uv_vectors {") || !strings.Contains(out, "uv_indices {") {
		t.Fatal("uv blocks missing")
	}
	if !strings.Contains(out, "<0.250000, 0.750000>") {
		t.Error("uv components not emitted at 6 decimals")
	}
}

func TestWrite_DefaultConfigIsQuiet(t *testing.T) {
	out := renderScene(t, triangleMesh(), DefaultConfig())

	if strings.Contains(out, "radiosity {") {
		t.Error("default config emitted a radiosity block")
	}
	if strings.Contains(out, "photons {") {
		t.Error("default config emitted a photons block")
	}
	if !strings.Contains(out, "rotate <0.0, 0.0, 0.0>") {
		t.Error("default config camera rotation not zero")
	}
}

func TestWrite_GlobalIlluminationToggles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radiosity = true
	cfg.PhotonMapping = true
	out := renderScene(t, triangleMesh(), cfg)

	if !strings.Contains(out, "radiosity {") {
		t.Error("radiosity block missing")
	}
	if !strings.Contains(out, "photons {") {
		t.Error("photons block missing")
	}
}

func TestWrite_MaterialToggle(t *testing.T) {
	withMats := renderScene(t, triangleMesh(), DefaultConfig())
	if !strings.Contains(withMats, "#default {") {
		t.Error("default material block missing")
	}

	cfg := DefaultConfig()
	cfg.IncludeMaterials = false
	out := renderScene(t, triangleMesh(), cfg)
	if strings.Contains(out, "#default {") {
		t.Error("default material block emitted with materials disabled")
	}
	// The texture catalogue itself is always declared.
	if !strings.Contains(out, "#declare BronzeMaterial") {
		t.Error("material declares missing")
	}
}

func TestWrite_DegenerateMeshPlaceholder(t *testing.T) {
	// Vertices but no faces: placeholder comment, camera still framed
	// from the real bounding box, not the empty-scene fallback.
	m := &mesh.Mesh{
		Provenance: mesh.Polygonal,
		Positions:  []math.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}},
	}
	out := renderScene(t, m, DefaultConfig())

	if !strings.Contains(out, "// No geometry found in source file") {
		t.Error("placeholder comment missing")
	}
	if strings.Contains(out, "mesh2 {") {
		t.Error("mesh block emitted for degenerate mesh")
	}
	if strings.Contains(out, "location <0.000, 0.000, -10.000>") {
		t.Error("fallback camera used despite existing positions")
	}
	if !strings.Contains(out, "look_at <0.000, 0.000, 0.000>") {
		t.Error("look_at not at bounding box center")
	}
	if !strings.Contains(out, "light_source {") {
		t.Error("lighting missing for degenerate mesh")
	}
}

func TestWrite_EmptyMeshFallbackCamera(t *testing.T) {
	out := renderScene(t, &mesh.Mesh{}, DefaultConfig())

	if !strings.Contains(out, "location <0.000, 0.000, -10.000>") {
		t.Error("fallback camera position missing")
	}
	if !strings.Contains(out, "angle 35.0") {
		t.Error("fixed field of view missing")
	}
}

func TestWrite_CameraFacingTriple(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pitch = -30
	cfg.Yaw = 45
	cfg.Roll = 15
	out := renderScene(t, triangleMesh(), cfg)

	// Emitted as <pitch, roll, yaw> with the yaw negated.
	if !strings.Contains(out, "rotate <-30.0, 15.0, -45.0>") {
		t.Error("camera facing triple not emitted as <pitch, roll, -yaw>")
	}
}

func TestWrite_LightingPresets(t *testing.T) {
	tests := []struct {
		preset Preset
		want   string
	}{
		{PresetStudio, "color rgb <1.0, 0.95, 0.8>"},
		{PresetOutdoor, "parallel"},
		{PresetDramatic, "color rgb <1.0, 0.8, 0.6>"},
		{PresetSoft, "color rgb <1.0, 0.98, 0.9>"},
		{PresetArchitectural, "color rgb <1.0, 1.0, 0.95>"},
	}

	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Preset = tt.preset
			out := renderScene(t, triangleMesh(), cfg)

			if !strings.Contains(out, "light_source {") {
				t.Fatal("no light sources emitted")
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("preset output missing %q", tt.want)
			}
		})
	}
}

func TestWrite_AreaLightToggle(t *testing.T) {
	cfg := DefaultConfig()
	out := renderScene(t, triangleMesh(), cfg)
	if strings.Contains(out, "area_light") {
		t.Error("area lights emitted without toggle")
	}

	cfg.AreaLights = true
	out = renderScene(t, triangleMesh(), cfg)
	if !strings.Contains(out, "area_light <2, 0, 0>, <0, 2, 0>, 4, 4") {
		t.Error("studio key area light missing")
	}
	if !strings.Contains(out, "jitter") {
		t.Error("static jitter keyword missing")
	}
}

func TestWrite_StudioLightsFollowFacing(t *testing.T) {
	base := renderScene(t, triangleMesh(), DefaultConfig())

	cfg := DefaultConfig()
	cfg.Pitch = 45
	rotated := renderScene(t, triangleMesh(), cfg)

	baseLights := base[strings.Index(base, "light_source"):]
	rotatedLights := rotated[strings.Index(rotated, "light_source"):]
	if baseLights == rotatedLights {
		t.Error("studio light positions unchanged by camera pitch")
	}
	if !strings.Contains(rotated, "// Lights rotated with camera") {
		t.Error("rotation comment missing")
	}
}

func TestWrite_InvalidMeshRejected(t *testing.T) {
	m := triangleMesh()
	m.Faces[0][0].Position = 99

	var buf bytes.Buffer
	if err := NewSceneWriter(m, DefaultConfig()).Write(&buf); err == nil {
		t.Error("expected error for out-of-range face index")
	}
}

func TestParsePreset(t *testing.T) {
	for i, name := range PresetNames {
		got, ok := ParsePreset(name)
		if !ok || got != Preset(i) {
			t.Errorf("ParsePreset(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParsePreset("noir"); ok {
		t.Error("unknown preset accepted")
	}
}
