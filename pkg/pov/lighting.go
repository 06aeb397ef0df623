package pov

import (
	"bufio"
	"fmt"

	"github.com/Faultbox/mesh2pov/pkg/math"
)

// Preset selects one of the fixed lighting rigs. The set is closed:
// presets are templates, never interpolated.
type Preset int

const (
	PresetStudio Preset = iota
	PresetOutdoor
	PresetDramatic
	PresetSoft
	PresetArchitectural
)

// PresetNames lists the accepted preset names in flag order.
var PresetNames = []string{"studio", "outdoor", "dramatic", "soft", "architectural"}

// String returns the config/flag name of the preset.
func (p Preset) String() string {
	if int(p) >= 0 && int(p) < len(PresetNames) {
		return PresetNames[p]
	}
	return "unknown"
}

// ParsePreset parses a preset name.
func ParsePreset(s string) (Preset, bool) {
	for i, name := range PresetNames {
		if s == name {
			return Preset(i), true
		}
	}
	return PresetStudio, false
}

// writeLighting emits the light_source blocks for the selected preset.
// Studio lights follow the camera facing rotation about the look-at
// point; the other rigs are anchored in world space.
func (w *SceneWriter) writeLighting(out *bufio.Writer) {
	fmt.Fprintf(out, "// Lighting setup: %s\n", w.cfg.Preset)
	if w.cfg.Pitch != 0 || w.yaw != 0 || w.cfg.Roll != 0 {
		out.WriteString("// Lights rotated with camera\n")
	}

	switch w.cfg.Preset {
	case PresetOutdoor:
		w.writeOutdoorLighting(out)
	case PresetDramatic:
		w.writeDramaticLighting(out)
	case PresetSoft:
		w.writeSoftLighting(out)
	case PresetArchitectural:
		w.writeArchitecturalLighting(out)
	default:
		w.writeStudioLighting(out)
	}
}

// lightAt offsets the camera position by fractions of the light anchor
// distance along each axis.
func (w *SceneWriter) lightAt(fx, fy, fz float64) math.Vec3 {
	d := w.plan.LightDistance
	return math.Vec3{
		X: w.plan.Position.X + d*fx,
		Y: w.plan.Position.Y + d*fy,
		Z: w.plan.Position.Z + d*fz,
	}
}

// rotated applies the camera facing rotation about the look-at point.
func (w *SceneWriter) rotated(p math.Vec3) math.Vec3 {
	return rotateAboutPoint(p, w.plan.LookAt, w.cfg.Pitch, w.cfg.Roll, w.yaw)
}

// pointLight emits a plain light_source block.
func (w *SceneWriter) pointLight(out *bufio.Writer, pos math.Vec3, color string, intensity float64) {
	out.WriteString("light_source {\n")
	fmt.Fprintf(out, "    %s\n", formatVec3(pos))
	fmt.Fprintf(out, "    color rgb %s * %.3f\n", color, intensity)
	out.WriteString("}\n\n")
}

// areaLight emits a soft-shadow area light. The jitter and adaptive
// directives are static keywords, not sampled values.
func (w *SceneWriter) areaLight(out *bufio.Writer, pos math.Vec3, color string, intensity, size float64, samples int) {
	out.WriteString("light_source {\n")
	fmt.Fprintf(out, "    %s\n", formatVec3(pos))
	fmt.Fprintf(out, "    color rgb %s * %.3f\n", color, intensity)
	fmt.Fprintf(out, "    area_light <%s, 0, 0>, <0, %s, 0>, %d, %d\n", formatScalar(size), formatScalar(size), samples, samples)
	out.WriteString("    adaptive 1\n")
	out.WriteString("    jitter\n")
	out.WriteString("    circular\n")
	out.WriteString("    orient\n")
	out.WriteString("}\n\n")
}

func (w *SceneWriter) writeStudioLighting(out *bufio.Writer) {
	intensity := w.cfg.LightIntensity

	key := w.rotated(w.lightAt(0.7, 0.5, -0.3))
	fill := w.rotated(w.lightAt(-0.5, 0.2, -0.4))

	if w.cfg.AreaLights {
		rim := w.rotated(w.lightAt(0.2, 0.8, 0.6))
		w.areaLight(out, key, "<1.0, 0.95, 0.8>", intensity, 2, 4)
		w.areaLight(out, fill, "<0.8, 0.9, 1.0>", intensity*0.6, 1.5, 3)
		w.areaLight(out, rim, "<1.0, 0.9, 0.7>", intensity*0.4, 1, 2)
		return
	}

	w.pointLight(out, key, "<1.0, 0.95, 0.8>", intensity)
	w.pointLight(out, fill, "<0.8, 0.9, 1.0>", intensity*0.6)
}

func (w *SceneWriter) writeOutdoorLighting(out *bufio.Writer) {
	intensity := w.cfg.LightIntensity

	// Sun: parallel light from high above.
	out.WriteString("light_source {\n")
	out.WriteString("    <0, 1000, 0>\n")
	fmt.Fprintf(out, "    color rgb <1.0, 0.95, 0.8> * %.3f\n", intensity)
	out.WriteString("    parallel\n")
	out.WriteString("    point_at <0, 0, 0>\n")
	out.WriteString("}\n\n")

	// Sky fill.
	out.WriteString("light_source {\n")
	out.WriteString("    <0, 0, 0>\n")
	fmt.Fprintf(out, "    color rgb <0.6, 0.8, 1.0> * %.3f\n", intensity*0.3)
	out.WriteString("    parallel\n")
	out.WriteString("    point_at <0, -1, 0>\n")
	out.WriteString("}\n\n")
}

func (w *SceneWriter) writeDramaticLighting(out *bufio.Writer) {
	intensity := w.cfg.LightIntensity
	pos := w.lightAt(0.8, 0.9, -0.2)

	if w.cfg.AreaLights {
		w.areaLight(out, pos, "<1.0, 0.8, 0.6>", intensity, 3, 6)
		return
	}
	w.pointLight(out, pos, "<1.0, 0.8, 0.6>", intensity)
}

func (w *SceneWriter) writeSoftLighting(out *bufio.Writer) {
	intensity := w.cfg.LightIntensity
	key := w.lightAt(0.6, 0.4, -0.4)
	fill := w.lightAt(-0.4, 0.3, -0.5)

	if w.cfg.AreaLights {
		w.areaLight(out, key, "<1.0, 0.98, 0.9>", intensity, 4, 8)
		w.areaLight(out, fill, "<0.9, 0.95, 1.0>", intensity*0.5, 3, 6)
		return
	}

	w.pointLight(out, key, "<1.0, 0.98, 0.9>", intensity)
	w.pointLight(out, fill, "<0.9, 0.95, 1.0>", intensity*0.5)
}

func (w *SceneWriter) writeArchitecturalLighting(out *bufio.Writer) {
	intensity := w.cfg.LightIntensity

	w.archLight(out, w.lightAt(0.5, 0.8, -0.3), "<1.0, 1.0, 0.95>", intensity, 2, 4)
	w.archLight(out, w.lightAt(-0.3, 0.6, 0.4), "<0.95, 0.98, 1.0>", intensity*0.7, 1.5, 3)
}

// archLight is a point light that picks up area directives when area
// lights are enabled, keeping the same position and color.
func (w *SceneWriter) archLight(out *bufio.Writer, pos math.Vec3, color string, intensity, size float64, samples int) {
	out.WriteString("light_source {\n")
	fmt.Fprintf(out, "    %s\n", formatVec3(pos))
	fmt.Fprintf(out, "    color rgb %s * %.3f\n", color, intensity)
	if w.cfg.AreaLights {
		fmt.Fprintf(out, "    area_light <%s, 0, 0>, <0, %s, 0>, %d, %d\n", formatScalar(size), formatScalar(size), samples, samples)
		out.WriteString("    adaptive 1\n")
		out.WriteString("    jitter\n")
		out.WriteString("    circular\n")
		out.WriteString("    orient\n")
	}
	out.WriteString("}\n\n")
}
