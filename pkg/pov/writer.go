package pov

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/mesh2pov/pkg/math"
	"github.com/Faultbox/mesh2pov/pkg/mesh"
)

// Config is the full configuration surface of the scene writer. The
// image dimensions feed the aspect-correction directive only; they do
// not size the mesh.
type Config struct {
	ImageWidth  int
	ImageHeight int

	FlipX            bool
	IncludeMaterials bool

	View         CameraView
	RotateCamera float64 // orbit around the look-at point, degrees
	Pitch        float64
	Yaw          float64
	Roll         float64
	DistanceMult float64

	Preset         Preset
	Radiosity      bool
	AreaLights     bool
	PhotonMapping  bool
	AmbientLight   float64
	LightIntensity float64
	ShadowSoftness float64 // accepted for compatibility, currently unused
}

// DefaultConfig returns the converter defaults.
func DefaultConfig() Config {
	return Config{
		ImageWidth:       800,
		ImageHeight:      600,
		IncludeMaterials: true,
		View:             ViewOverhead,
		DistanceMult:     1.0,
		Preset:           PresetStudio,
		AmbientLight:     0.1,
		LightIntensity:   1.0,
		ShadowSoftness:   0.5,
	}
}

// SceneWriter serializes one mesh and its camera/lighting rig into the
// POV-Ray scene format. Output is deterministic: identical mesh and
// config produce byte-identical text.
type SceneWriter struct {
	mesh *mesh.Mesh
	cfg  Config
	yaw  float64 // user yaw negated once; shared by camera and lights
	plan CameraPlan
}

// NewSceneWriter plans the camera for the mesh and returns a writer.
func NewSceneWriter(m *mesh.Mesh, cfg Config) *SceneWriter {
	plan := PlanCamera(m, CameraOptions{
		View:         cfg.View,
		FlipX:        cfg.FlipX,
		OrbitDegrees: cfg.RotateCamera,
		DistanceMult: cfg.DistanceMult,
	})
	return &SceneWriter{
		mesh: m,
		cfg:  cfg,
		yaw:  -cfg.Yaw,
		plan: plan,
	}
}

// Plan exposes the derived camera plan (for logging and tests).
func (w *SceneWriter) Plan() CameraPlan {
	return w.plan
}

// Write emits the complete scene to out.
func (w *SceneWriter) Write(out io.Writer) error {
	bw := bufio.NewWriter(out)

	w.writeHeader(bw)
	if w.cfg.IncludeMaterials {
		w.writeMaterialDefault(bw)
	}
	if err := w.writeMesh(bw); err != nil {
		bw.Flush()
		return err
	}
	w.writeCamera(bw)
	w.writeLighting(bw)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}

// WriteFile emits the scene to path. The file is closed on every exit
// path; on error the output must be treated as incomplete.
func (w *SceneWriter) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scene file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing scene file: %w", cerr)
		}
	}()
	return w.Write(f)
}

// canon maps negative zero to zero so formatted output never reads
// "-0.000000".
func canon(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("<%.3f, %.3f, %.3f>", canon(v.X), canon(v.Y), canon(v.Z))
}

func formatScalar(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (w *SceneWriter) writeHeader(out *bufio.Writer) {
	out.WriteString("// Generated by mesh2pov\n")
	out.WriteString("// Converted from triangle mesh geometry\n\n")
	out.WriteString("#version 3.7;\n\n")

	out.WriteString("// Image settings for square pixels\n")
	fmt.Fprintf(out, "// Render with: povray +W%d +H%d filename.pov\n", w.cfg.ImageWidth, w.cfg.ImageHeight)
	fmt.Fprintf(out, "#declare ImageWidth = %d;\n", w.cfg.ImageWidth)
	fmt.Fprintf(out, "#declare ImageHeight = %d;\n\n", w.cfg.ImageHeight)

	out.WriteString("// Global settings\n")
	out.WriteString("global_settings {\n")
	out.WriteString("    assumed_gamma 1.0\n")

	if w.cfg.Radiosity {
		out.WriteString("    radiosity {\n")
		out.WriteString("        pretrace_start 0.08\n")
		out.WriteString("        pretrace_end 0.01\n")
		out.WriteString("        count 35\n")
		out.WriteString("        nearest_count 5\n")
		out.WriteString("        error_bound 0.5\n")
		out.WriteString("        recursion_limit 3\n")
		out.WriteString("        low_error_factor 0.8\n")
		out.WriteString("        gray_threshold 0.0\n")
		out.WriteString("        minimum_reuse 0.015\n")
		out.WriteString("        brightness 1.0\n")
		out.WriteString("        adc_bailout 0.01/2\n")
		out.WriteString("        normal on\n")
		out.WriteString("        media on\n")
		out.WriteString("    }\n")
	}

	if w.cfg.PhotonMapping {
		out.WriteString("    photons {\n")
		out.WriteString("        spacing 0.1\n")
		out.WriteString("        max_trace_level 5\n")
		out.WriteString("        autostop 0\n")
		out.WriteString("        expand_thresholds 0.1, 0.1\n")
		out.WriteString("        media 10\n")
		out.WriteString("        jitter 0.4\n")
		out.WriteString("        count 100000\n")
		out.WriteString("        gather 20, 20\n")
		out.WriteString("    }\n")
	}

	out.WriteString("}\n\n")

	w.writeMaterialDeclares(out)
}

// writeMaterialDeclares emits the fixed texture catalogue. The blocks
// are static templates parameterized by the ambient scalar only.
func (w *SceneWriter) writeMaterialDeclares(out *bufio.Writer) {
	ambient := formatScalar(w.cfg.AmbientLight)

	out.WriteString("// Material definitions\n")

	fmt.Fprintf(out, `#declare BronzeMaterial = texture {
    pigment {
        color rgb <0.8, 0.5, 0.2>
    }
    normal {
        bumps 0.2
        scale 0.05
    }
    finish {
        ambient %s
        diffuse 0.8
        specular 0.9
        roughness 0.1
        reflection {
            0.8
            fresnel on
        }
        metallic 1.0
        conserve_energy
    }
}

`, ambient)

	fmt.Fprintf(out, `#declare AluminumMaterial = texture {
    pigment {
        color rgb <0.9, 0.9, 0.9>
    }
    normal {
        bumps 0.1
        scale 0.02
    }
    finish {
        ambient %s
        diffuse 0.7
        specular 0.95
        roughness 0.05
        reflection {
            0.9
            fresnel on
        }
        metallic 1.0
        conserve_energy
    }
}

`, ambient)

	fmt.Fprintf(out, `#declare PlasticMaterial = texture {
    pigment {
        color rgb <0.2, 0.4, 0.8>
    }
    normal {
        bumps 0.05
        scale 0.1
    }
    finish {
        ambient %s
        diffuse 0.9
        specular 0.3
        roughness 0.2
        reflection {
            0.1
            fresnel on
        }
        metallic 0.0
        conserve_energy
    }
}

`, ambient)

	out.WriteString("#declare DefaultMaterial = BronzeMaterial\n\n")
}

func (w *SceneWriter) writeMaterialDefault(out *bufio.Writer) {
	out.WriteString("// Default object texture\n")
	out.WriteString("#default {\n")
	out.WriteString("    texture { DefaultMaterial }\n")
	out.WriteString("}\n\n")
}

// emitPosition applies the output sign conventions to a position or
// normal: optional X flip, then the renderer's Y inversion.
func (w *SceneWriter) emitPosition(v math.Vec3) math.Vec3 {
	if w.cfg.FlipX {
		v.X = -v.X
	}
	v.Y = -v.Y
	return v
}

func (w *SceneWriter) writeMesh(out *bufio.Writer) error {
	m := w.mesh
	if !m.HasGeometry() {
		out.WriteString("// No geometry found in source file\n\n")
		return nil
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("mesh not valid for emission: %w", err)
	}

	out.WriteString("// Main mesh object\n")
	out.WriteString("mesh2 {\n")

	// Positions, 6 decimals.
	out.WriteString("    vertex_vectors {\n")
	fmt.Fprintf(out, "        %d,\n", len(m.Positions))
	for i, p := range m.Positions {
		v := w.emitPosition(p)
		fmt.Fprintf(out, "        <%.6f, %.6f, %.6f>", canon(v.X), canon(v.Y), canon(v.Z))
		if i < len(m.Positions)-1 {
			out.WriteByte(',')
		}
		out.WriteByte('\n')
	}
	out.WriteString("    }\n\n")

	if len(m.Normals) > 0 {
		out.WriteString("    normal_vectors {\n")
		fmt.Fprintf(out, "        %d,\n", len(m.Normals))
		for i, n := range m.Normals {
			// Zero-length normals are invalid in the target format;
			// remap before the sign conventions.
			if n.IsZero() {
				n = math.Vec3{X: 1}
			}
			v := w.emitPosition(n)
			fmt.Fprintf(out, "        <%.6f, %.6f, %.6f>", canon(v.X), canon(v.Y), canon(v.Z))
			if i < len(m.Normals)-1 {
				out.WriteByte(',')
			}
			out.WriteByte('\n')
		}
		out.WriteString("    }\n\n")
	}

	if len(m.UVs) > 0 {
		out.WriteString("    uv_vectors {\n")
		fmt.Fprintf(out, "        %d,\n", len(m.UVs))
		for i, uv := range m.UVs {
			fmt.Fprintf(out, "        <%.6f, %.6f>", canon(uv.X), canon(uv.Y))
			if i < len(m.UVs)-1 {
				out.WriteByte(',')
			}
			out.WriteByte('\n')
		}
		out.WriteString("    }\n\n")
	}

	total := TriangleCount(m)

	w.writeIndexBlock(out, "face_indices", total, func(c mesh.Corner) int { return c.Position })
	if len(m.Normals) > 0 {
		out.WriteByte('\n')
		w.writeIndexBlock(out, "normal_indices", total, func(c mesh.Corner) int { return attrIndex(c.Normal) })
	}
	if len(m.UVs) > 0 {
		out.WriteByte('\n')
		w.writeIndexBlock(out, "uv_indices", total, func(c mesh.Corner) int { return attrIndex(c.UV) })
	}

	out.WriteString("}\n\n")
	return nil
}

// writeIndexBlock emits one count-prefixed triangle index stream.
func (w *SceneWriter) writeIndexBlock(out *bufio.Writer, name string, total int, index func(mesh.Corner) int) {
	fmt.Fprintf(out, "    %s {\n", name)
	fmt.Fprintf(out, "        %d,\n", total)

	written := 0
	eachTriangle(w.mesh, func(c0, c1, c2 mesh.Corner) {
		written++
		fmt.Fprintf(out, "        <%d, %d, %d>", index(c0), index(c1), index(c2))
		if written < total {
			out.WriteByte(',')
		}
		out.WriteByte('\n')
	})

	out.WriteString("    }\n")
}

func (w *SceneWriter) writeCamera(out *bufio.Writer) {
	out.WriteString("// Camera setup\n")
	out.WriteString("camera {\n")
	fmt.Fprintf(out, "    location %s\n", formatVec3(w.plan.Position))
	fmt.Fprintf(out, "    look_at %s\n", formatVec3(w.plan.LookAt))
	fmt.Fprintf(out, "    angle %.1f\n", w.plan.FOV)
	fmt.Fprintf(out, "    rotate <%.1f, %.1f, %.1f>  // pitch, roll, yaw\n", canon(w.cfg.Pitch), canon(w.cfg.Roll), canon(w.yaw))
	out.WriteString("    right x*ImageWidth/ImageHeight  // Correct aspect ratio for square pixels\n")
	out.WriteString("    up y\n")
	out.WriteString("}\n\n")
}
