// mesh2pov converts Wavefront OBJ and STL meshes into POV-Ray scenes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/mesh2pov/internal/config"
	"github.com/Faultbox/mesh2pov/internal/logger"
	"github.com/Faultbox/mesh2pov/pkg/formats"
	"github.com/Faultbox/mesh2pov/pkg/pov"
)

const version = "1.0.1"

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	if config.ShowVersion() {
		fmt.Printf("mesh2pov %s\n", version)
		return
	}

	args := config.Args()
	if len(args) != 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(args[0], cfg); err != nil {
		logger.Error("conversion failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `mesh2pov %s - convert OBJ and STL meshes to POV-Ray scenes

Usage:
  mesh2pov [options] <input.obj|input.stl>

Examples:
  mesh2pov model.obj
  mesh2pov model.stl -o scene.pov -width 1920 -height 1080
  mesh2pov model.obj -radiosity -area-lights -lighting-preset dramatic
  mesh2pov model.stl -rotate-camera 45 -camera-pitch -30 -view three-quarter

Options:
`, version)
	flag.PrintDefaults()
}

func run(input string, cfg *config.Config) error {
	// Validate input and settings before touching any file contents.
	if _, err := os.Stat(input); err != nil {
		return err
	}
	writerCfg, err := cfg.WriterConfig()
	if err != nil {
		return err
	}

	output := config.OutputPath()
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pov"
	}

	logSettings(cfg)

	model, err := formats.Load(input)
	if err != nil {
		return err
	}
	for _, w := range model.Warnings {
		logger.Warn("skipping malformed line",
			zap.Int("line", w.Line),
			zap.String("content", w.Text),
			zap.Error(w.Err))
	}

	m := model.Mesh
	logger.Info("parsed mesh",
		zap.String("input", input),
		zap.String("provenance", m.Provenance.String()),
		zap.Int("vertices", len(m.Positions)),
		zap.Int("normals", len(m.Normals)),
		zap.Int("uvs", len(m.UVs)),
		zap.Int("faces", len(m.Faces)),
		zap.Int("triangles", pov.TriangleCount(m)),
		zap.Int("warnings", len(model.Warnings)))

	writer := pov.NewSceneWriter(m, writerCfg)

	plan := writer.Plan()
	logger.Debug("camera plan",
		zap.Float64("x", plan.Position.X),
		zap.Float64("y", plan.Position.Y),
		zap.Float64("z", plan.Position.Z),
		zap.Float64("fov", plan.FOV),
		zap.Float64("light_distance", plan.LightDistance))

	if err := writer.WriteFile(output); err != nil {
		return err
	}

	logger.Info("conversion complete",
		zap.String("input", input),
		zap.String("output", output))
	return nil
}

// logSettings mirrors the effective configuration back to the user.
func logSettings(cfg *config.Config) {
	logger.Debug("settings",
		zap.Int("width", cfg.Image.Width),
		zap.Int("height", cfg.Image.Height),
		zap.String("view", cfg.Camera.View),
		zap.Bool("flip_x", cfg.Camera.FlipX),
		zap.Float64("rotate_camera", cfg.Camera.Rotate),
		zap.Float64("pitch", cfg.Camera.Pitch),
		zap.Float64("yaw", cfg.Camera.Yaw),
		zap.Float64("roll", cfg.Camera.Roll),
		zap.Float64("distance", cfg.Camera.Distance),
		zap.String("preset", cfg.Lighting.Preset),
		zap.Bool("radiosity", cfg.Lighting.Radiosity),
		zap.Bool("area_lights", cfg.Lighting.AreaLights),
		zap.Bool("photon_mapping", cfg.Lighting.PhotonMapping),
		zap.Float64("ambient_light", cfg.Lighting.AmbientLight),
		zap.Float64("light_intensity", cfg.Lighting.LightIntensity),
		zap.Float64("shadow_softness", cfg.Lighting.ShadowSoftness),
		zap.Bool("materials", cfg.Output.IncludeMaterials))
}
