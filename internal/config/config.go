// Package config handles converter configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/mesh2pov/pkg/pov"
)

// Config holds all converter settings.
type Config struct {
	Image    ImageConfig    `yaml:"image"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ImageConfig holds the render target dimensions. They feed the aspect
// ratio directive only; the mesh is never scaled to them.
type ImageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds camera placement and facing settings.
type CameraConfig struct {
	View     string  `yaml:"view"`     // "overhead" or "three-quarter"
	Rotate   float64 `yaml:"rotate"`   // orbit around the look-at point, degrees
	Pitch    float64 `yaml:"pitch"`    // facing up/down, degrees
	Yaw      float64 `yaml:"yaw"`      // facing left/right, degrees
	Roll     float64 `yaml:"roll"`     // tilt, degrees
	Distance float64 `yaml:"distance"` // fit distance multiplier
	FlipX    bool    `yaml:"flip_x"`
}

// LightingConfig holds lighting rig settings.
type LightingConfig struct {
	Preset         string  `yaml:"preset"`
	Radiosity      bool    `yaml:"radiosity"`
	AreaLights     bool    `yaml:"area_lights"`
	PhotonMapping  bool    `yaml:"photon_mapping"`
	AmbientLight   float64 `yaml:"ambient_light"`
	LightIntensity float64 `yaml:"light_intensity"`
	ShadowSoftness float64 `yaml:"shadow_softness"`
}

// OutputConfig holds scene emission settings.
type OutputConfig struct {
	IncludeMaterials bool `yaml:"include_materials"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Width:  800,
			Height: 600,
		},
		Camera: CameraConfig{
			View:     "overhead",
			Distance: 1.0,
		},
		Lighting: LightingConfig{
			Preset:         "studio",
			AmbientLight:   0.1,
			LightIntensity: 1.0,
			ShadowSoftness: 0.5,
		},
		Output: OutputConfig{
			IncludeMaterials: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// WriterConfig validates the settings and maps them onto the scene
// writer's configuration.
func (c *Config) WriterConfig() (pov.Config, error) {
	view, ok := pov.ParseCameraView(c.Camera.View)
	if !ok {
		return pov.Config{}, fmt.Errorf("unknown camera view %q (choose overhead or three-quarter)", c.Camera.View)
	}
	preset, ok := pov.ParsePreset(c.Lighting.Preset)
	if !ok {
		return pov.Config{}, fmt.Errorf("unknown lighting preset %q (choose one of %v)", c.Lighting.Preset, pov.PresetNames)
	}
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return pov.Config{}, fmt.Errorf("invalid image size %dx%d", c.Image.Width, c.Image.Height)
	}

	return pov.Config{
		ImageWidth:       c.Image.Width,
		ImageHeight:      c.Image.Height,
		FlipX:            c.Camera.FlipX,
		IncludeMaterials: c.Output.IncludeMaterials,
		View:             view,
		RotateCamera:     c.Camera.Rotate,
		Pitch:            c.Camera.Pitch,
		Yaw:              c.Camera.Yaw,
		Roll:             c.Camera.Roll,
		DistanceMult:     c.Camera.Distance,
		Preset:           preset,
		Radiosity:        c.Lighting.Radiosity,
		AreaLights:       c.Lighting.AreaLights,
		PhotonMapping:    c.Lighting.PhotonMapping,
		AmbientLight:     c.Lighting.AmbientLight,
		LightIntensity:   c.Lighting.LightIntensity,
		ShadowSoftness:   c.Lighting.ShadowSoftness,
	}, nil
}
