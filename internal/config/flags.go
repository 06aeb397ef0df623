package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagOutput  = flag.String("o", "", "Output POV file (default: input file with .pov extension)")
	flagVerbose = flag.Bool("verbose", false, "Enable debug logging")
	flagVersion = flag.Bool("version", false, "Print version and exit")

	flagWidth  = flag.Int("width", 0, "Image width for POV-Ray rendering")
	flagHeight = flag.Int("height", 0, "Image height for POV-Ray rendering")

	flagFlipX    = flag.Bool("flip-x", false, "Flip X coordinates")
	flagView     = flag.String("view", "", "Default camera view: overhead or three-quarter")
	flagRotate   = flag.Float64("rotate-camera", 0, "Rotate camera around look-at point in degrees")
	flagPitch    = flag.Float64("camera-pitch", 0, "Camera pitch (up/down) in degrees")
	flagYaw      = flag.Float64("camera-yaw", 0, "Camera yaw (left/right) in degrees")
	flagRoll     = flag.Float64("camera-roll", 0, "Camera roll (tilt) in degrees")
	flagDistance = flag.Float64("camera-distance", 0, "Camera distance multiplier")

	flagRadiosity  = flag.Bool("radiosity", false, "Enable radiosity (global illumination)")
	flagAreaLights = flag.Bool("area-lights", false, "Use area lights for soft shadows")
	flagPhotons    = flag.Bool("photon-mapping", false, "Enable photon mapping")
	flagPreset     = flag.String("lighting-preset", "", "Lighting preset: studio, outdoor, dramatic, soft, architectural")
	flagAmbient    = flag.Float64("ambient-light", 0, "Ambient light intensity (0.0-1.0)")
	flagIntensity  = flag.Float64("light-intensity", 0, "Main light intensity multiplier")
	flagSoftness   = flag.Float64("shadow-softness", 0, "Shadow softness for area lights (0.0-2.0)")

	flagNoMaterials = flag.Bool("no-materials", false, "Skip material definitions")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// OutputPath returns the explicit output path if provided via -o.
func OutputPath() string {
	return *flagOutput
}

// Verbose reports whether -verbose was given.
func Verbose() bool {
	return *flagVerbose
}

// ShowVersion reports whether -version was given.
func ShowVersion() bool {
	return *flagVersion
}

// Args returns the positional arguments after the flags.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config. Only flags the
// user actually set override the file/default values.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Image.Width = *flagWidth
		case "height":
			cfg.Image.Height = *flagHeight
		case "flip-x":
			cfg.Camera.FlipX = *flagFlipX
		case "view":
			cfg.Camera.View = *flagView
		case "rotate-camera":
			cfg.Camera.Rotate = *flagRotate
		case "camera-pitch":
			cfg.Camera.Pitch = *flagPitch
		case "camera-yaw":
			cfg.Camera.Yaw = *flagYaw
		case "camera-roll":
			cfg.Camera.Roll = *flagRoll
		case "camera-distance":
			cfg.Camera.Distance = *flagDistance
		case "radiosity":
			cfg.Lighting.Radiosity = *flagRadiosity
		case "area-lights":
			cfg.Lighting.AreaLights = *flagAreaLights
		case "photon-mapping":
			cfg.Lighting.PhotonMapping = *flagPhotons
		case "lighting-preset":
			cfg.Lighting.Preset = *flagPreset
		case "ambient-light":
			cfg.Lighting.AmbientLight = *flagAmbient
		case "light-intensity":
			cfg.Lighting.LightIntensity = *flagIntensity
		case "shadow-softness":
			cfg.Lighting.ShadowSoftness = *flagSoftness
		case "no-materials":
			cfg.Output.IncludeMaterials = !*flagNoMaterials
		case "verbose":
			cfg.Logging.Level = "debug"
		}
	})
}
