package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Startup scene: cubes, blocks, blockmap or terrain")
	flagMap        = flag.String("map", "", "Heightmap/colormap pair to load")
	flagData       = flag.String("data", "", "Directory holding map images")
	flagSeed       = flag.Int64("seed", 0, "Seed for procedural block terrain")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// explicitFlags records the flags given on the command line, so that a flag
// set to its zero value still overrides the config file.
var explicitFlags = map[string]bool{}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		explicitFlags[f.Name] = true
	})
}

func flagSet(name string) bool {
	return explicitFlags[name]
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Scene.ShowStats = true
		cfg.Scene.ShowMemory = true
	}
	if *flagScene != "" {
		cfg.Scene.Kind = *flagScene
	}
	if *flagMap != "" {
		cfg.Scene.Map = *flagMap
	}
	if *flagData != "" {
		cfg.Data.MapDir = *flagData
	}
	if flagSet("seed") {
		cfg.Scene.Seed = *flagSeed
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
