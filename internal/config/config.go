// Package config handles viewer configuration loading and management.
package config

// Scene kinds understood by the viewer.
const (
	SceneCubes    = "cubes"
	SceneBlocks   = "blocks"
	SceneBlockMap = "blockmap"
	SceneTerrain  = "terrain"
)

// SceneKinds lists the scene kinds in the order the number keys select them.
var SceneKinds = []string{SceneCubes, SceneBlocks, SceneBlockMap, SceneTerrain}

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`

	SunAzimuth   float32 `yaml:"sun_azimuth"`   // Degrees around Y from +Z
	SunElevation float32 `yaml:"sun_elevation"` // Degrees above the horizon
}

// CameraConfig holds first-person camera settings.
type CameraConfig struct {
	Sensitivity float32    `yaml:"sensitivity"` // Degrees per pixel of pointer motion
	Speed       float32    `yaml:"speed"`       // World units per second
	Eye         [3]float32 `yaml:"eye"`
}

// SceneConfig selects and parameterizes the startup scene.
type SceneConfig struct {
	Kind          string  `yaml:"kind"`
	Map           string  `yaml:"map"`
	CubeGrid      int     `yaml:"cube_grid"`
	BlockSize     int     `yaml:"block_size"`
	BlockHeight   int     `yaml:"block_height"`
	Seed          int64   `yaml:"seed"`
	HeightScale   float32 `yaml:"height_scale"`
	HeightChannel string  `yaml:"height_channel"` // red, green, blue, alpha or luma
	ShowStats     bool    `yaml:"show_stats"`
	ShowMemory    bool    `yaml:"show_memory"` // Heap usage line in the stats overlay
}

// DataConfig holds asset paths.
type DataConfig struct {
	MapDir        string `yaml:"map_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       0.01,
			Far:        1000,

			SunAzimuth:   50,
			SunElevation: 65,
		},
		Camera: CameraConfig{
			Sensitivity: 0.05,
			Speed:       20,
			Eye:         [3]float32{20, 0, 0},
		},
		Scene: SceneConfig{
			Kind:          SceneCubes,
			CubeGrid:      32,
			BlockSize:     128,
			BlockHeight:   24,
			Seed:          123,
			HeightScale:   64,
			HeightChannel: "red",
			ShowStats:     true,
		},
		Data: DataConfig{
			MapDir:        "maps",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// IsSceneKind reports whether kind names a known scene.
func IsSceneKind(kind string) bool {
	for _, k := range SceneKinds {
		if k == kind {
			return true
		}
	}
	return false
}
