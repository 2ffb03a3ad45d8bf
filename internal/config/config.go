// Package config handles bathy3d configuration loading and management.
package config

import "github.com/Faultbox/bathy3d/pkg/grid"

// Config holds all viewer settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds the elevation dataset location.
type DataConfig struct {
	Dataset string `yaml:"dataset"` // netCDF grid with x, y and z variables
}

// RenderConfig holds projection and coloring settings.
type RenderConfig struct {
	Mode   string  `yaml:"mode"` // sphere, cylinder or rectangle
	ZScale float64 `yaml:"zscale"`

	// TopoLimits is [lon_min, lon_max, lat_min, lat_max]. Empty means the
	// whole globe.
	TopoLimits []float64 `yaml:"topo_limits"`

	Colormap string   `yaml:"colormap"`
	Vmin     *float64 `yaml:"vmin"`
	Vmax     *float64 `yaml:"vmax"`
	Reverse  bool     `yaml:"reverse"`

	LandConstant bool      `yaml:"land_constant"`
	LandColor    []float64 `yaml:"land_color"` // r, g, b in [0, 1]
}

// CameraConfig holds the initial camera. When Auto is set the camera is
// fitted to the scene and the other fields are ignored.
type CameraConfig struct {
	Auto       bool      `yaml:"auto"`
	Azimuth    float64   `yaml:"azimuth"`
	Elevation  float64   `yaml:"elevation"`
	Distance   float64   `yaml:"distance"`
	FocalPoint []float64 `yaml:"focal_point"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dataset: grid.DefaultDataset,
		},
		Render: RenderConfig{
			Mode:      "sphere",
			ZScale:    500,
			Colormap:  "bone",
			LandColor: []float64{0.7, 0.7, 0.7},
		},
		Camera: CameraConfig{
			Auto: true,
		},
		Window: WindowConfig{
			Title:  "bathy3d",
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
