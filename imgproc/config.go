package imgproc

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DaniruKun/multitracker/tracking"
)

const (
	DefaultCodec         = "mp4v"
	DefaultThickness     = 2
	DefaultSnapshotWidth = 640
	DefaultFPS           = 30
)

type Config struct {
	VideoPath     string `yaml:"video"`         // Input video file
	OutputPath    string `yaml:"output"`        // Annotated output video
	RecordPath    string `yaml:"record"`        // Position record, .yaml/.yml or text
	Tracker       string `yaml:"tracker"`       // OpenCV tracker type
	Codec         string `yaml:"codec"`         // FourCC of the output video
	DBPath        string `yaml:"db"`            // Optional SQLite session store
	SnapshotPath  string `yaml:"snapshot"`      // Optional PNG of the selection frame
	SnapshotWidth uint   `yaml:"snapshotWidth"` // Snapshot thumbnail width in pixels
	Thickness     int    `yaml:"thickness"`     // Box outline thickness
	Seed          int64  `yaml:"seed"`          // Color seed, 0 picks one from the clock
	ShowGUI       bool   `yaml:"gui"`           // Show the live preview while tracking
	Debug         bool   `yaml:"debug"`         // Toggles debug mode
}

func DefaultConfig() Config {
	return Config{
		Tracker:       string(tracking.DefaultType),
		Codec:         DefaultCodec,
		SnapshotWidth: DefaultSnapshotWidth,
		Thickness:     DefaultThickness,
		ShowGUI:       true,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.VideoPath == "" {
		return errors.New("no input video given")
	}
	if _, err := tracking.ParseType(c.Tracker); err != nil {
		return err
	}
	if len(c.Codec) != 4 {
		return fmt.Errorf("codec %q is not a FourCC", c.Codec)
	}
	if c.Thickness <= 0 {
		return fmt.Errorf("thickness must be positive, got %d", c.Thickness)
	}
	return nil
}
