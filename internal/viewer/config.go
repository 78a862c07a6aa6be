package viewer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
	"github.com/lukaszgryglicki/cubeview/internal/scene"
	"gopkg.in/yaml.v3"
)

// Pointer is one hover position to test after the commands ran.
type Pointer struct {
	X       cubeview.Real `json:"x" yaml:"x"`
	Y       cubeview.Real `json:"y" yaml:"y"`
	ScreenX int           `json:"screenX,omitempty" yaml:"screenX,omitempty"`
	ScreenY int           `json:"screenY,omitempty" yaml:"screenY,omitempty"`
}

// Config drives one headless viewer run.
type Config struct {
	// Capture is the source key of the capture file.
	Capture  string        `json:"capture" yaml:"capture"`
	Layout   string        `json:"layout,omitempty" yaml:"layout,omitempty"`
	Spacing  cubeview.Real `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Commands []string      `json:"commands,omitempty" yaml:"commands,omitempty"`
	Pointer  *Pointer      `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	Scene    scene.Config  `json:"scene,omitempty" yaml:"scene,omitempty"`

	SnapshotOut string `json:"snapshotOut,omitempty" yaml:"snapshotOut,omitempty"`
	GIFOut      string `json:"gifOut,omitempty" yaml:"gifOut,omitempty"`
	GIFDelay    int    `json:"gifDelay,omitempty" yaml:"gifDelay,omitempty"`
	CellPx      int    `json:"cellPx,omitempty" yaml:"cellPx,omitempty"`
	MetricsOut  string `json:"metricsOut,omitempty" yaml:"metricsOut,omitempty"`

	layout   cubeview.Layout
	commands []cubeview.Command
}

// Build applies defaults and resolves the layout name and the commands.
func (c *Config) Build() error {
	if c.Capture == "" {
		return fmt.Errorf("config has no capture")
	}
	l, ok := cubeview.LayoutByName(c.Layout)
	if !ok {
		return fmt.Errorf("unknown layout %q", c.Layout)
	}
	c.layout = l
	if c.Spacing < 0 {
		return fmt.Errorf("spacing must be > 0, got %g", c.Spacing)
	}
	if c.Spacing == 0 {
		c.Spacing = cubeview.DefaultSpacing
	}
	if c.SnapshotOut == "" {
		c.SnapshotOut = SnapshotOut
	}
	if c.GIFOut == "" {
		c.GIFOut = GIFOut
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = scene.GIFDelay
	}
	if c.CellPx <= 0 {
		c.CellPx = scene.DefaultCellPx
	}
	c.commands = c.commands[:0]
	for i, s := range c.Commands {
		cmd, err := cubeview.ParseCommand(s)
		if err != nil {
			return fmt.Errorf("command #%d: %w", i+1, err)
		}
		c.commands = append(c.commands, cmd)
	}
	return nil
}

// loadConfig reads a JSON or, by extension, YAML config file.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Build(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cubeview.DebugLog("Loaded config from %s: capture=%s, layout=%q, spacing=%g, commands=%d",
		path, cfg.Capture, cfg.Layout, cfg.Spacing, len(cfg.commands))
	return &cfg, nil
}
