// Package config provides configuration loading and access for the backdrop.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all backdrop configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Device      DeviceConfig      `yaml:"device"`
	Field       FieldConfig       `yaml:"field"`
	Frames      FramesConfig      `yaml:"frames"`
	Connections ConnectionsConfig `yaml:"connections"`
	Debounce    DebounceConfig    `yaml:"debounce"`
	Pointer     PointerConfig     `yaml:"pointer"`
	Gate        GateConfig        `yaml:"gate"`
	Terminal    TerminalConfig    `yaml:"terminal"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Audio       AudioConfig       `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width      int    `yaml:"width" env:"BACKDROP_SCREEN_WIDTH"`
	Height     int    `yaml:"height" env:"BACKDROP_SCREEN_HEIGHT"`
	RefreshFPS int    `yaml:"refresh_fps" env:"BACKDROP_REFRESH_FPS"` // Host refresh rate (display vsync stand-in)
	Title      string `yaml:"title"`
}

// DeviceConfig holds the host environment signals used for device classing.
type DeviceConfig struct {
	UserAgent string `yaml:"user_agent" env:"BACKDROP_USER_AGENT"`
	Class     string `yaml:"class" env:"BACKDROP_DEVICE_CLASS"` // auto, mobile or desktop
}

// FieldConfig holds particle density policy.
type FieldConfig struct {
	DensityDivisor float64 `yaml:"density_divisor"` // Square pixels per particle
	MobileCap      int     `yaml:"mobile_cap"`
	TabletCap      int     `yaml:"tablet_cap"`
	DesktopCap     int     `yaml:"desktop_cap" env:"BACKDROP_DESKTOP_CAP"`
	TabletWidth    int     `yaml:"tablet_width"` // Non-mobile widths below this use TabletCap
	MobileWidth    int     `yaml:"mobile_width"` // Widths below this are mobile at startup
}

// FramesConfig holds frame pacing targets.
type FramesConfig struct {
	MobileFPS  int `yaml:"mobile_fps"`
	DesktopFPS int `yaml:"desktop_fps"`
}

// ConnectionsConfig holds proximity link parameters.
type ConnectionsConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
	LineWidth   float64 `yaml:"line_width"`
	MaxAlpha    float64 `yaml:"max_alpha"` // Alpha of a zero-length link
	UseGrid     bool    `yaml:"use_grid" env:"BACKDROP_CONNECTION_GRID"`
}

// DebounceConfig holds quiet periods for bursty host events.
type DebounceConfig struct {
	ResizeMS int `yaml:"resize_ms"`
	ScrollMS int `yaml:"scroll_ms"`
}

// PointerConfig holds the reserved pointer hook settings.
type PointerConfig struct {
	Radius float64 `yaml:"radius"`
}

// GateConfig holds unlock gate parameters.
type GateConfig struct {
	Code          string       `yaml:"code" env:"BACKDROP_GATE_CODE"`
	CodeLength    int          `yaml:"code_length"`
	ErrorHint     string       `yaml:"error_hint"`
	SuccessHint   string       `yaml:"success_hint"`
	ErrorClearMS  int          `yaml:"error_clear_ms"`
	BubbleDelayMS int          `yaml:"bubble_delay_ms"`
	RevealDelayMS int          `yaml:"reveal_delay_ms"`
	Bubbles       BubbleConfig `yaml:"bubbles"`
}

// BubbleConfig holds the unlock bubble burst parameters.
type BubbleConfig struct {
	Count        int     `yaml:"count"`
	StaggerMS    int     `yaml:"stagger_ms"`   // Delay between consecutive spawns
	LifetimeMS   int     `yaml:"lifetime_ms"`  // Each bubble is removed this long after spawning
	ContainerMS  int     `yaml:"container_ms"` // Whole burst is removed this long after starting
	JitterX      float64 `yaml:"jitter_x"`     // Full width of horizontal spawn jitter
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	MinRiseMS    int     `yaml:"min_rise_ms"`
	MaxRiseMS    int     `yaml:"max_rise_ms"`
	RiseDistance float64 `yaml:"rise_distance"`
}

// TerminalConfig maps terminal cells onto the virtual pixel viewport.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int           `yaml:"perf_window"`
	LogInterval time.Duration `yaml:"log_interval" env:"BACKDROP_LOG_INTERVAL"`
}

// AudioConfig holds the optional unlock chime.
type AudioConfig struct {
	UnlockChime bool    `yaml:"unlock_chime" env:"BACKDROP_UNLOCK_CHIME"`
	ChimeHz     float64 `yaml:"chime_hz"`
	ChimeMS     int     `yaml:"chime_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ResizeDebounce time.Duration
	ScrollDebounce time.Duration
	MaxDistance32  float32
	LineWidth32    float32
	MaxAlpha32     float32
	ForceMobile    bool // device.class == mobile
	ForceDesktop   bool // device.class == desktop
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies BACKDROP_* environment overrides.
// If path is empty, only embedded defaults (and the environment) are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Unset variables leave the YAML values untouched
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make the engine misbehave silently.
func (c *Config) validate() error {
	switch c.Device.Class {
	case "", "auto", "mobile", "desktop":
	default:
		return fmt.Errorf("device.class: unknown class %q", c.Device.Class)
	}
	if c.Field.DensityDivisor <= 0 {
		return fmt.Errorf("field.density_divisor: must be positive, got %v", c.Field.DensityDivisor)
	}
	if c.Frames.MobileFPS <= 0 || c.Frames.DesktopFPS <= 0 {
		return fmt.Errorf("frames: fps targets must be positive")
	}
	if c.Connections.MaxDistance <= 0 {
		return fmt.Errorf("connections.max_distance: must be positive, got %v", c.Connections.MaxDistance)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ResizeDebounce = time.Duration(c.Debounce.ResizeMS) * time.Millisecond
	c.Derived.ScrollDebounce = time.Duration(c.Debounce.ScrollMS) * time.Millisecond
	c.Derived.MaxDistance32 = float32(c.Connections.MaxDistance)
	c.Derived.LineWidth32 = float32(c.Connections.LineWidth)
	c.Derived.MaxAlpha32 = float32(c.Connections.MaxAlpha)
	c.Derived.ForceMobile = c.Device.Class == "mobile"
	c.Derived.ForceDesktop = c.Device.Class == "desktop"
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
