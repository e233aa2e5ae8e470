// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Blobs     BlobsConfig     `yaml:"blobs"`
	Stars     StarsConfig     `yaml:"stars"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Waves     WavesConfig     `yaml:"waves"`
	Colors    ColorsConfig    `yaml:"colors"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds the blob integrator parameters.
// Thresholds are tuned values carried over as-is; they have no derivation.
type PhysicsConfig struct {
	MaxDT              float64 `yaml:"max_dt"`              // Integration step cap for frame hitches
	HeadlessDT         float64 `yaml:"headless_dt"`         // Fixed step used without a window
	WindSpeed          float64 `yaml:"wind_speed"`          // Horizontal force, divided by mass
	FloatAmount        float64 `yaml:"float_amount"`        // Buoyancy per unit of height deficit
	GrowFactor         float64 `yaml:"grow_factor"`         // Regrow rate in pixels per second
	CloudMinHeight     float64 `yaml:"cloud_min_height"`    // Cloud ceiling blobs float up to
	RegrowBand         float64 `yaml:"regrow_band"`         // Regrow when deficit is below this
	AttractionStrength float64 `yaml:"attraction_strength"` // Pointer gravity constant
	MaxGravity         float64 `yaml:"max_gravity"`         // Pointer gravity cap
	Friction           float64 `yaml:"friction"`            // Velocity fraction lost per reference frame
	FrictionScale      float64 `yaml:"friction_scale"`      // Reference frames per second
	StepScale          float64 `yaml:"step_scale"`          // Velocity to normalized position
	MaxStep            float64 `yaml:"max_step"`            // Per-axis position step cap
	Waterline          float64 `yaml:"waterline"`           // Dissolve threshold for blob bottoms
	DissolveSpeed      float64 `yaml:"dissolve_speed"`      // Size lost per unit depth per second
	MinSize            float64 `yaml:"min_size"`            // Dissolve floor in pixels
	SugarFactor        float64 `yaml:"sugar_factor"`        // Grams per pixel of dissolved size
	MarginFactor       float64 `yaml:"margin_factor"`       // Wrap margin in blob sizes
}

// BlobsConfig holds blob spawn parameters.
type BlobsConfig struct {
	SizeMin        float64 `yaml:"size_min"`
	SizeRange      float64 `yaml:"size_range"`
	ReferenceWidth float64 `yaml:"reference_width"` // Canvas width the sizes are tuned for
	SpawnXScale    float64 `yaml:"spawn_x_scale"`
	SpawnXOffset   float64 `yaml:"spawn_x_offset"`
	SpawnYDepth    float64 `yaml:"spawn_y_depth"`
}

// StarsConfig holds star random walk parameters.
type StarsConfig struct {
	Speed    float64 `yaml:"speed"`
	Friction float64 `yaml:"friction"`
}

// PointerConfig holds held-time smoothing rates.
type PointerConfig struct {
	GainRate   float64 `yaml:"gain_rate"`
	ReduceRate float64 `yaml:"reduce_rate"`
}

// WavesConfig holds the time phase parameters for the shader.
type WavesConfig struct {
	WindRatio        float64 `yaml:"wind_ratio"`        // Surface wave period = wind_speed * this
	UnderwaterPeriod float64 `yaml:"underwater_period"` // Caustic jitter period in seconds
}

// ColorsConfig holds the seven scene colors as CSS color strings.
type ColorsConfig struct {
	SkyBottom       string `yaml:"sky_bottom"`
	SkyTop          string `yaml:"sky_top"`
	Star            string `yaml:"star"`
	Cloud           string `yaml:"cloud"`
	WaveTop         string `yaml:"wave_top"`
	Water           string `yaml:"water"`
	WaterRefraction string `yaml:"water_refraction"`
}

// RenderConfig holds CPU rasterizer settings.
type RenderConfig struct {
	Workers        int `yaml:"workers"` // 0 = GOMAXPROCS
	SnapshotWidth  int `yaml:"snapshot_width"`
	SnapshotHeight int `yaml:"snapshot_height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WavePeriod float64                   // Physics.WindSpeed * Waves.WindRatio, may be negative
	Colors     map[string]colorful.Color // yaml color key -> parsed color
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.WavePeriod = c.Physics.WindSpeed * c.Waves.WindRatio

	c.Derived.Colors = make(map[string]colorful.Color, 7)
	for _, nc := range c.Colors.Named() {
		col, err := ParseColor(nc.Value)
		if err != nil {
			return fmt.Errorf("colors.%s: %w", nc.Name, err)
		}
		c.Derived.Colors[nc.Name] = col
	}

	if c.Physics.MinSize <= 0 {
		return fmt.Errorf("physics.min_size must be positive, got %v", c.Physics.MinSize)
	}
	if c.Physics.MaxDT <= 0 {
		return fmt.Errorf("physics.max_dt must be positive, got %v", c.Physics.MaxDT)
	}
	return nil
}

// NamedColor pairs a yaml color key with its configured value.
type NamedColor struct {
	Name  string
	Value string
}

// Named returns the colors in uniform order.
func (c ColorsConfig) Named() []NamedColor {
	return []NamedColor{
		{"sky_bottom", c.SkyBottom},
		{"sky_top", c.SkyTop},
		{"star", c.Star},
		{"cloud", c.Cloud},
		{"wave_top", c.WaveTop},
		{"water", c.Water},
		{"water_refraction", c.WaterRefraction},
	}
}

// ParseColor parses any CSS color string into an opaque RGB color.
func ParseColor(s string) (colorful.Color, error) {
	parsed, err := csscolorparser.Parse(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B}, nil
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
