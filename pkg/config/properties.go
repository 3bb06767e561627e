package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tracklab/cpsa/pkg/cpsa"
	"github.com/tracklab/cpsa/util"
)

// BoundConfig is one closed interval of the track filter. Nil endpoints
// mean unbounded on that side.
type BoundConfig struct {
	Min *float64 `yaml:"min" json:"min"`
	Max *float64 `yaml:"max" json:"max"`
}

// Interval converts the config form into the decoder's interval type.
func (b BoundConfig) Interval() cpsa.Interval {
	iv := cpsa.Unbounded()
	if b.Min != nil {
		iv.Min = *b.Min
	}
	if b.Max != nil {
		iv.Max = *b.Max
	}
	return iv
}

// BoundsConfig mirrors cpsa.Bounds field by field.
type BoundsConfig struct {
	D BoundConfig `yaml:"d" json:"d"`
	X BoundConfig `yaml:"x" json:"x"`
	Y BoundConfig `yaml:"y" json:"y"`
	E BoundConfig `yaml:"e" json:"e"`
	C BoundConfig `yaml:"c" json:"c"`
	A BoundConfig `yaml:"a" json:"a"`
}

// Config represents the decoder tool configuration including tunable
// accumulator capacities and the track bounds filter.
type Config struct {
	LogLevel util.LogLevel `yaml:"log_level" json:"log_level"`

	// Accumulator staging capacities; 0 = unbounded (flush only at end).
	FrameBuffer int `yaml:"frame_buffer" json:"frame.buffer"`
	TrackBuffer int `yaml:"track_buffer" json:"track.buffer"`

	Bounds BoundsConfig `yaml:"bounds" json:"bounds"`

	// Prometheus exporter
	EnableExporter bool `yaml:"enable_exporter" json:"enable.exporter"`
	ExporterPort   int  `yaml:"exporter_port" json:"exporter.port"`

	// CSV export session
	ExportCSV     bool   `yaml:"export_csv" json:"export.csv"`
	ExportDir     string `yaml:"export_dir" json:"export.dir"`
	SessionPrefix string `yaml:"session_prefix" json:"session.prefix"`

	// Log decode progress every N frames; 0 disables progress logs.
	ProgressEvery int `yaml:"progress_every" json:"progress.every"`
}

// DecoderOptions maps the config onto the decoder's option struct.
func (cfg *Config) DecoderOptions() cpsa.Options {
	return cpsa.Options{
		FrameBuffer: cfg.FrameBuffer,
		TrackBuffer: cfg.TrackBuffer,
		Bounds: cpsa.Bounds{
			D: cfg.Bounds.D.Interval(),
			X: cfg.Bounds.X.Interval(),
			Y: cfg.Bounds.Y.Interval(),
			E: cfg.Bounds.E.Interval(),
			C: cfg.Bounds.C.Interval(),
			A: cfg.Bounds.A.Interval(),
		},
	}
}

// Normalize applies defaults to unset or invalid fields.
func (cfg *Config) Normalize() {
	if cfg.FrameBuffer < 0 {
		util.Warn("Invalid frame_buffer (%d), defaulting to unbounded", cfg.FrameBuffer)
		cfg.FrameBuffer = 0
	}
	if cfg.TrackBuffer < 0 {
		util.Warn("Invalid track_buffer (%d), defaulting to unbounded", cfg.TrackBuffer)
		cfg.TrackBuffer = 0
	}
	if cfg.ExporterPort <= 0 {
		cfg.ExporterPort = 9100
	}
	if strings.TrimSpace(cfg.ExportDir) == "" {
		cfg.ExportDir = "cpsa-out"
	}
	if strings.TrimSpace(cfg.SessionPrefix) == "" {
		cfg.SessionPrefix = "scan"
	}
	if cfg.ProgressEvery < 0 {
		cfg.ProgressEvery = 0
	}
}

// LoadFile merges a YAML or JSON config file into cfg.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadConfig builds the configuration from CLI flags plus an optional
// YAML/JSON file. Flag values seed the config and the file overrides them;
// only the bound flags are re-applied after the file, so a passed bound
// flag beats the file's interval. Returns the config and the positional
// arguments (the scan file paths).
func LoadConfig() (*Config, []string, error) {
	cfg := &Config{}

	configPath := flag.String("config", "", "Path to YAML/JSON config file")
	logLevelStr := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	frameBufStr := flag.String("frame-buffer", "0", "Frame staging buffer capacity (0=unbounded)")
	trackBufStr := flag.String("track-buffer", "0", "Track staging buffer capacity (0=unbounded)")

	exporterStr := flag.String("exporter", "false", "Enable Prometheus exporter")
	exporterPortStr := flag.String("exporter-port", "9100", "Exporter port")

	exportCSVStr := flag.String("export-csv", "false", "Export decoded tables as CSV")
	exportDir := flag.String("export-dir", "cpsa-out", "Export session base directory")
	sessionPrefix := flag.String("session-prefix", "scan", "Export session name prefix")
	progressStr := flag.String("progress-every", "100000", "Log progress every N frames (0=off)")

	dMin := flag.String("d-min", "", "Lower bound on track diameter")
	dMax := flag.String("d-max", "", "Upper bound on track diameter")
	xMin := flag.String("x-min", "", "Lower bound on track x")
	xMax := flag.String("x-max", "", "Upper bound on track x")
	yMin := flag.String("y-min", "", "Lower bound on track y")
	yMax := flag.String("y-max", "", "Upper bound on track y")
	eMin := flag.String("e-min", "", "Lower bound on track eccentricity")
	eMax := flag.String("e-max", "", "Upper bound on track eccentricity")
	cMin := flag.String("c-min", "", "Lower bound on track contrast")
	cMax := flag.String("c-max", "", "Upper bound on track contrast")
	aMin := flag.String("a-min", "", "Lower bound on track attribute a")
	aMax := flag.String("a-max", "", "Upper bound on track attribute a")

	flag.Parse()

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" && *configPath == "" {
		*configPath = envPath
	}

	cfg.LogLevel = util.ParseLevel(*logLevelStr)
	cfg.FrameBuffer = util.ParseInt(*frameBufStr, 0)
	cfg.TrackBuffer = util.ParseInt(*trackBufStr, 0)
	cfg.EnableExporter = util.ParseBool(*exporterStr, false)
	cfg.ExporterPort = util.ParseInt(*exporterPortStr, 9100)
	cfg.ExportCSV = util.ParseBool(*exportCSVStr, false)
	cfg.ExportDir = *exportDir
	cfg.SessionPrefix = *sessionPrefix
	cfg.ProgressEvery = util.ParseInt(*progressStr, 100000)

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return nil, nil, err
		}
	}

	// Bound flags override file values whenever passed.
	applyBoundFlag(&cfg.Bounds.D, *dMin, *dMax)
	applyBoundFlag(&cfg.Bounds.X, *xMin, *xMax)
	applyBoundFlag(&cfg.Bounds.Y, *yMin, *yMax)
	applyBoundFlag(&cfg.Bounds.E, *eMin, *eMax)
	applyBoundFlag(&cfg.Bounds.C, *cMin, *cMax)
	applyBoundFlag(&cfg.Bounds.A, *aMin, *aMax)

	cfg.Normalize()
	util.SetLevel(cfg.LogLevel)

	return cfg, flag.Args(), nil
}

func applyBoundFlag(dst *BoundConfig, minStr, maxStr string) {
	if minStr != "" {
		v := util.ParseFloat(minStr, 0)
		dst.Min = &v
	}
	if maxStr != "" {
		v := util.ParseFloat(maxStr, 0)
		dst.Max = &v
	}
}
