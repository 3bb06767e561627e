package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tracklab/cpsa/pkg/config"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Normalize()

	if cfg.FrameBuffer != 0 || cfg.TrackBuffer != 0 {
		t.Errorf("buffer defaults incorrect: %d/%d", cfg.FrameBuffer, cfg.TrackBuffer)
	}
	if cfg.ExporterPort != 9100 {
		t.Errorf("ExporterPort default incorrect: %d", cfg.ExporterPort)
	}
	if cfg.ExportDir != "cpsa-out" {
		t.Errorf("ExportDir default incorrect: %s", cfg.ExportDir)
	}
	if cfg.SessionPrefix != "scan" {
		t.Errorf("SessionPrefix default incorrect: %s", cfg.SessionPrefix)
	}
}

func TestNormalizeNegativeBuffers(t *testing.T) {
	cfg := &config.Config{FrameBuffer: -5, TrackBuffer: -1}
	cfg.Normalize()
	if cfg.FrameBuffer != 0 || cfg.TrackBuffer != 0 {
		t.Errorf("negative buffers not normalized: %d/%d", cfg.FrameBuffer, cfg.TrackBuffer)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpsa.yaml")
	body := `
log_level: debug
frame_buffer: 1024
track_buffer: 65536
bounds:
  d:
    min: 0.0
    max: 20.0
  c:
    max: 60
export_csv: true
export_dir: /tmp/out
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.FrameBuffer != 1024 || cfg.TrackBuffer != 65536 {
		t.Errorf("buffers: got %d/%d", cfg.FrameBuffer, cfg.TrackBuffer)
	}
	if cfg.Bounds.D.Min == nil || *cfg.Bounds.D.Min != 0.0 {
		t.Error("d.min not loaded")
	}
	if cfg.Bounds.D.Max == nil || *cfg.Bounds.D.Max != 20.0 {
		t.Error("d.max not loaded")
	}
	if cfg.Bounds.C.Min != nil {
		t.Error("c.min should stay unset")
	}
	if !cfg.ExportCSV || cfg.ExportDir != "/tmp/out" {
		t.Errorf("export settings: %v %s", cfg.ExportCSV, cfg.ExportDir)
	}
}

func TestDecoderOptionsMapping(t *testing.T) {
	min, max := 1.5, 2.5
	cfg := &config.Config{FrameBuffer: 8, TrackBuffer: 16}
	cfg.Bounds.X = config.BoundConfig{Min: &min, Max: &max}
	cfg.Bounds.E = config.BoundConfig{Max: &max}

	opts := cfg.DecoderOptions()
	if opts.FrameBuffer != 8 || opts.TrackBuffer != 16 {
		t.Errorf("buffers: got %d/%d", opts.FrameBuffer, opts.TrackBuffer)
	}
	if opts.Bounds.X.Min != 1.5 || opts.Bounds.X.Max != 2.5 {
		t.Errorf("X interval: got %+v", opts.Bounds.X)
	}
	if !math.IsInf(opts.Bounds.E.Min, -1) || opts.Bounds.E.Max != 2.5 {
		t.Errorf("E interval: got %+v", opts.Bounds.E)
	}
	// Unconfigured fields map to unbounded, keeping every track.
	if !opts.Bounds.D.IsUnbounded() {
		t.Error("D interval should be unbounded")
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := &config.Config{}
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
