package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tracklab/cpsa/pkg/config"
	"github.com/tracklab/cpsa/pkg/cpsa"
	"github.com/tracklab/cpsa/pkg/export"
	"github.com/tracklab/cpsa/pkg/metrics"
	"github.com/tracklab/cpsa/pkg/source"
	"github.com/tracklab/cpsa/util"
)

func main() {
	cfg, args, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: cpsadump [flags] <scan.cpsa | scan.cpsa.zst>")
		os.Exit(2)
	}
	path := args[0]

	if cfg.EnableExporter {
		metrics.StartMetricsServer(cfg.ExporterPort)
	}

	opts := cfg.DecoderOptions()
	if cfg.ProgressEvery > 0 {
		every := cfg.ProgressEvery
		opts.OnFrame = func(done, total int) {
			if done%every == 0 || done == total {
				util.Info("decoded %d/%d frames", done, total)
			}
		}
	}

	util.Info("decoding %s", path)
	start := time.Now()
	data, err := source.DecodeFile(path, opts)
	elapsed := time.Since(start)

	if data != nil {
		metrics.ObserveDecode(data.Stats, elapsed, err != nil)
	}
	if err != nil {
		if data == nil {
			util.Fatal("decode %s: %v", path, err)
		}
		// Partial results are still valid up to the error point.
		util.Error("decode %s: %v", path, err)
		util.Warn("keeping %d frames / %d tracks decoded before the error",
			len(data.Frames), len(data.Tracks))
	}

	printSummary(data, elapsed)

	if cfg.ExportCSV {
		session, err := export.NewSession(cfg.ExportDir, cfg.SessionPrefix)
		if err != nil {
			util.Fatal("create export session: %v", err)
		}
		if err := session.WriteScan(data); err != nil {
			util.Fatal("export session %s: %v", session.ID, err)
		}
		util.Info("session %s exported to %s", session.ID, session.Dir)
	}
}

func printSummary(data *cpsa.ScanData, elapsed time.Duration) {
	h := data.Header
	fmt.Printf("version:      %d\n", h.VersionNumber)
	fmt.Printf("frame grid:   %d x %d (%d frames)\n", h.NumXFrames, h.NumYFrames, h.NumFrames())
	fmt.Printf("pixel size:   %g cm\n", h.PixelSize)
	fmt.Printf("frame size:   %g x %g cm\n", h.FrameWidth, h.FrameHeight)
	fmt.Printf("frames:       %d\n", len(data.Frames))
	fmt.Printf("tracks:       %d kept, %d filtered\n", len(data.Tracks), data.Stats.TracksDropped)
	fmt.Printf("bytes read:   %d\n", data.Stats.BytesRead)
	fmt.Printf("elapsed:      %s\n", elapsed.Round(time.Millisecond))

	if data.Trailer != "" {
		preview := data.Trailer
		if len(preview) > 120 {
			preview = preview[:120] + "..."
		}
		fmt.Printf("trailer:      %q\n", preview)
	}
}
