package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tracklab/cpsa/pkg/cpsa"
	"github.com/tracklab/cpsa/util"
)

func init() {
	prometheus.MustRegister(FramesDecoded, TracksDecoded, TracksFiltered,
		BytesRead, DecodeDuration, DecodeFailures)
}

// StartMetricsServer serves /metrics in the background.
func StartMetricsServer(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", port)
		util.Info("Prometheus exporter listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			util.Error("metrics server failed: %v", err)
		}
	}()
}

// ObserveDecode records the outcome of one decode run. Called by the tool
// after decoding; the decoder core stays metric-free.
func ObserveDecode(stats cpsa.Stats, elapsed time.Duration, failed bool) {
	FramesDecoded.Add(float64(stats.FramesDecoded))
	TracksDecoded.Add(float64(stats.TracksDecoded))
	TracksFiltered.Add(float64(stats.TracksDropped))
	BytesRead.Set(float64(stats.BytesRead))
	DecodeDuration.Observe(elapsed.Seconds())
	if failed {
		DecodeFailures.Inc()
	}
}
