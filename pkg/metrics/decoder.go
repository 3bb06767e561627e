package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FramesDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cpsa_frames_decoded_total",
		Help: "Total number of frame records decoded",
	})

	TracksDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cpsa_tracks_decoded_total",
		Help: "Total number of track records decoded and kept",
	})

	TracksFiltered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cpsa_tracks_filtered_total",
		Help: "Total number of track records dropped by the bounds filter",
	})

	BytesRead = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cpsa_bytes_read",
		Help: "Bytes consumed from the scan file by the last decode",
	})

	DecodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cpsa_decode_duration_seconds",
		Help:    "Histogram of whole-file decode durations",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	})

	DecodeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cpsa_decode_failures_total",
		Help: "Total number of decode runs that ended in a fatal error",
	})
)
