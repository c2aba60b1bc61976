package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// uplink decoding pipeline.
type Metrics struct {
	UplinksConsumed prometheus.Counter
	RecordsProduced prometheus.Counter
	DecodeErrors    prometheus.Counter
	PipelineRunning prometheus.Gauge

	// ProfileFallbacks counts decodes where the requested profile id was
	// unknown and the default profile was substituted, labelled by the
	// offending id so misconfigured device metadata is attributable.
	ProfileFallbacks *prometheus.CounterVec // label: requested

	// BitUnderruns counts non-strict decodes whose payload carried fewer
	// bits than the profile consumes; the missing fields were zero-filled.
	BitUnderruns prometheus.Counter

	DecodeDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		UplinksConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uplink_decoder",
			Name:      "uplinks_consumed_total",
			Help:      "Total uplink envelopes read from the source.",
		}),
		RecordsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uplink_decoder",
			Name:      "records_produced_total",
			Help:      "Total decoded records written to the sink.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uplink_decoder",
			Name:      "decode_errors_total",
			Help:      "Total uplinks skipped because decoding failed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uplink_decoder",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		ProfileFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uplink_decoder",
			Name:      "profile_fallbacks_total",
			Help:      "Decodes that fell back to the default profile, by requested id.",
		}, []string{"requested"}),
		BitUnderruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uplink_decoder",
			Name:      "bit_underruns_total",
			Help:      "Payloads shorter than their profile's bit length (zero-filled).",
		}),
		DecodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "uplink_decoder",
			Name:      "decode_duration_seconds",
			Help:      "Duration of a single uplink transform, envelope to record.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}

	prometheus.MustRegister(
		m.UplinksConsumed,
		m.RecordsProduced,
		m.DecodeErrors,
		m.PipelineRunning,
		m.ProfileFallbacks,
		m.BitUnderruns,
		m.DecodeDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct any number of instances without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		UplinksConsumed:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "uplink_decoder", Name: "uplinks_consumed_total"}),
		RecordsProduced:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "uplink_decoder", Name: "records_produced_total"}),
		DecodeErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "uplink_decoder", Name: "decode_errors_total"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "uplink_decoder", Name: "pipeline_running"}),
		ProfileFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "uplink_decoder", Name: "profile_fallbacks_total"}, []string{"requested"}),
		BitUnderruns:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "uplink_decoder", Name: "bit_underruns_total"}),
		DecodeDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "uplink_decoder", Name: "decode_duration_seconds"}),
	}
}
