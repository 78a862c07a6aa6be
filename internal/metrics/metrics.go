// Package metrics publishes viewer activity as prometheus counters.
package metrics

import (
	"fmt"
	"io"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "cubeview"

// Recorder implements cubeview.Recorder on its own registry, so several
// viewers in one process never collide.
type Recorder struct {
	reg        *prometheus.Registry
	ingestions *prometheus.CounterVec
	created    prometheus.Counter
	disposed   prometheus.Counter
	live       prometheus.Gauge
	commands   *prometheus.CounterVec
	hover      *prometheus.CounterVec
}

var _ cubeview.Recorder = (*Recorder)(nil)

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ingestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestions_total",
			Help:      "Capture files processed, by result (ok, invalid_json, malformed, superseded, fetch_error).",
		}, []string{"result"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxies_created_total",
			Help:      "Slice proxies created in the scene.",
		}),
		disposed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxies_disposed_total",
			Help:      "Slice proxies disposed from the scene.",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "proxies_live",
			Help:      "Slice proxies currently in the scene.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Viewer commands applied, by kind.",
		}, []string{"kind"}),
		hover: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hover_tests_total",
			Help:      "Pointer hit tests, by result (hit, miss).",
		}, []string{"result"}),
	}
	r.reg.MustRegister(r.ingestions, r.created, r.disposed, r.live, r.commands, r.hover)
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) IngestionResult(result string) { r.ingestions.WithLabelValues(result).Inc() }

func (r *Recorder) ProxyCreated() {
	r.created.Inc()
	r.live.Inc()
}

func (r *Recorder) ProxyDisposed() {
	r.disposed.Inc()
	r.live.Dec()
}

func (r *Recorder) Command(kind string) { r.commands.WithLabelValues(kind).Inc() }

func (r *Recorder) HoverResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.hover.WithLabelValues(result).Inc()
}

// WriteText writes every metric in the prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
