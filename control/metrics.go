// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collector exporting pool statistics. Values are read from the
// StatsSource at scrape time, so there is nothing to update on the hot path.

package control

import (
	"io"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/momentics/hioload-kit/api"
)

// Metrics is a prometheus.Collector over an api.StatsSource, registered in a
// private registry.
type Metrics struct {
	source   api.StatsSource
	registry *prometheus.Registry

	free     *prometheus.Desc
	leased   *prometheus.Desc
	allocs   *prometheus.Desc
	acquired *prometheus.Desc
	released *prometheus.Desc
	rejected *prometheus.Desc
}

var _ prometheus.Collector = (*Metrics)(nil)

// NewMetrics builds the collector and registers it in a fresh registry.
func NewMetrics(namespace string, source api.StatsSource) *Metrics {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, labels, nil)
	}
	m := &Metrics{
		source:   source,
		registry: prometheus.NewRegistry(),
		free:     desc("free_buffers", "Buffers available for reuse.", "registry", "length"),
		leased:   desc("leased_buffers", "Buffers currently leased.", "registry", "length"),
		allocs:   desc("allocations_total", "Buffers allocated because no free one matched.", "registry"),
		acquired: desc("acquired_total", "Successful acquisitions.", "registry"),
		released: desc("released_total", "Accepted releases.", "registry"),
		rejected: desc("rejected_releases_total", "Releases of buffers not leased from the registry.", "registry"),
	}
	m.registry.MustRegister(m)
	return m
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.free
	ch <- m.leased
	ch <- m.allocs
	ch <- m.acquired
	ch <- m.released
	ch <- m.rejected
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for name, st := range m.source.Stats() {
		for length, ls := range st.ByLength {
			l := strconv.Itoa(length)
			ch <- prometheus.MustNewConstMetric(m.free, prometheus.GaugeValue, float64(ls.Free), name, l)
			ch <- prometheus.MustNewConstMetric(m.leased, prometheus.GaugeValue, float64(ls.Leased), name, l)
		}
		ch <- prometheus.MustNewConstMetric(m.allocs, prometheus.CounterValue, float64(st.TotalAlloc), name)
		ch <- prometheus.MustNewConstMetric(m.acquired, prometheus.CounterValue, float64(st.Acquired), name)
		ch <- prometheus.MustNewConstMetric(m.released, prometheus.CounterValue, float64(st.Released), name)
		ch <- prometheus.MustNewConstMetric(m.rejected, prometheus.CounterValue, float64(st.RejectedReleases), name)
	}
}

// Registry exposes the private registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteText gathers once and writes the text exposition format to w.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
