// Package metrics exposes the resolved machine identity as Prometheus gauges.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hostident/internal/machine"
)

const namespace = "hostident"

// Metrics holds the identity gauges on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry
	info     *prometheus.GaugeVec
	rank     *prometheus.GaugeVec
}

// New creates the collectors and registers them along with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "machine_info",
			Help:      "Resolved identity of the local host. Always 1.",
		}, []string{"hostname", "address", "ipv4", "ipv6"}),
		rank: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "address_rank",
			Help:      "Rank of the selected address per family (0 not-an-address .. 4 global).",
		}, []string{"family"}),
	}

	m.registry.MustRegister(
		m.info,
		m.rank,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records id. Earlier label sets are dropped.
func (m *Metrics) Observe(id machine.Identity) {
	m.info.Reset()
	m.info.With(prometheus.Labels{
		"hostname": id.Hostname,
		"address":  id.AddressText,
		"ipv4":     addrLabel(id.HasIPv4(), id.IPv4.String()),
		"ipv6":     addrLabel(id.HasIPv6(), id.IPv6.String()),
	}).Set(1)

	m.rank.WithLabelValues(machine.FamilyIPv4.String()).Set(float64(id.IPv4Rank))
	m.rank.WithLabelValues(machine.FamilyIPv6.String()).Set(float64(id.IPv6Rank))
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func addrLabel(ok bool, s string) string {
	if !ok {
		return ""
	}
	return s
}
