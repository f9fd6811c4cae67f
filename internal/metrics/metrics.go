// Package metrics holds Prometheus instruments used across the theme layer.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PreloadLinksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rig_preload_links_total",
			Help: "Stylesheet preload links emitted, by logical handle.",
		}, []string{"handle"})

	MissingStyleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rig_missing_style_registrations_total",
			Help: "Style lookups that found no registration, by handle.",
		}, []string{"handle"})

	ScriptTagsRewrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rig_script_tags_rewritten_total",
			Help: "Script tags that received an async or defer attribute.",
		}, []string{"attr"})

	OptionLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rig_option_load_total",
			Help: "Cumulative number of site option snapshots loaded from storage.",
		})

	OptionLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rig_option_load_errors_total",
			Help: "Cumulative number of site option load errors.",
		})
)

func init() {
	prometheus.MustRegister(
		PreloadLinksTotal,
		MissingStyleTotal,
		ScriptTagsRewrittenTotal,
		OptionLoadTotal,
		OptionLoadErrorsTotal,
	)
}
