package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for the lifecycle core.
var (
	MaterialsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "materials_created_total",
			Help: "Total number of materials persisted by the registry",
		},
	)

	MaterialsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "materials_rejected_total",
			Help: "Total number of material inputs rejected by validation",
		},
	)

	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transitions_total",
			Help: "Total number of successful status transitions",
		},
		[]string{"new_status"},
	)

	TransitionsDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transitions_denied_total",
			Help: "Total number of transitions denied by the access gate",
		},
	)

	AttachmentVersionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attachment_versions_total",
			Help: "Total number of attachment versions stored",
		},
	)

	AttachmentVersionConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attachment_version_conflicts_total",
			Help: "Total number of version-number allocation conflicts retried",
		},
	)
)

var registerOnce sync.Once

// Register registers all metrics on the default registry. Safe to call more
// than once; every command bootstraps its own application.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MaterialsCreatedTotal,
			MaterialsRejectedTotal,
			TransitionsTotal,
			TransitionsDeniedTotal,
			AttachmentVersionsTotal,
			AttachmentVersionConflictsTotal,
		)
	})
}
