// Package observability exposes Prometheus metrics for roster operations.
package observability

import (
	"mergington-activities/internal/entities"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels.
const (
	OpList       = "list"
	OpSignup     = "signup"
	OpUnregister = "unregister"
)

// Metrics records roster activity. A nil *Metrics records nothing.
type Metrics struct {
	operations   *prometheus.CounterVec
	participants *prometheus.GaugeVec
	capacity     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mergington",
			Subsystem: "roster",
			Name:      "operations_total",
			Help:      "Roster operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		participants: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mergington",
			Subsystem: "roster",
			Name:      "activity_participants",
			Help:      "Current number of participants per activity.",
		}, []string{"activity"}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mergington",
			Subsystem: "roster",
			Name:      "activity_max_participants",
			Help:      "Configured capacity per activity.",
		}, []string{"activity"}),
	}
	reg.MustRegister(m.operations, m.participants, m.capacity)
	return m
}

// ObserveOperation counts one operation, classifying err into an outcome.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
}

// ObserveActivity records the roster size and capacity of a.
func (m *Metrics) ObserveActivity(a entities.Activity) {
	if m == nil {
		return
	}
	m.participants.WithLabelValues(a.Name).Set(float64(len(a.Participants)))
	m.capacity.WithLabelValues(a.Name).Set(float64(a.MaxParticipants))
}

// Outcome maps an operation error to a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case entities.IsNotFound(err):
		return "not_found"
	case entities.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}
