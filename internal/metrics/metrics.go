package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "workouts",
		Name:      "logged_total",
		Help:      "Workouts accepted from the form, by type.",
	}, []string{"type"})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "form",
		Name:      "validation_failures_total",
		Help:      "Form submissions rejected by validation, by type.",
	}, []string{"type"})
	persistenceErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "store",
		Name:      "persistence_errors_total",
		Help:      "Failed reads or writes of the persisted workout log.",
	}, []string{"op"})
	sessionsOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapty",
		Subsystem: "sessions",
		Name:      "open",
		Help:      "Browser sessions currently registered.",
	})
)

func init() {
	prometheus.MustRegister(workoutsLogged, validationFailures, persistenceErrors, sessionsOpen)
}

func WorkoutLogged(kind string) {
	workoutsLogged.WithLabelValues(kind).Inc()
}

func ValidationFailed(kind string) {
	validationFailures.WithLabelValues(kind).Inc()
}

// PersistenceError counts a failed "load" or "save" of the workout log.
func PersistenceError(op string) {
	persistenceErrors.WithLabelValues(op).Inc()
}

func SessionOpened() { sessionsOpen.Inc() }

func SessionClosed() { sessionsOpen.Dec() }
