package observers

import (
	"errors"
	"sync"
	"time"

	"github.com/anggasct/fsm"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver collects Prometheus metrics about state machine execution.
// It implements prometheus.Collector and can observe several machines.
type MetricsObserver struct {
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	errors      *prometheus.CounterVec
	timeInState *prometheus.HistogramVec

	lastEntry map[string]time.Time
	mutex     sync.Mutex
	now       func() time.Time
}

// NewMetricsObserver creates a metrics observer whose metric names are
// prefixed with namespace
func NewMetricsObserver(namespace string) *MetricsObserver {
	return &MetricsObserver{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fsm_transitions_total",
			Help:      "Total number of completed state transitions",
		}, []string{"event", "from", "to"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fsm_rejections_total",
			Help:      "Total number of events refused by a guard or a before hook",
		}, []string{"event", "reason"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fsm_errors_total",
			Help:      "Total number of after hook and observer failures",
		}, []string{"event"}),
		timeInState: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fsm_state_duration_seconds",
			Help:      "Time spent in a state before leaving it",
			Buckets:   prometheus.DefBuckets,
		}, []string{"state"}),
		lastEntry: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Describe implements prometheus.Collector
func (o *MetricsObserver) Describe(ch chan<- *prometheus.Desc) {
	o.transitions.Describe(ch)
	o.rejections.Describe(ch)
	o.errors.Describe(ch)
	o.timeInState.Describe(ch)
}

// Collect implements prometheus.Collector
func (o *MetricsObserver) Collect(ch chan<- prometheus.Metric) {
	o.transitions.Collect(ch)
	o.rejections.Collect(ch)
	o.errors.Collect(ch)
	o.timeInState.Collect(ch)
}

// OnTransition records transition metrics
func (o *MetricsObserver) OnTransition(e *fsm.Event) {
	o.transitions.WithLabelValues(e.Name, string(e.From), string(e.To)).Inc()

	o.mutex.Lock()
	defer o.mutex.Unlock()

	now := o.now()
	key := machineID(e)
	if entered, ok := o.lastEntry[key]; ok {
		o.timeInState.WithLabelValues(string(e.From)).Observe(now.Sub(entered).Seconds())
	}
	o.lastEntry[key] = now
}

// OnRejected records rejection metrics
func (o *MetricsObserver) OnRejected(e *fsm.Event, err error) {
	reason := "hook"
	if errors.Is(err, fsm.ErrTransitionGuard) {
		reason = "guard"
	}
	o.rejections.WithLabelValues(e.Name, reason).Inc()
}

// OnError records error metrics
func (o *MetricsObserver) OnError(e *fsm.Event, err error) {
	name := ""
	if e != nil {
		name = e.Name
	}
	o.errors.WithLabelValues(name).Inc()
}

// Reset clears all metrics
func (o *MetricsObserver) Reset() {
	o.transitions.Reset()
	o.rejections.Reset()
	o.errors.Reset()
	o.timeInState.Reset()

	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.lastEntry = make(map[string]time.Time)
}
