package editor

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts lifecycle events of editor Models.
type Metrics struct {
	Activations       prometheus.Counter
	InstancesCreated  prometheus.Counter
	InstancesDisposed prometheus.Counter
	InitFailures      prometheus.Counter
	InitCanceled      prometheus.Counter
	SyncApplied       *prometheus.CounterVec
	InitDuration      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Activations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_activations_total",
			Help: "Total number of editor activations",
		}),
		InstancesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_instances_created_total",
			Help: "Total number of editor instances created",
		}),
		InstancesDisposed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_instances_disposed_total",
			Help: "Total number of editor instances disposed",
		}),
		InitFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_init_failures_total",
			Help: "Total number of failed engine initializations",
		}),
		InitCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_init_canceled_total",
			Help: "Total number of engine initializations canceled by deactivation",
		}),
		SyncApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_sync_applied_total",
				Help: "Total number of prop changes applied to an instance",
			},
			[]string{"rule"},
		),
		InitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkwell_init_duration_seconds",
			Help:    "Time from activation to instance creation",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Activations,
		m.InstancesCreated,
		m.InstancesDisposed,
		m.InitFailures,
		m.InitCanceled,
		m.SyncApplied,
		m.InitDuration,
	}
}
