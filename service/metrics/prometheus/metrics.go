// Package prometheus exposes engine activity as Prometheus metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bpm"

// Collector records engine activity. Each Collector owns its metric vectors so
// several engines can register with separate registries.
type Collector struct {
	instancesStarted   *prometheus.CounterVec
	instancesCompleted *prometheus.CounterVec
	instancesActive    *prometheus.GaugeVec
	instanceDuration   *prometheus.HistogramVec
	tasksPending       *prometheus.GaugeVec
	taskWait           *prometheus.HistogramVec
	delegateFailures   *prometheus.CounterVec
}

// NewCollector creates a collector with unregistered metrics.
func NewCollector() *Collector {
	return &Collector{
		instancesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "instances_started_total",
				Help:      "Total number of process instances started",
			},
			[]string{"definition"},
		),
		instancesCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "instances_completed_total",
				Help:      "Total number of process instances that reached an end node",
			},
			[]string{"definition", "end"},
		),
		instancesActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "instances_active",
				Help:      "Number of running process instances",
			},
			[]string{"definition"},
		),
		instanceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "instance_duration_seconds",
				Help:      "Time from instance start to completion in seconds",
				Buckets:   []float64{.001, .01, .1, 1, 10, 60, 600, 3600},
			},
			[]string{"definition"},
		),
		tasksPending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tasks_pending",
				Help:      "Number of user tasks waiting per candidate group",
			},
			[]string{"group"},
		),
		taskWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "task_wait_seconds",
				Help:      "Time a user task waited before completion in seconds",
				Buckets:   []float64{.01, .1, 1, 10, 60, 600, 3600},
			},
			[]string{"group"},
		),
		delegateFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delegate_failures_total",
				Help:      "Total number of service task delegate failures",
			},
			[]string{"node"},
		),
	}
}

// Collectors returns every metric for registration.
func (c *Collector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.instancesStarted,
		c.instancesCompleted,
		c.instancesActive,
		c.instanceDuration,
		c.tasksPending,
		c.taskWait,
		c.delegateFailures,
	}
}

func (c *Collector) InstanceStarted(definition string) {
	c.instancesStarted.WithLabelValues(definition).Inc()
	c.instancesActive.WithLabelValues(definition).Inc()
}

func (c *Collector) InstanceCompleted(definition, endNode string, elapsed time.Duration) {
	c.instancesCompleted.WithLabelValues(definition, endNode).Inc()
	c.instancesActive.WithLabelValues(definition).Dec()
	c.instanceDuration.WithLabelValues(definition).Observe(elapsed.Seconds())
}

func (c *Collector) TaskCreated(group string) {
	c.tasksPending.WithLabelValues(group).Inc()
}

func (c *Collector) TaskCompleted(group string, waited time.Duration) {
	c.tasksPending.WithLabelValues(group).Dec()
	c.taskWait.WithLabelValues(group).Observe(waited.Seconds())
}

func (c *Collector) DelegateFailed(nodeID string) {
	c.delegateFailures.WithLabelValues(nodeID).Inc()
}
