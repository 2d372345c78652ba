/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics.go
Description: Prometheus metrics for the inference engine. PrometheusObserver implements
the engine observer hook on a private registry and can dump the registry in the text
exposition format for a node-exporter textfile collector.
*/

package monitoring

import (
	"fmt"

	"github.com/kleascm/condprob/pkg/inference"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "condprob"

// PrometheusObserver records inference calls as Prometheus metrics
type PrometheusObserver struct {
	registry *prometheus.Registry

	inferences      *prometheus.CounterVec
	latency         prometheus.Histogram
	statesEvaluated prometheus.Counter
	statesMatched   prometheus.Counter
	interestWidth   prometheus.Histogram
}

// NewPrometheusObserver creates an observer with its own registry
func NewPrometheusObserver() *PrometheusObserver {
	o := &PrometheusObserver{
		registry: prometheus.NewRegistry(),
		inferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inferences_total",
			Help:      "Conditional inferences computed, by outcome",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Wall-clock duration of conditional inferences",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}),
		statesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_evaluated_total",
			Help:      "Joint states covered by inference scans",
		}),
		statesMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_matched_total",
			Help:      "Joint states consistent with the conditioning event",
		}),
		interestWidth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "interest_variables",
			Help:      "Number of interest variables per inference",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}),
	}

	o.registry.MustRegister(o.inferences, o.latency, o.statesEvaluated, o.statesMatched, o.interestWidth)
	return o
}

// ObserveInference implements inference.Observer
func (o *PrometheusObserver) ObserveInference(obs inference.Observation) {
	outcome := "normal"
	if obs.ZeroPrior {
		outcome = "zero_prior"
	}
	o.inferences.WithLabelValues(outcome).Inc()
	o.latency.Observe(obs.Duration.Seconds())
	o.statesEvaluated.Add(float64(obs.StatesEvaluated))
	o.statesMatched.Add(float64(obs.StatesMatched))
	o.interestWidth.Observe(float64(obs.InterestVariables))
}

// Registry exposes the registry for serving or gathering
func (o *PrometheusObserver) Registry() *prometheus.Registry {
	return o.registry
}

// WriteTextfile writes the current metrics to path in the text exposition format
func (o *PrometheusObserver) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, o.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

var _ inference.Observer = (*PrometheusObserver)(nil)
