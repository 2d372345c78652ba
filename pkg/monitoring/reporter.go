/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Observer implementations beyond metrics: a reporter that logs every
inference through the domain logger and a fan-out over several observers.
*/

package monitoring

import (
	"github.com/kleascm/condprob/pkg/inference"
	"github.com/kleascm/condprob/pkg/logging"
)

// LogReporter logs each observed inference
type LogReporter struct {
	logger *logging.Logger
}

// NewLogReporter creates a LogReporter
func NewLogReporter(logger *logging.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// ObserveInference implements inference.Observer
func (r *LogReporter) ObserveInference(obs inference.Observation) {
	r.logger.LogInference(obs.InterestVariables, obs.ConditionedVariables, obs.MarginalizedVariables,
		obs.Duration, obs.ZeroPrior, map[string]interface{}{
			"states_evaluated": obs.StatesEvaluated,
			"states_matched":   obs.StatesMatched,
		})
}

// MultiObserver forwards observations to every member in order
type MultiObserver []inference.Observer

// ObserveInference implements inference.Observer
func (m MultiObserver) ObserveInference(obs inference.Observation) {
	for _, o := range m {
		o.ObserveInference(obs)
	}
}

var (
	_ inference.Observer = (*LogReporter)(nil)
	_ inference.Observer = MultiObserver(nil)
)
