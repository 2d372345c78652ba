/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: observer.go
Description: Observer hook for inference calls. Implement it to export engine
metrics; the default observer discards everything.
*/

package inference

import "time"

// Observation describes one wrapped conditional computation
type Observation struct {
	InterestVariables     int
	ConditionedVariables  int
	MarginalizedVariables int
	Duration              time.Duration
	StatesEvaluated       uint64
	StatesMatched         uint64
	ZeroPrior             bool
}

// Observer receives one Observation per ComputeConditional call
type Observer interface {
	ObserveInference(obs Observation)
}

// NoopObserver discards observations
type NoopObserver struct{}

func (NoopObserver) ObserveInference(Observation) {}
