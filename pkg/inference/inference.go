/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inference.go
Description: Main entry point for exact conditional inference over binary joint
distributions. Defines the Joint interface consumed by the engine and the result
types produced by conditional queries.
*/

package inference

import (
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/query"
)

// Joint is the read-only view of a joint distribution the engine consumes
type Joint interface {
	VariableCount() int
	StateSpaceSize() uint64
	// Scan visits states in ascending order. States it skips must have zero mass.
	Scan(fn func(state uint64, p float64))
}

// Result is the outcome of a wrapped conditional computation
type Result struct {
	// Distribution over popcount(maskI) variables indexed by compacted interest bits
	Distribution *distribution.Binary `json:"-"`
	Masks        query.Masks          `json:"masks"`

	ExecutionTimeMicros float64 `json:"execution_time_us"`
	// StatesEvaluated is the size of the joint state space, 2^N
	StatesEvaluated uint64 `json:"states_evaluated"`
	// StatesMatched counts scanned states consistent with the condition
	StatesMatched uint64 `json:"states_matched"`
	// ConditionProbability is the prior mass of the conditioning event
	ConditionProbability float64 `json:"condition_probability"`
}

// ZeroPrior reports whether the conditioning event had no prior mass, in which
// case the distribution is all zero rather than normalized
func (r *Result) ZeroPrior() bool {
	return r.ConditionProbability <= zeroPriorThreshold
}

var _ Joint = (*distribution.Binary)(nil)
