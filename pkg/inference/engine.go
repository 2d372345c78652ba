/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Exact conditional inference engine. Computes P(X_I | X_C = c) by walking
the joint state space, keeping states whose conditioned bits match the fixed values,
accumulating their mass into a compacted interest index and renormalizing.
*/

package inference

import (
	"fmt"
	"io"
	"time"

	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/query"
	"github.com/sirupsen/logrus"
)

const zeroPriorThreshold = core.ZeroPriorThreshold

// Engine runs conditional queries against one joint distribution.
// It never mutates the distribution and each call allocates its own output.
type Engine struct {
	joint    Joint
	logger   *logrus.Logger
	observer Observer
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for per-query diagnostics
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver sets the observer notified after every ComputeConditional call
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// NewEngine creates an engine over joint
func NewEngine(joint Joint, opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		joint:    joint,
		logger:   discard,
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Joint returns the distribution the engine reads
func (e *Engine) Joint() Joint { return e.joint }

// ComputeConditionalRaw returns P(interest | condition) as a table of
// 2^popcount(maskI) entries. Entry j holds the mass of the interest assignment
// whose bits, read from maskI in ascending position order, pack into j.
// If the condition has no prior mass the table is returned all zero.
func (e *Engine) ComputeConditionalRaw(maskC, valC, maskI uint64) ([]float64, error) {
	out, _, _, err := e.marginalize(maskC, valC, maskI)
	return out, err
}

func (e *Engine) validateMasks(maskC, valC, maskI uint64) error {
	full := core.FullMask(e.joint.VariableCount())
	if (maskC|valC|maskI)&^full != 0 {
		return fmt.Errorf("%w: masks reference variables beyond %d", core.ErrOutOfRange, e.joint.VariableCount())
	}
	if valC&^maskC != 0 {
		return fmt.Errorf("%w: condition values set outside the condition mask", core.ErrInvalidArgument)
	}
	if k := core.Popcount(maskI); k > core.DenseLimit {
		return fmt.Errorf("%w: %d interest variables", core.ErrStateSpaceTooLarge, k)
	}
	return nil
}

// marginalize scans the joint table once. It returns the normalized output, the
// number of consistent states and the prior mass of the condition.
func (e *Engine) marginalize(maskC, valC, maskI uint64) ([]float64, uint64, float64, error) {
	if err := e.validateMasks(maskC, valC, maskI); err != nil {
		return nil, 0, 0, err
	}

	out := make([]float64, uint64(1)<<uint(core.Popcount(maskI)))
	var matched uint64

	e.joint.Scan(func(state uint64, p float64) {
		if state&maskC != valC {
			return
		}
		out[core.Compact(state, maskI)] += p
		matched++
	})

	sum := 0.0
	for _, p := range out {
		sum += p
	}
	if sum > zeroPriorThreshold {
		for i := range out {
			out[i] /= sum
		}
	}

	return out, matched, sum, nil
}

// ComputeConditional runs q and wraps the output in a distribution over the
// interest variables. The masks of q must be current.
func (e *Engine) ComputeConditional(q *query.Query) (*Result, error) {
	if q == nil || !q.IsValid() {
		return nil, fmt.Errorf("%w: query needs at least one interest variable", core.ErrInvalidArgument)
	}
	if q.TotalVariables() != e.joint.VariableCount() {
		return nil, fmt.Errorf("%w: query over %d variables, distribution has %d",
			core.ErrInvalidArgument, q.TotalVariables(), e.joint.VariableCount())
	}
	if !q.MasksCurrent() {
		return nil, fmt.Errorf("%w: query masks are not computed", core.ErrInvalidArgument)
	}

	masks := q.Masks()
	start := time.Now()

	raw, matched, prior, err := e.marginalize(masks.Condition, masks.Values, masks.Interest)
	if err != nil {
		return nil, err
	}
	dist, err := distribution.FromProbabilities(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap conditional table: %w", err)
	}

	elapsed := time.Since(start)
	result := &Result{
		Distribution:         dist,
		Masks:                masks,
		ExecutionTimeMicros:  float64(elapsed.Nanoseconds()) / 1e3,
		StatesEvaluated:      e.joint.StateSpaceSize(),
		StatesMatched:        matched,
		ConditionProbability: prior,
	}

	fields := logrus.Fields{
		"interest":         q.InterestCount(),
		"conditioned":      q.ConditionedCount(),
		"marginalized":     q.MarginalizedCount(),
		"duration":         elapsed,
		"states_evaluated": result.StatesEvaluated,
		"states_matched":   matched,
	}
	if result.ZeroPrior() {
		e.logger.WithFields(fields).Warn("Conditioning event has zero prior probability; result left unnormalized")
	} else {
		e.logger.WithFields(fields).Debug("Inference completed")
	}

	e.observer.ObserveInference(Observation{
		InterestVariables:     q.InterestCount(),
		ConditionedVariables:  q.ConditionedCount(),
		MarginalizedVariables: q.MarginalizedCount(),
		Duration:              elapsed,
		StatesEvaluated:       result.StatesEvaluated,
		StatesMatched:         matched,
		ZeroPrior:             result.ZeroPrior(),
	})

	return result, nil
}
