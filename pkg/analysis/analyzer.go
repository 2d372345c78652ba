/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer.go
Description: Performance analyzer for the inference engine. Sweeps randomized queries
over a fixed distribution, partitioning variables into interest, conditioned and
marginalized groups, and records execution time and states evaluated per run.
*/

package analysis

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/inference"
	"github.com/kleascm/condprob/pkg/query"
	"github.com/sirupsen/logrus"
)

// DataPoint is one measured inference
type DataPoint struct {
	InterestVariables     int     `json:"interest_variables"`
	ConditionedVariables  int     `json:"conditioned_variables"`
	MarginalizedVariables int     `json:"marginalized_variables"`
	ExecutionTimeMicros   float64 `json:"execution_time_us"`
	StatesEvaluated       uint64  `json:"states_evaluated"`
}

// Analyzer collects DataPoints across analysis runs
type Analyzer struct {
	runID        string
	startedAt    time.Time
	variables    int
	rng          *rand.Rand
	logger       *logrus.Logger
	observer     inference.Observer
	measurements []DataPoint
}

// NewAnalyzer creates an analyzer seeded from the clock
func NewAnalyzer() *Analyzer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &Analyzer{
		runID:     uuid.New().String(),
		startedAt: time.Now(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    discard,
		observer:  inference.NoopObserver{},
	}
}

// SetSeed makes query generation reproducible
func (a *Analyzer) SetSeed(seed int64) {
	a.rng = rand.New(rand.NewSource(seed))
}

// SetLogger sets the logger for progress messages
func (a *Analyzer) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// SetObserver forwards every measured inference to observer
func (a *Analyzer) SetObserver(observer inference.Observer) {
	if observer != nil {
		a.observer = observer
	}
}

// RunID identifies the current measurement session
func (a *Analyzer) RunID() string { return a.runID }

// Measurements returns the recorded data points
func (a *Analyzer) Measurements() []DataPoint {
	out := make([]DataPoint, len(a.measurements))
	copy(out, a.measurements)
	return out
}

// Clear drops all measurements and starts a new session
func (a *Analyzer) Clear() {
	a.measurements = nil
	a.runID = uuid.New().String()
	a.startedAt = time.Now()
}

func (a *Analyzer) engine(dist *distribution.Binary) *inference.Engine {
	return inference.NewEngine(dist, inference.WithLogger(a.logger), inference.WithObserver(a.observer))
}

// Run clears previous measurements and sweeps interest counts 1..maxInterest and
// conditioned counts 0..maxConditioned, keeping at least one variable free of
// both groups, with repetitions random queries per configuration
func (a *Analyzer) Run(dist *distribution.Binary, maxInterest, maxConditioned, repetitions int) error {
	if dist == nil {
		return fmt.Errorf("%w: nil distribution", core.ErrInvalidArgument)
	}
	if maxInterest < 1 || maxConditioned < 0 || repetitions < 1 {
		return fmt.Errorf("%w: need maxInterest >= 1, maxConditioned >= 0, repetitions >= 1", core.ErrInvalidArgument)
	}

	a.Clear()
	a.variables = dist.VariableCount()
	engine := a.engine(dist)
	n := dist.VariableCount()

	a.logger.WithFields(logrus.Fields{
		"run_id":          a.runID,
		"variables":       n,
		"max_interest":    maxInterest,
		"max_conditioned": maxConditioned,
		"repetitions":     repetitions,
	}).Info("Performance analysis started")

	for interest := 1; interest <= maxInterest && interest < n; interest++ {
		for conditioned := 0; conditioned <= maxConditioned && interest+conditioned < n; conditioned++ {
			for rep := 0; rep < repetitions; rep++ {
				q, err := a.randomQuery(n, interest, conditioned)
				if err != nil {
					return err
				}
				result, err := engine.ComputeConditional(q)
				if err != nil {
					return fmt.Errorf("inference failed for %d interest, %d conditioned: %w", interest, conditioned, err)
				}
				a.record(q, result)
			}
			a.logger.WithFields(logrus.Fields{
				"interest":    interest,
				"conditioned": conditioned,
			}).Debug("Configuration measured")
		}
	}

	a.logger.WithFields(logrus.Fields{
		"run_id":       a.runID,
		"measurements": len(a.measurements),
	}).Info("Performance analysis finished")
	return nil
}

// randomQuery shuffles the variables and takes the first interest of them as
// interest variables and the next conditioned as conditioned with random values
func (a *Analyzer) randomQuery(n, interest, conditioned int) (*query.Query, error) {
	q, err := query.New(n)
	if err != nil {
		return nil, err
	}
	order := a.rng.Perm(n)
	for _, v := range order[:interest] {
		if err := q.AddInterest(v); err != nil {
			return nil, err
		}
	}
	for _, v := range order[interest : interest+conditioned] {
		if err := q.AddConditioned(v, a.rng.Intn(2)); err != nil {
			return nil, err
		}
	}
	q.ComputeMasks()
	return q, nil
}

// AddMeasurement runs q against dist once and records the result
func (a *Analyzer) AddMeasurement(dist *distribution.Binary, q *query.Query) error {
	if dist == nil {
		return fmt.Errorf("%w: nil distribution", core.ErrInvalidArgument)
	}
	result, err := a.engine(dist).ComputeConditional(q)
	if err != nil {
		return err
	}
	a.variables = dist.VariableCount()
	a.record(q, result)
	return nil
}

func (a *Analyzer) record(q *query.Query, result *inference.Result) {
	a.measurements = append(a.measurements, DataPoint{
		InterestVariables:     q.InterestCount(),
		ConditionedVariables:  q.ConditionedCount(),
		MarginalizedVariables: q.MarginalizedCount(),
		ExecutionTimeMicros:   result.ExecutionTimeMicros,
		StatesEvaluated:       result.StatesEvaluated,
	})
}
