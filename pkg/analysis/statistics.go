/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: statistics.go
Description: Summary statistics over analyzer measurements: mean, minimum, maximum and
population standard deviation, overall and grouped by query configuration.
*/

package analysis

import (
	"math"
	"sort"
)

// Statistics summarizes a sample of execution times
type Statistics struct {
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
}

// ComputeStatistics returns the statistics of values; all zero for an empty sample
func ComputeStatistics(values []float64) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}

	s := Statistics{
		Samples: len(values),
		Min:     values[0],
		Max:     values[0],
	}
	sum := 0.0
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - s.Mean) * (v - s.Mean)
	}
	s.StdDev = math.Sqrt(variance / float64(len(values)))
	return s
}

// GroupKey identifies a query configuration
type GroupKey struct {
	Interest    int `json:"interest"`
	Conditioned int `json:"conditioned"`
}

// Group is the timing statistics of one configuration
type Group struct {
	GroupKey
	Marginalized int        `json:"marginalized"`
	Stats        Statistics `json:"stats"`
}

// Overall returns the statistics of every recorded execution time
func (a *Analyzer) Overall() Statistics {
	times := make([]float64, len(a.measurements))
	for i, m := range a.measurements {
		times[i] = m.ExecutionTimeMicros
	}
	return ComputeStatistics(times)
}

// Groups returns per-configuration statistics ordered by interest then conditioned count
func (a *Analyzer) Groups() []Group {
	times := make(map[GroupKey][]float64)
	marginalized := make(map[GroupKey]int)
	for _, m := range a.measurements {
		key := GroupKey{Interest: m.InterestVariables, Conditioned: m.ConditionedVariables}
		times[key] = append(times[key], m.ExecutionTimeMicros)
		marginalized[key] = m.MarginalizedVariables
	}

	groups := make([]Group, 0, len(times))
	for key, values := range times {
		groups = append(groups, Group{
			GroupKey:     key,
			Marginalized: marginalized[key],
			Stats:        ComputeStatistics(values),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Interest != groups[j].Interest {
			return groups[i].Interest < groups[j].Interest
		}
		return groups[i].Conditioned < groups[j].Conditioned
	})
	return groups
}
