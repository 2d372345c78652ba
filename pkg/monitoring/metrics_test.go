/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics_test.go
Description: Tests for the Prometheus inference observer.
*/

package monitoring_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/inference"
	"github.com/kleascm/condprob/pkg/monitoring"
	"github.com/kleascm/condprob/pkg/query"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverCounts(t *testing.T) {
	o := monitoring.NewPrometheusObserver()
	o.ObserveInference(inference.Observation{
		InterestVariables: 2,
		Duration:          3 * time.Microsecond,
		StatesEvaluated:   16,
		StatesMatched:     8,
	})
	o.ObserveInference(inference.Observation{
		InterestVariables: 1,
		StatesEvaluated:   16,
		ZeroPrior:         true,
	})

	count, err := testutil.GatherAndCount(o.Registry(), "condprob_inferences_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := o.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				name := mf.GetName()
				for _, l := range m.GetLabel() {
					name += "/" + l.GetValue()
				}
				values[name] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, values["condprob_inferences_total/normal"])
	assert.Equal(t, 1.0, values["condprob_inferences_total/zero_prior"])
	assert.Equal(t, 32.0, values["condprob_states_evaluated_total"])
	assert.Equal(t, 8.0, values["condprob_states_matched_total"])
}

func TestObserverWiredToEngine(t *testing.T) {
	d, err := distribution.FromProbabilities([]float64{0.2, 0.3, 0.1, 0.4})
	require.NoError(t, err)
	o := monitoring.NewPrometheusObserver()
	engine := inference.NewEngine(d, inference.WithObserver(o))

	q, err := query.Parse(2, "1", "", true)
	require.NoError(t, err)
	_, err = engine.ComputeConditional(q)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "condprob.prom")
	require.NoError(t, o.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `condprob_inferences_total{outcome="normal"} 1`)
	assert.Contains(t, string(data), "condprob_inference_duration_seconds_bucket")
}
