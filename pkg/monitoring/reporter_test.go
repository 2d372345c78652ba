/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter_test.go
Description: Tests for the logging reporter and observer fan-out.
*/

package monitoring_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/kleascm/condprob/pkg/inference"
	"github.com/kleascm/condprob/pkg/logging"
	"github.com/kleascm/condprob/pkg/monitoring"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReporterAndFanOut(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelInfo,
		Format:  logging.LogFormatText,
		Console: &buf,
	})
	require.NoError(t, err)

	metrics := monitoring.NewPrometheusObserver()
	observer := monitoring.MultiObserver{monitoring.NewLogReporter(logger), metrics}
	observer.ObserveInference(inference.Observation{
		InterestVariables: 1,
		Duration:          time.Microsecond,
		StatesEvaluated:   8,
		StatesMatched:     4,
	})

	assert.Contains(t, buf.String(), "Inference completed")
	assert.Contains(t, buf.String(), "states_matched=4")

	count, err := testutil.GatherAndCount(metrics.Registry(), "condprob_inferences_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
