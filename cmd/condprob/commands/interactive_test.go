/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interactive_test.go
Description: Tests for the interactive session command loop.
*/

package commands_test

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/condprob/cmd/condprob/commands"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, script string) (string, *commands.Session) {
	t.Helper()
	var out bytes.Buffer
	s := commands.NewSession(strings.NewReader(script), &out, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, s.Run())
	return out.String(), s
}

func TestSessionStartsWithRandomTable(t *testing.T) {
	out, s := runSession(t, "quit\n")
	assert.Contains(t, out, "Generated a random distribution over 3 variables.")
	assert.Contains(t, out, "Goodbye.")
	require.NotNil(t, s.Distribution())
	assert.True(t, s.Distribution().IsValid())
}

func TestDistributionIsACopy(t *testing.T) {
	_, s := runSession(t, "quit\n")
	copied := s.Distribution()
	require.NoError(t, copied.SetProbability(0, 1))
	assert.False(t, copied.IsValid())
	assert.True(t, s.Distribution().IsValid())
}

func TestSessionInfer(t *testing.T) {
	dir := t.TempDir()
	joint := filepath.Join(dir, "joint.txt")
	d, err := distribution.FromProbabilities([]float64{0.2, 0.3, 0.1, 0.4})
	require.NoError(t, err)
	require.NoError(t, d.Export(joint))

	script := strings.Join([]string{
		"load " + joint,
		"infer 2 1=1",
		"export " + filepath.Join(dir, "copy.txt"),
		"bogus",
		"quit",
	}, "\n")
	out, s := runSession(t, script)

	assert.Contains(t, out, "Loaded 2 variables")
	assert.Contains(t, out, "Query: P(X2 | X1=1)")
	assert.Contains(t, out, "0.428571")
	assert.Contains(t, out, "0.571429")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Equal(t, 2, s.Distribution().VariableCount())

	copied, err := distribution.Load(filepath.Join(dir, "copy.txt"))
	require.NoError(t, err)
	assert.True(t, copied.IsValid())
}

func TestSessionGuidedQuery(t *testing.T) {
	// Condition one variable X1=1, then ask for X2 and a duplicate X1
	script := "generate 2\nquery\n1\n1\n1\n2\n2\n1\nquit\n"
	out, _ := runSession(t, script)

	assert.Contains(t, out, "How many variables to condition on?")
	assert.Contains(t, out, "Skipped:")
	assert.Contains(t, out, "Query: P(X2 | X1=1)")
}

func TestSessionErrorsDoNotEndLoop(t *testing.T) {
	out, _ := runSession(t, "infer 9\ngenerate 0\nload\nshow\n")
	assert.Equal(t, 3, strings.Count(out, "Error:"))
	assert.Contains(t, out, "=== Binary distribution (N=3) ===")
	assert.Contains(t, out, "Goodbye.")
}

func TestSessionAnalyze(t *testing.T) {
	out, _ := runSession(t, "generate 4\nanalyze 2 1 2\nquit\n")
	assert.Contains(t, out, "Mean(us)")
}
