/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: query_test.go
Description: Tests for query construction, mask computation and parsing.
*/

package query_test

import (
	"errors"
	"testing"

	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasksPartitionVariables(t *testing.T) {
	q, err := query.New(5)
	require.NoError(t, err)
	require.NoError(t, q.AddConditioned(0, 1))
	require.NoError(t, q.AddConditioned(3, 0))
	require.NoError(t, q.AddInterest(1))
	require.NoError(t, q.AddInterest(2))

	m := q.ComputeMasks()
	assert.Equal(t, uint64(0b01001), m.Condition)
	assert.Equal(t, uint64(0b00001), m.Values)
	assert.Equal(t, uint64(0b00110), m.Interest)
	assert.Equal(t, uint64(0b10000), m.Marginalized)

	assert.Zero(t, m.Condition&m.Interest)
	assert.Zero(t, m.Condition&m.Marginalized)
	assert.Zero(t, m.Interest&m.Marginalized)
	assert.Equal(t, core.FullMask(5), m.Condition|m.Interest|m.Marginalized)
	assert.Zero(t, m.Values&^m.Condition)

	assert.Equal(t, 2, q.ConditionedCount())
	assert.Equal(t, 2, q.InterestCount())
	assert.Equal(t, 1, q.MarginalizedCount())
	assert.Equal(t, m, q.ComputeMasks())
}

func TestQueryValidation(t *testing.T) {
	_, err := query.New(0)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	q, _ := query.New(3)
	assert.False(t, q.IsValid())

	assert.True(t, errors.Is(q.AddInterest(3), core.ErrOutOfRange))
	assert.True(t, errors.Is(q.AddInterest(-1), core.ErrOutOfRange))
	assert.True(t, errors.Is(q.AddConditioned(0, 2), core.ErrInvalidArgument))

	require.NoError(t, q.AddInterest(1))
	assert.True(t, q.IsValid())
	assert.True(t, errors.Is(q.AddInterest(1), core.ErrDuplicateVariable))
	assert.True(t, errors.Is(q.AddConditioned(1, 0), core.ErrDuplicateVariable))

	require.NoError(t, q.AddConditioned(2, 1))
	assert.True(t, errors.Is(q.AddConditioned(2, 0), core.ErrDuplicateVariable))
	assert.True(t, errors.Is(q.AddInterest(2), core.ErrDuplicateVariable))
}

func TestMasksGoStale(t *testing.T) {
	q, _ := query.New(3)
	require.NoError(t, q.AddInterest(0))
	assert.False(t, q.MasksCurrent())

	q.ComputeMasks()
	assert.True(t, q.MasksCurrent())

	require.NoError(t, q.AddConditioned(1, 1))
	assert.False(t, q.MasksCurrent())
	assert.Zero(t, q.Masks().Condition)
}

func TestQueryOver64Variables(t *testing.T) {
	q, _ := query.New(64)
	require.NoError(t, q.AddInterest(63))
	require.NoError(t, q.AddConditioned(0, 1))
	m := q.ComputeMasks()
	assert.Equal(t, uint64(1)<<63, m.Interest)
	assert.Equal(t, ^uint64(0)&^(1<<63|1), m.Marginalized)
}

func TestQueryString(t *testing.T) {
	q, _ := query.New(3)
	require.NoError(t, q.AddInterest(1))
	require.NoError(t, q.AddInterest(2))
	require.NoError(t, q.AddConditioned(0, 1))
	q.ComputeMasks()

	s := q.String()
	assert.Contains(t, s, "Query: P(X2, X3 | X1=1)")
	assert.Contains(t, s, "maskC: 001")
	assert.Contains(t, s, "valC:  001")
	assert.Contains(t, s, "maskI: 110")
	assert.Contains(t, s, "maskM: 000")
}

func TestParse(t *testing.T) {
	q, err := query.Parse(4, "1, 2", "3=1,4=0", true)
	require.NoError(t, err)
	assert.True(t, q.MasksCurrent())
	assert.Equal(t, []int{0, 1}, q.Interest())
	assert.Equal(t, []query.Condition{{Variable: 2, Value: 1}, {Variable: 3, Value: 0}}, q.Conditioned())

	q, err = query.Parse(4, "0", "", false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), q.Masks().Interest)

	tests := []struct {
		interest, given string
		want            error
	}{
		{"", "1=1", core.ErrInvalidArgument},
		{"a", "", core.ErrInvalidArgument},
		{"1", "2", core.ErrInvalidArgument},
		{"1", "2=x", core.ErrInvalidArgument},
		{"1", "2=3", core.ErrInvalidArgument},
		{"5", "", core.ErrOutOfRange},
		{"1,1", "", core.ErrDuplicateVariable},
		{"1", "1=0", core.ErrDuplicateVariable},
	}
	for _, tt := range tests {
		_, err := query.Parse(4, tt.interest, tt.given, true)
		assert.True(t, errors.Is(err, tt.want), "%q | %q: %v", tt.interest, tt.given, err)
	}
}
