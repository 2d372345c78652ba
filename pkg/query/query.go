/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: query.go
Description: Conditional query over binary variables. A caller declares conditioned
variables with fixed values and variables of interest; the query derives the condition,
condition-value, interest and marginalized bitmasks consumed by the inference engine.
*/

package query

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/kleascm/condprob/pkg/core"
)

// Condition fixes one variable to a binary value
type Condition struct {
	Variable int `json:"variable"`
	Value    int `json:"value"`
}

// Masks are the bitmasks derived from a query. Condition, Interest and
// Marginalized are pairwise disjoint and cover the low N bits.
type Masks struct {
	Condition    uint64 `json:"mask_c"`
	Values       uint64 `json:"val_c"`
	Interest     uint64 `json:"mask_i"`
	Marginalized uint64 `json:"mask_m"`
}

// Query declares P(interest | conditioned = values) over a fixed number of variables
type Query struct {
	total       int
	conditioned []Condition
	interest    []int

	// membership of each set, indexed by variable
	conditionedSet *bitset.BitSet
	interestSet    *bitset.BitSet

	masks    Masks
	computed bool
}

// New creates an empty query over total variables
func New(total int) (*Query, error) {
	if err := core.ValidateVariableCount(total); err != nil {
		return nil, err
	}
	return &Query{
		total:          total,
		conditionedSet: bitset.New(uint(total)),
		interestSet:    bitset.New(uint(total)),
	}, nil
}

// TotalVariables returns N
func (q *Query) TotalVariables() int { return q.total }

func (q *Query) validateIndex(index int) error {
	if index < 0 || index >= q.total {
		return fmt.Errorf("%w: variable %d must be between 0 and %d", core.ErrOutOfRange, index, q.total-1)
	}
	return nil
}

func (q *Query) checkUnused(index int) error {
	if q.conditionedSet.Test(uint(index)) {
		return fmt.Errorf("%w: variable %d is already conditioned", core.ErrDuplicateVariable, index)
	}
	if q.interestSet.Test(uint(index)) {
		return fmt.Errorf("%w: variable %d is already of interest", core.ErrDuplicateVariable, index)
	}
	return nil
}

// AddConditioned fixes variable index to value (0 or 1)
func (q *Query) AddConditioned(index, value int) error {
	if err := q.validateIndex(index); err != nil {
		return err
	}
	if value != 0 && value != 1 {
		return fmt.Errorf("%w: value must be 0 or 1, got %d", core.ErrInvalidArgument, value)
	}
	if err := q.checkUnused(index); err != nil {
		return err
	}

	q.conditioned = append(q.conditioned, Condition{Variable: index, Value: value})
	q.conditionedSet.Set(uint(index))
	q.computed = false
	return nil
}

// AddInterest marks variable index as a variable of interest
func (q *Query) AddInterest(index int) error {
	if err := q.validateIndex(index); err != nil {
		return err
	}
	if err := q.checkUnused(index); err != nil {
		return err
	}

	q.interest = append(q.interest, index)
	q.interestSet.Set(uint(index))
	q.computed = false
	return nil
}

// ComputeMasks recomputes the masks from the declared variables. It is idempotent.
func (q *Query) ComputeMasks() Masks {
	var m Masks
	for _, c := range q.conditioned {
		bit := uint64(1) << uint(c.Variable)
		m.Condition |= bit
		if c.Value == 1 {
			m.Values |= bit
		}
	}
	for _, v := range q.interest {
		m.Interest |= uint64(1) << uint(v)
	}
	m.Marginalized = core.FullMask(q.total) &^ (m.Condition | m.Interest)

	q.masks = m
	q.computed = true
	return m
}

// Masks returns the masks from the last ComputeMasks call, zero before the first
func (q *Query) Masks() Masks { return q.masks }

// MasksCurrent reports whether the masks reflect every declared variable
func (q *Query) MasksCurrent() bool { return q.computed }

// IsValid reports whether the query has at least one variable of interest.
// Conditioned indices and values are stored as pairs and cannot diverge.
func (q *Query) IsValid() bool {
	return len(q.interest) > 0
}

// Conditioned returns a copy of the conditioned variables in insertion order
func (q *Query) Conditioned() []Condition {
	out := make([]Condition, len(q.conditioned))
	copy(out, q.conditioned)
	return out
}

// Interest returns a copy of the interest variables in insertion order
func (q *Query) Interest() []int {
	out := make([]int, len(q.interest))
	copy(out, q.interest)
	return out
}

// ConditionedCount returns |conditioned|
func (q *Query) ConditionedCount() int { return len(q.conditioned) }

// InterestCount returns |interest|
func (q *Query) InterestCount() int { return len(q.interest) }

// MarginalizedCount returns N - |conditioned| - |interest|
func (q *Query) MarginalizedCount() int {
	return q.total - len(q.conditioned) - len(q.interest)
}

// String renders the query with 1-based variable names followed by its masks
func (q *Query) String() string {
	var sb strings.Builder

	sb.WriteString("Query: P(")
	for i, v := range q.interest {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "X%d", v+1)
	}
	if len(q.conditioned) > 0 {
		sb.WriteString(" | ")
		for i, c := range q.conditioned {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "X%d=%d", c.Variable+1, c.Value)
		}
	}
	sb.WriteString(")\n")

	fmt.Fprintf(&sb, "  maskC: %s\n", core.FormatBits(q.masks.Condition, q.total))
	fmt.Fprintf(&sb, "  valC:  %s\n", core.FormatBits(q.masks.Values, q.total))
	fmt.Fprintf(&sb, "  maskI: %s\n", core.FormatBits(q.masks.Interest, q.total))
	fmt.Fprintf(&sb, "  maskM: %s\n", core.FormatBits(q.masks.Marginalized, q.total))

	return sb.String()
}
