/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parse.go
Description: Builds queries from textual variable lists such as "1,3" and "2=1,4=0",
as typed on the command line.
*/

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/condprob/pkg/core"
)

// Parse builds a query with computed masks. interest lists variables ("1,3"),
// given lists assignments ("2=1,4=0"). With oneBased set, names start at 1.
func Parse(total int, interest, given string, oneBased bool) (*Query, error) {
	q, err := New(total)
	if err != nil {
		return nil, err
	}

	offset := 0
	if oneBased {
		offset = 1
	}

	for _, field := range splitList(interest) {
		index, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: interest variable %q", core.ErrInvalidArgument, field)
		}
		if err := q.AddInterest(index - offset); err != nil {
			return nil, err
		}
	}

	for _, field := range splitList(given) {
		name, val, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("%w: condition %q must look like index=value", core.ErrInvalidArgument, field)
		}
		index, err := strconv.Atoi(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("%w: condition variable %q", core.ErrInvalidArgument, name)
		}
		value, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("%w: condition value %q", core.ErrInvalidArgument, val)
		}
		if err := q.AddConditioned(index-offset, value); err != nil {
			return nil, err
		}
	}

	if !q.IsValid() {
		return nil, fmt.Errorf("%w: at least one interest variable is required", core.ErrInvalidArgument)
	}
	q.ComputeMasks()
	return q, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
