/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: render.go
Description: Console rendering of a conditional result with the interest variables
labeled by their positions in the joint distribution.
*/

package inference

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/condprob/pkg/core"
)

// Render writes the result table. Columns are the interest variables, highest
// position first, named X<position+base>. Rows are every interest assignment.
func (r *Result) Render(w io.Writer, precision, base int) error {
	bw := bufio.NewWriter(w)
	positions := core.BitPositions(r.Masks.Interest)

	labels := make([]string, len(positions))
	for i := range positions {
		labels[i] = fmt.Sprintf("X%d", int(positions[len(positions)-1-i])+base)
	}
	fmt.Fprintf(bw, "%s | P\n", strings.Join(labels, " "))
	fmt.Fprintln(bw, strings.Repeat("-", len(strings.Join(labels, " "))+3+precision+2))

	size := uint64(1) << uint(len(positions))
	for j := uint64(0); j < size; j++ {
		p, err := r.Distribution.Probability(j)
		if err != nil {
			return err
		}
		cells := make([]string, len(positions))
		for i := range positions {
			bit := (j >> uint(len(positions)-1-i)) & 1
			cells[i] = fmt.Sprintf("%*d", len(labels[i]), bit)
		}
		fmt.Fprintf(bw, "%s | %.*f\n", strings.Join(cells, " "), precision, p)
	}

	if r.ZeroPrior() {
		fmt.Fprintln(bw, "Warning: the conditioning event has zero prior probability.")
	}
	fmt.Fprintf(bw, "P(condition) = %.*f, %d of %d states matched, %.2f us\n",
		precision, r.ConditionProbability, r.StatesMatched, r.StatesEvaluated, r.ExecutionTimeMicros)
	return bw.Flush()
}
