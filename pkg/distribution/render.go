/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: render.go
Description: Human-readable dump of a distribution. Variables are displayed 1-based,
most significant first, and only states with mass above Epsilon are listed.
*/

package distribution

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/condprob/pkg/core"
)

// DefaultPrecision is the number of decimals used by Render when none is given
const DefaultPrecision = 6

// Render writes a table of states with nonzero mass followed by the total sum
func (d *Binary) Render(w io.Writer, precision int) error {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "=== Binary distribution (N=%d) ===\n", d.variables)

	width := d.variables
	if width < 6 {
		width = 6
	}
	fmt.Fprintf(bw, "%-*s |", width, "State")
	for i := d.variables; i >= 1; i-- {
		fmt.Fprintf(bw, " X%d", i)
	}
	fmt.Fprintln(bw, " | Probability")
	fmt.Fprintln(bw, strings.Repeat("-", width+d.variables*4+16))

	sum := 0.0
	d.cells.scan(func(state uint64, p float64) bool {
		sum += p
		if p <= core.Epsilon {
			return true
		}
		bits := d.IndexToBitstring(state)
		fmt.Fprintf(bw, "%-*s |", width, bits)
		for i := 0; i < len(bits); i++ {
			// Pad each bit under its column label
			label := len(fmt.Sprintf("X%d", d.variables-i))
			fmt.Fprintf(bw, " %*c", label, bits[i])
		}
		fmt.Fprintf(bw, " | %.*f\n", precision, p)
		return true
	})

	fmt.Fprintf(bw, "\nTotal probability: %.*f\n", precision, sum)
	return bw.Flush()
}

// String renders the distribution with DefaultPrecision
func (d *Binary) String() string {
	var sb strings.Builder
	_ = d.Render(&sb, DefaultPrecision)
	return sb.String()
}
