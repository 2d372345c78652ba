/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: export.go
Description: Output formats for analyzer measurements: a flat CSV with a header row, a
console statistics table and a narrative report annotated with the host CPU.
*/

package analysis

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/kleascm/condprob/pkg/utils"
)

// CSVHeader is the first row written by WriteCSV
const CSVHeader = "InterestVariables,ConditionedVariables,MarginalizedVariables,ExecutionTime(us),StatesEvaluated"

// WriteCSV writes one row per measurement
func (a *Analyzer) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, CSVHeader)
	for _, m := range a.measurements {
		fmt.Fprintf(bw, "%d,%d,%d,%.2f,%d\n",
			m.InterestVariables, m.ConditionedVariables, m.MarginalizedVariables,
			m.ExecutionTimeMicros, m.StatesEvaluated)
	}
	return bw.Flush()
}

// ExportCSV writes the CSV to path, compressed according to its extension
func (a *Analyzer) ExportCSV(path string) error {
	return writeFile(path, a.WriteCSV)
}

// WriteTable writes the per-configuration statistics as an aligned table
func (a *Analyzer) WriteTable(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if len(a.measurements) == 0 {
		fmt.Fprintln(bw, "No measurements available.")
		return bw.Flush()
	}

	fmt.Fprintf(bw, "%10s%13s%13s%15s%15s%15s%15s\n",
		"Interest", "Conditioned", "Marginal", "Mean(us)", "Min(us)", "Max(us)", "StdDev(us)")
	fmt.Fprintln(bw, strings.Repeat("-", 96))
	for _, g := range a.Groups() {
		fmt.Fprintf(bw, "%10d%13d%13d%15.2f%15.2f%15.2f%15.2f\n",
			g.Interest, g.Conditioned, g.Marginalized,
			g.Stats.Mean, g.Stats.Min, g.Stats.Max, g.Stats.StdDev)
	}
	return bw.Flush()
}

// HostDescription names the CPU the measurements ran on
func HostDescription() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown CPU"
	}
	return fmt.Sprintf("%s (%d physical / %d logical cores, popcnt=%t)",
		brand, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores, cpuid.CPU.Supports(cpuid.POPCNT))
}

// WriteReport writes a narrative report: session, host, overall and per-configuration statistics
func (a *Analyzer) WriteReport(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Run ID: %s\n", a.runID)
	fmt.Fprintf(bw, "Started: %s\n", a.startedAt.Format(time.RFC3339))
	fmt.Fprintf(bw, "Host: %s\n", HostDescription())
	fmt.Fprintf(bw, "Variables: %d\n", a.variables)
	fmt.Fprintf(bw, "Total measurements: %d\n\n", len(a.measurements))

	overall := a.Overall()
	fmt.Fprintln(bw, "Overall statistics:")
	fmt.Fprintf(bw, "  Mean execution time: %.2f us\n", overall.Mean)
	fmt.Fprintf(bw, "  Min execution time:  %.2f us\n", overall.Min)
	fmt.Fprintf(bw, "  Max execution time:  %.2f us\n", overall.Max)
	fmt.Fprintf(bw, "  Standard deviation:  %.2f us\n\n", overall.StdDev)

	fmt.Fprintln(bw, "Per-configuration analysis:")
	fmt.Fprintln(bw, strings.Repeat("-", 80))
	for _, g := range a.Groups() {
		fmt.Fprintf(bw, "\nInterest variables: %d, Conditioned variables: %d, Marginalized variables: %d\n",
			g.Interest, g.Conditioned, g.Marginalized)
		fmt.Fprintf(bw, "  Samples: %d\n", g.Stats.Samples)
		fmt.Fprintf(bw, "  Mean:   %.2f us\n", g.Stats.Mean)
		fmt.Fprintf(bw, "  Min:    %.2f us\n", g.Stats.Min)
		fmt.Fprintf(bw, "  Max:    %.2f us\n", g.Stats.Max)
		fmt.Fprintf(bw, "  StdDev: %.2f us\n", g.Stats.StdDev)
	}
	return bw.Flush()
}

// GenerateReport writes the narrative report to path
func (a *Analyzer) GenerateReport(path string) error {
	return writeFile(path, a.WriteReport)
}

// Summary is the JSON document written alongside an analysis run
type Summary struct {
	RunID        string      `json:"run_id"`
	StartedAt    time.Time   `json:"started_at"`
	Host         string      `json:"host"`
	Variables    int         `json:"variables"`
	Overall      Statistics  `json:"overall"`
	Groups       []Group     `json:"groups"`
	Measurements []DataPoint `json:"measurements"`
}

// Summary collects the session for JSON export
func (a *Analyzer) Summary() Summary {
	return Summary{
		RunID:        a.runID,
		StartedAt:    a.startedAt,
		Host:         HostDescription(),
		Variables:    a.variables,
		Overall:      a.Overall(),
		Groups:       a.Groups(),
		Measurements: a.Measurements(),
	}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	wc, err := utils.CreateWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(wc)
}
