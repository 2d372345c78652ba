/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyze.go
Description: Performance analysis command. Sweeps random queries over a loaded or
generated table and writes the statistics table, CSV, report, Prometheus metrics,
pprof profiles and JSON summary as requested.
*/

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/condprob/pkg/analysis"
	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/monitoring"
	"github.com/kleascm/condprob/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunAnalyze runs a performance sweep
func RunAnalyze(cmd *cobra.Command, args []string) error {
	logger, err := prepare()
	if err != nil {
		return err
	}
	defer logger.Close()

	input, _ := cmd.Flags().GetString("input")
	variables, _ := cmd.Flags().GetInt("variables")
	csvPath, _ := cmd.Flags().GetString("csv")
	reportPath, _ := cmd.Flags().GetString("report")
	metricsPath, _ := cmd.Flags().GetString("metrics-file")
	jsonSummary, _ := cmd.Flags().GetBool("json-summary")
	profileDir, _ := cmd.Flags().GetString("profile-dir")

	rng, seed := newRand()

	var dist *distribution.Binary
	switch {
	case input != "" && variables > 0:
		return fmt.Errorf("%w: use either --input or --variables", core.ErrInvalidArgument)
	case input != "":
		if dist, err = distribution.Load(input); err != nil {
			return err
		}
		logger.LogTable("loaded", input, dist.VariableCount(), nil)
	case variables > 0:
		if dist, err = distribution.New(variables); err != nil {
			return err
		}
		if err := dist.GenerateRandom(rng); err != nil {
			return err
		}
		logger.LogTable("generated", "", variables, map[string]interface{}{"seed": seed})
	default:
		return fmt.Errorf("%w: one of --input or --variables is required", core.ErrInvalidArgument)
	}

	observer := monitoring.NewPrometheusObserver()
	analyzer := analysis.NewAnalyzer()
	analyzer.SetSeed(seed)
	analyzer.SetLogger(logger.GetLogger())
	analyzer.SetObserver(observer)

	fmt.Printf("Analyzing inference over %d variables (run %s)\n", dist.VariableCount(), analyzer.RunID())
	fmt.Printf("Host: %s\n\n", analysis.HostDescription())

	var profiler *monitoring.Profiler
	if profileDir != "" {
		profiler = monitoring.NewProfiler(profileDir, logger.GetLogger())
		if err := profiler.Start(); err != nil {
			return err
		}
	}

	start := time.Now()
	err = analyzer.Run(dist,
		viper.GetInt("analysis.max_interest"),
		viper.GetInt("analysis.max_conditioned"),
		viper.GetInt("analysis.repetitions"))
	if profiler != nil {
		result, perr := profiler.Stop()
		if err == nil && perr != nil {
			err = perr
		}
		if perr == nil {
			fmt.Printf("Profiles: %s, %s (%d bytes allocated, %d GCs)\n\n",
				result.CPUProfile, result.HeapProfile, result.Allocated(), result.GCs())
		}
	}
	if err != nil {
		return err
	}
	logger.LogAnalysis(analyzer.RunID(), len(analyzer.Measurements()), time.Since(start), nil)

	if err := analyzer.WriteTable(os.Stdout); err != nil {
		return err
	}

	if csvPath != "" {
		if err := analyzer.ExportCSV(csvPath); err != nil {
			return err
		}
		fmt.Printf("\nMeasurements written to %s\n", csvPath)
	}
	if reportPath != "" {
		if err := analyzer.GenerateReport(reportPath); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}
	if metricsPath != "" {
		if err := observer.WriteTextfile(metricsPath); err != nil {
			return err
		}
		fmt.Printf("Metrics written to %s\n", metricsPath)
	}
	if jsonSummary {
		path, err := utils.WriteMetricsResult("", "analysis", "1.0.0", analyzer.Summary())
		if err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		fmt.Printf("Summary written to %s\n", path)
	}
	return nil
}
