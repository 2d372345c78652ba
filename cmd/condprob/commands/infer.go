/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Conditional query command. Loads a joint table, parses the interest and
condition lists and prints the resulting conditional distribution.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/inference"
	"github.com/kleascm/condprob/pkg/monitoring"
	"github.com/kleascm/condprob/pkg/query"
	"github.com/spf13/cobra"
)

// RunInfer computes P(interest | given) for one query
func RunInfer(cmd *cobra.Command, args []string) error {
	logger, err := prepare()
	if err != nil {
		return err
	}
	defer logger.Close()

	input, _ := cmd.Flags().GetString("input")
	interest, _ := cmd.Flags().GetString("interest")
	given, _ := cmd.Flags().GetString("given")
	output, _ := cmd.Flags().GetString("output")

	dist, err := distribution.Load(input)
	if err != nil {
		return err
	}
	logger.LogTable("loaded", input, dist.VariableCount(), nil)

	base := variableBase()
	q, err := query.Parse(dist.VariableCount(), interest, given, base == 1)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	engine := inference.NewEngine(dist,
		inference.WithLogger(logger.GetLogger()),
		inference.WithObserver(monitoring.NewLogReporter(logger)))
	result, err := engine.ComputeConditional(q)
	if err != nil {
		return err
	}

	fmt.Println(q.String())
	fmt.Println()
	if err := result.Render(os.Stdout, printPrecision(), base); err != nil {
		return err
	}

	if output != "" {
		if err := result.Distribution.Export(output); err != nil {
			return err
		}
		logger.LogTable("exported", output, result.Distribution.VariableCount(), nil)
	}
	return nil
}
