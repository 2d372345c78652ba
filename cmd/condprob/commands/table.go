/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Table commands: generate a random joint distribution, print a table and
normalize a table in place or to a new file.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/spf13/cobra"
)

// RunGenerate writes a random normalized distribution
func RunGenerate(cmd *cobra.Command, args []string) error {
	logger, err := prepare()
	if err != nil {
		return err
	}
	defer logger.Close()

	n, _ := cmd.Flags().GetInt("variables")
	output, _ := cmd.Flags().GetString("output")

	dist, err := distribution.New(n)
	if err != nil {
		return err
	}
	rng, seed := newRand()
	if err := dist.GenerateRandom(rng); err != nil {
		return err
	}
	if err := dist.Export(output); err != nil {
		return err
	}

	logger.LogTable("generated", output, n, map[string]interface{}{"seed": seed})
	fmt.Printf("Generated a random distribution over %d variables: %s\n", n, output)
	return nil
}

// RunShow prints the non-zero states of a table
func RunShow(cmd *cobra.Command, args []string) error {
	logger, err := prepare()
	if err != nil {
		return err
	}
	defer logger.Close()

	input, _ := cmd.Flags().GetString("input")
	dist, err := distribution.Load(input)
	if err != nil {
		return err
	}
	logger.LogTable("loaded", input, dist.VariableCount(), map[string]interface{}{
		"stored_cells": dist.StoredCells(),
		"dense":        dist.IsDense(),
	})

	if !dist.IsValid() {
		logger.Warning("Table does not sum to one", map[string]interface{}{"sum": dist.Sum()})
	}
	return dist.Render(os.Stdout, printPrecision())
}

// RunNormalize rescales a table so it sums to one
func RunNormalize(cmd *cobra.Command, args []string) error {
	logger, err := prepare()
	if err != nil {
		return err
	}
	defer logger.Close()

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = input
	}

	dist, err := distribution.Load(input)
	if err != nil {
		return err
	}
	before := dist.Sum()
	if err := dist.Normalize(); err != nil {
		return err
	}
	if err := dist.Export(output); err != nil {
		return err
	}

	logger.LogTable("normalized", output, dist.VariableCount(), map[string]interface{}{"previous_sum": before})
	fmt.Printf("Normalized %s (sum was %.*f): %s\n", input, printPrecision(), before, output)
	return nil
}
