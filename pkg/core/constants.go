/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: constants.go
Description: Process-wide constants for the conditional probability engine. Defines the
floating-point tolerance, structural variable limits and the dense storage threshold used
by distributions, queries and the inference engine.
*/

package core

const (
	// Epsilon is the tolerance used for validity checks and normalization
	Epsilon = 1e-9

	// ZeroPriorThreshold is the output mass below which a conditional result is left unnormalized
	ZeroPriorThreshold = 1e-10

	// MinVariables and MaxVariables bound the number of binary variables in a joint state
	MinVariables = 1
	MaxVariables = 64

	// DenseLimit is the largest variable count stored as a dense table.
	// Above it tables keep only states with nonzero mass.
	DenseLimit = 24
)
