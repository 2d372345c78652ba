/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interactive.go
Description: Interactive session over stdin and stdout. Holds one joint distribution
and answers load, generate, show, infer, query, analyze and export commands until quit.
*/

package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kleascm/condprob/pkg/analysis"
	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/kleascm/condprob/pkg/inference"
	"github.com/kleascm/condprob/pkg/query"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// DefaultInteractiveVariables is the table size generated when a session starts
const DefaultInteractiveVariables = 3

const interactiveHelp = `Commands:
  load <file>                 load a joint table
  generate <n>                generate a random table over n variables
  show                        print the current table
  infer <interest> [given]    e.g. "infer 1,2 3=1,4=0"
  query                       build a query step by step
  analyze [maxI maxC reps]    run a performance sweep on the current table
  export <file>               write the current table
  help                        show this help
  quit                        leave the session`

// Session is an interactive command loop over one distribution
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	rng       *rand.Rand
	logger    *logrus.Logger
	base      int
	precision int
	dist      *distribution.Binary
}

// NewSession creates a session reading commands from in and writing to out
func NewSession(in io.Reader, out io.Writer, rng *rand.Rand, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		rng:       rng,
		logger:    logger,
		base:      1,
		precision: distribution.DefaultPrecision,
	}
}

// SetNumbering sets the number printed for variable position 0
func (s *Session) SetNumbering(base int) { s.base = base }

// SetPrecision sets decimal places in printed probabilities
func (s *Session) SetPrecision(precision int) { s.precision = precision }

// Distribution returns a copy of the current table
func (s *Session) Distribution() *distribution.Binary {
	if s.dist == nil {
		return nil
	}
	return s.dist.Clone()
}

// RunInteractive starts a session on stdin and stdout
func RunInteractive(cmd *cobra.Command, args []string) error {
	logger, err := prepare()
	if err != nil {
		return err
	}
	defer logger.Close()

	rng, _ := newRand()
	session := NewSession(os.Stdin, os.Stdout, rng, logger.GetLogger())
	session.SetNumbering(variableBase())
	session.SetPrecision(printPrecision())
	return session.Run()
}

var errQuit = errors.New("quit")

// Run generates a starting table and processes commands until quit or end of input
func (s *Session) Run() error {
	fmt.Fprintln(s.out, strings.Repeat("=", 80))
	fmt.Fprintln(s.out, "  condprob - conditional probability, interactive mode")
	fmt.Fprintln(s.out, strings.Repeat("=", 80))

	if err := s.generate(DefaultInteractiveVariables); err != nil {
		return err
	}
	fmt.Fprintln(s.out, `Type "help" for commands.`)

	for {
		line, ok := s.prompt("> ")
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		if err := s.execute(line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}

	fmt.Fprintln(s.out, "Goodbye.")
	return s.in.Err()
}

func (s *Session) prompt(text string) (string, bool) {
	fmt.Fprint(s.out, text)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) execute(line string) error {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(s.out, interactiveHelp)
		return nil
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: load <file>", core.ErrInvalidArgument)
		}
		dist, err := distribution.Load(args[0])
		if err != nil {
			return err
		}
		s.dist = dist
		fmt.Fprintf(s.out, "Loaded %d variables from %s\n", dist.VariableCount(), args[0])
		return nil
	case "generate":
		n := DefaultInteractiveVariables
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: variable count %q", core.ErrInvalidArgument, args[0])
			}
			n = v
		}
		return s.generate(n)
	case "show":
		return s.dist.Render(s.out, s.precision)
	case "infer":
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("%w: usage: infer <interest> [given]", core.ErrInvalidArgument)
		}
		given := ""
		if len(args) == 2 {
			given = args[1]
		}
		q, err := query.Parse(s.dist.VariableCount(), args[0], given, s.base == 1)
		if err != nil {
			return err
		}
		return s.infer(q)
	case "query":
		return s.guidedQuery()
	case "analyze":
		return s.analyze(args)
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: export <file>", core.ErrInvalidArgument)
		}
		if err := s.dist.Export(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Exported to %s\n", args[0])
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", core.ErrInvalidArgument, name)
	}
}

func (s *Session) generate(n int) error {
	dist, err := distribution.New(n)
	if err != nil {
		return err
	}
	if err := dist.GenerateRandom(s.rng); err != nil {
		return err
	}
	s.dist = dist
	fmt.Fprintf(s.out, "Generated a random distribution over %d variables.\n", n)
	if dist.IsDense() {
		return dist.Render(s.out, s.precision)
	}
	return nil
}

func (s *Session) infer(q *query.Query) error {
	engine := inference.NewEngine(s.dist, inference.WithLogger(s.logger))
	result, err := engine.ComputeConditional(q)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, q.String())
	return result.Render(s.out, s.precision, s.base)
}

// guidedQuery asks for the conditioned variables and their values, then the
// interest variables. Invalid answers are reported and skipped.
func (s *Session) guidedQuery() error {
	n := s.dist.VariableCount()
	q, err := query.New(n)
	if err != nil {
		return err
	}
	first, last := s.base, n-1+s.base

	count, err := s.askInt(fmt.Sprintf("How many variables to condition on? (0-%d): ", n-1))
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		v, err := s.askInt(fmt.Sprintf("Conditioned variable %d (%d-%d): ", i+1, first, last))
		if err != nil {
			return err
		}
		val, err := s.askInt(fmt.Sprintf("Value of X%d (0 or 1): ", v))
		if err != nil {
			return err
		}
		if err := q.AddConditioned(v-s.base, val); err != nil {
			fmt.Fprintf(s.out, "Skipped: %v\n", err)
		}
	}

	count, err = s.askInt(fmt.Sprintf("How many interest variables? (1-%d): ", n))
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		v, err := s.askInt(fmt.Sprintf("Interest variable %d (%d-%d): ", i+1, first, last))
		if err != nil {
			return err
		}
		if err := q.AddInterest(v - s.base); err != nil {
			fmt.Fprintf(s.out, "Skipped: %v\n", err)
		}
	}

	if !q.IsValid() {
		return fmt.Errorf("%w: at least one interest variable is required", core.ErrInvalidArgument)
	}
	q.ComputeMasks()
	return s.infer(q)
}

func (s *Session) askInt(text string) (int, error) {
	line, ok := s.prompt(text)
	if !ok {
		return 0, fmt.Errorf("%w: input ended", core.ErrInvalidArgument)
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", core.ErrInvalidArgument, line)
	}
	return v, nil
}

func (s *Session) analyze(args []string) error {
	limits := []int{3, 3, 5}
	if len(args) > len(limits) {
		return fmt.Errorf("%w: usage: analyze [maxI maxC reps]", core.ErrInvalidArgument)
	}
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", core.ErrInvalidArgument, a)
		}
		limits[i] = v
	}

	analyzer := analysis.NewAnalyzer()
	analyzer.SetSeed(s.rng.Int63())
	analyzer.SetLogger(s.logger)
	if err := analyzer.Run(s.dist, limits[0], limits[1], limits[2]); err != nil {
		return err
	}
	return analyzer.WriteTable(s.out)
}
