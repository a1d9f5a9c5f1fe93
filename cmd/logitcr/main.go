// Command logitcr computes a branch of the logit quantal response
// equilibrium correspondence of a normal-form game.
//
// The game is read from standard input in the NFG payoff text format;
// one record per accepted continuation step is written to standard
// output (or a single NE record with -e). Exit status is 0 on success
// and 1 on a malformed game, malformed observation file, unknown flag,
// or tracer failure.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/logitcr/logit"
	"github.com/katalvlaran/logitcr/nfg"
)

const banner = `Compute a branch of the logit equilibrium correspondence
logitcr, homotopy continuation for quantal response equilibria

`

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "logitcr: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd wires the tracer behind a cobra command. The reader and
// writers are injected so tests can drive the command end to end.
func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var (
		decimals  int
		step      float64
		accel     float64
		maxLambda float64
		terminal  bool
		quiet     bool
		mleFile   string
	)

	cmd := &cobra.Command{
		Use:           "logitcr",
		Short:         "Compute a branch of the logit equilibrium correspondence",
		Long:          "Accepts a strategic game in the NFG payoff format on standard input\nand traces the logit QRE correspondence from the centroid profile.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !quiet {
				fmt.Fprint(errOut, banner)
			}

			// Flag validation up front, so option constructors never panic.
			if step <= 0 {
				return logit.ErrBadStepInitial
			}
			if accel <= 1 {
				return logit.ErrBadMaxDecel
			}
			if maxLambda <= 0 {
				return logit.ErrBadMaxLambda
			}
			if decimals < 0 {
				return logit.ErrBadDecimals
			}

			game, err := nfg.ReadGame(in)
			if err != nil {
				return err
			}

			opts := []logit.Option{
				logit.WithDecimals(decimals),
				logit.WithStepInitial(step),
				logit.WithMaxDecel(accel),
				logit.WithMaxLambda(maxLambda),
			}
			if terminal {
				opts = append(opts, logit.WithTerminalOnly())
			}
			if mleFile != "" {
				obs, obsErr := readObservationFile(mleFile, game.ProfileLength())
				if obsErr != nil {
					return obsErr
				}
				opts = append(opts, logit.WithObservations(obs))
			}

			return logit.Trace(game, out, opts...)
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.Flags().IntVarP(&decimals, "decimals", "d", logit.DefaultDecimals,
		"digits of precision in output records")
	cmd.Flags().Float64VarP(&step, "step", "s", logit.DefaultStepInitial,
		"initial step length")
	cmd.Flags().Float64VarP(&accel, "accel", "a", logit.DefaultMaxDecel,
		"maximum acceleration (and deceleration) per step")
	cmd.Flags().Float64VarP(&maxLambda, "max-lambda", "m", logit.DefaultMaxLambda,
		"stop when lambda reaches this bound")
	cmd.Flags().BoolVarP(&terminal, "terminal", "e", false,
		"print only the terminal equilibrium (default: the entire branch)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress the banner")
	cmd.Flags().StringVarP(&mleFile, "likelihood", "L", "",
		"maximum-likelihood estimation against observed frequencies in `FILE`")

	return cmd
}

// readObservationFile loads an observed-frequency vector of length n.
func readObservationFile(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("observation file: %w", err)
	}
	defer f.Close()

	return nfg.ReadObservations(f, n)
}
