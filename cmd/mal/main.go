package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/davemus/malgo/pkg/mal"
	"github.com/davemus/malgo/pkg/replapp"
)

func main() {
	var (
		interactive bool
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:   "mal [flags] [filename] [args...]",
		Short: "A MAL (Make-A-Lisp) interpreter",
		Long: `Run a MAL script, or start an interactive REPL when no filename
is given. Script arguments after the filename are bound to *ARGV*.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				mal.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
					Level(zerolog.DebugLevel).With().Timestamp().Logger()
			}

			interp, err := mal.New()
			if err != nil {
				return err
			}

			if len(args) > 0 {
				filename := args[0]
				interp.SetArgs(filename, args[1:])
				if err := interp.LoadFile(filename); err != nil {
					return err
				}
				if !interactive {
					return nil
				}
			}
			return replapp.Run(interp)
		},
	}

	// Stop flag parsing at the filename so script arguments reach *ARGV*.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "drop into the REPL after running the script")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log interpreter diagnostics to stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
