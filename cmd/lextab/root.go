package main

import (
	"fmt"
	"os"

	"github.com/nihei9/lextab/backend"
	"github.com/nihei9/lextab/generator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlags = struct {
	verbose *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "lextab",
	Short: "Emit the tables of a scanner automaton as source code",
	Long: `lextab provides the following features:
- Compiles a maleeni lexical specification into an automaton in one of the
  full, fullspeed, and compressed table layouts.
- Emits the tables of an automaton as C or Go declarations together with a
  directory a runtime loader uses to find them.`,
	PersistentPreRunE: setUpLogger,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug logs to stderr")
}

func setUpLogger(cmd *cobra.Command, args []string) error {
	if !*rootFlags.verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("Cannot create a logger: %w", err)
	}
	backend.SetLogger(l.Named("backend"))
	generator.SetLogger(l.Named("generator"))
	return nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
