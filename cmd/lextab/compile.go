package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nihei9/lextab/automaton"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output        *string
	mode          *string
	lexMode       *string
	acceptList    *bool
	nulTransition *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a lexical specification into an automaton",
		Example: `  lextab compile lexspec.json -o automaton.json --mode compressed`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.mode = cmd.Flags().StringP("mode", "m", string(automaton.ModeCompressed), "table layout: full, fullspeed, or compressed")
	compileFlags.lexMode = cmd.Flags().String("lex-mode", string(mlspec.LexModeNameDefault), "lex mode whose DFA is compiled")
	compileFlags.acceptList = cmd.Flags().Bool("acclist", false, "store accepted kinds in an accept list")
	compileFlags.nulTransition = cmd.Flags().Bool("nul-trans", false, "add a table of transitions on the NUL symbol")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var lspec *mlspec.LexSpec
	{
		var r io.Reader
		srcName := "stdin"
		if len(args) > 0 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("Cannot open the lexical specification %s: %w", args[0], err)
			}
			defer f.Close()
			r = f
			srcName = args[0]
		} else {
			r = os.Stdin
		}

		lspec = &mlspec.LexSpec{}
		err := json.NewDecoder(r).Decode(lspec)
		if err != nil {
			return fmt.Errorf("%v: Cannot read a lexical specification: %w", srcName, err)
		}
	}

	d, err := automaton.CompileLexSpec(lspec, *compileFlags.lexMode)
	if err != nil {
		return err
	}

	var opts []automaton.BuildOption
	if *compileFlags.acceptList {
		opts = append(opts, automaton.WithAcceptList())
	}
	if *compileFlags.nulTransition {
		opts = append(opts, automaton.WithNulTransition())
	}
	a, err := automaton.Build(lspec.Name, automaton.Mode(*compileFlags.mode), d, opts...)
	if err != nil {
		return err
	}

	var w io.Writer
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot create an output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	err = a.Write(w)
	if err != nil {
		return fmt.Errorf("Cannot write an automaton: %w", err)
	}

	return nil
}
