package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nihei9/lextab/automaton"
	"github.com/nihei9/lextab/backend"
	verr "github.com/nihei9/lextab/error"
	"github.com/nihei9/lextab/generator"
	"github.com/spf13/cobra"
)

var generateFlags = struct {
	backend    *string
	output     *string
	longAlign  *bool
	omitTables *bool
	report     *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Emit the tables of an automaton as source code",
		Example: `  lextab generate automaton.json -b c -o tables.c --report report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runGenerate,
	}
	generateFlags.backend = cmd.Flags().StringP("backend", "b", string(backend.IDC), "backend emitting the tables")
	generateFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default <automaton-name>.<backend-suffix>)")
	generateFlags.longAlign = cmd.Flags().BoolP("long-align", "a", false, "use 32-bit elements for every table")
	generateFlags.omitTables = cmd.Flags().Bool("no-tables", false, "declare placeholders instead of initialized tables")
	generateFlags.report = cmd.Flags().String("report", "", "write a size report to this path")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		if errs, ok := retErr.(verr.TableErrors); ok {
			errs.SetSourceName(args[0])
		}
	}()

	a, err := readAutomaton(args[0])
	if err != nil {
		return err
	}

	var opts []backend.Option
	if *generateFlags.longAlign {
		opts = append(opts, backend.LongAlign())
	}
	if *generateFlags.omitTables {
		opts = append(opts, backend.OmitTables())
	}
	b, err := backend.New(backend.ID(*generateFlags.backend), opts...)
	if err != nil {
		return err
	}

	outPath := *generateFlags.output
	if outPath == "" {
		name := a.Name
		if name == "" {
			name = "lextab"
		}
		outPath = fmt.Sprintf("%v.%v", name, b.Suffix())
	}

	// Nothing is written until the tables and the report are complete.
	var src bytes.Buffer
	report, err := generator.Generate(&src, b, a)
	if err != nil {
		return err
	}
	var rep bytes.Buffer
	if *generateFlags.report != "" {
		err = report.Write(&rep)
		if err != nil {
			return fmt.Errorf("Cannot write a report: %w", err)
		}
	}

	err = os.WriteFile(outPath, src.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("Cannot write an output file: %w", err)
	}
	if *generateFlags.report != "" {
		err = os.WriteFile(*generateFlags.report, rep.Bytes(), 0644)
		if err != nil {
			return fmt.Errorf("Cannot write a report file: %w", err)
		}
	}

	return nil
}

func readAutomaton(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the automaton %s: %w", path, err)
	}
	defer f.Close()

	a, err := automaton.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%v: Cannot read an automaton: %w", path, err)
	}
	return a, nil
}
