package automaton

import (
	"fmt"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
)

// CompileLexSpec compiles a lexical specification with maleeni and returns the DFA of the lex
// mode named modeName.
func CompileLexSpec(lexSpec *mlspec.LexSpec, modeName string) (*Dense, error) {
	clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMin))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}

	return DenseFromLexSpec(clspec, modeName)
}

// DenseFromLexSpec extracts the DFA of a lex mode from a compiled lexical specification. The
// specification must be compiled without compression.
func DenseFromLexSpec(clspec *mlspec.CompiledLexSpec, modeName string) (*Dense, error) {
	var modeSpec *mlspec.CompiledLexModeSpec
	for id, name := range clspec.ModeNames {
		if string(name) != modeName || id >= len(clspec.Specs) {
			continue
		}
		modeSpec = clspec.Specs[id]
		break
	}
	if modeSpec == nil || modeSpec.DFA == nil {
		return nil, fmt.Errorf("lex mode not found: %v", modeName)
	}

	dfa := modeSpec.DFA
	if dfa.UncompressedTransition == nil {
		return nil, fmt.Errorf("the transition table of %v mode is compressed; compile it with compression level %v", modeName, mlcompiler.CompressionLevelMin)
	}

	tran := make([]int, len(dfa.UncompressedTransition))
	for i, s := range dfa.UncompressedTransition {
		tran[i] = int(s)
	}
	acc := make([]int, len(dfa.AcceptingStates))
	for i, k := range dfa.AcceptingStates {
		acc[i] = int(k)
	}
	kindNames := make([]string, len(modeSpec.KindNames))
	for i, k := range modeSpec.KindNames {
		kindNames[i] = string(k)
	}

	return &Dense{
		RowCount:     dfa.RowCount,
		ColCount:     dfa.ColCount,
		Transition:   tran,
		Accepting:    acc,
		InitialState: int(dfa.InitialStateID),
		KindNames:    kindNames,
	}, nil
}

func writeCompileError(w *strings.Builder, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
