// Package generator runs a backend over an automaton: it calls the table emitters in the
// order the automaton's mode dictates and writes the resulting source.
package generator

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nihei9/lextab/automaton"
	"github.com/nihei9/lextab/backend"
	"go.uber.org/zap"
)

// Generate validates a, emits its tables with b and writes the skeleton, the declarations and
// the directory to w. b must be a fresh backend; a backend serves one run only.
func Generate(w io.Writer, b backend.Backend, a *automaton.Automaton) (*Report, error) {
	err := a.Validate()
	if err != nil {
		return nil, err
	}

	log := Logger().With(zap.String("automaton", a.Name), zap.String("backend", string(b.ID())))
	log.Debug("generating tables", zap.String("mode", string(a.Mode)), zap.Int("states", a.StateCount))

	emit(b, a)

	bw := bufio.NewWriter(w)
	for _, l := range b.Skeleton() {
		fmt.Fprintf(bw, "%v\n", l)
	}
	fmt.Fprintf(bw, "\n")
	_, err = b.WriteTo(bw)
	if err != nil {
		return nil, err
	}
	err = b.WriteDirectory(bw)
	if err != nil {
		return nil, err
	}
	err = bw.Flush()
	if err != nil {
		return nil, fmt.Errorf("failed to write tables: %w", err)
	}

	r := newReport(b, a)
	log.Debug("generated tables", zap.Int("tables", len(r.Tables)), zap.Int("footprint", r.Footprint))

	return r, nil
}

// emit calls the emitters of b in the sequence a's mode dictates.
func emit(b backend.Backend, a *automaton.Automaton) {
	if a.AcceptList != nil {
		b.AcceptList(a.AcceptList)
	}
	switch a.Mode {
	case automaton.ModeFull:
		b.Accept(a.Accept)
		b.FullTransition(a.ColCount, a.FullTransition, backend.MaxValue(a.FullTransition))
		if a.NulTransition != nil {
			b.NulTransition(false, a.NulTransition, backend.MaxValue(a.NulTransition))
		}
	case automaton.ModeFullSpeed:
		b.Accept(a.Accept)
		b.Base(a.Base, len(a.Transition))
		b.CompressedTransition(len(a.Transition))
		entries := make([]backend.TransInfo, len(a.Transition))
		for i, e := range a.Transition {
			entries[i] = backend.TransInfo{
				Verify: e.Verify,
				Next:   e.Next,
			}
		}
		b.TransitionTable(entries)
		if a.NulTransition != nil {
			b.NulTransition(true, a.NulTransition, 0)
		}
	case automaton.ModeCompressed:
		b.Accept(a.Accept)
		b.Base(a.Base, len(a.Nxt))
		b.Default(a.Def, backend.MaxValue(a.Def))
		b.Next(a.Nxt)
		b.Check(a.Chk)
		if a.NulTransition != nil {
			b.NulTransition(false, a.NulTransition, backend.MaxValue(a.NulTransition))
		}
	}
}
