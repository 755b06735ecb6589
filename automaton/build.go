package automaton

import (
	"fmt"

	"github.com/nihei9/lextab/compressor"
)

// Dense is an uncompressed DFA: RowCount x ColCount transitions in row-major order. Row 0 is
// the dead state.
type Dense struct {
	RowCount     int
	ColCount     int
	Transition   []int
	Accepting    []int
	InitialState int
	KindNames    []string
}

type buildConfig struct {
	acceptList    bool
	nulTransition bool
}

type BuildOption func(config *buildConfig)

// WithAcceptList stores accepted kinds in an accept list indexed by the accept table.
func WithAcceptList() BuildOption {
	return func(config *buildConfig) {
		config.acceptList = true
	}
}

// WithNulTransition adds a table holding the transition on the NUL symbol of each state.
func WithNulTransition() BuildOption {
	return func(config *buildConfig) {
		config.nulTransition = true
	}
}

// Build lays out the tables of d in the representation mode requires.
func Build(name string, mode Mode, d *Dense, opts ...BuildOption) (*Automaton, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}
	if d.RowCount <= 0 || d.ColCount <= 0 || len(d.Transition) != d.RowCount*d.ColCount {
		return nil, fmt.Errorf("malformed transition table; rows: %v, columns: %v, entries: %v", d.RowCount, d.ColCount, len(d.Transition))
	}
	if len(d.Accepting) != d.RowCount {
		return nil, fmt.Errorf("accepting states must have %v entries; got: %v", d.RowCount, len(d.Accepting))
	}

	config := &buildConfig{}
	for _, opt := range opts {
		opt(config)
	}

	a := &Automaton{
		Name:         name,
		Mode:         mode,
		InitialState: d.InitialState,
		StateCount:   d.RowCount,
		ColCount:     d.ColCount,
		KindNames:    d.KindNames,
	}

	if config.acceptList {
		a.Accept, a.AcceptList = genAcceptList(d.Accepting)
	} else {
		a.Accept = append([]int{}, d.Accepting...)
	}

	orig, err := compressor.NewOriginalTable(d.Transition, d.ColCount)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeFull:
		a.FullTransition = append([]int{}, d.Transition...)
	case ModeCompressed:
		tab := compressor.NewDefaultDisplacementTable(StateNil)
		err := tab.Compress(orig)
		if err != nil {
			return nil, err
		}
		a.Base = tab.RowDisplacement
		a.Def = tab.Defaults
		a.Nxt = tab.Entries
		a.Chk = tab.Bounds
	case ModeFullSpeed:
		tab := compressor.NewRowDisplacementTable(StateNil)
		err := tab.Compress(orig)
		if err != nil {
			return nil, err
		}
		a.Base = tab.RowDisplacement
		a.Transition = make([]TransInfo, len(tab.Entries))
		for i := range tab.Entries {
			a.Transition[i] = TransInfo{
				Verify: tab.Bounds[i],
				Next:   tab.Entries[i],
			}
		}
	}

	if config.nulTransition {
		a.NulTransition = make([]int, d.RowCount)
		for s := 0; s < d.RowCount; s++ {
			a.NulTransition[s] = d.Transition[s*d.ColCount]
		}
	}

	return a, nil
}

// genAcceptList returns the accept table and the accept list. Position 0 of the list is unused.
func genAcceptList(accepting []int) ([]int, []int) {
	accept := make([]int, len(accepting)+1)
	list := []int{0}
	for s, k := range accepting {
		accept[s] = len(list)
		if k != 0 {
			list = append(list, k)
		}
	}
	accept[len(accepting)] = len(list)
	return accept, list
}
