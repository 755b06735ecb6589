// Package automaton holds the finished tables of a scanner DFA, the input of a backend.
package automaton

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nihei9/lextab/backend"
	verr "github.com/nihei9/lextab/error"
)

// Mode is the table representation of an automaton.
type Mode string

const (
	// ModeFull keeps one row of StateCount x ColCount transitions per state.
	ModeFull = Mode("full")
	// ModeFullSpeed stores (verify, next) pairs that are indexed directly by a state's base.
	ModeFullSpeed = Mode("fullspeed")
	// ModeCompressed stores base, default, next and check tables.
	ModeCompressed = Mode("compressed")
)

func (m Mode) validate() error {
	switch m {
	case ModeFull, ModeFullSpeed, ModeCompressed:
		return nil
	}
	return fmt.Errorf("unknown mode: %q", m)
}

type TransInfo struct {
	Verify int `json:"verify"`
	Next   int `json:"next"`
}

// StateNil is the dead state. Transitions that are not stored lead to it.
const StateNil = 0

type Automaton struct {
	Name         string   `json:"name"`
	Mode         Mode     `json:"mode"`
	InitialState int      `json:"initial_state"`
	StateCount   int      `json:"state_count"`
	ColCount     int      `json:"col_count"`
	KindNames    []string `json:"kind_names,omitempty"`

	// Accept holds the accepted kind of each state. When AcceptList is present, Accept has
	// StateCount+1 entries and the kinds of state s are AcceptList[Accept[s]:Accept[s+1]].
	Accept     []int `json:"accept"`
	AcceptList []int `json:"accept_list,omitempty"`

	// Base is used by the compressed and the full-speed modes.
	Base []int `json:"base,omitempty"`

	Def []int `json:"def,omitempty"`
	Nxt []int `json:"nxt,omitempty"`
	Chk []int `json:"chk,omitempty"`

	FullTransition []int `json:"full_transition,omitempty"`

	Transition []TransInfo `json:"transition,omitempty"`

	NulTransition []int `json:"nul_transition,omitempty"`
}

func Read(r io.Reader) (*Automaton, error) {
	a := &Automaton{}
	err := json.NewDecoder(r).Decode(a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Automaton) Write(w io.Writer) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}

// Transit returns the state reached from state on symbol sym.
func (a *Automaton) Transit(state, sym int) (int, error) {
	if state < 0 || state >= a.StateCount || sym < 0 || sym >= a.ColCount {
		return StateNil, fmt.Errorf("indexes are out of range: [%v, %v]", state, sym)
	}

	switch a.Mode {
	case ModeFull:
		return a.FullTransition[state*a.ColCount+sym], nil
	case ModeCompressed:
		i := a.Base[state] + sym
		if a.Chk[i] != state {
			return a.Def[state], nil
		}
		return a.Nxt[i], nil
	case ModeFullSpeed:
		e := a.Transition[a.Base[state]+sym]
		if e.Verify != state {
			return StateNil, nil
		}
		return e.Next, nil
	}
	return StateNil, fmt.Errorf("unknown mode: %q", a.Mode)
}

// Accepted returns the kinds state accepts.
func (a *Automaton) Accepted(state int) []int {
	if a.AcceptList == nil {
		if a.Accept[state] == 0 {
			return nil
		}
		return []int{a.Accept[state]}
	}
	return a.AcceptList[a.Accept[state]:a.Accept[state+1]]
}

// Validate checks the tables are consistent with each other. It reports every problem it finds.
func (a *Automaton) Validate() error {
	v := &validator{a: a}
	v.validate()
	if len(v.errs) > 0 {
		return v.errs
	}
	return nil
}

type validator struct {
	a    *Automaton
	errs verr.TableErrors
}

func (v *validator) errorf(table string, index int, format string, args ...interface{}) {
	v.errs = append(v.errs, verr.NewTableError(table, index, format, args...))
}

func (v *validator) validate() {
	a := v.a
	if err := a.Mode.validate(); err != nil {
		v.errs = append(v.errs, &verr.TableError{Cause: err, Index: -1})
		return
	}
	if a.StateCount <= 0 {
		v.errorf("", -1, "state count must be >=1; got: %v", a.StateCount)
		return
	}
	if a.ColCount <= 0 {
		v.errorf("", -1, "column count must be >=1; got: %v", a.ColCount)
		return
	}
	if a.InitialState < 0 || a.InitialState >= a.StateCount {
		v.errorf("", -1, "initial state %v is out of range", a.InitialState)
	}

	v.validateAccept()

	switch a.Mode {
	case ModeFull:
		v.unexpected(backend.KindBase, len(a.Base))
		v.unexpected(backend.KindDefault, len(a.Def))
		v.unexpected(backend.KindCheck, len(a.Chk))
		v.unexpected(backend.KindCompressedTransition, len(a.Transition))
		if len(a.Nxt) > 0 {
			v.errorf(backend.KindTransition.TableName(), -1, "a full automaton keeps its transitions in full_transition")
		}
		name := backend.KindTransition.TableName()
		if len(a.FullTransition) != a.StateCount*a.ColCount {
			v.errorf(name, -1, "length must be %v; got: %v", a.StateCount*a.ColCount, len(a.FullTransition))
			break
		}
		v.states(name, a.FullTransition)
	case ModeCompressed:
		v.unexpected(backend.KindCompressedTransition, len(a.Transition))
		if len(a.FullTransition) > 0 {
			v.errorf(backend.KindTransition.TableName(), -1, "a compressed automaton must not have a full transition table")
		}
		v.length(backend.KindBase, len(a.Base), a.StateCount)
		v.length(backend.KindDefault, len(a.Def), a.StateCount)
		v.length(backend.KindCheck, len(a.Chk), len(a.Nxt))
		v.bases(len(a.Nxt))
		v.states(backend.KindDefault.TableName(), a.Def)
		v.states(backend.KindTransition.TableName(), a.Nxt)
		for i, s := range a.Chk {
			if s < -1 || s >= a.StateCount {
				v.errorf(backend.KindCheck.TableName(), i, "owner %v is out of range", s)
			}
		}
	case ModeFullSpeed:
		v.unexpected(backend.KindDefault, len(a.Def))
		v.unexpected(backend.KindCheck, len(a.Chk))
		if len(a.Nxt) > 0 || len(a.FullTransition) > 0 {
			v.errorf(backend.KindTransition.TableName(), -1, "a full-speed automaton keeps its transitions in transition")
		}
		v.length(backend.KindBase, len(a.Base), a.StateCount)
		v.bases(len(a.Transition))
		name := backend.KindCompressedTransition.TableName()
		for i, e := range a.Transition {
			if e.Verify < -1 || e.Verify >= a.StateCount {
				v.errorf(name, i, "owner %v is out of range", e.Verify)
			}
			if e.Next < 0 || e.Next >= a.StateCount {
				v.errorf(name, i, "state %v is out of range", e.Next)
			}
		}
	}

	if a.NulTransition != nil {
		v.length(backend.KindNulTransition, len(a.NulTransition), a.StateCount)
		v.states(backend.KindNulTransition.TableName(), a.NulTransition)
	}
}

func (v *validator) validateAccept() {
	a := v.a
	name := backend.KindAccept.TableName()
	if a.AcceptList == nil {
		v.length(backend.KindAccept, len(a.Accept), a.StateCount)
		for i, k := range a.Accept {
			if k < 0 {
				v.errorf(name, i, "kind %v is out of range", k)
			}
		}
		return
	}

	if len(a.Accept) != a.StateCount+1 {
		v.errorf(name, -1, "length must be %v when an accept list is present; got: %v", a.StateCount+1, len(a.Accept))
		return
	}
	prev := 0
	for i, p := range a.Accept {
		if p < prev || p > len(a.AcceptList) {
			v.errorf(name, i, "position %v is out of range", p)
			continue
		}
		prev = p
	}
}

func (v *validator) unexpected(kind backend.TableKind, length int) {
	if length > 0 {
		v.errorf(kind.TableName(), -1, "a %v automaton must not have this table", v.a.Mode)
	}
}

func (v *validator) length(kind backend.TableKind, got, want int) {
	if got != want {
		v.errorf(kind.TableName(), -1, "length must be %v; got: %v", want, got)
	}
}

func (v *validator) bases(tableLen int) {
	a := v.a
	if len(a.Base) != a.StateCount {
		return
	}
	for s, b := range a.Base {
		if b < 0 || b+a.ColCount > tableLen {
			v.errorf(backend.KindBase.TableName(), s, "row at %v exceeds the table of length %v", b, tableLen)
		}
	}
}

func (v *validator) states(table string, data []int) {
	for i, s := range data {
		if s < 0 || s >= v.a.StateCount {
			v.errorf(table, i, "state %v is out of range", s)
		}
	}
}
