package automaton

import (
	"bytes"
	"errors"
	"testing"

	verr "github.com/nihei9/lextab/error"
	mlspec "github.com/nihei9/maleeni/spec"
)

// genDense returns a DFA recognizing a+b* over {NUL, a, b, c}.
func genDense() *Dense {
	return &Dense{
		RowCount: 4,
		ColCount: 4,
		Transition: []int{
			0, 0, 0, 0,
			0, 2, 0, 0,
			0, 2, 3, 0,
			1, 0, 3, 0,
		},
		Accepting:    []int{0, 0, 1, 2},
		InitialState: 1,
		KindNames:    []string{"", "as", "bs"},
	}
}

func TestBuild(t *testing.T) {
	d := genDense()
	tests := []struct {
		mode Mode
		opts []BuildOption
	}{
		{mode: ModeFull},
		{mode: ModeCompressed},
		{mode: ModeFullSpeed},
		{mode: ModeFull, opts: []BuildOption{WithAcceptList(), WithNulTransition()}},
		{mode: ModeCompressed, opts: []BuildOption{WithAcceptList(), WithNulTransition()}},
		{mode: ModeFullSpeed, opts: []BuildOption{WithAcceptList(), WithNulTransition()}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			a, err := Build("test", tt.mode, d, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			err = a.Validate()
			if err != nil {
				t.Fatalf("a built automaton must be valid: %v", err)
			}
			for s := 0; s < d.RowCount; s++ {
				for c := 0; c < d.ColCount; c++ {
					next, err := a.Transit(s, c)
					if err != nil {
						t.Fatal(err)
					}
					if next != d.Transition[s*d.ColCount+c] {
						t.Fatalf("unexpected transition from %v on %v; want: %v, got: %v", s, c, d.Transition[s*d.ColCount+c], next)
					}
				}
				kinds := a.Accepted(s)
				if d.Accepting[s] == 0 {
					if len(kinds) != 0 {
						t.Fatalf("state %v must not accept anything; got: %v", s, kinds)
					}
				} else if len(kinds) != 1 || kinds[0] != d.Accepting[s] {
					t.Fatalf("unexpected kinds of state %v; want: [%v], got: %v", s, d.Accepting[s], kinds)
				}
			}
			if a.NulTransition != nil {
				want := []int{0, 0, 0, 1}
				for s, next := range a.NulTransition {
					if next != want[s] {
						t.Fatalf("unexpected NUL transition of state %v; want: %v, got: %v", s, want[s], next)
					}
				}
			}
		})
	}
}

func TestBuild_MalformedInput(t *testing.T) {
	d := genDense()
	d.Transition = d.Transition[1:]
	if _, err := Build("test", ModeFull, d); err == nil {
		t.Fatalf("expected error didn't occur")
	}

	d = genDense()
	d.Accepting = d.Accepting[1:]
	if _, err := Build("test", ModeFull, d); err == nil {
		t.Fatalf("expected error didn't occur")
	}

	if _, err := Build("test", Mode("huge"), genDense()); err == nil {
		t.Fatalf("expected error didn't occur")
	}
}

func TestGenAcceptList(t *testing.T) {
	accept, list := genAcceptList([]int{0, 3, 0, 1})
	wantAccept := []int{1, 1, 2, 2, 3}
	wantList := []int{0, 3, 1}
	if len(accept) != len(wantAccept) {
		t.Fatalf("unexpected accept length; want: %v, got: %v", len(wantAccept), len(accept))
	}
	for i, p := range accept {
		if p != wantAccept[i] {
			t.Fatalf("unexpected accept #%v; want: %v, got: %v", i, wantAccept[i], p)
		}
	}
	if len(list) != len(wantList) {
		t.Fatalf("unexpected list length; want: %v, got: %v", len(wantList), len(list))
	}
	for i, k := range list {
		if k != wantList[i] {
			t.Fatalf("unexpected list entry #%v; want: %v, got: %v", i, wantList[i], k)
		}
	}
}

func TestAutomaton_ReadWrite(t *testing.T) {
	a, err := Build("test", ModeFullSpeed, genDense(), WithNulTransition())
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = a.Write(&b)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Read(&b)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != a.Name || r.Mode != a.Mode || r.StateCount != a.StateCount || r.InitialState != a.InitialState {
		t.Fatalf("unexpected header; want: %+v, got: %+v", a, r)
	}
	if len(r.Transition) != len(a.Transition) || len(r.Base) != len(a.Base) || len(r.NulTransition) != len(a.NulTransition) {
		t.Fatalf("tables were lost; want: %+v, got: %+v", a, r)
	}
	err = r.Validate()
	if err != nil {
		t.Fatal(err)
	}
}

func TestAutomaton_Validate(t *testing.T) {
	tests := []struct {
		caption string
		mod     func(a *Automaton)
		mode    Mode
		table   string
	}{
		{
			caption: "an unknown mode",
			mode:    ModeFull,
			mod: func(a *Automaton) {
				a.Mode = Mode("huge")
			},
		},
		{
			caption: "a short full transition table",
			mode:    ModeFull,
			mod: func(a *Automaton) {
				a.FullTransition = a.FullTransition[1:]
			},
			table: "yy_nxt",
		},
		{
			caption: "a state out of range",
			mode:    ModeFull,
			mod: func(a *Automaton) {
				a.FullTransition[5] = 9
			},
			table: "yy_nxt",
		},
		{
			caption: "a negative kind",
			mode:    ModeFull,
			mod: func(a *Automaton) {
				a.Accept[1] = -1
			},
			table: "yy_accept",
		},
		{
			caption: "a base exceeding the next table",
			mode:    ModeCompressed,
			mod: func(a *Automaton) {
				a.Base[1] = len(a.Nxt)
			},
			table: "yy_base",
		},
		{
			caption: "a check table with a different length",
			mode:    ModeCompressed,
			mod: func(a *Automaton) {
				a.Chk = append(a.Chk, 0)
			},
			table: "yy_chk",
		},
		{
			caption: "a default table in a full-speed automaton",
			mode:    ModeFullSpeed,
			mod: func(a *Automaton) {
				a.Def = []int{0, 0, 0, 0}
			},
			table: "yy_def",
		},
		{
			caption: "a verification value out of range",
			mode:    ModeFullSpeed,
			mod: func(a *Automaton) {
				a.Transition[0].Verify = 4
			},
			table: "yy_transition",
		},
		{
			caption: "a short NUL transition table",
			mode:    ModeFull,
			mod: func(a *Automaton) {
				a.NulTransition = []int{0}
			},
			table: "yy_NUL_trans",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			a, err := Build("test", tt.mode, genDense())
			if err != nil {
				t.Fatal(err)
			}
			tt.mod(a)
			err = a.Validate()
			if err == nil {
				t.Fatalf("expected error didn't occur")
			}
			var errs verr.TableErrors
			if !errors.As(err, &errs) {
				t.Fatalf("unexpected error type: %T", err)
			}
			if tt.table == "" {
				return
			}
			for _, e := range errs {
				if e.Table == tt.table {
					return
				}
			}
			t.Fatalf("no error is reported on %v: %v", tt.table, err)
		})
	}
}

func TestCompileLexSpec(t *testing.T) {
	lspec := &mlspec.LexSpec{
		Name: "test",
		Entries: []*mlspec.LexEntry{
			{
				Kind:    mlspec.LexKindName("word"),
				Pattern: mlspec.LexPattern("[a-z]+"),
			},
			{
				Kind:    mlspec.LexKindName("digits"),
				Pattern: mlspec.LexPattern("[0-9]+"),
			},
		},
	}
	d, err := CompileLexSpec(lspec, string(mlspec.LexModeNameDefault))
	if err != nil {
		t.Fatal(err)
	}
	if d.ColCount != 256 {
		t.Fatalf("unexpected column count; want: %v, got: %v", 256, d.ColCount)
	}

	a, err := Build("test", ModeCompressed, d, WithNulTransition())
	if err != nil {
		t.Fatal(err)
	}
	err = a.Validate()
	if err != nil {
		t.Fatal(err)
	}

	lex := func(input string) string {
		s := a.InitialState
		for _, c := range []byte(input) {
			s, err = a.Transit(s, int(c))
			if err != nil {
				t.Fatal(err)
			}
			if s == StateNil {
				return ""
			}
		}
		kinds := a.Accepted(s)
		if len(kinds) == 0 {
			return ""
		}
		return a.KindNames[kinds[0]]
	}
	tests := []struct {
		input string
		kind  string
	}{
		{input: "abc", kind: "word"},
		{input: "42", kind: "digits"},
		{input: "a1", kind: ""},
	}
	for _, tt := range tests {
		if k := lex(tt.input); k != tt.kind {
			t.Fatalf("unexpected kind of %q; want: %q, got: %q", tt.input, tt.kind, k)
		}
	}

	if _, err := CompileLexSpec(lspec, "missing"); err == nil {
		t.Fatalf("expected error didn't occur")
	}
}
