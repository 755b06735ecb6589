package backend

import (
	"fmt"
	"io"
	"sort"
)

// TableDescriptor describes one emitted table.
type TableDescriptor struct {
	Kind TableKind
	Name string
	// ElementCount is 0 when the table is not backed by data.
	ElementCount int
	Elem         ElemType
	// Backed is false when table generation is disabled and only a placeholder was declared.
	Backed bool
	// Deferred is true for tables whose footprint is not added to the running total.
	Deferred bool
}

func (d TableDescriptor) Width() Width {
	return d.Elem.Width()
}

func (d TableDescriptor) Footprint() int {
	return d.ElementCount * d.Elem.Width().Int()
}

// TransInfo is an entry of the full-speed transition table.
type TransInfo struct {
	Verify int
	Next   int
}

// Backend emits table declarations in one surface syntax and keeps the directory and the
// footprint of a single generation run. Each emission operation must be called at most once
// per run; emitting the same table kind twice panics.
type Backend interface {
	ID() ID

	// Suffix returns the file extension of the generated source.
	Suffix() string

	// Skeleton returns the template lines written ahead of the tables.
	Skeleton() []string

	// CLike reports whether the surface syntax follows C declaration conventions.
	CLike() bool

	// TransOffsetType returns the element type of a compressed transition table of the given size.
	TransOffsetType(totalTableSize int) ElemType

	// FullTransition declares the two-dimensional transition table with cols columns.
	// Its footprint is not counted.
	FullTransition(cols int, data []int, bound int)

	// CompressedTransition records the directory entry of the full-speed transition table.
	// The table body is written by TransitionTable.
	CompressedTransition(size int) int

	// TransitionTable writes the body of the full-speed transition table.
	TransitionTable(entries []TransInfo)

	AcceptList(data []int) int
	Accept(data []int) int
	Base(data []int, bound int) int
	Default(data []int, bound int) int
	Next(data []int) int
	Check(data []int) int
	NulTransition(fullSpeed bool, data []int, bound int) int

	Tables() []TableDescriptor
	Directory() *Directory
	Footprint() int

	// WriteTo writes the declarations emitted so far.
	WriteTo(w io.Writer) (int64, error)

	// WriteDirectory writes the directory as a runtime lookup structure.
	WriteDirectory(w io.Writer) error
}

type config struct {
	longAlign  bool
	omitTables bool
}

type Option func(config *config)

// LongAlign makes every table use 32-bit elements.
func LongAlign() Option {
	return func(config *config) {
		config.longAlign = true
	}
}

// OmitTables declares typed null placeholders instead of initialized tables.
func OmitTables() Option {
	return func(config *config) {
		config.omitTables = true
	}
}

type ID string

const (
	IDC  = ID("c")
	IDGo = ID("go")
)

var dialects = map[ID]func() dialect{
	IDC: func() dialect {
		return cDialect{}
	},
	IDGo: func() dialect {
		return goDialect{}
	},
}

// IDs returns the identifiers of all available backends.
func IDs() []ID {
	ids := make([]ID, 0, len(dialects))
	for id := range dialects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// New returns a backend for a generation run.
func New(id ID, opts ...Option) (Backend, error) {
	newDialect, ok := dialects[id]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %v", id)
	}

	config := &config{}
	for _, opt := range opts {
		opt(config)
	}

	return &tableEmitter{
		id:        id,
		d:         newDialect(),
		longAlign: config.longAlign,
		genTables: !config.omitTables,
		emitted:   map[TableKind]struct{}{},
	}, nil
}
