package backend

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// dialect renders declarations in one surface syntax. Writes to a bytes.Buffer cannot fail.
type dialect interface {
	suffix() string
	skeleton() []string
	cLike() bool
	declareTable(w *bytes.Buffer, kind TableKind, elem ElemType, data []int, gen bool)
	declareFullTransition(w *bytes.Buffer, elem ElemType, cols int, data []int, gen bool)
	declareTransitionTable(w *bytes.Buffer, elem ElemType, entries []TransInfo, gen bool)
	writeDirectory(w io.Writer, entries []DirectoryEntry) error
}

type tableEmitter struct {
	id        ID
	d         dialect
	longAlign bool
	genTables bool

	out       bytes.Buffer
	dir       Directory
	tables    []TableDescriptor
	footprint int
	emitted   map[TableKind]struct{}
}

var _ Backend = &tableEmitter{}

func (e *tableEmitter) ID() ID {
	return e.id
}

func (e *tableEmitter) Suffix() string {
	return e.d.suffix()
}

func (e *tableEmitter) Skeleton() []string {
	return e.d.skeleton()
}

func (e *tableEmitter) CLike() bool {
	return e.d.cLike()
}

func (e *tableEmitter) TransOffsetType(totalTableSize int) ElemType {
	return intType(ChooseWidth(totalTableSize, e.longAlign))
}

func (e *tableEmitter) FullTransition(cols int, data []int, bound int) {
	e.begin(KindTransition)
	elem := intType(ChooseWidth(bound, e.longAlign))
	e.d.declareFullTransition(&e.out, elem, cols, data, e.genTables)
	e.record(KindTransition, elem, len(data), true)
}

func (e *tableEmitter) CompressedTransition(size int) int {
	e.begin(KindCompressedTransition)
	elem := e.TransOffsetType(size)
	// Each entry holds two members, the verification value and the next state.
	return e.record(KindCompressedTransition, elem, 2*size, false)
}

func (e *tableEmitter) TransitionTable(entries []TransInfo) {
	e.d.declareTransitionTable(&e.out, e.TransOffsetType(len(entries)), entries, e.genTables)
}

func (e *tableEmitter) AcceptList(data []int) int {
	return e.emit(KindAcceptList, data, 0)
}

func (e *tableEmitter) Accept(data []int) int {
	return e.emit(KindAccept, data, 0)
}

func (e *tableEmitter) Base(data []int, bound int) int {
	return e.emit(KindBase, data, bound)
}

func (e *tableEmitter) Default(data []int, bound int) int {
	return e.emit(KindDefault, data, bound)
}

func (e *tableEmitter) Next(data []int) int {
	return e.emit(KindTransition, data, 0)
}

func (e *tableEmitter) Check(data []int) int {
	return e.emit(KindCheck, data, 0)
}

func (e *tableEmitter) NulTransition(fullSpeed bool, data []int, bound int) int {
	if !fullSpeed {
		return e.emit(KindNulTransition, data, bound)
	}

	e.begin(KindNulTransition)
	e.d.declareTable(&e.out, KindNulTransition, ElemState, data, e.genTables)
	return e.record(KindNulTransition, ElemState, len(data), false)
}

// emit declares a table whose width follows the bound rule of its kind.
func (e *tableEmitter) emit(kind TableKind, data []int, bound int) int {
	e.begin(kind)
	if kind.info().bound == boundLength {
		bound = len(data)
	}
	elem := intType(ChooseWidth(bound, e.longAlign))
	e.d.declareTable(&e.out, kind, elem, data, e.genTables)
	return e.record(kind, elem, len(data), false)
}

func (e *tableEmitter) begin(kind TableKind) {
	if _, ok := e.emitted[kind]; ok {
		panic(fmt.Sprintf("table %v was emitted twice", kind.TableName()))
	}
	e.emitted[kind] = struct{}{}
}

func (e *tableEmitter) record(kind TableKind, elem ElemType, count int, deferred bool) int {
	desc := TableDescriptor{
		Kind:         kind,
		Name:         kind.TableName(),
		ElementCount: count,
		Elem:         elem,
		Backed:       e.genTables,
		Deferred:     deferred,
	}
	if !e.genTables {
		desc.ElementCount = 0
	}
	e.tables = append(e.tables, desc)
	e.dir.Append(kind, elem)

	Logger().Debug("emitted table",
		zap.String("table", desc.Name),
		zap.Stringer("kind", kind),
		zap.Int("count", count),
		zap.Int("width", elem.Width().Int()),
		zap.Bool("backed", desc.Backed))

	if deferred {
		return 0
	}
	fp := desc.Footprint()
	e.footprint += fp
	return fp
}

func (e *tableEmitter) Tables() []TableDescriptor {
	ts := make([]TableDescriptor, len(e.tables))
	copy(ts, e.tables)
	return ts
}

func (e *tableEmitter) Directory() *Directory {
	return &e.dir
}

func (e *tableEmitter) Footprint() int {
	return e.footprint
}

func (e *tableEmitter) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.out.Bytes())
	return int64(n), err
}

func (e *tableEmitter) WriteDirectory(w io.Writer) error {
	return e.d.writeDirectory(w, e.dir.Entries())
}
