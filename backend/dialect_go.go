package backend

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"
)

//go:embed skel/go.skel
var goSkel string

type goDialect struct{}

func (goDialect) suffix() string {
	return "go"
}

func (goDialect) skeleton() []string {
	return splitLines(goSkel)
}

func (goDialect) cLike() bool {
	return false
}

// goType returns a fresh statement for elem; jennifer statements must not be shared between trees.
func goType(elem ElemType) *jen.Statement {
	switch elem {
	case ElemInt16:
		return jen.Int16()
	case ElemInt32, ElemState:
		// A state of the full-speed representation is an index into yy_transition.
		return jen.Int32()
	}
	panic(fmt.Sprintf("unknown element type: %v", elem))
}

func goLits(data []int) []jen.Code {
	lits := make([]jen.Code, len(data))
	for i, v := range data {
		lits[i] = jen.Lit(v)
	}
	return lits
}

func renderGo(w *bytes.Buffer, stmts ...*jen.Statement) {
	for _, s := range stmts {
		fmt.Fprintf(w, "%#v\n", s)
	}
	fmt.Fprintf(w, "\n")
}

func goPlaceholder(lolen, name string, length int, typ *jen.Statement) []*jen.Statement {
	return []*jen.Statement{
		jen.Const().Id(lolen).Op("=").Lit(length),
		jen.Var().Id(name).Index().Add(typ),
	}
}

func (goDialect) declareTable(w *bytes.Buffer, kind TableKind, elem ElemType, data []int, gen bool) {
	if !gen {
		renderGo(w, goPlaceholder(kind.LengthMacro(), kind.TableName(), len(data), goType(elem))...)
		return
	}

	renderGo(w, jen.Var().Id(kind.TableName()).Op("=").Index(jen.Lit(len(data))).Add(goType(elem)).Values(goLits(data)...))
}

func (goDialect) declareFullTransition(w *bytes.Buffer, elem ElemType, cols int, data []int, gen bool) {
	if !gen {
		renderGo(w, goPlaceholder(KindTransition.LengthMacro(), KindTransition.TableName(), cols, goType(elem))...)
		return
	}

	rows := splitRows(data, cols)
	rowValues := make([]jen.Code, len(rows))
	for i, row := range rows {
		rowValues[i] = jen.Values(goLits(row)...)
	}
	renderGo(w, jen.Var().Id(KindTransition.TableName()).Op("=").Index(jen.Lit(len(rows))).Index(jen.Lit(cols)).Add(goType(elem)).Values(rowValues...))
}

func (goDialect) declareTransitionTable(w *bytes.Buffer, elem ElemType, entries []TransInfo, gen bool) {
	typeDecl := jen.Type().Id("yy_trans_info").Struct(
		jen.Id("yy_verify").Add(goType(elem)),
		jen.Id("yy_nxt").Add(goType(elem)),
	)
	name := KindCompressedTransition.TableName()
	if !gen {
		stmts := append([]*jen.Statement{typeDecl}, goPlaceholder(KindCompressedTransition.LengthMacro(), name, len(entries), jen.Id("yy_trans_info"))...)
		renderGo(w, stmts...)
		return
	}

	values := make([]jen.Code, len(entries))
	for i, e := range entries {
		values[i] = jen.Values(jen.Lit(e.Verify), jen.Lit(e.Next))
	}
	renderGo(w,
		typeDecl,
		jen.Var().Id(name).Op("=").Index(jen.Lit(len(entries))).Id("yy_trans_info").Values(values...),
	)
}

func (goDialect) writeDirectory(w io.Writer, entries []DirectoryEntry) error {
	values := make([]jen.Code, len(entries))
	for i, e := range entries {
		values[i] = jen.Values(jen.Id(e.Tag()), jen.Op("&").Id(e.Slot()), jen.Lit(e.Width().Int()))
	}
	_, err := fmt.Fprintf(w, "%#v\n", jen.Var().Id("yydmap").Op("=").Index().Id("yytbl_dmap").Values(values...))
	return err
}
