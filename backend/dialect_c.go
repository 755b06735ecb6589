package backend

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed skel/c.skel
var cSkel string

const valuesPerLine = 10

type cDialect struct{}

func (cDialect) suffix() string {
	return "c"
}

func (cDialect) skeleton() []string {
	return splitLines(cSkel)
}

func (cDialect) cLike() bool {
	return true
}

func cTypeName(elem ElemType) string {
	switch elem {
	case ElemInt16:
		return "flex_int16_t"
	case ElemInt32:
		return "flex_int32_t"
	case ElemState:
		return "yy_state_type"
	}
	panic(fmt.Sprintf("unknown element type: %v", elem))
}

func (cDialect) declareTable(w *bytes.Buffer, kind TableKind, elem ElemType, data []int, gen bool) {
	if !gen {
		writeCPlaceholder(w, kind.LengthMacro(), cTypeName(elem), kind.TableName(), len(data))
		return
	}

	fmt.Fprintf(w, "static const %v %v[%v] =\n    {\n", cTypeName(elem), kind.TableName(), len(data))
	writeCInts(w, data, "    ")
	fmt.Fprintf(w, "    } ;\n\n")
}

func (cDialect) declareFullTransition(w *bytes.Buffer, elem ElemType, cols int, data []int, gen bool) {
	if !gen {
		writeCPlaceholder(w, KindTransition.LengthMacro(), cTypeName(elem), KindTransition.TableName(), cols)
		return
	}

	fmt.Fprintf(w, "static const %v %v[][%v] =\n    {\n", cTypeName(elem), KindTransition.TableName(), cols)
	for _, row := range splitRows(data, cols) {
		fmt.Fprintf(w, "    {\n")
		writeCInts(w, row, "    ")
		fmt.Fprintf(w, "    },\n\n")
	}
	fmt.Fprintf(w, "    } ;\n\n")
}

func (cDialect) declareTransitionTable(w *bytes.Buffer, elem ElemType, entries []TransInfo, gen bool) {
	typ := cTypeName(elem)
	fmt.Fprintf(w, "struct yy_trans_info\n    {\n    %v yy_verify;\n    %v yy_nxt;\n    };\n", typ, typ)
	if !gen {
		writeCPlaceholder(w, KindCompressedTransition.LengthMacro(), "struct yy_trans_info", KindCompressedTransition.TableName(), len(entries))
		return
	}

	fmt.Fprintf(w, "static const struct yy_trans_info %v[%v] =\n    {\n", KindCompressedTransition.TableName(), len(entries))
	for i, e := range entries {
		if i%5 == 0 {
			if i > 0 {
				fmt.Fprintf(w, ",\n")
			}
			fmt.Fprintf(w, "    ")
		} else {
			fmt.Fprintf(w, ", ")
		}
		fmt.Fprintf(w, "{ %4d, %4d }", e.Verify, e.Next)
	}
	if len(entries) > 0 {
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "    } ;\n\n")
}

func (cDialect) writeDirectory(w io.Writer, entries []DirectoryEntry) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "static const struct yytbl_dmap yydmap[] =\n{\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\t{%v, (void**)&%v, sizeof(%v)},\n", e.Tag(), e.Slot(), cTypeName(e.Elem))
	}
	fmt.Fprintf(&b, "\t{0,0,0}\n};\n")
	_, err := w.Write(b.Bytes())
	return err
}

func writeCPlaceholder(w *bytes.Buffer, lolen, typ, name string, length int) {
	fmt.Fprintf(w, "#undef %v\n#define %v (%v)\n", lolen, lolen, length)
	fmt.Fprintf(w, "static const %v * %v = 0;\n\n", typ, name)
}

func writeCInts(w *bytes.Buffer, data []int, indent string) {
	for i, v := range data {
		if i%valuesPerLine == 0 {
			if i > 0 {
				fmt.Fprintf(w, ",\n")
			}
			fmt.Fprintf(w, "%v", indent)
		} else {
			fmt.Fprintf(w, ",")
		}
		fmt.Fprintf(w, "%5d", v)
	}
	if len(data) > 0 {
		fmt.Fprintf(w, "\n")
	}
}

func splitRows(data []int, cols int) [][]int {
	if cols <= 0 {
		return nil
	}
	rows := make([][]int, 0, len(data)/cols)
	for start := 0; start+cols <= len(data); start += cols {
		rows = append(rows, data[start:start+cols])
	}
	return rows
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
