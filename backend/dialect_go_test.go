package backend

import (
	"fmt"
	"go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"
)

var (
	goDeclRE = regexp.MustCompile(`(?m)^var (yy_\w+) (?:= \[\d+\](?:\[\d+\])?|\[\])(\w+)`)
	goDmapRE = regexp.MustCompile(`\{(YYTD_ID_\w+), &(\w+), (\d+)\}`)
)

func TestGoDialect_ParsesAsGo(t *testing.T) {
	for name, run := range emitRuns {
		for _, omit := range []bool{false, true} {
			t.Run(fmt.Sprintf("%v, omit tables: %v", name, omit), func(t *testing.T) {
				var opts []Option
				if omit {
					opts = append(opts, OmitTables())
				}
				b, err := New(IDGo, opts...)
				if err != nil {
					t.Fatal(err)
				}
				run(b)

				var src strings.Builder
				src.WriteString(strings.Join(b.Skeleton(), "\n"))
				src.WriteString("\n\n")
				src.WriteString(render(t, b))

				_, err = parser.ParseFile(token.NewFileSet(), "tables.go", src.String(), parser.AllErrors)
				if err != nil {
					t.Fatalf("generated source is not valid Go: %v\n%v", err, src.String())
				}

				widths := map[string]Width{}
				for _, m := range goDeclRE.FindAllStringSubmatch(src.String(), -1) {
					switch m[2] {
					case "int16":
						widths[m[1]] = Width16
					case "int32":
						widths[m[1]] = Width32
					}
				}
				if strings.Contains(src.String(), "yy_transition") {
					// The full-speed table is declared with a struct type whose members carry the width.
					if strings.Contains(src.String(), "yy_verify int32") {
						widths["yy_transition"] = Width32
					} else {
						widths["yy_transition"] = Width16
					}
				}

				dmap := goDmapRE.FindAllStringSubmatch(src.String(), -1)
				entries := b.Directory().Entries()
				if len(dmap) != len(entries) {
					t.Fatalf("unexpected directory length; want: %v, got: %v", len(entries), len(dmap))
				}
				for i, e := range entries {
					m := dmap[i]
					if m[1] != e.Tag() || m[2] != e.Slot() || m[3] != fmt.Sprint(e.Width().Int()) {
						t.Fatalf("unexpected directory entry #%v; want: %v %v %v, got: %v", i, e.Tag(), e.Slot(), e.Width(), m[0])
					}
					if widths[e.Slot()] != e.Width() {
						t.Fatalf("width of %v diverges; declaration: %v, directory: %v", e.Slot(), widths[e.Slot()], e.Width())
					}
				}
			})
		}
	}
}

func TestGoDialect_Declaration(t *testing.T) {
	b, _ := New(IDGo)
	b.Accept([]int{0, 3, 4})

	var src strings.Builder
	b.WriteTo(&src)
	if !strings.Contains(src.String(), "var yy_accept = [3]int16{0, 3, 4}") {
		t.Fatalf("unexpected declaration:\n%v", src.String())
	}

	b, _ = New(IDGo, OmitTables())
	b.Accept([]int{0, 3, 4})

	src.Reset()
	b.WriteTo(&src)
	if !strings.Contains(src.String(), "const YY_ACCEPT_LOLEN = 3") || !strings.Contains(src.String(), "var yy_accept []int16") {
		t.Fatalf("unexpected placeholder:\n%v", src.String())
	}
}
