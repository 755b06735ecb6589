package error

import (
	"fmt"
	"strings"
)

// TableError describes an inconsistency found in one table of an automaton.
// Index is the offending element, or -1 when the error concerns the whole table.
type TableError struct {
	Cause      error
	SourceName string
	Table      string
	Index      int
}

func NewTableError(table string, index int, format string, a ...interface{}) *TableError {
	return &TableError{
		Cause: fmt.Errorf(format, a...),
		Table: table,
		Index: index,
	}
}

func (e *TableError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Table != "" {
		if e.Index >= 0 {
			fmt.Fprintf(&b, "%v[%v]: ", e.Table, e.Index)
		} else {
			fmt.Fprintf(&b, "%v: ", e.Table)
		}
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)

	return b.String()
}

func (e *TableError) Unwrap() error {
	return e.Cause
}

type TableErrors []*TableError

func (e TableErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}

	return b.String()
}

// SetSourceName attaches a source name to every error that does not have one yet.
func (e TableErrors) SetSourceName(name string) {
	for _, err := range e {
		if err.SourceName == "" {
			err.SourceName = name
		}
	}
}
