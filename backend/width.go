package backend

import "math"

// WidthThreshold is the smallest bound that no longer fits a 16-bit table.
// Table values are used as signed indexes, so the limit is MaxInt16, not MaxUint16.
const WidthThreshold = math.MaxInt16

// Width is the size of a table element in bytes.
type Width int

const (
	Width16 = Width(2)
	Width32 = Width(4)
)

func (w Width) Int() int {
	return int(w)
}

// ChooseWidth returns the element width for a table whose bound is bound.
func ChooseWidth(bound int, longAlign bool) Width {
	if bound >= WidthThreshold || longAlign {
		return Width32
	}
	return Width16
}

// ElemType is the element type of a declared table.
type ElemType int

const (
	ElemInt16 = ElemType(iota + 1)
	ElemInt32
	// ElemState is a reference-sized state token. NUL transitions use it under the full-speed
	// representation, where a state is a position in the compressed transition table.
	ElemState
)

func (e ElemType) Width() Width {
	switch e {
	case ElemInt16:
		return Width16
	case ElemInt32, ElemState:
		return Width32
	}
	return 0
}

func (e ElemType) String() string {
	switch e {
	case ElemInt16:
		return "int16"
	case ElemInt32:
		return "int32"
	case ElemState:
		return "state"
	}
	return "invalid"
}

func intType(w Width) ElemType {
	if w == Width32 {
		return ElemInt32
	}
	return ElemInt16
}

// MaxValue returns the largest magnitude stored in data, the bound of the value-bounded kinds.
func MaxValue(data []int) int {
	b := 0
	for _, v := range data {
		if v < 0 {
			v = -v
		}
		if v > b {
			b = v
		}
	}
	return b
}
