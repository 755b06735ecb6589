package backend

import (
	"fmt"
	"testing"
)

func TestChooseWidth(t *testing.T) {
	tests := []struct {
		bound     int
		longAlign bool
		expected  Width
	}{
		{bound: 0, longAlign: false, expected: Width16},
		{bound: 500, longAlign: false, expected: Width16},
		{bound: 32766, longAlign: false, expected: Width16},
		{bound: 32767, longAlign: false, expected: Width32},
		{bound: 40000, longAlign: false, expected: Width32},
		{bound: 0, longAlign: true, expected: Width32},
		{bound: 32766, longAlign: true, expected: Width32},
		{bound: 1 << 20, longAlign: true, expected: Width32},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("bound: %v, long align: %v", tt.bound, tt.longAlign), func(t *testing.T) {
			w := ChooseWidth(tt.bound, tt.longAlign)
			if w != tt.expected {
				t.Fatalf("unexpected width; want: %v, got: %v", tt.expected, w)
			}
		})
	}
}

func TestChooseWidth_AllBoundsBelowThreshold(t *testing.T) {
	for b := 0; b < WidthThreshold; b++ {
		if w := ChooseWidth(b, false); w != Width16 {
			t.Fatalf("unexpected width for bound %v; want: %v, got: %v", b, Width16, w)
		}
	}
	for _, b := range []int{WidthThreshold, WidthThreshold + 1, 65535, 65536, 1 << 30} {
		if w := ChooseWidth(b, false); w != Width32 {
			t.Fatalf("unexpected width for bound %v; want: %v, got: %v", b, Width32, w)
		}
	}
}

func TestMaxValue(t *testing.T) {
	tests := []struct {
		data     []int
		expected int
	}{
		{data: nil, expected: 0},
		{data: []int{0, 0, 0}, expected: 0},
		{data: seq(40000, func(i int) int { return i % 130 }), expected: 129},
		{data: []int{0, 500, 3}, expected: 500},
		{data: []int{0, -40000, 3}, expected: 40000},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			if b := MaxValue(tt.data); b != tt.expected {
				t.Fatalf("unexpected bound; want: %v, got: %v", tt.expected, b)
			}
		})
	}
}

func TestElemType_Width(t *testing.T) {
	tests := map[ElemType]Width{
		ElemInt16: Width16,
		ElemInt32: Width32,
		ElemState: Width32,
	}
	for elem, expected := range tests {
		if w := elem.Width(); w != expected {
			t.Fatalf("unexpected width of %v; want: %v, got: %v", elem, expected, w)
		}
	}
}
