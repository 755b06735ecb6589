package compressor

import (
	"fmt"
	"sort"
)

type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *OriginalTable) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

type Compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor = &RowDisplacementTable{}
	_ Compressor = &DefaultDisplacementTable{}
)

// ForbiddenValue marks a slot of Bounds that no row owns.
const ForbiddenValue = -1

// RowDisplacementTable overlays the rows of a table into one vector. Row r starts at
// RowDisplacement[r]; a slot belongs to row r only when Bounds holds r there. Entries
// equal to EmptyValue are not stored.
//
// In scanner terms RowDisplacement is the base table, Entries the next-state table and
// Bounds the check table.
type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	empties := make([]int, orig.rowCount)
	for i := range empties {
		empties[i] = tab.EmptyValue
	}

	c := displace(orig, empties, tab.EmptyValue)

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = c.entries
	tab.Bounds = c.bounds
	tab.RowDisplacement = c.rowDisplacement

	return nil
}

// DefaultDisplacementTable is a RowDisplacementTable where every row has its own default
// value, the value occurring most often in the row. Only entries that differ from the row's
// default are stored, so a row made of a few distinct transitions costs a few slots.
//
// In scanner terms Defaults is the default table.
type DefaultDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	// FillValue is written to slots of Entries that no row owns.
	FillValue       int
	Entries         []int
	Bounds          []int
	RowDisplacement []int
	Defaults        []int
}

func NewDefaultDisplacementTable(fillValue int) *DefaultDisplacementTable {
	return &DefaultDisplacementTable{
		FillValue: fillValue,
	}
}

func (tab *DefaultDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.FillValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.Defaults[row], nil
	}
	return tab.Entries[d+col], nil
}

func (tab *DefaultDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *DefaultDisplacementTable) Compress(orig *OriginalTable) error {
	defaults := make([]int, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		defaults[r] = mostFrequent(orig.row(r))
	}

	c := displace(orig, defaults, tab.FillValue)

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = c.entries
	tab.Bounds = c.bounds
	tab.RowDisplacement = c.rowDisplacement
	tab.Defaults = defaults

	return nil
}

// mostFrequent returns the value occurring most often in row. Ties go to the smaller value.
func mostFrequent(row []int) int {
	freq := map[int]int{}
	for _, v := range row {
		freq[v]++
	}
	best, bestCount := 0, -1
	for v, n := range freq {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best
}

type rowInfo struct {
	rowNum        int
	nonEmptyCount int
	nonEmptyCol   []int
}

type displacement struct {
	entries         []int
	bounds          []int
	rowDisplacement []int
}

// displace overlays the rows of orig. An entry of row r is stored only when it differs from
// empties[r]. Rows with more stored entries are placed first.
func displace(orig *OriginalTable, empties []int, fillValue int) *displacement {
	rowInfo := make([]rowInfo, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		rowInfo[r].rowNum = r
		for col, v := range orig.row(r) {
			if v == empties[r] {
				continue
			}
			rowInfo[r].nonEmptyCount++
			rowInfo[r].nonEmptyCol = append(rowInfo[r].nonEmptyCol, col)
		}
	}
	sort.SliceStable(rowInfo, func(i int, j int) bool {
		return rowInfo[i].nonEmptyCount > rowInfo[j].nonEmptyCount
	})

	var entries []int
	var bounds []int
	grow := func(size int) {
		for len(bounds) < size {
			entries = append(entries, fillValue)
			bounds = append(bounds, ForbiddenValue)
		}
	}
	grow(orig.colCount)

	rowDisplacement := make([]int, orig.rowCount)
	resultBottom := orig.colCount
	nextRowDisplacement := 0
	for _, rInfo := range rowInfo {
		if rInfo.nonEmptyCount <= 0 {
			continue
		}

		for {
			grow(nextRowDisplacement + orig.colCount)

			isOverlapped := false
			for _, col := range rInfo.nonEmptyCol {
				if bounds[nextRowDisplacement+col] == ForbiddenValue {
					continue
				}
				isOverlapped = true
				break
			}
			if isOverlapped {
				nextRowDisplacement++
				continue
			}

			rowDisplacement[rInfo.rowNum] = nextRowDisplacement
			for _, col := range rInfo.nonEmptyCol {
				entries[nextRowDisplacement+col] = orig.entries[(rInfo.rowNum*orig.colCount)+col]
				bounds[nextRowDisplacement+col] = rInfo.rowNum
			}
			resultBottom = nextRowDisplacement + orig.colCount
			nextRowDisplacement++
			break
		}
	}

	return &displacement{
		entries:         entries[:resultBottom],
		bounds:          bounds[:resultBottom],
		rowDisplacement: rowDisplacement,
	}
}
