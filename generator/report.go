package generator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nihei9/lextab/automaton"
	"github.com/nihei9/lextab/backend"
)

type TableRow struct {
	Kind      backend.TableKind `json:"kind"`
	Name      string            `json:"name"`
	Count     int               `json:"count"`
	Width     int               `json:"width"`
	Backed    bool              `json:"backed"`
	Deferred  bool              `json:"deferred,omitempty"`
	Footprint int               `json:"footprint"`
}

type DirectoryRow struct {
	Tag   string `json:"tag"`
	Slot  string `json:"slot"`
	Width int    `json:"width"`
}

// Report summarizes one generation run.
type Report struct {
	Automaton string          `json:"automaton"`
	Mode      automaton.Mode  `json:"mode"`
	Backend   backend.ID      `json:"backend"`
	Tables    []*TableRow     `json:"tables"`
	Directory []*DirectoryRow `json:"directory"`
	Footprint int             `json:"footprint"`
}

func newReport(b backend.Backend, a *automaton.Automaton) *Report {
	r := &Report{
		Automaton: a.Name,
		Mode:      a.Mode,
		Backend:   b.ID(),
		Footprint: b.Footprint(),
	}
	for _, t := range b.Tables() {
		row := &TableRow{
			Kind:     t.Kind,
			Name:     t.Name,
			Count:    t.ElementCount,
			Width:    t.Width().Int(),
			Backed:   t.Backed,
			Deferred: t.Deferred,
		}
		if !t.Deferred {
			row.Footprint = t.Footprint()
		}
		r.Tables = append(r.Tables, row)
	}
	for _, e := range b.Directory().Entries() {
		r.Directory = append(r.Directory, &DirectoryRow{
			Tag:   e.Tag(),
			Slot:  e.Slot(),
			Width: e.Width().Int(),
		})
	}
	return r
}

func ReadReport(r io.Reader) (*Report, error) {
	rep := &Report{}
	err := json.NewDecoder(r).Decode(rep)
	if err != nil {
		return nil, fmt.Errorf("failed to decode a report: %w", err)
	}
	return rep, nil
}

func (r *Report) Write(w io.Writer) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}
