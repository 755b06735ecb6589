package backend

import (
	"sort"

	"github.com/derekparker/trie"
)

// DirectoryEntry tells a runtime loader where a table lives and how wide its elements are.
type DirectoryEntry struct {
	Kind TableKind
	Elem ElemType
}

func (e DirectoryEntry) Tag() string {
	return e.Kind.Tag()
}

// Slot returns the name of the variable the entry refers to.
func (e DirectoryEntry) Slot() string {
	return e.Kind.TableName()
}

func (e DirectoryEntry) Width() Width {
	return e.Elem.Width()
}

// Directory is the append-only list of entries, one per emitted table, in emission order.
type Directory struct {
	entries []DirectoryEntry
}

func (d *Directory) Append(kind TableKind, elem ElemType) {
	d.entries = append(d.entries, DirectoryEntry{
		Kind: kind,
		Elem: elem,
	})
}

func (d *Directory) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the entries in emission order.
func (d *Directory) Entries() []DirectoryEntry {
	es := make([]DirectoryEntry, len(d.entries))
	copy(es, d.entries)
	return es
}

// DirectoryIndex maps directory tags to their entries. Build it with Directory.Index
// once all tables have been emitted.
type DirectoryIndex struct {
	t *trie.Trie
}

func (d *Directory) Index() *DirectoryIndex {
	t := trie.New()
	for _, e := range d.entries {
		t.Add(e.Tag(), e)
	}
	return &DirectoryIndex{
		t: t,
	}
}

func (idx *DirectoryIndex) Lookup(tag string) (DirectoryEntry, bool) {
	n, ok := idx.t.Find(tag)
	if !ok {
		return DirectoryEntry{}, false
	}
	e, ok := n.Meta().(DirectoryEntry)
	return e, ok
}

// WithPrefix returns the entries whose tags start with prefix, sorted by tag.
func (idx *DirectoryIndex) WithPrefix(prefix string) []DirectoryEntry {
	tags := idx.t.PrefixSearch(prefix)
	sort.Strings(tags)
	es := make([]DirectoryEntry, 0, len(tags))
	for _, tag := range tags {
		e, ok := idx.Lookup(tag)
		if !ok {
			continue
		}
		es = append(es, e)
	}
	return es
}
