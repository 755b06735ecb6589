package backend

import "testing"

func TestDirectory(t *testing.T) {
	var d Directory
	d.Append(KindAccept, ElemInt16)
	d.Append(KindBase, ElemInt32)
	d.Append(KindNulTransition, ElemState)

	if d.Len() != 3 {
		t.Fatalf("unexpected length; want: 3, got: %v", d.Len())
	}

	es := d.Entries()
	expected := []DirectoryEntry{
		{Kind: KindAccept, Elem: ElemInt16},
		{Kind: KindBase, Elem: ElemInt32},
		{Kind: KindNulTransition, Elem: ElemState},
	}
	for i, e := range expected {
		if es[i] != e {
			t.Fatalf("unexpected entry #%v; want: %+v, got: %+v", i, e, es[i])
		}
	}

	// Entries returns a copy; the directory itself cannot be modified through it.
	es[0].Elem = ElemInt32
	if d.Entries()[0].Elem != ElemInt16 {
		t.Fatalf("the directory was modified through a copy of its entries")
	}

	idx := d.Index()
	e, ok := idx.Lookup("YYTD_ID_BASE")
	if !ok {
		t.Fatalf("YYTD_ID_BASE was not found")
	}
	if e.Slot() != "yy_base" || e.Width() != Width32 {
		t.Fatalf("unexpected entry: %v %v", e.Slot(), e.Width())
	}
	if _, ok := idx.Lookup("YYTD_ID_CHK"); ok {
		t.Fatalf("YYTD_ID_CHK must not be found")
	}

	acc := idx.WithPrefix("YYTD_ID_ACC")
	if len(acc) != 1 || acc[0].Kind != KindAccept {
		t.Fatalf("unexpected prefix search result: %+v", acc)
	}
	all := idx.WithPrefix("YYTD_ID_")
	if len(all) != 3 {
		t.Fatalf("unexpected prefix search result: %+v", all)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Tag() > all[i].Tag() {
			t.Fatalf("entries must be sorted by tag: %v, %v", all[i-1].Tag(), all[i].Tag())
		}
	}
}
