package ordmap

import (
	"fmt"
	"testing"
)

func hashU64(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	return v
}

func hashStr(s string) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func newTestMap(capacity int) *Map[uint64, string] {
	return New(capacity, hashU64, hashStr)
}

func TestMap_AppendAndLookup(t *testing.T) {
	m := newTestMap(0)

	if !m.Append(10, "ten") {
		t.Fatal("expected append to succeed")
	}
	if !m.Append(20, "twenty") {
		t.Fatal("expected append to succeed")
	}

	if i, ok := m.LookupByFirst(10); !ok || i != 0 {
		t.Errorf("LookupByFirst(10) = %d, %v; want 0, true", i, ok)
	}
	if i, ok := m.LookupBySecond("twenty"); !ok || i != 1 {
		t.Errorf("LookupBySecond(twenty) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := m.LookupByFirst(30); ok {
		t.Error("expected miss for 30")
	}
	if _, ok := m.LookupBySecond("thirty"); ok {
		t.Error("expected miss for thirty")
	}
}

func TestMap_DuplicateKeys(t *testing.T) {
	m := newTestMap(0)
	m.Append(1, "one")

	if m.Append(1, "uno") {
		t.Error("duplicate first key must be rejected")
	}
	if m.Append(2, "one") {
		t.Error("duplicate second key must be rejected")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestMap_InsertMiddle(t *testing.T) {
	m := newTestMap(0)
	m.Append(1, "a")
	m.Append(3, "c")

	if !m.Insert(1, 2, "b") {
		t.Fatal("expected middle insert to succeed")
	}

	want := []struct {
		first  uint64
		second string
	}{{1, "a"}, {2, "b"}, {3, "c"}}

	for i, w := range want {
		f, s := m.GetAt(i)
		if f != w.first || s != w.second {
			t.Errorf("GetAt(%d) = (%d, %q), want (%d, %q)", i, f, s, w.first, w.second)
		}
	}

	// Chain links of shifted entries must still resolve.
	for i, w := range want {
		if j, ok := m.LookupByFirst(w.first); !ok || j != i {
			t.Errorf("LookupByFirst(%d) = %d, %v; want %d, true", w.first, j, ok, i)
		}
		if j, ok := m.LookupBySecond(w.second); !ok || j != i {
			t.Errorf("LookupBySecond(%q) = %d, %v; want %d, true", w.second, j, ok, i)
		}
	}
}

func TestMap_InsertFront(t *testing.T) {
	m := newTestMap(0)
	for i := 1; i <= 5; i++ {
		m.Append(uint64(i*10), fmt.Sprintf("n%d", i*10))
	}
	if !m.Insert(0, 5, "n5") {
		t.Fatal("expected front insert to succeed")
	}
	if f, s := m.GetAt(0); f != 5 || s != "n5" {
		t.Errorf("GetAt(0) = (%d, %q)", f, s)
	}
	for i := 0; i < m.Len(); i++ {
		f, s := m.GetAt(i)
		if j, ok := m.LookupByFirst(f); !ok || j != i {
			t.Errorf("LookupByFirst(%d) = %d, %v; want %d", f, j, ok, i)
		}
		if j, ok := m.LookupBySecond(s); !ok || j != i {
			t.Errorf("LookupBySecond(%q) = %d, %v; want %d", s, j, ok, i)
		}
	}
}

func TestMap_GrowConsistency(t *testing.T) {
	m := newTestMap(0)
	const n = 500 // forces several prime-doubling rehashes

	for i := 0; i < n; i++ {
		if !m.Append(uint64(i), fmt.Sprintf("name-%d", i)) {
			t.Fatalf("append %d failed", i)
		}
	}
	if m.Len() != n {
		t.Fatalf("Len = %d, want %d", m.Len(), n)
	}
	for i := 0; i < n; i++ {
		f, s := m.GetAt(i)
		if j, ok := m.LookupByFirst(f); !ok || j != i {
			t.Fatalf("LookupByFirst(%d) = %d, %v; want %d", f, j, ok, i)
		}
		if j, ok := m.LookupBySecond(s); !ok || j != i {
			t.Fatalf("LookupBySecond(%q) = %d, %v; want %d", s, j, ok, i)
		}
	}
}

func TestMap_ReplaceSecond(t *testing.T) {
	m := newTestMap(0)
	m.Append(1, "old")
	m.Append(2, "other")

	if m.ReplaceSecond(0, "other") {
		t.Error("rebinding to a name owned by another entry must fail")
	}
	if !m.ReplaceSecond(0, "new") {
		t.Fatal("expected rebind to succeed")
	}
	if _, ok := m.LookupBySecond("old"); ok {
		t.Error("old name must be unreachable after rebind")
	}
	if i, ok := m.LookupBySecond("new"); !ok || i != 0 {
		t.Errorf("LookupBySecond(new) = %d, %v; want 0, true", i, ok)
	}
	// Rebinding to the current name is a no-op success.
	if !m.ReplaceSecond(0, "new") {
		t.Error("rebinding to own name must succeed")
	}
}

func TestMap_GetAtBounds(t *testing.T) {
	m := newTestMap(0)
	m.Append(1, "one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	m.GetAt(1)
}
