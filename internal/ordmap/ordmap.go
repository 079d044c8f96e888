package ordmap

import "fmt"

const minBuckets = 17

// Map is an insertion-ordered map indexed by two independent keys.
// The zero value is not usable; construct with New.
type Map[F comparable, S comparable] struct {
	hashF func(F) uint64
	hashS func(S) uint64

	// bucketsF/bucketsS hold the head entry index of each chain, -1 if empty.
	bucketsF []int32
	bucketsS []int32
	entries  []entry[F, S]
}

// entry stores both keys, both hash codes and one intrusive chain link per
// index, so a single backing array serves two hash tables.
type entry[F comparable, S comparable] struct {
	first  F
	second S
	hashF  uint64
	hashS  uint64
	nextF  int32
	nextS  int32
}

// New creates an empty Map using the given hash functions, sized for at
// least capacity entries.
func New[F comparable, S comparable](capacity int, hashF func(F) uint64, hashS func(S) uint64) *Map[F, S] {
	n := nextPrime(capacity)
	if n < minBuckets {
		n = minBuckets
	}
	m := &Map[F, S]{
		hashF:    hashF,
		hashS:    hashS,
		bucketsF: make([]int32, n),
		bucketsS: make([]int32, n),
	}
	if capacity > 0 {
		m.entries = make([]entry[F, S], 0, capacity)
	}
	resetBuckets(m.bucketsF)
	resetBuckets(m.bucketsS)
	return m
}

// Len returns the number of entries.
func (m *Map[F, S]) Len() int { return len(m.entries) }

// Insert places the pair (first, second) at the given index, shifting later
// entries up. It returns false without modifying the map if either key is
// already present. index must be in [0, Len()].
func (m *Map[F, S]) Insert(index int, first F, second S) bool {
	if index < 0 || index > len(m.entries) {
		panic(fmt.Sprintf("ordmap: insert index %d out of range [0,%d]", index, len(m.entries)))
	}
	hf := m.hashF(first)
	hs := m.hashS(second)
	if m.findFirst(first, hf) >= 0 || m.findSecond(second, hs) >= 0 {
		return false
	}
	if len(m.entries) >= len(m.bucketsF) {
		m.grow()
	}

	// Every stored link at or beyond the insertion point moves up by one.
	shiftLinks(m.bucketsF, int32(index))
	shiftLinks(m.bucketsS, int32(index))
	for i := range m.entries {
		if m.entries[i].nextF >= int32(index) {
			m.entries[i].nextF++
		}
		if m.entries[i].nextS >= int32(index) {
			m.entries[i].nextS++
		}
	}

	m.entries = append(m.entries, entry[F, S]{})
	copy(m.entries[index+1:], m.entries[index:])

	bf := hf % uint64(len(m.bucketsF))
	bs := hs % uint64(len(m.bucketsS))
	m.entries[index] = entry[F, S]{
		first:  first,
		second: second,
		hashF:  hf,
		hashS:  hs,
		nextF:  m.bucketsF[bf],
		nextS:  m.bucketsS[bs],
	}
	m.bucketsF[bf] = int32(index)
	m.bucketsS[bs] = int32(index)
	return true
}

// Append inserts the pair at the end. It returns false if either key is
// already present.
func (m *Map[F, S]) Append(first F, second S) bool {
	return m.Insert(len(m.entries), first, second)
}

// LookupByFirst returns the index of the entry with the given first key.
func (m *Map[F, S]) LookupByFirst(first F) (int, bool) {
	i := m.findFirst(first, m.hashF(first))
	return i, i >= 0
}

// LookupBySecond returns the index of the entry with the given second key.
func (m *Map[F, S]) LookupBySecond(second S) (int, bool) {
	i := m.findSecond(second, m.hashS(second))
	return i, i >= 0
}

// GetAt returns the pair stored at index. It panics if index is out of range.
func (m *Map[F, S]) GetAt(index int) (F, S) {
	if index < 0 || index >= len(m.entries) {
		panic(fmt.Sprintf("ordmap: index %d out of range [0,%d)", index, len(m.entries)))
	}
	e := &m.entries[index]
	return e.first, e.second
}

// ReplaceSecond rebinds the second key of the entry at index. It returns
// false if newSecond already belongs to a different entry.
func (m *Map[F, S]) ReplaceSecond(index int, newSecond S) bool {
	if index < 0 || index >= len(m.entries) {
		panic(fmt.Sprintf("ordmap: index %d out of range [0,%d)", index, len(m.entries)))
	}
	hs := m.hashS(newSecond)
	if j := m.findSecond(newSecond, hs); j >= 0 {
		return j == index
	}
	m.unlinkSecond(index)
	e := &m.entries[index]
	e.second = newSecond
	e.hashS = hs
	bs := hs % uint64(len(m.bucketsS))
	e.nextS = m.bucketsS[bs]
	m.bucketsS[bs] = int32(index)
	return true
}

func (m *Map[F, S]) findFirst(first F, hf uint64) int {
	for i := m.bucketsF[hf%uint64(len(m.bucketsF))]; i >= 0; i = m.entries[i].nextF {
		if m.entries[i].hashF == hf && m.entries[i].first == first {
			return int(i)
		}
	}
	return -1
}

func (m *Map[F, S]) findSecond(second S, hs uint64) int {
	for i := m.bucketsS[hs%uint64(len(m.bucketsS))]; i >= 0; i = m.entries[i].nextS {
		if m.entries[i].hashS == hs && m.entries[i].second == second {
			return int(i)
		}
	}
	return -1
}

func (m *Map[F, S]) unlinkSecond(index int) {
	e := &m.entries[index]
	b := e.hashS % uint64(len(m.bucketsS))
	i := m.bucketsS[b]
	if i == int32(index) {
		m.bucketsS[b] = e.nextS
		return
	}
	for ; i >= 0; i = m.entries[i].nextS {
		if m.entries[i].nextS == int32(index) {
			m.entries[i].nextS = e.nextS
			return
		}
	}
}

// grow doubles the bucket count to the next prime and rehashes every entry.
func (m *Map[F, S]) grow() {
	n := nextPrime(len(m.bucketsF) * 2)
	m.bucketsF = make([]int32, n)
	m.bucketsS = make([]int32, n)
	resetBuckets(m.bucketsF)
	resetBuckets(m.bucketsS)
	for i := range m.entries {
		e := &m.entries[i]
		bf := e.hashF % uint64(n)
		bs := e.hashS % uint64(n)
		e.nextF = m.bucketsF[bf]
		e.nextS = m.bucketsS[bs]
		m.bucketsF[bf] = int32(i)
		m.bucketsS[bs] = int32(i)
	}
}

func shiftLinks(buckets []int32, from int32) {
	for i, h := range buckets {
		if h >= from {
			buckets[i] = h + 1
		}
	}
}

func resetBuckets(buckets []int32) {
	for i := range buckets {
		buckets[i] = -1
	}
}

// nextPrime returns the smallest prime >= n. Trial division is fine here:
// growth happens a handful of times during construction.
func nextPrime(n int) int {
	if n < 2 {
		return 2
	}
	for {
		if isPrime(n) {
			return n
		}
		n++
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
