package enumgo

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/enumgo/internal/numeric"
	"github.com/hupe1980/enumgo/internal/ordmap"
)

// Domain describes one closed value set: an ordered raw member list plus the
// flag-domain marker. The host owns the declaration; the cache owns every
// derived structure.
type Domain[T Integer] struct {
	// Key is the process-unique identifier of the domain, e.g. "fs.FileMode".
	Key string

	// Flags marks the domain as a flag domain: valid values are bitwise-OR
	// combinations of the declared power-of-two members.
	Flags bool

	// Members is the ordered raw member list. Typically near-sorted by value.
	Members []RawMember[T]
}

// Cache is the built metadata for one domain: an ordered bidirectional
// name/value index, the alias table, the contiguity summary and the flag
// union. It is immutable after construction; the lazily memoized derived
// indexes below are pure functions of the base data and may be recomputed
// redundantly under concurrent first use.
type Cache[T Integer] struct {
	key   string
	flags bool

	index    *ordmap.Map[uint64, string] // raw value bits -> name, value-ascending
	members  []Member[T]                 // primaries, aligned with index order
	aliases  []Member[T]                 // stable-sorted by value
	aliasIdx map[string]int              // alias name -> aliases position

	minValue   T
	maxValue   T
	contiguous bool
	flagUnion  T

	foldIndex atomic.Pointer[map[string]foldHit]
	defined   atomic.Pointer[roaring64.Bitmap]
	reverse   atomic.Pointer[map[Selector]*reverseIndex[T]]
}

type foldHit struct {
	alias bool
	pos   int
}

// New builds a cache for the domain without touching the process-wide
// registry. Construction never fails on valid input; a malformed member
// (empty or duplicate name) panics, since it indicates a host programming
// error. An empty member list yields a valid, empty cache.
func New[T Integer](d Domain[T], opts ...Option) *Cache[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Cache[T]{
		key:   d.Key,
		flags: d.Flags,
		index: ordmap.New[uint64, string](len(d.Members), mix64, hashString),
	}
	if n := len(d.Members); n > 0 {
		c.members = make([]Member[T], 0, n)
	}

	for _, raw := range d.Members {
		if raw.Name == "" {
			panic(fmt.Sprintf("enumgo: empty member name in domain %q", d.Key))
		}
		info := o.inspect(raw.Tags)
		m := Member[T]{
			Name:    raw.Name,
			Value:   raw.Value,
			Tags:    hoistTag(raw.Tags, info.TextIndex),
			text:    info.Text,
			hasText: info.HasText,
		}

		bits := numeric.ToUint64(raw.Value)
		if at, ok := c.index.LookupByFirst(bits); ok {
			// Duplicate value: the first-seen name stays primary unless this
			// member carries the force-primary marker, in which case the two
			// swap roles.
			if info.ForcePrimary {
				prior := c.members[at]
				if !c.index.ReplaceSecond(at, m.Name) {
					panic(fmt.Sprintf("enumgo: duplicate member name %q in domain %q", m.Name, d.Key))
				}
				c.members[at] = m
				m = prior
			} else if _, taken := c.index.LookupBySecond(m.Name); taken {
				panic(fmt.Sprintf("enumgo: duplicate member name %q in domain %q", m.Name, d.Key))
			}
			c.aliases = append(c.aliases, m)
			continue
		}

		// Input is typically near-sorted, so scan backward from the tail for
		// the value-ascending position. Adversarial unsorted input degrades
		// construction to O(n^2); construction runs once per domain.
		pos := len(c.members)
		for pos > 0 && c.members[pos-1].Value > raw.Value {
			pos--
		}
		if !c.index.Insert(pos, bits, m.Name) {
			panic(fmt.Sprintf("enumgo: duplicate member name %q in domain %q", m.Name, d.Key))
		}
		c.members = slices.Insert(c.members, pos, m)

		if c.flags && numeric.IsFlagBit(raw.Value) {
			c.flagUnion |= raw.Value
		}
	}

	slices.SortStableFunc(c.aliases, func(a, b Member[T]) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		default:
			return 0
		}
	})

	c.aliasIdx = make(map[string]int, len(c.aliases))
	for i, a := range c.aliases {
		if _, ok := c.index.LookupBySecond(a.Name); ok {
			panic(fmt.Sprintf("enumgo: alias %q collides with a primary name in domain %q", a.Name, d.Key))
		}
		if _, ok := c.aliasIdx[a.Name]; ok {
			panic(fmt.Sprintf("enumgo: duplicate member name %q in domain %q", a.Name, d.Key))
		}
		c.aliasIdx[a.Name] = i
	}

	if n := len(c.members); n > 0 {
		c.minValue = c.members[0].Value
		c.maxValue = c.members[n-1].Value
		span := numeric.Ordered(c.maxValue) - numeric.Ordered(c.minValue)
		c.contiguous = span+1 == uint64(n)
	}

	o.logger.WithDomain(d.Key).Debug("cache built",
		"members", len(c.members),
		"aliases", len(c.aliases),
		"contiguous", c.contiguous,
		"flags", c.flags,
	)

	return c
}

// Key returns the domain identifier.
func (c *Cache[T]) Key() string { return c.key }

// IsFlagDomain reports whether the domain was declared as a flag domain.
func (c *Cache[T]) IsFlagDomain() bool { return c.flags }

// FlagUnion returns the bitwise OR of every power-of-two primary value.
// It is zero for non-flag domains.
func (c *Cache[T]) FlagUnion() T { return c.flagUnion }

// Bounds returns the smallest and largest primary value. ok is false for an
// empty cache.
func (c *Cache[T]) Bounds() (minValue, maxValue T, ok bool) {
	if len(c.members) == 0 {
		return 0, 0, false
	}
	return c.minValue, c.maxValue, true
}

// IsContiguous reports whether the primary values form an unbroken ascending
// run, which lets membership tests skip the table probe.
func (c *Cache[T]) IsContiguous() bool { return c.contiguous }

// Count returns the number of members, optionally counting aliases.
func (c *Cache[T]) Count(includeAliases bool) int {
	if includeAliases {
		return len(c.members) + len(c.aliases)
	}
	return len(c.members)
}

// GetByValue returns the primary member with the given value.
func (c *Cache[T]) GetByValue(v T) (Member[T], bool) {
	if len(c.members) == 0 {
		return Member[T]{}, false
	}
	if c.contiguous {
		if v < c.minValue || v > c.maxValue {
			return Member[T]{}, false
		}
		return c.members[numeric.Ordered(v)-numeric.Ordered(c.minValue)], true
	}
	i, ok := c.index.LookupByFirst(numeric.ToUint64(v))
	if !ok {
		return Member[T]{}, false
	}
	return c.members[i], true
}

// GetByName returns the member with the given name, primary or alias.
// With caseInsensitive set, a lazily built case-folding index is consulted
// after the exact tables miss; exact matches always win.
func (c *Cache[T]) GetByName(name string, caseInsensitive bool) (Member[T], bool) {
	if i, ok := c.index.LookupBySecond(name); ok {
		return c.members[i], true
	}
	if i, ok := c.aliasIdx[name]; ok {
		return c.aliases[i], true
	}
	if !caseInsensitive {
		return Member[T]{}, false
	}
	idx := c.foldIndex.Load()
	if idx == nil {
		built := c.buildFoldIndex()
		c.foldIndex.Store(&built)
		idx = &built
	}
	hit, ok := (*idx)[foldName(name)]
	if !ok {
		return Member[T]{}, false
	}
	if hit.alias {
		return c.aliases[hit.pos], true
	}
	return c.members[hit.pos], true
}

// IsDefined reports whether v is a declared value. Contiguous domains answer
// from the range check alone; sparse domains consult a lazily built bitmap
// over the normalized value space.
func (c *Cache[T]) IsDefined(v T) bool {
	if len(c.members) == 0 {
		return false
	}
	if c.contiguous {
		return v >= c.minValue && v <= c.maxValue
	}
	return c.definedSet().Contains(numeric.Ordered(v))
}

// ContainsAll reports whether every given value is a declared value.
func (c *Cache[T]) ContainsAll(values ...T) bool {
	for _, v := range values {
		if !c.IsDefined(v) {
			return false
		}
	}
	return true
}

// Enumerate yields members in ascending value order. With includeAliases set,
// primaries and aliases are merge-joined by value; the primary precedes its
// aliases. The sequence is restartable.
func (c *Cache[T]) Enumerate(includeAliases bool) iter.Seq[Member[T]] {
	return func(yield func(Member[T]) bool) {
		if !includeAliases {
			for _, m := range c.members {
				if !yield(m) {
					return
				}
			}
			return
		}
		i, j := 0, 0
		for i < len(c.members) && j < len(c.aliases) {
			if c.aliases[j].Value < c.members[i].Value {
				if !yield(c.aliases[j]) {
					return
				}
				j++
			} else {
				if !yield(c.members[i]) {
					return
				}
				i++
			}
		}
		for ; i < len(c.members); i++ {
			if !yield(c.members[i]) {
				return
			}
		}
		for ; j < len(c.aliases); j++ {
			if !yield(c.aliases[j]) {
				return
			}
		}
	}
}

// Members returns the members in ascending value order as a slice.
func (c *Cache[T]) Members(includeAliases bool) []Member[T] {
	out := make([]Member[T], 0, c.Count(includeAliases))
	for m := range c.Enumerate(includeAliases) {
		out = append(out, m)
	}
	return out
}

// Names returns the member names in ascending value order.
func (c *Cache[T]) Names(includeAliases bool) []string {
	out := make([]string, 0, c.Count(includeAliases))
	for m := range c.Enumerate(includeAliases) {
		out = append(out, m.Name)
	}
	return out
}

// definedSet returns the membership bitmap, building it on first use.
// Redundant concurrent builds are benign: the result is a pure function of
// the immutable member list and is published by pointer swap.
func (c *Cache[T]) definedSet() *roaring64.Bitmap {
	if bm := c.defined.Load(); bm != nil {
		return bm
	}
	bm := roaring64.New()
	for _, m := range c.members {
		bm.Add(numeric.Ordered(m.Value))
	}
	c.defined.Store(bm)
	return bm
}

func (c *Cache[T]) buildFoldIndex() map[string]foldHit {
	idx := make(map[string]foldHit, len(c.members)+len(c.aliases))
	for i, m := range c.members {
		key := foldName(m.Name)
		if _, ok := idx[key]; !ok {
			idx[key] = foldHit{pos: i}
		}
	}
	for i, a := range c.aliases {
		key := foldName(a.Name)
		if _, ok := idx[key]; !ok {
			idx[key] = foldHit{alias: true, pos: i}
		}
	}
	return idx
}

func foldName(s string) string { return strings.ToLower(s) }

// hoistTag copies the tag list with the preferred textual tag moved to the
// front. The result never shares a backing array with the input, so later
// host mutations of the raw slice cannot reach the cache.
func hoistTag(tags []Tag, at int) []Tag {
	if len(tags) == 0 {
		return nil
	}
	if at <= 0 {
		return slices.Clone(tags)
	}
	out := make([]Tag, 0, len(tags))
	out = append(out, tags[at])
	out = append(out, tags[:at]...)
	out = append(out, tags[at+1:]...)
	return out
}

func mix64(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}

// hashString is FNV-1a.
func hashString(s string) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
