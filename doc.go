// Package enumgo provides reflection-free introspection and manipulation for
// closed value sets: named, finite sets of integer-valued constants.
//
// Given an ordered list of (name, value, tags) members, enumgo builds a
// reusable metadata cache (an ordered bidirectional name/value index with
// duplicate handling and contiguity detection) and, on top of it, a flag
// algebra engine for bitmask domains and a pluggable text format/parse
// pipeline. The engine is generic over every fixed-width integer type, so a
// single implementation serves int8 through uint64.
//
// # Quick Start
//
//	cache := enumgo.For(enumgo.Domain[uint8]{
//	    Key:   "fs.Access",
//	    Flags: true,
//	    Members: []enumgo.RawMember[uint8]{
//	        {Name: "None", Value: 0},
//	        {Name: "Read", Value: 1},
//	        {Name: "Write", Value: 2},
//	        {Name: "ReadWrite", Value: 3},
//	    },
//	})
//
//	m, _ := cache.GetByName("Read", false)               // m.Value == 1
//	s, _ := cache.FormatFlags(3, ", ")                   // "ReadWrite" (exact member wins)
//	v, _ := cache.ParseFlags("Read, Write", false, ", ") // v == 3
//
// # Duplicate values
//
// When several names share one value, the first-seen name becomes the
// primary and later ones become aliases; a PrimaryTag on a later member
// swaps the roles. Lookups resolve both, enumeration can include either.
//
// # Selectors
//
// Formatting and parsing walk a caller-supplied selector chain; the first
// strategy that produces a result wins. Besides the built-in name, decimal,
// hex and tag-text strategies, custom formatter functions can be registered
// process-wide or per domain and are assigned stable selector ids.
//
// # Concurrency
//
// Caches build at most once per domain key even under concurrent first use,
// and are immutable afterwards. Lazily memoized derived indexes (the
// case-folding name index, per-selector reverse-lookup tables, the
// membership bitmap) are pure functions of the base cache, published by
// atomic pointer swap; redundant concurrent computation is benign. No
// operation blocks or takes a lock on the query path.
package enumgo
