// Package ordmap implements an insertion-ordered bidirectional map: one
// order-preserving entry array backing two independent hash-chained indexes,
// one per key side. Lookups by either key are O(1) average; inserting in the
// middle is O(n) because every later entry shifts and both chains need their
// links repaired. The structure only mutates during one-time cache
// construction, never on the query path, so the asymmetry is deliberate.
package ordmap
