// Package numeric provides the fixed-width integer capability the cache and
// the format/parse pipeline are generic over.
//
// The engine is instantiated once per concrete integer type via Go generics;
// this package hides the per-width details (bit size, signedness, masking,
// range-checked conversion, text parse/format) behind plain generic functions
// so the rest of the module never touches strconv or unsafe directly.
package numeric
