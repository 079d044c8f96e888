package enumgo

import (
	"iter"
	"strings"

	"github.com/hupe1980/enumgo/internal/numeric"
)

// IsValidFlagCombination reports whether every set bit of v belongs to the
// flag union. Always false on non-flag domains.
func (c *Cache[T]) IsValidFlagCombination(v T) bool {
	return c.flags && v&c.flagUnion == v
}

// HasAnyFlags reports whether v has any bit of mask set. Without a mask it
// reports whether v has any flag set at all.
func (c *Cache[T]) HasAnyFlags(v T, mask ...T) (bool, error) {
	m, err := c.checkOperands(v, mask)
	if err != nil {
		return false, err
	}
	if len(mask) == 0 {
		return v != 0, nil
	}
	return v&m != 0, nil
}

// HasAllFlags reports whether v has every bit of mask set. Without a mask the
// whole flag union is required.
func (c *Cache[T]) HasAllFlags(v T, mask ...T) (bool, error) {
	m, err := c.checkOperands(v, mask)
	if err != nil {
		return false, err
	}
	if len(mask) == 0 {
		m = c.flagUnion
	}
	return v&m == m, nil
}

// CommonFlags returns the flags present in both a and b.
func (c *Cache[T]) CommonFlags(a, b T) (T, error) {
	if _, err := c.checkOperands(a, []T{b}); err != nil {
		return 0, err
	}
	return a & b, nil
}

// CombineFlags returns the union of the given flag combinations.
func (c *Cache[T]) CombineFlags(values ...T) (T, error) {
	if !c.flags {
		return 0, ErrNotFlagDomain
	}
	var out T
	for _, v := range values {
		if err := c.validateFlags(v); err != nil {
			return 0, err
		}
		out |= v
	}
	return out, nil
}

// ToggleFlags flips the bits of mask in v. Without a mask every flag of the
// union is flipped.
func (c *Cache[T]) ToggleFlags(v T, mask ...T) (T, error) {
	m, err := c.checkOperands(v, mask)
	if err != nil {
		return 0, err
	}
	if len(mask) == 0 {
		m = c.flagUnion
	}
	return v ^ m, nil
}

// ExcludeFlags removes the bits of mask from v.
func (c *Cache[T]) ExcludeFlags(v, mask T) (T, error) {
	if _, err := c.checkOperands(v, []T{mask}); err != nil {
		return 0, err
	}
	return v &^ mask, nil
}

// GetFlags decomposes v into its single-bit flags in ascending bit order,
// scanning candidate bits up to the union's highest bit. The sequence is
// lazy and restartable; each enumeration recomputes it.
//
// Bits of v outside the union are skipped. Use IsValidFlagCombination to
// reject such values up front.
func (c *Cache[T]) GetFlags(v T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if !c.flags {
			return
		}
		union := numeric.ToUint64(c.flagUnion)
		u := numeric.ToUint64(v) & union
		for bit := uint64(1); bit != 0 && bit <= union; bit <<= 1 {
			if u&bit != 0 {
				if !yield(numeric.FromUint64[T](bit)) {
					return
				}
			}
		}
	}
}

// FormatFlags renders v as delimiter-joined flag names resolved through the
// selector chain (default ", " and [SelectorName]).
//
// An exact member match short-circuits the decomposition, so a named alias
// for a combination ("ReadWrite" for Read|Write) formats as itself. A value
// with bits outside the union falls back to its decimal text, which the
// numeric fast path of Parse recovers. An empty decomposition formats
// the zero member if one is defined, else the literal "0".
func (c *Cache[T]) FormatFlags(v T, delimiter string, selectors ...Selector) (string, error) {
	if !c.flags {
		return "", ErrNotFlagDomain
	}
	if delimiter == "" {
		delimiter = ", "
	}
	if len(selectors) == 0 {
		selectors = []Selector{SelectorName}
	}

	if _, ok := c.GetByValue(v); ok {
		return c.Format(v, selectors...)
	}
	if !c.IsValidFlagCombination(v) {
		return numeric.FormatDec(v), nil
	}

	var sb strings.Builder
	n := 0
	for f := range c.GetFlags(v) {
		text, err := c.Format(f, selectors...)
		if err != nil {
			return "", err
		}
		if n > 0 {
			sb.WriteString(delimiter)
		}
		sb.WriteString(text)
		n++
	}
	if n == 0 {
		// v is zero and the zero member is undefined.
		return "0", nil
	}
	return sb.String(), nil
}

// checkOperands validates v and an optional mask against the flag union.
func (c *Cache[T]) checkOperands(v T, mask []T) (T, error) {
	if !c.flags {
		return 0, ErrNotFlagDomain
	}
	if err := c.validateFlags(v); err != nil {
		return 0, err
	}
	var m T
	if len(mask) > 0 {
		m = mask[0]
		if err := c.validateFlags(m); err != nil {
			return 0, err
		}
	}
	return m, nil
}

func (c *Cache[T]) validateFlags(v T) error {
	if v&c.flagUnion != v {
		return &InvalidFlagsError{
			Value: "0x" + numeric.FormatHex(v),
			Union: "0x" + numeric.FormatHex(c.flagUnion),
		}
	}
	return nil
}
