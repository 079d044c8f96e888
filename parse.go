package enumgo

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/hupe1980/enumgo/internal/numeric"
)

// Parse resolves text to a value through the selector chain (default
// [SelectorName]). The input is trimmed, and a base-10 literal with an
// optional leading sign is tried first regardless of selectors; for flag
// domains this also covers raw bitmask literals.
//
// Numeric text outside the representable range fails with ErrOutOfRange;
// text no selector resolves fails with ErrNoMatch.
func (c *Cache[T]) Parse(text string, caseInsensitive bool, selectors ...Selector) (T, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &ParseError{Text: text}
	}
	if len(selectors) == 0 {
		selectors = []Selector{SelectorName}
	}

	if isNumericLead(text[0]) {
		v, err := numeric.Parse[T](text, 10)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, numeric.ErrRange) {
			return 0, c.rangeErr(text)
		}
		// Not a decimal literal after all; fall through to the chain.
	}

	for _, sel := range selectors {
		v, ok, err := c.parseWith(text, caseInsensitive, sel)
		if err != nil {
			return 0, err
		}
		if ok {
			return v, nil
		}
	}
	return 0, &ParseError{Text: text}
}

// ParseFlags splits text on the delimiter, parses each token through the
// selector chain, validates it against the flag union and ORs the results.
// The delimiter itself is trimmed before splitting unless trimming would
// empty it. Any token failure propagates its failure kind, identifying the
// offending token.
func (c *Cache[T]) ParseFlags(text string, caseInsensitive bool, delimiter string, selectors ...Selector) (T, error) {
	if !c.flags {
		return 0, ErrNotFlagDomain
	}
	if delimiter == "" {
		delimiter = ", "
	}
	if trimmed := strings.TrimSpace(delimiter); trimmed != "" {
		delimiter = trimmed
	}

	var out T
	for _, tok := range strings.Split(strings.TrimSpace(text), delimiter) {
		tok = strings.TrimSpace(tok)
		v, err := c.Parse(tok, caseInsensitive, selectors...)
		if err != nil {
			return 0, fmt.Errorf("token %q: %w", tok, err)
		}
		if err := c.validateFlags(v); err != nil {
			return 0, fmt.Errorf("token %q: %w", tok, err)
		}
		out |= v
	}
	return out, nil
}

func (c *Cache[T]) parseWith(text string, caseInsensitive bool, sel Selector) (T, bool, error) {
	switch sel {
	case SelectorName:
		m, ok := c.GetByName(text, caseInsensitive)
		if !ok {
			return 0, false, nil
		}
		return m.Value, true, nil
	case SelectorDecimal:
		return c.parseNumeric(text, 10)
	case SelectorHex:
		s := text
		if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
			s = s[2:]
		}
		return c.parseNumeric(s, 16)
	default:
		// SelectorText and custom selectors resolve through a lazily built
		// reverse-lookup table over every cached member's resolved text.
		ri := c.reverseFor(sel)
		if v, ok := ri.exact[text]; ok {
			return v, true, nil
		}
		if caseInsensitive {
			folded := ri.folded.Load()
			if folded == nil {
				built := foldReverse(ri.exact)
				ri.folded.Store(&built)
				folded = &built
			}
			if v, ok := (*folded)[foldName(text)]; ok {
				return v, true, nil
			}
		}
		return 0, false, nil
	}
}

func (c *Cache[T]) parseNumeric(text string, base int) (T, bool, error) {
	v, err := numeric.Parse[T](text, base)
	if err == nil {
		return v, true, nil
	}
	if errors.Is(err, numeric.ErrRange) {
		return 0, false, c.rangeErr(text)
	}
	return 0, false, nil
}

func (c *Cache[T]) rangeErr(text string) error {
	return &OutOfRangeError{
		Text:    text,
		BitSize: numeric.BitSize[T](),
		Signed:  numeric.IsSigned[T](),
	}
}

// reverseIndex maps each member's resolved text back to its value for one
// selector. The case-folded variant is built on further demand.
type reverseIndex[T Integer] struct {
	exact  map[string]T
	folded atomic.Pointer[map[string]T]
}

// reverseFor returns the reverse-lookup table for sel, building it on first
// use. The table is a pure function of the immutable cache, so redundant
// concurrent builds are benign; publication is a compare-and-swap on the
// selector map so a concurrently added selector is never lost.
func (c *Cache[T]) reverseFor(sel Selector) *reverseIndex[T] {
	for {
		cur := c.reverse.Load()
		if cur != nil {
			if ri, ok := (*cur)[sel]; ok {
				return ri
			}
		}

		ri := &reverseIndex[T]{exact: make(map[string]T, c.Count(true))}
		for m := range c.Enumerate(true) {
			text, ok := c.formatMemberWith(m, sel)
			if !ok {
				continue
			}
			if _, dup := ri.exact[text]; !dup {
				ri.exact[text] = m.Value
			}
		}

		next := make(map[Selector]*reverseIndex[T], 1)
		if cur != nil {
			for k, v := range *cur {
				next[k] = v
			}
		}
		next[sel] = ri
		if c.reverse.CompareAndSwap(cur, &next) {
			return ri
		}
	}
}

func foldReverse[T Integer](exact map[string]T) map[string]T {
	folded := make(map[string]T, len(exact))
	for text, v := range exact {
		key := foldName(text)
		if _, dup := folded[key]; !dup {
			folded[key] = v
		}
	}
	return folded
}

func isNumericLead(c byte) bool {
	return c == '+' || c == '-' || (c >= '0' && c <= '9')
}
