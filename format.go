package enumgo

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/enumgo/internal/numeric"
)

// Selector names one resolution strategy in a formatting or parsing chain.
// Order in a caller-supplied list is significant: the first selector that
// produces a result wins.
type Selector int

const (
	// SelectorName resolves a value to its primary member name.
	SelectorName Selector = iota

	// SelectorDecimal resolves to base-10 text.
	SelectorDecimal

	// SelectorHex resolves to zero-padded upper-case base-16 text, two
	// digits per byte of the underlying type.
	SelectorHex

	// SelectorText resolves to the member's preferred textual tag.
	SelectorText

	numBuiltinSelectors
)

// FormatterFunc is a custom resolution strategy. Returning ok=false passes
// control to the next selector in the chain.
type FormatterFunc func(MemberInfo) (string, bool)

// RegisterFormatter registers fn process-wide and returns its selector id.
// Registration is append-only; ids ascend from just above the built-in
// selectors and are never reused.
func RegisterFormatter(fn FormatterFunc) Selector {
	return formatters.register("", fn)
}

// RegisterFormatter registers fn for this domain only and returns its
// selector id. Using the id with another domain's cache yields no result.
func (c *Cache[T]) RegisterFormatter(fn FormatterFunc) Selector {
	return formatters.register(c.key, fn)
}

// Format resolves v to text through the selector chain, first non-empty
// result wins. Without selectors it formats the member name, falling back to
// decimal for undeclared values.
func (c *Cache[T]) Format(v T, selectors ...Selector) (string, error) {
	if len(selectors) == 0 {
		selectors = []Selector{SelectorName, SelectorDecimal}
	}
	for _, sel := range selectors {
		if text, ok := c.formatWith(v, sel); ok {
			return text, nil
		}
	}
	return "", fmt.Errorf("%w: no selector produced text for %s", ErrNoMatch, numeric.FormatDec(v))
}

func (c *Cache[T]) formatWith(v T, sel Selector) (string, bool) {
	switch sel {
	case SelectorName:
		m, ok := c.GetByValue(v)
		if !ok {
			return "", false
		}
		return m.Name, true
	case SelectorDecimal:
		return numeric.FormatDec(v), true
	case SelectorHex:
		return numeric.FormatHex(v), true
	case SelectorText:
		m, ok := c.GetByValue(v)
		if !ok || !m.hasText {
			return "", false
		}
		return m.text, true
	default:
		fn, ok := formatters.resolve(sel, c.key)
		if !ok {
			return "", false
		}
		m, ok := c.GetByValue(v)
		if !ok {
			return "", false
		}
		return fn(m.info())
	}
}

// formatMemberWith resolves a specific member (primary or alias) through one
// selector. Used when building reverse-lookup tables, where the alias name
// rather than the primary's must surface for alias entries.
func (c *Cache[T]) formatMemberWith(m Member[T], sel Selector) (string, bool) {
	switch sel {
	case SelectorName:
		return m.Name, true
	case SelectorDecimal:
		return numeric.FormatDec(m.Value), true
	case SelectorHex:
		return numeric.FormatHex(m.Value), true
	case SelectorText:
		if !m.hasText {
			return "", false
		}
		return m.text, true
	default:
		fn, ok := formatters.resolve(sel, c.key)
		if !ok {
			return "", false
		}
		return fn(m.info())
	}
}

// formatterRegistry is the process-wide custom formatter table: an
// append-only slot list, lazily created on first registration, freely read
// thereafter. A slot is claimed first and populated second; readers that
// land on a claimed-but-unpopulated slot spin, which is acceptable because
// registration happens a handful of times per process lifetime.
type formatterRegistry struct {
	mu    sync.Mutex // serializes claims
	slots atomic.Pointer[[]*formatterSlot]
}

type formatterSlot struct {
	scope string // domain key, "" for process-wide
	fn    atomic.Pointer[FormatterFunc]
}

var formatters formatterRegistry

func (r *formatterRegistry) register(scope string, fn FormatterFunc) Selector {
	if fn == nil {
		panic("enumgo: nil formatter")
	}
	slot, id := r.claim(scope)
	slot.fn.Store(&fn)
	return numBuiltinSelectors + Selector(id)
}

func (r *formatterRegistry) claim(scope string) (*formatterSlot, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cur []*formatterSlot
	if p := r.slots.Load(); p != nil {
		cur = *p
	}
	slot := &formatterSlot{scope: scope}
	next := make([]*formatterSlot, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = slot
	r.slots.Store(&next)
	return slot, len(cur)
}

func (r *formatterRegistry) resolve(sel Selector, scope string) (FormatterFunc, bool) {
	id := int(sel - numBuiltinSelectors)
	p := r.slots.Load()
	if p == nil || id < 0 || id >= len(*p) {
		return nil, false
	}
	slot := (*p)[id]
	fn := slot.fn.Load()
	for fn == nil {
		// Claimed but not yet populated.
		runtime.Gosched()
		fn = slot.fn.Load()
	}
	if slot.scope != "" && slot.scope != scope {
		return nil, false
	}
	return *fn, true
}
