package enumgo

import "github.com/hupe1980/enumgo/internal/numeric"

// Integer is the set of fixed-width integer types a domain can be built over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Tag is an opaque label attached to a member. The cache never interprets
// tags itself; the tag inspection hook does, once, during construction.
type Tag any

// TextTag supplies the preferred textual representation of a member, used by
// the Text selector instead of the member name.
type TextTag string

// PrimaryTag marks a member as the canonical name for its value when several
// names share that value.
type PrimaryTag struct{}

// TagInfo is what the tag inspection hook reports for one member.
type TagInfo struct {
	// Text is the preferred textual representation, valid if HasText.
	Text    string
	HasText bool

	// TextIndex is the position of the tag that supplied Text, or -1.
	// The cache hoists that tag to the front of the member's tag list.
	TextIndex int

	// ForcePrimary makes this member canonical for its value.
	ForcePrimary bool
}

// TagInspector extracts formatting-relevant information from a member's tag
// list. It runs only during construction.
type TagInspector func(tags []Tag) TagInfo

// DefaultTagInspector recognizes the built-in TextTag and PrimaryTag markers.
// The first TextTag wins.
func DefaultTagInspector(tags []Tag) TagInfo {
	info := TagInfo{TextIndex: -1}
	for i, tag := range tags {
		switch t := tag.(type) {
		case TextTag:
			if !info.HasText {
				info.Text = string(t)
				info.HasText = true
				info.TextIndex = i
			}
		case PrimaryTag:
			info.ForcePrimary = true
		}
	}
	return info
}

// RawMember is one (name, value, tags) triple supplied by the host.
type RawMember[T Integer] struct {
	Name  string
	Value T
	Tags  []Tag
}

// Member is a cached domain member. Immutable once built.
type Member[T Integer] struct {
	Name  string
	Value T

	// Tags holds the member's tags with the preferred textual tag, if any,
	// hoisted to the front.
	Tags []Tag

	text    string
	hasText bool
}

// Text returns the member's preferred textual representation, if it has one.
func (m Member[T]) Text() (string, bool) {
	return m.text, m.hasText
}

// info returns the width-erased view handed to custom formatter functions.
func (m Member[T]) info() MemberInfo {
	return MemberInfo{
		Name:    m.Name,
		Tags:    m.Tags,
		text:    m.text,
		hasText: m.hasText,
		bits:    numeric.ToUint64(m.Value),
		bitSize: numeric.BitSize[T](),
		signed:  numeric.IsSigned[T](),
	}
}

// MemberInfo is a width-erased view of a cached member. Custom formatter
// functions receive it so one registry can serve domains of every width.
type MemberInfo struct {
	Name string
	Tags []Tag

	text    string
	hasText bool
	bits    uint64
	bitSize int
	signed  bool
}

// Text returns the member's preferred textual representation, if any.
func (mi MemberInfo) Text() (string, bool) {
	return mi.text, mi.hasText
}

// Uint64 returns the member's raw bit pattern within its width.
func (mi MemberInfo) Uint64() uint64 { return mi.bits }

// Int64 returns the member's value sign-extended to 64 bits.
func (mi MemberInfo) Int64() int64 {
	if mi.signed && mi.bitSize < 64 {
		shift := 64 - mi.bitSize
		return int64(mi.bits<<shift) >> shift
	}
	return int64(mi.bits)
}

// BitSize returns the width of the member's underlying type in bits.
func (mi MemberInfo) BitSize() int { return mi.bitSize }

// Signed reports whether the underlying type is signed.
func (mi MemberInfo) Signed() bool { return mi.signed }
