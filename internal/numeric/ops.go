package numeric

import (
	"errors"
	"fmt"
	"strconv"
	"unsafe"
)

// Integer is the set of fixed-width integer types the engine can be
// instantiated with.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	// ErrRange indicates a numeric literal outside the representable range
	// of the target width.
	ErrRange = errors.New("value out of range")

	// ErrSyntax indicates text that is not a valid numeric literal.
	ErrSyntax = errors.New("invalid syntax")
)

// BitSize returns the width of T in bits.
func BitSize[T Integer]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// ByteSize returns the width of T in bytes.
func ByteSize[T Integer]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// IsSigned reports whether T is a signed type.
func IsSigned[T Integer]() bool {
	var z T
	return z-1 < 0
}

// Mask returns the all-ones bit pattern of T, widened to uint64.
func Mask[T Integer]() uint64 {
	bits := BitSize[T]()
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// ToUint64 returns the raw bit pattern of v within T's width.
func ToUint64[T Integer](v T) uint64 {
	return uint64(v) & Mask[T]()
}

// FromUint64 reinterprets the low bits of u as a T.
func FromUint64[T Integer](u uint64) T {
	return T(u)
}

// Ordered maps v to an unsigned key that preserves the natural order of T.
// For signed types the sign bit is flipped so that MinValue maps to 0.
func Ordered[T Integer](v T) uint64 {
	u := ToUint64(v)
	if IsSigned[T]() {
		u ^= uint64(1) << (BitSize[T]() - 1)
	}
	return u
}

// CheckedFromInt64 converts v to T, failing with ErrRange if v does not fit.
func CheckedFromInt64[T Integer](v int64) (T, error) {
	out := T(v)
	if IsSigned[T]() {
		if int64(out) != v {
			return 0, fmt.Errorf("%w: %d does not fit in %d-bit signed", ErrRange, v, BitSize[T]())
		}
		return out, nil
	}
	if v < 0 || uint64(out) != uint64(v) {
		return 0, fmt.Errorf("%w: %d does not fit in %d-bit unsigned", ErrRange, v, BitSize[T]())
	}
	return out, nil
}

// CheckedFromUint64 converts v to T, failing with ErrRange if v does not fit.
func CheckedFromUint64[T Integer](v uint64) (T, error) {
	out := T(v)
	if IsSigned[T]() {
		if int64(out) < 0 || uint64(out) != v {
			return 0, fmt.Errorf("%w: %d does not fit in %d-bit signed", ErrRange, v, BitSize[T]())
		}
		return out, nil
	}
	if uint64(out) != v {
		return 0, fmt.Errorf("%w: %d does not fit in %d-bit unsigned", ErrRange, v, BitSize[T]())
	}
	return out, nil
}

// Parse parses s in the given base (10 or 16) into a T. A single leading
// '+' is accepted for every width. Range violations map to ErrRange,
// anything else to ErrSyntax.
func Parse[T Integer](s string, base int) (T, error) {
	if IsSigned[T]() {
		n, err := strconv.ParseInt(s, base, BitSize[T]())
		if err != nil {
			return 0, classify(err)
		}
		return T(n), nil
	}
	// ParseInt accepts a sign prefix, ParseUint does not.
	if len(s) > 1 && s[0] == '+' {
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, base, BitSize[T]())
	if err != nil {
		return 0, classify(err)
	}
	return T(n), nil
}

func classify(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		if errors.Is(ne.Err, strconv.ErrRange) {
			return fmt.Errorf("%w: %q", ErrRange, ne.Num)
		}
		return fmt.Errorf("%w: %q", ErrSyntax, ne.Num)
	}
	return err
}

// FormatDec renders v in base 10.
func FormatDec[T Integer](v T) string {
	if IsSigned[T]() {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// FormatHex renders the raw bit pattern of v in upper-case base 16,
// zero-padded to two digits per byte of T.
func FormatHex[T Integer](v T) string {
	s := strconv.FormatUint(ToUint64(v), 16)
	width := ByteSize[T]() * 2
	if pad := width - len(s); pad > 0 {
		buf := make([]byte, width)
		for i := 0; i < pad; i++ {
			buf[i] = '0'
		}
		copy(buf[pad:], s)
		s = string(buf)
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'f' {
			return upperHex(s)
		}
	}
	return s
}

func upperHex(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if c >= 'a' && c <= 'f' {
			buf[i] = c - 'a' + 'A'
		}
	}
	return string(buf)
}

// IsFlagBit reports whether v is zero or an exact power of two, i.e. a value
// eligible to contribute to a flag union.
func IsFlagBit[T Integer](v T) bool {
	u := ToUint64(v)
	return u&(u-1) == 0
}
