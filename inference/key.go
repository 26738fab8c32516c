// SPDX-License-Identifier: MIT

package inference

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a variable. Keys are unique within a factor graph and
// are ordered numerically wherever a deterministic order is required.
type Key uint64

// KeyFormatter renders a key for printing. It must be pure and stateless.
type KeyFormatter func(Key) string

// Symbol layout: the character lives in the top byte, the index in the
// remaining 56 bits.
const (
	symbolChrBits   = 8
	symbolIndexBits = 64 - symbolChrBits
	symbolIndexMask = (uint64(1) << symbolIndexBits) - 1
)

// Symbol packs a character and an index into a single key, e.g. Symbol('x', 3)
// for the third pose. Index bits beyond 56 are discarded.
func Symbol(chr byte, index uint64) Key {
	return Key(uint64(chr)<<symbolIndexBits | index&symbolIndexMask)
}

// Chr returns the symbol character of k (0 for plain integer keys).
func (k Key) Chr() byte { return byte(uint64(k) >> symbolIndexBits) }

// Index returns the symbol index of k.
func (k Key) Index() uint64 { return uint64(k) & symbolIndexMask }

// IsSymbol reports whether k carries a printable letter in its symbol byte.
func (k Key) IsSymbol() bool {
	c := k.Chr()
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// DefaultKeyFormatter prints keys as plain decimal integers.
func DefaultKeyFormatter(k Key) string {
	return strconv.FormatUint(uint64(k), 10)
}

// SymbolFormatter prints symbol keys as "x3" and falls back to decimal for
// anything that does not carry a letter.
func SymbolFormatter(k Key) string {
	if k.IsSymbol() {
		return string(k.Chr()) + strconv.FormatUint(k.Index(), 10)
	}
	return DefaultKeyFormatter(k)
}

// ParseKey is the inverse of SymbolFormatter: "42" parses as Key(42) and
// "x3" as Symbol('x', 3).
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("ParseKey(%q): %w", s, ErrInvalidKey)
	}
	if c := s[0]; (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		idx, err := strconv.ParseUint(s[1:], 10, symbolIndexBits)
		if err != nil {
			return 0, fmt.Errorf("ParseKey(%q): %w", s, ErrInvalidKey)
		}
		return Symbol(c, idx), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ParseKey(%q): %w", s, ErrInvalidKey)
	}
	return Key(v), nil
}

// FormatKeys joins keys with single spaces using kf (DefaultKeyFormatter if nil).
func FormatKeys(keys []Key, kf KeyFormatter) string {
	if kf == nil {
		kf = DefaultKeyFormatter
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = kf(k)
	}
	return strings.Join(parts, " ")
}
