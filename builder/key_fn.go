// Package builder provides the key schemes used to name generated variables.
package builder

import (
	"fmt"

	"github.com/katalvlaran/bayestree/inference"
)

// KeyFn generates a variable key from its zero-based index.
// It must be pure and injective: distinct indices give distinct keys.
type KeyFn func(idx int) inference.Key

// DefaultKeyFn returns idx itself as a key, e.g. 0→0, 42→42.
// Complexity: O(1). Never panics for idx ≥ 0.
func DefaultKeyFn(idx int) inference.Key {
	return inference.Key(idx)
}

// SymbolKeyFn returns a KeyFn producing inference.Symbol(chr, idx), which
// formats as "x0", "x1", … with inference.SymbolFormatter.
// Panics if chr is zero, since a zero character is not a symbol.
func SymbolKeyFn(chr byte) KeyFn {
	if chr == 0 {
		panic(fmt.Sprintf("SymbolKeyFn: chr must be non-zero, got %d", chr))
	}
	return func(idx int) inference.Key {
		return inference.Symbol(chr, uint64(idx))
	}
}
