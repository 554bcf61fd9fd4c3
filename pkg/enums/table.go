package enums

import (
	"cmp"
	"slices"
	"strings"
)

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// code8Table expands an 8-bit family's name table into direct-index form so
// per-packet decoding is a bounds-free array load.
type code8Table struct {
	known [256]bool
	names [256]string
}

func newCode8Table[T ~uint8](names map[T]string) *code8Table {
	var t code8Table
	for v, name := range names {
		t.known[uint8(v)] = true
		t.names[uint8(v)] = name
	}
	return &t
}

func (t *code8Table) lookup(code uint8) (string, bool) {
	return t.names[code], t.known[code]
}

func lookupName[T comparable](names map[T]string, s string) (T, bool) {
	for v, name := range names {
		if strings.EqualFold(name, s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
