// Package shortlink converts recipe IDs to compact share codes and back.
// The codec is a plain bijective base-52 positional encoding; it knows
// nothing about which IDs exist, callers check that separately.
package shortlink

import (
	"fmt"
	"math"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = uint64(len(alphabet))

// Encode renders id in base 52, most significant digit first. Zero maps
// to the first symbol of the alphabet alone.
func Encode(id uint64) string {
	if id == 0 {
		return string(alphabet[0])
	}
	var b strings.Builder
	for id > 0 {
		b.WriteByte(alphabet[id%base])
		id /= base
	}
	encoded := []byte(b.String())
	for i, j := 0, len(encoded)-1; i < j; i, j = i+1, j-1 {
		encoded[i], encoded[j] = encoded[j], encoded[i]
	}
	return string(encoded)
}

// Decode is the inverse of Encode. It fails on an empty code, any
// character outside the alphabet, or a code whose value does not fit in
// a uint64 — over-long codes must never wrap around onto a valid ID.
func Decode(code string) (uint64, error) {
	if code == "" {
		return 0, fmt.Errorf("shortlink: empty code")
	}
	var id uint64
	for _, r := range code {
		idx := strings.IndexRune(alphabet, r)
		if idx < 0 {
			return 0, fmt.Errorf("shortlink: invalid character %q", r)
		}
		if id > (math.MaxUint64-uint64(idx))/base {
			return 0, fmt.Errorf("shortlink: code out of range")
		}
		id = id*base + uint64(idx)
	}
	return id, nil
}
