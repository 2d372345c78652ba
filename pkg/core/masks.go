/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: masks.go
Description: Bitmask helpers over joint states. A joint state is an N-bit integer where
bit b holds the value of variable b.
*/

package core

import (
	"math/bits"
	"strings"
)

// FullMask returns a mask with the low n bits set
func FullMask(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return ^uint64(0)
	}
	return ^uint64(0) >> (64 - n)
}

// Popcount returns the number of set bits in mask
func Popcount(mask uint64) int {
	return bits.OnesCount64(mask)
}

// BitPositions lists the set bits of mask in ascending order
func BitPositions(mask uint64) []uint {
	positions := make([]uint, 0, bits.OnesCount64(mask))
	for mask != 0 {
		positions = append(positions, uint(bits.TrailingZeros64(mask)))
		mask &= mask - 1
	}
	return positions
}

// Compact gathers the bits of state selected by mask and packs them from bit 0 upward,
// lowest selected position first
func Compact(state, mask uint64) uint64 {
	var out uint64
	var dst uint
	for mask != 0 {
		low := mask & -mask
		if state&low != 0 {
			out |= 1 << dst
		}
		dst++
		mask ^= low
	}
	return out
}

// FormatBits renders the low width bits of v most significant first
func FormatBits(v uint64, width int) string {
	var sb strings.Builder
	sb.Grow(width)
	for i := width - 1; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
