// Package bytescan provides CPU-feature-gated byte-scanning primitives used
// by package prefilter to check single-byte required literals without
// paying for a full Aho-Corasick automaton. It mirrors the
// feature-detection-then-dispatch shape of the teacher's simd package
// (golang.org/x/sys/cpu at init, SWAR fallback everywhere), but implements
// the fast path in portable Go rather than assembly, since this engine's
// hot path is the once-per-build prefilter check, not a per-byte regex
// match loop.
package bytescan

import "golang.org/x/sys/cpu"

// hasSSE2 records whether the host supports the baseline amd64 SIMD
// feature set. The SWAR path below does not use SSE2 directly, but its
// 8-byte-word striding assumes the same cheap unaligned-load behavior
// SSE2-capable cores provide; on hosts without it (rare non-amd64 targets)
// FindByte still degrades correctly, just without the word-at-a-time
// speedup.
var hasSSE2 = cpu.X86.HasSSE2

// FindByte returns the index of the first occurrence of b in haystack, or
// -1 if absent. On SSE2-capable hosts it scans 8 bytes at a time using a
// SWAR (SIMD-within-a-register) broadcast-and-compare trick; otherwise it
// falls back to a byte-at-a-time scan.
func FindByte(haystack []byte, b byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if !hasSSE2 || len(haystack) < 8 {
		return findByteScalar(haystack, b)
	}
	return findByteSWAR(haystack, b)
}

func findByteScalar(haystack []byte, b byte) int {
	for i, c := range haystack {
		if c == b {
			return i
		}
	}
	return -1
}

// broadcast replicates b into all 8 bytes of a uint64.
func broadcast(b byte) uint64 {
	w := uint64(b)
	w |= w << 8
	w |= w << 16
	w |= w << 32
	return w
}

// findByteSWAR scans 8-byte words using the classic hasZeroByte trick
// applied to (word XOR needle): a lane is all-zero iff that byte matched.
func findByteSWAR(haystack []byte, b byte) int {
	needle := broadcast(b)
	i := 0
	n := len(haystack)
	for ; i+8 <= n; i += 8 {
		word := leUint64(haystack[i : i+8])
		x := word ^ needle
		if hasZeroByte(x) {
			for j := 0; j < 8; j++ {
				if haystack[i+j] == b {
					return i + j
				}
			}
		}
	}
	for ; i < n; i++ {
		if haystack[i] == b {
			return i
		}
	}
	return -1
}

// hasZeroByte reports whether any of the 8 bytes packed in x is zero,
// using the standard branchless bit trick: (x - 0x0101..01) & ^x & 0x8080..80.
func hasZeroByte(x uint64) bool {
	const lo = 0x0101010101010101
	const hi = 0x8080808080808080
	return (x-lo)&^x&hi != 0
}

func leUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
