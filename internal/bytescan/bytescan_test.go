package bytescan

import (
	"bytes"
	"testing"
)

func TestFindByte(t *testing.T) {
	cases := []struct {
		haystack string
		needle   byte
		want     int
	}{
		{"", 'a', -1},
		{"a", 'a', 0},
		{"xyz", 'a', -1},
		{"short a", 'a', 6},
		{"exactly8", 'y', 6},
		{"this is a much longer haystack with the needle near the end.z", 'z', 60},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaab", 'b', 32},
	}
	for _, c := range cases {
		if got := FindByte([]byte(c.haystack), c.needle); got != c.want {
			t.Errorf("FindByte(%q, %q) = %d, want %d", c.haystack, c.needle, got, c.want)
		}
	}
}

func TestFindByteMatchesBytesIndexByte(t *testing.T) {
	haystack := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again")
	for b := 0; b < 256; b++ {
		want := bytes.IndexByte(haystack, byte(b))
		if got := FindByte(haystack, byte(b)); got != want {
			t.Errorf("FindByte(haystack, %d) = %d, want %d", b, got, want)
		}
	}
}
