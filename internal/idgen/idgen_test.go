package idgen

import (
	"strings"
	"testing"
)

func TestRandomSuffixLength(t *testing.T) {
	for _, length := range []int{1, 8, 11, 32} {
		suffix, err := RandomSuffix(length)
		if err != nil {
			t.Fatalf("RandomSuffix(%d) failed: %v", length, err)
		}
		if len(suffix) != length {
			t.Errorf("RandomSuffix(%d) returned %d chars: %q", length, len(suffix), suffix)
		}
	}
}

func TestRandomSuffixURLSafe(t *testing.T) {
	// State tokens split on underscores, so suffixes must never contain
	// one.
	for i := 0; i < 100; i++ {
		suffix, err := RandomSuffix(11)
		if err != nil {
			t.Fatalf("RandomSuffix failed: %v", err)
		}
		if strings.ContainsAny(suffix, "_/+=") {
			t.Fatalf("suffix contains reserved characters: %q", suffix)
		}
	}
}

func TestRandomSuffixUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		suffix, err := RandomSuffix(16)
		if err != nil {
			t.Fatalf("RandomSuffix failed: %v", err)
		}
		if seen[suffix] {
			t.Fatalf("duplicate suffix: %q", suffix)
		}
		seen[suffix] = true
	}
}
