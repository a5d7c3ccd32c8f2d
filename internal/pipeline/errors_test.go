package pipeline

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_AreDistinctAndWrappable(t *testing.T) {
	all := []error{ErrInput, ErrLanguageDetection, ErrNormalization, ErrVariantGeneration, ErrEmbedding, ErrCache, ErrRetrieval}
	seen := map[string]struct{}{}
	for _, e := range all {
		if e == nil {
			t.Fatal("sentinel error must not be nil")
		}
		if _, ok := seen[e.Error()]; ok {
			t.Errorf("duplicate sentinel error message: %q", e.Error())
		}
		seen[e.Error()] = struct{}{}
	}

	wrapped := fmt.Errorf("write failed: %w", ErrCache)
	if !errors.Is(wrapped, ErrCache) {
		t.Error("wrapped error should satisfy errors.Is against ErrCache")
	}
}
