package cmd

import (
	"testing"
)

func TestRandomState(t *testing.T) {
	first, err := randomState()
	if err != nil {
		t.Fatalf("randomState() error = %v", err)
	}
	if len(first) != 32 {
		t.Errorf("randomState() length = %d, want 32 hex characters", len(first))
	}

	second, err := randomState()
	if err != nil {
		t.Fatalf("randomState() error = %v", err)
	}
	if first == second {
		t.Error("randomState() returned the same value twice")
	}
}
