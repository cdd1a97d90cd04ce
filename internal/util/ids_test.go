package util

import (
	"strings"
	"testing"
)

func TestNewJobID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := NewJobID()
		if err != nil {
			t.Fatalf("NewJobID() error = %v", err)
		}
		if len(id) != jobIDLength {
			t.Fatalf("id length = %d, want %d", len(id), jobIDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(jobIDAlphabet, r) {
				t.Fatalf("id %q contains %q outside the alphabet", id, r)
			}
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}
