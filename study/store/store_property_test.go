package store

import (
	"testing"

	"pgregory.net/rapid"
)

// Counters are independent: any interleaving of increments over several
// documents ends with each count equal to the number of its own increments.
func TestIncrementCountsAreIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		docs := []string{"a.md", "b.md", "nested/c.md"}
		ops := rapid.SliceOf(rapid.SampledFrom(docs)).Draw(t, "ops")

		s := New(NewMemoryBlob(nil))
		want := map[string]int{}
		for _, id := range ops {
			n, err := s.Increment(id)
			if err != nil {
				t.Fatalf("increment %s: %v", id, err)
			}
			want[id]++
			if n != want[id] {
				t.Fatalf("increment %s returned %d, want %d", id, n, want[id])
			}
		}
		for _, id := range docs {
			if got := s.Get(id); got != want[id] {
				t.Fatalf("get %s = %d, want %d", id, got, want[id])
			}
		}
	})
}

// Reset and ResetAll always bring a document back to zero, and the persisted
// blob agrees with memory after every step.
func TestResetReturnsToZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		blob := NewMemoryBlob(nil)
		s := New(blob)
		docs := []string{"a.md", "b.md"}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(docs).Draw(t, "id")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				if _, err := s.Increment(id); err != nil {
					t.Fatal(err)
				}
			case 1:
				if err := s.Reset(id); err != nil {
					t.Fatal(err)
				}
				if s.Get(id) != 0 {
					t.Fatalf("%s not zero after reset", id)
				}
			case 2:
				if err := s.ResetAll(); err != nil {
					t.Fatal(err)
				}
				for _, d := range docs {
					if s.Get(d) != 0 {
						t.Fatalf("%s not zero after reset all", d)
					}
				}
			}

			reopened, err := Open(blob)
			if err != nil {
				t.Fatal(err)
			}
			for _, d := range docs {
				if reopened.Get(d) != s.Get(d) {
					t.Fatalf("persisted %s = %d, memory = %d", d, reopened.Get(d), s.Get(d))
				}
			}
		}
	})
}
