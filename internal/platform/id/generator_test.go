package id

import "testing"

func TestRandomGeneratorNewID(t *testing.T) {
	gen := NewRandomGenerator()

	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		got, err := gen.NewID()
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if len(got) != 32 {
			t.Fatalf("id length = %d, want 32 hex chars", len(got))
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("duplicate id %q", got)
		}
		seen[got] = struct{}{}
	}
}
