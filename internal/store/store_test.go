package store

import "testing"

func TestVersionedIsolation(t *testing.T) {
	s := New()
	s.Set([]byte("k"), []byte("v"))

	if _, ok := s.Get(0, []byte("k")); ok {
		t.Fatal("expected height 0 to miss before the first grow")
	}
	v, ok := s.Get(2, []byte("k"))
	if !ok || string(v) != "v" {
		t.Fatalf("expected pending (height 2) to see the write, got %q, %v", v, ok)
	}

	s.Grow()

	v, ok = s.Get(0, []byte("k"))
	if !ok || string(v) != "v" {
		t.Fatalf("expected height 0 to now see the committed write, got %q, %v", v, ok)
	}

	s.Set([]byte("k"), []byte("w"))

	v, ok = s.Get(0, []byte("k"))
	if !ok || string(v) != "v" {
		t.Fatalf("expected height 0 unaffected by the new pending write, got %q, %v", v, ok)
	}
	v, ok = s.Get(3, []byte("k"))
	if !ok || string(v) != "w" {
		t.Fatalf("expected new pending (height 3) to see the new write, got %q, %v", v, ok)
	}
}

func TestHeightOutOfRangeMisses(t *testing.T) {
	s := New()
	if _, ok := s.Get(5, []byte("k")); ok {
		t.Fatal("expected out-of-range height to miss")
	}
}

func TestGrowIsAppendOnly(t *testing.T) {
	s := New()
	s.Set([]byte("k"), []byte("v1"))
	s.Grow()
	if s.Height() != 2 {
		t.Fatalf("expected height 2 after one grow, got %d", s.Height())
	}
	s.Set([]byte("k"), []byte("v2"))
	s.Grow()
	if s.Height() != 3 {
		t.Fatalf("expected height 3 after two grows, got %d", s.Height())
	}
	v, _ := s.Get(2, []byte("k"))
	if string(v) != "v1" {
		t.Fatalf("committed snapshot 2 mutated, got %q", v)
	}
}
