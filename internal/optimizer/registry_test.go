package optimizer

import (
	"errors"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r.Size() != 2 {
		t.Fatalf("size: got %d, want 2", r.Size())
	}

	sq, err := r.Get(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sq.Name() != "y = x^2" {
		t.Errorf("name: got %q, want %q", sq.Name(), "y = x^2")
	}
	if y, _ := sq.Eval(3); y != 9 {
		t.Errorf("x^2 at 3: got %v, want 9", y)
	}

	sin, err := r.Get(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sin.Name() != "y = sin(x)" {
		t.Errorf("name: got %q, want %q", sin.Name(), "y = sin(x)")
	}
	if y, _ := sin.Eval(0); y != 0 {
		t.Errorf("sin at 0: got %v, want 0", y)
	}
}

func TestRegistryBadIndex(t *testing.T) {
	r := DefaultRegistry()
	for _, index := range []int{-1, 2, 100, r.Size()} {
		f, err := r.Get(index)
		if !errors.Is(err, ErrBadIndex) {
			t.Errorf("index %d: expected ErrBadIndex, got %v", index, err)
		}
		if f != nil {
			t.Errorf("index %d: expected nil func, got %v", index, f)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(Sin())
	if r.Size() != 1 {
		t.Fatalf("size: got %d, want 1", r.Size())
	}
	f, err := r.Get(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name() != "y = sin(x)" {
		t.Errorf("name: got %q", f.Name())
	}
}
