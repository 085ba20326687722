package optimizer

import (
	"fmt"
	"math"
	"testing"
)

// countingFunc считает вызовы Eval обёрнутой функции
type countingFunc struct {
	f     Func
	calls int
}

func (c *countingFunc) Eval(x float64) (float64, error) {
	c.calls++
	return c.f.Eval(x)
}

func (c *countingFunc) Name() string { return c.f.Name() }

func TestGoldenSectionConverges(t *testing.T) {
	for digits := 1; digits <= 10; digits++ {
		t.Run(fmt.Sprintf("digits %d", digits), func(t *testing.T) {
			eps := math.Pow(10, -float64(digits))
			x, iterations, err := GoldenSection(Square(), -1, 1, eps, IterationLimit, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(x) >= eps {
				t.Errorf("minimum not within eps: got %v, eps %v", x, eps)
			}
			if iterations <= 0 || iterations >= 200 {
				t.Errorf("implausible iteration count: %d", iterations)
			}
		})
	}
}

func TestGoldenSectionSin(t *testing.T) {
	// минимум sin на [1.6;4.8] — в точке 3*pi/2
	want := 3 * math.Pi / 2
	eps := 1e-5
	x, iterations, err := GoldenSection(Sin(), 1.6, 4.8, eps, IterationLimit, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(x-want) >= eps {
		t.Errorf("minimum doesn't match: got %v, want %v", x, want)
	}
	if iterations >= 200 {
		t.Errorf("implausible iteration count: %d", iterations)
	}
}

func TestGoldenSectionDeterminism(t *testing.T) {
	x1, n1, err1 := GoldenSection(Square(), -1, 1, 1e-5, IterationLimit, nil)
	x2, n2, err2 := GoldenSection(Square(), -1, 1, 1e-5, IterationLimit, nil)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if x1 != x2 || n1 != n2 {
		t.Errorf("runs differ: (%v, %d) vs (%v, %d)", x1, n1, x2, n2)
	}
}

func TestGoldenSectionBracketShrinks(t *testing.T) {
	prevA, prevB := -1.0, 1.0
	onIter := func(it Iter) error {
		if it.A < prevA || it.B > prevB {
			return fmt.Errorf("iteration %d: bracket [%v;%v] is not nested in [%v;%v]",
				it.K, it.A, it.B, prevA, prevB)
		}
		if it.B-it.A >= prevB-prevA {
			return fmt.Errorf("iteration %d: bracket did not shrink: %v >= %v",
				it.K, it.B-it.A, prevB-prevA)
		}
		prevA, prevB = it.A, it.B
		return nil
	}
	if _, _, err := GoldenSection(Square(), -1, 1, 1e-8, IterationLimit, onIter); err != nil {
		t.Fatal(err)
	}
}

func TestGoldenSectionSingleEvalPerIteration(t *testing.T) {
	cf := &countingFunc{f: Square()}
	_, iterations, err := GoldenSection(cf, -1, 1, 1e-5, IterationLimit, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// два вычисления на инициализацию проб, дальше по одному на итерацию
	if cf.calls != iterations+2 {
		t.Errorf("eval calls: got %d, want %d for %d iterations", cf.calls, iterations+2, iterations)
	}
}

func TestGoldenSectionIterLimit(t *testing.T) {
	// eps = 0 недостижим: |b-a| < 0 ложно всегда
	iterSeen := 0
	onIter := func(it Iter) error {
		iterSeen = it.K
		return nil
	}
	_, iterations, err := GoldenSection(Square(), -1, 1, 0, IterationLimit, onIter)
	if err != ErrIterLimit {
		t.Fatalf("expected ErrIterLimit, got %v", err)
	}
	if iterations != IterationLimit {
		t.Errorf("iterations: got %d, want %d", iterations, IterationLimit)
	}
	if iterSeen != IterationLimit {
		t.Errorf("last callback iteration: got %d, want %d", iterSeen, IterationLimit)
	}
}

func TestGoldenSectionStopped(t *testing.T) {
	onIter := func(it Iter) error {
		if it.K == 3 {
			return ErrStopped
		}
		return nil
	}
	_, iterations, err := GoldenSection(Square(), -1, 1, 1e-10, IterationLimit, onIter)
	if err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if iterations != 3 {
		t.Errorf("iterations: got %d, want 3", iterations)
	}
}
