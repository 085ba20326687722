package optimizer

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoMinimum — на отрезке не выполнено необходимое условие минимума
var ErrNoMinimum = errors.New("problem: похоже, нет минимума на заданном отрезке")

// Problem — данные задачи поиска минимума: отрезок, точность, результат.
// Не потокобезопасна: экземпляром владеет ровно один вызывающий.
type Problem struct {
	left      float64
	right     float64
	precision int
	epsilon   float64
	maxIter   int

	iterations int
	x          float64
	solved     bool
}

// NewProblem — задача с настройками по умолчанию: отрезок [-1;1], 5 знаков,
// предел итераций IterationLimit.
func NewProblem() *Problem {
	p := &Problem{left: -1, right: 1, maxIter: IterationLimit}
	p.SetPrecision(5)
	return p
}

func (p *Problem) Left() float64    { return p.left }
func (p *Problem) Right() float64   { return p.right }
func (p *Problem) Precision() int   { return p.precision }
func (p *Problem) Epsilon() float64 { return p.epsilon }
func (p *Problem) MaxIter() int     { return p.maxIter }

// Solved сообщает, есть ли действительный результат последнего поиска.
func (p *Problem) Solved() bool { return p.solved }

// Minimum — найденный минимум; имеет смысл только при Solved() == true.
func (p *Problem) Minimum() float64 { return p.x }

// Iterations — кол-во итераций последнего поиска; имеет смысл только
// при Solved() == true.
func (p *Problem) Iterations() int { return p.iterations }

// SetBounds — установка границ отрезка; порядок концов нормализуется,
// так что left <= right выполняется всегда.
func (p *Problem) SetBounds(a, b float64) {
	p.left = math.Min(a, b)
	p.right = math.Max(a, b)
}

// SetPrecision — установка точности в знаках; epsilon = 10^(-digits)
// пересчитывается при каждом вызове. Отрицательное значение допустимо
// синтаксически (даст epsilon > 1) — ответственность вызывающего.
func (p *Problem) SetPrecision(digits int) {
	p.precision = digits
	p.epsilon = math.Pow(10, -float64(digits))
}

// SetMaxIter — ограничение кол-ва итераций поиска. IterationLimit —
// жёсткий потолок: значения вне (0;IterationLimit] приводятся к нему.
func (p *Problem) SetMaxIter(n int) {
	if n <= 0 || n > IterationLimit {
		n = IterationLimit
	}
	p.maxIter = n
}

// HasMinimum — необходимое условие минимума на [left;right]: производная
// отрицательна слева и положительна справа. Для неунимодальных функций
// это эвристика, она может отвергнуть отрезок с настоящим минимумом.
func (p *Problem) HasMinimum(f Func) (bool, error) {
	dl, err := Derivative(f, p.left, p.precision)
	if err != nil {
		return false, err
	}
	dr, err := Derivative(f, p.right, p.precision)
	if err != nil {
		return false, err
	}
	return dl < 0 && dr > 0, nil
}

// FindMinimum — поиск минимума f на отрезке задачи методом золотого
// сечения. Сначала проверяется необходимое условие (ErrNoMinimum),
// затем до MaxIter итераций сжимается отрезок (ErrIterLimit, если не
// сошлось). onIter может быть nil; ErrStopped из callback прерывает
// поиск.
func (p *Problem) FindMinimum(f Func, onIter func(Iter) error) error {
	p.solved = false
	p.iterations = 0

	ok, err := p.HasMinimum(f)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoMinimum
	}

	x, iterations, err := GoldenSection(f, p.left, p.right, p.epsilon, p.maxIter, onIter)
	p.iterations = iterations
	if err != nil {
		return err
	}
	p.x = x
	p.solved = true
	return nil
}

// BoundsString — отрезок в виде [left;right] с текущей точностью.
func (p *Problem) BoundsString() string {
	return fmt.Sprintf("[%.*f;%.*f]", p.precision, p.left, p.precision, p.right)
}

// PrecisionString — точность в виде "<digits> digits (<epsilon>)".
func (p *Problem) PrecisionString() string {
	return fmt.Sprintf("%d digits (%.*f)", p.precision, p.precision, p.epsilon)
}

// SolutionString — результат в виде "<x> (found in <n> iterations)".
func (p *Problem) SolutionString() string {
	return fmt.Sprintf("%.*f (found in %d iterations)", p.precision, p.x, p.iterations)
}
