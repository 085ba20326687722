package optimizer

import (
	"errors"
	"math"
)

// Iter — одна итерация метода золотого сечения. Значения y1/y2 — те же,
// что используются внутри алгоритма, новых вычислений функции при
// формировании Iter не происходит.
type Iter struct {
	K   int     `json:"k"`
	A   float64 `json:"a"`
	B   float64 `json:"b"`
	X1  float64 `json:"x1"`
	X2  float64 `json:"x2"`
	Y1  float64 `json:"y1"`
	Y2  float64 `json:"y2"`
	Len float64 `json:"len"`
}

// IterationLimit — предел кол-ва итераций поиска
const IterationLimit = 10000

var (
	// ErrStopped — специальная ошибка для принудительной остановки
	ErrStopped = errors.New("golden: stopped by callback")
	// ErrIterLimit — поиск не сошёлся за отведённое число итераций
	ErrIterLimit = errors.New("golden: достигнут предел кол-ва итераций")
)

// rfi — обратное золотое сечение, 2/(1+sqrt(5)) ≈ 0.618034
var rfi = 2 / (1 + math.Sqrt(5))

// GoldenSection — поиск минимума f на [a;b] методом золотого сечения.
// На каждой итерации вычисляется ровно одно новое значение функции
// (со стороны сжатия), второе переносится с прошлого шага.
// onIter вызывается после каждой итерации; если вернёт ErrStopped —
// алгоритм прерывается.
func GoldenSection(
	f Func,
	a, b, eps float64,
	maxIter int,
	onIter func(Iter) error,
) (x float64, iterations int, err error) {
	x1 := b - (b-a)*rfi
	x2 := a + (b-a)*rfi
	y1, err := f.Eval(x1)
	if err != nil {
		return 0, 0, err
	}
	y2, err := f.Eval(x2)
	if err != nil {
		return 0, 0, err
	}

	for k := 1; k <= maxIter; k++ {
		if y1 >= y2 {
			a = x1
			x1, y1 = x2, y2
			x2 = a + (b-a)*rfi
			if y2, err = f.Eval(x2); err != nil {
				return 0, k, err
			}
		} else {
			b = x2
			x2, y2 = x1, y1
			x1 = b - (b-a)*rfi
			if y1, err = f.Eval(x1); err != nil {
				return 0, k, err
			}
		}

		if onIter != nil {
			it := Iter{K: k, A: a, B: b, X1: x1, X2: x2, Y1: y1, Y2: y2, Len: b - a}
			if err := onIter(it); err != nil {
				if errors.Is(err, ErrStopped) {
					return 0, k, ErrStopped
				}
				return 0, k, err
			}
		}

		if math.Abs(b-a) < eps {
			return (a + b) / 2, k, nil
		}
	}

	return 0, maxIter, ErrIterLimit
}
