package optimizer

import (
	"errors"
	"fmt"
)

// ErrBadIndex — запрошен несуществующий номер функции
var ErrBadIndex = errors.New("registry: неверный индекс функции")

// Registry — упорядоченный набор доступных функций.
// Заполняется один раз при создании, дальше только чтение.
type Registry struct {
	funcs []Func
}

func NewRegistry(funcs ...Func) *Registry {
	return &Registry{funcs: append([]Func(nil), funcs...)}
}

// DefaultRegistry — стандартный набор: x^2 и sin(x).
func DefaultRegistry() *Registry {
	return NewRegistry(Square(), Sin())
}

// Get возвращает функцию по индексу [0;Size).
func (r *Registry) Get(index int) (Func, error) {
	if index < 0 || index >= len(r.funcs) {
		return nil, fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	return r.funcs[index], nil
}

// Size — кол-во зарегистрированных функций.
func (r *Registry) Size() int { return len(r.funcs) }
