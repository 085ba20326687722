package server

import (
	"context"
	"sync"
	"time"

	"goldmin/internal/optimizer"
)

// параметры запуска поиска минимума
type RunParams struct {
	// либо индекс функции из реестра, либо произвольное выражение f(x)
	FuncID    *int    `json:"funcId,omitempty"`
	Expr      string  `json:"expr,omitempty"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Precision int     `json:"precision"`
	MaxIter   int     `json:"maxIter"`
}

// состояние одного запуска. Изменяемые поля закрыты мьютексом:
// горутина поиска пишет их параллельно с чтением из HTTP-обработчиков.
type RunState struct {
	ID        string
	Params    RunParams
	FuncName  string
	CreatedAt time.Time
	Cancel    context.CancelFunc

	mu       sync.Mutex
	lastIter optimizer.Iter
	iters    []optimizer.Iter
	solution string
	errMsg   string
	done     bool
}

func (rs *RunState) addIter(it optimizer.Iter) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.lastIter = it
	rs.iters = append(rs.iters, it)
}

// finish фиксирует завершение запуска: пустой msg — успех
func (rs *RunState) finish(msg, solution string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.errMsg = msg
	rs.solution = solution
	rs.done = msg == ""
}

// snapshot — согласованный снимок изменяемого состояния
func (rs *RunState) snapshot() (last optimizer.Iter, n int, solution, errMsg string, done bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastIter, len(rs.iters), rs.solution, rs.errMsg, rs.done
}

// exportIters — копия итераций для экспорта
func (rs *RunState) exportIters() []optimizer.Iter {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]optimizer.Iter(nil), rs.iters...)
}

var (
	runsMu sync.Mutex
	runs   = map[string]*RunState{}
)

func saveRun(rs *RunState) {
	runsMu.Lock()
	defer runsMu.Unlock()
	runs[rs.ID] = rs
}

func getRun(id string) *RunState {
	runsMu.Lock()
	defer runsMu.Unlock()
	return runs[id]
}
