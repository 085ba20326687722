package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"goldmin/internal/optimizer"
	"goldmin/internal/sse"

	"github.com/google/uuid"
)

// Server — HTTP-обвязка над ядром поиска минимума
type Server struct {
	registry *optimizer.Registry
}

func New(registry *optimizer.Registry) *Server {
	return &Server{registry: registry}
}

// ListFunctions — список функций реестра для меню выбора
func (s *Server) ListFunctions(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
	}

	list := make([]entry, 0, s.registry.Size())
	for i := 0; i < s.registry.Size(); i++ {
		f, err := s.registry.Get(i)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		list = append(list, entry{Index: i, Name: f.Name()})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// resolveFunc выбирает функцию запуска: индекс реестра или выражение
func (s *Server) resolveFunc(p RunParams) (optimizer.Func, error) {
	if p.Expr != "" {
		return optimizer.NewEvalFunc(p.Expr)
	}
	if p.FuncID != nil {
		return s.registry.Get(*p.FuncID)
	}
	return nil, errors.New("требуется funcId или expr")
}

// StartRun запускает новый процесс поиска минимума
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}

	var p RunParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "ошибка JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if p.Precision <= 0 {
		p.Precision = 5
	}

	f, err := s.resolveFunc(p)
	if err != nil {
		http.Error(w, "ошибка выбора функции: "+err.Error(), http.StatusBadRequest)
		return
	}

	prob := optimizer.NewProblem()
	prob.SetBounds(p.A, p.B)
	prob.SetPrecision(p.Precision)
	prob.SetMaxIter(p.MaxIter)

	// строки состояния считаем до запуска горутины: дальше задачей
	// владеет только она
	boundsStr := prob.BoundsString()
	precisionStr := prob.PrecisionString()

	// предварительно считаем значения функции для графика
	const n = 400
	xs := make([]float64, n)
	ys := make([]float64, n)
	h := (prob.Right() - prob.Left()) / float64(n-1)
	for i := 0; i < n; i++ {
		x := prob.Left() + float64(i)*h
		y, err := f.Eval(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			y = math.NaN()
		}
		xs[i], ys[i] = x, y
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Params:    p,
		FuncName:  f.Name(),
		CreatedAt: time.Now(),
		Cancel:    cancel,
	}
	saveRun(rs)

	// асинхронный запуск поиска
	go func() {
		sse.Publish(id, map[string]any{
			"type": "start",
			"id":   id,
			"name": f.Name(),
		})

		onIter := func(it optimizer.Iter) error {
			select {
			case <-ctx.Done():
				return optimizer.ErrStopped
			default:
			}

			rs.addIter(it)

			sse.Publish(id, map[string]any{
				"type": "iter",
				"iter": it,
			})
			return nil
		}

		err := prob.FindMinimum(f, onIter)

		if err != nil {
			if errors.Is(err, optimizer.ErrStopped) || errors.Is(err, context.Canceled) {
				rs.finish("поиск остановлен", "")
				sse.Publish(id, map[string]any{"type": "stopped"})
				return
			}

			rs.finish(err.Error(), "")
			sse.Publish(id, map[string]any{
				"type": "error",
				"kind": errorKind(err),
				"err":  err.Error(),
			})
			return
		}

		rs.finish("", prob.SolutionString())

		fx, _ := f.Eval(prob.Minimum())
		sse.Publish(id, map[string]any{
			"type":       "done",
			"x":          prob.Minimum(),
			"fx":         fx,
			"iterations": prob.Iterations(),
			"solution":   prob.SolutionString(),
		})
	}()

	resp := map[string]any{
		"id":        id,
		"name":      f.Name(),
		"bounds":    boundsStr,
		"precision": precisionStr,
		"xs":        xs,
		"ys":        ys,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// errorKind — различимый код для ожидаемых ошибок ядра
func errorKind(err error) string {
	switch {
	case errors.Is(err, optimizer.ErrNoMinimum):
		return "no_minimum"
	case errors.Is(err, optimizer.ErrIterLimit):
		return "iteration_limit"
	case errors.Is(err, optimizer.ErrBadIndex):
		return "bad_index"
	default:
		return "eval"
	}
}

// RunStatus — текущее состояние запуска
func (s *Server) RunStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	last, n, solution, errMsg, done := rs.snapshot()
	resp := map[string]any{
		"id":         rs.ID,
		"name":       rs.FuncName,
		"params":     rs.Params,
		"createdAt":  rs.CreatedAt,
		"lastIter":   last,
		"iterations": n,
		"done":       done,
	}
	if solution != "" {
		resp["solution"] = solution
	}
	if errMsg != "" {
		resp["err"] = errMsg
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// StopRun — прерывание процесса поиска
func (s *Server) StopRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	if rs.Cancel != nil {
		rs.Cancel()
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV — экспорт итераций в CSV
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+id+".csv")

	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"k", "a", "b", "x1", "x2", "y1", "y2", "b-a"})

	for _, it := range rs.exportIters() {
		_ = cw.Write([]string{
			strconv.Itoa(it.K),
			fmtFloat(it.A),
			fmtFloat(it.B),
			fmtFloat(it.X1),
			fmtFloat(it.X2),
			fmtFloat(it.Y1),
			fmtFloat(it.Y2),
			fmtFloat(it.Len),
		})
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}

// Stream — SSE-стрим итераций
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := sse.Subscribe(id)
	defer cancel()

	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "event: msg\n")
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
