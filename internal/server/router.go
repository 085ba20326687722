package server

import "net/http"

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// API эндпоинты
	mux.HandleFunc("/functions", s.ListFunctions)
	mux.HandleFunc("/start", s.StartRun)
	mux.HandleFunc("/status", s.RunStatus)
	mux.HandleFunc("/stop", s.StopRun)
	mux.HandleFunc("/stream", s.Stream)
	mux.HandleFunc("/export", s.ExportCSV)

	return mux
}
