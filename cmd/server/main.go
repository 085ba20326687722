package main

import (
	"log"
	"net/http"

	"goldmin/internal/optimizer"
	"goldmin/internal/server"
)

func main() {
	srv := server.New(optimizer.DefaultRegistry())
	log.Println("Сервер запущен на http://localhost:8080")
	log.Fatal(http.ListenAndServe(":8080", srv.Router()))
}
