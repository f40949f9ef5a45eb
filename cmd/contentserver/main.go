package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	server := &contentServer{
		quizDir: getEnv("CONTENT_QUIZ_DIR", "./src/data/quizzes"),
		pdfDir:  getEnv("CONTENT_PDF_DIR", "./public/pdfs"),
	}
	addr := ":" + getEnv("CONTENT_PORT", "4000")

	router := mux.NewRouter()
	router.HandleFunc("/list-quizzes", server.listQuizzes).Methods("GET", "OPTIONS")
	router.HandleFunc("/save-quiz", server.saveQuiz).Methods("POST", "OPTIONS")
	router.HandleFunc("/list-pdfs", server.listPDFs).Methods("GET", "OPTIONS")
	router.HandleFunc("/upload-pdf", server.uploadPDF).Methods("POST", "OPTIONS")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	log.Printf("Local content server running on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, c.Handler(router)); err != nil {
		log.Fatal("Failed to start content server:", err)
	}
}
