package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/edulab/learning-platform-backend/internal/api"
	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/pkg/session"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// main entry point - sets up everything and starts the server
func main() {
	// load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Failed to load .env file: %s\n", err)
		// not a big deal - Docker will set these anyway
	}

	dbURL := os.Getenv("DB_URL")

	// connect to postgres
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %s\n", err)
		return
	}
	defer db.Close()

	queries := database.New(db)
	session.Initialize(queries) // global session store - not ideal but works

	// wire everything together
	server := api.NewServer(db)
	handler := server.LogRequests(server.EnableCORS(server))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Starting server on :" + port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
