/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the roster cost engine server: opens the
  SQLite store, wires the API handler and router, and runs the HTTP
  server with graceful shutdown.

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: roster.db)
           Use ":memory:" for an in-memory database
  -anchor  First month of the displayed range, YYYY-MM
           (default: January of the current year)
  -seed    Load the demo dataset on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian/roster-engine/api"
	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "roster.db", "SQLite database path")
	anchorFlag := flag.String("anchor", "", "first displayed month, YYYY-MM (default: January of current year)")
	seed := flag.Bool("seed", false, "load the demo dataset on startup")
	flag.Parse()

	anchor, err := parseAnchor(*anchorFlag)
	if err != nil {
		log.Fatalf("Invalid -anchor: %v", err)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if *seed {
		if err := api.Seed(context.Background(), store); err != nil {
			log.Fatalf("Failed to load seed data: %v", err)
		}
		log.Println("Seed data loaded")
	}

	handler := api.NewHandler(store, anchor)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func parseAnchor(s string) (calendar.Month, error) {
	if s == "" {
		return calendar.Month{Year: time.Now().Year(), Month: time.January}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.MonthOf(t), nil
}
