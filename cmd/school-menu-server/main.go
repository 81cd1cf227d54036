package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-menu/internal/cache"
	"school-menu/internal/config"
	"school-menu/internal/database"
	"school-menu/internal/fetcher"
	"school-menu/internal/menu"
	"school-menu/internal/metrics"
	"school-menu/internal/nutrislice"
	"school-menu/internal/proxy"
	"school-menu/internal/widget"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize the SQLite database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	menuCache := cache.NewMenuCache(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// 3. Initialize the upstream client and services
	client := nutrislice.NewClient(cfg)
	menuFetcher := fetcher.New(client, menuCache, metricsStore, menu.ModePlain)

	// 4. Wire handlers
	http.Handle("/api/menu", proxy.NewHandler(client))
	http.Handle("/", widget.NewHandler(menuFetcher, menuCache))
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		log.Printf("School Menu Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
