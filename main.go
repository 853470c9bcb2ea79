package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/example/readapt/internal/adaptation"
	"github.com/example/readapt/internal/ai"
	"github.com/example/readapt/internal/database"
	"github.com/example/readapt/internal/importer"
	"github.com/example/readapt/internal/scheduler"
	"github.com/example/readapt/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	importPath := flag.String("import", "", "import library content from an Excel or CSV file and exit")
	flag.Parse()

	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importPath != "" {
		runImport(*importPath)
		return
	}

	rewriter, err := ai.New()
	if err != nil {
		log.Fatalf("Failed to create rewrite client: %v", err)
	}

	orchestrator := adaptation.New(
		rewriter,
		database.NewVariantRepository(),
		database.NewWordLevelRepository(),
	)

	// Nightly sweep that pre-generates variants for uncovered content
	sched := scheduler.New(orchestrator)
	sched.Start()
	defer sched.Stop()

	// One immediate sweep on startup when requested, e.g. after an import
	if os.Getenv("PREGEN_ON_START") == "true" {
		go sched.RunManualSweep()
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(orchestrator, rewriter).Router(),
	}

	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("Server listening on %s. Press Ctrl+C to stop.", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	log.Println("Server stopped successfully")
}

// runImport bulk-loads library content and reports the outcome
func runImport(path string) {
	config := importer.DefaultImportConfig()
	config.FilePath = path

	result, err := importer.ImportContent(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished: %d processed, %d created, %d skipped",
		result.TotalProcessed, result.Created, result.Skipped)
	if len(result.Errors) > 0 {
		log.Printf("Import errors:\n%s", strings.Join(result.Errors, "\n"))
	}
}
