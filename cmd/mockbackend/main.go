// Package main runs the in-memory development backend.
//
// It serves the same /api endpoints as the production backend so the CLI can
// be exercised without one. State is lost on exit.
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

	"github.com/gin-gonic/gin"

	"github.com/voltrak-labs/showroom/internal/config"
	"github.com/voltrak-labs/showroom/internal/mockbackend"
	"github.com/voltrak-labs/showroom/internal/seed"
	"github.com/voltrak-labs/showroom/pkg/api"
	"github.com/voltrak-labs/showroom/pkg/models"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mockbackend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file (default: ~/.showroom/config.yaml)")
		addr       = flag.String("addr", "", "HTTP listen address (overrides mockbackend.listen)")
		noSeed     = flag.Bool("empty", false, "start with no content")
		debug      = flag.Bool("debug", false, "log every request")
	)
	flag.Parse()

	cfg, err := config.Load(config.Options{ConfigPath: *configPath})
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.MockBackend.Listen = *addr
	}

	var opts []mockbackend.Option
	if *debug {
		gin.SetMode(gin.DebugMode)
		opts = append(opts, mockbackend.WithRequestLog(os.Stderr))
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	backend := mockbackend.New(opts...)
	if cfg.MockBackend.Seed && !*noSeed {
		if err := seedDemo(backend); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		log.Println("Seeded demo content")
	}

	server := &http.Server{
		Addr:         cfg.MockBackend.Listen,
		Handler:      backend.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down mock backend...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		close(done)
	}()

	log.Printf("Mock backend listening on %s", cfg.MockBackend.Listen)
	log.Printf("Try: showroom --backend http://localhost%s products", cfg.MockBackend.Listen)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	log.Println("Mock backend stopped")
	return nil
}

func seedDemo(b *mockbackend.Server) error {
	catalog := seed.Example()
	for _, p := range catalog.Products {
		if err := b.Seed(api.EndpointProducts, p); err != nil {
			return err
		}
	}
	for _, q := range catalog.QnA {
		if err := b.Seed(api.EndpointQnA, q); err != nil {
			return err
		}
	}
	for _, a := range catalog.Awards {
		if err := b.Seed(api.EndpointAwards, a); err != nil {
			return err
		}
	}
	for _, m := range catalog.Media {
		if err := b.Seed(api.EndpointMedia, m); err != nil {
			return err
		}
	}
	return b.Seed(api.EndpointBlogs,
		models.Blog{
			Title:           "Why electric tractors pay for themselves",
			Author:          "Showroom Team",
			Description:     "Running cost compared over seven years.",
			Content:         "Diesel costs four times as much per hour as electricity.",
			PublicationDate: "2024-03-01",
			ReadingTime:     "4 min read",
			Tags:            []string{"tco", "electric"},
		},
		models.Blog{
			Title:           "Field report: a season with the E-Tractor 40",
			Author:          "Showroom Team",
			Description:     "What a full season of work looked like.",
			PublicationDate: "2024-06-15",
			ReadingTime:     "6 min read",
		},
		models.Blog{
			Title:           "Charging on the farm",
			Author:          "Showroom Team",
			PublicationDate: "2024-09-10",
			ReadingTime:     "3 min read",
		},
	)
}
