package metrics

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exposition serves the Prometheus scrape endpoint on localhost.
// The dashboard has no application-facing HTTP surface; this single
// route exists purely for observability and is off by default.
type Exposition struct {
	port   string
	server *http.Server
}

// NewExposition creates a metrics exposition server for the given port
func NewExposition(port string) *Exposition {
	return &Exposition{port: port}
}

// Start implements core.Interface
func (e *Exposition) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	e.server = &http.Server{
		Addr:    "localhost:" + e.port,
		Handler: mux,
	}

	log.Printf("Metrics: exposition available at http://localhost:%s/metrics", e.port)

	go func() {
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics: exposition server error: %v", err)
		}
	}()

	return nil
}

// Stop implements core.Interface
func (e *Exposition) Stop() {
	if e.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.server.Shutdown(ctx); err != nil {
		log.Printf("Metrics: exposition shutdown error: %v", err)
	}
}
