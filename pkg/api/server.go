package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/snapshot"
)

// GraphHolder is the host-written, handler-read copy of the graph document.
type GraphHolder struct {
	mu sync.RWMutex
	g  graph.Graph
	ok bool
}

// Set replaces the held document. Called by the host after every load.
func (h *GraphHolder) Set(g graph.Graph) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.g = g
	h.ok = true
}

// Get returns the held document and whether one was ever set.
func (h *GraphHolder) Get() (graph.Graph, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.g, h.ok
}

// Server is the read-only HTTP surface.
type Server struct {
	id     string
	holder *GraphHolder
	pub    snapshot.Publisher
	router chi.Router
}

// NewServer builds the router. Each server instance carries a UUID so
// consumers can tell restarts apart.
func NewServer(holder *GraphHolder, pub snapshot.Publisher) *Server {
	s := &Server{
		id:     uuid.NewString(),
		holder: holder,
		pub:    pub,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/positions", s.handlePositions)
	})
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"instance": s.id,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	g, ok := s.holder.Get()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no graph loaded"})
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.pub.Latest(r.Context())
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot published"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
