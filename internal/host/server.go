// Package host drives visual instances over HTTP
// the way a report host does: construct, update with
// data views, enumerate property pane objects and destroy.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domonda/go-regrid/dom"
	"github.com/domonda/go-regrid/powerbi"
)

// ShutdownTimeout limits the graceful shutdown of Serve.
const ShutdownTimeout = 5 * time.Second

// DefaultMaxUpdateSize is the default limit
// for the body of an update request.
const DefaultMaxUpdateSize = 32 << 20

// Server hosts visual instances created with one constructor.
type Server struct {
	newVisual powerbi.VisualConstructor
	viewport  powerbi.Viewport
	log       zerolog.Logger

	// MaxUpdateSize limits the body of update requests in bytes.
	MaxUpdateSize int64

	mu        sync.RWMutex
	instances map[uuid.UUID]*instance
}

// instance serializes all calls to its visual.
type instance struct {
	mu     sync.Mutex
	root   *dom.Element
	visual powerbi.Visual
}

// NewServer returns a Server constructing visuals with newVisual.
// Bare data views posted as update get the passed viewport.
// A nil logger discards all log output.
func NewServer(newVisual powerbi.VisualConstructor, viewport powerbi.Viewport, logger *zerolog.Logger) *Server {
	log := zerolog.Nop()
	if logger != nil {
		log = logger.With().Str("component", "host").Logger()
	}
	return &Server{
		newVisual:     newVisual,
		viewport:      viewport,
		log:           log,
		MaxUpdateSize: DefaultMaxUpdateSize,
		instances:     make(map[uuid.UUID]*instance),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		s.logRequests,
		middleware.Recoverer,
	)
	r.Route("/visuals", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleRender)
			r.Delete("/", s.handleDelete)
			r.Post("/update", s.handleUpdate)
			r.Get("/objects/{object}", s.handleObjects)
		})
	})
	return r
}

// Serve listens on addr until ctx is canceled
// and then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}
	eg.Go(func() error {
		s.log.Info().Str("addr", addr).Msg("serving visuals")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.log.Debug().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// Create constructs a new visual instance and returns its ID.
func (s *Server) Create() (uuid.UUID, error) {
	id := uuid.New()
	root := dom.NewElement("div")
	root.SetAttribute("id", "visual-"+id.String())
	log := s.log.With().Str("instance", id.String()).Logger()
	visual, err := s.newVisual(powerbi.ConstructorOptions{Element: root, Logger: &log})
	if err != nil {
		return uuid.Nil, err
	}
	s.mu.Lock()
	s.instances[id] = &instance{root: root, visual: visual}
	s.mu.Unlock()
	return id, nil
}

// Delete drops the instance with id
// and returns false if it doesn't exist.
func (s *Server) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.instances[id]
	delete(s.instances, id)
	return ok
}

// IDs returns the IDs of all instances.
func (s *Server) IDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	return ids
}

func (s *Server) instance(r *http.Request) (*instance, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ids": s.IDs()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := s.Create()
	if err != nil {
		s.log.Error().Err(err).Msg("can't construct visual")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.MaxUpdateSize)
	options, err := powerbi.DecodeUpdateOptions(body, s.viewport)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return
	}
	inst.mu.Lock()
	err = inst.visual.Update(r.Context(), options)
	inst.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Str("instance", chi.URLParam(r, "id")).Msg("update failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	inst.mu.Lock()
	html := inst.root.String()
	inst.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	inst.mu.Lock()
	objects := inst.visual.EnumerateObjectInstances(&powerbi.EnumerateVisualObjectInstancesOptions{
		ObjectName: chi.URLParam(r, "object"),
	})
	inst.mu.Unlock()
	writeJSON(w, http.StatusOK, objects)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || !s.Delete(id) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("requestID", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
