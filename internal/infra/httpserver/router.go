package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	domai "github.com/bryanwahyu/llm-extracter/internal/domain/ai"
	domain "github.com/bryanwahyu/llm-extracter/internal/domain/analysis"
	"github.com/bryanwahyu/llm-extracter/internal/middleware"
)

const maxBodyBytes = 1 << 20

// AnalysisService is the use-case surface the router needs
type AnalysisService interface {
	Analyze(ctx context.Context, text string) (*domain.Record, error)
	Search(ctx context.Context, topic string) ([]*domain.Record, error)
}

// Options wires optional infrastructure into the router. Zero values disable
// the corresponding feature.
type Options struct {
	Logger        *zap.Logger
	Metrics       *middleware.Metrics
	RateLimiter   *middleware.RateLimiter
	HealthChecks  map[string]middleware.HealthChecker
	MaxTextLength int
}

type Router struct {
	svc     AnalysisService
	log     *zap.Logger
	maxText int
}

func NewRouter(svc AnalysisService, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{svc: svc, log: log, maxText: opts.MaxTextLength}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID, chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	if opts.Metrics != nil {
		mux.Use(opts.Metrics.Middleware)
	}
	mux.Use(middleware.Logging(log))

	mux.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "LLM Extractor API"})
	})
	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(opts.HealthChecks))
	mux.Get("/readyz", middleware.ReadinessHandler)
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	mux.Group(func(rt chi.Router) {
		// only the completion-backed route is throttled
		if opts.RateLimiter != nil {
			rt.Use(middleware.RateLimit(opts.RateLimiter))
		}
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
	})
	mux.Get("/search", r.wrap(r.handleSearch))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks client input problems other than empty text
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

// errorBody is the payload for every non-2xx response produced by wrap
type errorBody struct {
	Error     string    `json:"error"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.writeError(w, req, err)
		}
	}
}

func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	var (
		failed *domain.AnalysisFailedError
		bad    *badRequestError
	)
	now := time.Now().UTC()

	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, errorBody{"Invalid Input", "Input text cannot be empty", now})
	case errors.As(err, &bad):
		writeJSON(w, http.StatusBadRequest, errorBody{"Invalid Input", bad.msg, now})
	case errors.As(err, &failed) && errors.Is(err, domai.ErrQuotaExceeded):
		writeJSON(w, http.StatusTooManyRequests, errorBody{"LLM Quota Exceeded", failed.Cause.Error(), failed.Timestamp})
	case errors.As(err, &failed):
		writeJSON(w, http.StatusInternalServerError, errorBody{"LLM Analysis Failed", failed.Cause.Error(), failed.Timestamp})
	default:
		r.log.Error("request failed",
			zap.String("path", req.URL.Path),
			zap.String("request_id", chimw.GetReqID(req.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{"Internal Server Error", err.Error(), now})
	}
}

// POST /analyze
// Body: {"text": "<free text>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text *string `json:"text"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is required")
		}
		return badRequest("invalid JSON body: %v", err)
	}
	if body.Text == nil {
		return badRequest("text is required")
	}
	if err := middleware.ValidateText(*body.Text, r.maxText); err != nil {
		return badRequest("%v", err)
	}

	rec, err := r.svc.Analyze(req.Context(), *body.Text)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, rec)
	return nil
}

// GET /search?topic=
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	topic := middleware.SanitizeString(req.URL.Query().Get("topic"))
	if err := middleware.ValidateTopic(topic); err != nil {
		return badRequest("%v", err)
	}

	list, err := r.svc.Search(req.Context(), topic)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Record{}
	}

	writeJSON(w, http.StatusOK, list)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
