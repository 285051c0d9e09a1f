package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/meihua"
	"github.com/aretw0/meihua/internal/presentation/report"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/aretw0/meihua/pkg/schema"
	"github.com/go-chi/chi/v5"
)

const (
	defaultHistoryLimit = 20
	maxBodyBytes        = 1 << 16
)

// Engine is the part of the casting engine the API exposes.
type Engine interface {
	CastThree(ctx context.Context, n1, n2, n3 int) (*domain.Reading, error)
	CastCalendar(ctx context.Context, yearBranch domain.Branch, month, day int, hourBranch domain.Branch) (*domain.Reading, error)
	Reading(ctx context.Context, id string) (*domain.Reading, error)
	History(ctx context.Context, limit int) ([]*domain.Reading, error)
}

// Server holds the handlers of the HTTP API.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics *Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.Logger = l
		}
	}
}

// WithMetrics exposes m on /metrics and observes every request with it.
// The engine should be built with m.Hooks() for the casting counters to move.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	server := &Server{
		Engine: engine,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	r := chi.NewRouter()
	if server.Metrics != nil {
		r.Use(server.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", server.Metrics.Handler())
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	r.Route("/v1", func(r chi.Router) {
		r.Use(validate)
		r.Post("/cast/three", server.CastThree)
		r.Post("/cast/calendar", server.CastCalendar)
		r.Get("/trigrams", server.ListTrigrams)
		r.Get("/hexagrams/{upper}/{lower}", server.GetHexagram)
		r.Get("/relations/{body}/{use}", server.GetRelation)
		r.Get("/readings", server.ListReadings)
		r.Get("/readings/{id}", server.GetReading)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Meihua API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// CastThree handles POST /v1/cast/three.
func (s *Server) CastThree(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r, schema.ThreeNumbers)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	n1, _ := schema.AsInt(body["n1"])
	n2, _ := schema.AsInt(body["n2"])
	n3, _ := schema.AsInt(body["n3"])

	reading, err := s.Engine.CastThree(r.Context(), n1, n2, n3)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeReading(w, r, reading)
}

// CastCalendar handles POST /v1/cast/calendar.
func (s *Server) CastCalendar(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r, schema.Calendar)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	yb, _ := schema.AsBranch(body["year_branch"])
	month, _ := schema.AsInt(body["month"])
	day, _ := schema.AsInt(body["day"])
	hb, _ := schema.AsBranch(body["hour_branch"])

	reading, err := s.Engine.CastCalendar(r.Context(), yb, month, day, hb)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeReading(w, r, reading)
}

// ListTrigrams handles GET /v1/trigrams.
func (s *Server) ListTrigrams(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Trigrams())
}

// HexagramResponse is the body of GET /v1/hexagrams/{upper}/{lower}.
type HexagramResponse struct {
	domain.HexagramView
	UpperTrigram domain.Trigram      `json:"upper_trigram"`
	LowerTrigram domain.Trigram      `json:"lower_trigram"`
	Mutual       domain.HexagramView `json:"mutual"`
	Figure       string              `json:"figure"`
}

// GetHexagram handles GET /v1/hexagrams/{upper}/{lower}.
func (s *Server) GetHexagram(w http.ResponseWriter, r *http.Request) {
	upper, err := pathInt(r, "upper")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	lower, err := pathInt(r, "lower")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := schema.Validate(schema.TrigramPair, map[string]any{"upper": upper, "lower": lower}); err != nil {
		s.fail(w, r, err)
		return
	}

	h, err := domain.Encode(domain.TrigramID(upper), domain.TrigramID(lower))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ut, _ := domain.LookupTrigram(h.Upper())
	lt, _ := domain.LookupTrigram(h.Lower())
	s.writeJSON(w, http.StatusOK, HexagramResponse{
		HexagramView: h.View(),
		UpperTrigram: ut,
		LowerTrigram: lt,
		Mutual:       h.Mutual().View(),
		Figure:       report.Figure(h, 0),
	})
}

// RelationResponse is the body of GET /v1/relations/{body}/{use}.
type RelationResponse struct {
	Body      domain.Element  `json:"body"`
	Use       domain.Element  `json:"use"`
	Relation  domain.Relation `json:"relation"`
	Text      string          `json:"text"`
	Favorable bool            `json:"favorable"`
}

// GetRelation handles GET /v1/relations/{body}/{use}.
func (s *Server) GetRelation(w http.ResponseWriter, r *http.Request) {
	body, err := domain.ParseElement(chi.URLParam(r, "body"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	use, err := domain.ParseElement(chi.URLParam(r, "use"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rel := domain.ElementRelation(body, use)
	s.writeJSON(w, http.StatusOK, RelationResponse{
		Body:      body,
		Use:       use,
		Relation:  rel,
		Text:      rel.String(),
		Favorable: rel.Favorable(),
	})
}

// ListReadings handles GET /v1/readings.
func (s *Server) ListReadings(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.fail(w, r, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidInput))
			return
		}
		limit = n
	}

	readings, err := s.Engine.History(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, readings)
}

// GetReading handles GET /v1/readings/{id}.
func (s *Server) GetReading(w http.ResponseWriter, r *http.Request) {
	reading, err := s.Engine.Reading(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeReading(w, r, reading)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "meihua-http",
		"version":     strings.TrimSpace(meihua.Version),
		"api_version": apiVersion,
	})
}

// -- Helpers --

func decodeBody(r *http.Request, shape schema.Schema) (map[string]any, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidInput, err)
	}
	if err := schema.Validate(shape, body); err != nil {
		return nil, err
	}
	return body, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return n, nil
}

func (s *Server) writeReading(w http.ResponseWriter, r *http.Request, reading *domain.Reading) {
	switch r.URL.Query().Get("format") {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, report.Text(reading, report.Options{Figure: true}))
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, report.Markdown(reading, report.Options{Figure: true}))
	default:
		s.writeJSON(w, http.StatusOK, reading)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

// fail maps domain errors onto status codes and logs server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.Logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReadingNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
