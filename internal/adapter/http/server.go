// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"glucolog/internal/app"
)

// RequestObserver records per-request metrics.
type RequestObserver interface {
	ObserveRequest(route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	WebDir   string
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
	Metrics  RequestObserver
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	readings *app.ReadingService
	reports  *app.ReportService
	webDir   string
	loc      *time.Location
	now      func() time.Time
	log      *slog.Logger
	metrics  RequestObserver
}

// New creates a Server wired to the given application services.
func New(rs *app.ReadingService, rp *app.ReportService, opts Options) *Server {
	s := &Server{
		readings: rs,
		reports:  rp,
		webDir:   opts.WebDir,
		loc:      opts.Location,
		now:      opts.Now,
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(chimw.Recoverer)
	root.Use(s.loggingMiddleware)

	root.Route("/api", func(api chi.Router) {
		api.Use(withNoCache)
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		api.Get("/readings", s.handleReadingsList)
		api.Post("/readings", s.handleReadingsCreate)
		api.Get("/readings/recent", s.handleReadingsRecent)
		api.Get("/readings/events", s.handleReadingEvents)

		api.Get("/summary/daily", s.handleSummaryDaily)
		api.Get("/report/weekly", s.handleReportWeekly)
		api.Get("/calendar", s.handleCalendar)
		api.Get("/history", s.handleHistory)

		api.Get("/classify", s.handleClassify)
		api.Get("/guidance", s.handleGuidance)
	})

	if s.metrics != nil {
		root.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	if s.webDir != "" {
		root.Handle("/*", withNoCache(spaFromDisk(s.webDir)))
	}
	return root
}

func (s *Server) today() time.Time {
	return s.now().In(s.loc)
}
