// Package api serves the events as JSON and iCalendar, plus the operational
// endpoints.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/eventboard/internal/domain/model"
)

// Dependencies is what the handlers need from the events service.
type Dependencies interface {
	// Snapshot returns today's classified events.
	Snapshot(ctx context.Context) (model.Snapshot, error)

	// WriteCalendar writes the iCalendar feed of every event.
	WriteCalendar(ctx context.Context, w io.Writer) error
}

// Server groups the API handlers.
type Server struct {
	ops      *OpsHandler
	events   *EventsHandler
	calendar *CalendarHandler
}

// NewServer creates the API handlers over deps and stats.
func NewServer(deps Dependencies, stats StatsProvider) *Server {
	return &Server{
		ops:      NewOpsHandler(stats),
		events:   NewEventsHandler(deps),
		calendar: NewCalendarHandler(deps),
	}
}

type route struct {
	pattern  string
	endpoint string
	handle   http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{"/healthz", "healthz", s.ops.HandleHealth},
		{"/stats", "stats", s.ops.HandleStats},
		{"/api/events", "events", s.events.HandleGetEvents},
		{"/events.ics", "calendar", s.calendar.HandleGetCalendar},
	}
}

// Register attaches the API routes to mux, each instrumented under its
// endpoint label.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	for _, rt := range s.routes() {
		mux.HandleFunc(rt.pattern, MetricsMiddleware(rt.handle, rt.endpoint))
	}
}

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
