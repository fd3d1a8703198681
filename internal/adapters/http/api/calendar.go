package api

import (
	"bytes"
	"net/http"
)

// CalendarHandler serves the iCalendar feed.
type CalendarHandler struct {
	deps Dependencies
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(deps Dependencies) *CalendarHandler {
	return &CalendarHandler{deps: deps}
}

// HandleGetCalendar handles GET /events.ics requests.
func (h *CalendarHandler) HandleGetCalendar(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calendar"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Buffer so a failed export still gets a JSON error instead of a partial feed.
	var buf bytes.Buffer
	if err := h.deps.WriteCalendar(r.Context(), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed", WrapKind(op, ErrExport, err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
