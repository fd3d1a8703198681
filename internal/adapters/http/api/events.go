package api

import (
	"fmt"
	"net/http"

	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/classify"
	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/internal/render"
)

// EventsHandler serves the classified events as JSON.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type eventsResponse struct {
	Today    string        `json:"today"`
	Upcoming []model.Event `json:"upcoming"`
	Past     []model.Event `json:"past"`
}

type previewResponse struct {
	Today   string        `json:"today"`
	Preview []model.Event `json:"preview"`
}

// HandleGetEvents handles GET /api/events requests. The optional view query
// parameter selects "preview" for the landing-page slice; anything else but
// an empty value is rejected.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	view := r.URL.Query().Get("view")
	if view != "" && view != string(render.ViewPreview) {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, fmt.Errorf("unknown view %q", view)))
		return
	}

	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	today := snap.Today.Format(calendar.DateLayout)

	if view == string(render.ViewPreview) {
		writeJSON(w, http.StatusOK, previewResponse{
			Today:   today,
			Preview: nonNil(classify.Preview(snap.Partitions, render.PreviewLimit)),
		})
		return
	}

	writeJSON(w, http.StatusOK, eventsResponse{
		Today:    today,
		Upcoming: nonNil(snap.Partitions.Upcoming),
		Past:     nonNil(snap.Partitions.Past),
	})
}

// nonNil makes empty partitions encode as [] rather than null.
func nonNil(events []model.Event) []model.Event {
	if events == nil {
		return []model.Event{}
	}
	return events
}
