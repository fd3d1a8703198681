// Package render projects event records into HTML cards and assembles them
// into the upcoming, past and preview views.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/pkg/metrics"
)

// PreviewLimit is the number of upcoming events shown on the landing page.
const PreviewLimit = 2

// DefaultMembershipURL is where the membership call-to-action points.
const DefaultMembershipURL = "register.html"

// View identifies one rendered list.
type View string

// Known views.
const (
	ViewUpcoming View = "upcoming"
	ViewPast     View = "past"
	ViewPreview  View = "preview"
)

// Placeholder texts shown when a view has nothing to list.
const (
	PlaceholderUpcoming = "No upcoming events at the moment. Check back soon!"
	PlaceholderPast     = "No past events to display."
	PlaceholderPreview  = "No upcoming events at the moment."
)

// DateFormatter turns an ISO date into display text.
type DateFormatter interface {
	LongDate(date string) string
}

// Renderer builds HTML fragments for events.
type Renderer struct {
	dates         DateFormatter
	membershipURL string
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithMembershipURL overrides the membership call-to-action destination.
func WithMembershipURL(url string) Option {
	return func(r *Renderer) {
		if url != "" {
			r.membershipURL = url
		}
	}
}

// New creates a Renderer that formats dates with dates.
func New(dates DateFormatter, opts ...Option) *Renderer {
	r := &Renderer{
		dates:         dates,
		membershipURL: DefaultMembershipURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// cardData is the template input for one card.
type cardData struct {
	Type          string
	Title         string
	Date          string
	Time          string
	Location      string
	Description   string
	RegisterLink  string
	MembershipURL string
}

var (
	cardTmpl = template.Must(template.New("card").Parse(`
<div class="event-card">
  <span class="event-type">{{.Type}}</span>
  <h3>{{.Title}}</h3>
  <div class="event-meta">
    <span>📅 {{.Date}}</span>
    <span>⏰ {{.Time}}</span>
    <span>📍 {{.Location}}</span>
  </div>
  <p class="event-description">{{.Description}}</p>
  {{if .RegisterLink}}<a href="{{.RegisterLink}}" class="btn btn-primary" target="_blank" rel="noopener noreferrer">Register for Event</a>{{else}}<a href="{{.MembershipURL}}" class="btn btn-primary">Become a Member</a>{{end}}
</div>
`))

	placeholderTmpl = template.Must(template.New("placeholder").Parse(`<div class="no-events">{{.}}</div>`))
)

// Card renders one event. All text is escaped for its HTML context.
func (r *Renderer) Card(e model.Event) (template.HTML, error) {
	data := cardData{
		Type:          e.Type,
		Title:         e.Title,
		Date:          r.dates.LongDate(e.Date),
		Time:          e.Time,
		Location:      e.Location,
		Description:   e.Description,
		RegisterLink:  e.RegisterLink,
		MembershipURL: r.membershipURL,
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: card %q: %w", ErrRender, e.Title, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

// Full renders every event of a partition in order, or the partition's
// placeholder when it is empty. view must be ViewUpcoming or ViewPast.
func (r *Renderer) Full(view View, events []model.Event) (template.HTML, error) {
	var placeholder string
	switch view {
	case ViewUpcoming:
		placeholder = PlaceholderUpcoming
	case ViewPast:
		placeholder = PlaceholderPast
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	return r.list(view, events, placeholder)
}

// Preview renders the first PreviewLimit upcoming events.
func (r *Renderer) Preview(upcoming []model.Event) (template.HTML, error) {
	if len(upcoming) > PreviewLimit {
		upcoming = upcoming[:PreviewLimit]
	}
	return r.list(ViewPreview, upcoming, PlaceholderPreview)
}

func (r *Renderer) list(view View, events []model.Event, placeholder string) (template.HTML, error) {
	start := time.Now()

	var buf bytes.Buffer
	if len(events) == 0 {
		if err := placeholderTmpl.Execute(&buf, placeholder); err != nil {
			return "", fmt.Errorf("%w: %s placeholder: %w", ErrRender, view, err)
		}
		metrics.RecordPlaceholder(string(view))
	}
	for _, e := range events {
		card, err := r.Card(e)
		if err != nil {
			return "", err
		}
		buf.WriteString(string(card))
	}

	metrics.RecordRender(string(view), float64(time.Since(start).Microseconds())/1000)
	return template.HTML(buf.String()), nil //nolint:gosec // assembled from escaped fragments
}
