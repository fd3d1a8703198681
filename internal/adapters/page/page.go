// Package page fills the event containers of an HTML page.
//
// A page is inspected for three containers identified by id:
// upcoming-events and past-events hold the full lists, events-preview holds
// the landing-page preview. Full lists take precedence over the preview.
package page

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/internal/render"
	"github.com/okian/eventboard/pkg/logger"
	"github.com/okian/eventboard/pkg/metrics"
)

// Container ids.
const (
	UpcomingContainer = "upcoming-events"
	PastContainer     = "past-events"
	PreviewContainer  = "events-preview"
)

// Mode reports which assembly a page received.
type Mode string

// Dispatch modes.
const (
	ModeFull    Mode = "full"
	ModePreview Mode = "preview"
	ModeNone    Mode = "none"
)

// ViewRenderer assembles the HTML placed into containers.
type ViewRenderer interface {
	Full(view render.View, events []model.Event) (template.HTML, error)
	Preview(upcoming []model.Event) (template.HTML, error)
}

// Dispatcher detects containers and fills them.
type Dispatcher struct {
	views ViewRenderer
	log   logger.Logger
}

// NewDispatcher creates a Dispatcher backed by views.
func NewDispatcher(views ViewRenderer) *Dispatcher {
	return &Dispatcher{views: views, log: logger.Named("page")}
}

// Apply fills the containers found in doc and returns the mode it used.
// Applying twice with the same partitions yields the same document.
func (d *Dispatcher) Apply(doc *goquery.Document, p model.Partitions) (Mode, error) {
	upcoming := doc.Find("#" + UpcomingContainer).First()
	past := doc.Find("#" + PastContainer).First()

	if upcoming.Length() > 0 || past.Length() > 0 {
		if err := d.fillFull(upcoming, render.ViewUpcoming, p.Upcoming); err != nil {
			return ModeNone, err
		}
		if err := d.fillFull(past, render.ViewPast, p.Past); err != nil {
			return ModeNone, err
		}
		metrics.RecordDispatch(string(ModeFull))
		return ModeFull, nil
	}

	// The preview only runs when its container is unambiguous.
	preview := doc.Find("#" + PreviewContainer)
	if preview.Length() == 1 {
		html, err := d.views.Preview(p.Upcoming)
		if err != nil {
			return ModeNone, fmt.Errorf("%w: #%s: %w", ErrFill, PreviewContainer, err)
		}
		preview.SetHtml(string(html))
		metrics.RecordDispatch(string(ModePreview))
		return ModePreview, nil
	}

	metrics.RecordDispatch(string(ModeNone))
	return ModeNone, nil
}

func (d *Dispatcher) fillFull(sel *goquery.Selection, view render.View, events []model.Event) error {
	if sel.Length() == 0 {
		return nil
	}
	html, err := d.views.Full(view, events)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFill, view, err)
	}
	sel.SetHtml(string(html))
	return nil
}

// Render parses the page from r, fills its containers and writes the result
// to w.
func (d *Dispatcher) Render(ctx context.Context, r io.Reader, w io.Writer, p model.Partitions) (Mode, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ModeNone, fmt.Errorf("%w: %w", ErrParse, err)
	}

	mode, err := d.Apply(doc, p)
	if err != nil {
		d.log.Error(ctx, "failed to fill page", logger.Error(err))
		return ModeNone, err
	}

	out, err := doc.Html()
	if err != nil {
		return ModeNone, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return ModeNone, err
	}

	d.log.Debug(ctx, "page rendered", logger.String("mode", string(mode)))
	return mode, nil
}
