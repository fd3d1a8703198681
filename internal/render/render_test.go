package render_test

import (
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/classify"
	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/internal/render"
	"github.com/okian/eventboard/internal/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func parse(h template.HTML) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(h)))
	if err != nil {
		panic(err)
	}
	return doc
}

func newRenderer(opts ...render.Option) *render.Renderer {
	return render.New(calendar.NewFormatter(calendar.DefaultLocale), opts...)
}

func TestCard(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r := newRenderer()

		Convey("When rendering an event with a registration link", func() {
			e := testutil.SampleEvents()[0]
			h, err := r.Card(e)
			So(err, ShouldBeNil)
			doc := parse(h)

			Convey("Then every field is present", func() {
				So(doc.Find(".event-card").Length(), ShouldEqual, 1)
				So(doc.Find(".event-type").Text(), ShouldEqual, "Workshop")
				So(doc.Find("h3").Text(), ShouldEqual, "Intro to AI Workshop")
				meta := doc.Find(".event-meta span")
				So(meta.Length(), ShouldEqual, 3)
				So(meta.Eq(0).Text(), ShouldEqual, "📅 November 25, 2025")
				So(meta.Eq(1).Text(), ShouldEqual, "⏰ 3:00 PM – 5:00 PM")
				So(meta.Eq(2).Text(), ShouldEqual, "📍 Room 101, CS Building")
				So(doc.Find(".event-description").Text(), ShouldEqual, e.Description)
			})

			Convey("Then exactly one register action opens the link in a new tab", func() {
				a := doc.Find("a")
				So(a.Length(), ShouldEqual, 1)
				So(a.Text(), ShouldEqual, "Register for Event")
				So(a.AttrOr("href", ""), ShouldEqual, "https://example.com/register")
				So(a.AttrOr("target", ""), ShouldEqual, "_blank")
			})
		})

		Convey("When rendering an event without a registration link", func() {
			h, err := r.Card(testutil.SampleEvents()[1])
			So(err, ShouldBeNil)
			a := parse(h).Find("a")

			Convey("Then the membership action points at the fixed destination", func() {
				So(a.Length(), ShouldEqual, 1)
				So(a.Text(), ShouldEqual, "Become a Member")
				So(a.AttrOr("href", ""), ShouldEqual, render.DefaultMembershipURL)
				_, hasTarget := a.Attr("target")
				So(hasTarget, ShouldBeFalse)
			})
		})

		Convey("When any non-empty link is given", func() {
			for _, link := range []string{"/join", "https://x.test/r?a=1&b=2", "register-now"} {
				h, err := r.Card(model.Event{Title: "t", Date: "2026-01-01", RegisterLink: link})
				So(err, ShouldBeNil)
				a := parse(h).Find("a")
				So(a.Text(), ShouldEqual, "Register for Event")
				So(a.AttrOr("href", ""), ShouldEqual, link)
			}
		})

		Convey("When text fields carry markup", func() {
			e := model.Event{
				Title:       `<script>alert("x")</script>`,
				Date:        "2026-01-01",
				Type:        "<b>Talk</b>",
				Location:    `"Hall" & <Annex>`,
				Description: "<img src=x onerror=alert(1)>",
			}
			h, err := r.Card(e)
			So(err, ShouldBeNil)
			doc := parse(h)

			Convey("Then the markup is escaped and shown as text", func() {
				So(string(h), ShouldNotContainSubstring, "<script>")
				So(string(h), ShouldNotContainSubstring, "<img")
				So(doc.Find("script, img, b").Length(), ShouldEqual, 0)
				So(doc.Find("h3").Text(), ShouldEqual, e.Title)
				So(doc.Find(".event-type").Text(), ShouldEqual, e.Type)
				So(doc.Find(".event-description").Text(), ShouldEqual, e.Description)
			})
		})

		Convey("When the link uses a script scheme", func() {
			h, err := r.Card(model.Event{Title: "t", Date: "2026-01-01", RegisterLink: "javascript:alert(1)"})
			So(err, ShouldBeNil)
			a := parse(h).Find("a")

			Convey("Then it stays a register action with a neutralized href", func() {
				So(a.Text(), ShouldEqual, "Register for Event")
				So(a.AttrOr("href", ""), ShouldNotContainSubstring, "javascript")
			})
		})
	})

	Convey("Given a custom membership destination", t, func() {
		r := newRenderer(render.WithMembershipURL("/membership"))
		h, err := r.Card(model.Event{Title: "t", Date: "2026-01-01"})

		So(err, ShouldBeNil)
		So(parse(h).Find("a").AttrOr("href", ""), ShouldEqual, "/membership")
	})
}

func TestViews(t *testing.T) {
	Convey("Given the sample partitions for today = 2025-11-01", t, func() {
		r := newRenderer()
		p, err := classify.Split(testutil.SampleEvents(), testutil.NormalizerAt("2025-11-01"))
		So(err, ShouldBeNil)

		Convey("When rendering the full upcoming view", func() {
			h, err := r.Full(render.ViewUpcoming, p.Upcoming)
			So(err, ShouldBeNil)
			titles := parse(h).Find(".event-card h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })

			Convey("Then cards follow partition order", func() {
				So(titles, ShouldResemble, testutil.Titles(p.Upcoming))
			})

			Convey("Then rendering again is byte-identical", func() {
				again, err := r.Full(render.ViewUpcoming, p.Upcoming)
				So(err, ShouldBeNil)
				So(again, ShouldEqual, h)
			})
		})

		Convey("When rendering the preview", func() {
			h, err := r.Preview(p.Upcoming)
			So(err, ShouldBeNil)
			titles := parse(h).Find(".event-card h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })

			Convey("Then it shows the first two upcoming events", func() {
				So(titles, ShouldResemble, []string{"Tech Talk: IoT in Smart Cities", "Intro to AI Workshop"})
			})
		})

		Convey("When rendering a preview of a single event", func() {
			h, err := r.Preview(p.Upcoming[:1])
			So(err, ShouldBeNil)
			So(parse(h).Find(".event-card").Length(), ShouldEqual, 1)
		})
	})

	Convey("Given empty partitions", t, func() {
		r := newRenderer()

		up, err1 := r.Full(render.ViewUpcoming, nil)
		past, err2 := r.Full(render.ViewPast, []model.Event{})
		preview, err3 := r.Preview(nil)

		Convey("Then each view shows its own placeholder", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(err3, ShouldBeNil)
			So(parse(up).Find(".no-events").Text(), ShouldEqual, render.PlaceholderUpcoming)
			So(parse(past).Find(".no-events").Text(), ShouldEqual, render.PlaceholderPast)
			So(parse(preview).Find(".no-events").Text(), ShouldEqual, render.PlaceholderPreview)
			So(render.PlaceholderUpcoming, ShouldNotEqual, render.PlaceholderPast)
			So(parse(up).Find(".event-card").Length(), ShouldEqual, 0)
		})
	})

	Convey("Given an unknown full view", t, func() {
		_, err := newRenderer().Full(render.ViewPreview, nil)

		So(errors.Is(err, render.ErrUnknownView), ShouldBeTrue)
	})
}
