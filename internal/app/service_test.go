package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/eventboard/internal/adapters/page"
	"github.com/okian/eventboard/internal/adapters/repository"
	service "github.com/okian/eventboard/internal/app"
	"github.com/okian/eventboard/internal/domain/classify"
	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/internal/testutil"
	"github.com/okian/eventboard/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// rawStore skips validation so classification errors can surface.
type rawStore struct {
	events []model.Event
}

func (r rawStore) All(context.Context) []model.Event { return append([]model.Event(nil), r.events...) }
func (r rawStore) Count(context.Context) int         { return len(r.events) }
func (r rawStore) Source() string                    { return "raw" }

func sampleStore() repository.Store {
	store, err := repository.NewMemoryStore(testutil.SampleEvents(), repository.WithLocation(time.UTC))
	if err != nil {
		panic(err)
	}
	return store
}

func newService(clock *testutil.ManualClock, opts ...service.Option) *service.Service {
	return service.New(sampleStore(), append([]service.Option{
		service.WithClock(clock),
		service.WithLocation(time.UTC),
	}, opts...)...)
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := newService(testutil.NewManualClock("2025-11-01", 10, time.UTC))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the stats describe the first snapshot", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["events"], ShouldEqual, 5)
				So(stats["upcoming"], ShouldEqual, 4)
				So(stats["past"], ShouldEqual, 1)
				So(stats["today"], ShouldEqual, "2025-11-01")
				So(stats["locale"], ShouldEqual, "en-US")
				So(stats, ShouldContainKey, "nextRefresh")
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service with an invalid schedule", t, func() {
		svc := newService(testutil.NewManualClock("2025-11-01", 10, time.UTC),
			service.WithRefreshSchedule("whenever"))
		defer svc.Stop()

		err := svc.Start(context.Background())

		So(errors.Is(err, service.ErrSchedule), ShouldBeTrue)
		So(svc.GetStats()["started"], ShouldEqual, false)
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newService(testutil.NewManualClock("2025-11-01", 10, time.UTC))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
				So(stats, ShouldNotContainKey, "nextRefresh")
			})

			Convey("And stopping again is safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestService_Snapshot(t *testing.T) {
	Convey("Given a service on 2025-11-01", t, func() {
		clock := testutil.NewManualClock("2025-11-01", 10, time.UTC)
		svc := newService(clock)
		ctx := context.Background()

		Convey("When reading the snapshot", func() {
			snap, err := svc.Snapshot(ctx)

			Convey("Then events are classified against that day", func() {
				So(err, ShouldBeNil)
				So(testutil.Titles(snap.Partitions.Upcoming), ShouldResemble, []string{
					"Tech Talk: IoT in Smart Cities",
					"Intro to AI Workshop",
					"Web Development Bootcamp",
					"Annual Hackathon 2025",
				})
				So(testutil.Titles(snap.Partitions.Past), ShouldResemble, []string{"IEEE Welcome Meet"})
			})

			Convey("Then later reads on the same day reuse it", func() {
				clock.Advance(10 * time.Hour)
				again, err := svc.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(again.RefreshedAt.Equal(snap.RefreshedAt), ShouldBeTrue)
			})
		})

		Convey("When the day rolls over past an event", func() {
			_, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)

			clock.Advance(19 * 24 * time.Hour) // 2025-11-20
			onDay, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)

			clock.Advance(24 * time.Hour) // 2025-11-21
			after, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then the event is upcoming on its date and past the day after", func() {
				So(onDay.Partitions.Upcoming[0].Title, ShouldEqual, "Tech Talk: IoT in Smart Cities")
				So(after.Partitions.Past[0].Title, ShouldEqual, "Tech Talk: IoT in Smart Cities")
				So(after.Partitions.Len(), ShouldEqual, 5)
			})
		})

		Convey("When the clock moves back across midnight", func() {
			clock.Advance(24 * time.Hour) // 2025-11-02
			_, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)

			clock.Advance(-24 * time.Hour) // 2025-11-01 again
			back, err := svc.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then the reader gets the current day's classification", func() {
				So(back.Today.Format("2006-01-02"), ShouldEqual, "2025-11-01")
			})

			Convey("Then the newer day stays cached", func() {
				So(svc.GetStats()["today"], ShouldEqual, "2025-11-02")
			})
		})

		Convey("When asking for the preview", func() {
			preview, err := svc.Preview(ctx)

			So(err, ShouldBeNil)
			So(testutil.Titles(preview), ShouldResemble, []string{
				"Tech Talk: IoT in Smart Cities",
				"Intro to AI Workshop",
			})
		})
	})

	Convey("Given a store with a malformed date", t, func() {
		svc := service.New(rawStore{events: []model.Event{{Title: "Broken", Date: "soon"}}},
			service.WithClock(testutil.NewManualClock("2025-11-01", 10, time.UTC)))

		_, err := svc.Snapshot(context.Background())
		startErr := svc.Start(context.Background())

		So(errors.Is(err, classify.ErrUnclassifiable), ShouldBeTrue)
		So(errors.Is(startErr, classify.ErrUnclassifiable), ShouldBeTrue)
	})
}

func TestService_RenderPage(t *testing.T) {
	Convey("Given a service with a custom membership destination", t, func() {
		svc := newService(testutil.NewManualClock("2025-11-01", 10, time.UTC),
			service.WithMembershipURL("/join"))

		Convey("When rendering the events page", func() {
			var out bytes.Buffer
			src := `<html><body><div id="upcoming-events"></div><div id="past-events"></div></body></html>`
			mode, err := svc.RenderPage(context.Background(), strings.NewReader(src), &out)

			Convey("Then both lists are filled", func() {
				So(err, ShouldBeNil)
				So(mode, ShouldEqual, page.ModeFull)
				So(strings.Count(out.String(), `class="event-card"`), ShouldEqual, 5)
				So(out.String(), ShouldContainSubstring, `href="/join"`)
			})
		})

		Convey("When writing the calendar feed", func() {
			var out bytes.Buffer
			err := svc.WriteCalendar(context.Background(), &out)

			So(err, ShouldBeNil)
			So(strings.Count(out.String(), "BEGIN:VEVENT"), ShouldEqual, 5)
		})
	})
}
