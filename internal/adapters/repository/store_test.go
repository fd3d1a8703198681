package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/eventboard/internal/adapters/repository"
	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/internal/domain/model"
	"github.com/okian/eventboard/internal/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefault(t *testing.T) {
	Convey("Given the embedded sample data", t, func() {
		ctx := context.Background()
		store, err := repository.LoadDefault(repository.WithLocation(time.UTC))

		Convey("Then it loads the five sample events in configured order", func() {
			So(err, ShouldBeNil)
			So(store.Count(ctx), ShouldEqual, 5)
			So(store.Source(), ShouldEqual, repository.EmbeddedSource)
			So(store.All(ctx), ShouldResemble, testutil.SampleEvents())
		})

		Convey("Then callers cannot mutate the store", func() {
			events := store.All(ctx)
			events[0].Title = "changed"
			So(store.All(ctx)[0].Title, ShouldEqual, "Intro to AI Workshop")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given an events file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "events.yaml")

		Convey("When it is well formed and uses the camelCase link key", func() {
			writeFile(path, `
events:
  - title: "Git Basics"
    date: "2026-02-01"
    type: "Workshop"
    registerLink: "/signup"
  - title: "Social"
    date: "2026-02-01"
`)
			store, err := repository.Load(path)

			Convey("Then both records load with the link resolved", func() {
				So(err, ShouldBeNil)
				events := store.All(context.Background())
				So(events, ShouldHaveLength, 2)
				So(events[0].RegisterLink, ShouldEqual, "/signup")
				So(events[1].HasRegistration(), ShouldBeFalse)
				So(store.Source(), ShouldEqual, path)
			})
		})

		Convey("When a record has a malformed date", func() {
			writeFile(path, `
events:
  - title: "Good"
    date: "2026-02-01"
  - title: "Bad"
    date: "2026-02-30"
`)
			_, err := repository.LoadFile(path)

			Convey("Then loading fails loudly and names the record", func() {
				So(errors.Is(err, repository.ErrInvalidEvent), ShouldBeTrue)
				So(errors.Is(err, calendar.ErrInvalidDate), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "record 1")
				So(err.Error(), ShouldContainSubstring, `"Bad"`)
			})
		})

		Convey("When a record's date is padded with whitespace", func() {
			writeFile(path, `
events:
  - title: "Padded"
    date: " 2025-11-25 "
`)
			_, err := repository.LoadFile(path)

			Convey("Then it is rejected like any other malformed date", func() {
				So(errors.Is(err, repository.ErrInvalidEvent), ShouldBeTrue)
				So(errors.Is(err, calendar.ErrInvalidDate), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"Padded"`)
			})
		})

		Convey("When a record has no title", func() {
			writeFile(path, "events:\n  - date: \"2026-02-01\"\n")
			_, err := repository.LoadFile(path)

			Convey("Then loading fails", func() {
				So(errors.Is(err, repository.ErrInvalidEvent), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "title")
			})
		})

		Convey("When the file contains an unknown key", func() {
			writeFile(path, "events:\n  - title: x\n    date: \"2026-02-01\"\n    venue: y\n")
			_, err := repository.LoadFile(path)

			Convey("Then decoding fails", func() {
				So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
			})
		})

		Convey("When the file is empty", func() {
			writeFile(path, "")
			store, err := repository.LoadFile(path)

			Convey("Then the store is empty", func() {
				So(err, ShouldBeNil)
				So(store.Count(context.Background()), ShouldEqual, 0)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := repository.LoadFile(filepath.Join(dir, "missing.yaml"))

			Convey("Then a load error is returned", func() {
				So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
			})
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given YAML with markup in text fields", t, func() {
		events, err := repository.Decode(strings.NewReader(`
events:
  - title: "<b>Bold</b> & co"
    date: "2026-03-03"
`))

		Convey("Then text is kept verbatim for the renderer to escape", func() {
			So(err, ShouldBeNil)
			So(events[0].Title, ShouldEqual, "<b>Bold</b> & co")
		})
	})
}

func TestNewMemoryStore(t *testing.T) {
	Convey("Given duplicate records", t, func() {
		e := model.Event{Title: "Same", Date: "2026-01-01"}
		store, err := repository.NewMemoryStore([]model.Event{e, e})

		Convey("Then both are kept", func() {
			So(err, ShouldBeNil)
			So(store.Count(context.Background()), ShouldEqual, 2)
		})
	})
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
}
