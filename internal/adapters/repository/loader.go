package repository

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/eventboard/internal/domain/model"
)

//go:embed data/events.yaml
var defaultEvents []byte

// EmbeddedSource labels stores built from the shipped sample data.
const EmbeddedSource = "embedded"

// record mirrors the YAML shape; registerLink is accepted as an alias.
type record struct {
	Title             string `yaml:"title"`
	Date              string `yaml:"date"`
	Time              string `yaml:"time"`
	Location          string `yaml:"location"`
	Description       string `yaml:"description"`
	Type              string `yaml:"type"`
	RegisterLink      string `yaml:"register_link"`
	RegisterLinkCamel string `yaml:"registerLink"`
}

type document struct {
	Events []record `yaml:"events"`
}

// Decode parses a YAML document with a top-level "events" list.
func Decode(r io.Reader) ([]model.Event, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Event{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	out := make([]model.Event, len(doc.Events))
	for i, rec := range doc.Events {
		link := rec.RegisterLink
		if link == "" {
			link = rec.RegisterLinkCamel
		}
		out[i] = model.Event{
			Title:        rec.Title,
			Date:         rec.Date,
			Time:         rec.Time,
			Location:     rec.Location,
			Description:  rec.Description,
			Type:         rec.Type,
			RegisterLink: link,
		}
	}
	return out, nil
}

// LoadFile reads and validates the events file at path.
func LoadFile(path string, opts ...Option) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	events, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(events, append([]Option{WithSource(path)}, opts...)...)
}

// LoadDefault returns a store with the embedded sample events.
func LoadDefault(opts ...Option) (*MemoryStore, error) {
	events, err := Decode(bytes.NewReader(defaultEvents))
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(events, append([]Option{WithSource(EmbeddedSource)}, opts...)...)
}

// Load picks LoadFile when path is set and LoadDefault otherwise.
func Load(path string, opts ...Option) (*MemoryStore, error) {
	if path == "" {
		return LoadDefault(opts...)
	}
	return LoadFile(path, opts...)
}
