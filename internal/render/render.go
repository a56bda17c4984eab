// Package render prints parsed outlines as colored text, JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/rorg/internal/org"
	"github.com/faizmokh/rorg/internal/summary"
)

// ErrUnknownFormat is returned for output formats other than text, json and yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, json or yaml)", ErrUnknownFormat, s)
	}
}

// Renderer writes notes, optionally with a summary, in one format.
type Renderer struct {
	Format Format
	Color  bool

	// Completed lists the keywords painted as done. Nil means summary.DefaultCompleted.
	Completed []string
}

// envelope is the structured shape used when a summary is requested.
type envelope struct {
	Notes   []org.Note      `json:"notes" yaml:"notes"`
	Summary summary.Summary `json:"summary" yaml:"summary"`
}

// Render writes notes to w. A nil sum prints the notes alone.
func (r Renderer) Render(w io.Writer, notes []org.Note, sum *summary.Summary) error {
	if notes == nil {
		notes = []org.Note{}
	}

	var payload any = notes
	if sum != nil {
		payload = envelope{Notes: notes, Summary: *sum}
	}

	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		completed := r.Completed
		if completed == nil {
			completed = summary.DefaultCompleted
		}
		t := textPrinter{w: w, color: r.Color, completed: completed}
		if sum != nil {
			t.summary(*sum)
		}
		t.notes(notes, 0)
		return t.err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.Format)
	}
}
