package org

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single input line; org files occasionally carry long pasted lines.
const maxLineSize = 4 * 1024 * 1024

// Parser reads an org document and builds its note tree.
type Parser struct {
	r io.Reader
}

// NewParser returns a parser reading org text from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// Parse consumes the whole reader and returns the note forest.
// Lines before the first heading are ignored.
func (p *Parser) Parse() (Document, error) {
	var b builder
	if p.r == nil {
		return b.finish(), nil
	}

	scanner := bufio.NewScanner(p.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		b.add(strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("read org document: %w", err)
	}
	return b.finish(), nil
}

// ParseString parses an in-memory document. It never fails.
func ParseString(s string) Document {
	var b builder
	for _, line := range splitLines(s) {
		b.add(strings.TrimSuffix(line, "\r"))
	}
	return b.finish()
}

// node is an arena slot for a heading whose body is still being collected.
type node struct {
	heading  Heading
	line     int
	body     []string
	children []int
}

type builder struct {
	arena []node
	roots []int
	open  []int // stack of arena indexes, innermost last
	line  int
}

func (b *builder) add(line string) {
	b.line++

	heading, ok := ParseHeading(line)
	if !ok {
		if len(b.open) > 0 {
			top := b.open[len(b.open)-1]
			b.arena[top].body = append(b.arena[top].body, line)
		}
		return
	}

	for len(b.open) > 0 && b.arena[b.open[len(b.open)-1]].heading.Level >= heading.Level {
		b.open = b.open[:len(b.open)-1]
	}

	idx := len(b.arena)
	b.arena = append(b.arena, node{heading: heading, line: b.line})
	if len(b.open) == 0 {
		b.roots = append(b.roots, idx)
	} else {
		parent := b.open[len(b.open)-1]
		b.arena[parent].children = append(b.arena[parent].children, idx)
	}
	b.open = append(b.open, idx)
}

// finish freezes the arena into values. Children always have larger indexes
// than their parent, so walking backwards sees every child first.
func (b *builder) finish() Document {
	notes := make([]Note, len(b.arena))
	problems := make([][]error, len(b.arena))

	for i := len(b.arena) - 1; i >= 0; i-- {
		n := b.arena[i]
		note, errs := buildNote(n.heading, n.body)
		for _, child := range n.children {
			note.Children = append(note.Children, notes[child])
		}
		notes[i] = note
		problems[i] = errs
	}

	doc := Document{Notes: make([]Note, 0, len(b.roots))}
	for _, root := range b.roots {
		doc.Notes = append(doc.Notes, notes[root])
	}
	for i, errs := range problems {
		for _, err := range errs {
			doc.Warnings = append(doc.Warnings, Warning{
				Line:    b.arena[i].line,
				Heading: b.arena[i].heading.Title,
				Err:     err,
			})
		}
	}
	return doc
}

func buildNote(h Heading, body []string) (Note, []error) {
	rest, planning, errs := ExtractPlanning(body)
	rest, book, logErrs := ExtractLogbook(rest)
	errs = append(errs, logErrs...)
	errs = append(errs, calendarErrors(planning, book)...)

	labels := h.Labels
	if labels == nil {
		labels = []string{}
	}

	return Note{
		Level:    h.Level,
		Status:   h.Status,
		Title:    h.Title,
		Labels:   labels,
		Content:  joinContent(rest),
		Children: []Note{},
		Planning: planning,
		Logbook:  book,
	}, errs
}

func calendarErrors(planning *Planning, book *Logbook) []error {
	var stamps []*Timestamp
	if planning != nil {
		stamps = append(stamps, planning.Scheduled, planning.Deadline, planning.Closed)
	}
	if book != nil {
		for i := range book.ClockEntries {
			stamps = append(stamps, &book.ClockEntries[i].Start, book.ClockEntries[i].End)
		}
	}

	var errs []error
	for _, ts := range stamps {
		if ts != nil && !ts.Valid() {
			errs = append(errs, fmt.Errorf("%w: %s", ErrImpossibleDate, ts.Raw))
		}
	}
	return errs
}

// joinContent drops leading and trailing blank lines and joins the rest.
func joinContent(lines []string) string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
