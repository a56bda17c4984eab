package org

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func loadExample(t *testing.T) Document {
	t.Helper()
	f, err := os.Open("testdata/example.org")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	doc, err := NewParser(f).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParserBuildsTree(t *testing.T) {
	doc := loadExample(t)

	if len(doc.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", doc.Warnings)
	}
	if len(doc.Notes) != 2 {
		t.Fatalf("top-level notes = %d, want 2", len(doc.Notes))
	}

	alpha := doc.Notes[0]
	if alpha.Title != "Project Alpha" || alpha.StatusText() != "TODO" {
		t.Fatalf("alpha = %q/%q, want Project Alpha/TODO", alpha.Title, alpha.StatusText())
	}
	if !reflect.DeepEqual(alpha.Labels, []string{"work"}) {
		t.Fatalf("alpha.Labels = %#v, want [work]", alpha.Labels)
	}
	if alpha.Content != "Kickoff notes for the project." {
		t.Fatalf("alpha.Content = %q", alpha.Content)
	}
	if alpha.Planning == nil || alpha.Planning.Scheduled == nil || alpha.Planning.Deadline == nil {
		t.Fatalf("alpha.Planning = %+v, want scheduled and deadline", alpha.Planning)
	}
	if len(alpha.Children) != 2 {
		t.Fatalf("alpha.Children = %d, want 2", len(alpha.Children))
	}

	impl := alpha.Children[1]
	if impl.Level != 2 || impl.StatusText() != "IN-PROGRESS" {
		t.Fatalf("impl = level %d status %q", impl.Level, impl.StatusText())
	}
	if !impl.HasRunningClock() {
		t.Fatalf("impl.HasRunningClock() = false, want true")
	}
	if impl.Content != "" {
		t.Fatalf("impl.Content = %q, want empty", impl.Content)
	}
	if impl.Children == nil || len(impl.Children) != 0 {
		t.Fatalf("impl.Children = %#v, want empty slice", impl.Children)
	}

	report := doc.Notes[1]
	if report.Planning != nil {
		t.Fatalf("report.Planning = %+v, want nil", report.Planning)
	}
	if got := report.Logbook.TotalMinutes(); got != 165 {
		t.Fatalf("report minutes = %d, want 165", got)
	}
}

func TestParserLevelsMatchStars(t *testing.T) {
	input := "* one\n*** three\n** two\n* again\n**** four\n"
	doc := ParseString(input)

	var levels []int
	Walk(doc.Notes, func(p Path, n Note) bool {
		levels = append(levels, n.Level)
		return true
	})
	if !reflect.DeepEqual(levels, []int{1, 3, 2, 1, 4}) {
		t.Fatalf("levels = %v, want [1 3 2 1 4]", levels)
	}

	if len(doc.Notes) != 2 {
		t.Fatalf("roots = %d, want 2", len(doc.Notes))
	}
	first := doc.Notes[0]
	if len(first.Children) != 2 || first.Children[0].Title != "three" || first.Children[1].Title != "two" {
		t.Fatalf("first children = %+v, want three then two", first.Children)
	}
	if doc.Notes[1].Children[0].Level != 4 {
		t.Fatalf("level gap child = %d, want 4", doc.Notes[1].Children[0].Level)
	}
}

func TestParserChildrenAreDeeperThanParent(t *testing.T) {
	doc := loadExample(t)
	var check func(parent Note)
	check = func(parent Note) {
		for _, child := range parent.Children {
			if child.Level <= parent.Level {
				t.Fatalf("child %q level %d <= parent %q level %d", child.Title, child.Level, parent.Title, parent.Level)
			}
			check(child)
		}
	}
	for _, n := range doc.Notes {
		check(n)
	}

	headings := 0
	for _, line := range splitLines(Format(doc.Notes)) {
		if _, ok := ParseHeading(line); ok {
			headings++
		}
	}
	if got := len(Flatten(doc.Notes)); got != headings {
		t.Fatalf("notes = %d, headings = %d", got, headings)
	}
}

func TestParserEmptyDocument(t *testing.T) {
	for _, input := range []string{"", "just some text\nno headings\n"} {
		doc := ParseString(input)
		if doc.Notes == nil || len(doc.Notes) != 0 {
			t.Fatalf("ParseString(%q).Notes = %#v, want empty slice", input, doc.Notes)
		}
	}

	doc, err := NewParser(nil).Parse()
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if len(doc.Notes) != 0 {
		t.Fatalf("Parse(nil).Notes = %d, want 0", len(doc.Notes))
	}
}

func TestParserHandlesCRLF(t *testing.T) {
	doc, err := NewParser(strings.NewReader("* TODO Task :a:\r\nbody\r\n")).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n := doc.Notes[0]
	if n.Title != "Task" || n.Content != "body" || len(n.Labels) != 1 {
		t.Fatalf("note = %+v", n)
	}
}

func TestParserRecordsWarnings(t *testing.T) {
	input := `* First
ok
** Second
DEADLINE: <not a date>
:LOGBOOK:
CLOCK: nonsense
CLOCK: [2023-02-30 Thu 09:00]--[2023-02-30 Thu 10:00] =>  1:00
:END:
`
	doc := ParseString(input)
	if len(doc.Warnings) != 4 {
		t.Fatalf("Warnings = %v, want 4", doc.Warnings)
	}
	for _, w := range doc.Warnings {
		if w.Line != 3 || w.Heading != "Second" {
			t.Fatalf("warning = %+v, want line 3 heading Second", w)
		}
	}
	if !errors.Is(doc.Warnings[0], ErrUnparseableTimestamp) {
		t.Fatalf("Warnings[0] = %v, want ErrUnparseableTimestamp", doc.Warnings[0])
	}

	second := doc.Notes[0].Children[0]
	if second.Planning == nil || second.Planning.Deadline != nil {
		t.Fatalf("Planning = %+v, want empty planning", second.Planning)
	}
	if len(second.Logbook.ClockEntries) != 1 || len(second.Logbook.RawContent) != 2 {
		t.Fatalf("Logbook = %+v, want one entry and two raw lines", second.Logbook)
	}

	var impossible int
	for _, w := range doc.Warnings {
		if errors.Is(w, ErrImpossibleDate) {
			impossible++
		}
	}
	if impossible != 2 {
		t.Fatalf("impossible-date warnings = %d, want 2", impossible)
	}
}
