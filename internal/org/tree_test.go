package org

import (
	"reflect"
	"testing"
)

func sampleTree() []Note {
	return ParseString("* a\n** a1\n*** a1x\n** a2\n* b\n").Notes
}

func TestFlattenOrderAndPaths(t *testing.T) {
	flat := Flatten(sampleTree())

	var titles []string
	for _, f := range flat {
		titles = append(titles, f.Note.Title)
	}
	if !reflect.DeepEqual(titles, []string{"a", "a1", "a1x", "a2", "b"}) {
		t.Fatalf("titles = %v", titles)
	}
	if !reflect.DeepEqual(flat[2].Path, Path{0, 0, 0}) || flat[2].Depth != 2 {
		t.Fatalf("flat[2] = %+v, want path [0 0 0] depth 2", flat[2])
	}
	if !reflect.DeepEqual(flat[3].Path, Path{0, 1}) {
		t.Fatalf("flat[3].Path = %v, want [0 1]", flat[3].Path)
	}
}

func TestWalkPrunes(t *testing.T) {
	var seen []string
	Walk(sampleTree(), func(p Path, n Note) bool {
		seen = append(seen, n.Title)
		return n.Title != "a"
	})
	if !reflect.DeepEqual(seen, []string{"a", "b"}) {
		t.Fatalf("seen = %v, want [a b]", seen)
	}
}

func TestAt(t *testing.T) {
	notes := sampleTree()
	n, ok := At(notes, Path{0, 0, 0})
	if !ok || n.Title != "a1x" {
		t.Fatalf("At([0 0 0]) = %q/%v, want a1x", n.Title, ok)
	}
	for _, p := range []Path{nil, {5}, {0, 9}, {-1}} {
		if _, ok := At(notes, p); ok {
			t.Fatalf("At(%v) ok = true, want false", p)
		}
	}
}

func TestReplaceIsCopyOnWrite(t *testing.T) {
	notes := sampleTree()
	before := Format(notes)

	updated := Replace(notes, Path{0, 1}, func(n Note) Note {
		return n.WithTitle("renamed")
	})

	if Format(notes) != before {
		t.Fatalf("Replace mutated its input")
	}
	n, _ := At(updated, Path{0, 1})
	if n.Title != "renamed" {
		t.Fatalf("updated title = %q, want renamed", n.Title)
	}
	if untouched, _ := At(updated, Path{1}); untouched.Title != "b" {
		t.Fatalf("sibling title = %q, want b", untouched.Title)
	}
}

func TestRemoveAndAppend(t *testing.T) {
	notes := sampleTree()

	removed := Remove(notes, Path{0, 0})
	if len(removed[0].Children) != 1 || removed[0].Children[0].Title != "a2" {
		t.Fatalf("children after Remove = %+v, want [a2]", removed[0].Children)
	}
	if len(notes[0].Children) != 2 {
		t.Fatalf("Remove mutated its input")
	}

	appended := Append(notes, Note{Level: 1, Title: "c"})
	if len(appended) != 3 || len(notes) != 2 {
		t.Fatalf("Append lengths = %d/%d, want 3/2", len(appended), len(notes))
	}

	if got := Remove(notes, Path{7}); len(got) != len(notes) {
		t.Fatalf("Remove with bad path changed length")
	}
}
