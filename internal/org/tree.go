package org

import "slices"

// Path addresses a note by its child index at every level, starting at the roots.
type Path []int

// Flat is one row of a flattened outline.
type Flat struct {
	Path  Path
	Depth int
	Note  Note
}

// Walk visits notes depth-first in document order. Returning false from fn
// skips the children of the visited note.
func Walk(notes []Note, fn func(Path, Note) bool) {
	walk(notes, nil, fn)
}

func walk(notes []Note, prefix Path, fn func(Path, Note) bool) {
	for i, n := range notes {
		path := append(prefix[:len(prefix):len(prefix)], i)
		if fn(path, n) {
			walk(n.Children, path, fn)
		}
	}
}

// Flatten lists every note in document order with its path and depth.
func Flatten(notes []Note) []Flat {
	var out []Flat
	Walk(notes, func(p Path, n Note) bool {
		out = append(out, Flat{Path: p, Depth: len(p) - 1, Note: n})
		return true
	})
	return out
}

// At returns the note at path.
func At(notes []Note, path Path) (Note, bool) {
	if len(path) == 0 {
		return Note{}, false
	}
	current := notes
	var n Note
	for _, idx := range path {
		if idx < 0 || idx >= len(current) {
			return Note{}, false
		}
		n = current[idx]
		current = n.Children
	}
	return n, true
}

// Replace returns a copy of notes where the note at path is replaced by fn(note).
// Only the slices along the path are copied; an invalid path returns notes unchanged.
func Replace(notes []Note, path Path, fn func(Note) Note) []Note {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(notes) {
		return notes
	}
	out := slices.Clone(notes)
	target := out[path[0]]
	if len(path) == 1 {
		out[path[0]] = fn(target)
		return out
	}
	target.Children = Replace(target.Children, path[1:], fn)
	out[path[0]] = target
	return out
}

// Remove returns a copy of notes without the note at path and its subtree.
func Remove(notes []Note, path Path) []Note {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(notes) {
		return notes
	}
	idx := path[0]
	if len(path) == 1 {
		out := make([]Note, 0, len(notes)-1)
		out = append(out, notes[:idx]...)
		return append(out, notes[idx+1:]...)
	}
	out := slices.Clone(notes)
	target := out[idx]
	target.Children = Remove(target.Children, path[1:])
	out[idx] = target
	return out
}

// Append returns a copy of notes with n added at the end.
func Append(notes []Note, n Note) []Note {
	out := make([]Note, 0, len(notes)+1)
	out = append(out, notes...)
	return append(out, n)
}
