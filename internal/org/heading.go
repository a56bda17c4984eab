package org

import (
	"regexp"
	"strings"
	"unicode"
)

// Heading is the parsed form of a single "* ..." line.
type Heading struct {
	Level  int
	Status *string
	Title  string
	Labels []string
}

// tagsPattern matches a trailing :tag1:tag2: block, either alone or after whitespace.
var tagsPattern = regexp.MustCompile(`(?:^|\s)(:(?:[^\s:]+:)+)\s*$`)

// HeadingLevel returns the number of leading stars when line is a heading.
// The stars must start the line and be followed by a space.
func HeadingLevel(line string) (int, bool) {
	stars := 0
	for stars < len(line) && line[stars] == '*' {
		stars++
	}
	if stars == 0 || stars >= len(line) || line[stars] != ' ' {
		return 0, false
	}
	return stars, true
}

// ParseHeading splits a heading line into level, status keyword, title and tags.
func ParseHeading(line string) (Heading, bool) {
	level, ok := HeadingLevel(line)
	if !ok {
		return Heading{}, false
	}

	rest := strings.TrimSpace(line[level+1:])
	labels := []string{}
	if loc := tagsPattern.FindStringSubmatchIndex(rest); loc != nil {
		for _, tag := range strings.Split(rest[loc[2]:loc[3]], ":") {
			if tag != "" {
				labels = append(labels, tag)
			}
		}
		rest = strings.TrimSpace(rest[:loc[2]])
	}

	var status *string
	word, remainder := splitFirstWord(rest)
	if IsStatusKeyword(word) {
		status = &word
		rest = strings.TrimSpace(remainder)
	}

	return Heading{
		Level:  level,
		Status: status,
		Title:  rest,
		Labels: labels,
	}, true
}

// IsStatusKeyword reports whether word looks like a TODO-style keyword:
// only uppercase letters and hyphens, at least one letter.
func IsStatusKeyword(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case r == '-':
		case unicode.IsUpper(r):
			letters++
		default:
			return false
		}
	}
	return letters > 0
}

func splitFirstWord(s string) (string, string) {
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx:]
}
