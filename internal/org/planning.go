package org

import (
	"fmt"
	"regexp"
	"strings"
)

var planningPattern = regexp.MustCompile(`\b(SCHEDULED|DEADLINE|CLOSED):\s*(<[^>]*>|\[[^\]]*\])?`)

var planningKinds = map[string]PlanningKind{
	"SCHEDULED": Scheduled,
	"DEADLINE":  Deadline,
	"CLOSED":    Closed,
}

// IsPlanningLine reports whether line starts, after indentation, with a planning keyword.
func IsPlanningLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "SCHEDULED:") ||
		strings.HasPrefix(trimmed, "DEADLINE:") ||
		strings.HasPrefix(trimmed, "CLOSED:")
}

// ExtractPlanning pulls SCHEDULED/DEADLINE/CLOSED stamps out of a note body and
// returns the remaining lines. Planning is nil when no planning line was present.
// Stamps that fail to parse leave their slot empty and are reported in errs.
func ExtractPlanning(lines []string) ([]string, *Planning, []error) {
	var (
		rest     []string
		planning *Planning
		errs     []error
	)

	for _, line := range lines {
		if !IsPlanningLine(line) {
			rest = append(rest, line)
			continue
		}
		if planning == nil {
			planning = &Planning{}
		}

		for _, match := range planningPattern.FindAllStringSubmatch(line, -1) {
			keyword, token := match[1], match[2]
			if token == "" {
				errs = append(errs, fmt.Errorf("%s missing timestamp: %w", keyword, ErrUnparseableTimestamp))
				continue
			}
			ts, err := ParseTimestamp(token)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %w", keyword, err))
				continue
			}
			planning.set(planningKinds[keyword], &ts)
		}
	}

	return rest, planning, errs
}
