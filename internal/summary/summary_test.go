package summary

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/faizmokh/rorg/internal/org"
)

func loadExample(t *testing.T) []org.Note {
	t.Helper()
	data, err := os.ReadFile("../org/testdata/example.org")
	require.NoError(t, err)
	return org.ParseString(string(data)).Notes
}

func TestAggregateExample(t *testing.T) {
	notes := loadExample(t)

	s := Aggregate(notes, Options{Now: time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC)})

	require.Equal(t, 735, s.TotalMinutes)
	require.Equal(t, "12h 15m", s.TotalTracked)
	require.Equal(t, 2, s.Completed)
	require.Equal(t, 1, s.Active)
	require.Equal(t, 2, s.Scheduled)
	require.Empty(t, s.Overdue)
}

func TestAggregateOverdue(t *testing.T) {
	notes := loadExample(t)

	s := Aggregate(notes, Options{Now: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)})
	require.Len(t, s.Overdue, 1)
	require.Equal(t, "Project Alpha", s.Overdue[0].Title)
	require.Equal(t, 1, s.Overdue[0].Level)
	require.Equal(t, "2024-01-31", s.Overdue[0].Deadline.DateString())

	// The deadline day itself is not overdue yet.
	s = Aggregate(notes, Options{Now: time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC)})
	require.Empty(t, s.Overdue)
}

func TestAggregateCustomCompleted(t *testing.T) {
	notes := org.ParseString("* CANCELLED Old idea\n* DONE Shipped\n* TODO Later\n").Notes

	s := Aggregate(notes, Options{Completed: []string{"DONE", "CANCELLED"}})
	require.Equal(t, 2, s.Completed)

	s = Aggregate(notes, Options{})
	require.Equal(t, 1, s.Completed)
}

func TestAggregateRunningClockCountsZero(t *testing.T) {
	notes := org.ParseString("* Task\n:LOGBOOK:\nCLOCK: [2024-01-03 Wed 10:00]\n:END:\n").Notes

	s := Aggregate(notes, Options{})
	require.Equal(t, 1, s.Active)
	require.Equal(t, 0, s.TotalMinutes)
	require.Equal(t, "0h 0m", s.TotalTracked)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, Options{})
	require.Equal(t, Summary{TotalTracked: "0h 0m", Overdue: []Overdue{}}, s)
}
