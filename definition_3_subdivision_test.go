package jobshop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubdivisionEarliestStart(t *testing.T) {
	sub := &subdivision{}

	sub.book(TimeInterval{TimeStart: 0, TimeEnd: 5})
	sub.book(TimeInterval{TimeStart: 8, TimeEnd: 12})

	tests := []struct {
		name      string
		candidate int64
		duration  int64
		want      int64
	}{
		{"1. fits in gap", 5, 3, 5},
		{"2. too long for gap", 5, 4, 12},
		{"3. inside first booking", 2, 1, 5},
		{"4. after all bookings", 20, 10, 20},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				require.Equal(t,
					tt.want,
					sub.earliestStart(tt.candidate, tt.duration),
				)
			},
		)
	}
}

func TestSubdivisionsPlace(t *testing.T) {
	occupancy := make(subdivisions)

	first := newTask(1, 1, "Lathe", 4)
	second := newTask(2, 1, "Lathe", 3)
	third := newTask(3, 1, "Mill", 2)

	occupancy.place(first, 0)
	occupancy.place(second, 0)
	occupancy.place(third, 6)

	require.EqualValues(t, 0, first.TimeStart)
	require.EqualValues(t, 4, second.TimeStart, "waits for the subdivision")
	require.EqualValues(t, 6, third.TimeStart, "waits for its predecessor")

	require.Len(t, occupancy, 2)
	require.Len(t, occupancy.get("Lathe").busy, 2)
}
