package jobshop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTask(t *testing.T) {
	task := newTask(1, 2, "Lathe", 15)
	task.TimeStart = 10

	require.EqualValues(t,
		25,
		task.TimeEnd(),
	)

	task.TimeStart = 30

	require.EqualValues(t,
		45,
		task.TimeEnd(),
		"end time follows start time",
	)

	require.Equal(t,
		TimeInterval{TimeStart: 30, TimeEnd: 45},
		task.Interval(),
	)
}

func TestIndividualClone(t *testing.T) {
	source := individualOf(
		3,
		newTask(1, 1, "A", 10),
		newTask(1, 2, "B", 5),
	)
	Evaluate(source)

	clone := source.Clone()

	require.Equal(t, source.ID, clone.ID)
	require.Equal(t, source.Fitness, clone.Fitness)
	require.Len(t, clone.Tasks, 2)

	clone.Tasks[0].TimeStart = 100

	require.Zero(t,
		source.Tasks[0].TimeStart,
		"clone must not share tasks with its source",
	)
}

func TestTimeIntervalOverlaps(t *testing.T) {
	base := TimeInterval{TimeStart: 10, TimeEnd: 20}

	require.True(t, base.Overlaps(TimeInterval{TimeStart: 15, TimeEnd: 25}))
	require.True(t, base.Overlaps(TimeInterval{TimeStart: 0, TimeEnd: 11}))
	require.True(t, base.Overlaps(TimeInterval{TimeStart: 12, TimeEnd: 13}))
	require.False(t, base.Overlaps(TimeInterval{TimeStart: 20, TimeEnd: 30}), "touching is not overlapping")
	require.False(t, base.Overlaps(TimeInterval{TimeStart: 0, TimeEnd: 10}))
}
