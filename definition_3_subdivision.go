package jobshop

// subdivision tracks what one machine group already runs.
type subdivision struct {
	busy []TimeInterval

	// availableFrom is the end of the most recently booked task.
	availableFrom int64
}

func (sub *subdivision) firstConflict(interval TimeInterval) (TimeInterval, bool) {
	for _, busy := range sub.busy {
		if busy.Overlaps(interval) {
			return busy, true
		}
	}

	return TimeInterval{}, false
}

// earliestStart pushes the candidate past every conflicting occupant
// until the task fits.
func (sub *subdivision) earliestStart(candidate, duration int64) int64 {
	for {
		conflict, hasConflict := sub.firstConflict(
			TimeInterval{
				TimeStart: candidate,
				TimeEnd:   candidate + duration,
			},
		)
		if !hasConflict {
			return candidate
		}

		candidate = conflict.TimeEnd
	}
}

func (sub *subdivision) book(interval TimeInterval) {
	sub.busy = append(sub.busy, interval)
	sub.availableFrom = interval.TimeEnd
}

type subdivisions map[string]*subdivision

func (subs subdivisions) get(name string) *subdivision {
	if sub, exists := subs[name]; exists {
		return sub
	}

	sub := &subdivision{}
	subs[name] = sub

	return sub
}

// place times the task at the earliest start not before notBefore and
// books it on its subdivision.
func (subs subdivisions) place(task *Task, notBefore int64) {
	sub := subs.get(task.Subdivision)

	task.TimeStart = sub.earliestStart(
		max(notBefore, sub.availableFrom),
		task.Duration,
	)

	sub.book(task.Interval())
}
