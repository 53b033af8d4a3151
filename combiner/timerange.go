package combiner

// TimeRange is an animation start/end time window.
type TimeRange struct {
	Start float64
	End   float64
}

// TimeRangePolicy selects how time ranges from multiple documents are
// reconciled into one combined window.
type TimeRangePolicy int

const (
	// Narrow keeps the window covered by every document: max of starts,
	// min of ends.
	Narrow TimeRangePolicy = iota
	// Widen keeps the window covering every document: min of starts,
	// max of ends.
	Widen
)

func (p TimeRangePolicy) String() string {
	if p == Widen {
		return "widen"
	}
	return "narrow"
}

// Reconcile folds the next document's range into the current window.
func (p TimeRangePolicy) Reconcile(current, next TimeRange) TimeRange {
	if p == Widen {
		return TimeRange{
			Start: min(current.Start, next.Start),
			End:   max(current.End, next.End),
		}
	}
	return TimeRange{
		Start: max(current.Start, next.Start),
		End:   min(current.End, next.End),
	}
}
