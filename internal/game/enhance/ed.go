package enhance

import (
	"errors"
	"fmt"
)

// ErrUnresolvedSchedule is returned by ApplyED for ScheduleNone and
// ScheduleMultiple: schedule resolution upstream was not completed.
var ErrUnresolvedSchedule = errors.New("unresolved ED schedule")

// Schedule selects an Enhancement Diversification threshold set.
type Schedule int8

const (
	ScheduleNone Schedule = iota
	ScheduleA             // standard
	ScheduleB             // defensive
	ScheduleC             // interrupt
	ScheduleD             // special mez
	ScheduleMultiple
)

func (s Schedule) String() string {
	switch s {
	case ScheduleNone:
		return "None"
	case ScheduleA:
		return "A"
	case ScheduleB:
		return "B"
	case ScheduleC:
		return "C"
	case ScheduleD:
		return "D"
	case ScheduleMultiple:
		return "Multiple"
	}
	return fmt.Sprintf("Schedule(%d)", int8(s))
}

// Thresholds holds the three ascending region boundaries of a schedule.
type Thresholds [3]float64

// Region efficiencies: below t1, t1..t2, t2..t3, above t3.
var regionEfficiency = [4]float64{1.00, 0.90, 0.70, 0.15}

var scheduleThresholds = map[Schedule]Thresholds{
	ScheduleA: {0.70, 0.90, 1.00},
	ScheduleB: {0.40, 0.50, 0.60},
	ScheduleC: {0.80, 1.00, 1.20},
	ScheduleD: {1.20, 1.50, 1.80},
}

// ThresholdsFor returns the boundaries of s.
func ThresholdsFor(s Schedule) (Thresholds, error) {
	t, ok := scheduleThresholds[s]
	if !ok {
		return Thresholds{}, fmt.Errorf("%w: %s", ErrUnresolvedSchedule, s)
	}
	return t, nil
}

// ApplyED maps a raw enhancement sum to its diminished value.
//
// Below t1 the input passes through. Each later region adds
// (input − region start) × efficiency to the output at its start boundary,
// so the curve is continuous and non-decreasing. Sums at or below zero
// (debuffed or empty slots) pass through unchanged.
func ApplyED(s Schedule, rawSum float64) (float64, error) {
	t, err := ThresholdsFor(s)
	if err != nil {
		return 0, err
	}
	if rawSum <= t[0] {
		return rawSum, nil
	}

	out := t[0]
	start := t[0]
	for i := 1; i < len(regionEfficiency); i++ {
		end := rawSum
		if i < len(t) && t[i] < rawSum {
			end = t[i]
		}
		out += (end - start) * regionEfficiency[i]
		if end == rawSum {
			break
		}
		start = end
	}
	return out, nil
}
