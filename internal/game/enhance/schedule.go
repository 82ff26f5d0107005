package enhance

import "github.com/udisondev/buildcalc/internal/model"

// GetSchedule resolves the ED schedule for an enhanced attribute.
// Total over the attribute set; anything not listed uses Schedule A.
func GetSchedule(attr model.Attribute, sub model.MezType) Schedule {
	switch attr {
	case model.AttrDefense, model.AttrResistance, model.AttrToHit:
		return ScheduleB
	case model.AttrInterrupt:
		return ScheduleC
	case model.AttrMez:
		switch sub {
		case model.MezKnockback, model.MezKnockup, model.MezRepel:
			return ScheduleD
		}
	}
	return ScheduleA
}
