package ctdf

type TripKind string

const (
	TripKindDirect   TripKind = "direct"
	TripKindTransfer TripKind = "transfer"
)

// Trip is a partial or complete path through the schedule. It is either a
// single direct leg or a multi-leg path built up by transfer search; both
// expose the same accessors so callers never inspect the shape themselves.
type Trip struct {
	kind TripKind
	legs []ScheduleRecord
}

func NewDirectLeg(record ScheduleRecord) Trip {
	return Trip{
		kind: TripKindDirect,
		legs: []ScheduleRecord{record},
	}
}

func NewMultiLegPath(legs []ScheduleRecord) Trip {
	copied := make([]ScheduleRecord, len(legs))
	copy(copied, legs)

	kind := TripKindTransfer
	if len(copied) == 1 {
		kind = TripKindDirect
	}

	return Trip{
		kind: kind,
		legs: copied,
	}
}

// Extend returns a new path with next appended. The receiver is unchanged.
func (t Trip) Extend(next ScheduleRecord) Trip {
	legs := make([]ScheduleRecord, len(t.legs), len(t.legs)+1)
	copy(legs, t.legs)

	return Trip{
		kind: TripKindTransfer,
		legs: append(legs, next),
	}
}

func (t Trip) Kind() TripKind {
	return t.kind
}

// Legs returns a copy of the legs making up the trip
func (t Trip) Legs() []ScheduleRecord {
	legs := make([]ScheduleRecord, len(t.legs))
	copy(legs, t.legs)
	return legs
}

func (t Trip) LastLeg() ScheduleRecord {
	if len(t.legs) == 0 {
		return ScheduleRecord{}
	}
	return t.legs[len(t.legs)-1]
}

// Visits reports whether the path already passes through code, counting the
// station it started from
func (t Trip) Visits(code string) bool {
	for _, leg := range t.legs {
		if leg.OriginCode == code || leg.DestinationCode == code {
			return true
		}
	}
	return false
}

func (t Trip) FirstDeparture() string {
	if len(t.legs) == 0 {
		return ""
	}
	return t.legs[0].DepartureTime
}

func (t Trip) LastArrival() string {
	return t.LastLeg().ArrivalTime
}

func (t Trip) EndpointCode() string {
	return t.LastLeg().DestinationCode
}

func (t Trip) EndpointName() string {
	return t.LastLeg().DestinationName
}
