package ctdf

import "strings"

type TrainType string

const (
	TrainTypeTGV        TrainType = "TGV INOUI"
	TrainTypeOuigo                = "OUIGO"
	TrainTypeIntercites           = "INTERCITES"
	TrainTypeTER                  = "TER"
)

// ClassifyTrain derives the train type from the operator entity and axis
// strings published alongside each schedule record.
func ClassifyTrain(entity string, axis string) TrainType {
	entity = strings.ToUpper(entity)
	axis = strings.ToUpper(axis)

	switch {
	case strings.Contains(entity, "OUIGO"):
		return TrainTypeOuigo
	case strings.HasPrefix(axis, "IC") || strings.Contains(entity, "INTERCITE"):
		return TrainTypeIntercites
	case strings.HasPrefix(axis, "TER") || strings.Contains(entity, "TER"):
		return TrainTypeTER
	default:
		return TrainTypeTGV
	}
}
