package ctdf

// ScheduleRecord is one scheduled non-stop leg as published by the schedule
// data source. Times are HH:MM on the service date.
type ScheduleRecord struct {
	Date string `groups:"detailed"`

	OriginCode string `groups:"basic"`
	OriginName string `groups:"basic"`

	DestinationCode string `groups:"basic"`
	DestinationName string `groups:"basic"`

	DepartureTime string `groups:"basic"`
	ArrivalTime   string `groups:"basic"`

	TrainNumber string `groups:"basic"`
	Entity      string `groups:"detailed"`
	Axis        string `groups:"detailed"`
}

func (r ScheduleRecord) TrainType() TrainType {
	return ClassifyTrain(r.Entity, r.Axis)
}
