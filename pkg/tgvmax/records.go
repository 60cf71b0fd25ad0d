package tgvmax

import (
	"bytes"
	"encoding/json"

	"github.com/travigo/tgvmax/pkg/ctdf"
)

type recordsResponse struct {
	TotalCount int         `json:"total_count"`
	Results    []apiRecord `json:"results"`
}

type apiRecord struct {
	Date            string         `json:"date"`
	TrainNumber     flexibleString `json:"train_no"`
	Entity          string         `json:"entity"`
	Axis            string         `json:"axe"`
	OriginCode      string         `json:"origine_iata"`
	DestinationCode string         `json:"destination_iata"`
	OriginName      string         `json:"origine"`
	DestinationName string         `json:"destination"`
	DepartureTime   string         `json:"heure_depart"`
	ArrivalTime     string         `json:"heure_arrivee"`
	FareFlag        string         `json:"od_happy_card"`
}

func (r apiRecord) toScheduleRecord() ctdf.ScheduleRecord {
	return ctdf.ScheduleRecord{
		Date:            r.Date,
		OriginCode:      r.OriginCode,
		OriginName:      r.OriginName,
		DestinationCode: r.DestinationCode,
		DestinationName: r.DestinationName,
		DepartureTime:   r.DepartureTime,
		ArrivalTime:     r.ArrivalTime,
		TrainNumber:     string(r.TrainNumber),
		Entity:          r.Entity,
		Axis:            r.Axis,
	}
}

// flexibleString accepts both JSON strings and numbers, the dataset has
// published train numbers as either over time
type flexibleString string

func (s *flexibleString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexibleString(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = flexibleString(number.String())
	return nil
}
