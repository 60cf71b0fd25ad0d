package stations

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/util"
)

// stationRecord is the subset of the trainline stations.csv columns we use
type stationRecord struct {
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	Slug          string `csv:"slug"`
	Latitude      string `csv:"latitude"`
	Longitude     string `csv:"longitude"`
	SNCFID        string `csv:"sncf_id"`
	SNCFIsEnabled string `csv:"sncf_is_enabled"`
}

func (r *stationRecord) toStation() ctdf.Station {
	station := ctdf.Station{
		Code:    util.NormaliseStationCode(r.SNCFID),
		Name:    strings.TrimSpace(r.Name),
		Slug:    strings.TrimSpace(r.Slug),
		Enabled: strings.TrimSpace(r.SNCFIsEnabled) == "t",
	}

	latitude, latErr := strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
	longitude, lonErr := strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
	if latErr == nil && lonErr == nil {
		station.Location = ctdf.NewPointLocation(latitude, longitude)
	}

	return station
}

func parseStations(reader io.Reader) ([]ctdf.Station, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = ';'
	// Allow us to ignore rows with missing trailing columns
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	var records []*stationRecord
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return nil, err
	}

	stations := make([]ctdf.Station, 0, len(records))
	for _, record := range records {
		stations = append(stations, record.toStation())
	}

	return stations, nil
}
