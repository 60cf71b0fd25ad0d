package journeyplanner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/tgvmax"
)

func TestSearchJourneysDirectOnly(t *testing.T) {
	records := newFakeRecords(
		leg("FRPAR", "FRLYS", "08:00", "10:00"),
		leg("FRPAR", "FRLYS", "09:00", "11:00"),
		leg("FRPAR", "FRMRS", "07:00", "10:15"),
		leg("FRLYS", "FRMRS", "10:30", "12:10"),
		legOn("2024-06-02", "FRPAR", "FRLIL", "08:00", "09:00"),
	)
	planner := newTestPlanner(records)

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "FRPAR", Date: testDate},
		SearchOptions{IncludeTransfers: false, MaxTransferLevels: 1},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"FRLYS", "FRMRS"}, result.DestinationCodes())
	assert.Len(t, result.Get("FRLYS").Itineraries, 2)
	assert.Equal(t, 0, result.Metadata.MaxLevels)
	assert.False(t, result.Truncated)

	for _, bucket := range result.Destinations {
		for _, itinerary := range bucket.Itineraries {
			assert.Len(t, itinerary.Legs, 1)
			assert.Equal(t, ctdf.TripKindDirect, itinerary.Type)
			assert.Equal(t, 0, itinerary.Stops)
			assert.Nil(t, itinerary.Emissions)
		}
	}

	assert.Len(t, records.Calls(), 1)
}

func TestSearchJourneysSingleConnection(t *testing.T) {
	tests := []struct {
		name          string
		onward        ctdf.ScheduleRecord
		expectedCount int
	}{
		{name: "wait within window", onward: leg("H", "B", "11:20", "12:30"), expectedCount: 1},
		{name: "wait too short", onward: leg("H", "B", "11:05", "12:30"), expectedCount: 0},
		{name: "minimum wait is inclusive", onward: leg("H", "B", "11:10", "12:30"), expectedCount: 1},
		{name: "maximum wait is inclusive", onward: leg("H", "B", "14:00", "15:00"), expectedCount: 1},
		{name: "wait too long", onward: leg("H", "B", "14:01", "15:00"), expectedCount: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			planner := newTestPlanner(newFakeRecords(
				leg("A", "H", "10:00", "11:00"),
				test.onward,
			))

			result, err := planner.SearchJourneys(context.Background(),
				JourneyParams{Origin: "A", Destination: "B", Date: testDate},
				SearchOptions{IncludeTransfers: true, MaxTransferLevels: 1},
			)
			require.NoError(t, err)

			if test.expectedCount == 0 {
				assert.True(t, result.Empty())
				return
			}

			bucket := result.Get("B")
			require.NotNil(t, bucket)
			require.Len(t, bucket.Itineraries, test.expectedCount)
		})
	}
}

func TestSearchJourneysTransferItinerary(t *testing.T) {
	planner := newTestPlanner(newFakeRecords(
		leg("A", "H", "10:00", "11:00"),
		leg("H", "B", "11:20", "12:30"),
	))

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Destination: "B", Date: testDate},
		SearchOptions{IncludeTransfers: true, MaxTransferLevels: 1},
	)
	require.NoError(t, err)

	require.Equal(t, []string{"B"}, result.DestinationCodes())
	require.Len(t, result.Get("B").Itineraries, 1)

	itinerary := result.Get("B").Itineraries[0]
	assert.Equal(t, ctdf.TripKindTransfer, itinerary.Type)
	assert.Equal(t, 1, itinerary.Stops)
	assert.Equal(t, 150, itinerary.Duration)
	assert.Equal(t, "10:00", itinerary.Departure)
	assert.Equal(t, "12:30", itinerary.Arrival)
	assert.Equal(t, []string{"Station H"}, itinerary.TransferStations())
	assert.Equal(t, []int{20}, itinerary.WaitTimes())
}

func TestSearchJourneysSeedsTransfersFromAllDepartures(t *testing.T) {
	records := newFakeRecords(
		leg("A", "H", "10:00", "11:00"),
		leg("H", "B", "11:20", "12:30"),
	)
	planner := newTestPlanner(records)

	_, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Destination: "B", Date: testDate},
		SearchOptions{IncludeTransfers: true, MaxTransferLevels: 1},
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, []tgvmax.Query{
		{Origin: "A", Destination: "B", Date: testDate},
		{Origin: "A", Destination: "", Date: testDate},
		{Origin: "H", Destination: "B", Date: testDate},
	}, records.Calls())
}

func TestSearchJourneysAnywhereWithTransfers(t *testing.T) {
	planner := newTestPlanner(newFakeRecords(
		leg("A", "H", "10:00", "11:00"),
		leg("H", "B", "11:20", "12:30"),
		leg("H", "C", "12:00", "13:00"),
		leg("H", "A", "11:30", "12:30"),
	))

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Date: testDate},
		SearchOptions{IncludeTransfers: true, MaxTransferLevels: 1},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C", "H"}, result.DestinationCodes())
	assert.Nil(t, result.Get("A"), "connections back to the origin are skipped")

	direct, transfer := result.Counts()
	assert.Equal(t, 1, direct)
	assert.Equal(t, 2, transfer)
}

func TestSearchJourneysMultipleLevels(t *testing.T) {
	records := []ctdf.ScheduleRecord{
		leg("A", "H1", "06:00", "07:00"),
		leg("H1", "H2", "07:30", "08:30"),
		leg("H2", "B", "09:00", "10:00"),
	}

	tests := []struct {
		levels        int
		expectedStops []int
	}{
		{levels: 0, expectedStops: nil},
		{levels: 1, expectedStops: nil},
		{levels: 2, expectedStops: []int{2}},
		{levels: 3, expectedStops: []int{2}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d levels", test.levels), func(t *testing.T) {
			planner := newTestPlanner(newFakeRecords(records...))

			result, err := planner.SearchJourneys(context.Background(),
				JourneyParams{Origin: "A", Destination: "B", Date: testDate},
				SearchOptions{IncludeTransfers: true, MaxTransferLevels: test.levels},
			)
			require.NoError(t, err)

			var stops []int
			if bucket := result.Get("B"); bucket != nil {
				for _, itinerary := range bucket.Itineraries {
					stops = append(stops, itinerary.Stops)
					assert.Len(t, itinerary.Legs, itinerary.Stops+1)
				}
			}
			assert.Equal(t, test.expectedStops, stops)
		})
	}
}

func TestSearchJourneysTotalDurationCap(t *testing.T) {
	records := []ctdf.ScheduleRecord{
		leg("A", "H", "06:00", "07:00"),
		leg("H", "B", "09:50", "16:30"),
	}

	t.Run("enforced", func(t *testing.T) {
		planner := newTestPlanner(newFakeRecords(records...))

		result, err := planner.SearchJourneys(context.Background(),
			JourneyParams{Origin: "A", Destination: "B", Date: testDate},
			DefaultSearchOptions(),
		)
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("disabled", func(t *testing.T) {
		planner := newTestPlanner(newFakeRecords(records...))
		planner.Transfer.EnforceTotalDuration = false

		result, err := planner.SearchJourneys(context.Background(),
			JourneyParams{Origin: "A", Destination: "B", Date: testDate},
			DefaultSearchOptions(),
		)
		require.NoError(t, err)
		require.NotNil(t, result.Get("B"))
		assert.Equal(t, 630, result.Get("B").Itineraries[0].Duration)
	})
}

func TestSearchJourneysAcrossMidnight(t *testing.T) {
	planner := newTestPlanner(newFakeRecords(
		leg("A", "H", "22:30", "23:40"),
		leg("H", "B", "00:05", "01:00"),
	))

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Destination: "B", Date: testDate},
		DefaultSearchOptions(),
	)
	require.NoError(t, err)

	require.NotNil(t, result.Get("B"))
	itinerary := result.Get("B").Itineraries[0]
	assert.Equal(t, 150, itinerary.Duration)
	assert.Equal(t, []int{25}, itinerary.WaitTimes())
}

func TestSearchJourneysValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  JourneyParams
		options SearchOptions
	}{
		{name: "missing origin", params: JourneyParams{Date: testDate}, options: DefaultSearchOptions()},
		{name: "missing date", params: JourneyParams{Origin: "A"}, options: DefaultSearchOptions()},
		{name: "malformed date", params: JourneyParams{Origin: "A", Date: "01/06/2024"}, options: DefaultSearchOptions()},
		{name: "negative levels", params: JourneyParams{Origin: "A", Date: testDate}, options: SearchOptions{IncludeTransfers: true, MaxTransferLevels: -1}},
		{name: "too many levels", params: JourneyParams{Origin: "A", Date: testDate}, options: SearchOptions{IncludeTransfers: true, MaxTransferLevels: 4}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			records := newFakeRecords()
			planner := newTestPlanner(records)

			result, err := planner.SearchJourneys(context.Background(), test.params, test.options)

			assert.ErrorIs(t, err, ErrInvalidParams)
			assert.Nil(t, result)
			assert.Empty(t, records.Calls(), "no request is made for invalid input")
		})
	}
}

func TestSearchJourneysNormalisesCodes(t *testing.T) {
	planner := newTestPlanner(newFakeRecords(leg("FRPAR", "FRLYS", "08:00", "10:00")))

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: " frpar", Destination: "frlys", Date: testDate},
		DefaultSearchOptions(),
	)
	require.NoError(t, err)

	assert.Equal(t, "FRPAR", result.Metadata.OriginCode)
	assert.NotNil(t, result.Get("FRLYS"))
}

func TestSearchJourneysFailedHubIsIsolated(t *testing.T) {
	records := newFakeRecords(
		leg("A", "H1", "10:00", "11:00"),
		leg("A", "H2", "10:00", "11:00"),
		leg("H1", "B", "11:30", "12:30"),
		leg("H2", "C", "11:30", "12:30"),
	)
	records.failing["H1"] = true
	planner := newTestPlanner(records)

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Date: testDate},
		DefaultSearchOptions(),
	)
	require.NoError(t, err)

	assert.True(t, result.Truncated)
	assert.Equal(t, []string{"C", "H1", "H2"}, result.DestinationCodes())
}

func TestSearchJourneysIncomplete(t *testing.T) {
	records := newFakeRecords(leg("A", "B", "10:00", "11:00"))
	records.failing["A"] = true
	planner := newTestPlanner(records)

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Date: testDate},
		DefaultSearchOptions(),
	)

	assert.ErrorIs(t, err, ErrSearchIncomplete)
	assert.ErrorIs(t, err, errFetchFailed)
	assert.Nil(t, result)
}

func TestSearchJourneysNoResultsIsNotAnError(t *testing.T) {
	planner := newTestPlanner(newFakeRecords())

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Date: testDate},
		DefaultSearchOptions(),
	)
	require.NoError(t, err)

	assert.True(t, result.Empty())
	assert.False(t, result.Truncated)
}

func TestSearchJourneysWithStations(t *testing.T) {
	planner := newTestPlanner(newFakeRecords(
		leg("A", "B", "10:00", "11:00"),
		leg("A", "C", "10:00", "11:00"),
		leg("A", "BROKEN", "10:00", "11:00"),
	))
	planner.Stations = fakeStations{
		"A": {Code: "A", Name: "Paris Montparnasse", Location: ctdf.NewPointLocation(48.8412, 2.3210)},
		"B": {Code: "B", Name: "Bordeaux Saint-Jean", Location: ctdf.NewPointLocation(44.8256, -0.5559)},
	}

	result, err := planner.SearchJourneysWithStations(context.Background(),
		JourneyParams{Origin: "A", Date: testDate},
		SearchOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, "Bordeaux Saint-Jean", result.Get("B").Name)
	assert.InDelta(t, 44.8256, result.Get("B").Location.Latitude(), 0.0001)

	assert.Equal(t, "Station C", result.Get("C").Name)
	assert.Nil(t, result.Get("C").Location)

	assert.Equal(t, "Station BROKEN", result.Get("BROKEN").Name)
	assert.Nil(t, result.Get("BROKEN").Location)

	located := result.Get("B").Itineraries[0].Emissions
	require.NotNil(t, located)
	assert.False(t, located.HasErrors)
	assert.InDelta(t, 499, located.TotalDistanceKm, 5)
	assert.Positive(t, located.TotalCO2Kg)
	assert.Positive(t, located.Comparisons.Car.Saved)

	unlocated := result.Get("C").Itineraries[0].Emissions
	require.NotNil(t, unlocated)
	assert.True(t, unlocated.HasErrors)
	assert.Zero(t, unlocated.TotalCO2Kg)
}
