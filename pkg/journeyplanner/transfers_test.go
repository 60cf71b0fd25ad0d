package journeyplanner

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/util"
)

func TestSearchTransferLevel(t *testing.T) {
	records := newFakeRecords(
		leg("H", "B", "11:20", "12:30"),
		leg("H", "C", "11:05", "12:00"),
		leg("H", "D", "13:00", "14:00"),
	)
	planner := newTestPlanner(records)

	frontier := []ctdf.Trip{
		ctdf.NewDirectLeg(leg("A", "H", "10:00", "11:00")),
	}

	t.Run("anywhere", func(t *testing.T) {
		levelResult := planner.searchTransferLevel(context.Background(), frontier, "", testDate, 1, true)

		assert.False(t, levelResult.Truncated)
		require.Len(t, levelResult.Itineraries, 2)
		assert.Equal(t, "B", levelResult.Itineraries[0].DestinationCode())
		assert.Equal(t, "D", levelResult.Itineraries[1].DestinationCode())
		assert.Len(t, levelResult.NextFrontier, 2)
	})

	t.Run("final destination", func(t *testing.T) {
		levelResult := planner.searchTransferLevel(context.Background(), frontier, "D", testDate, 1, true)

		require.Len(t, levelResult.Itineraries, 1)
		assert.Equal(t, "D", levelResult.Itineraries[0].DestinationCode())
		assert.Empty(t, levelResult.NextFrontier)
	})

	t.Run("intermediate level keeps connections short of the destination", func(t *testing.T) {
		levelResult := planner.searchTransferLevel(context.Background(), frontier, "D", testDate, 1, false)

		require.Len(t, levelResult.Itineraries, 1)
		require.Len(t, levelResult.NextFrontier, 1)
		assert.Equal(t, "B", levelResult.NextFrontier[0].EndpointCode())
	})
}

func TestSearchTransferLevelSkipsVisitedStations(t *testing.T) {
	planner := newTestPlanner(newFakeRecords(
		leg("C", "A", "10:30", "11:30"),
		leg("C", "B", "10:30", "11:00"),
		leg("C", "D", "10:30", "11:30"),
	))

	frontier := []ctdf.Trip{
		ctdf.NewDirectLeg(leg("A", "B", "08:00", "09:00")).Extend(leg("B", "C", "09:30", "10:00")),
	}

	levelResult := planner.searchTransferLevel(context.Background(), frontier, "", testDate, 2, true)

	require.Len(t, levelResult.Itineraries, 1)
	assert.Equal(t, "D", levelResult.Itineraries[0].DestinationCode())
}

func TestSearchJourneysNeverRevisitsTheDestination(t *testing.T) {
	records := newFakeRecords(
		leg("A", "B", "08:00", "09:00"),
		leg("B", "C", "09:30", "10:00"),
		leg("C", "B", "10:30", "11:00"),
	)
	planner := newTestPlanner(records)

	result, err := planner.SearchJourneys(context.Background(),
		JourneyParams{Origin: "A", Destination: "B", Date: testDate},
		SearchOptions{IncludeTransfers: true, MaxTransferLevels: 2},
	)
	require.NoError(t, err)

	require.Equal(t, []string{"B"}, result.DestinationCodes())
	require.Len(t, result.Get("B").Itineraries, 1)

	itinerary := result.Get("B").Itineraries[0]
	assert.Equal(t, ctdf.TripKindDirect, itinerary.Type)
	assert.Len(t, itinerary.Legs, 1)

	for _, call := range records.Calls() {
		assert.NotEqual(t, "B", call.Origin, "a path that reached the destination is not extended")
	}
}

func TestSearchTransferLevelFetchesEachHubOnce(t *testing.T) {
	records := newFakeRecords(leg("H", "B", "12:00", "13:00"))
	planner := newTestPlanner(records)

	frontier := []ctdf.Trip{
		ctdf.NewDirectLeg(leg("A", "H", "10:00", "11:00")),
		ctdf.NewDirectLeg(leg("A", "H", "10:30", "11:30")),
		ctdf.NewDirectLeg(leg("A", "I", "10:30", "11:30")),
	}

	levelResult := planner.searchTransferLevel(context.Background(), frontier, "", testDate, 1, true)

	assert.Len(t, levelResult.Itineraries, 2)
	assert.Len(t, records.Calls(), 2)
}

func TestSearchTransfersStopsOnEmptyFrontier(t *testing.T) {
	records := newFakeRecords()
	planner := newTestPlanner(records)

	result := planner.SearchTransfers(context.Background(), "A", "", testDate, nil, 3)

	assert.Empty(t, result.Itineraries)
	assert.Equal(t, 0, result.Levels)
	assert.Empty(t, records.Calls())
}

func TestAcceptConnection(t *testing.T) {
	planner := newTestPlanner(newFakeRecords())
	trip := ctdf.NewDirectLeg(leg("A", "H", "08:00", "09:00"))

	tests := []struct {
		next     ctdf.ScheduleRecord
		expected bool
	}{
		{next: leg("H", "B", "09:09", "10:00"), expected: false},
		{next: leg("H", "B", "09:10", "10:00"), expected: true},
		{next: leg("H", "B", "12:00", "13:00"), expected: true},
		{next: leg("H", "B", "12:01", "13:00"), expected: false},
		{next: leg("H", "B", "11:00", "18:00"), expected: true},
		{next: leg("H", "B", "11:00", "18:01"), expected: false},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%s-%s", test.next.DepartureTime, test.next.ArrivalTime), func(t *testing.T) {
			assert.Equal(t, test.expected, planner.acceptConnection(trip, test.next))
		})
	}
}

func randomClock(random *rand.Rand) string {
	return fmt.Sprintf("%02d:%02d", random.Intn(24), random.Intn(60))
}

// Any itinerary found on a random schedule must respect the transfer window
// at every connection and never pass through a station twice.
func TestTransferWaitsOnRandomSchedules(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	stations := []string{"A", "B", "C", "D", "E", "F"}

	for run := 0; run < 20; run++ {
		var records []ctdf.ScheduleRecord
		for i := 0; i < 120; i++ {
			origin := stations[random.Intn(len(stations))]
			destination := stations[random.Intn(len(stations))]
			if origin == destination {
				continue
			}

			departure := randomClock(random)
			arrival := fmt.Sprintf("%02d:%02d", (util.ParseTimeToMinutes(departure)/60+1+random.Intn(4))%24, random.Intn(60))
			records = append(records, leg(origin, destination, departure, arrival))
		}

		planner := newTestPlanner(newFakeRecords(records...))

		result, err := planner.SearchJourneys(context.Background(),
			JourneyParams{Origin: "A", Date: testDate},
			SearchOptions{IncludeTransfers: true, MaxTransferLevels: 3},
		)
		require.NoError(t, err)

		for _, bucket := range result.Destinations {
			for _, itinerary := range bucket.Itineraries {
				require.NotEmpty(t, itinerary.Legs)
				assert.Equal(t, itinerary.Stops, len(itinerary.Legs)-1)
				assert.Equal(t, bucket.Code, itinerary.DestinationCode())
				assert.LessOrEqual(t, itinerary.Duration, 600)

				for index := 0; index < len(itinerary.Legs)-1; index++ {
					assert.Equal(t, itinerary.Legs[index].DestinationCode, itinerary.Legs[index+1].OriginCode)
				}

				visited := map[string]bool{itinerary.Legs[0].OriginCode: true}
				for _, itineraryLeg := range itinerary.Legs {
					assert.False(t, visited[itineraryLeg.DestinationCode], "station %s visited twice", itineraryLeg.DestinationCode)
					visited[itineraryLeg.DestinationCode] = true
				}

				for _, wait := range itinerary.WaitTimes() {
					assert.GreaterOrEqual(t, wait, 10)
					assert.LessOrEqual(t, wait, 180)
				}
			}
		}
	}
}
