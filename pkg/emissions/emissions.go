package emissions

import (
	"math"

	"github.com/travigo/tgvmax/pkg/ctdf"
)

const earthRadiusKm = 6371.0

// Grams of CO2 per passenger kilometre
const (
	FactorHighSpeed  = 3.69
	FactorIntercites = 8.1
	FactorTER        = 29.9

	FactorCar        = 193.0
	FactorPlaneShort = 258.0
	FactorPlaneLong  = 195.0
	FactorBus        = 68.0
)

// Flights shorter than this use the short haul factor
const shortHaulKm = 1000.0

// Distance is the great circle distance in kilometres between two points,
// rounded to one decimal
func Distance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return round(earthRadiusKm*c, 1)
}

func Factor(trainType ctdf.TrainType) float64 {
	switch trainType {
	case ctdf.TrainTypeIntercites:
		return FactorIntercites
	case ctdf.TrainTypeTER:
		return FactorTER
	default:
		return FactorHighSpeed
	}
}

// Segment works out the footprint of one leg. found is false when either
// station is missing from locations.
func Segment(leg ctdf.ScheduleRecord, locations map[string]*ctdf.Location) (segment ctdf.EmissionSegment, found bool) {
	origin := locations[leg.OriginCode]
	destination := locations[leg.DestinationCode]
	if !hasCoordinates(origin) || !hasCoordinates(destination) {
		return ctdf.EmissionSegment{}, false
	}

	trainType := leg.TrainType()
	distance := Distance(origin.Latitude(), origin.Longitude(), destination.Latitude(), destination.Longitude())

	return ctdf.EmissionSegment{
		OriginCode:      leg.OriginCode,
		DestinationCode: leg.DestinationCode,
		TrainType:       trainType,
		TrainNumber:     leg.TrainNumber,
		DistanceKm:      distance,
		Factor:          Factor(trainType),
		CO2Kg:           round(distance*Factor(trainType)/1000, 2),
	}, true
}

// Calculate totals the footprint of every leg with known coordinates and
// compares it with other modes over the same distance. Nil for no legs.
func Calculate(legs []ctdf.ScheduleRecord, locations map[string]*ctdf.Location) *ctdf.Emissions {
	if len(legs) == 0 {
		return nil
	}

	result := &ctdf.Emissions{}
	totalDistance := 0.0
	totalCO2 := 0.0

	for _, leg := range legs {
		segment, found := Segment(leg, locations)
		if !found {
			result.HasErrors = true
			continue
		}

		result.Segments = append(result.Segments, segment)
		totalDistance += segment.DistanceKm
		totalCO2 += segment.CO2Kg
	}

	result.TotalDistanceKm = round(totalDistance, 1)
	result.TotalCO2Kg = round(totalCO2, 2)

	planeFactor := FactorPlaneLong
	if totalDistance < shortHaulKm {
		planeFactor = FactorPlaneShort
	}
	result.Comparisons = ctdf.EmissionComparisons{
		Car:   compare(totalDistance, FactorCar, totalCO2),
		Plane: compare(totalDistance, planeFactor, totalCO2),
		Bus:   compare(totalDistance, FactorBus, totalCO2),
	}

	return result
}

func compare(distance float64, factor float64, trainCO2 float64) ctdf.EmissionComparison {
	modeCO2 := distance * factor / 1000

	comparison := ctdf.EmissionComparison{
		CO2Kg: round(modeCO2, 2),
		Saved: round(modeCO2-trainCO2, 2),
	}
	if modeCO2 > 0 {
		comparison.Percentage = int(math.Round((1 - trainCO2/modeCO2) * 100))
	}

	return comparison
}

func hasCoordinates(location *ctdf.Location) bool {
	return location != nil && len(location.Coordinates) >= 2
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
