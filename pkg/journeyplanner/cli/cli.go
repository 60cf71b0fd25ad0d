package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
	"github.com/travigo/tgvmax/pkg/dataaggregator/global"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/journeyplanner"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "origin",
			Usage:    "station code to leave from",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "destination",
			Usage: "station code to travel to, anywhere when empty",
		},
		&cli.StringFlag{
			Name:     "date",
			Usage:    "travel date as YYYY-MM-DD",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "transfers",
			Value: true,
			Usage: "include journeys with connections",
		},
		&cli.IntFlag{
			Name:  "levels",
			Usage: "maximum number of connections, the configured default when unset",
		},
		&cli.BoolFlag{
			Name:  "optimize",
			Usage: "keep a single journey per departure time",
		},
		&cli.BoolFlag{
			Name:  "stations",
			Value: true,
			Usage: "resolve destination names and coordinates",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "dump the full result structure",
		},
	}
}

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "search",
			Usage: "Search journeys from a station on a given day",
			Flags: searchFlags(),
			Action: func(c *cli.Context) error {
				cfg, aggregator, err := setup(c)
				if err != nil {
					return err
				}

				result, err := dataaggregator.Lookup[*ctdf.JourneySearchResult](aggregator, query.JourneySearch{
					Context: c.Context,
					Params: journeyplanner.JourneyParams{
						Origin:      c.String("origin"),
						Destination: c.String("destination"),
						Date:        c.String("date"),
					},
					Options: journeyplanner.SearchOptions{
						IncludeTransfers:  c.Bool("transfers"),
						MaxTransferLevels: levels(c, cfg),
					},
					WithStations: c.Bool("stations"),
				})
				if err != nil {
					return err
				}

				if c.Bool("raw") {
					pretty.Fprintf(c.App.Writer, "%# v\n", result)
					return nil
				}

				printJourneys(c.App.Writer, result, c.Bool("optimize"))
				return nil
			},
		},
		{
			Name:  "roundtrip",
			Usage: "Search destinations with both an outbound and a return journey",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "return-date",
					Usage:    "return date as YYYY-MM-DD",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "min-stay",
					Value: journeyplanner.DefaultMinStayDuration,
					Usage: "minimum minutes between the last outbound arrival and a return departure",
				},
			}, searchFlags()...),
			Action: func(c *cli.Context) error {
				cfg, aggregator, err := setup(c)
				if err != nil {
					return err
				}

				result, err := dataaggregator.Lookup[*ctdf.RoundTripResult](aggregator, query.RoundTripSearch{
					Context: c.Context,
					Params: journeyplanner.RoundTripParams{
						Origin:       c.String("origin"),
						Destination:  c.String("destination"),
						OutboundDate: c.String("date"),
						ReturnDate:   c.String("return-date"),
					},
					Options: journeyplanner.RoundTripOptions{
						MinStayDuration:   c.Int("min-stay"),
						IncludeTransfers:  c.Bool("transfers"),
						MaxTransferLevels: levels(c, cfg),
						Optimize:          c.Bool("optimize"),
					},
					WithStations: c.Bool("stations"),
				})
				if err != nil {
					return err
				}

				if c.Bool("raw") {
					pretty.Fprintf(c.App.Writer, "%# v\n", result)
					return nil
				}

				printRoundTrip(c.App.Writer, result)
				return nil
			},
		},
		{
			Name:  "records",
			Usage: "List the raw schedule records leaving a station on a given day",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "origin",
					Usage:    "station code to leave from",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "destination",
					Usage: "only records running to this station code",
				},
				&cli.StringFlag{
					Name:     "date",
					Usage:    "travel date as YYYY-MM-DD",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "page",
					Usage: "only show this page of results, answered from the response cache when possible",
				},
			},
			Action: func(c *cli.Context) error {
				_, aggregator, err := setup(c)
				if err != nil {
					return err
				}

				records, err := dataaggregator.Lookup[[]ctdf.ScheduleRecord](aggregator, query.ScheduleRecords{
					Context:     c.Context,
					Origin:      c.String("origin"),
					Destination: c.String("destination"),
					Date:        c.String("date"),
					Page:        c.Int("page"),
				})
				printRecords(c.App.Writer, records)

				return err
			},
		},
	}
}

func printRecords(w io.Writer, records []ctdf.ScheduleRecord) {
	slices.SortStableFunc(records, func(a, b ctdf.ScheduleRecord) int {
		return strings.Compare(a.DepartureTime, b.DepartureTime)
	})

	for _, record := range records {
		fmt.Fprintf(w, "%s %s -> %s %s  %s  %s %s\n", record.DepartureTime, record.OriginName, record.ArrivalTime, record.DestinationName, record.DestinationCode, record.TrainType(), record.TrainNumber)
	}
	fmt.Fprintf(w, "%d records\n", len(records))
}

func setup(c *cli.Context) (*config.Config, *dataaggregator.Aggregator, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	aggregator, err := global.Setup(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, aggregator, nil
}

func levels(c *cli.Context, cfg *config.Config) int {
	if c.IsSet("levels") {
		return c.Int("levels")
	}
	return cfg.Transfer.MaxLevels
}

func printJourneys(w io.Writer, result *ctdf.JourneySearchResult, optimize bool) {
	if result.Empty() {
		fmt.Fprintln(w, "No journeys found")
		return
	}

	for _, code := range result.DestinationCodes() {
		bucket := result.Get(code)

		itineraries := bucket.Itineraries
		if optimize {
			itineraries = journeyplanner.Optimize(itineraries)
		}

		fmt.Fprintf(w, "%s %s (%d)\n", bucket.Code, bucket.Name, len(itineraries))
		printItineraries(w, itineraries)
	}

	direct, transfer := result.Counts()
	fmt.Fprintf(w, "\n%d destinations, %d direct, %d with connections\n", len(result.Destinations), direct, transfer)
	if result.Truncated {
		fmt.Fprintln(w, "Some requests failed, results may be incomplete")
	}
}

func printRoundTrip(w io.Writer, result *ctdf.RoundTripResult) {
	if result.Empty() {
		fmt.Fprintf(w, "No round trips found (%s)\n", result.Metadata.EmptyReason)
		return
	}

	codes := make([]string, 0, len(result.Matches))
	for code := range result.Matches {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	for _, code := range codes {
		match := result.Matches[code]

		fmt.Fprintf(w, "%s %s: %d outbound x %d return = %d\n", match.Code, match.Name, match.OutboundCount, match.ReturnCount, match.TotalCombinations)
		fmt.Fprintln(w, "  outbound")
		printItineraries(w, match.OutboundItineraries)
		fmt.Fprintln(w, "  return")
		printItineraries(w, match.ReturnItineraries)
	}

	fmt.Fprintf(w, "\n%d destinations, %d combinations\n", len(result.Matches), result.TotalCombinations())
}

func printItineraries(w io.Writer, itineraries []ctdf.Itinerary) {
	for _, itinerary := range itineraries {
		line := fmt.Sprintf("    %s -> %s  %s", itinerary.Departure, itinerary.Arrival, itinerary.FormattedDuration())
		if !itinerary.IsDirect() {
			line += fmt.Sprintf("  via %s", strings.Join(itinerary.TransferStations(), ", "))
		}

		trainTypes := make([]string, 0, len(itinerary.Legs))
		for _, leg := range itinerary.Legs {
			trainTypes = append(trainTypes, string(leg.TrainType()))
		}
		line += fmt.Sprintf("  [%s]", strings.Join(trainTypes, "/"))

		if itinerary.Emissions != nil {
			line += fmt.Sprintf("  %.2f kg CO2", itinerary.Emissions.TotalCO2Kg)
			if itinerary.Emissions.HasErrors {
				line += " (partial)"
			}
		}

		fmt.Fprintln(w, line)
	}
}
