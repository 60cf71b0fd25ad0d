package global

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/tgvmax/pkg/cachedresults"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
	"github.com/travigo/tgvmax/pkg/dataaggregator/source/journeyplanner"
	stationssource "github.com/travigo/tgvmax/pkg/dataaggregator/source/stations"
	tgvmaxsource "github.com/travigo/tgvmax/pkg/dataaggregator/source/tgvmax"
	planner "github.com/travigo/tgvmax/pkg/journeyplanner"
	"github.com/travigo/tgvmax/pkg/redis_client"
	"github.com/travigo/tgvmax/pkg/stations"
	"github.com/travigo/tgvmax/pkg/tgvmax"
)

// Setup builds every component from cfg and registers them as data sources
func Setup(ctx context.Context, cfg *config.Config) (*dataaggregator.Aggregator, error) {
	var redisClient *redis.Client
	if cfg.Cache.Backend == "redis" {
		client, err := redis_client.Connect(ctx, cfg.Cache.Redis)
		if err != nil {
			return nil, err
		}
		redisClient = client
	}

	responseCache, err := cachedresults.New(cfg.Cache, redisClient)
	if err != nil {
		return nil, err
	}

	client := tgvmax.NewClient(cfg.Records, responseCache)
	stationService := stations.NewService(cfg.Stations)
	journeyPlanner := planner.NewPlanner(client, stationService, cfg)

	aggregator := dataaggregator.New()
	aggregator.RegisterSource(tgvmaxsource.Source{Client: client})
	aggregator.RegisterSource(stationssource.Source{Service: stationService})
	aggregator.RegisterSource(journeyplanner.Source{Planner: journeyPlanner})

	return aggregator, nil
}
