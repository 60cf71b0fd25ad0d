package stations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/transforms"
	"github.com/travigo/tgvmax/pkg/util"
)

const minimumQueryLength = 2

var ErrEmptyDataset = errors.New("station dataset is empty")

// Service answers station lookups from the stations.csv dataset. The dataset
// is loaded on first use and reloaded once it is older than CacheDuration.
type Service struct {
	Source          string
	CacheDuration   time.Duration
	SuggestionLimit int

	HTTPClient *http.Client

	Transformer *transforms.Transformer

	now func() time.Time

	// loadMutex makes concurrent callers share a single load
	loadMutex sync.Mutex
	loading   atomic.Bool

	dataMutex  sync.RWMutex
	stations   []ctdf.Station
	index      map[string]int
	lastUpdate time.Time
}

func NewService(cfg config.StationsConfig) *Service {
	return &Service{
		Source:          cfg.Source,
		CacheDuration:   cfg.CacheDuration.Duration(),
		SuggestionLimit: cfg.SuggestionLimit,
		HTTPClient:      &http.Client{Timeout: time.Minute},
		Transformer:     transforms.New(cfg.Overrides),
		now:             time.Now,
	}
}

// Status describes the loaded dataset without triggering a load
type Status struct {
	Valid           bool       `groups:"basic"`
	StationCount    int        `groups:"basic"`
	LastUpdate      *time.Time `groups:"basic"`
	CacheAgeSeconds int        `groups:"basic"`
	CacheExpiresIn  int        `groups:"basic"`
	Loading         bool       `groups:"basic"`
}

// GetStationByCode returns nil without an error when the code is unknown
func (s *Service) GetStationByCode(ctx context.Context, code string) (*ctdf.Station, error) {
	code = util.NormaliseStationCode(code)
	if code == "" {
		return nil, nil
	}

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.dataMutex.RLock()
	defer s.dataMutex.RUnlock()

	position, exists := s.index[code]
	if !exists {
		return nil, nil
	}

	station := s.stations[position]
	return &station, nil
}

// Suggestions matches the query against station names and slugs, returning
// at most SuggestionLimit SNCF served stations in dataset order.
func (s *Service) Suggestions(ctx context.Context, query string) ([]ctdf.Station, error) {
	if len(query) < minimumQueryLength {
		return []ctdf.Station{}, nil
	}

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	search := strings.ToLower(query)
	suggestions := []ctdf.Station{}

	s.dataMutex.RLock()
	defer s.dataMutex.RUnlock()

	for _, station := range s.stations {
		if s.SuggestionLimit > 0 && len(suggestions) >= s.SuggestionLimit {
			break
		}

		if !station.Enabled {
			continue
		}

		if strings.Contains(strings.ToLower(station.Name), search) || strings.Contains(strings.ToLower(station.Slug), search) {
			suggestions = append(suggestions, station)
		}
	}

	return suggestions, nil
}

func (s *Service) Status() Status {
	s.dataMutex.RLock()
	defer s.dataMutex.RUnlock()

	status := Status{
		StationCount: len(s.stations),
		Loading:      s.loading.Load(),
	}

	if s.lastUpdate.IsZero() {
		return status
	}

	lastUpdate := s.lastUpdate
	age := s.now().Sub(lastUpdate)

	status.LastUpdate = &lastUpdate
	status.CacheAgeSeconds = int(age.Seconds())
	status.Valid = age < s.CacheDuration
	status.CacheExpiresIn = max(0, int((s.CacheDuration - age).Seconds()))

	return status
}

// Reload forces the dataset to be fetched again
func (s *Service) Reload(ctx context.Context) error {
	s.loadMutex.Lock()
	defer s.loadMutex.Unlock()

	return s.load(ctx)
}

func (s *Service) stale() bool {
	s.dataMutex.RLock()
	defer s.dataMutex.RUnlock()

	return s.lastUpdate.IsZero() || s.now().Sub(s.lastUpdate) > s.CacheDuration
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if !s.stale() {
		return nil
	}

	s.loadMutex.Lock()
	defer s.loadMutex.Unlock()

	// Someone else may have finished loading while we waited
	if !s.stale() {
		return nil
	}

	err := s.load(ctx)
	if err == nil {
		return nil
	}

	s.dataMutex.RLock()
	hasData := len(s.stations) > 0
	s.dataMutex.RUnlock()

	if hasData {
		log.Warn().Err(err).Msg("Failed to reload stations, serving previous dataset")
		return nil
	}

	return err
}

func (s *Service) load(ctx context.Context) error {
	s.loading.Store(true)
	defer s.loading.Store(false)

	log.Info().Str("source", s.Source).Msg("Loading stations")

	reader, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer reader.Close()

	stations, err := parseStations(reader)
	if err != nil {
		return fmt.Errorf("failed to parse stations: %w", err)
	}
	if len(stations) == 0 {
		return ErrEmptyDataset
	}

	if overridden := s.Transformer.Transform(stations); overridden > 0 {
		log.Debug().Int("overrides", overridden).Msg("Applied station overrides")
	}

	index := make(map[string]int, len(stations))
	for position, station := range stations {
		if station.Code == "" {
			continue
		}
		index[station.Code] = position
	}

	s.dataMutex.Lock()
	s.stations = stations
	s.index = index
	s.lastUpdate = s.now()
	s.dataMutex.Unlock()

	log.Info().Int("stations", len(stations)).Int("indexed", len(index)).Msg("Loaded stations")

	return nil
}

func (s *Service) open(ctx context.Context) (io.ReadCloser, error) {
	if !strings.HasPrefix(s.Source, "http://") && !strings.HasPrefix(s.Source, "https://") {
		return os.Open(s.Source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("station dataset returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
