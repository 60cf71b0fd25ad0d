package tgvmax

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/util"
)

var ErrUnexpectedStatus = errors.New("unexpected status from records api")

// PageCache stores raw page bodies keyed by request URL
type PageCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string)
}

// Query selects the records departing Origin on Date, optionally only those
// heading to Destination
type Query struct {
	Origin      string
	Date        string
	Destination string
}

type Page struct {
	Records    []ctdf.ScheduleRecord
	TotalCount int
}

// FetchResult is the outcome of a paginated fetch. Truncated is set when
// pagination stopped because of Err rather than because the data ran out;
// Records then holds whatever was collected before the failure.
type FetchResult struct {
	Records   []ctdf.ScheduleRecord
	Pages     int
	Truncated bool
	Err       error
}

type Client struct {
	BaseURL  string
	FareFlag string
	PageSize int

	RequestTimeout time.Duration
	Retries        int
	RetryInterval  time.Duration

	HTTPClient *http.Client
	Cache      PageCache
}

func NewClient(cfg config.RecordsConfig, cache PageCache) *Client {
	return &Client{
		BaseURL:        cfg.BaseURL,
		FareFlag:       cfg.FareFlag,
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout.Duration(),
		Retries:        cfg.Retries,
		RetryInterval:  cfg.RetryInterval.Duration(),
		HTTPClient:     &http.Client{},
		Cache:          cache,
	}
}

// PageURL builds the request URL for one page of q
func (c *Client) PageURL(q Query, offset int) string {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(c.PageSize))
	values.Set("offset", strconv.Itoa(offset))
	values.Add("refine", fmt.Sprintf("origine_iata:%s", q.Origin))
	values.Add("refine", fmt.Sprintf("date:%s", q.Date))
	values.Add("refine", fmt.Sprintf("od_happy_card:\"%s\"", c.FareFlag))
	if q.Destination != "" {
		values.Add("refine", fmt.Sprintf("destination_iata:%s", q.Destination))
	}

	return fmt.Sprintf("%s?%s", c.BaseURL, values.Encode())
}

// FetchAllRecords follows pagination from offset 0 until a page comes back
// short or empty. Pages are requested one after the other as each page's
// size decides whether another is needed. The response cache is never read
// or written here, every call sees the records as they are now.
func (c *Client) FetchAllRecords(ctx context.Context, q Query) FetchResult {
	result := FetchResult{}
	offset := 0

	for {
		page, err := c.fetchPage(ctx, c.PageURL(q, offset))
		result.Pages++

		if err != nil {
			log.Warn().Err(err).
				Str("origin", q.Origin).
				Str("destination", q.Destination).
				Str("date", q.Date).
				Int("offset", offset).
				Msg("Failed to fetch records page")

			result.Truncated = true
			result.Err = err
			break
		}

		if len(page.Records) == 0 {
			break
		}

		result.Records = append(result.Records, page.Records...)
		offset += c.PageSize

		if len(page.Records) < c.PageSize {
			break
		}
	}

	log.Debug().
		Str("origin", q.Origin).
		Str("destination", q.Destination).
		Int("records", len(result.Records)).
		Int("pages", result.Pages).
		Bool("truncated", result.Truncated).
		Msg("Loaded records")

	return result
}

// FetchPage retrieves a single page of q through the response cache
func (c *Client) FetchPage(ctx context.Context, q Query, offset int) (Page, error) {
	return c.FetchWithCache(ctx, c.PageURL(q, offset))
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (Page, error) {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return Page{}, err
	}

	return decodePage(body)
}

// FetchWithCache answers from the cache when the same URL was fetched before.
// Failed requests are never cached and give back an empty page.
func (c *Client) FetchWithCache(ctx context.Context, pageURL string) (Page, error) {
	if c.Cache != nil {
		if body, found := c.Cache.Get(ctx, pageURL); found {
			log.Debug().Str("url", util.TrimString(pageURL, 120)).Msg("Cache hit")

			page, err := decodePage([]byte(body))
			if err == nil {
				return page, nil
			}
		}
	}

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return Page{}, err
	}

	page, err := decodePage(body)
	if err != nil {
		return Page{}, err
	}

	if c.Cache != nil {
		c.Cache.Set(ctx, pageURL, string(body))
	}

	return page, nil
}

func (c *Client) get(ctx context.Context, pageURL string) ([]byte, error) {
	var body []byte

	operation := func() error {
		requestContext := ctx
		if c.RequestTimeout > 0 {
			var cancel context.CancelFunc
			requestContext, cancel = context.WithTimeout(ctx, c.RequestTimeout)
			defer cancel()
		}

		req, err := http.NewRequestWithContext(requestContext, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)

			// Only server side and rate limit failures are worth another go
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	if c.RetryInterval > 0 {
		retryBackoff.InitialInterval = c.RetryInterval
	}

	var policy backoff.BackOff = backoff.WithMaxRetries(retryBackoff, uint64(max(c.Retries, 0)))
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}

	return body, nil
}

func decodePage(body []byte) (Page, error) {
	var response recordsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return Page{}, fmt.Errorf("failed to decode records page: %w", err)
	}

	page := Page{
		Records:    make([]ctdf.ScheduleRecord, 0, len(response.Results)),
		TotalCount: response.TotalCount,
	}
	for _, record := range response.Results {
		page.Records = append(page.Records, record.toScheduleRecord())
	}

	return page, nil
}
