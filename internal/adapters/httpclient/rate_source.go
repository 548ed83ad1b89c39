package httpclient

import (
	"context"
	"errors"
	"fmt"
	"fxbot/internal/domain"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const maxBodyBytes = 4 << 20

type Endpoint struct {
	Name string
	URL  string
}

// RateSourceClient fetches the flat rate table from the primary endpoint and
// falls back to the mirror once. There is no retry beyond that.
type RateSourceClient struct {
	http      *http.Client
	endpoints []Endpoint
	userAgent string
	now       func() time.Time
}

func (c *RateSourceClient) FetchLatest(ctx context.Context) (domain.Snapshot, error) {
	if len(c.endpoints) == 0 {
		return domain.Snapshot{}, errors.New("no rate source endpoints configured")
	}

	var lastErr error
	for i, ep := range c.endpoints {
		fields, err := c.fetch(ctx, ep)
		if err == nil {
			return domain.NewSnapshot(c.now().UTC(), ep.Name, fields), nil
		}
		lastErr = err
		if i < len(c.endpoints)-1 {
			logrus.WithError(err).WithField("endpoint", ep.Name).Warn("Rate source failed, trying next endpoint")
		}
	}
	return domain.Snapshot{}, lastErr
}

func (c *RateSourceClient) fetch(ctx context.Context, ep Endpoint) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for endpoint %q: %w", ep.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for endpoint %q: %w", ep.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for endpoint %q: %s", resp.StatusCode, ep.Name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response for endpoint %q: %w", ep.Name, err)
	}

	fields, err := parseRateTable(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response for endpoint %q: %w", ep.Name, err)
	}
	return fields, nil
}

// parseRateTable keeps string and number members of a flat JSON object as text.
// Anything else (nested objects, arrays, null, bools) is dropped.
func parseRateTable(body []byte) (map[string]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.New("rate table is not a json object")
	}

	fields := make(map[string]string)
	root.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			fields[key.String()] = value.String()
		case gjson.Number:
			fields[key.String()] = value.Raw
		}
		return true
	})
	if len(fields) == 0 {
		return nil, domain.ErrEmptyRateTable
	}
	return fields, nil
}

func NewRateSourceClient(httpClient *http.Client, userAgent string, endpoints ...Endpoint) *RateSourceClient {
	eps := make([]Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if ep.URL != "" {
			eps = append(eps, ep)
		}
	}
	return &RateSourceClient{http: httpClient, endpoints: eps, userAgent: userAgent, now: time.Now}
}
