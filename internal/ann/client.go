package ann

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Release is one raw encyclopedia release entry, before classification.
type Release struct {
	// ID is the stable release identifier, taken from the href query value.
	ID string
	// Date is the release date exactly as the source supplied it.
	Date string
	// Title is the free-text release title.
	Title string
}

// Fetcher defines the release lookup operation used by the resolver.
type Fetcher interface {
	FetchReleases(ctx context.Context, animeID int64) ([]Release, error)
}

// Client fetches release metadata from the AnimeNewsNetwork encyclopedia API.
// It performs no caching and no retries; every call hits the network.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates an encyclopedia API client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("ann base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type apiAnime struct {
	ID       int64        `xml:"id,attr"`
	Releases []apiRelease `xml:"release"`
}

type apiRelease struct {
	Href  string `xml:"href,attr"`
	Date  string `xml:"date,attr"`
	Title string `xml:",chardata"`
}

type apiResponse struct {
	Anime []apiAnime `xml:"anime"`
}

// FetchReleases requests the release list for one anime ID. Transport
// failures and non-200 responses are reported as ErrUnavailable; responses
// that do not decode into the expected anime/release structure are reported
// as ErrMalformed. An anime with zero releases is a valid empty result.
func (c *Client) FetchReleases(ctx context.Context, animeID int64) ([]Release, error) {
	if animeID <= 0 {
		return nil, errors.New("anime id must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/encyclopedia/api.xml")
	if err != nil {
		return nil, fmt.Errorf("parse ann url: %w", err)
	}
	params := url.Values{}
	params.Set("anime", strconv.FormatInt(animeID, 10))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request (latency=%v): %w", ErrUnavailable, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: encyclopedia returned %d (latency=%v)", ErrUnavailable, resp.StatusCode, latency)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	var payload apiResponse
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrMalformed, err)
	}
	if len(payload.Anime) == 0 {
		return nil, fmt.Errorf("%w: response has no anime element for id %d", ErrMalformed, animeID)
	}

	var releases []Release
	for _, anime := range payload.Anime {
		for _, raw := range anime.Releases {
			id, err := releaseIDFromHref(raw.Href)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			releases = append(releases, Release{
				ID:    id,
				Date:  strings.TrimSpace(raw.Date),
				Title: strings.TrimSpace(raw.Title),
			})
		}
	}
	return releases, nil
}

// releaseIDFromHref extracts the release identifier: the substring after the
// last '=' in the reference link.
func releaseIDFromHref(href string) (string, error) {
	href = strings.TrimSpace(href)
	idx := strings.LastIndex(href, "=")
	if idx < 0 || idx == len(href)-1 {
		return "", fmt.Errorf("release href %q has no id", href)
	}
	return href[idx+1:], nil
}
