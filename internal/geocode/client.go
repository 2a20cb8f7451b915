package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnresolved is returned when a lookup fails for a recoverable reason:
// timeout, non-2xx response, or a malformed or empty payload. Callers treat it
// as "no name available", never as a fatal condition.
var ErrUnresolved = errors.New("geocode: unresolved")

// Zoom level tuned for locality-level results (suburb/village granularity)
const reverseZoom = 14

// Resolver resolves a decimal coordinate pair to a short place label
type Resolver interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Client is a reverse-geocoding client for a Nominatim-compatible endpoint.
// The public service allows at most one request per second, so every call
// goes through a shared rate limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a reverse-geocoding client
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse resolves a coordinate to a short place label: the first two
// comma-separated components of the full display name
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("geocode: rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("format", "jsonv2")
	q.Set("zoom", fmt.Sprintf("%d", reverseZoom))

	reqURL := c.baseURL + "/reverse?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("geocode: failed to create request: %w", err)
	}
	// Required by the Nominatim usage policy
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnresolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnresolved, resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrUnresolved, err)
	}
	if body.DisplayName == "" {
		return "", fmt.Errorf("%w: empty display name", ErrUnresolved)
	}

	return shortLabel(body.DisplayName), nil
}

// shortLabel keeps the first two comma-separated components of a full address
// string, e.g. "Kérel, Bangor, Morbihan, France" -> "Kérel, Bangor"
func shortLabel(displayName string) string {
	parts := strings.Split(displayName, ",")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ", ")
}
