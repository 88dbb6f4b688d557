package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/cinemate/internal/config"
)

// ErrNotFound is matched by every ResponseError.
var ErrNotFound = errors.New("omdb: not found")

const (
	defaultSearchMessage  = "No results found"
	defaultDetailsMessage = "Media not found"
)

// ResponseError is returned when OMDb answers with Response "False".
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	return e.Message
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrNotFound
}

// Client represents an OMDb API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new OMDb API client.
func New(cfg *config.OMDbConfig) *Client {
	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Title is the subset of an OMDb details record used to fill in collection entries.
type Title struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Writer   string `json:"Writer"`
	Poster   string `json:"Poster"`
	Plot     string `json:"Plot"`
	Type     string `json:"Type"`
	ImdbID   string `json:"imdbID"`
}

// envelope carries the status fields every OMDb response has.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Search queries OMDb by free text and returns the raw response body.
// mediaType may be empty, "movie" or "series".
func (c *Client) Search(ctx context.Context, query, mediaType string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("s", query)
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	return c.get(ctx, params, defaultSearchMessage)
}

// Details returns the raw full-plot record for an IMDb id.
func (c *Client) Details(ctx context.Context, imdbID string) (json.RawMessage, error) {
	return c.get(ctx, detailsParams(imdbID), defaultDetailsMessage)
}

// Lookup fetches the full-plot record for an IMDb id and decodes it.
func (c *Client) Lookup(ctx context.Context, imdbID string) (*Title, error) {
	body, err := c.get(ctx, detailsParams(imdbID), defaultDetailsMessage)
	if err != nil {
		return nil, err
	}

	var title Title
	if err := json.Unmarshal(body, &title); err != nil {
		return nil, fmt.Errorf("error decoding details response: %w", err)
	}
	return &title, nil
}

func detailsParams(imdbID string) url.Values {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")
	return params
}

// get performs a GET request and checks the OMDb response envelope.
// The body is inspected regardless of the status code since OMDb reports
// failures like an invalid key with a JSON error body.
func (c *Client) get(ctx context.Context, params url.Values, defaultMessage string) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing base url: %w", err)
	}
	params.Set("apikey", c.apiKey)
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if env.Response != "True" {
		msg := env.Error
		if msg == "" {
			msg = defaultMessage
		}
		log.Debug("omdb request returned no result", "status", resp.StatusCode, "error", msg)
		return nil, &ResponseError{Message: msg}
	}

	return json.RawMessage(body), nil
}
