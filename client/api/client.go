// Package api talks to the profile server over HTTP. Client implements both
// wizard ports.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"profilewizard/models"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

// ServerError is a non-success response. Message is the server's "error"
// field, or the status text when the body had none.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

func (e *ServerError) ServerMessage() string { return e.Message }

func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client for the server at baseURL. A nil httpClient gets
// a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := c.getJSON(ctx, "/api/countries", &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *Client) ListStates(ctx context.Context, country string) ([]string, error) {
	var states []string
	if err := c.getJSON(ctx, "/api/states/"+url.PathEscape(country), &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (c *Client) ListCities(ctx context.Context, country, state string) ([]string, error) {
	path := "/api/cities/" + url.PathEscape(state)
	if country != "" {
		path += "?" + url.Values{"country": {country}}.Encode()
	}
	var cities []string
	if err := c.getJSON(ctx, path, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readServerError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readServerError turns a failed response into a *ServerError.
func readServerError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &ServerError{Status: resp.StatusCode, Message: msg}
}
