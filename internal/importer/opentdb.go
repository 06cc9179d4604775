package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultOpenTDBURL = "https://opentdb.com"

// Open Trivia DB reports failures in response_code rather than the HTTP status.
var (
	ErrNoResults        = errors.New("opentdb: not enough questions for the query")
	ErrInvalidParameter = errors.New("opentdb: invalid parameter")
	ErrRateLimited      = errors.New("opentdb: rate limited")
)

// OpenTDBClient is a Source backed by the public Open Trivia DB API.
type OpenTDBClient struct {
	endpoint   url.URL
	httpClient *http.Client
}

var _ Source = (*OpenTDBClient)(nil)

// NewOpenTDBClient targets baseURL (the public API when empty). A nil
// httpClient gets a 5s timeout.
func NewOpenTDBClient(baseURL string, httpClient *http.Client) (*OpenTDBClient, error) {
	if baseURL == "" {
		baseURL = defaultOpenTDBURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse opentdb url: %w", err)
	}
	u = u.JoinPath("api.php")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{endpoint: *u, httpClient: httpClient}, nil
}

// OpenTDBQuestion is one result row. Text fields arrive HTML-escaped.
type OpenTDBQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type openTDBEnvelope struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

// Fetch asks for amount questions; an empty difficulty means any.
func (c *OpenTDBClient) Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error) {
	u := c.endpoint
	q := u.Query()
	q.Set("amount", strconv.Itoa(amount))
	if difficulty != "" {
		q.Set("difficulty", difficulty)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentdb request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("opentdb: unexpected status %d", resp.StatusCode)
	}

	var env openTDBEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode opentdb payload: %w", err)
	}
	switch env.ResponseCode {
	case 0:
		return env.Results, nil
	case 1:
		return nil, ErrNoResults
	case 2:
		return nil, ErrInvalidParameter
	case 5:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("opentdb: response code %d", env.ResponseCode)
	}
}
