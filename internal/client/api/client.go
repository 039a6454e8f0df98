// FILE: internal/client/api/client.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/display"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

// RankedEntry mirrors one row of a server ranked view
type RankedEntry struct {
	CompetitorID string `json:"competitor_id"`
	DisplayName  string `json:"display_name"`
	Score        int64  `json:"score"`
	Rank         int64  `json:"rank"`
}

// SubmitResult mirrors the server's submission acknowledgement
type SubmitResult struct {
	EntryID      int64  `json:"entry_id"`
	CompetitorID string `json:"competitor_id"`
	Score        int64  `json:"score"`
	TotalScore   int64  `json:"total_score"`
	Timestamp    string `json:"timestamp"`
}

// Competitor mirrors a registered competitor
type Competitor struct {
	CompetitorID string `json:"competitor_id"`
	DisplayName  string `json:"display_name"`
	JoinedAt     string `json:"joined_at"`
}

// envelope is the server's {data, source} response wrapper
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Source string          `json:"source"`
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) (string, error) {
	url := c.BaseURL + path

	// Prepare body
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Display request
	fmt.Printf("\n%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if bodyStr != "" && c.Verbose {
		fmt.Printf("%s%s%s\n", display.Blue, bodyStr, display.Reset)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		fmt.Printf("%s[ERROR] %s%s\n", display.Red, err.Error(), display.Reset)
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if c.Verbose {
		var pretty interface{}
		if json.Unmarshal(respBody, &pretty) == nil {
			display.PrettyPrintJSON(pretty)
		}
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error   string `json:"error"`
			Code    string `json:"code"`
			Details string `json:"details"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("%s (%s)", apiErr.Error, apiErr.Code)
		}
		return "", fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return "", fmt.Errorf("malformed response: %w", err)
	}
	if result != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return "", fmt.Errorf("malformed response data: %w", err)
		}
	}
	return env.Source, nil
}

// Submit sends one score submission
func (c *Client) Submit(competitorID string, score int64, mode string) (*SubmitResult, error) {
	body := map[string]interface{}{
		"competitor_id": competitorID,
		"score":         score,
	}
	if mode != "" {
		body["mode"] = mode
	}
	var result SubmitResult
	if _, err := c.doRequest(http.MethodPost, "/api/leaderboard/submit", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Top fetches the top-N ranked view and its serving origin
func (c *Client) Top(limit int64) ([]RankedEntry, string, error) {
	path := "/api/leaderboard/top"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var entries []RankedEntry
	source, err := c.doRequest(http.MethodGet, path, nil, &entries)
	if err != nil {
		return nil, "", err
	}
	return entries, source, nil
}

// Rank fetches one competitor's ranked entry and its serving origin
func (c *Client) Rank(competitorID string) (*RankedEntry, string, error) {
	var entry RankedEntry
	source, err := c.doRequest(http.MethodGet, "/api/leaderboard/rank/"+competitorID, nil, &entry)
	if err != nil {
		return nil, "", err
	}
	return &entry, source, nil
}

// Register creates a competitor
func (c *Client) Register(competitorID, displayName string) (*Competitor, error) {
	body := map[string]interface{}{
		"display_name": displayName,
	}
	if competitorID != "" {
		body["competitor_id"] = competitorID
	}
	var competitor Competitor
	if _, err := c.doRequest(http.MethodPost, "/api/leaderboard/competitors", body, &competitor); err != nil {
		return nil, err
	}
	return &competitor, nil
}

// Health checks server health
func (c *Client) Health() (map[string]interface{}, error) {
	url := c.BaseURL + "/health"
	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, err
	}
	return health, nil
}
