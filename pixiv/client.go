package pixiv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	rankAPIURL   = "https://api.hibiapi.app/api/pixiv/rank"
	illustAPIURL = "https://api.hibiapi.app/api/pixiv/illust"

	requestTimeout = 10 * time.Second
	maxAttempts    = 3
)

// Rank modes accepted by the ranking endpoint.
const (
	ModeDaily   = "daily"
	ModeWeekly  = "weekly"
	ModeMonthly = "monthly"
)

// Illust is the subset of illustration metadata shown in replies.
type Illust struct {
	PID      int64  `json:"pid"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ImageURL string `json:"url"`
	Page     string `json:"page"`
}

// Caption renders the text that accompanies the image.
func (i Illust) Caption() string {
	return fmt.Sprintf("「%s」/「%s」\nPID: %d\n%s", i.Title, i.Author, i.PID, i.Page)
}

// Client talks to the illustration proxy API.
type Client struct {
	http   *http.Client
	apiKey string

	rankURL   string
	illustURL string
}

// NewClient creates an illustration API client. The key is passed
// through to the ranking endpoint as-is.
func NewClient(apiKey string) *Client {
	return &Client{
		http:      &http.Client{},
		apiKey:    apiKey,
		rankURL:   rankAPIURL,
		illustURL: illustAPIURL,
	}
}

type rankResponse struct {
	Error   bool    `json:"error"`
	Message string  `json:"message"`
	Body    []int64 `json:"body"`
}

// Rank fetches the PIDs of the current ranking for a mode
// (daily/weekly/monthly), num entries at most.
func (c *Client) Rank(ctx context.Context, mode string, num int) ([]int64, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("num", strconv.Itoa(num))
	params.Set("mode", mode)

	var resp rankResponse
	if err := c.getJSON(ctx, c.rankURL, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, fmt.Errorf("rank api rejected request: %s", resp.Message)
	}
	return resp.Body, nil
}

type illustResponse struct {
	Error   bool    `json:"error"`
	Message string  `json:"message"`
	Body    *Illust `json:"body"`
}

// Illust fetches metadata for a single illustration by PID.
func (c *Client) Illust(ctx context.Context, pid int64) (Illust, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("pid", strconv.FormatInt(pid, 10))

	var resp illustResponse
	if err := c.getJSON(ctx, c.illustURL, params, &resp); err != nil {
		return Illust{}, err
	}
	if resp.Error || resp.Body == nil {
		return Illust{}, fmt.Errorf("illust %d not available: %s", pid, resp.Message)
	}
	illust := *resp.Body
	if illust.PID == 0 {
		illust.PID = pid
	}
	return illust, nil
}

// getJSON mirrors the retry policy of the bilibili client: three
// immediate attempts, 10s each.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	var attemptErrs []string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			attemptErrs = append(attemptErrs, fmt.Sprintf("attempt %d: %v", attempt, err))
			break
		}
		if err := c.tryGetJSON(ctx, rawURL, params, out); err != nil {
			attemptErrs = append(attemptErrs, fmt.Sprintf("attempt %d: %v", attempt, err))
			continue
		}
		return nil
	}
	return fmt.Errorf("fetch %s failed: %s", rawURL, strings.Join(attemptErrs, "; "))
}

func (c *Client) tryGetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %v", err)
	}
	return nil
}
