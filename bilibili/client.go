package bilibili

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
	historyAPIURL  = "https://api.vc.bilibili.com/dynamic_svr/v1/dynamic_svr/space_history"
	detailAPIURL   = "https://api.vc.bilibili.com/dynamic_svr/v1/dynamic_svr/get_dynamic_detail"
	userInfoAPIURL = "https://api.bilibili.com/x/space/acc/info"

	// DynamicBaseURL is the permalink prefix; every dynamic's URL is
	// this plus its decimal id.
	DynamicBaseURL = "https://t.bilibili.com/"

	requestTimeout = 10 * time.Second
	maxAttempts    = 3

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/87.0.4280.88 Safari/537.36"
)

// Credential carries the optional bilibili session tokens. Cookies are
// attached only when both tokens are present; running without them is
// fine, some restricted dynamics are simply not visible.
type Credential struct {
	SessData   string
	CSRF       string
	VisitorUID int64
}

// Cookies returns the cookie pair to attach, or nil when the
// credential is incomplete.
func (c Credential) Cookies() []*http.Cookie {
	if c.SessData == "" || c.CSRF == "" {
		return nil
	}
	return []*http.Cookie{
		{Name: "SESSDATA", Value: c.SessData},
		{Name: "bili_jct", Value: c.CSRF},
	}
}

// Client talks to the bilibili dynamic APIs.
type Client struct {
	http *http.Client
	cred Credential

	// Endpoint URLs are fields so tests can point the client at a
	// fake upstream.
	historyURL  string
	detailURL   string
	userInfoURL string
}

// NewClient creates a dynamic API client with the given credential.
func NewClient(cred Credential) *Client {
	return &Client{
		http:        &http.Client{},
		cred:        cred,
		historyURL:  historyAPIURL,
		detailURL:   detailAPIURL,
		userInfoURL: userInfoAPIURL,
	}
}

// DynamicURL returns the canonical permalink for a dynamic id.
func DynamicURL(id int64) string {
	return DynamicBaseURL + strconv.FormatInt(id, 10)
}

// getJSON performs a GET with up to maxAttempts immediate retries and
// decodes the JSON body into out. Each attempt gets its own timeout.
// When every attempt fails the returned error is tagged ErrFetchFailed
// and carries the per-attempt causes.
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
	return fmt.Errorf("%w: %s", ErrFetchFailed, strings.Join(attemptErrs, "; "))
}

func (c *Client) tryGetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Origin", "https://t.bilibili.com")
	req.Header.Set("Referer", "https://t.bilibili.com/")
	for _, cookie := range c.cred.Cookies() {
		req.AddCookie(cookie)
	}

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
