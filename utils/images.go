package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	imageTimeout     = 10 * time.Second
	imageMaxAttempts = 3

	imageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/87.0.4280.88 Safari/537.36"
)

// FetchImage downloads an image with a browser-like referer so
// hotlink-protected hosts (pixiv in particular) serve it. Same retry
// policy as the API clients: three immediate attempts, 10s each.
func FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	var attemptErrs []string
	for attempt := 1; attempt <= imageMaxAttempts; attempt++ {
		data, err := fetchImage(ctx, imageURL)
		if err != nil {
			attemptErrs = append(attemptErrs, fmt.Sprintf("attempt %d: %v", attempt, err))
			continue
		}
		return data, nil
	}
	return nil, fmt.Errorf("failed to download image %s: %s", imageURL, strings.Join(attemptErrs, "; "))
}

func fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", imageUserAgent)
	req.Header.Set("Referer", "https://www.pixiv.net/")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
