package export

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// PollInterval is the delay between two readiness checks.
	PollInterval = time.Second
	// ReadyTimeout bounds the wait for the local server.
	ReadyTimeout = 30 * time.Second
	// ContentSelector marks a fully rendered CV page.
	ContentSelector = "#cv-content"
)

// WaitForReady polls url until it answers 200 with a page containing
// ContentSelector, or returns a *TimeoutError once timeout has elapsed.
// Cancelling ctx returns ctx's error instead.
func WaitForReady(ctx context.Context, url string, interval, timeout time.Duration) error {
	if interval <= 0 {
		interval = PollInterval
	}
	if timeout <= 0 {
		timeout = ReadyTimeout
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	client := &http.Client{Timeout: interval}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for attempt := 1; ; attempt++ {
		err := checkReady(ctx, client, url)
		if err == nil {
			return nil
		}
		// keep the last real answer rather than the deadline that interrupted a request
		if ctx.Err() == nil || lastErr == nil {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if err := parent.Err(); err != nil {
				// interrupted, not timed out
				return err
			}
			log.Printf("[EXPORT] %s not ready after %d attempts: %v", url, attempt, lastErr)
			return &TimeoutError{Op: "waiting for " + url, After: timeout, Cause: lastErr}
		case <-ticker.C:
		}
	}
}

func checkReady(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("unreadable page: %w", err)
	}
	if doc.Find(ContentSelector).Length() == 0 {
		return fmt.Errorf("page has no %s element", ContentSelector)
	}
	return nil
}
