package speakers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"crec-parser-go/internal/logger"
	"github.com/cenkalti/backoff/v4"
)

var httpClient = &http.Client{Timeout: 12 * time.Second}

// Fetch downloads a JSON speaker directory, retrying server errors.
func Fetch(ctx context.Context, url string) (Map, error) {
	log := logger.New().WithField("component", "speakers.fetch").WithField("url", url)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var out Map
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("directory request failed")
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = err
			return err
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("directory fetch: status %d", resp.StatusCode)
			return backoff.Permanent(lastErr)
		}
		m, err := DecodeJSON(bytes.NewReader(body))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		out = m
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, fmt.Errorf("fetch speaker directory: %w", lastErr)
	}
	log.WithField("speakers", len(out)).Info("speaker directory fetched")
	return out, nil
}
