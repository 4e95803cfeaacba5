package source

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

var httpClient = &http.Client{Timeout: 20 * time.Second}

// Fetch downloads a record document, retrying transport and 5xx failures.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	log := logger.New().WithField("module", "source.fetch").WithField("url", url)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var body []byte
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("download failed")
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = err
			return err
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("download failed: %s", resp.Status)
			return backoff.Permanent(lastErr)
		}
		body = b
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, lastErr
	}
	log.WithField("bytes", len(body)).Debug("document downloaded")
	return body, nil
}

// FetchLines downloads a record document and splits it into lines. When html
// is set the record text is pulled out of the page first.
func FetchLines(ctx context.Context, url string, html bool) (Lines, error) {
	body, err := Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if html {
		return FromHTML(bytes.NewReader(body))
	}
	return FromString(string(body)), nil
}
