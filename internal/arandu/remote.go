package arandu

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// FetchSystem retrieves a system description over HTTP and decodes it as
// HCL. Transient failures are retried a few times before giving up.
func FetchSystem(ctx context.Context, url string) (*System, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system description from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch system description (status %d): %s", resp.StatusCode, string(body))
	}

	src, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read system description: %w", err)
	}
	return ParseSystem(src, url)
}
