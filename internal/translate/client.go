package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/twkenxtis/yt-premium/internal/lang"
)

// Translator turns one source string into the target language.
type Translator interface {
	Translate(ctx context.Context, text string, target lang.Tag) (string, error)
}

// HTTPClient calls the remote text-translation endpoint. One instance is
// shared by all concurrent cue requests of a batch.
//
// The endpoint contract: GET with query parameters
// {client, sl=auto, tl=<target>, dt=t, q=<text>}; the response is a nested
// array whose [0][0][0] element is the translated string.
type HTTPClient struct {
	endpoint   string
	client     string
	httpClient *http.Client
}

// NewHTTPClient creates a translation client for the given endpoint.
func NewHTTPClient(endpoint, client string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   client,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Translate requests one translated string for text.
func (c *HTTPClient) Translate(ctx context.Context, text string, target lang.Tag) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid translate endpoint: %w", err)
	}

	q := u.Query()
	q.Set("client", c.client)
	q.Set("sl", "auto")
	q.Set("tl", target.String())
	q.Set("dt", "t")
	q.Set("q", text)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build translate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate endpoint returned status %d", resp.StatusCode)
	}

	translated := gjson.GetBytes(body, "0.0.0")
	if !translated.Exists() {
		return "", fmt.Errorf("unexpected translate response shape")
	}
	return translated.String(), nil
}

var _ Translator = (*HTTPClient)(nil)
