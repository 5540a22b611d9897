package editor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrFetchFailed marks a failed or timed-out download of an edited document.
// Retrying is the caller's decision; the client does bounded retries only.
var ErrFetchFailed = errors.New("editor fetch failed")

// Client downloads edited documents from the temporary URLs the editor hands
// out in save callbacks.
type Client struct {
	httpClient   *resty.Client
	internalHost string
	logger       *zap.Logger
}

// NewClient builds a download client. internalHost, when non-empty, replaces
// loopback hostnames in callback URLs: behind a reverse proxy the editor
// reports its own container-local address, which must be rewritten to the
// service hostname reachable from here.
func NewClient(internalHost string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		// Some editor builds reject requests without a browser UA (403).
		SetHeader("User-Agent", "Mozilla/5.0")
	return &Client{
		httpClient:   httpClient,
		internalHost: internalHost,
		logger:       logger,
	}
}

// FetchDocument downloads the edited blob at rawURL.
func (c *Client) FetchDocument(ctx context.Context, rawURL string) ([]byte, error) {
	fetchURL, err := c.rewriteURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if fetchURL != rawURL {
		c.logger.Info("rewrote editor download URL",
			zap.String("from", rawURL),
			zap.String("to", fetchURL))
	}

	resp, err := c.httpClient.R().SetContext(ctx).Get(fetchURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode())
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrFetchFailed)
	}
	c.logger.Info("downloaded edited document",
		zap.Int("bytes", len(body)))
	return body, nil
}

func (c *Client) rewriteURL(rawURL string) (string, error) {
	if c.internalHost == "" {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return rawURL, nil
	}
	if port := u.Port(); port != "" {
		u.Host = c.internalHost + ":" + port
	} else {
		u.Host = c.internalHost
	}
	return u.String(), nil
}
