package rsdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/pkg/config"
	"github.com/minhobin/mtt/pkg/httputil"
	"github.com/minhobin/mtt/pkg/logger"
)

// Client fetches the dalinaum/rs published datasets: the KRX stock
// list, daily RS markdown posts, daily trend-template posts and
// per-stock price CSVs. All documents are raw files keyed by date.
// ⭐ SSOT: RS 데이터 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.RSDataConfig
}

// NewClient creates a new RS data client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.RSDataConfig) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// RankDocURL returns the URL of the daily RS markdown for a date (YYYY-MM-DD)
func (c *Client) RankDocURL(date string) string {
	return fmt.Sprintf("%s/%s-krx-rs.markdown", c.cfg.PostsBaseURL, date)
}

// TrendTemplateDocURL returns the URL of the daily trend-template markdown
func (c *Client) TrendTemplateDocURL(date string) string {
	return fmt.Sprintf("%s/%s-krx-trend-template.markdown", c.cfg.PostsBaseURL, date)
}

// PriceDocURL returns the URL of a stock's daily price CSV for a date
func (c *Client) PriceDocURL(date, code, name string) string {
	return fmt.Sprintf("%s/%s/%s-%s.csv", c.cfg.PriceBaseURL, date, code, url.PathEscape(name))
}

// RankDocExists probes whether the RS markdown for a date is published
func (c *Client) RankDocExists(ctx context.Context, date string) (bool, error) {
	return c.httpClient.Exists(ctx, c.RankDocURL(date))
}

// PriceDocExists probes whether a stock's price CSV for a date is published
func (c *Client) PriceDocExists(ctx context.Context, date, code, name string) (bool, error) {
	return c.httpClient.Exists(ctx, c.PriceDocURL(date, code, name))
}

// TrendTemplateDocExists probes whether the trend-template markdown for a date is published
func (c *Client) TrendTemplateDocExists(ctx context.Context, date string) (bool, error) {
	return c.httpClient.Exists(ctx, c.TrendTemplateDocURL(date))
}

// fetchText downloads a document body, translating 404 into a typed
// ResourceNotFound failure
func (c *Client) fetchText(ctx context.Context, docURL string) (string, error) {
	resp, err := c.httpClient.Get(ctx, docURL)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", contracts.NewError(contracts.FailResourceNotFound, docURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// FetchTrendTemplateDoc fetches the raw trend-template markdown for a date
func (c *Client) FetchTrendTemplateDoc(ctx context.Context, date string) (string, error) {
	return c.fetchText(ctx, c.TrendTemplateDocURL(date))
}
