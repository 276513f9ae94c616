package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/zap"
)

// Client is a thin proxy to the upstream news API. A query picks the
// article-search endpoint; no query falls back to country headlines.
// Upstream response bodies are forwarded verbatim.
type Client struct {
	config *config.NewsConfig
	http   *http.Client
	logger *logging.Service
}

func NewClient(cfg *config.NewsConfig, logger *logging.Service) *Client {
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type Result struct {
	StatusCode int
	Body       []byte
}

func (c *Client) Fetch(ctx context.Context, query string, page, pageSize int) (*Result, error) {
	if page < 1 {
		page = 1
	}
	pageSize = c.clampPageSize(pageSize)

	endpoint := c.config.BaseURL + "/top-headlines"
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	if query != "" {
		endpoint = c.config.BaseURL + "/everything"
		params.Set("q", query)
		params.Set("language", "en")
		params.Set("sortBy", "publishedAt")
	} else {
		params.Set("country", c.config.Country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("news fetch failed", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("news fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read news response: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func (c *Client) clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return c.config.DefaultPageSize
	}
	if pageSize > c.config.MaxPageSize {
		return c.config.MaxPageSize
	}
	return pageSize
}
