package wiki

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// PageFetcher загружает HTML страницы по адресу.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// ClientConfig заголовки и таймауты исходящих запросов к вики.
type ClientConfig struct {
	UserAgent    string
	ContactEmail string
	Referer      string
	Timeout      time.Duration
	RetryCount   int
}

// Client реализует PageFetcher поверх resty.
type Client struct {
	http *resty.Client
}

// NewClient создает клиент с фиксированными заголовками User-Agent, From и Referer.
func NewClient(cfg ClientConfig) *Client {
	client := resty.New()
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("From", cfg.ContactEmail)
	client.SetHeader("Referer", cfg.Referer)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	client.SetRetryCount(cfg.RetryCount)

	return &Client{http: client}
}

// FetchPage выполняет GET и возвращает тело ответа. Статус 4xx/5xx считается ошибкой.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("http get %s: %w", url, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("unexpected status %d from %s", res.StatusCode(), url)
	}
	return string(res.Body()), nil
}
