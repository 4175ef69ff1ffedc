// Package wiki собирает историю правок из пространства имен DokuWiki.
package wiki

import (
	"context"
	"fmt"
	"strings"
	"time"

	"peer-review-service/internal/config"
	"peer-review-service/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	indexParam     = "idx="
	revisionsParam = "do=revisions"
)

// Options управляет параллелизмом и обработкой ошибок сборщика.
type Options struct {
	// MaxConcurrency ограничивает число одновременных загрузок страниц; 1 означает последовательно.
	MaxConcurrency int
	// ContinueOnPageError не прерывает сбор при ошибке загрузки отдельной страницы.
	ContinueOnPageError bool
	// Location часовой пояс для дат без зоны.
	Location *time.Location
}

// Collector реализует domain.WikiReviewer.
type Collector struct {
	fetcher PageFetcher
	opts    Options
	logger  *logrus.Logger
}

// NewCollector создает сборщик правок.
func NewCollector(fetcher PageFetcher, opts Options, logger *logrus.Logger) *Collector {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Collector{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

// NewFromConfig собирает клиент и сборщик из конфигурации приложения.
func NewFromConfig(cfg config.WikiConfig, logger *logrus.Logger) *Collector {
	client := NewClient(ClientConfig{
		UserAgent:    cfg.UserAgent,
		ContactEmail: cfg.ContactEmail,
		Referer:      cfg.Referer,
		Timeout:      cfg.Timeout,
		RetryCount:   cfg.RetryCount,
	})
	return NewCollector(client, Options{
		MaxConcurrency:      cfg.MaxConcurrency,
		ContinueOnPageError: cfg.ContinueOnPageError,
		Location:            cfg.Location(),
	}, logger)
}

type pageResult struct {
	items  []string
	report domain.PageReport
}

// Review загружает индекс пространства имен, затем историю правок каждой его страницы,
// фильтрует строки по пользователю и дате и возвращает их в порядке обнаружения страниц.
// Адрес без "http:" дает пустой результат без обращения к сети.
func (c *Collector) Review(ctx context.Context, query domain.ReviewQuery) (*domain.Review, error) {
	review := &domain.Review{Items: []string{}, Pages: []domain.PageReport{}}

	if !strings.Contains(query.AssignmentURL, "http:") {
		return review, nil
	}

	var since *time.Time
	if query.StartDate != "" {
		t, err := ParseStartDate(query.StartDate, c.opts.Location)
		if err != nil {
			return nil, err
		}
		since = &t
	}

	log := c.logger.WithField("namespace_url", query.AssignmentURL)
	base := WikiBaseURL(query.AssignmentURL)

	indexURL := withQuery(query.AssignmentURL, indexParam+NamespaceSegment(query.AssignmentURL))
	body, err := c.fetcher.FetchPage(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("%w: namespace index: %w", domain.ErrWikiFetchFailed, err)
	}

	links, err := ExtractLinks(RewriteLinks(body, base))
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace index: %w", err)
	}
	pages := NamespacePages(query.AssignmentURL, links)
	log.WithField("pages", len(pages)).Debug("Namespace pages discovered")

	results := make([]pageResult, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.MaxConcurrency)

	for i, page := range pages {
		g.Go(func() error {
			res, err := c.reviewPage(gctx, page, base, query.WikiUser, since)
			if err == nil {
				results[i] = res
				return nil
			}
			if !c.opts.ContinueOnPageError {
				return err
			}
			log.WithError(err).WithField("page_url", page).Warn("Skipping page after fetch failure")
			results[i] = pageResult{report: domain.PageReport{
				URL:      page,
				Degraded: domain.DegradedFetchFailed,
				Error:    err.Error(),
			}}
			return nil
		})
	}

	waitErr := g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWikiFetchFailed, waitErr)
	}

	for _, res := range results {
		review.Items = append(review.Items, res.items...)
		review.Pages = append(review.Pages, res.report)
		if res.report.Degraded != "" {
			review.DegradedPages++
		}
	}

	if review.DegradedPages > 0 {
		log.WithField("degraded_pages", review.DegradedPages).Warn("Some revision pages were not fully parsed")
	}
	return review, nil
}

func (c *Collector) reviewPage(ctx context.Context, page, base, user string, since *time.Time) (pageResult, error) {
	report := domain.PageReport{URL: page}

	body, err := c.fetcher.FetchPage(ctx, withQuery(page, revisionsParam))
	if err != nil {
		return pageResult{}, fmt.Errorf("revisions of %s: %w", page, err)
	}

	region, ok := RevisionRegion(RewriteLinks(body, base))
	if !ok {
		report.Degraded = domain.DegradedMissingDelimiter
		c.logger.WithField("page_url", page).Warn("Revision region delimiter not found")
		return pageResult{items: []string{}, report: report}, nil
	}

	items, timestamps, err := ExtractRevisions(region)
	if err != nil {
		return pageResult{}, err
	}
	report.LineItems = len(items)
	report.Timestamps = len(timestamps)
	if len(items) != len(timestamps) {
		report.Degraded = domain.DegradedMisaligned
		c.logger.WithFields(logrus.Fields{
			"page_url":   page,
			"line_items": len(items),
			"timestamps": len(timestamps),
		}).Warn("Line items and timestamps are misaligned")
	}

	entries := Pair(items, timestamps)
	if user != "" {
		entries = FilterByUser(entries, user)
	}
	if since != nil {
		entries = FilterSince(entries, *since, c.opts.Location)
	}

	report.Kept = len(entries)
	return pageResult{items: Contents(entries), report: report}, nil
}
