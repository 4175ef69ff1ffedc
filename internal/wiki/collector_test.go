package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"peer-review-service/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNamespace = "http://wiki.test/dokuwiki/ns"

type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	called []string
}

func (f *fakeFetcher) FetchPage(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.called = append(f.called, url)
	f.mu.Unlock()

	if err, ok := f.errs[url]; ok {
		return "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("unexpected status 404 from %s", url)
	}
	return body, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.called)
}

type revision struct {
	date string
	user string
	note string
}

func indexPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="index__tree"><ul>`)
	for _, href := range hrefs {
		fmt.Fprintf(&b, `<li><a href="%s" class="wikilink1">%s</a></li>`, href, href)
	}
	b.WriteString(`</ul></div></body></html>`)
	return b.String()
}

func revisionsPage(page string, revs ...revision) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="page"><ul class="menu"><li><a href="/dokuwiki/start">Home</a></li></ul>`)
	b.WriteString("\n<!-- wikipage start -->\n<form id=\"page__revisions\"><div class=\"no\"><ul>\n")
	for _, r := range revs {
		fmt.Fprintf(&b, `<li><div class="li"><span class="date">%s</span> <a class="wikilink1" href="/dokuwiki/%s">%s</a> <span class="user">%s</span> <span class="sum">%s</span></div></li>`+"\n",
			r.date, page, page, r.user, r.note)
	}
	b.WriteString("</ul></div></form>\n<!-- wikipage stop -->\n</div></body></html>")
	return b.String()
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// namespaceFixture: ns:a, ns:b и постороннее other:c; на каждой странице по две правки.
func namespaceFixture() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]string{
			testNamespace + "?idx=ns": indexPage("/dokuwiki/ns:a", "/dokuwiki/ns:b", "/dokuwiki/other:c", "/dokuwiki/start"),
			testNamespace + "?do=revisions": revisionsPage("ns",
				revision{"2024/01/05 10:00", "carol", "outline"},
				revision{"2024/02/05 10:00", "dave", "intro"},
			),
			testNamespace + ":a?do=revisions": revisionsPage("ns:a",
				revision{"2024/01/10 09:00", "alice", "draft"},
				revision{"2024/02/10 09:00", "alice", "final"},
			),
			testNamespace + ":b?do=revisions": revisionsPage("ns:b",
				revision{"2024/01/15 08:00", "bob", "images"},
				revision{"2024/02/15 08:00", "erin", "links"},
			),
		},
	}
}

func newTestCollector(f PageFetcher, opts Options) *Collector {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return NewCollector(f, opts, newTestLogger())
}

func TestCollector_Review_AllPages(t *testing.T) {
	fetcher := namespaceFixture()
	c := newTestCollector(fetcher, Options{MaxConcurrency: 4})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024/01/05 10:00 ns carol outline",
		"2024/02/05 10:00 ns dave intro",
		"2024/01/10 09:00 ns:a alice draft",
		"2024/02/10 09:00 ns:a alice final",
		"2024/01/15 08:00 ns:b bob images",
		"2024/02/15 08:00 ns:b erin links",
	}, review.Items)
	assert.Len(t, review.Pages, 3)
	assert.Equal(t, 0, review.DegradedPages)
	assert.NotContains(t, fetcher.called, "http://wiki.test/dokuwiki/other:c?do=revisions")
}

func TestCollector_Review_UserFilter(t *testing.T) {
	c := newTestCollector(namespaceFixture(), Options{MaxConcurrency: 2})

	review, err := c.Review(context.Background(), domain.ReviewQuery{
		AssignmentURL: testNamespace,
		WikiUser:      "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024/01/10 09:00 ns:a alice draft",
		"2024/02/10 09:00 ns:a alice final",
	}, review.Items)
	for _, item := range review.Items {
		assert.Contains(t, item, "alice")
	}
}

func TestCollector_Review_StartDateFilter(t *testing.T) {
	c := newTestCollector(namespaceFixture(), Options{MaxConcurrency: 1})

	review, err := c.Review(context.Background(), domain.ReviewQuery{
		AssignmentURL: testNamespace,
		StartDate:     "2024-02-01",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024/02/05 10:00 ns dave intro",
		"2024/02/10 09:00 ns:a alice final",
		"2024/02/15 08:00 ns:b erin links",
	}, review.Items)
}

func TestCollector_Review_UserAndStartDate(t *testing.T) {
	c := newTestCollector(namespaceFixture(), Options{MaxConcurrency: 3})

	review, err := c.Review(context.Background(), domain.ReviewQuery{
		AssignmentURL: testNamespace,
		StartDate:     "2024/02/01 00:00",
		WikiUser:      "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024/02/10 09:00 ns:a alice final"}, review.Items)
}

func TestCollector_Review_InvalidURL(t *testing.T) {
	for _, url := range []string{"", "wiki.test/dokuwiki/ns", "https://wiki.test/dokuwiki/ns", "ftp://wiki.test/ns"} {
		fetcher := namespaceFixture()
		c := newTestCollector(fetcher, Options{})

		review, err := c.Review(context.Background(), domain.ReviewQuery{
			AssignmentURL: url,
			StartDate:     "not a date",
			WikiUser:      "alice",
		})

		require.NoError(t, err, url)
		assert.Empty(t, review.Items, url)
		assert.Equal(t, 0, fetcher.calls(), url)
	}
}

func TestCollector_Review_InvalidStartDate(t *testing.T) {
	fetcher := namespaceFixture()
	c := newTestCollector(fetcher, Options{})

	_, err := c.Review(context.Background(), domain.ReviewQuery{
		AssignmentURL: testNamespace,
		StartDate:     "whenever",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStartDate)
	assert.Equal(t, 0, fetcher.calls())
}

func TestCollector_Review_NoNamespaceLinks(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.pages[testNamespace+"?idx=ns"] = indexPage("/dokuwiki/other:c", "/dokuwiki/start")
	c := newTestCollector(fetcher, Options{MaxConcurrency: 4})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024/01/05 10:00 ns carol outline",
		"2024/02/05 10:00 ns dave intro",
	}, review.Items)
}

func TestCollector_Review_DuplicateLinksAreReviewedTwice(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.pages[testNamespace+"?idx=ns"] = indexPage("/dokuwiki/ns:a", "/dokuwiki/ns:a")
	c := newTestCollector(fetcher, Options{MaxConcurrency: 1})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace, WikiUser: "alice"})

	require.NoError(t, err)
	assert.Len(t, review.Items, 4)
}

func TestCollector_Review_MissingDelimiter(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.pages[testNamespace+":b?do=revisions"] = `<html><body><ul><li>2024/03/01 10:00 stray</li></ul></body></html>`
	c := newTestCollector(fetcher, Options{MaxConcurrency: 2})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace})

	require.NoError(t, err)
	assert.Len(t, review.Items, 4)
	assert.Equal(t, 1, review.DegradedPages)
	assert.Equal(t, domain.DegradedMissingDelimiter, review.Pages[2].Degraded)
	assert.NotContains(t, review.Items, "2024/03/01 10:00 stray")
}

func TestCollector_Review_Misaligned(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.pages[testNamespace+":a?do=revisions"] = `<!-- wikipage start --><ul>
<li>2024/01/10 09:00 alice draft</li>
<li>alice untimed note</li>
</ul><!-- wikipage stop -->`
	c := newTestCollector(fetcher, Options{MaxConcurrency: 2})

	review, err := c.Review(context.Background(), domain.ReviewQuery{
		AssignmentURL: testNamespace,
		StartDate:     "2024-02-01",
		WikiUser:      "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"alice untimed note"}, review.Items)
	assert.Equal(t, 1, review.DegradedPages)
	assert.Equal(t, domain.PageReport{
		URL:        testNamespace + ":a",
		LineItems:  2,
		Timestamps: 1,
		Kept:       1,
		Degraded:   domain.DegradedMisaligned,
	}, review.Pages[1])
}

func TestCollector_Review_IndexFetchFailure(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.errs = map[string]error{testNamespace + "?idx=ns": errors.New("connection refused")}
	c := newTestCollector(fetcher, Options{ContinueOnPageError: true})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace})

	assert.ErrorIs(t, err, domain.ErrWikiFetchFailed)
	assert.Nil(t, review)
}

func TestCollector_Review_PageFetchFailureAborts(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.errs = map[string]error{testNamespace + ":b?do=revisions": errors.New("connection reset")}
	c := newTestCollector(fetcher, Options{MaxConcurrency: 1})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace})

	assert.ErrorIs(t, err, domain.ErrWikiFetchFailed)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, review)
}

func TestCollector_Review_PageFetchFailureIsolated(t *testing.T) {
	fetcher := namespaceFixture()
	fetcher.errs = map[string]error{testNamespace + ":b?do=revisions": errors.New("connection reset")}
	c := newTestCollector(fetcher, Options{MaxConcurrency: 2, ContinueOnPageError: true})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: testNamespace})

	require.NoError(t, err)
	assert.Len(t, review.Items, 4)
	assert.Equal(t, 1, review.DegradedPages)
	assert.Equal(t, domain.DegradedFetchFailed, review.Pages[2].Degraded)
	assert.Contains(t, review.Pages[2].Error, "connection reset")
}

func TestCollector_Review_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestCollector(namespaceFixture(), Options{MaxConcurrency: 2, ContinueOnPageError: true})

	_, err := c.Review(ctx, domain.ReviewQuery{AssignmentURL: testNamespace})

	assert.ErrorIs(t, err, context.Canceled)
}

// Сквозной тест: resty-клиент против httptest-сервера, изображающего DokuWiki.
func TestCollector_Review_HTTPServer(t *testing.T) {
	var mu sync.Mutex
	headers := map[string]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers["User-Agent"] = r.Header.Get("User-Agent")
		headers["From"] = r.Header.Get("From")
		headers["Referer"] = r.Header.Get("Referer")
		mu.Unlock()

		q := r.URL.Query()
		switch {
		case r.URL.Path == "/dokuwiki/ns" && q.Get("idx") == "ns":
			fmt.Fprint(w, indexPage("/dokuwiki/ns:a", "/dokuwiki/other:c"))
		case r.URL.Path == "/dokuwiki/ns" && q.Get("do") == "revisions":
			fmt.Fprint(w, revisionsPage("ns", revision{"2024/01/05 10:00", "carol", "outline"}))
		case r.URL.Path == "/dokuwiki/ns:a" && q.Get("do") == "revisions":
			fmt.Fprint(w, revisionsPage("ns:a", revision{"2024/01/10 09:00", "alice", "draft"}))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		UserAgent:    "collector-test",
		ContactEmail: "staff@course.edu",
		Referer:      "http://course.edu/",
		Timeout:      5 * time.Second,
	})
	c := newTestCollector(client, Options{MaxConcurrency: 2})

	review, err := c.Review(context.Background(), domain.ReviewQuery{AssignmentURL: srv.URL + "/dokuwiki/ns"})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024/01/05 10:00 ns carol outline",
		"2024/01/10 09:00 ns:a alice draft",
	}, review.Items)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "collector-test", headers["User-Agent"])
	assert.Equal(t, "staff@course.edu", headers["From"])
	assert.Equal(t, "http://course.edu/", headers["Referer"])
}

func TestClient_FetchPage_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{Timeout: time.Second})

	_, err := client.FetchPage(context.Background(), srv.URL+"/dokuwiki/ns")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}
