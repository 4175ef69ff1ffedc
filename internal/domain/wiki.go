package domain

import "context"

// Причины, по которым страница ревизий разобрана не полностью.
const (
	DegradedMissingDelimiter = "missing_delimiter"
	DegradedMisaligned       = "misaligned"
	DegradedFetchFailed      = "fetch_failed"
)

// ReviewQuery параметры сбора правок из пространства имен DokuWiki.
type ReviewQuery struct {
	AssignmentURL string
	StartDate     string
	WikiUser      string
}

// RevisionEntry одна строка истории правок и ее дата в формате YYYY/MM/DD HH:MM.
// Дата пустая, если строке не нашлось пары.
type RevisionEntry struct {
	Content   string
	Timestamp string
}

// PageReport диагностика по одной странице пространства имен.
type PageReport struct {
	URL        string `json:"url"`
	LineItems  int    `json:"line_items"`
	Timestamps int    `json:"timestamps"`
	Kept       int    `json:"kept"`
	Degraded   string `json:"degraded,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Review результат сбора: строки правок в порядке обнаружения страниц.
type Review struct {
	Items         []string     `json:"items"`
	Pages         []PageReport `json:"pages"`
	DegradedPages int          `json:"degraded_pages"`
}

// WikiReviewer собирает правки из вики.
type WikiReviewer interface {
	Review(ctx context.Context, query ReviewQuery) (*Review, error)
}
