package wiki

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"peer-review-service/internal/domain"
)

// TimestampLayout формат дат в истории правок DokuWiki.
const TimestampLayout = "2006/01/02 15:04"

// startDateLayouts перебираются по порядку; первый подошедший формат выигрывает.
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	TimestampLayout,
	"2006/01/02 15:04:05",
	"2006/1/2",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseStartDate разбирает дату начала ревью; даты без зоны трактуются в loc.
func ParseStartDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range startDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidStartDate, value)
}

// Pair сопоставляет строки и даты по индексу. Строкам без пары достается пустая дата,
// лишние даты отбрасываются.
func Pair(items, timestamps []string) []domain.RevisionEntry {
	entries := make([]domain.RevisionEntry, len(items))
	for i, item := range items {
		entries[i].Content = item
		if i < len(timestamps) {
			entries[i].Timestamp = timestamps[i]
		}
	}
	return entries
}

// FilterByUser оставляет строки, в которых встречается имя пользователя.
func FilterByUser(entries []domain.RevisionEntry, user string) []domain.RevisionEntry {
	return slices.DeleteFunc(entries, func(e domain.RevisionEntry) bool {
		return !strings.Contains(e.Content, user)
	})
}

// FilterSince убирает строки с датой раньше since.
// Строки без даты или с неразбираемой датой остаются.
func FilterSince(entries []domain.RevisionEntry, since time.Time, loc *time.Location) []domain.RevisionEntry {
	return slices.DeleteFunc(entries, func(e domain.RevisionEntry) bool {
		if e.Timestamp == "" {
			return false
		}
		t, err := time.ParseInLocation(TimestampLayout, e.Timestamp, loc)
		if err != nil {
			return false
		}
		return t.Before(since)
	})
}

// Contents возвращает текст строк в исходном порядке.
func Contents(entries []domain.RevisionEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Content
	}
	return out
}
