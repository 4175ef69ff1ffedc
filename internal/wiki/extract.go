package wiki

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	wikiPathToken   = "dokuwiki"
	regionDelimiter = "wikipage"
)

var (
	// /dokuwiki в начале абсолютного пути: перед ним не может стоять символ хоста или пути.
	absolutePathRegex = regexp.MustCompile(`(^|[^A-Za-z0-9._~%\]:/-])/` + wikiPathToken)
	timestampRegex    = regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}`)
)

// WikiBaseURL возвращает часть адреса до первого вхождения "dokuwiki".
// Пустая строка, если адрес не указывает на DokuWiki.
func WikiBaseURL(assignmentURL string) string {
	idx := strings.Index(assignmentURL, wikiPathToken)
	if idx < 0 {
		return ""
	}
	return assignmentURL[:idx]
}

// NamespaceSegment возвращает последний сегмент пути адреса (имя пространства имен).
func NamespaceSegment(assignmentURL string) string {
	trimmed := strings.TrimRight(assignmentURL, "/")
	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

// RewriteLinks превращает пути вида /dokuwiki/... в полные адреса на base.
func RewriteLinks(body, base string) string {
	if base == "" {
		return body
	}
	return absolutePathRegex.ReplaceAllStringFunc(body, func(match string) string {
		prefix := match[:len(match)-len("/"+wikiPathToken)]
		return prefix + base + wikiPathToken
	})
}

// ExtractLinks возвращает значения всех атрибутов href в порядке появления.
func ExtractLinks(body string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []string
	doc.Find("[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links, nil
}

// NamespacePages отбирает ссылки пространства имен ("<namespace>:") и ставит сам адрес первым.
// Повторы не убираются.
func NamespacePages(namespaceURL string, links []string) []string {
	pages := []string{namespaceURL}
	prefix := namespaceURL + ":"
	for _, link := range links {
		if strings.Contains(link, prefix) {
			pages = append(pages, link)
		}
	}
	return pages
}

// RevisionRegion вырезает тело страницы между первым и вторым маркером "wikipage"
// (<!-- wikipage start --> ... <!-- wikipage stop -->).
func RevisionRegion(body string) (string, bool) {
	parts := strings.SplitN(body, regionDelimiter, 3)
	if len(parts) < 3 {
		return "", false
	}
	region := strings.TrimSpace(parts[1])
	region = strings.TrimPrefix(region, "start -->")
	region = strings.TrimSuffix(region, "<!--")
	return region, true
}

// ExtractRevisions возвращает текст каждого внешнего <li> и все даты YYYY/MM/DD HH:MM из фрагмента.
// Вложенные <li> входят в текст родителя. Оба списка упорядочены по появлению и извлекаются независимо.
func ExtractRevisions(region string) (items, timestamps []string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(region))
	if err != nil {
		return nil, nil, fmt.Errorf("parse revisions: %w", err)
	}

	doc.Find("li").Not("li li").Each(func(_ int, s *goquery.Selection) {
		items = append(items, collapseSpace(s.Text()))
	})
	timestamps = timestampRegex.FindAllString(doc.Text(), -1)
	return items, timestamps, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// withQuery добавляет параметр к адресу, учитывая уже существующую строку запроса.
func withQuery(rawURL, param string) string {
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + param
	}
	return rawURL + "?" + param
}
