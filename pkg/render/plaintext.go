package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText derives the text/plain alternative of a rendered email. Each
// text cell becomes a paragraph and links are written as "label (url)".
func PlainText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("head, style, script, title").Remove()
	// preview text is hidden in the body and must not reach the text part
	doc.Find("div[style*='display:none']").Remove()

	var paragraphs []string

	doc.Find("body").Find("a, div, p, h1, h2, h3, h4, h5, h6, td").Each(func(i int, s *goquery.Selection) {
		// only leaf text containers, nested wrappers are visited through their children
		if goquery.NodeName(s) != "a" && s.Find("div, p, h1, h2, h3, h4, h5, h6, td, a").Length() > 0 {
			return
		}
		if goquery.NodeName(s) != "a" && s.ParentsFiltered("a").Length() > 0 {
			return
		}

		text := collapseWhitespace(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "a" {
			if href, ok := s.Attr("href"); ok && href != "" && href != text {
				text = fmt.Sprintf("%s (%s)", text, href)
			}
		}
		paragraphs = append(paragraphs, text)
	})

	return strings.Join(paragraphs, "\n\n"), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
