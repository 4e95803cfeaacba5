package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the plain text of a GovInfo record page: the contents
// of every <pre> block in document order, or the body text when there is none.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var parts []string
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, strings.Trim(s.Text(), "\n"))
	})
	if len(parts) == 0 {
		return strings.Trim(doc.Find("body").Text(), "\n"), nil
	}
	return strings.Join(parts, "\n"), nil
}

// FromHTML converts an HTML record page into lines.
func FromHTML(r io.Reader) (Lines, error) {
	text, err := ExtractText(r)
	if err != nil {
		return nil, err
	}
	return FromString(text), nil
}
