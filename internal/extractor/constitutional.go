package extractor

import (
	"regexp"
	"strings"
)

var (
	billRe    = regexp.MustCompile(`(?:H\.(?:R\.|J\. ?Res\.|Con\. ?Res\.|Res\.)|S\.) \d+`)
	articleRe = regexp.MustCompile(`(?i:Article) ([IVX]+\b|[0-9]+)`)
	sectionRe = regexp.MustCompile(`(?i:Section) (\d+)`)
	clauseRe  = regexp.MustCompile(`(?i)Clause (\d+(?:\s+and\s+(?:Clause\s+)?\d+)?)`)
)

// Authority holds the citation found in a constitutional authority statement.
// Empty fields were not found.
type Authority struct {
	BillNumber string
	Article    string
	Section    string
	Clause     string
}

// ConstitutionalAuthority pulls the bill designation and the
// article/section/clause citation out of a statement. Each field is an
// independent first match.
func ConstitutionalAuthority(text string) Authority {
	var a Authority
	if m := billRe.FindString(text); m != "" {
		a.BillNumber = strings.TrimSpace(m)
	}
	if m := articleRe.FindStringSubmatch(text); m != nil {
		a.Article = m[1]
	}
	if m := sectionRe.FindStringSubmatch(text); m != nil {
		a.Section = m[1]
	}
	if m := clauseRe.FindStringSubmatch(text); m != nil {
		// "1 and Clause 18" -> "1 and 18"
		a.Clause = strings.ReplaceAll(m[1], "Clause ", "")
	}
	return a
}
