package extractor

import (
	"regexp"
	"strings"
)

// prayerWindow is how much of the body (in characters) is searched for the
// introduction.
const prayerWindow = 500

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	prayerIntroRe = regexp.MustCompile(`(?i)The (.+?), offered the following prayer:`)
)

// Prayer reads the prayer leader's name and title from the introduction,
// e.g. "The Chaplain, Dr. Barry C. Black, offered the following prayer:".
//
// Senate introductions lead with the title ("Chaplain, <name>"); House guest
// chaplains lead with the name followed by title and affiliation.
func Prayer(text string) (name, title string) {
	window := text
	if r := []rune(text); len(r) > prayerWindow {
		window = string(r[:prayerWindow])
	}
	normalized := whitespaceRe.ReplaceAllString(strings.ReplaceAll(window, "\n", " "), " ")

	m := prayerIntroRe.FindStringSubmatch(normalized)
	if m == nil {
		return "", ""
	}
	intro := strings.TrimSpace(m[1])

	if strings.HasPrefix(intro, "Chaplain") {
		parts := strings.SplitN(intro, ",", 2)
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
		}
		return "", intro
	}

	parts := strings.Split(intro, ",")
	if len(parts) == 1 {
		return intro, ""
	}
	rest := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		rest = append(rest, strings.TrimSpace(p))
	}
	return strings.TrimSpace(parts[0]), strings.Join(rest, ", ")
}
