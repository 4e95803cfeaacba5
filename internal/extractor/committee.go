package extractor

import (
	"regexp"
	"strings"

	"crec-parser-go/internal/types"
)

var (
	committeeStartRe = regexp.MustCompile(`(?i)^\s*COMMITTEE ON`)
	committeeLineRe  = regexp.MustCompile(`(?i)^\s*COMMITTEE ON ([A-Z\s]+):`)
	memberRe         = regexp.MustCompile(`M(?:r|s|rs|iss)\.\s+[A-Z][-A-Z']*(?:\s+of\s+[A-Za-z\s]+)?`)

	resignCommitteeRe = regexp.MustCompile(`(?i)Committee on ([A-Za-z\s]+)`)
	resignMemberRe    = regexp.MustCompile(`([A-Z][a-z]+\s+(?:[A-Z]\.\s+)?[A-Z][a-z]+),?\s+U\.S\. Senator from\s+([A-Za-z]+(?: [A-Za-z]+)*)`)
)

// reflowCommittees joins roster lines wrapped across physical lines: a line
// starting with COMMITTEE ON opens a logical line, and following non-empty
// lines are appended to it until the next committee starts.
func reflowCommittees(text string) []string {
	var out []string
	current := ""
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case committeeStartRe.MatchString(line):
			if current != "" {
				out = append(out, current)
			}
			current = line
		case stripped != "" && current != "":
			current += " " + stripped
		case stripped != "":
			out = append(out, line)
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// CommitteeElection lists the committees and elected members named in an
// election resolution. Committees without members are left out.
func CommitteeElection(text string) []types.Committee {
	var committees []types.Committee
	for _, line := range reflowCommittees(text) {
		m := committeeLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		members := extractMembers(strings.SplitN(line, ":", 2)[1])
		if len(members) == 0 {
			continue
		}
		committees = append(committees, types.Committee{
			Name:    "COMMITTEE ON " + strings.TrimSpace(m[1]),
			Members: members,
		})
	}
	return committees
}

// extractMembers finds names like "Mr. RYAN of Wisconsin" or "Mrs. BLACKBURN".
func extractMembers(text string) []string {
	var members []string
	for _, m := range memberRe.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		m = strings.TrimSpace(trimOne(m, ",."))
		if m != "" {
			members = append(members, m)
		}
	}
	return members
}

// trimOne drops a single trailing character from cutset, if present.
func trimOne(s, cutset string) string {
	if s != "" && strings.ContainsRune(cutset, rune(s[len(s)-1])) {
		return s[:len(s)-1]
	}
	return s
}

// Resignation is what a committee resignation letter names.
type Resignation struct {
	Committee string
	Member    string
	State     string
}

// CommitteeResignation reads the committee and the signing senator from a
// resignation letter.
func CommitteeResignation(text string) Resignation {
	var r Resignation
	if m := resignCommitteeRe.FindStringSubmatch(text); m != nil {
		r.Committee = "Committee on " + strings.TrimRight(strings.TrimSpace(m[1]), ",.")
	}
	if m := resignMemberRe.FindStringSubmatch(text); m != nil {
		r.Member = strings.TrimSpace(m[1])
		r.State = strings.TrimRight(strings.TrimSpace(m[2]), ".")
	}
	return r
}
