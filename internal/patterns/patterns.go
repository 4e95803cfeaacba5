// Package patterns holds the compiled pattern tables that drive item
// classification and segmentation.
//
// A Table is immutable once built and is safe to share between goroutines
// processing different documents.
package patterns

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single pattern evaluation. Table patterns come
// from configuration and regexp2 backtracks, so a pathological pattern must
// not stall a document.
const DefaultMatchTimeout = 250 * time.Millisecond

var ErrNoKinds = errors.New("pattern table defines no item kinds")

// Rule is one kind's entry in the ordered item table.
type Rule struct {
	Kind     string
	patterns []*regexp2.Regexp

	// CaptureSpeaker selects captured attribution; SpeakerGroup names the
	// group (number or name) holding the speaker text.
	CaptureSpeaker bool
	SpeakerGroup   string

	// Speaker is the literal attribution used when CaptureSpeaker is false.
	Speaker string
}

// Match tries the rule's patterns in order against the start of line and
// returns the first match.
func (r Rule) Match(line string) (*regexp2.Match, bool) {
	for _, re := range r.patterns {
		m, err := re.FindStringMatch(line)
		if err != nil || m == nil {
			continue
		}
		return m, true
	}
	return nil, false
}

// CapturedSpeaker pulls the configured speaker group out of m. ok is false
// when the group doesn't exist or didn't take part in the match.
func (r Rule) CapturedSpeaker(m *regexp2.Match) (string, bool) {
	if m == nil {
		return "", false
	}
	var g *regexp2.Group
	if n, err := strconv.Atoi(r.SpeakerGroup); err == nil {
		g = m.GroupByNumber(n)
	} else {
		g = m.GroupByName(r.SpeakerGroup)
	}
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}

// PatternCount reports how many patterns the rule holds.
func (r Rule) PatternCount() int { return len(r.patterns) }

// Table is the compiled, ordered item table plus break and skip lists.
type Table struct {
	rules  []Rule
	breaks []*regexp2.Regexp
	skips  []*regexp2.Regexp
}

// Rules returns the item rules in precedence order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Kinds lists the table's kinds in precedence order.
func (t *Table) Kinds() []string {
	kinds := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		kinds = append(kinds, r.Kind)
	}
	return kinds
}

// IsBreak reports whether line ends the item being collected.
func (t *Table) IsBreak(line string) bool {
	return anyMatch(t.breaks, line)
}

// IsSkip reports whether line is noise to drop from item bodies.
func (t *Table) IsSkip(line string) bool {
	return anyMatch(t.skips, line)
}

func anyMatch(res []*regexp2.Regexp, line string) bool {
	for _, re := range res {
		// a timeout counts as no match
		if ok, err := re.MatchString(line); err == nil && ok {
			return true
		}
	}
	return false
}

// RuleSpec is the uncompiled form of a Rule.
type RuleSpec struct {
	Kind         string
	Patterns     []string
	SpeakerRE    bool
	SpeakerGroup string
	Speaker      string
}

// Spec is the uncompiled form of a Table.
type Spec struct {
	ItemTypes     []RuleSpec
	BreakPatterns []string
	SkipPatterns  []string
}

// Compile builds a Table. Every pattern is anchored at the start of the line.
func Compile(spec Spec) (*Table, error) {
	if len(spec.ItemTypes) == 0 {
		return nil, ErrNoKinds
	}
	t := &Table{}
	seen := map[string]bool{}
	for _, rs := range spec.ItemTypes {
		if rs.Kind == "" {
			return nil, fmt.Errorf("item type without kind")
		}
		if seen[rs.Kind] {
			return nil, fmt.Errorf("duplicate item kind %q", rs.Kind)
		}
		seen[rs.Kind] = true
		if rs.SpeakerRE && rs.SpeakerGroup == "" {
			return nil, fmt.Errorf("kind %q: speaker_re set without speaker_group", rs.Kind)
		}
		rule := Rule{
			Kind:           rs.Kind,
			CaptureSpeaker: rs.SpeakerRE,
			SpeakerGroup:   rs.SpeakerGroup,
			Speaker:        rs.Speaker,
		}
		for i, p := range rs.Patterns {
			re, err := compileAnchored(p)
			if err != nil {
				return nil, fmt.Errorf("kind %q pattern %d: %w", rs.Kind, i, err)
			}
			rule.patterns = append(rule.patterns, re)
		}
		t.rules = append(t.rules, rule)
	}
	var err error
	if t.breaks, err = compileList("break", spec.BreakPatterns); err != nil {
		return nil, err
	}
	if t.skips, err = compileList("skip", spec.SkipPatterns); err != nil {
		return nil, err
	}
	return t, nil
}

func compileList(name string, pats []string) ([]*regexp2.Regexp, error) {
	out := make([]*regexp2.Regexp, 0, len(pats))
	for i, p := range pats {
		re, err := compileAnchored(p)
		if err != nil {
			return nil, fmt.Errorf("%s pattern %d: %w", name, i, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// compileAnchored wraps p so it only matches at the beginning of the input.
// The wrapper group is non-capturing, so group numbers are unchanged.
func compileAnchored(p string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(`\A(?:`+p+`)`, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", p, err)
	}
	re.MatchTimeout = DefaultMatchTimeout
	return re, nil
}
