// Package processor turns a line cursor into classified, segmented items.
package processor

import (
	"strings"

	"crec-parser-go/internal/extractor"
	"crec-parser-go/internal/logger"
	"crec-parser-go/internal/patterns"
	"crec-parser-go/internal/speakers"
	"crec-parser-go/internal/types"
)

// Classification is the outcome of matching one line against the item table.
type Classification struct {
	Kind    string
	Speaker string
	// Captured is true when Speaker came from the line rather than a literal.
	Captured bool
	Matched  bool
}

// Classify finds the item kind for line. Kinds are tried in table order and
// each kind's patterns in list order; the first match wins outright. A line
// nothing matches is a speech by an unknown speaker.
func Classify(line string, tbl *patterns.Table) Classification {
	for _, rule := range tbl.Rules() {
		m, ok := rule.Match(line)
		if !ok {
			continue
		}
		c := Classification{Kind: rule.Kind, Matched: true}
		if rule.CaptureSpeaker {
			if who, ok := rule.CapturedSpeaker(m); ok {
				c.Speaker = who
				c.Captured = true
			} else {
				c.Speaker = types.UnknownSpeaker
			}
		} else {
			c.Speaker = rule.Speaker
		}
		return c
	}
	return Classification{Kind: types.KindSpeech, Speaker: types.UnknownSpeaker}
}

// Builder produces items from a cursor using fixed tables and directory.
type Builder struct {
	tbl *patterns.Table
	dir speakers.Directory
	log *logger.Logger
}

// NewBuilder binds the tables and directory for one or more documents.
// A nil directory resolves nobody.
func NewBuilder(tbl *patterns.Table, dir speakers.Directory, log *logger.Logger) *Builder {
	if dir == nil {
		dir = speakers.Empty
	}
	if log == nil {
		log = logger.New().WithComponent("processor")
	}
	return &Builder{tbl: tbl, dir: dir, log: log}
}

// Next builds the item starting at the cursor's current line and leaves the
// cursor on the line that ended it. ok is false when the cursor was already
// exhausted.
func (b *Builder) Next(cur *Cursor) (types.Item, bool) {
	first, ok := cur.Line()
	if !ok {
		b.log.Info("reached end of document")
		return types.Item{}, false
	}

	it := types.NewItem()
	it.Span.Start = cur.Pos()

	c := Classify(first, b.tbl)
	it.Kind = c.Kind
	it.Speaker = c.Speaker
	if c.Captured {
		if leg, found := b.dir.Lookup(c.Speaker); found {
			id := leg.BioguideID
			it.SpeakerBioguide = &id
		}
	}

	content := []string{first}
	cur.Advance()
	for {
		line, ok := cur.Line()
		if !ok || b.tbl.IsBreak(line) {
			break
		}
		if !b.tbl.IsSkip(line) {
			content = append(content, line)
		}
		cur.Advance()
	}
	it.Span.End = cur.Pos()
	it.Text = strings.Join(content, "\n")

	extractor.Apply(&it)
	return it, true
}

// BuildItem is the one-shot form of Builder.Next.
func BuildItem(cur *Cursor, tbl *patterns.Table, dir speakers.Directory) (types.Item, bool) {
	return NewBuilder(tbl, dir, nil).Next(cur)
}
