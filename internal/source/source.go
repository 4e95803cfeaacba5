// Package source produces the line streams the segmenter consumes.
package source

import (
	"bufio"
	"io"
	"strings"
)

// Lines is a lazy, finite, forward-only sequence of text lines for one
// document.
type Lines interface {
	// Next returns the next line; ok is false once the source is exhausted.
	Next() (line string, ok bool)
}

type sliceLines struct {
	lines []string
	pos   int
}

// FromSlice serves lines from memory.
func FromSlice(lines []string) Lines {
	return &sliceLines{lines: lines}
}

func (s *sliceLines) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	l := s.lines[s.pos]
	s.pos++
	return l, true
}

// FromString splits text on newlines. CRLF endings are normalised.
func FromString(text string) Lines {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return FromSlice(strings.Split(text, "\n"))
}

// ScannerLines reads lines lazily from an io.Reader.
type ScannerLines struct {
	sc  *bufio.Scanner
	err error
}

const maxLineBytes = 1 << 20

// FromReader reads lines from r as they are requested.
func FromReader(r io.Reader) *ScannerLines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &ScannerLines{sc: sc}
}

func (s *ScannerLines) Next() (string, bool) {
	if s.err != nil {
		return "", false
	}
	if !s.sc.Scan() {
		s.err = s.sc.Err()
		return "", false
	}
	return strings.TrimSuffix(s.sc.Text(), "\r"), true
}

// Err reports a read error that ended the stream early, if any.
func (s *ScannerLines) Err() error {
	return s.err
}
