// Package speakers resolves speaker display labels to legislator records.
package speakers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Legislator is the directory record for one speaker label.
type Legislator struct {
	BioguideID string `json:"bioguideid"`
	Name       string `json:"name,omitempty"`
	State      string `json:"state,omitempty"`
	Party      string `json:"party,omitempty"`
	Chamber    string `json:"chamber,omitempty"`
}

// Directory is an exact-match lookup from label to legislator. A missing
// label is a normal outcome, not an error.
type Directory interface {
	Lookup(label string) (Legislator, bool)
}

// Map is the in-memory Directory. It must not be written to while documents
// are being processed.
type Map map[string]Legislator

func (m Map) Lookup(label string) (Legislator, bool) {
	l, ok := m[label]
	if !ok || l.BioguideID == "" {
		return Legislator{}, false
	}
	return l, true
}

// Empty is a directory that knows nobody.
var Empty Directory = Map{}

// Merge copies the given maps into a new one. Later maps win on conflicts.
func Merge(maps ...Map) Map {
	out := Map{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// DecodeJSON reads {"Mr. SMITH of Texas": {"bioguideid": "S000583"}, ...}.
func DecodeJSON(r io.Reader) (Map, error) {
	m := Map{}
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode speaker directory: %w", err)
	}
	return m, nil
}

// LoadJSON reads a JSON speaker directory from disk.
func LoadJSON(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f)
}
