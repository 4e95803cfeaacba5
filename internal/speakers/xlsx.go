package speakers

import (
	"errors"
	"fmt"
	"strings"

	"crec-parser-go/internal/logger"
	"github.com/xuri/excelize/v2"
)

var ErrNoBioguideColumn = errors.New("no bioguide column in header")

type columns struct {
	label, bioguide, name, state, party, chamber int
}

// detectColumns finds columns by header keywords
func detectColumns(header []string) columns {
	c := columns{label: -1, bioguide: -1, name: -1, state: -1, party: -1, chamber: -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "bioguide"):
			if c.bioguide == -1 {
				c.bioguide = i
			}
		case strings.Contains(l, "label") || strings.Contains(l, "speaker") || strings.Contains(l, "display"):
			if c.label == -1 {
				c.label = i
			}
		case strings.Contains(l, "name"):
			if c.name == -1 {
				c.name = i
			}
		case strings.Contains(l, "state"):
			c.state = i
		case strings.Contains(l, "party"):
			c.party = i
		case strings.Contains(l, "chamber") || strings.Contains(l, "house") || strings.Contains(l, "senate"):
			c.chamber = i
		}
	}
	// fallback: first column holds the label
	if c.label == -1 {
		if c.name >= 0 {
			c.label = c.name
		} else {
			c.label = 0
		}
	}
	return c
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

// LoadXLSX reads a speaker directory from the first sheet of a workbook.
// Rows without a label or bioguide id are skipped.
func LoadXLSX(path string) (Map, error) {
	log := logger.New().WithField("component", "speakers.xlsx").WithField("path", path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		log.WithError(err).Error("open failed")
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}
	cols := detectColumns(rows[0])
	if cols.bioguide == -1 {
		return nil, ErrNoBioguideColumn
	}
	log.WithFields(map[string]interface{}{
		"labelIdx":    cols.label,
		"bioguideIdx": cols.bioguide,
		"stateIdx":    cols.state,
	}).Debug("detected directory column indices")

	out := Map{}
	skipped := 0
	for _, r := range rows[1:] {
		label := cell(r, cols.label)
		id := cell(r, cols.bioguide)
		if label == "" || id == "" {
			skipped++
			continue
		}
		out[label] = Legislator{
			BioguideID: id,
			Name:       cell(r, cols.name),
			State:      cell(r, cols.state),
			Party:      cell(r, cols.party),
			Chamber:    cell(r, cols.chamber),
		}
	}
	log.WithField("speakers", len(out)).WithField("skipped", skipped).Info("speaker directory loaded")
	return out, nil
}
