package types

// Item kinds known to the extractor dispatch. Pattern tables may define
// further kinds; those carry only the base fields.
const (
	KindSpeech                  = "speech"
	KindTitle                   = "title"
	KindAction                  = "action"
	KindPrayer                  = "prayer"
	KindConstitutionalAuthority = "constitutional_authority"
	KindCommitteeElection       = "committee_election"
	KindCommitteeResignation    = "committee_resignation"
)

// UnknownSpeaker is attributed to items no table pattern recognised.
const UnknownSpeaker = "Unknown"

// Item is one classified unit of a Congressional Record document.
type Item struct {
	Kind            string  `json:"kind"`
	Speaker         string  `json:"speaker"`
	SpeakerBioguide *string `json:"speaker_bioguide,omitempty"`
	Text            string  `json:"text"`
	Turn            int     `json:"turn"`

	// constitutional_authority
	BillNumber                     string `json:"bill_number,omitempty"`
	ConstitutionalAuthorityArticle string `json:"constitutional_authority_article,omitempty"`
	ConstitutionalAuthoritySection string `json:"constitutional_authority_section,omitempty"`
	ConstitutionalAuthorityClause  string `json:"constitutional_authority_clause,omitempty"`

	// prayer
	PrayerName  string `json:"prayer_name,omitempty"`
	PrayerTitle string `json:"prayer_title,omitempty"`

	// committee_election
	Committees []Committee `json:"committees,omitempty"`

	// committee_resignation
	Committee string `json:"committee,omitempty"`
	Member    string `json:"member,omitempty"`
	State     string `json:"state,omitempty"`

	Span LineSpan `json:"-"`
}

// Committee is one roster entry of a committee election.
type Committee struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// LineSpan is the half-open range of source lines an item consumed,
// including skipped lines.
type LineSpan struct {
	Start int
	End   int
}

// Len returns the number of source lines in the span.
func (s LineSpan) Len() int { return s.End - s.Start }

// NewItem returns an item with the defaults used before classification.
func NewItem() Item {
	return Item{Kind: KindSpeech, Speaker: UnknownSpeaker, Turn: -1}
}
