// Package extractor mines kind-specific fields out of assembled item bodies.
// Every extractor is a pure function of the body text; a field that isn't
// found is left unset.
package extractor

import (
	"strings"

	"crec-parser-go/internal/types"
)

// Apply runs the extractor for it.Kind and fills in the fields it finds.
// Kinds without an extractor are left untouched.
func Apply(it *types.Item) {
	switch it.Kind {
	case types.KindConstitutionalAuthority:
		a := ConstitutionalAuthority(it.Text)
		it.BillNumber = a.BillNumber
		it.ConstitutionalAuthorityArticle = a.Article
		it.ConstitutionalAuthoritySection = a.Section
		it.ConstitutionalAuthorityClause = a.Clause

	case types.KindPrayer:
		it.PrayerName, it.PrayerTitle = Prayer(it.Text)

	case types.KindCommitteeElection:
		it.Committees = CommitteeElection(it.Text)
		if it.Speaker != "" && !strings.HasPrefix(it.Speaker, "The ") {
			it.Speaker = "The " + it.Speaker
		}

	case types.KindCommitteeResignation:
		r := CommitteeResignation(it.Text)
		it.Committee = r.Committee
		it.State = r.State
		if r.Member != "" {
			// the letter's signer, not the officer who laid it before the chamber
			it.Member = r.Member
			it.Speaker = r.Member
		}
	}
}
