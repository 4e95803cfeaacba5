package extractor

import (
	"encoding/json"
	"testing"

	"crec-parser-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstitutionalAuthority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Authority
	}{
		{
			name: "full citation",
			text: "  By Mr. SMITH of Texas:\n  H.R. 3456.\n  Congress has the power to enact this legislation pursuant\nto the following:\n  Article I, Section 8, Clause 3 of the Constitution.",
			want: Authority{BillNumber: "H.R. 3456", Article: "I", Section: "8", Clause: "3"},
		},
		{
			name: "compound clause",
			text: "  By Ms. LEE:\n  S. 12.\n  Article I, Section 8, Clause 1 and Clause 18",
			want: Authority{BillNumber: "S. 12", Article: "I", Section: "8", Clause: "1 and 18"},
		},
		{
			name: "joint resolution without section",
			text: "  By Mr. JONES:\n  H.J. Res. 62.\n  Congress has the power to enact this legislation pursuant\nto the following:\n  Article V of the Constitution.",
			want: Authority{BillNumber: "H.J. Res. 62", Article: "V"},
		},
		{
			name: "arabic article, lower case keywords",
			text: "  By Mrs. DAVIS:\n  H.Con.Res. 7.\n  article 2, section 3",
			want: Authority{BillNumber: "H.Con.Res. 7", Article: "2", Section: "3"},
		},
		{
			name: "ordinal article",
			text: "  By Mr. KING:\n  H.R. 88.\n  Article 1st, Section 8",
			want: Authority{BillNumber: "H.R. 88", Article: "1", Section: "8"},
		},
		{
			name: "roman numeral must end the word",
			text: "  By Mr. KING:\n  Article Iowa was cited, then Article IV, Section 3",
			want: Authority{Article: "IV", Section: "3"},
		},
		{
			name: "nothing cited",
			text: "  By Mr. BROWN:\n  The bill is within the power of Congress.",
			want: Authority{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstitutionalAuthority(tt.text))
		})
	}
}

func TestApply_ConstitutionalAuthorityOmitsMissingFields(t *testing.T) {
	it := types.NewItem()
	it.Kind = types.KindConstitutionalAuthority
	it.Speaker = "Mr. JONES"
	it.Text = "  By Mr. JONES:\n  H.J. Res. 62.\n  Article V of the Constitution."
	Apply(&it)

	b, err := json.Marshal(it)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "H.J. Res. 62", got["bill_number"])
	assert.Equal(t, "V", got["constitutional_authority_article"])
	assert.NotContains(t, got, "constitutional_authority_section")
	assert.NotContains(t, got, "constitutional_authority_clause")
	assert.NotContains(t, got, "prayer_name")
	assert.NotContains(t, got, "committees")
}

func TestPrayer(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantName  string
		wantTitle string
	}{
		{
			name:      "senate chaplain",
			text:      "  The Chaplain, Dr. Barry C. Black, offered the following prayer:\n  Let us pray.",
			wantName:  "Dr. Barry C. Black",
			wantTitle: "Chaplain",
		},
		{
			name:      "guest chaplain wrapped across lines",
			text:      "  The Reverend John Smith, Pastor, First Baptist Church,\nAustin, Texas, offered the following prayer:\n  Almighty God,",
			wantName:  "Reverend John Smith",
			wantTitle: "Pastor, First Baptist Church, Austin, Texas",
		},
		{
			name:     "name only",
			text:     "  The Reverend Jones, offered the following prayer:",
			wantName: "Reverend Jones",
		},
		{
			name: "no introduction",
			text: "  Let us pray.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, title := Prayer(tt.text)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestPrayer_IntroductionPastWindowIgnored(t *testing.T) {
	long := make([]byte, prayerWindow)
	for i := range long {
		long[i] = 'x'
	}
	name, title := Prayer(string(long) + " The Chaplain, Dr. Black, offered the following prayer:")
	assert.Empty(t, name)
	assert.Empty(t, title)
}

const electionText = `  Mr. LARSON of Connecticut. Mr. Speaker, by direction of the
Democratic Caucus, I offer a privileged resolution.
  Resolved, That the following named Members be and are hereby elected
to the following standing committees:
  COMMITTEE ON WAYS AND MEANS: Mr. RYAN of Wisconsin.
  COMMITTEE ON THE BUDGET: Mr. PRICE of Georgia, Mrs. BLACK,
  and Mr. WOODALL.
  COMMITTEE ON ETHICS:
`

func TestCommitteeElection(t *testing.T) {
	got := CommitteeElection(electionText)
	assert.Equal(t, []types.Committee{
		{Name: "COMMITTEE ON WAYS AND MEANS", Members: []string{"Mr. RYAN of Wisconsin"}},
		{Name: "COMMITTEE ON THE BUDGET", Members: []string{"Mr. PRICE of Georgia", "Mrs. BLACK", "Mr. WOODALL"}},
	}, got)
}

func TestCommitteeElection_HyphenatedSurname(t *testing.T) {
	got := CommitteeElection("  COMMITTEE ON RULES: Ms. WASSERMAN-SCHULTZ, Miss. O'NEILL.")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Ms. WASSERMAN-SCHULTZ", "Miss. O'NEILL"}, got[0].Members)
}

func TestCommitteeElection_NoRoster(t *testing.T) {
	assert.Empty(t, CommitteeElection("  Resolved, That the following named Member be elected."))
}

const resignationText = `  The PRESIDING OFFICER laid before the Senate the following letter of resignation:
  Dear Mr. President: I hereby resign from the Committee on Finance,
effective today.
  Sincerely,
  Olympia J. Snowe,
  U.S. Senator from Maine.`

func TestCommitteeResignation(t *testing.T) {
	assert.Equal(t, Resignation{
		Committee: "Committee on Finance",
		Member:    "Olympia J. Snowe",
		State:     "Maine",
	}, CommitteeResignation(resignationText))
}

func TestCommitteeResignation_StateVariants(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		wantState string
	}{
		{"state on the next line", "  Kelly A. Ayotte,\n  U.S. Senator from\nNew Hampshire.", "New Hampshire"},
		{"two word state", "  Kelly A. Ayotte,\n  U.S. Senator from New Hampshire.\n  Enclosure", "New Hampshire"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CommitteeResignation("  I resign from the Committee on Armed Services.\n  Sincerely,\n" + tt.signature)
			assert.Equal(t, "Kelly A. Ayotte", r.Member)
			assert.Equal(t, tt.wantState, r.State)
			assert.Equal(t, "Committee on Armed Services", r.Committee)
		})
	}
}

func TestCommitteeResignation_NoSigner(t *testing.T) {
	r := CommitteeResignation("  The SPEAKER laid before the House a resignation from the Committee on Rules.")
	assert.Equal(t, "Committee on Rules", r.Committee)
	assert.Empty(t, r.Member)
	assert.Empty(t, r.State)
}

func TestApply(t *testing.T) {
	t.Run("committee election prefixes speaker", func(t *testing.T) {
		it := types.Item{Kind: types.KindCommitteeElection, Speaker: "CLERK", Text: electionText}
		Apply(&it)
		assert.Equal(t, "The CLERK", it.Speaker)
		assert.Len(t, it.Committees, 2)
	})

	t.Run("committee election keeps existing prefix", func(t *testing.T) {
		it := types.Item{Kind: types.KindCommitteeElection, Speaker: "The CLERK", Text: electionText}
		Apply(&it)
		assert.Equal(t, "The CLERK", it.Speaker)
	})

	t.Run("resignation signer becomes speaker", func(t *testing.T) {
		it := types.Item{Kind: types.KindCommitteeResignation, Speaker: "The PRESIDING OFFICER", Text: resignationText}
		Apply(&it)
		assert.Equal(t, "Olympia J. Snowe", it.Speaker)
		assert.Equal(t, "Olympia J. Snowe", it.Member)
		assert.Equal(t, "Committee on Finance", it.Committee)
		assert.Equal(t, "Maine", it.State)
	})

	t.Run("resignation without signer keeps speaker", func(t *testing.T) {
		it := types.Item{Kind: types.KindCommitteeResignation, Speaker: "The SPEAKER", Text: "  The SPEAKER laid before the House a resignation."}
		Apply(&it)
		assert.Equal(t, "The SPEAKER", it.Speaker)
		assert.Empty(t, it.Member)
	})

	t.Run("prayer", func(t *testing.T) {
		it := types.Item{Kind: types.KindPrayer, Speaker: "The Chaplain", Text: "  The Chaplain, Dr. Barry C. Black, offered the following prayer:"}
		Apply(&it)
		assert.Equal(t, "Dr. Barry C. Black", it.PrayerName)
		assert.Equal(t, "Chaplain", it.PrayerTitle)
	})

	t.Run("speech untouched", func(t *testing.T) {
		it := types.Item{Kind: types.KindSpeech, Speaker: "Mr. SMITH", Text: "  Mr. SMITH. Article I, Section 8."}
		before := it
		Apply(&it)
		assert.Equal(t, before, it)
	})
}

func TestApply_Idempotent(t *testing.T) {
	items := []types.Item{
		{Kind: types.KindCommitteeElection, Speaker: "CLERK", Text: electionText},
		{Kind: types.KindCommitteeResignation, Speaker: "The PRESIDING OFFICER", Text: resignationText},
		{Kind: types.KindConstitutionalAuthority, Speaker: "Mr. SMITH", Text: "  By Mr. SMITH:\n  H.R. 1.\n  Article I, Section 8, Clause 3"},
		{Kind: types.KindPrayer, Text: "  The Chaplain, Dr. Barry C. Black, offered the following prayer:"},
	}
	for _, it := range items {
		t.Run(it.Kind, func(t *testing.T) {
			once := it
			Apply(&once)
			twice := once
			Apply(&twice)
			assert.Equal(t, once, twice)
		})
	}
}
