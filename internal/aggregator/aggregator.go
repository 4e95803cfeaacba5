package aggregator

import "crec-parser-go/internal/types"

// Summary is a per-document tally of the produced items.
type Summary struct {
	TotalItems       int            `json:"total_items"`
	KindCounts       map[string]int `json:"kind_counts"`
	SpeakerCounts    map[string]int `json:"speaker_counts"`
	ResolvedSpeakers int            `json:"resolved_speakers"`
	UnknownSpeakers  int            `json:"unknown_speakers"`
}

func Aggregate(items []types.Item) Summary {
	kinds := map[string]int{}
	speakers := map[string]int{}
	resolved, unknown := 0, 0
	for _, it := range items {
		kinds[it.Kind]++
		if it.Speaker != "" {
			speakers[it.Speaker]++
		}
		if it.SpeakerBioguide != nil {
			resolved++
		}
		if it.Speaker == types.UnknownSpeaker {
			unknown++
		}
	}
	return Summary{
		TotalItems:       len(items),
		KindCounts:       kinds,
		SpeakerCounts:    speakers,
		ResolvedSpeakers: resolved,
		UnknownSpeakers:  unknown,
	}
}

// Merge folds several document summaries into one.
func Merge(sums ...Summary) Summary {
	out := Summary{KindCounts: map[string]int{}, SpeakerCounts: map[string]int{}}
	for _, s := range sums {
		out.TotalItems += s.TotalItems
		out.ResolvedSpeakers += s.ResolvedSpeakers
		out.UnknownSpeakers += s.UnknownSpeakers
		for k, v := range s.KindCounts {
			out.KindCounts[k] += v
		}
		for k, v := range s.SpeakerCounts {
			out.SpeakerCounts[k] += v
		}
	}
	return out
}
