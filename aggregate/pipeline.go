package aggregate

import (
	"sort"
	"strings"

	"relationship-dashboard/model"
)

// SortRecent orders responses by hangout date, then submission time, both
// descending. Unparseable dates are model.MinDate and land at the end.
func SortRecent(rs []model.Response) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].Date.Equal(rs[j].Date) {
			return rs[i].Date.After(rs[j].Date)
		}
		return rs[i].SubmittedAt.After(rs[j].SubmittedAt)
	})
}

// Process builds the request-scoped bundle from every response.
func Process(responses []model.Response, respondents [2]string) *model.Bundle {
	all := make([]model.Response, len(responses))
	copy(all, responses)
	SortRecent(all)

	b := &model.Bundle{
		All:          all,
		ByRespondent: make(map[string][]model.Response, len(respondents)),
	}
	for _, name := range respondents {
		b.ByRespondent[name] = []model.Response{}
	}

	for _, r := range all {
		if _, known := b.ByRespondent[r.Respondent]; known {
			b.ByRespondent[r.Respondent] = append(b.ByRespondent[r.Respondent], r)
		}
		if !r.HadHangout() {
			continue
		}
		b.Hangouts = append(b.Hangouts, r)
		if r.HasActivity(model.MarkerMinecraft) {
			b.Minecraft = append(b.Minecraft, r)
		}
		if r.HasActivity(model.MarkerKiss) {
			b.Kisses = append(b.Kisses, r)
		}
	}

	b.Memories = ExtractMemories(all)
	return b
}

// ExtractMemories flattens memory, worry and note answers, skipping blank
// text, newest submission first.
func ExtractMemories(rs []model.Response) []model.MemoryEntry {
	var out []model.MemoryEntry
	for _, r := range rs {
		for _, f := range []struct {
			kind model.MemoryKind
			text string
		}{
			{model.KindMemory, r.GoodMemory},
			{model.KindWorry, r.Worries},
			{model.KindNote, r.AnythingElse},
		} {
			text := strings.TrimSpace(f.text)
			if text == "" {
				continue
			}
			out = append(out, model.MemoryEntry{
				Kind:        f.kind,
				Text:        text,
				Respondent:  r.Respondent,
				Date:        r.DayFor,
				Timestamp:   r.Timestamp,
				SubmittedAt: r.SubmittedAt,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}
