package aggregate

import (
	"time"

	"relationship-dashboard/model"
)

// BuildStatus derives the dashboard headline. An empty bundle yields a
// Status whose summary fields are all nil.
func BuildStatus(b *model.Bundle, today time.Time, respondents [2]string) model.Status {
	var s model.Status
	if b == nil {
		b = &model.Bundle{}
	}

	s.MostRecentHangout = summarize(b.Hangouts, today)
	s.MostRecentMinecraft = summarize(b.Minecraft, today)
	s.MostRecentKiss = summarize(b.Kisses, today)
	if s.MostRecentHangout != nil {
		days := s.MostRecentHangout.DaysAgo
		s.DaysSinceHangout = &days
	}

	var total, count int
	for _, name := range respondents {
		rs := model.RespondentStatus{Name: name}
		if latest, ok := b.Latest(name); ok {
			entry := latest.DayFor
			still := latest.StillLike
			ld := latest.WasLongDistance()
			rs.LastEntry = &entry
			rs.Stress = latest.Stress
			rs.Strength = latest.Strength
			rs.StillLike = &still
			rs.LongDistance = &ld
			if latest.Strength != nil {
				total += *latest.Strength
				count++
			}
		}
		s.Respondents = append(s.Respondents, rs)
	}

	if count > 0 {
		avg := float64(total) / float64(count)
		s.AverageStrength = &avg
	}
	return s
}

// summarize describes the first dated response; rs is newest first so the
// first dated entry is the most recent.
func summarize(rs []model.Response, today time.Time) *model.HangoutSummary {
	for _, r := range rs {
		if r.Date.Equal(model.MinDate) {
			continue
		}
		return &model.HangoutSummary{
			Date:       DayKey(r.Date),
			DateString: r.DayFor,
			DaysAgo:    DaysBetween(r.Date, today),
			Respondent: r.Respondent,
			Activities: r.Activities,
			GoodMemory: r.GoodMemory,
		}
	}
	return nil
}

// BuildLastEntries returns each respondent's newest response and the newest
// limit memories. A non-positive limit keeps every memory.
func BuildLastEntries(b *model.Bundle, respondents [2]string, limit int) model.LastEntries {
	out := model.LastEntries{
		Entries:  make(map[string]*model.Response, len(respondents)),
		Memories: []model.MemoryEntry{},
	}
	if b == nil {
		for _, name := range respondents {
			out.Entries[name] = nil
		}
		return out
	}

	for _, name := range respondents {
		if latest, ok := b.Latest(name); ok {
			latest := latest
			out.Entries[name] = &latest
		} else {
			out.Entries[name] = nil
		}
	}

	mem := b.Memories
	if limit > 0 && len(mem) > limit {
		mem = mem[:limit]
	}
	out.Memories = append(out.Memories, mem...)
	return out
}
