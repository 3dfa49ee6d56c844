package aggregate

import (
	"time"

	"relationship-dashboard/model"
)

// dayIndex maps a calendar day to a respondent's most recent response for
// that day. rs must be sorted newest first.
func dayIndex(rs []model.Response) map[string]model.Response {
	idx := make(map[string]model.Response, len(rs))
	for _, r := range rs {
		if r.Date.Equal(model.MinDate) {
			continue
		}
		key := DayKey(r.Date)
		if _, seen := idx[key]; !seen {
			idx[key] = r
		}
	}
	return idx
}

// BuildTrend produces the 30-day series ending today, oldest first.
func BuildTrend(b *model.Bundle, today time.Time, respondents [2]string) model.Trend {
	if b == nil {
		b = &model.Bundle{}
	}
	idxA := dayIndex(b.ByRespondent[respondents[0]])
	idxB := dayIndex(b.ByRespondent[respondents[1]])

	t := model.Trend{
		Respondents: respondents,
		Dates:       make([]string, model.TrendDays),
		Strength:    make([]*float64, model.TrendDays),
		StressA:     make([]*int, model.TrendDays),
		StressB:     make([]*int, model.TrendDays),
		Hangout:     make([]int, model.TrendDays),
		Kiss:        make([]int, model.TrendDays),
		Minecraft:   make([]int, model.TrendDays),
		Conflict:    make([]int, model.TrendDays),
	}

	start := today.AddDate(0, 0, -(model.TrendDays - 1))
	for i := 0; i < model.TrendDays; i++ {
		day := DayKey(start.AddDate(0, 0, i))
		t.Dates[i] = day

		a, hasA := idxA[day]
		bb, hasB := idxB[day]

		var sum, n int
		if hasA {
			t.StressA[i] = a.Stress
			if a.Strength != nil {
				sum += *a.Strength
				n++
			}
		}
		if hasB {
			t.StressB[i] = bb.Stress
			if bb.Strength != nil {
				sum += *bb.Strength
				n++
			}
		}
		if n > 0 {
			avg := float64(sum) / float64(n)
			t.Strength[i] = &avg
		}

		either := func(pred func(model.Response) bool) int {
			if (hasA && pred(a)) || (hasB && pred(bb)) {
				return 1
			}
			return 0
		}
		t.Hangout[i] = either(model.Response.HadHangout)
		t.Kiss[i] = either(func(r model.Response) bool {
			return r.HadHangout() && r.HasActivity(model.MarkerKiss)
		})
		t.Minecraft[i] = either(func(r model.Response) bool {
			return r.HadHangout() && r.HasActivity(model.MarkerMinecraft)
		})
		t.Conflict[i] = either(model.Response.HadConflict)
	}
	return t
}
