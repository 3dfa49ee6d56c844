package aggregate

import (
	"fmt"
	"strings"
	"time"

	"relationship-dashboard/model"
)

// Backfill returns exactly model.WeekDays records for name, oldest first,
// covering the week that ends today. rs is the respondent's own history,
// newest first. A day without a submission gets a placeholder carrying the
// identity and ratings of the latest earlier real record, with the
// hangout, crashout and argument answers reset to "nothing happened".
func Backfill(rs []model.Response, today time.Time, name string) []model.Response {
	idx := dayIndex(rs)
	start := today.AddDate(0, 0, -(model.WeekDays - 1))

	// Seed with the newest real record before the window.
	var last *model.Response
	for i := range rs {
		if rs[i].Date.Equal(model.MinDate) {
			continue
		}
		if rs[i].Date.Before(start) {
			last = &rs[i]
			break
		}
	}

	week := make([]model.Response, 0, model.WeekDays)
	for i := 0; i < model.WeekDays; i++ {
		day := start.AddDate(0, 0, i)
		if rec, ok := idx[DayKey(day)]; ok {
			week = append(week, rec)
			r := rec
			last = &r
			continue
		}
		week = append(week, placeholder(name, day, last))
	}
	return week
}

func placeholder(name string, day time.Time, last *model.Response) model.Response {
	p := model.Response{
		Respondent:  name,
		DayFor:      fmt.Sprintf("%d/%d/%d", int(day.Month()), day.Day(), day.Year()),
		Date:        day,
		SubmittedAt: day,
		HungOut:     model.AnswerNo,
		CrashOut:    model.NoCrashOut,
		Argued:      model.NoArgument,
		Synthesized: true,
	}
	if last == nil {
		p.Strength = model.IntPtr(model.DefaultStrength)
		p.Stress = model.IntPtr(model.DefaultStress)
		return p
	}
	if last.Respondent != "" {
		p.Respondent = last.Respondent
	}
	if last.Strength != nil {
		p.Strength = model.IntPtr(*last.Strength)
	}
	if last.Stress != nil {
		p.Stress = model.IntPtr(*last.Stress)
	}
	return p
}

// Week pairs both respondents' backfilled records day by day.
func Week(b *model.Bundle, today time.Time, respondents [2]string) []model.WeekDay {
	if b == nil {
		b = &model.Bundle{}
	}
	a := Backfill(b.ByRespondent[respondents[0]], today, respondents[0])
	c := Backfill(b.ByRespondent[respondents[1]], today, respondents[1])

	days := make([]model.WeekDay, model.WeekDays)
	for i := range days {
		days[i] = model.WeekDay{Date: DayKey(a[i].Date), A: a[i], B: c[i]}
	}
	return days
}

// mergedActivities unions both multi-select answers. Items are split on
// commas and kept as-is, leading spaces included.
func mergedActivities(rs ...model.Response) []string {
	var items []string
	for _, r := range rs {
		if r.Activities == "" {
			continue
		}
		items = append(items, strings.Split(r.Activities, ",")...)
	}
	return items
}

func containsActivity(items []string, marker string) bool {
	for _, item := range items {
		if strings.Contains(item, marker) {
			return true
		}
	}
	return false
}

// WeeklyStats reduces the paired week to counts and averages. Absent
// ratings count as model.DefaultStress / model.DefaultStrength.
func WeeklyStats(days []model.WeekDay, respondents [2]string) model.WeeklyStats {
	var s model.WeeklyStats
	if len(days) == 0 {
		return s
	}
	s.Start = days[0].Date
	s.End = days[len(days)-1].Date

	per := [2]model.RespondentWeek{{Name: respondents[0]}, {Name: respondents[1]}}
	var stressSum, strengthSum [2]int

	for _, d := range days {
		pair := [2]model.Response{d.A, d.B}

		if d.A.HadHangout() || d.B.HadHangout() {
			s.Hangouts++
			items := mergedActivities(d.A, d.B)
			if containsActivity(items, model.MarkerKiss) {
				s.Kisses++
			}
			if containsActivity(items, model.MarkerMinecraft) {
				s.Minecraft++
			}
			if containsActivity(items, model.MarkerSleepover) {
				s.Sleepovers++
			}
		}
		if d.A.WasLongDistance() || d.B.WasLongDistance() {
			s.LongDistanceDays++
		}
		if d.A.HadConflict() || d.B.HadConflict() {
			s.Conflicts++
		}

		for i, r := range pair {
			stressSum[i] += r.StressOr(model.DefaultStress)
			strengthSum[i] += r.StrengthOr(model.DefaultStrength)
			if r.Synthesized {
				per[i].Synthesized++
			} else {
				per[i].RealEntries++
			}
		}
	}

	n := float64(len(days))
	for i := range per {
		per[i].AvgStress = float64(stressSum[i]) / n
		per[i].AvgStrength = float64(strengthSum[i]) / n
	}
	s.AvgStress = float64(stressSum[0]+stressSum[1]) / (2 * n)
	s.AvgStrength = float64(strengthSum[0]+strengthSum[1]) / (2 * n)
	s.Respondents = per[:]
	return s
}
