package aggregate

import (
	"testing"

	"relationship-dashboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfill_FullWeekUsesOnlyRealRecords(t *testing.T) {
	var recs []model.Record
	for offset := 0; offset < model.WeekDays; offset++ {
		recs = append(recs, entry("Michael", offset, 8, map[string]string{
			model.ColStrength: "4",
			model.ColStress:   "2",
			model.ColHungOut:  "Yes",
		}))
	}
	b := bundleOf(recs...)

	week := Backfill(b.ByRespondent["Michael"], testToday, "Michael")

	require.Len(t, week, model.WeekDays)
	for i, r := range week {
		assert.False(t, r.Synthesized, "day %d should be real", i)
		assert.True(t, r.HadHangout())
	}
	assert.Equal(t, "2025-07-04", DayKey(week[0].Date))
	assert.Equal(t, "2025-07-10", DayKey(week[6].Date))
}

func TestBackfill_StaleRecordCarriedForward(t *testing.T) {
	b := bundleOf(entry("Amy", 10, 8, map[string]string{
		model.ColStrength: "4",
		model.ColStress:   "1",
		model.ColHungOut:  "Yes",
		model.ColArgued:   "Yes",
		model.ColCrashOut: "Yes",
	}))

	week := Backfill(b.ByRespondent["Amy"], testToday, "Amy")

	require.Len(t, week, model.WeekDays)
	for i, r := range week {
		assert.True(t, r.Synthesized, "day %d should be a placeholder", i)
		assert.Equal(t, "Amy", r.Respondent)
		assert.Equal(t, "No", r.HungOut)
		assert.Equal(t, model.NoCrashOut, r.CrashOut)
		assert.Equal(t, model.NoArgument, r.Argued)
		require.NotNil(t, r.Strength)
		assert.Equal(t, 4, *r.Strength)
		require.NotNil(t, r.Stress)
		assert.Equal(t, 1, *r.Stress)
		assert.Equal(t, DayKey(testToday.AddDate(0, 0, i-6)), DayKey(r.Date))
	}
}

func TestBackfill_CarriesFromLatestRealDayInsideWindow(t *testing.T) {
	b := bundleOf(
		entry("Amy", 12, 8, map[string]string{model.ColStrength: "2"}),
		entry("Amy", 4, 8, map[string]string{model.ColStrength: "5"}),
	)

	week := Backfill(b.ByRespondent["Amy"], testToday, "Amy")

	assert.Equal(t, 2, *week[0].Strength)
	assert.Equal(t, 2, *week[1].Strength)
	assert.False(t, week[2].Synthesized)
	assert.Equal(t, 5, *week[2].Strength)
	for _, r := range week[3:] {
		assert.True(t, r.Synthesized)
		assert.Equal(t, 5, *r.Strength)
	}
}

func TestBackfill_NoHistoryUsesDefaults(t *testing.T) {
	week := Backfill(nil, testToday, "Michael")

	require.Len(t, week, model.WeekDays)
	for _, r := range week {
		assert.True(t, r.Synthesized)
		assert.Equal(t, "Michael", r.Respondent)
		assert.Equal(t, model.DefaultStrength, *r.Strength)
		assert.Equal(t, model.DefaultStress, *r.Stress)
	}
}

func TestWeeklyStats_Counts(t *testing.T) {
	b := bundleOf(
		entry("Michael", 0, 8, map[string]string{
			model.ColHungOut:    "Yes",
			model.ColActivities: "We played Minecraft, We held hands and kissed",
			model.ColStrength:   "5",
			model.ColStress:     "1",
		}),
		entry("Amy", 0, 9, map[string]string{
			model.ColHungOut:    "Yes",
			model.ColActivities: "We had a sleepover",
			model.ColStrength:   "5",
			model.ColStress:     "1",
		}),
		entry("Amy", 1, 9, map[string]string{
			model.ColLongDistance: "Yes",
			model.ColCrashOut:     "Yes",
			model.ColStrength:     "3",
			model.ColStress:       "5",
		}),
		// Activities without a hangout are ignored.
		entry("Michael", 2, 9, map[string]string{
			model.ColActivities: "We played Minecraft",
			model.ColStrength:   "5",
			model.ColStress:     "1",
		}),
	)

	days := Week(b, testToday, testRespondents)
	require.Len(t, days, model.WeekDays)
	s := WeeklyStats(days, testRespondents)

	assert.Equal(t, "2025-07-04", s.Start)
	assert.Equal(t, "2025-07-10", s.End)
	assert.Equal(t, 1, s.Hangouts)
	assert.Equal(t, 1, s.Kisses)
	assert.Equal(t, 1, s.Minecraft)
	assert.Equal(t, 1, s.Sleepovers)
	assert.Equal(t, 1, s.LongDistanceDays)
	assert.Equal(t, 1, s.Conflicts)

	require.Len(t, s.Respondents, 2)
	michael, amy := s.Respondents[0], s.Respondents[1]
	assert.Equal(t, 2, michael.RealEntries)
	assert.Equal(t, 5, michael.Synthesized)
	assert.Equal(t, 2, amy.RealEntries)

	// Michael: 4 default-filled days (5/3) before day -2, then 5/1 carried.
	assert.InDelta(t, (4*3+1+1+1)/7.0, michael.AvgStress, 1e-9)
	assert.InDelta(t, 5.0, michael.AvgStrength, 1e-9)
	// Amy: 5 default days, then 3/5 on day -1, 5/1 today.
	assert.InDelta(t, (5*3+5+1)/7.0, amy.AvgStress, 1e-9)
	assert.InDelta(t, (5*5+3+5)/7.0, amy.AvgStrength, 1e-9)

	assert.InDelta(t, (michael.AvgStress+amy.AvgStress)/2, s.AvgStress, 1e-9)
	assert.InDelta(t, (michael.AvgStrength+amy.AvgStrength)/2, s.AvgStrength, 1e-9)
}

func TestWeeklyStats_PlaceholdersDoNotCountEvents(t *testing.T) {
	b := bundleOf(entry("Michael", 9, 8, map[string]string{
		model.ColHungOut:    "Yes",
		model.ColActivities: "We held hands and kissed",
		model.ColArgued:     "Yes",
	}))

	s := WeeklyStats(Week(b, testToday, testRespondents), testRespondents)

	assert.Zero(t, s.Hangouts)
	assert.Zero(t, s.Kisses)
	assert.Zero(t, s.Conflicts)
	assert.Equal(t, 7, s.Respondents[0].Synthesized)
}

func TestMergedActivities_KeepsLeadingSpaces(t *testing.T) {
	items := mergedActivities(
		model.Response{Activities: "We played Minecraft, We held hands and kissed"},
		model.Response{},
	)
	assert.Equal(t, []string{"We played Minecraft", " We held hands and kissed"}, items)
	assert.True(t, containsActivity(items, model.MarkerKiss))
}

func TestWeeklyStats_Empty(t *testing.T) {
	assert.Equal(t, model.WeeklyStats{}, WeeklyStats(nil, testRespondents))
}
