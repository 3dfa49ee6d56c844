package aggregate

import (
	"math"
	"strconv"
	"strings"

	"relationship-dashboard/model"
)

// FromRecords converts normalized sheet rows into typed responses.
func FromRecords(records []model.Record) []model.Response {
	responses := make([]model.Response, 0, len(records))
	for _, rec := range records {
		responses = append(responses, ParseResponse(rec))
	}
	return responses
}

// ParseResponse maps one row onto the typed shape. Missing columns leave
// the zero value; nothing here fails.
func ParseResponse(rec model.Record) model.Response {
	r := model.Response{
		Timestamp:    rec[model.ColTimestamp],
		Respondent:   strings.TrimSpace(rec[model.ColRespondent]),
		DayFor:       rec[model.ColDayFor],
		HungOut:      strings.TrimSpace(rec[model.ColHungOut]),
		LongDistance: strings.TrimSpace(rec[model.ColLongDistance]),
		StillLike:    strings.TrimSpace(rec[model.ColStillLike]),
		CrashOut:     strings.TrimSpace(rec[model.ColCrashOut]),
		Argued:       strings.TrimSpace(rec[model.ColArgued]),
		Stress:       parseRating(rec[model.ColStress]),
		Strength:     parseRating(rec[model.ColStrength]),
		Activities:   rec[model.ColActivities],
		FeelingsTrue: rec[model.ColFeelingsTrue],
		GoodMemory:   rec[model.ColGoodMemory],
		Worries:      rec[model.ColWorries],
		AnythingElse: rec[model.ColAnythingElse],
		Jealousy:     rec[model.ColJealousy],
	}
	r.SubmittedAt = ParseTimestamp(r.Timestamp)
	r.Date = ParseDate(r.DayFor)
	return r
}

func parseRating(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}
