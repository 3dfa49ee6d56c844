package aggregate

import (
	"fmt"
	"time"

	"relationship-dashboard/model"
)

var (
	testRespondents = [2]string{"Michael", "Amy"}
	testToday       = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
)

// entry builds a record for name on the day offset days before testToday,
// submitted at the given hour of that day.
func entry(name string, offset, hour int, fields map[string]string) model.Record {
	day := testToday.AddDate(0, 0, -offset)
	rec := model.Record{
		model.ColRespondent: name,
		model.ColDayFor:     fmt.Sprintf("%d/%d/%d", int(day.Month()), day.Day(), day.Year()),
		model.ColTimestamp:  fmt.Sprintf("%d/%d/%d %02d:00:00", int(day.Month()), day.Day(), day.Year(), hour),
		model.ColHungOut:    "No",
	}
	for k, v := range fields {
		rec[k] = v
	}
	return rec
}

func bundleOf(recs ...model.Record) *model.Bundle {
	return Process(FromRecords(recs), testRespondents)
}
