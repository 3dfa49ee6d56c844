package digest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"relationship-dashboard/config"
	"relationship-dashboard/email"
	"relationship-dashboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.July, 10, 15, 0, 0, 0, time.UTC)

type fakeSource struct {
	records []model.Record
	err     error
	calls   int
}

func (f *fakeSource) Records(ctx context.Context) ([]model.Record, error) {
	f.calls++
	return f.records, f.err
}

type fakeSender struct {
	sent []email.Message
	id   string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg email.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return f.id, nil
}

func testConfig() config.Config {
	return config.Config{
		Survey: config.SurveyConfig{
			Respondents: []string{"Michael", "Amy"},
			Timezone:    "UTC",
			MemoryLimit: 5,
		},
		Email: config.EmailConfig{
			From:    "digest@example.com",
			To:      []string{"a@example.com", "b@example.com"},
			Subject: "Weekly Relationship Digest",
		},
	}
}

func record(name string, daysAgo int, fields map[string]string) model.Record {
	day := testNow.AddDate(0, 0, -daysAgo)
	rec := model.Record{
		model.ColRespondent: name,
		model.ColDayFor:     fmt.Sprintf("%d/%d/%d", int(day.Month()), day.Day(), day.Year()),
		model.ColTimestamp:  fmt.Sprintf("%d/%d/%d 21:00:00", int(day.Month()), day.Day(), day.Year()),
		model.ColHungOut:    "No",
		model.ColStrength:   "4",
		model.ColStress:     "2",
	}
	for k, v := range fields {
		rec[k] = v
	}
	return rec
}

func newTestService(t *testing.T, source *fakeSource, sender *fakeSender) *Service {
	t.Helper()
	svc, err := NewService(source, sender, testConfig(), func() time.Time { return testNow })
	require.NoError(t, err)
	return svc
}

func sampleRecords() []model.Record {
	return []model.Record{
		record("Michael", 1, map[string]string{
			model.ColHungOut:    "Yes",
			model.ColActivities: "We played Minecraft, We held hands and kissed",
			model.ColGoodMemory: "Built a castle",
		}),
		record("Amy", 1, map[string]string{model.ColHungOut: "Yes"}),
		record("Amy", 3, nil),
	}
}

func TestStatus(t *testing.T) {
	source := &fakeSource{records: sampleRecords()}
	svc := newTestService(t, source, &fakeSender{})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)

	require.NotNil(t, status.MostRecentHangout)
	assert.Equal(t, "2025-07-09", status.MostRecentHangout.Date)
	require.NotNil(t, status.DaysSinceHangout)
	assert.Equal(t, 1, *status.DaysSinceHangout)
	require.NotNil(t, status.MostRecentMinecraft)
	require.NotNil(t, status.MostRecentKiss)
	assert.Len(t, status.Respondents, 2)
	assert.Equal(t, 1, source.calls)
}

func TestStatus_SourceError(t *testing.T) {
	boom := errors.New("sheet unavailable")
	svc := newTestService(t, &fakeSource{err: boom}, &fakeSender{})

	_, err := svc.Status(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = svc.SendWeekly(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLastEntries(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleRecords()}, &fakeSender{})

	last, err := svc.LastEntries(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last.Entries["Michael"])
	require.NotNil(t, last.Entries["Amy"])
	assert.Equal(t, "7/9/2025", last.Entries["Amy"].DayFor)
	require.NotEmpty(t, last.Memories)
	assert.Equal(t, "Built a castle", last.Memories[0].Text)
}

func TestTrend(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleRecords()}, &fakeSender{})

	trend, err := svc.Trend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend.Dates, model.TrendDays)
	assert.Equal(t, "2025-07-10", trend.Dates[model.TrendDays-1])
	assert.Equal(t, 1, trend.Hangout[model.TrendDays-2])
}

func TestWeekly(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleRecords()}, &fakeSender{})

	weekly, err := svc.Weekly(context.Background())
	require.NoError(t, err)
	require.Len(t, weekly.Days, model.WeekDays)
	assert.Equal(t, "2025-07-04", weekly.Stats.Start)
	assert.Equal(t, "2025-07-10", weekly.Stats.End)
	assert.Equal(t, 1, weekly.Stats.Hangouts)
	assert.Equal(t, 1, weekly.Stats.Kisses)
	assert.Equal(t, 1, weekly.Stats.Minecraft)
}

func TestPreview_DoesNotSend(t *testing.T) {
	sender := &fakeSender{id: "unused"}
	svc := newTestService(t, &fakeSource{records: sampleRecords()}, sender)

	weekly, html, err := svc.Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, weekly.Stats.Hangouts)
	assert.True(t, strings.Contains(html, "Michael"))
	assert.Empty(t, sender.sent)
}

func TestSendWeekly(t *testing.T) {
	sender := &fakeSender{id: "msg-123"}
	svc := newTestService(t, &fakeSource{records: sampleRecords()}, sender)

	result, err := svc.SendWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "msg-123", result.MessageID)
	assert.Equal(t, "Weekly Relationship Digest (Jul 4 - Jul 10)", result.Subject)
	assert.Equal(t, 1, result.Stats.Hangouts)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "digest@example.com", msg.From)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, msg.To)
	assert.Equal(t, result.Subject, msg.Subject)
	assert.NotEmpty(t, msg.HTML)
}

func TestSendWeekly_SenderError(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleRecords()}, &fakeSender{err: errors.New("smtp down")})

	_, err := svc.SendWeekly(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestSendWeekly_EmptySheet(t *testing.T) {
	sender := &fakeSender{id: "empty"}
	svc := newTestService(t, &fakeSource{}, sender)

	result, err := svc.SendWeekly(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Stats.Hangouts)
	assert.Equal(t, 7, result.Stats.Respondents[0].Synthesized)
	require.Len(t, sender.sent, 1)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Digest (Dec 28 - Jan 3)", Subject("Digest", model.WeeklyStats{Start: "2025-12-28", End: "2026-01-03"}))
	assert.Equal(t, "Digest", Subject("Digest", model.WeeklyStats{}))
}

func TestNewService_BadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Survey.Timezone = "Mars/Olympus"
	_, err := NewService(&fakeSource{}, &fakeSender{}, cfg, nil)
	assert.Error(t, err)
}
