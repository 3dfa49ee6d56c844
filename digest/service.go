package digest

import (
	"context"
	"fmt"
	"time"

	"relationship-dashboard/aggregate"
	"relationship-dashboard/config"
	"relationship-dashboard/email"
	"relationship-dashboard/model"
	"relationship-dashboard/report"
	"relationship-dashboard/sheet"

	"github.com/rs/zerolog/log"
)

// Service runs the fetch, aggregate, render and deliver pipeline. Every call
// reads the sheet once; nothing is kept between calls.
type Service struct {
	source      sheet.RecordSource
	sender      email.Sender
	renderer    *report.Renderer
	respondents [2]string
	loc         *time.Location
	memoryLimit int
	email       config.EmailConfig
	now         func() time.Time
}

// WeeklyReport is the data behind one weekly digest.
type WeeklyReport struct {
	Days  []model.WeekDay   `json:"days"`
	Stats model.WeeklyStats `json:"stats"`
}

// SendResult describes a delivered digest.
type SendResult struct {
	MessageID string            `json:"message_id"`
	Subject   string            `json:"subject"`
	Stats     model.WeeklyStats `json:"stats"`
}

// NewService wires the pipeline. A nil clock means time.Now.
func NewService(source sheet.RecordSource, sender email.Sender, cfg config.Config, clock func() time.Time) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	renderer, err := report.New()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		source:      source,
		sender:      sender,
		renderer:    renderer,
		respondents: cfg.Respondents(),
		loc:         loc,
		memoryLimit: cfg.Survey.MemoryLimit,
		email:       cfg.Email,
		now:         clock,
	}, nil
}

// Respondents returns the configured pair.
func (s *Service) Respondents() [2]string {
	return s.respondents
}

func (s *Service) load(ctx context.Context) (*model.Bundle, time.Time, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	responses := aggregate.FromRecords(records)
	today := aggregate.Today(s.now(), s.loc)

	log.Debug().Int("records", len(records)).Str("today", aggregate.DayKey(today)).Msg("Survey loaded")
	return aggregate.Process(responses, s.respondents), today, nil
}

func (s *Service) Status(ctx context.Context) (model.Status, error) {
	b, today, err := s.load(ctx)
	if err != nil {
		return model.Status{}, err
	}
	return aggregate.BuildStatus(b, today, s.respondents), nil
}

func (s *Service) LastEntries(ctx context.Context) (model.LastEntries, error) {
	b, _, err := s.load(ctx)
	if err != nil {
		return model.LastEntries{}, err
	}
	return aggregate.BuildLastEntries(b, s.respondents, s.memoryLimit), nil
}

func (s *Service) Trend(ctx context.Context) (model.Trend, error) {
	b, today, err := s.load(ctx)
	if err != nil {
		return model.Trend{}, err
	}
	return aggregate.BuildTrend(b, today, s.respondents), nil
}

// Weekly backfills the last seven days for both respondents and summarizes them.
func (s *Service) Weekly(ctx context.Context) (WeeklyReport, error) {
	b, today, err := s.load(ctx)
	if err != nil {
		return WeeklyReport{}, err
	}
	days := aggregate.Week(b, today, s.respondents)
	return WeeklyReport{Days: days, Stats: aggregate.WeeklyStats(days, s.respondents)}, nil
}

// Preview renders the weekly digest without sending it.
func (s *Service) Preview(ctx context.Context) (WeeklyReport, string, error) {
	weekly, err := s.Weekly(ctx)
	if err != nil {
		return WeeklyReport{}, "", err
	}
	html, err := s.renderer.RenderWeekly(weekly.Stats, weekly.Days, s.respondents)
	if err != nil {
		return WeeklyReport{}, "", err
	}
	return weekly, html, nil
}

// StatusPage renders the status summary and trend as HTML.
func (s *Service) StatusPage(ctx context.Context) (string, error) {
	b, today, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	status := aggregate.BuildStatus(b, today, s.respondents)
	trend := aggregate.BuildTrend(b, today, s.respondents)
	return s.renderer.RenderStatus(status, trend)
}

// SendWeekly renders the weekly digest and hands it to the sender.
func (s *Service) SendWeekly(ctx context.Context) (SendResult, error) {
	weekly, html, err := s.Preview(ctx)
	if err != nil {
		return SendResult{}, err
	}

	subject := Subject(s.email.Subject, weekly.Stats)
	id, err := s.sender.Send(ctx, email.Message{
		From:    s.email.From,
		To:      s.email.To,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("send weekly digest: %w", err)
	}

	log.Info().Str("message_id", id).Str("subject", subject).Msg("Weekly digest sent")
	return SendResult{MessageID: id, Subject: subject, Stats: weekly.Stats}, nil
}

// Subject appends the covered date range to the configured prefix.
func Subject(prefix string, stats model.WeeklyStats) string {
	start, errStart := time.Parse("2006-01-02", stats.Start)
	end, errEnd := time.Parse("2006-01-02", stats.End)
	if errStart != nil || errEnd != nil {
		return prefix
	}
	return fmt.Sprintf("%s (%s - %s)", prefix, start.Format("Jan 2"), end.Format("Jan 2"))
}
