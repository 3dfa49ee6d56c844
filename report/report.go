package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"relationship-dashboard/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	StrengthGlyph = "❤"
	StressGlyph   = "●"
	emptyBar      = "–"
)

// Renderer turns summaries into HTML documents.
type Renderer struct {
	weekly *template.Template
	status *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"bar":      Bar,
		"float":    func(f float64) string { return fmt.Sprintf("%.1f", f) },
		"floatPtr": formatFloatPtr,
		"intPtr":   formatIntPtr,
		"strPtr":   formatStrPtr,
		"weekday":  weekday,
		"yesNo": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
	}

	weekly, err := template.New("weekly.html").Funcs(funcs).ParseFS(templateFS, "templates/weekly.html")
	if err != nil {
		return nil, fmt.Errorf("parse weekly template: %w", err)
	}
	status, err := template.New("status.html").Funcs(funcs).ParseFS(templateFS, "templates/status.html")
	if err != nil {
		return nil, fmt.Errorf("parse status template: %w", err)
	}
	return &Renderer{weekly: weekly, status: status}, nil
}

type weeklyView struct {
	Stats       model.WeeklyStats
	Days        []model.WeekDay
	Respondents [2]string
}

// RenderWeekly renders the weekly digest email.
func (r *Renderer) RenderWeekly(stats model.WeeklyStats, days []model.WeekDay, respondents [2]string) (string, error) {
	var buf bytes.Buffer
	if err := r.weekly.Execute(&buf, weeklyView{Stats: stats, Days: days, Respondents: respondents}); err != nil {
		return "", fmt.Errorf("render weekly digest: %w", err)
	}
	return buf.String(), nil
}

type statusView struct {
	Status model.Status
	Trend  model.Trend
	Days   []trendRow
}

type trendRow struct {
	Date     string
	Strength *float64
	StressA  *int
	StressB  *int
	Flags    string
}

// RenderStatus renders the status page with the trend as a day table.
func (r *Renderer) RenderStatus(status model.Status, trend model.Trend) (string, error) {
	rows := make([]trendRow, len(trend.Dates))
	for i, d := range trend.Dates {
		rows[i] = trendRow{Date: d}
		if i < len(trend.Strength) {
			rows[i].Strength = trend.Strength[i]
		}
		if i < len(trend.StressA) {
			rows[i].StressA = trend.StressA[i]
		}
		if i < len(trend.StressB) {
			rows[i].StressB = trend.StressB[i]
		}
		rows[i].Flags = trendFlags(trend, i)
	}

	var buf bytes.Buffer
	if err := r.status.Execute(&buf, statusView{Status: status, Trend: trend, Days: rows}); err != nil {
		return "", fmt.Errorf("render status: %w", err)
	}
	return buf.String(), nil
}

func trendFlags(t model.Trend, i int) string {
	var flags []string
	add := func(series []int, label string) {
		if i < len(series) && series[i] == 1 {
			flags = append(flags, label)
		}
	}
	add(t.Hangout, "hangout")
	add(t.Kiss, "kiss")
	add(t.Minecraft, "minecraft")
	add(t.Conflict, "conflict")
	return strings.Join(flags, ", ")
}

// Bar repeats glyph once per rating point, clamped to 0..5.
// An absent rating renders as a dash.
func Bar(rating *int, glyph string) string {
	if rating == nil {
		return emptyBar
	}
	n := *rating
	if n < 0 {
		n = 0
	}
	if n > model.RatingMax {
		n = model.RatingMax
	}
	return strings.Repeat(glyph, n)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return emptyBar
	}
	return fmt.Sprintf("%.1f", *f)
}

func formatIntPtr(n *int) string {
	if n == nil {
		return emptyBar
	}
	return fmt.Sprintf("%d", *n)
}

func formatStrPtr(s *string) string {
	if s == nil || *s == "" {
		return emptyBar
	}
	return *s
}

func weekday(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Mon Jan 2")
}
