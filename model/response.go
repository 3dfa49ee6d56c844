package model

import (
	"strings"
	"time"
)

// Column headers exactly as the survey form exports them. Several carry
// trailing spaces or embedded newlines and must not be trimmed.
const (
	ColTimestamp    = "Timestamp"
	ColRespondent   = "Who is filling this out right now."
	ColStillLike    = "Do you still like me? "
	ColCrashOut     = "Did you have any crash outs about us? \n\nSomething counts as a crash out if you spent >30 minutes worrying about the relationship, or had a bad thought that lasted multiple days. "
	ColStress       = "How stressed are you about things outside of our relationship? "
	ColArgued       = "Did we argue? \n\nSomething counts as an argument if one party felt anger about something, and brought it up, and it was not immediately resolved. "
	ColFeelingsTrue = "Select all that you feel is true "
	ColStrength     = "How strong do you think our relationship is?"
	ColHungOut      = "Did you hang out (in real life)? "
	ColLongDistance = "Are you long distance right now?"
	ColActivities   = "Check all that are true for this hangout."
	ColDayFor       = "What day is this for? "
	ColJealousy     = "If you experienced jealousy recently, what was it from?\n\nOnly fill this out once per jealous event. "
	ColGoodMemory   = "What's a good memory from this hangout (or relationship)? "
	ColWorries      = "What's something you're worried about? "
	ColAnythingElse = "Anything else to note?"
)

// Activity markers matched by substring against the raw multi-select value.
const (
	MarkerMinecraft = "We played Minecraft"
	MarkerKiss      = "held hands and kissed"
	MarkerSleepover = "sleepover"
)

// Answers used for "nothing happened" placeholders.
const (
	AnswerYes  = "Yes"
	AnswerNo   = "No"
	NoCrashOut = "No, everything is good"
	NoArgument = "No, everything is good."
)

// Top of the rating scale and the values substituted when a rating is absent.
const (
	RatingMax       = 5
	DefaultStrength = 5
	DefaultStress   = 3
)

// MinDate is the "earliest possible date" sentinel for unparseable dates.
var MinDate = time.Time{}

// Record is one normalized sheet row keyed by column header.
type Record map[string]string

// Response is a typed survey submission. Empty strings mean the question
// was not answered; nil ratings mean absent or non-numeric.
type Response struct {
	Timestamp    string    `json:"timestamp"`
	SubmittedAt  time.Time `json:"-"`
	Respondent   string    `json:"user"`
	DayFor       string    `json:"day_for"`
	Date         time.Time `json:"-"`
	HungOut      string    `json:"hangout"`
	LongDistance string    `json:"long_distance"`
	StillLike    string    `json:"still_like"`
	CrashOut     string    `json:"crash_out"`
	Argued       string    `json:"argued"`
	Stress       *int      `json:"stress"`
	Strength     *int      `json:"relationship_strength"`
	Activities   string    `json:"activities"`
	FeelingsTrue string    `json:"feelings_true"`
	GoodMemory   string    `json:"good_memory"`
	Worries      string    `json:"worries"`
	AnythingElse string    `json:"anything_else"`
	Jealousy     string    `json:"jealousy"`
	Synthesized  bool      `json:"synthesized,omitempty"`
}

// IsYes reports whether a Yes/No style answer is affirmative. Answers such
// as "No, everything is good" count as no.
func IsYes(answer string) bool {
	return strings.HasPrefix(strings.TrimSpace(answer), AnswerYes)
}

func (r Response) HadHangout() bool      { return IsYes(r.HungOut) }
func (r Response) WasLongDistance() bool { return IsYes(r.LongDistance) }

// HadConflict reports a crashout or an argument.
func (r Response) HadConflict() bool { return IsYes(r.CrashOut) || IsYes(r.Argued) }

// HasActivity checks the raw multi-select string by substring containment.
func (r Response) HasActivity(marker string) bool {
	return strings.Contains(r.Activities, marker)
}

// StrengthOr returns the strength rating or def when absent.
func (r Response) StrengthOr(def int) int {
	if r.Strength == nil {
		return def
	}
	return *r.Strength
}

// StressOr returns the stress rating or def when absent.
func (r Response) StressOr(def int) int {
	if r.Stress == nil {
		return def
	}
	return *r.Stress
}

// IntPtr is a helper for optional ratings.
func IntPtr(v int) *int { return &v }
