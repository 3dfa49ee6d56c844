package model

// HangoutSummary describes the most recent response matching a hangout filter.
type HangoutSummary struct {
	Date       string `json:"date"` // YYYY-MM-DD
	DateString string `json:"date_string"`
	DaysAgo    int    `json:"days_ago"`
	Respondent string `json:"user"`
	Activities string `json:"activities"`
	GoodMemory string `json:"good_memory,omitempty"`
}

// RespondentStatus is the latest self-reported state of one respondent.
type RespondentStatus struct {
	Name         string  `json:"name"`
	LastEntry    *string `json:"last_entry"`
	Stress       *int    `json:"stress"`
	Strength     *int    `json:"relationship_strength"`
	StillLike    *string `json:"still_like"`
	LongDistance *bool   `json:"long_distance"`
}

// Status is the dashboard headline. Every field is nil when there is no data.
type Status struct {
	MostRecentHangout   *HangoutSummary    `json:"most_recent_hangout"`
	MostRecentMinecraft *HangoutSummary    `json:"most_recent_minecraft"`
	MostRecentKiss      *HangoutSummary    `json:"most_recent_kiss"`
	DaysSinceHangout    *int               `json:"days_since_hangout"`
	AverageStrength     *float64           `json:"average_relationship_strength"`
	Respondents         []RespondentStatus `json:"respondents"`
}

// LastEntries pairs each respondent's newest response with recent memories.
type LastEntries struct {
	Entries  map[string]*Response `json:"entries"`
	Memories []MemoryEntry        `json:"memories"`
}

// TrendDays is the length of the trend window.
const TrendDays = 30

// Trend holds parallel per-day series, oldest first.
type Trend struct {
	Dates       []string   `json:"dates"`
	Respondents [2]string  `json:"respondents"`
	Strength    []*float64 `json:"relationship_strength"`
	StressA     []*int     `json:"stress_a"`
	StressB     []*int     `json:"stress_b"`
	Hangout     []int      `json:"hangout"`
	Kiss        []int      `json:"kiss"`
	Minecraft   []int      `json:"minecraft"`
	Conflict    []int      `json:"conflict"`
}

// WeekDays is the length of the weekly window.
const WeekDays = 7

// RespondentWeek is one respondent's averages over the weekly window.
type RespondentWeek struct {
	Name        string  `json:"name"`
	AvgStress   float64 `json:"avg_stress"`
	AvgStrength float64 `json:"avg_strength"`
	RealEntries int     `json:"real_entries"`
	Synthesized int     `json:"synthesized_entries"`
}

// WeeklyStats summarizes seven backfilled days for both respondents.
type WeeklyStats struct {
	Start            string           `json:"start"`
	End              string           `json:"end"`
	Hangouts         int              `json:"hangouts"`
	Kisses           int              `json:"kisses"`
	Minecraft        int              `json:"minecraft"`
	Sleepovers       int              `json:"sleepovers"`
	Conflicts        int              `json:"crashouts_or_arguments"`
	LongDistanceDays int              `json:"long_distance_days"`
	AvgStress        float64          `json:"avg_stress"`
	AvgStrength      float64          `json:"avg_strength"`
	Respondents      []RespondentWeek `json:"respondents"`
}

// WeekDay pairs the two respondents' records for one calendar day.
type WeekDay struct {
	Date string   `json:"date"`
	A    Response `json:"a"`
	B    Response `json:"b"`
}
