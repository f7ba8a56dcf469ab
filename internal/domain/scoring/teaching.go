package scoring

import (
	"encoding/json"
)

const (
	teachingCeiling          = 30
	fullEngagementPercent    = 95
	partialEngagementPercent = 80
	fullEngagementPoints     = 25
	partialEngagementPoints  = 15
	excessEngagementPoints   = 5

	guidanceCeiling     = 30
	guidanceCountPoints = 10
	guidanceEntryPoints = 10
)

// TeachingLoad is one item-12.1 course row. The legacy field names
// total_hour_scheduled and total_hour_engaged are accepted as well.
type TeachingLoad struct {
	CourseCode     string `json:"course_code,omitempty"`
	CourseTitle    string `json:"course_title,omitempty"`
	ScheduledHours Number `json:"scheduled_hours"`
	EngagedHours   Number `json:"engaged_hours"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TeachingLoad) UnmarshalJSON(b []byte) error {
	var raw struct {
		CourseCode      string  `json:"course_code"`
		CourseTitle     string  `json:"course_title"`
		Scheduled       *Number `json:"scheduled_hours"`
		Engaged         *Number `json:"engaged_hours"`
		LegacyScheduled *Number `json:"total_hour_scheduled"`
		LegacyEngaged   *Number `json:"total_hour_engaged"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = TeachingLoad{
		CourseCode:     raw.CourseCode,
		CourseTitle:    raw.CourseTitle,
		ScheduledHours: firstNumber(raw.Scheduled, raw.LegacyScheduled),
		EngagedHours:   firstNumber(raw.Engaged, raw.LegacyEngaged),
	}
	return nil
}

func firstNumber(ns ...*Number) Number {
	for _, n := range ns {
		if n != nil {
			return *n
		}
	}
	return 0
}

// EngagementPercent is engaged/scheduled*100, or 0 when nothing is scheduled.
func EngagementPercent(scheduled, engaged float64) float64 {
	if scheduled <= 0 {
		return 0
	}
	return engaged / scheduled * 100
}

// ScoreTeachingLoad scores item 12.1 over the summed hours of all rows.
func ScoreTeachingLoad(rows []TeachingLoad) Result {
	var scheduled, engaged float64
	for _, r := range rows {
		scheduled += r.ScheduledHours.Float()
		engaged += r.EngagedHours.Float()
	}

	var engagement float64
	switch p := EngagementPercent(scheduled, engaged); {
	case p >= fullEngagementPercent:
		engagement = fullEngagementPoints
	case p >= partialEngagementPercent:
		// 15 at 80% rising linearly to 25 at 95%.
		engagement = partialEngagementPoints + (p-partialEngagementPercent)*
			(fullEngagementPoints-partialEngagementPoints)/(fullEngagementPercent-partialEngagementPercent)
	}

	var excess float64
	if engaged > scheduled {
		excess = excessEngagementPoints
	}

	return Result{
		Score: Cap(engagement+excess, teachingCeiling),
		Parts: map[string]float64{"engagement": engagement, "excess": excess},
	}
}

// GuidanceCounts is the item-12.3 summary of projects and students guided.
type GuidanceCounts struct {
	NumberOfProjectsGuided Flag `json:"number_of_projects_guided"`
	NumberOfStudentsGuided Flag `json:"number_of_students_guided"`
}

// ProjectGuidance is the combined item 12.3 and 12.4 payload.
type ProjectGuidance struct {
	Counts  GuidanceCounts    `json:"12.3"`
	Entries []json.RawMessage `json:"12.4"`
}

// ScoreProjectGuidance scores items 12.3 and 12.4: 10 when both counts are
// reported, plus 10 per 12.4 entry.
func ScoreProjectGuidance(p ProjectGuidance) Result {
	var score float64
	if p.Counts.NumberOfProjectsGuided.Bool() && p.Counts.NumberOfStudentsGuided.Bool() {
		score = guidanceCountPoints
	}
	score += float64(len(p.Entries)) * guidanceEntryPoints
	return Result{Score: Cap(score, guidanceCeiling)}
}
