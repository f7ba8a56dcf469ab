package scoring

import (
	"strings"
	"time"
)

// DateLayout is the day-month-year format of event dates. Single-digit days
// and months are accepted on input.
const DateLayout = "02-01-2006"

const dateParseLayout = "2-1-2006"

const (
	seminarAttendancePoints = 2
	seminarBonusCeiling     = 5
	chiefOrganizerBonus     = 5
)

// Event is one item-11 entry: a course, program, seminar, conference or
// workshop the faculty member attended or organized.
type Event struct {
	Status           string `json:"status"`
	Type             string `json:"type"`
	IsChiefOrganizer Flag   `json:"is_chief_organizer"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
}

// EventScore is the outcome of one event. SeminarAttendance entries are kept
// out of the running total and feed the seminar bonus instead.
type EventScore struct {
	Outcome
	SeminarAttendance bool
}

// ScoreEvent scores a single event.
func ScoreEvent(e Event) (EventScore, error) {
	status := normalize(e.Status)
	if status != "attended" && status != "organized" {
		return EventScore{}, invalidf("event status %q", e.Status)
	}

	switch normalize(e.Type) {
	case "course", "program":
		days, known, err := e.durationDays()
		if err != nil {
			return EventScore{}, err
		}
		if !known {
			return EventScore{Outcome: Undetermined("event dates missing")}, nil
		}
		if status == "attended" {
			return EventScore{Outcome: Scored(courseAttended(days))}, nil
		}
		return EventScore{Outcome: Scored(courseOrganized(days) + e.chiefBonus())}, nil

	case "seminar", "conference", "workshop":
		if status == "attended" {
			return EventScore{Outcome: Scored(seminarAttendancePoints), SeminarAttendance: true}, nil
		}
		days, known, err := e.durationDays()
		if err != nil {
			return EventScore{}, err
		}
		if !known {
			return EventScore{Outcome: Undetermined("event dates missing")}, nil
		}
		return EventScore{Outcome: seminarOrganized(days).add(e.chiefBonus())}, nil

	default:
		return EventScore{}, invalidf("event type %q", e.Type)
	}
}

// ScoreEvents scores item 11. Seminar attendances add min(count*2, 5) once.
func ScoreEvents(events []Event) (Result, error) {
	res := Result{Entries: make([]Outcome, 0, len(events))}
	seminars := 0
	for _, e := range events {
		s, err := ScoreEvent(e)
		if err != nil {
			return Result{}, err
		}
		res.Entries = append(res.Entries, s.Outcome)
		if s.SeminarAttendance {
			seminars++
			continue
		}
		res.Score += s.Points()
	}
	res.Score += SeminarBonus(seminars)
	return res, nil
}

// SeminarBonus is the points awarded for count seminar attendances.
func SeminarBonus(count int) float64 {
	return Cap(float64(count*seminarAttendancePoints), seminarBonusCeiling)
}

func courseAttended(days int) float64 {
	switch {
	case days < 7:
		return 1
	case days < 14:
		return 3
	default:
		return 5
	}
}

func courseOrganized(days int) float64 {
	switch {
	case days < 7:
		return 5
	case days < 14:
		return 10
	default:
		return 20
	}
}

func seminarOrganized(days int) Outcome {
	switch {
	case days == 1:
		return Scored(5)
	case days == 2 || days == 3:
		return Scored(10)
	case days > 3:
		return Scored(20)
	default:
		return Undetermined("event ends before it starts")
	}
}

func (e Event) chiefBonus() float64 {
	if e.IsChiefOrganizer.Bool() {
		return chiefOrganizerBonus
	}
	return 0
}

// durationDays returns the inclusive day count between the event dates.
// known is false when either date is absent.
func (e Event) durationDays() (days int, known bool, err error) {
	if e.StartDate == "" || e.EndDate == "" {
		return 0, false, nil
	}
	start, err := parseDate("start_date", e.StartDate)
	if err != nil {
		return 0, false, err
	}
	end, err := parseDate("end_date", e.EndDate)
	if err != nil {
		return 0, false, err
	}
	return int(end.Sub(start).Hours()/24) + 1, true, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateParseLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &MalformedDateError{Field: field, Value: value, Err: err}
	}
	return t, nil
}
