package scoring_test

import (
	"errors"
	"testing"

	scoring "github.com/tashifkhan/faculty-appraisal-system/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func event(status, typ string, chief bool, start, end string) scoring.Event {
	return scoring.Event{
		Status:           status,
		Type:             typ,
		IsChiefOrganizer: scoring.Flag(chief),
		StartDate:        start,
		EndDate:          end,
	}
}

func TestScoreEvent(t *testing.T) {
	Convey("Given course and program events", t, func() {
		cases := []struct {
			name  string
			ev    scoring.Event
			score float64
		}{
			{"attended 1 day", event("attended", "course", false, "01-01-2024", "01-01-2024"), 1},
			{"attended 6 days", event("Attended", "Program", false, "01-01-2024", "06-01-2024"), 1},
			{"attended 7 days", event("attended", "course", false, "01-01-2024", "07-01-2024"), 3},
			{"attended 13 days", event("attended", "course", false, "01-01-2024", "13-01-2024"), 3},
			{"attended 14 days", event("attended", "course", false, "01-01-2024", "14-01-2024"), 5},
			{"organized 3 days", event("organized", "course", false, "01-01-2024", "03-01-2024"), 5},
			{"organized 10 days", event("organized", "program", false, "01-01-2024", "10-01-2024"), 10},
			{"organized 30 days", event("organized", "course", false, "01-01-2024", "30-01-2024"), 20},
			{"organized chief 30 days", event("organized", "course", true, "01-01-2024", "30-01-2024"), 25},
			{"single digit dates", event("attended", "course", false, "1-1-2024", "9-1-2024"), 3},
		}
		for _, c := range cases {
			Convey("When scoring "+c.name, func() {
				s, err := scoring.ScoreEvent(c.ev)
				So(err, ShouldBeNil)
				v, ok := s.Value()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, c.score)
				So(s.SeminarAttendance, ShouldBeFalse)
			})
		}
	})

	Convey("Given seminar, conference and workshop events", t, func() {
		Convey("When attended", func() {
			s, err := scoring.ScoreEvent(event("attended", "workshop", false, "", ""))

			Convey("Then it scores 2 and is marked as a seminar attendance", func() {
				So(err, ShouldBeNil)
				So(s.Points(), ShouldEqual, 2.0)
				So(s.SeminarAttendance, ShouldBeTrue)
			})
		})

		Convey("When organized", func() {
			oneDay, _ := scoring.ScoreEvent(event("organized", "seminar", false, "05-03-2024", "05-03-2024"))
			threeDays, _ := scoring.ScoreEvent(event("organized", "conference", false, "05-03-2024", "07-03-2024"))
			fourDays, _ := scoring.ScoreEvent(event("organized", "workshop", true, "05-03-2024", "08-03-2024"))

			Convey("Then the duration tiers apply with the chief bonus", func() {
				So(oneDay.Points(), ShouldEqual, 5.0)
				So(threeDays.Points(), ShouldEqual, 10.0)
				So(fourDays.Points(), ShouldEqual, 25.0)
			})
		})

		Convey("When organized with the end before the start", func() {
			s, err := scoring.ScoreEvent(event("organized", "seminar", true, "05-03-2024", "01-03-2024"))

			Convey("Then the outcome is undetermined", func() {
				So(err, ShouldBeNil)
				_, ok := s.Value()
				So(ok, ShouldBeFalse)
				So(s.Reason(), ShouldNotBeEmpty)
				So(s.Points(), ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given events that cannot be scored", t, func() {
		Convey("When dates are missing", func() {
			s, err := scoring.ScoreEvent(event("attended", "course", false, "", "01-01-2024"))

			Convey("Then the outcome is undetermined", func() {
				So(err, ShouldBeNil)
				_, ok := s.Value()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a date is malformed", func() {
			_, err := scoring.ScoreEvent(event("attended", "course", false, "2024-01-01", "07-01-2024"))

			Convey("Then a MalformedDateError is returned", func() {
				So(errors.Is(err, scoring.ErrMalformedDate), ShouldBeTrue)
				var mde *scoring.MalformedDateError
				So(errors.As(err, &mde), ShouldBeTrue)
				So(mde.Field, ShouldEqual, "start_date")
				So(mde.Value, ShouldEqual, "2024-01-01")
			})
		})

		Convey("When the status is unknown", func() {
			_, err := scoring.ScoreEvent(event("presented", "course", false, "01-01-2024", "01-01-2024"))
			So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the type is unknown", func() {
			_, err := scoring.ScoreEvent(event("attended", "hackathon", false, "01-01-2024", "01-01-2024"))
			So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestScoreEvents(t *testing.T) {
	Convey("Given a mix of events", t, func() {
		events := []scoring.Event{
			event("attended", "course", false, "01-01-2024", "14-01-2024"),
			event("attended", "seminar", false, "", ""),
			event("organized", "workshop", false, "01-02-2024", "02-02-2024"),
			event("attended", "conference", false, "", ""),
		}

		Convey("When scoring them together", func() {
			res, err := scoring.ScoreEvents(events)

			Convey("Then seminar attendances feed the bonus instead of the total", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 19.0)
				So(len(res.Entries), ShouldEqual, 4)
				So(res.Entries[1].Points(), ShouldEqual, 2.0)
				So(res.Undetermined(), ShouldBeEmpty)
			})
		})

		Convey("When one entry has a malformed date", func() {
			_, err := scoring.ScoreEvents(append(events, event("attended", "course", false, "bad", "bad")))

			Convey("Then the whole section is rejected", func() {
				So(errors.Is(err, scoring.ErrMalformedDate), ShouldBeTrue)
			})
		})

		Convey("When one entry is undetermined", func() {
			res, err := scoring.ScoreEvents(append(events, event("attended", "course", false, "", "")))

			Convey("Then it contributes nothing and is reported", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldEqual, 19.0)
				So(res.Undetermined(), ShouldResemble, []int{4})
			})
		})
	})
}

func TestSeminarBonus(t *testing.T) {
	Convey("The seminar bonus is min(count*2, 5) for any count", t, func() {
		for n := 0; n <= 20; n++ {
			events := make([]scoring.Event, n)
			for i := range events {
				events[i] = event("attended", "seminar", false, "", "")
			}
			res, err := scoring.ScoreEvents(events)
			So(err, ShouldBeNil)
			So(res.Score, ShouldEqual, min(float64(n*2), 5))
			So(res.Score, ShouldEqual, scoring.SeminarBonus(n))
		}
	})
}
