package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	repository "github.com/tashifkhan/faculty-appraisal-system/internal/adapters/repository"
	service "github.com/tashifkhan/faculty-appraisal-system/internal/app"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/scoring"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var errStoreDown = errors.New("store down")

// failingStore fails every call with errStoreDown.
type failingStore struct{}

func (failingStore) UpsertFields(context.Context, string, map[string]json.RawMessage) error {
	return errStoreDown
}

func (failingStore) ReadOne(context.Context, string, ...string) (repository.Document, error) {
	return repository.Document{}, errStoreDown
}

// recordingStore counts writes on top of a memory store.
type recordingStore struct {
	*repository.MemoryStore
	mu     sync.Mutex
	writes []map[string]json.RawMessage
}

func (r *recordingStore) UpsertFields(ctx context.Context, userID string, fields map[string]json.RawMessage) error {
	r.mu.Lock()
	r.writes = append(r.writes, fields)
	r.mu.Unlock()
	return r.MemoryStore.UpsertFields(ctx, userID, fields)
}

func compact(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		t.Fatalf("compact: %v", err)
	}
	return buf.String()
}

var samplePayloads = map[model.Section]string{
	model.SectionGeneral:         `{"name": "A. Kumar", "department": "CSE"}`,
	model.SectionEvents:          `[{"status": "attended", "type": "course", "is_chief_organizer": false, "start_date": "01-07-2024", "end_date": "10-07-2024"}, {"status": "attended", "type": "seminar", "is_chief_organizer": false, "start_date": "", "end_date": ""}]`,
	model.SectionTeachingLoad:    `[{"course_code": "CS101", "scheduled_hours": 40, "engaged_hours": 35}]`,
	model.SectionProjectGuidance: `{"12.3": {"number_of_projects_guided": 3, "number_of_students_guided": 9}, "12.4": [{"title": "x"}]}`,
	model.SectionActivities:      `{"A": [{"played_lead_role": true}], "E": [{"points": 5}]}`,
	model.SectionPublications:    `[{"pub_type": "IJ", "indexed": true, "impact_factor": 3.2, "user_author_type": "First/Principal Author", "other_authors": []}]`,
	model.SectionBooks:           `[{"publisher_type": "IP", "is_chapter": false, "user_author_type": "First/Principal Author", "other_authors": [{"name": "B", "author_type": "Other"}]}]`,
	model.SectionProjects:        `[{"is_hss": false, "amount_sanctioned": 5, "is_consultancy": true, "user_author_type": "Other", "other_authors": []}]`,
	model.SectionGuidedDegrees:   `[{"degree": "Ph.D.", "status": "ongoing", "months_ongoing": 3}, {"degree": "M.Tech.", "status": "awarded"}]`,
	model.SectionPositions:       `[{"position_type": "Chairmanship"}]`,
	model.SectionAwards:          `{"self": [{"points": 10}], "national": [{}]}`,
}

var expectedScores = map[model.Section]float64{
	model.SectionGeneral:         0,
	model.SectionEvents:          5,
	model.SectionTeachingLoad:    20,
	model.SectionProjectGuidance: 20,
	model.SectionActivities:      13,
	model.SectionPublications:    35,
	model.SectionBooks:           30,
	model.SectionProjects:        7.5,
	model.SectionGuidedDegrees:   5,
	model.SectionPositions:       10,
	model.SectionAwards:          40,
}

func TestService_IngestSection(t *testing.T) {
	Convey("Given a service over a memory store", t, func() {
		ctx := context.Background()
		store := &recordingStore{MemoryStore: repository.NewMemoryStore()}
		svc := service.New(store)

		Convey("When every section is ingested and read back", func() {
			for _, section := range model.AllSections() {
				payload := json.RawMessage(samplePayloads[section])
				res, err := svc.IngestSection(ctx, section, "faculty-1", payload, service.WithSemester("odd"))
				So(err, ShouldBeNil)
				So(res.Score, ShouldAlmostEqual, expectedScores[section], 1e-9)

				rec, err := svc.GetBySection(ctx, "faculty-1", section.Key("odd"))
				So(err, ShouldBeNil)
				So(compact(t, rec.Data), ShouldEqual, compact(t, payload))
				So(rec.Score, ShouldEqual, res.Score)
			}

			Convey("Then each write touched only its own section key", func() {
				So(len(store.writes), ShouldEqual, len(model.AllSections()))
				for _, w := range store.writes {
					So(len(w), ShouldEqual, 1)
				}
				doc, err := store.ReadOne(ctx, "faculty-1")
				So(err, ShouldBeNil)
				So(len(doc.Sections), ShouldEqual, len(model.AllSections()))
				_, ok := doc.Sections["12.1_odd"]
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When a section has undetermined entries", func() {
			res, err := svc.IngestSection(ctx, model.SectionGuidedDegrees, "faculty-2",
				json.RawMessage(samplePayloads[model.SectionGuidedDegrees]))

			Convey("Then they score zero and are listed", func() {
				So(err, ShouldBeNil)
				So(res.Undetermined, ShouldResemble, []int{0})
				So(res.Breakdown.Entries[0].Undetermined, ShouldNotBeEmpty)
				So(res.Breakdown.Entries[1].Score, ShouldEqual, 5.0)
			})
		})

		Convey("When the same section is ingested twice", func() {
			payload := json.RawMessage(samplePayloads[model.SectionActivities])
			first, err1 := svc.IngestSection(ctx, model.SectionActivities, "faculty-3", payload)
			second, err2 := svc.IngestSection(ctx, model.SectionActivities, "faculty-3", payload)

			Convey("Then the results are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
				So(first.Breakdown.Parts, ShouldResemble, map[string]float64{"A": 10, "E": 3})
			})
		})

		Convey("When 12.1 is submitted for two semesters", func() {
			_, err := svc.IngestSection(ctx, model.SectionTeachingLoad, "faculty-4", json.RawMessage(`[{"scheduled_hours": 10, "engaged_hours": 10}]`), service.WithSemester("odd"))
			So(err, ShouldBeNil)
			_, err = svc.IngestSection(ctx, model.SectionTeachingLoad, "faculty-4", json.RawMessage(`[{"scheduled_hours": 10, "engaged_hours": 8}]`), service.WithSemester("even"))
			So(err, ShouldBeNil)

			Convey("Then each semester is stored under its own key", func() {
				odd, err := svc.GetBySection(ctx, "faculty-4", "12.1_odd")
				So(err, ShouldBeNil)
				So(odd.Score, ShouldEqual, 25.0)
				even, err := svc.GetBySection(ctx, "faculty-4", "12.1_even")
				So(err, ShouldBeNil)
				So(even.Score, ShouldEqual, 15.0)
			})
		})
	})
}

func TestService_IngestErrors(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		store := &recordingStore{MemoryStore: repository.NewMemoryStore()}
		svc := service.New(store)

		Convey("When user_id is missing", func() {
			_, err := svc.IngestSection(ctx, model.SectionPositions, "  ", json.RawMessage(`[]`))
			So(errors.Is(err, service.ErrMissingUserID), ShouldBeTrue)
			So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
			So(service.IsInputError(err), ShouldBeTrue)
			So(store.writes, ShouldBeEmpty)
		})

		Convey("When 12.1 has no semester", func() {
			_, err := svc.IngestSection(ctx, model.SectionTeachingLoad, "u", json.RawMessage(`[]`))
			So(errors.Is(err, service.ErrMissingSemester), ShouldBeTrue)
		})

		Convey("When a 13 letter is unknown", func() {
			_, err := svc.IngestSection(ctx, model.SectionActivities, "u", json.RawMessage(`{"Q": []}`))
			So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
			So(store.writes, ShouldBeEmpty)
		})

		Convey("When an event date is malformed", func() {
			_, err := svc.IngestSection(ctx, model.SectionEvents, "u",
				json.RawMessage(`[{"status": "attended", "type": "course", "start_date": "2024/01/01", "end_date": "02-01-2024"}]`))
			So(errors.Is(err, scoring.ErrMalformedDate), ShouldBeTrue)
			So(service.IsInputError(err), ShouldBeTrue)
		})

		Convey("When the section is unknown", func() {
			_, err := svc.IngestSection(ctx, model.Section("42"), "u", json.RawMessage(`[]`))
			So(errors.Is(err, model.ErrUnknownSection), ShouldBeTrue)
		})

		Convey("When the payload is not JSON", func() {
			_, err := svc.IngestSection(ctx, model.SectionGeneral, "u", json.RawMessage(`{oops`))
			So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Given a service whose store fails", t, func() {
		svc := service.New(failingStore{}, service.WithLogger(logger.Nop()))

		Convey("When ingesting", func() {
			_, err := svc.IngestSection(context.Background(), model.SectionPositions, "u", json.RawMessage(`[]`))

			Convey("Then the storage error is returned unchanged", func() {
				So(err, ShouldEqual, errStoreDown)
				So(service.IsInputError(err), ShouldBeFalse)
			})
		})

		Convey("When reading", func() {
			_, err := svc.GetBySection(context.Background(), "u", "18")
			So(err, ShouldEqual, errStoreDown)
		})
	})
}

func TestService_GetBySection(t *testing.T) {
	Convey("Given a service with one stored section", t, func() {
		ctx := context.Background()
		svc := service.New(repository.NewMemoryStore())
		_, err := svc.IngestSection(ctx, model.SectionPositions, "u1", json.RawMessage(`[{"position_type": "member"}]`))
		So(err, ShouldBeNil)

		Convey("When reading an absent section of a known user", func() {
			_, err := svc.GetBySection(ctx, "u1", "19")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When reading an unknown user", func() {
			_, err := svc.GetBySection(ctx, "u2", "18")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the key is invalid", func() {
			_, err := svc.GetBySection(ctx, "u1", "12.1")
			So(errors.Is(err, model.ErrUnknownSection), ShouldBeTrue)
		})

		Convey("When user_id is missing", func() {
			_, err := svc.GetBySection(ctx, "", "18")
			So(errors.Is(err, service.ErrMissingUserID), ShouldBeTrue)
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given the pure evaluator", t, func() {
		Convey("When section 1-10 is evaluated", func() {
			res, err := service.Evaluate(model.SectionGeneral, json.RawMessage(`{"any": "thing"}`))
			So(err, ShouldBeNil)
			So(res.Score, ShouldEqual, 0.0)
			So(res.Breakdown, ShouldBeNil)
		})

		Convey("When item 11 seminars are evaluated", func() {
			res, err := service.Evaluate(model.SectionEvents, json.RawMessage(`[
				{"status": "attended", "type": "seminar"},
				{"status": "attended", "type": "seminar"},
				{"status": "attended", "type": "workshop"}
			]`))
			So(err, ShouldBeNil)
			So(res.Score, ShouldEqual, 5.0)
			So(len(res.Breakdown.Entries), ShouldEqual, 3)
		})
	})
}
