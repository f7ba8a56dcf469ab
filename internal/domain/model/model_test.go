package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseSection(t *testing.T) {
	convey.Convey("Given section ids", t, func() {
		convey.Convey("When every known id is parsed", func() {
			for _, s := range model.AllSections() {
				got, err := model.ParseSection(s.String())
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, s)
			}
		})

		convey.Convey("When the id is unknown", func() {
			_, err := model.ParseSection("12.2")
			convey.So(errors.Is(err, model.ErrUnknownSection), convey.ShouldBeTrue)
		})

		convey.Convey("Then only 1-10 is unscored and only 12.1 is per semester", func() {
			for _, s := range model.AllSections() {
				convey.So(s.Scored(), convey.ShouldEqual, s != model.SectionGeneral)
				convey.So(s.PerSemester(), convey.ShouldEqual, s == model.SectionTeachingLoad)
			}
		})
	})
}

func TestSectionKeys(t *testing.T) {
	convey.Convey("Given storage keys", t, func() {
		convey.So(model.SectionTeachingLoad.Key("odd"), convey.ShouldEqual, "12.1_odd")
		convey.So(model.SectionProjectGuidance.Key("odd"), convey.ShouldEqual, "12.3-12.4")
		convey.So(model.SectionGeneral.Key(""), convey.ShouldEqual, "1-10")

		convey.Convey("When a per-semester key is parsed", func() {
			sec, sem, err := model.ParseKey("12.1_even")
			convey.So(err, convey.ShouldBeNil)
			convey.So(sec, convey.ShouldEqual, model.SectionTeachingLoad)
			convey.So(sem, convey.ShouldEqual, "even")
		})

		convey.Convey("When a plain key is parsed", func() {
			sec, sem, err := model.ParseKey("13")
			convey.So(err, convey.ShouldBeNil)
			convey.So(sec, convey.ShouldEqual, model.SectionActivities)
			convey.So(sem, convey.ShouldBeEmpty)
		})

		convey.Convey("When the key lacks a semester or is unknown", func() {
			for _, k := range []string{"12.1", "12.1_", "20", ""} {
				_, _, err := model.ParseKey(k)
				convey.So(errors.Is(err, model.ErrUnknownSection), convey.ShouldBeTrue)
			}
		})
	})
}

func TestDocumentSection(t *testing.T) {
	convey.Convey("Given a document with one stored section", t, func() {
		rec := model.SectionRecord{
			Data:      json.RawMessage(`[{"position_type":"chairmanship"}]`),
			Score:     10,
			Breakdown: &model.Breakdown{Entries: []model.EntryScore{{Score: 10}}},
		}
		raw, err := json.Marshal(rec)
		convey.So(err, convey.ShouldBeNil)
		doc := model.Document{UserID: "u1", Sections: map[string]json.RawMessage{"18": raw}}

		convey.Convey("When the section is read", func() {
			got, ok, err := doc.Section("18")

			convey.Convey("Then the record comes back intact", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.Score, convey.ShouldEqual, 10.0)
				convey.So(string(got.Data), convey.ShouldEqual, string(rec.Data))
				convey.So(got.Breakdown.Entries, convey.ShouldResemble, rec.Breakdown.Entries)
			})
		})

		convey.Convey("When an absent section is read", func() {
			_, ok, err := doc.Section("19")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When an undetermined entry is marshalled", func() {
			b, _ := json.Marshal(model.EntryScore{Undetermined: "dates missing"})
			convey.So(string(b), convey.ShouldEqual, `{"score":0,"undetermined":"dates missing"}`)
		})
	})
}
