package types_test

import (
	"encoding/json"
	"testing"

	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	types "github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubmitRequest(t *testing.T) {
	Convey("Given a submission body", t, func() {
		body := `{"user_id": "f-1", "semester": "odd", "data": [{"scheduled_hours": 40}]}`

		Convey("When decoding it", func() {
			var req types.SubmitRequest
			err := json.Unmarshal([]byte(body), &req)

			Convey("Then the payload is kept verbatim", func() {
				So(err, ShouldBeNil)
				So(req.UserID, ShouldEqual, "f-1")
				So(req.Semester, ShouldEqual, "odd")
				So(string(req.Data), ShouldEqual, `[{"scheduled_hours": 40}]`)
			})
		})
	})
}

func TestScoreResult(t *testing.T) {
	Convey("Given score results", t, func() {
		Convey("When there is no breakdown", func() {
			b, err := json.Marshal(types.ScoreResult{Score: 25})
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"score":25}`)
		})

		Convey("When some entries are undetermined", func() {
			res := types.ScoreResult{
				Score: 10,
				Breakdown: &model.Breakdown{Entries: []model.EntryScore{
					{Score: 10},
					{Undetermined: "phd ongoing for six months or less"},
				}},
				Undetermined: []int{1},
			}
			b, err := json.Marshal(types.SubmitResponse{Message: "ok", Result: res})

			Convey("Then they are listed alongside the breakdown", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"undetermined":[1]`)
				So(string(b), ShouldContainSubstring, `"undetermined":"phd ongoing for six months or less"`)
			})
		})
	})
}
