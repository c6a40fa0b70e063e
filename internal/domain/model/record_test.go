package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rosterpay/rosterpay/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validRecord() model.Record {
	return model.Record{
		Name:                "Mateo Ferreyra",
		Nationality:         "Argentina",
		Club:                "Atletico Madrid",
		Competition:         model.LaLiga,
		Age:                 27,
		WeeklySalaryPrimary: 120000,
		WeeklySalaryUSD:     130000,
		YearlySalaryUSD:     6760000,
		YearlySalaryPrimary: 6240000,
		YearlyBonusPrimary:  500000,
		PerMinuteUSD:        12.86,
		GrossRemainingUSD:   20280000,
		YearsRemaining:      3,
		SignedDate:          time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate:      time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordValidate(t *testing.T) {
	Convey("Given a fully populated record", t, func() {
		r := validRecord()

		Convey("Then it validates cleanly", func() {
			So(r.Validate(), ShouldBeNil)
		})

		Convey("When the name is empty", func() {
			r.Name = ""
			err := r.Validate()

			Convey("Then validation fails with the sentinel kind", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When the competition is not in the enum", func() {
			r.Competition = "Super League"
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When the age is out of range", func() {
			r.Age = 14
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)

			r.Age = 45
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When a salary field is negative", func() {
			r.YearlySalaryUSD = -1
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When years remaining exceeds the contract ceiling", func() {
			r.YearsRemaining = 8
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When a contract date falls outside 2020-2030", func() {
			r.SignedDate = time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When the expiration precedes the signing", func() {
			r.ExpirationDate = r.SignedDate.AddDate(-1, 0, 0)
			So(errors.Is(r.Validate(), model.ErrValidation), ShouldBeTrue)
		})
	})

	Convey("Given the competition enum", t, func() {
		Convey("Then it has exactly eight members", func() {
			So(len(model.Competitions()), ShouldEqual, 8)
		})
	})
}
