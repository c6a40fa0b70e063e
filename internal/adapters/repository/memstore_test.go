package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rosterpay/rosterpay/internal/adapters/repository"
	"github.com/rosterpay/rosterpay/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	records := []model.Record{
		{Name: "A", Competition: model.PremierLeague, Age: 24, YearlySalaryUSD: 100},
		{Name: "B", Competition: model.PremierLeague, Age: 31, YearlySalaryUSD: 300},
		{Name: "C", Competition: model.SerieA, Age: 28, YearlySalaryUSD: 50},
	}

	Convey("Given a bulk-loaded store", t, func() {
		store, err := repository.NewMemStore(ctx, records)
		So(err, ShouldBeNil)

		Convey("When looking up a present name", func() {
			r, err := store.Get(ctx, "B")

			Convey("Then the exact stored record comes back", func() {
				So(err, ShouldBeNil)
				So(r, ShouldResemble, records[1])
			})
		})

		Convey("When looking up an absent name", func() {
			_, err := store.Get(ctx, "Nobody")

			Convey("Then it fails with ErrNotFound", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When iterating all records", func() {
			var names []string
			for r := range store.All() {
				names = append(names, r.Name)
			}

			Convey("Then insertion order is preserved", func() {
				So(names, ShouldResemble, []string{"A", "B", "C"})
			})

			Convey("And the sequence restarts from the beginning", func() {
				var again []string
				for r := range store.All() {
					again = append(again, r.Name)
				}
				So(again, ShouldResemble, names)
			})

			Convey("And an early break does not exhaust the sequence", func() {
				var first string
				for r := range store.All() {
					first = r.Name
					break
				}
				So(first, ShouldEqual, "A")
			})
		})

		Convey("When filtering by competition", func() {
			m := store.FilterByCompetition(ctx, model.PremierLeague)

			Convey("Then only matching records are returned, keyed by name", func() {
				So(len(m), ShouldEqual, 2)
				So(m["A"].YearlySalaryUSD, ShouldEqual, 100)
				So(m["B"].YearlySalaryUSD, ShouldEqual, 300)
			})

			Convey("And mutating the result does not touch store state", func() {
				delete(m, "A")
				So(store.Count(ctx), ShouldEqual, 3)
				again := store.FilterByCompetition(ctx, model.PremierLeague)
				So(len(again), ShouldEqual, 2)
			})

			Convey("And an unknown competition yields an empty map", func() {
				So(store.FilterByCompetition(ctx, model.MLS), ShouldBeEmpty)
			})
		})

		Convey("When counting", func() {
			So(store.Count(ctx), ShouldEqual, 3)
		})
	})

	Convey("Given input with a repeated name", t, func() {
		dup := append(records, model.Record{Name: "A", Competition: model.MLS, Age: 20})

		Convey("When constructing the store", func() {
			_, err := repository.NewMemStore(ctx, dup)

			Convey("Then construction fails with ErrDuplicate", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
			})
		})
	})

	Convey("Given no records at all", t, func() {
		store, err := repository.NewMemStore(ctx, nil)
		So(err, ShouldBeNil)

		Convey("Then the store is empty but usable", func() {
			So(store.Count(ctx), ShouldEqual, 0)
			for range store.All() {
				t.Fatal("unexpected record")
			}
		})
	})
}
