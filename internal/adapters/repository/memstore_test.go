package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/repository"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func seededStore() *repository.MemStore {
	return repository.NewMemStore(
		repository.WithCompanies([]model.Company{{ID: 3, Name: "Acme Mutual"}}),
		repository.WithPlans([]model.Plan{{ID: 11, Name: "Gold"}, {ID: 12, Name: "Silver"}}),
		repository.WithEmployees([]model.Employee{
			{Email: "a@b.com", DOB: "1990-01-01", FirstName: "Jo", CompanyID: 3, IsActive: true},
			{Email: "b@b.com", DOB: "1985-05-05", FirstName: "Sam", CompanyID: 3, IsActive: true},
		}),
	)
}

func TestMemStoreReads(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		s := seededStore()

		Convey("Then companies, plans and employees are readable", func() {
			So(s.ListCompanies(ctx), ShouldHaveLength, 1)
			So(s.ListPlans(ctx), ShouldHaveLength, 2)

			emps := s.ListEmployees(ctx, 3)
			So(emps, ShouldHaveLength, 2)
			So(emps[0].Email, ShouldEqual, "a@b.com")
			So(emps[0].DocumentID, ShouldNotBeEmpty)
			So(s.CountEmployees(ctx), ShouldEqual, 2)
		})

		Convey("Then an unknown company id is an error", func() {
			_, err := s.GetCompany(ctx, 99)
			So(errors.Is(err, repository.ErrCompanyNotFound), ShouldBeTrue)
		})

		Convey("Then an unknown company has no employees", func() {
			So(s.ListEmployees(ctx, 99), ShouldBeEmpty)
		})
	})
}

func TestMemStoreWrites(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		s := seededStore()

		Convey("When adding a new employee", func() {
			added, err := s.AddEmployee(ctx, model.Employee{Email: "new@co.com", CompanyID: 3})

			Convey("Then a document id is minted", func() {
				So(err, ShouldBeNil)
				So(added.DocumentID, ShouldNotBeEmpty)
				So(s.CountEmployees(ctx), ShouldEqual, 3)
			})

			Convey("And adding with a preset document id is rejected", func() {
				_, err := s.AddEmployee(ctx, model.Employee{DocumentID: "preset", CompanyID: 3})
				So(errors.Is(err, repository.ErrInvalidRecord), ShouldBeTrue)
			})
		})

		Convey("When updating an existing employee", func() {
			emp := s.ListEmployees(ctx, 3)[0]
			emp.Phone = "555-0000"

			updated, err := s.UpdateEmployee(ctx, emp)

			Convey("Then the new value is visible on the next read", func() {
				So(err, ShouldBeNil)
				So(updated.Phone, ShouldEqual, "555-0000")
				So(s.ListEmployees(ctx, 3)[0].Phone, ShouldEqual, "555-0000")
			})

			Convey("And company reassignment is rejected", func() {
				emp.CompanyID = 9
				_, err := s.UpdateEmployee(ctx, emp)
				So(errors.Is(err, repository.ErrInvalidRecord), ShouldBeTrue)
			})
		})

		Convey("When toggling an employee", func() {
			emp := s.ListEmployees(ctx, 3)[0]
			So(emp.IsActive, ShouldBeTrue)

			toggled, err := s.ToggleEmployee(ctx, emp.DocumentID)

			Convey("Then the status flips server-side", func() {
				So(err, ShouldBeNil)
				So(toggled.IsActive, ShouldBeFalse)

				back, err := s.ToggleEmployee(ctx, emp.DocumentID)
				So(err, ShouldBeNil)
				So(back.IsActive, ShouldBeTrue)
			})
		})

		Convey("When the document id is unknown", func() {
			_, err := s.UpdateEmployee(ctx, model.Employee{DocumentID: "nope", CompanyID: 3})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = s.ToggleEmployee(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
