package match_test

import (
	"errors"
	"testing"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/match"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func existing(id, email, dob, first string, companyID int) model.Employee {
	return model.Employee{
		DocumentID: id,
		Email:      email,
		DOB:        dob,
		FirstName:  first,
		CompanyID:  companyID,
	}
}

func TestEmailCompanyDOBOrName(t *testing.T) {
	Convey("Given the default matcher", t, func() {
		m := match.New()
		candidate := model.Candidate{
			Email:     "a@x.com",
			DOB:       "1990-01-01",
			FirstName: "Jo",
			CompanyID: 3,
			RowNum:    1,
		}

		Convey("When email, company and dob all agree", func() {
			snapshot := []model.Employee{existing("d1", "a@x.com", "1990-01-01", "Joanna", 3)}
			got, err := m.Match(candidate, snapshot)

			Convey("Then exactly one record matches", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].DocumentID, ShouldEqual, "d1")
			})
		})

		Convey("When dob differs but the first name agrees", func() {
			snapshot := []model.Employee{existing("d1", "a@x.com", "1990-02-02", "jo", 3)}
			got, err := m.Match(candidate, snapshot)

			Convey("Then the DOB typo is tolerated", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
			})
		})

		Convey("When dob and name both differ", func() {
			snapshot := []model.Employee{existing("d1", "a@x.com", "1990-02-02", "Sam", 3)}
			got, err := m.Match(candidate, snapshot)

			Convey("Then nothing matches", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the company differs", func() {
			snapshot := []model.Employee{existing("d1", "a@x.com", "1990-01-01", "Jo", 9)}
			got, err := m.Match(candidate, snapshot)

			Convey("Then the anchor holds and nothing matches", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When two existing records share the weak criteria", func() {
			snapshot := []model.Employee{
				existing("d1", "a@x.com", "1991-01-01", "Jo", 3),
				existing("d2", "a@x.com", "1992-02-02", "Jo", 3),
			}
			_, err := m.Match(candidate, snapshot)

			Convey("Then the batch fails rather than guessing", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, match.ErrDuplicateData), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 1")
			})
		})
	})
}

func TestUsernameExactPolicy(t *testing.T) {
	Convey("Given a matcher with the legacy username policy", t, func() {
		m := match.New(match.WithPolicy(match.UsernameExact))
		candidate := model.Candidate{Username: "jdoe", CompanyID: 3}

		Convey("When an existing record shares the username and company", func() {
			snapshot := []model.Employee{{DocumentID: "d1", Username: "JDoe", CompanyID: 3}}
			got, err := m.Match(candidate, snapshot)

			Convey("Then it matches case-insensitively", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
			})
		})

		Convey("When the candidate has no username", func() {
			got, err := m.Match(model.Candidate{CompanyID: 3}, []model.Employee{{Username: "", CompanyID: 3}})

			Convey("Then an empty username never matches", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})
	})
}
