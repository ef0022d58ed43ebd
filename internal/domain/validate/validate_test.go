package validate_test

import (
	"errors"
	"testing"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/decode"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func row(num int, fields map[string]any) decode.Row {
	return decode.Row{Num: num, Fields: fields}
}

func TestValidate(t *testing.T) {
	Convey("Given a validator with default required columns", t, func() {
		v := validate.New()

		Convey("When every row carries email and dob", func() {
			rows := []decode.Row{
				row(1, map[string]any{"email": "a@x.com", "dob": "1990-01-01"}),
				row(2, map[string]any{"email": "b@y.com", "dob": "1985-06-05"}),
			}

			Convey("Then validation passes", func() {
				So(v.Validate(rows), ShouldBeNil)
			})
		})

		Convey("When one row among many is missing email", func() {
			rows := make([]decode.Row, 0, 101)
			for i := 1; i <= 100; i++ {
				rows = append(rows, row(i, map[string]any{"email": "a@x.com", "dob": "1990-01-01"}))
			}
			rows = append(rows, row(101, map[string]any{"email": "", "dob": "1990-01-01"}))

			err := v.Validate(rows)

			Convey("Then the whole batch is rejected", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, validate.ErrValidation), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 101")
				So(err.Error(), ShouldContainSubstring, "email")
			})
		})

		Convey("When the batch is empty", func() {
			err := v.Validate(nil)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, validate.ErrValidation), ShouldBeTrue)
			})
		})
	})

	Convey("Given a validator with a custom required set", t, func() {
		v := validate.New(validate.WithRequiredColumns([]string{"email", "dob", "planName"}))

		Convey("When a row is missing the extra column", func() {
			err := v.Validate([]decode.Row{
				row(1, map[string]any{"email": "a@x.com", "dob": "1990-01-01"}),
			})

			Convey("Then it is rejected naming the column", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "planName")
			})
		})
	})
}
