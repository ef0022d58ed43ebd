package main

import (
	"context"
	"os"
	"testing"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/config"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestStartupWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("MPA_ADDR", ":8080")
			_ = os.Setenv("MPA_MAX_FILE_SIZE_MB", "10")
			defer func() {
				_ = os.Unsetenv("MPA_ADDR")
				_ = os.Unsetenv("MPA_MAX_FILE_SIZE_MB")
			}()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.MaxFileSizeMB, convey.ShouldEqual, 10)
		})

		convey.Convey("When mapping the configured match policy", func() {
			c := model.Candidate{Username: "jo.b", CompanyID: 1}
			e := model.Employee{Username: "JO.B", CompanyID: 1}

			convey.So(matchPolicy(config.MatchPolicyUsernameExact)(c, e), convey.ShouldBeTrue)
			convey.So(matchPolicy(config.MatchPolicyEmailCompanyDOBOrName)(c, e), convey.ShouldBeFalse)
		})

		convey.Convey("When seeding the store", func() {
			store := seedStore()
			ctx := context.Background()

			convey.So(store.ListCompanies(ctx), convey.ShouldHaveLength, 2)
			convey.So(store.ListPlans(ctx), convey.ShouldHaveLength, 3)
			convey.So(store.CountEmployees(ctx), convey.ShouldEqual, 2)
			for _, emp := range store.ListEmployees(ctx, 1) {
				convey.So(emp.DocumentID, convey.ShouldNotBeEmpty)
			}
		})
	})
}
