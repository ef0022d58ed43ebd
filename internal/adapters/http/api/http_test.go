package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/http/api"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/repository"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/app"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/types"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func planID(id int) *int { return &id }

func newTestServer() (*httptest.Server, *repository.MemStore) {
	store := repository.NewMemStore(
		repository.WithCompanies([]model.Company{{ID: 3, Name: "Acme Mutual"}}),
		repository.WithPlans([]model.Plan{{ID: 11, Name: "Gold"}}),
		repository.WithEmployees([]model.Employee{
			{
				DocumentID: "doc-1", Email: "jo@acme.com", DOB: "1990-01-01",
				FirstName: "Jo", LastName: "Brown", CompanyID: 3, PlanID: planID(11),
				IsActive: true, Address: "1 Main St", Phone: "555-0100",
			},
		}),
	)
	svc := app.New(store)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), store
}

func multipartUpload(t *testing.T, url, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestCompanyEndpoints(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	Convey("GET /company lists all companies", t, func() {
		resp, err := http.Get(ts.URL + "/company")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		var companies []types.Company
		So(json.NewDecoder(resp.Body).Decode(&companies), ShouldBeNil)
		So(companies, ShouldHaveLength, 1)
		So(companies[0].Name, ShouldEqual, "Acme Mutual")
	})

	Convey("GET /company/{id} returns the company with its roster", t, func() {
		resp, err := http.Get(ts.URL + "/company/3")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		var detail struct {
			ID        int              `json:"insurance_company_id"`
			Name      string           `json:"insurance_company_name"`
			Employees []types.UserData `json:"employees"`
		}
		So(json.NewDecoder(resp.Body).Decode(&detail), ShouldBeNil)
		So(detail.ID, ShouldEqual, 3)
		So(detail.Employees, ShouldHaveLength, 1)
		So(detail.Employees[0].DocumentID, ShouldEqual, "doc-1")
	})

	Convey("GET /company/{id} for an unknown company is a 404", t, func() {
		resp, err := http.Get(ts.URL + "/company/99")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
	})

	Convey("GET /company/{id} with a non-numeric id is a 400", t, func() {
		resp, err := http.Get(ts.URL + "/company/acme")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
	})

	Convey("GET /plans lists all plans", t, func() {
		resp, err := http.Get(ts.URL + "/plans")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		var plans []types.Plan
		So(json.NewDecoder(resp.Body).Decode(&plans), ShouldBeNil)
		So(plans, ShouldHaveLength, 1)
		So(plans[0].Name, ShouldEqual, "Gold")
	})
}

func TestReconcileEndpoint(t *testing.T) {
	csv := "email,dob,firstName,lastName,planName,isActive,address,phone,isDependant\n" +
		"jo@acme.com,1990-01-01,Jo,Brown,Gold,false,1 Main St,555-0100,false\n" +
		"new@acme.com,1999-09-09,Nia,Cole,Gold,true,9 New Rd,555-0900,false\n"

	Convey("Given a running API server", t, func() {
		ts, _ := newTestServer()
		defer ts.Close()

		Convey("POST /company/{id}/reconcile returns the proposed change-set", func() {
			resp := multipartUpload(t, ts.URL+"/company/3/reconcile", "roster.csv", csv)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var cs []types.ChangeRecord
			So(json.NewDecoder(resp.Body).Decode(&cs), ShouldBeNil)
			So(cs, ShouldHaveLength, 2)
			So(cs[0].Action, ShouldEqual, "toggle")
			So(cs[0].UserData.DocumentID, ShouldEqual, "doc-1")
			So(cs[1].Action, ShouldEqual, "add")
			So(cs[1].UserData.DocumentID, ShouldBeEmpty)
		})

		Convey("Reconciliation proposes but never writes", func() {
			resp := multipartUpload(t, ts.URL+"/company/3/reconcile", "roster.csv", csv)
			resp.Body.Close()

			detail, err := http.Get(ts.URL + "/company/3")
			So(err, ShouldBeNil)
			defer detail.Body.Close()
			var body struct {
				Employees []types.UserData `json:"employees"`
			}
			So(json.NewDecoder(detail.Body).Decode(&body), ShouldBeNil)
			So(body.Employees, ShouldHaveLength, 1)
		})

		Convey("An unsupported file extension is a 400 with a stable code", func() {
			resp := multipartUpload(t, ts.URL+"/company/3/reconcile", "roster.pdf", "%PDF-1.4")
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)

			var e struct {
				Code string `json:"code"`
			}
			So(json.NewDecoder(resp.Body).Decode(&e), ShouldBeNil)
			So(e.Code, ShouldEqual, "unsupported_file_type")
		})

		Convey("An unknown company is a 404", func() {
			resp := multipartUpload(t, ts.URL+"/company/99/reconcile", "roster.csv", csv)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A request without a multipart file is a 400", func() {
			resp, err := http.Post(ts.URL+"/company/3/reconcile", "text/csv", strings.NewReader(csv))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("GET on the reconcile route is not found", func() {
			resp, err := http.Get(ts.URL + "/company/3/reconcile")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestBulkEndpoint(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts, store := newTestServer()
		defer ts.Close()

		Convey("POST /user/bulk applies approved operations in order", func() {
			body := `[
				{"action":"toggle","user_data":{"document_id":"doc-1"}},
				{"action":"add","user_data":{"email":"new@acme.com","dob":"1999-09-09","first_name":"Nia","insurance_company_id":3,"is_active":true}}
			]`
			resp, err := http.Post(ts.URL+"/user/bulk", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var results []api.ApplyResult
			So(json.NewDecoder(resp.Body).Decode(&results), ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].Success, ShouldBeTrue)
			So(results[1].Success, ShouldBeTrue)

			employees := store.ListEmployees(context.Background(), 3)
			So(employees, ShouldHaveLength, 2)
			So(employees[0].IsActive, ShouldBeFalse)
		})

		Convey("A malformed body is a 400", func() {
			resp, err := http.Post(ts.URL+"/user/bulk", "application/json", strings.NewReader("{not json"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An empty operation list is a 400", func() {
			resp, err := http.Post(ts.URL+"/user/bulk", "application/json", strings.NewReader("[]"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A failed operation reports failure without voiding the rest", func() {
			body := `[
				{"action":"update","user_data":{"email":"x@acme.com"}},
				{"action":"toggle","user_data":{"document_id":"doc-1"}}
			]`
			resp, err := http.Post(ts.URL+"/user/bulk", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var results []api.ApplyResult
			So(json.NewDecoder(resp.Body).Decode(&results), ShouldBeNil)
			So(results[0].Success, ShouldBeFalse)
			So(results[1].Success, ShouldBeTrue)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	Convey("GET /stats reports service statistics", t, func() {
		resp, err := http.Get(ts.URL + "/stats")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		var stats app.Stats
		So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
		So(stats.TotalEmployees, ShouldEqual, 1)
		So(stats.TotalCompanies, ShouldEqual, 1)
	})

	Convey("GET /healthz serves the metrics registry", t, func() {
		resp, err := http.Get(ts.URL + "/healthz")
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)
	})
}
