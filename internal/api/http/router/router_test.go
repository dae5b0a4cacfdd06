package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
	core "github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
	"github.com/Alijeyrad/taadol_backend/internal/service/balancing"
	"github.com/Alijeyrad/taadol_backend/internal/service/commission"
	"github.com/Alijeyrad/taadol_backend/internal/service/member"
	"github.com/Alijeyrad/taadol_backend/internal/service/project"
	"github.com/Alijeyrad/taadol_backend/internal/service/section"
)

// Fakes embed the service interface; calling a method the test did not
// stub panics.

type fakeProjects struct {
	project.Service
	created project.CreateRequest
}

func (f *fakeProjects) Get(_ context.Context, id string) (*project.Detail, error) {
	if id != "p1" {
		return nil, project.ErrNotFound
	}
	return &project.Detail{Project: schema.Project{Name: "Villa"}}, nil
}

func (f *fakeProjects) Create(_ context.Context, req project.CreateRequest) (*project.Detail, error) {
	f.created = req
	return &project.Detail{Project: schema.Project{ID: bson.NewObjectID(), Name: req.Name}}, nil
}

func (f *fakeProjects) List(context.Context) ([]schema.Project, error) {
	return nil, errors.New("connection reset")
}

type fakeSections struct {
	section.Service
}

func (fakeSections) Add(context.Context, string, string) (*schema.ProjectSection, error) {
	return nil, section.ErrAlreadyExists
}

type fakeMembers struct {
	member.Service
}

func (fakeMembers) Create(_ context.Context, req member.Request) (*schema.TeamMember, error) {
	if req.PhoneNumber == "bad" {
		return nil, member.ErrInvalidPhone
	}
	return &schema.TeamMember{FullName: req.FullName}, nil
}

type fakeCommissions struct {
	commission.Service
	cursor string
	limit  int
}

func (f *fakeCommissions) Member(_ context.Context, id string) (*commission.MemberReport, error) {
	if id == "missing" {
		return nil, commission.ErrMemberNotFound
	}
	return &commission.MemberReport{Lines: []core.Line{{ProjectID: "p1", Commission: 900_000}}, Total: 900_000}, nil
}

func (f *fakeCommissions) MemberPage(_ context.Context, _, cursor string, limit int) (*core.Page, error) {
	f.cursor, f.limit = cursor, limit
	if cursor == "bogus" {
		return nil, commission.ErrInvalidCursor
	}
	return &core.Page{HasMore: true, NextCursor: "p9"}, nil
}

func (f *fakeCommissions) MemberXLSX(context.Context, string) ([]byte, error) {
	return []byte("PK-fake"), nil
}

type fakeBalancing struct {
	balancing.Service
	section string
	set     balancing.FieldWeight
}

func (f *fakeBalancing) SetWeight(_ context.Context, section string, w balancing.FieldWeight) (*balancing.SectionWeights, error) {
	if section == "gardening" {
		return nil, balancing.ErrUnknownSection
	}
	if w.Weight == 99 {
		return nil, balancing.ErrWeightSum
	}
	f.section, f.set = section, w
	return &balancing.SectionWeights{SectionName: section, Weights: []balancing.FieldWeight{w}, Total: w.Weight}, nil
}

type fixture struct {
	app         *fiber.App
	projects    *fakeProjects
	commissions *fakeCommissions
	balancing   *fakeBalancing
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		projects:    &fakeProjects{},
		commissions: &fakeCommissions{},
		balancing:   &fakeBalancing{},
	}
	f.app = fiber.New(fiber.Config{StructValidator: handler.NewStructValidator()})
	NewRouter(Params{
		Cfg:           &config.Config{},
		ProjectSvc:    f.projects,
		SectionSvc:    fakeSections{},
		MemberSvc:     fakeMembers{},
		CommissionSvc: f.commissions,
		BalancingSvc:  f.balancing,
	}).Register(f.app)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestProjectRoutes(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, fiber.MethodGet, "/api/v1/projects/p1", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Villa", body["data"].(map[string]any)["name"])

	resp, body = f.do(t, fiber.MethodGet, "/api/v1/projects/nope", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, project.ErrNotFound.Error(), body["error"])

	resp, _ = f.do(t, fiber.MethodPost, "/api/v1/projects", `{"name":"Shop","sections":["design"]}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, project.CreateRequest{Name: "Shop", Sections: []string{"design"}}, f.projects.created)
}

func TestValidationFailure(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, fiber.MethodPost, "/api/v1/projects", `{"sections":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "name")

	resp, _ = f.do(t, fiber.MethodPost, "/api/v1/projects", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, fiber.MethodPost, "/api/v1/projects/p1/sections", `{"name":"design"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body := f.do(t, fiber.MethodPost, "/api/v1/members", `{"full_name":"Sara","phone_number":"bad"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, member.ErrInvalidPhone.Error(), body["error"])

	// unknown failures never leak their message
	resp, body = f.do(t, fiber.MethodGet, "/api/v1/projects", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["error"])
}

func TestMemberCommissionRoutes(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, fiber.MethodGet, "/api/v1/members/m1/commissions", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 900_000, body["data"].(map[string]any)["total"])

	resp, body = f.do(t, fiber.MethodGet, "/api/v1/members/m1/commissions?cursor=p3&limit=5", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "p3", f.commissions.cursor)
	assert.Equal(t, 5, f.commissions.limit)
	assert.Equal(t, "p9", body["data"].(map[string]any)["next_cursor"])

	resp, _ = f.do(t, fiber.MethodGet, "/api/v1/members/m1/commissions?cursor=bogus", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, fiber.MethodGet, "/api/v1/members/missing/commissions", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, fiber.MethodGet, "/api/v1/members/m1/commissions.xlsx", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, report.XLSXContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "commissions-m1.xlsx")
}

func TestSetSingleWeight(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, fiber.MethodPatch, "/api/v1/balancing/weights",
		`{"section_name":"design","field_name":"f1","weight":25}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "design", f.balancing.section)
	assert.Equal(t, balancing.FieldWeight{FieldName: "f1", Weight: 25}, f.balancing.set)
	assert.EqualValues(t, 25, body["data"].(map[string]any)["total"])

	resp, _ = f.do(t, fiber.MethodPatch, "/api/v1/balancing/weights",
		`{"section_name":"design","field_name":"f1","weight":101}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = f.do(t, fiber.MethodPatch, "/api/v1/balancing/weights",
		`{"section_name":"design","field_name":"f1","weight":99}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, balancing.ErrWeightSum.Error(), body["error"])

	resp, _ = f.do(t, fiber.MethodPatch, "/api/v1/balancing/weights",
		`{"section_name":"gardening","field_name":"f1","weight":1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReadinessWithoutDatabase(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, fiber.MethodGet, "/livez", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = f.do(t, fiber.MethodGet, "/readyz", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
