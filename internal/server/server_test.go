package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/store"
	"github.com/suteetoe/kazi/internal/testutil"
	"github.com/suteetoe/kazi/pkg/config"
	"github.com/suteetoe/kazi/pkg/jwtutil"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	fx     *testutil.Fixtures
	tokens *jwtutil.JWTUtil
}

func newTestServer(t *testing.T) *testServer {
	db := testutil.SetupTestDB(t)
	tokens, err := jwtutil.New("test-signing-key", 30*time.Minute)
	require.NoError(t, err)

	e := New(Deps{
		Config: &config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}},
		Logger: zap.NewNop(),
		Store:  store.New(db),
		Tokens: tokens,
	})
	return &testServer{t: t, e: e, fx: testutil.NewFixtures(t, db), tokens: tokens}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		req = httptest.NewRequest(method, path, strings.NewReader(string(raw)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username, password string) *httptest.ResponseRecorder {
	s.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) tokenFor(username string) string {
	s.t.Helper()
	rec := s.login(username, testutil.DefaultPassword)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.t, "bearer", resp.TokenType)
	require.NotEmpty(s.t, resp.AccessToken)
	return resp.AccessToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestDealPipelineFlow(t *testing.T) {
	s := newTestServer(t)
	acme := s.fx.CreateOrganization("Acme")
	s.fx.CreateUser("admin", model.RoleAdmin, &acme.ID)
	token := s.tokenFor("admin")

	rec := s.do(http.MethodPost, "/deals/", token, map[string]interface{}{
		"company_name": "Widget Co",
		"description":  "Makes widgets",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	deal := decode[model.Deal](t, rec)
	assert.Equal(t, "Origination", deal.Stage)
	assert.Equal(t, "Pending", deal.Status)
	require.NotNil(t, deal.OrganizationID)
	assert.Equal(t, acme.ID, *deal.OrganizationID)

	rec = s.do(http.MethodGet, "/deals/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	deals := decode[[]model.Deal](t, rec)
	require.Len(t, deals, 1)
	assert.Equal(t, deal.ID, deals[0].ID)

	rec = s.do(http.MethodGet, fmt.Sprintf("/deals/%d/ic-memo", deal.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	memo := decode[model.ICMemo](t, rec)
	assert.Equal(t, "Makes widgets", memo.BusinessModel)
	assert.Equal(t, "Next steps for Origination stage", memo.DiligencePlan)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/deals/%d", deal.ID), token, map[string]interface{}{"stage": "Diligence"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Deal](t, rec)
	assert.Equal(t, "Diligence", updated.Stage)
	assert.Equal(t, "Makes widgets", updated.Description)

	rec = s.do(http.MethodPost, fmt.Sprintf("/deals/%d/tasks/", deal.ID), token, map[string]interface{}{"description": "Call CEO"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Pending", decode[model.Task](t, rec).Status)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/deals/%d", deal.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Deal deleted", decode[map[string]string](t, rec)["status"])

	rec = s.do(http.MethodGet, fmt.Sprintf("/deals/%d", deal.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToken_Failures(t *testing.T) {
	s := newTestServer(t)
	acme := s.fx.CreateOrganization("Acme")
	s.fx.CreateUser("alice", model.RoleMember, &acme.ID)
	idle := s.fx.CreateUser("idle", model.RoleMember, &acme.ID)
	s.fx.Deactivate(idle)

	rec := s.login("alice", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = s.login("nobody", "whatever")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.login("idle", testutil.DefaultPassword)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.login("", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)
	acme := s.fx.CreateOrganization("Acme")
	s.fx.CreateUser("alice", model.RoleMember, &acme.ID)
	token := s.tokenFor("alice")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/deals/", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/deals/", "not-a-jwt", nil).Code)

	ghost, err := s.tokens.Issue("ghost")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/deals/", ghost, nil).Code)

	expired, err := s.tokens.IssueWithTTL("alice", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/deals", expired, nil).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/deals", token, nil).Code)
}

func TestUsers_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	acme := s.fx.CreateOrganization("Acme")
	s.fx.CreateUser("admin", model.RoleAdmin, &acme.ID)
	s.fx.CreateUser("member", model.RoleMember, &acme.ID)
	adminToken := s.tokenFor("admin")
	memberToken := s.tokenFor("member")

	payload := map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "s3cretpass",
	}

	rec := s.do(http.MethodPost, "/users/", memberToken, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/users/", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hashed_password")
	assert.NotContains(t, rec.Body.String(), "s3cretpass")

	rec = s.do(http.MethodPost, "/users/", adminToken, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	accented := map[string]interface{}{
		"username": "dora",
		"email":    "dora@example.com",
		"password": strings.Repeat("é", 40),
	}
	rec = s.do(http.MethodPost, "/users/", adminToken, accented)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/users/me", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "member", decode[model.User](t, rec).Username)

	rec = s.login("carol", "s3cretpass")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	acme := s.fx.CreateOrganization("Acme")
	s.fx.CreateUser("alice", model.RoleMember, &acme.ID)
	token := s.tokenFor("alice")

	rec := s.do(http.MethodPost, "/deals/", token, map[string]interface{}{"description": "no company"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/mandates/", token, map[string]interface{}{"type": "hostile", "confidence_score": "A"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/deals/", token, map[string]interface{}{"company_name": "X", "description": "d", "quality_score": 101})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodGet, "/deals/abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTenantIsolation(t *testing.T) {
	s := newTestServer(t)
	acme := s.fx.CreateOrganization("Acme")
	other := s.fx.CreateOrganization("Other")
	alice := s.fx.CreateUser("alice", model.RoleMember, &acme.ID)
	s.fx.CreateUser("mallory", model.RoleAdmin, &other.ID)
	deal := s.fx.CreateDeal(alice, "Widget Co")
	token := s.tokenFor("mallory")

	paths := []string{
		fmt.Sprintf("/deals/%d", deal.ID),
		fmt.Sprintf("/deals/%d/ic-memo", deal.ID),
		fmt.Sprintf("/deals/%d/tasks/", deal.ID),
		fmt.Sprintf("/deals/%d/documents/", deal.ID),
	}
	for _, p := range paths {
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, p, token, nil).Code, p)
	}

	rec := s.do(http.MethodGet, "/deals/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.Deal](t, rec))

	rec = s.do(http.MethodPost, "/ic-workflows/", token, map[string]interface{}{"deal_id": deal.ID, "approver": "IC"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrganizations_AdminRoutes(t *testing.T) {
	s := newTestServer(t)
	s.fx.CreateUser("root", model.RoleOwner, nil)
	s.fx.CreateUser("member", model.RoleMember, nil)
	rootToken := s.tokenFor("root")
	memberToken := s.tokenFor("member")

	body := map[string]interface{}{"name": "Acme", "type": "SCP"}

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/organizations/", memberToken, body).Code)

	rec := s.do(http.MethodPost, "/organizations/", rootToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	org := decode[model.Organization](t, rec)

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/organizations", rootToken, body).Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/organizations/%d", org.ID), memberToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, fmt.Sprintf("/organizations/%d", org.ID), memberToken, map[string]interface{}{"type": "Fund"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/organizations/%d", org.ID), rootToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Organization deleted", decode[map[string]string](t, rec)["status"])
}
