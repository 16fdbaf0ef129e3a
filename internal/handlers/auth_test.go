// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/config"
	"github.com/quizdeck/quizdeck/internal/handlers"
	"github.com/quizdeck/quizdeck/internal/middleware"
	"github.com/quizdeck/quizdeck/internal/models"
	"github.com/quizdeck/quizdeck/internal/repository"
	authsvc "github.com/quizdeck/quizdeck/internal/services/auth"
	"github.com/quizdeck/quizdeck/internal/services/testgen"
	"github.com/quizdeck/quizdeck/internal/testutil"
)

// fakeMailer records reset mails instead of sending them.
type fakeMailer struct {
	urls []string
	err  error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, _ *models.User, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.urls = append(m.urls, resetURL)
	return nil
}

func newHandlers(t *testing.T) (*handlers.Handlers, *repository.Repository, *authsvc.Service, *fakeMailer) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	authCfg := &config.AuthConfig{
		JWTSecret:         "test-secret",
		TokenExpiryHours:  1,
		CookieExpiresDays: 90,
	}
	mailer := &fakeMailer{}
	svc := authsvc.NewService(repo, authsvc.NewTokenService(authCfg), mailer)
	h := handlers.New(repo, svc, testgen.NewService(repo), nil, authCfg)
	return h, repo, svc, mailer
}

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.CookieName {
			return cookie
		}
	}
	return nil
}

func TestSignupHandler(t *testing.T) {
	h, _, _, _ := newHandlers(t)
	e := echo.New()

	body := `{"name":"Test User","userName":"testuser","email":"testuser@example.com",` +
		`"password":"pass1234","passwordConfirm":"pass1234"}`
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/signup", strings.NewReader(body))

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	out := decodeBody(t, rec.Body.String())
	assert.Equal(t, "success", out["status"])
	assert.NotEmpty(t, out["token"])

	// The hash must never leave the server.
	assert.NotContains(t, rec.Body.String(), "password")

	cookie := sessionCookie(rec.Result())
	require.NotNil(t, cookie)
	assert.Equal(t, out["token"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
}

func TestSignupHandler_DuplicateUsername(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	body := `{"name":"Other Name","userName":"testuser","email":"other@example.com",` +
		`"password":"pass1234","passwordConfirm":"pass1234"}`
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/signup", strings.NewReader(body))

	err := h.Signup(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Username is already in use.", he.Message)
}

func TestLoginHandler(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	body := `{"userName":"testuser","password":"` + testutil.Password + `"}`
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/login", strings.NewReader(body))

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec.Body.String())
	assert.NotEmpty(t, out["token"])
	require.NotNil(t, sessionCookie(rec.Result()))
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	body := `{"userName":"testuser","password":"wrongpass"}`
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/login", strings.NewReader(body))

	err := h.Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Incorrect username or password", he.Message)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	h, _, _, _ := newHandlers(t)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"password":"pass1234"}`))
	err := h.Login(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Please provide username!", he.Message)

	c, _ = testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"userName":"testuser"}`))
	err = h.Login(c)
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Please provide password!", he.Message)
}

func TestLogoutHandler(t *testing.T) {
	h, _, _, _ := newHandlers(t)
	e := echo.New()

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/v1/users/logout", nil)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec.Result())
	require.NotNil(t, cookie)
	assert.Equal(t, "loggedout", cookie.Value)
}

func TestForgotPasswordHandler(t *testing.T) {
	h, repo, _, mailer := newHandlers(t)
	testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	body := `{"email":"testuser@example.com"}`
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/forgotPassword", strings.NewReader(body))

	require.NoError(t, h.ForgotPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token sent to email!")
	assert.Len(t, mailer.urls, 1)
}

func TestForgotPasswordHandler_UnknownEmail(t *testing.T) {
	h, _, _, _ := newHandlers(t)
	e := echo.New()

	body := `{"email":"nobody@example.com"}`
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/api/v1/users/forgotPassword", strings.NewReader(body))

	err := h.ForgotPassword(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "There is no user with that email address.", he.Message)
}

func TestResetPasswordHandler(t *testing.T) {
	h, repo, svc, mailer := newHandlers(t)
	testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	require.NoError(t, svc.RequestReset(t.Context(), "testuser@example.com", "http://localhost:8080"))
	require.Len(t, mailer.urls, 1)
	url := mailer.urls[0]
	token := url[strings.LastIndexByte(url, '/')+1:]

	body := `{"password":"newpass1234","passwordConfirm":"newpass1234"}`
	c, rec := testutil.NewEchoContext(e, http.MethodPatch, "/api/v1/users/resetPassword/"+token, strings.NewReader(body))
	c.SetParamNames("token")
	c.SetParamValues(token)

	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec.Body.String())
	assert.NotEmpty(t, out["token"])

	_, err := svc.Login(t.Context(), "testuser", "newpass1234")
	assert.NoError(t, err)
}

func TestResetPasswordHandler_InvalidToken(t *testing.T) {
	h, _, _, _ := newHandlers(t)
	e := echo.New()

	body := `{"password":"newpass1234","passwordConfirm":"newpass1234"}`
	c, _ := testutil.NewEchoContext(e, http.MethodPatch, "/api/v1/users/resetPassword/bogus", strings.NewReader(body))
	c.SetParamNames("token")
	c.SetParamValues("bogus")

	err := h.ResetPassword(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdatePasswordHandler_WrongCurrent(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	user := testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	body := `{"passwordCurrent":"wrongpass","password":"newpass1234","passwordConfirm":"newpass1234"}`
	c, _ := testutil.NewEchoContext(e, http.MethodPatch, "/api/v1/users/updateMyPassword", strings.NewReader(body))
	c.SetRequest(c.Request().WithContext(auth.SetUser(c.Request().Context(), user)))

	err := h.UpdatePassword(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Your current password is wrong", he.Message)
}

func TestSessionCookie_SecureBehindProxy(t *testing.T) {
	h, repo, _, _ := newHandlers(t)
	testutil.NewTestUser(t, repo, "testuser")
	e := echo.New()

	body := `{"userName":"testuser","password":"` + testutil.Password + `"}`
	c, rec := testutil.NewEchoContextWithHeaders(e, http.MethodPost, "/api/v1/users/login", strings.NewReader(body), map[string]string{
		echo.HeaderContentType: echo.MIMEApplicationJSON,
		"X-Forwarded-Proto":    "https",
	})

	require.NoError(t, h.Login(c))

	cookie := sessionCookie(rec.Result())
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
