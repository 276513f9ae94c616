package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubCaptcha struct {
	enabled bool
	accept  bool
}

func (s *stubCaptcha) Enabled() bool              { return s.enabled }
func (s *stubCaptcha) Verify(id, ans string) bool { return s.accept }

func setupHandler(t *testing.T, captcha CaptchaVerifier) (*Handler, *testEnv) {
	t.Helper()
	env := setupService(t)
	return NewHandler(env.service, captcha, env.config, nil), env
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandlerRegister(t *testing.T) {
	newEcho := func(h *Handler) *echo.Echo {
		e := echo.New()
		e.POST("/register", h.Register)
		return e
	}

	t.Run("success", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		env.notifier.On("SendVerification", mock.Anything, mock.Anything).Return(nil)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/register",
			`{"firstName":"Alice","lastName":"Smith","email":"alice@example.com","password":"password1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["verificationSent"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		env.notifier.On("SendVerification", mock.Anything, mock.Anything).Return(nil)
		e := newEcho(h)

		payload := `{"email":"alice@example.com","password":"password1"}`
		require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/register", payload).Code)

		rec := doJSON(t, e, http.MethodPost, "/register", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email already in use", decodeBody(t, rec)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		h, _ := setupHandler(t, nil)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/register", `{"email":"alice@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing email or password", decodeBody(t, rec)["error"])
	})

	t.Run("weak password surfaces the policy message", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		env.config.Auth.MinLength = 8

		rec := doJSON(t, newEcho(h), http.MethodPost, "/register",
			`{"email":"alice@example.com","password":"short"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "at least 8 characters")
	})
}

func TestHandlerLogin(t *testing.T) {
	register := func(t *testing.T, env *testEnv) {
		t.Helper()
		env.notifier.On("SendVerification", mock.Anything, mock.Anything).Return(nil)
		_, err := env.service.Register("alice@example.com", "password1", "Alice", "Smith")
		require.NoError(t, err)
	}
	newEcho := func(h *Handler) *echo.Echo {
		e := echo.New()
		e.POST("/login", h.Login)
		return e
	}

	t.Run("returns token and profile", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		register(t, env)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"password1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["token"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice@example.com", user["email"])
		assert.NotContains(t, user, "passwordHash")
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		register(t, env)
		e := newEcho(h)

		unknown := doJSON(t, e, http.MethodPost, "/login",
			`{"email":"nobody@example.com","password":"password1"}`)
		wrongPass := doJSON(t, e, http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
	})

	t.Run("captcha gate rejects a wrong answer", func(t *testing.T) {
		h, env := setupHandler(t, &stubCaptcha{enabled: true, accept: false})
		register(t, env)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"password1","captchaId":"id","captchaAnswer":"0"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Captcha verification failed", decodeBody(t, rec)["error"])
	})

	t.Run("disabled captcha is not consulted", func(t *testing.T) {
		h, env := setupHandler(t, &stubCaptcha{enabled: false, accept: false})
		register(t, env)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"password1"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unverified account blocked when gate enabled", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		env.config.Auth.RequireEmailVerification = true
		register(t, env)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"password1"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandlerVerifyEmail(t *testing.T) {
	newEcho := func(h *Handler) *echo.Echo {
		e := echo.New()
		e.GET("/verify/:token", h.VerifyEmail)
		return e
	}

	t.Run("redirects to the verified page", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		env.notifier.On("SendVerification", mock.Anything, mock.Anything).Return(nil)
		_, err := env.service.Register("alice@example.com", "password1", "Alice", "Smith")
		require.NoError(t, err)
		token := *env.mustFind(t, "alice@example.com").VerificationToken

		req := httptest.NewRequest(http.MethodGet, "/verify/"+token, nil)
		rec := httptest.NewRecorder()
		newEcho(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, env.config.App.FrontendURL+"/verified.html", rec.Header().Get("Location"))
	})

	t.Run("bad token", func(t *testing.T) {
		h, _ := setupHandler(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/verify/bogus", nil)
		rec := httptest.NewRecorder()
		newEcho(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid or expired")
	})
}

func TestHandlerPasswordReset(t *testing.T) {
	newEcho := func(h *Handler) *echo.Echo {
		e := echo.New()
		e.POST("/forgot", h.ForgotPassword)
		e.GET("/reset/validate/:token", h.ValidateResetToken)
		e.POST("/reset/:token", h.ResetPassword)
		return e
	}
	register := func(t *testing.T, env *testEnv) {
		t.Helper()
		env.notifier.On("SendVerification", mock.Anything, mock.Anything).Return(nil)
		env.notifier.On("SendReset", mock.Anything, mock.Anything).Return(nil)
		_, err := env.service.Register("alice@example.com", "password1", "Alice", "Smith")
		require.NoError(t, err)
	}

	t.Run("forgot responds identically for known and unknown emails", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		register(t, env)
		e := newEcho(h)

		known := doJSON(t, e, http.MethodPost, "/forgot", `{"email":"alice@example.com"}`)
		unknown := doJSON(t, e, http.MethodPost, "/forgot", `{"email":"nobody@example.com"}`)

		assert.Equal(t, http.StatusOK, known.Code)
		assert.Equal(t, http.StatusOK, unknown.Code)
		assert.Equal(t, known.Body.String(), unknown.Body.String())
	})

	t.Run("validate then reset", func(t *testing.T) {
		h, env := setupHandler(t, nil)
		register(t, env)
		e := newEcho(h)

		require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/forgot", `{"email":"alice@example.com"}`).Code)
		token := *env.mustFind(t, "alice@example.com").ResetToken

		req := httptest.NewRequest(http.MethodGet, "/reset/validate/"+token, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["valid"])

		rec = doJSON(t, e, http.MethodPost, "/reset/"+token, `{"password":"password2"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])

		// The consumed token no longer validates or resets.
		req = httptest.NewRequest(http.MethodGet, "/reset/validate/"+token, nil)
		rec2 := httptest.NewRecorder()
		e.ServeHTTP(rec2, req)
		assert.Equal(t, http.StatusBadRequest, rec2.Code)

		rec = doJSON(t, e, http.MethodPost, "/reset/"+token, `{"password":"password3"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid or expired token", decodeBody(t, rec)["error"])
	})

	t.Run("missing password on reset", func(t *testing.T) {
		h, _ := setupHandler(t, nil)

		rec := doJSON(t, newEcho(h), http.MethodPost, "/reset/sometoken", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing password", decodeBody(t, rec)["error"])
	})
}
