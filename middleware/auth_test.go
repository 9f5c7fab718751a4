package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/services"
)

type stubResolver struct {
	user *models.User
	err  error
	seen string
}

func (s *stubResolver) ResolveToken(raw string) (*models.User, error) {
	s.seen = raw
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newAuthProbe(resolver *stubResolver) (*gin.Engine, *struct{ user *models.User }) {
	gin.SetMode(gin.TestMode)
	captured := &struct{ user *models.User }{}

	r := gin.New()
	r.GET("/probe", AuthRequired(resolver), func(ctx *gin.Context) {
		if user, ok := CurrentUser(ctx); ok {
			captured.user = user
		}
		ctx.Status(http.StatusOK)
	})
	return r, captured
}

func doProbe(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r, captured := newAuthProbe(&stubResolver{})

	w := doProbe(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40101, responseCode(t, w))
	assert.Nil(t, captured.user)
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	r, _ := newAuthProbe(&stubResolver{})

	for _, header := range []string{"Token abc", "bearer-without-space"} {
		w := doProbe(t, r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, 40102, responseCode(t, w), "header %q", header)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	r, _ := newAuthProbe(&stubResolver{err: services.ErrTokenInvalid})

	w := doProbe(t, r, "Bearer expired.or.garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40105, responseCode(t, w))
}

func TestAuthRequiredSubjectGone(t *testing.T) {
	r, _ := newAuthProbe(&stubResolver{err: services.ErrSubjectNotFound})

	w := doProbe(t, r, "Bearer valid.but.orphaned")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40106, responseCode(t, w))
}

func TestAuthRequiredSuccess(t *testing.T) {
	user := &models.User{ID: 42, Username: "alice"}
	resolver := &stubResolver{user: user}
	r, captured := newAuthProbe(resolver)

	w := doProbe(t, r, "Bearer sometoken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sometoken", resolver.seen)
	require.NotNil(t, captured.user)
	assert.Equal(t, user.ID, captured.user.ID)
}

func TestAuthRequiredCaseInsensitiveScheme(t *testing.T) {
	r, captured := newAuthProbe(&stubResolver{user: &models.User{ID: 1}})

	w := doProbe(t, r, "bearer sometoken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, captured.user)
}
