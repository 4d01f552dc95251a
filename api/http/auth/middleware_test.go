package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcAuth "github.com/floriva/shop-telegram/service/auth"
	"github.com/floriva/shop-telegram/service/tokens"
	"github.com/floriva/shop-telegram/service/users"
)

const testSecret = "test-secret"

func signInitData(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+data[k])
	}
	hDerived := hmac.New(sha256.New, []byte("WebAppData"))
	hDerived.Write([]byte(testSecret))
	h := hmac.New(sha256.New, hDerived.Sum(nil))
	h.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}

func initDataPayload(data map[string]string) string {
	h := signInitData(data)
	vals := url.Values{}
	for k, v := range data {
		vals.Set(k, v)
	}
	vals.Set("hash", h)
	return vals.Encode()
}

func newTestRouter(t *testing.T) (*gin.Engine, tokens.Service, users.Service) {
	gin.SetMode(gin.TestMode)
	verifier := svcAuth.NewService(testSecret, 24*time.Hour, time.Minute)
	svcUsers := users.NewService(users.NewStorageMock())
	svcTokens := tokens.NewService("signing-key-0", time.Hour, 720*time.Hour)
	chain := NewChain(
		NewTokenAuthenticator(svcTokens, svcUsers),
		NewInitDataAuthenticator(verifier, svcUsers),
	)
	r := gin.New()
	r.GET("/me", RequireAuth(chain), func(ctx *gin.Context) {
		a, ok := GetAuth(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{
			"id":     a.User.Id,
			"method": a.Method,
		})
	})
	return r, svcTokens, svcUsers
}

func freshPayload(userJson string) string {
	return initDataPayload(map[string]string{
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()-10),
		"query_id":  "AAA",
		"user":      userJson,
	})
}

func TestRequireAuth_InitData(t *testing.T) {
	r, _, _ := newTestRouter(t)
	cases := map[string]struct {
		initData string
		status   int
	}{
		"ok": {
			initData: freshPayload(`{"id":42,"first_name":"Ann"}`),
			status:   http.StatusOK,
		},
		"tampered": {
			initData: freshPayload(`{"id":42}`) + "0",
			status:   http.StatusUnauthorized,
		},
		"malformed": {
			initData: "auth_date",
			status:   http.StatusBadRequest,
		},
		"no hash": {
			initData: "auth_date=1&user=x",
			status:   http.StatusBadRequest,
		},
		"no user": {
			initData: initDataPayload(map[string]string{
				"auth_date": fmt.Sprintf("%d", time.Now().Unix()-10),
			}),
			status: http.StatusBadRequest,
		},
		"expired": {
			initData: initDataPayload(map[string]string{
				"auth_date": fmt.Sprintf("%d", time.Now().Unix()-90000),
				"user":      `{"id":42}`,
			}),
			status: http.StatusUnauthorized,
		},
		"storage down": {
			initData: freshPayload(fmt.Sprintf(`{"id":%d}`, users.IdFailMock)),
			status:   http.StatusInternalServerError,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set(HeaderInitData, c.initData)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, c.status, w.Code)
		})
	}
}

func TestRequireAuth_InitDataHeaderCaseFold(t *testing.T) {
	r, _, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	// bypass the canonical form the way a rewriting proxy would
	req.Header["x-telegram-init-data"] = []string{freshPayload(`{"id":42}`)}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	r, _, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRequireAuth_BearerToken(t *testing.T) {
	r, svcTokens, svcUsers := newTestRouter(t)
	u, _, err := svcUsers.GetOrCreate(httptest.NewRequest(http.MethodGet, "/", nil).Context(), svcAuth.TelegramUser{
		Id:        42,
		FirstName: "Ann",
	})
	require.Nil(t, err)
	p, err := svcTokens.Issue(u.Id)
	require.Nil(t, err)
	//
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+p.Access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MethodToken)
}

// A supplied and rejected bearer token is terminal even when a valid init
// data header is also present.
func TestRequireAuth_FailClosed(t *testing.T) {
	r, _, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	req.Header.Set(HeaderInitData, freshPayload(`{"id":42}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerUnknownUser(t *testing.T) {
	r, svcTokens, _ := newTestRouter(t)
	p, err := svcTokens.Issue(777)
	require.Nil(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+p.Access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
