package auth

import (
	"net/http"
	"strings"

	svcAuth "github.com/floriva/shop-telegram/service/auth"
	"github.com/floriva/shop-telegram/service/users"
)

// HeaderInitData carries the raw Mini App init data payload.
const HeaderInitData = "X-Telegram-Init-Data"

type initDataAuthenticator struct {
	verifier svcAuth.Service
	svcUsers users.Service
}

func NewInitDataAuthenticator(verifier svcAuth.Service, svcUsers users.Service) Authenticator {
	return initDataAuthenticator{
		verifier: verifier,
		svcUsers: svcUsers,
	}
}

func (a initDataAuthenticator) Attempt(r *http.Request) (auth Auth, applicable bool, err error) {
	raw := r.Header.Get(HeaderInitData)
	if raw == "" {
		// some proxies rewrite header casing in ways that bypass the
		// canonical form, fall back to a fold lookup
		raw = headerFold(r.Header, HeaderInitData)
	}
	if raw == "" {
		return
	}
	applicable = true
	var d svcAuth.InitData
	d, err = a.verifier.Verify(raw)
	var u users.User
	if err == nil {
		u, _, err = a.svcUsers.GetOrCreate(r.Context(), d.User)
	}
	if err == nil {
		auth = Auth{
			User:     u,
			TgUser:   d.User,
			AuthDate: d.AuthDate,
			Method:   MethodInitData,
		}
	}
	return
}

func headerFold(h http.Header, name string) (v string) {
	for k, vals := range h {
		if strings.EqualFold(k, name) && len(vals) > 0 {
			v = vals[0]
			break
		}
	}
	return
}
