package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/floriva/shop-telegram/service/tokens"
	"github.com/floriva/shop-telegram/service/users"
)

const headerAuthorization = "Authorization"
const schemeBearer = "Bearer"

type tokenAuthenticator struct {
	svcTokens tokens.Service
	svcUsers  users.Service
}

func NewTokenAuthenticator(svcTokens tokens.Service, svcUsers users.Service) Authenticator {
	return tokenAuthenticator{
		svcTokens: svcTokens,
		svcUsers:  svcUsers,
	}
}

func (a tokenAuthenticator) Attempt(r *http.Request) (auth Auth, applicable bool, err error) {
	hdr := r.Header.Get(headerAuthorization)
	if hdr == "" {
		return
	}
	// scheme comparison is case-insensitive per RFC 7235
	scheme, raw, ok := strings.Cut(hdr, " ")
	if !ok || !strings.EqualFold(scheme, schemeBearer) || raw == "" {
		return
	}
	applicable = true
	var userId int64
	userId, err = a.svcTokens.Verify(raw)
	var u users.User
	if err == nil {
		u, err = a.svcUsers.Get(r.Context(), userId)
		if errors.Is(err, users.ErrNotFound) {
			err = fmt.Errorf("%w: unknown subject", tokens.ErrInvalidToken)
		}
	}
	if err == nil {
		auth = Auth{
			User:   u,
			Method: MethodToken,
		}
	}
	return
}
