package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	svcAuth "github.com/floriva/shop-telegram/service/auth"
	"github.com/floriva/shop-telegram/service/tokens"
)

const keyAuth = "auth"

// RequireAuth rejects any request not accepted by the chain and attaches the
// resolved Auth to the request context otherwise.
func RequireAuth(chain Chain) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		a, applicable, err := chain.Attempt(ctx.Request)
		switch {
		case err != nil:
			ctx.AbortWithStatusJSON(StatusOf(err), gin.H{
				"error": err.Error(),
			})
		case !applicable:
			ctx.Header("WWW-Authenticate", schemeBearer)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "request is not authenticated",
			})
		default:
			ctx.Set(keyAuth, a)
			ctx.Next()
		}
	}
}

// StatusOf maps a rejection to its HTTP status: bad input is 400, credential
// validation failures are 401, anything downstream of a successful
// verification is an operational 500.
func StatusOf(err error) (status int) {
	switch {
	case errors.Is(err, svcAuth.ErrMalformed), errors.Is(err, svcAuth.ErrUserMissing):
		status = http.StatusBadRequest
	case errors.Is(err, svcAuth.ErrAuth), errors.Is(err, tokens.ErrInvalidToken):
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
	}
	return
}

// GetAuth extracts the Auth attached by RequireAuth.
func GetAuth(ctx *gin.Context) (a Auth, ok bool) {
	v, exists := ctx.Get(keyAuth)
	if exists {
		a, ok = v.(Auth)
	}
	return
}
