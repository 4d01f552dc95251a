package auth

import (
	"net/http"

	svcAuth "github.com/floriva/shop-telegram/service/auth"
	"github.com/floriva/shop-telegram/service/users"
)

// Auth is the metadata attached to a request once one of the authenticators
// accepts it.
type Auth struct {
	User     users.User
	TgUser   svcAuth.TelegramUser
	AuthDate int64
	Method   string
}

const MethodToken = "bearer_token"
const MethodInitData = "telegram_init_data"

// Authenticator inspects a single credential carrier.
//
// Attempt returns:
//   - applicable=false, err=nil: the request carries no credential this
//     authenticator understands, the chain continues;
//   - applicable=true, err=nil: authenticated, a is populated;
//   - err != nil: a credential was supplied and rejected, terminal.
type Authenticator interface {
	Attempt(r *http.Request) (a Auth, applicable bool, err error)
}
