package auth

import (
	"errors"
	"fmt"
)

// ErrAuth is the common ancestor of every credential verification failure,
// so that callers may match the whole family or a specific kind.
var ErrAuth = errors.New("telegram auth failed")

var ErrMalformed = fmt.Errorf("%w: malformed init data", ErrAuth)
var ErrSignature = fmt.Errorf("%w: signature mismatch", ErrAuth)
var ErrExpired = fmt.Errorf("%w: auth date out of the freshness window", ErrAuth)
var ErrUserMissing = fmt.Errorf("%w: user data missing", ErrAuth)
