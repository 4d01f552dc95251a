package tokens

import "errors"

var ErrInvalidToken = errors.New("invalid session token")
