package tokens

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service issues and verifies the signed session token pair returned to the
// Mini App after a successful init data login.
type Service interface {
	Issue(userId int64) (p Pair, err error)
	Verify(access string) (userId int64, err error)
	Refresh(refresh string) (access string, err error)
}

type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

type service struct {
	key        []byte
	ttlAccess  time.Duration
	ttlRefresh time.Duration
	now        func() time.Time
}

const typeAccess = "access"
const typeRefresh = "refresh"

var validMethods = []string{jwt.SigningMethodHS256.Alg()}

func NewService(signingKey string, ttlAccess, ttlRefresh time.Duration) Service {
	return service{
		key:        []byte(signingKey),
		ttlAccess:  ttlAccess,
		ttlRefresh: ttlRefresh,
		now:        time.Now,
	}
}

func (svc service) Issue(userId int64) (p Pair, err error) {
	p.Access, err = svc.issue(userId, typeAccess, svc.ttlAccess)
	if err == nil {
		p.Refresh, err = svc.issue(userId, typeRefresh, svc.ttlRefresh)
	}
	return
}

func (svc service) Verify(access string) (userId int64, err error) {
	userId, err = svc.verify(access, typeAccess)
	return
}

func (svc service) Refresh(refresh string) (access string, err error) {
	var userId int64
	userId, err = svc.verify(refresh, typeRefresh)
	if err == nil {
		access, err = svc.issue(userId, typeAccess, svc.ttlAccess)
	}
	return
}

func (svc service) issue(userId int64, tokenType string, ttl time.Duration) (raw string, err error) {
	now := svc.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userId, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	})
	raw, err = t.SignedString(svc.key)
	return
}

func (svc service) verify(raw, tokenType string) (userId int64, err error) {
	var c claims
	_, err = jwt.ParseWithClaims(
		raw,
		&c,
		func(t *jwt.Token) (any, error) {
			return svc.key, nil
		},
		jwt.WithValidMethods(validMethods),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidToken, err)
		return
	}
	if c.TokenType != tokenType {
		err = fmt.Errorf("%w: unexpected token type", ErrInvalidToken)
		return
	}
	userId, err = strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userId == 0 {
		err = fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}
	return
}
