package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Service verifies Telegram Mini App init data, see
// https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
type Service interface {

	// Verify checks the raw init data signature and freshness and returns the
	// validated InitData. Every failure wraps ErrAuth.
	Verify(raw string) (d InitData, err error)
}

type service struct {
	secret     []byte
	maxAge     time.Duration
	skewFuture time.Duration
	now        func() time.Time
}

const keyHash = "hash"
const keyAuthDate = "auth_date"
const keyQueryId = "query_id"
const keyUser = "user"

// fixed outer HMAC key defined by the Telegram protocol
const webAppData = "WebAppData"

func NewService(secret string, maxAge, skewFuture time.Duration) Service {
	return service{
		secret:     []byte(secret),
		maxAge:     maxAge,
		skewFuture: skewFuture,
		now:        time.Now,
	}
}

func (svc service) Verify(raw string) (d InitData, err error) {
	var data map[string]string
	data, err = parseInitData(raw)
	var hashRcv string
	if err == nil {
		hashRcv = data[keyHash]
		if hashRcv == "" {
			err = fmt.Errorf("%w: no %s field", ErrMalformed, keyHash)
		}
	}
	if err == nil {
		delete(data, keyHash)
		if !hmac.Equal([]byte(signature(svc.secret, data)), []byte(hashRcv)) {
			err = ErrSignature
		}
	}
	var authDate int64
	if err == nil {
		authDate, err = svc.checkFreshness(data[keyAuthDate])
	}
	var u TelegramUser
	if err == nil {
		u, err = parseUser(data[keyUser])
	}
	if err == nil {
		d = InitData{
			User:     u,
			AuthDate: authDate,
			QueryId:  data[keyQueryId],
			Hash:     hashRcv,
			Data:     data,
		}
	}
	return
}

// parseInitData splits the payload into URL-decoded key/value pairs.
// Strict: a single malformed pair fails the whole parse.
func parseInitData(raw string) (data map[string]string, err error) {
	if raw == "" {
		err = fmt.Errorf("%w: empty payload", ErrMalformed)
		return
	}
	data = make(map[string]string)
	for _, pair := range strings.Split(raw, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: invalid field pair", ErrMalformed)
		}
		if k, err = url.QueryUnescape(k); err != nil {
			return nil, fmt.Errorf("%w: invalid key encoding", ErrMalformed)
		}
		if v, err = url.QueryUnescape(v); err != nil {
			return nil, fmt.Errorf("%w: invalid value encoding", ErrMalformed)
		}
		data[k] = v
	}
	return
}

// signature computes the expected lowercase hex hash of the field mapping:
// fields are sorted by key and joined as "key=value" lines, the HMAC-SHA256
// key is itself derived as HMAC-SHA256(key="WebAppData", msg=secret).
func signature(secret []byte, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var checkData strings.Builder
	for i, k := range keys {
		if i > 0 {
			checkData.WriteByte('\n')
		}
		checkData.WriteString(k)
		checkData.WriteByte('=')
		checkData.WriteString(data[k])
	}
	hDerived := hmac.New(sha256.New, []byte(webAppData))
	hDerived.Write(secret)
	h := hmac.New(sha256.New, hDerived.Sum(nil))
	h.Write([]byte(checkData.String()))
	return hex.EncodeToString(h.Sum(nil))
}

func (svc service) checkFreshness(authDateRaw string) (authDate int64, err error) {
	if authDateRaw == "" {
		err = fmt.Errorf("%w: no %s field", ErrMalformed, keyAuthDate)
		return
	}
	authDate, err = strconv.ParseInt(authDateRaw, 10, 64)
	if err != nil {
		err = fmt.Errorf("%w: non-numeric %s", ErrMalformed, keyAuthDate)
		return
	}
	age := time.Duration(svc.now().Unix()-authDate) * time.Second
	switch {
	case age > svc.maxAge:
		err = fmt.Errorf("%w: age %s, max %s", ErrExpired, age, svc.maxAge)
	case age < -svc.skewFuture:
		err = fmt.Errorf("%w: auth date is in the future", ErrExpired)
	}
	return
}

func parseUser(rawUser string) (u TelegramUser, err error) {
	if rawUser == "" {
		err = fmt.Errorf("%w: no %s field", ErrUserMissing, keyUser)
		return
	}
	if !strings.HasPrefix(strings.TrimSpace(rawUser), "{") {
		err = fmt.Errorf("%w: %s field is not an object", ErrMalformed, keyUser)
		return
	}
	if jsonErr := sonic.UnmarshalString(rawUser, &u); jsonErr != nil {
		err = fmt.Errorf("%w: invalid %s json", ErrMalformed, keyUser)
		return
	}
	if u.Id == 0 {
		err = fmt.Errorf("%w: no user id", ErrUserMissing)
	}
	return
}
