package auth

import (
	"fmt"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"
const testNow = int64(1700000000)

func newTestService(maxAge time.Duration) service {
	return service{
		secret:     []byte(testSecret),
		maxAge:     maxAge,
		skewFuture: time.Minute,
		now: func() time.Time {
			return time.Unix(testNow, 0)
		},
	}
}

func signedPayload(data map[string]string) string {
	h := signature([]byte(testSecret), data)
	vals := url.Values{}
	for k, v := range data {
		vals.Set(k, v)
	}
	vals.Set(keyHash, h)
	return vals.Encode()
}

func TestService_Verify(t *testing.T) {
	svc := newTestService(24 * time.Hour)
	authDate := strconv.FormatInt(testNow-10, 10)
	cases := map[string]struct {
		raw string
		err error
	}{
		"ok": {
			raw: signedPayload(map[string]string{
				"auth_date": authDate,
				"query_id":  "AAA",
				"user":      `{"id":42,"first_name":"Ann"}`,
			}),
		},
		"empty": {
			err: ErrMalformed,
		},
		"pair without separator": {
			raw: "auth_date",
			err: ErrMalformed,
		},
		"invalid escape": {
			raw: "user=%zz&hash=0",
			err: ErrMalformed,
		},
		"no hash": {
			raw: fmt.Sprintf("auth_date=%s&user=%s", authDate, url.QueryEscape(`{"id":42}`)),
			err: ErrMalformed,
		},
		"wrong secret": {
			raw: func() string {
				h := signature([]byte("other-secret"), map[string]string{
					"auth_date": authDate,
					"user":      `{"id":42}`,
				})
				return fmt.Sprintf("auth_date=%s&user=%s&hash=%s", authDate, url.QueryEscape(`{"id":42}`), h)
			}(),
			err: ErrSignature,
		},
		"no auth_date": {
			raw: signedPayload(map[string]string{
				"user": `{"id":42}`,
			}),
			err: ErrMalformed,
		},
		"non-numeric auth_date": {
			raw: signedPayload(map[string]string{
				"auth_date": "yesterday",
				"user":      `{"id":42}`,
			}),
			err: ErrMalformed,
		},
		"no user": {
			raw: signedPayload(map[string]string{
				"auth_date": authDate,
			}),
			err: ErrUserMissing,
		},
		"user without id": {
			raw: signedPayload(map[string]string{
				"auth_date": authDate,
				"user":      `{}`,
			}),
			err: ErrUserMissing,
		},
		"user zero id": {
			raw: signedPayload(map[string]string{
				"auth_date": authDate,
				"user":      `{"id":0,"first_name":"Ann"}`,
			}),
			err: ErrUserMissing,
		},
		"user not an object": {
			raw: signedPayload(map[string]string{
				"auth_date": authDate,
				"user":      `[42]`,
			}),
			err: ErrMalformed,
		},
		"user invalid json": {
			raw: signedPayload(map[string]string{
				"auth_date": authDate,
				"user":      `{"id":`,
			}),
			err: ErrMalformed,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			d, err := svc.Verify(c.raw)
			if c.err == nil {
				require.Nil(t, err)
				assert.Equal(t, int64(42), d.User.Id)
				assert.Equal(t, "Ann", d.User.FirstName)
				assert.Equal(t, "", d.User.LastName)
				assert.Equal(t, "", d.User.UserName)
				assert.Equal(t, "", d.User.LanguageCode)
				assert.False(t, d.User.IsPremium)
				assert.Equal(t, testNow-10, d.AuthDate)
				assert.Equal(t, "AAA", d.QueryId)
				assert.NotEmpty(t, d.Hash)
				assert.NotContains(t, d.Data, keyHash)
			} else {
				assert.ErrorIs(t, err, c.err)
				assert.ErrorIs(t, err, ErrAuth)
			}
		})
	}
}

func TestService_Verify_HashFlip(t *testing.T) {
	svc := newTestService(24 * time.Hour)
	data := map[string]string{
		"auth_date": strconv.FormatInt(testNow-10, 10),
		"user":      `{"id":42,"first_name":"Ann"}`,
	}
	h := signature([]byte(testSecret), data)
	require.Len(t, h, 64)
	prefix := fmt.Sprintf("auth_date=%s&user=%s&hash=", data["auth_date"], url.QueryEscape(data["user"]))
	_, err := svc.Verify(prefix + h)
	require.Nil(t, err)
	for i := 0; i < len(h); i++ {
		flipped := []byte(h)
		switch flipped[i] {
		case '0':
			flipped[i] = '1'
		default:
			flipped[i] = '0'
		}
		_, err = svc.Verify(prefix + string(flipped))
		assert.ErrorIs(t, err, ErrSignature, i)
	}
}

func TestService_Verify_FieldOrderIndependent(t *testing.T) {
	svc := newTestService(24 * time.Hour)
	authDate := strconv.FormatInt(testNow-10, 10)
	user := url.QueryEscape(`{"id":42,"first_name":"Ann"}`)
	h := signature([]byte(testSecret), map[string]string{
		"auth_date": authDate,
		"query_id":  "AAA",
		"user":      `{"id":42,"first_name":"Ann"}`,
	})
	orderings := []string{
		fmt.Sprintf("auth_date=%s&query_id=AAA&user=%s&hash=%s", authDate, user, h),
		fmt.Sprintf("user=%s&auth_date=%s&hash=%s&query_id=AAA", user, authDate, h),
		fmt.Sprintf("hash=%s&query_id=AAA&user=%s&auth_date=%s", h, user, authDate),
	}
	for _, raw := range orderings {
		d, err := svc.Verify(raw)
		require.Nil(t, err)
		assert.Equal(t, int64(42), d.User.Id)
	}
}

func TestService_Verify_Freshness(t *testing.T) {
	svc := newTestService(86400 * time.Second)
	cases := map[string]struct {
		authDate int64
		err      error
	}{
		"too old": {
			authDate: testNow - 86401,
			err:      ErrExpired,
		},
		"almost too old": {
			authDate: testNow - 86399,
		},
		"exactly at max age": {
			authDate: testNow - 86400,
		},
		"too far in the future": {
			authDate: testNow + 61,
			err:      ErrExpired,
		},
		"slightly in the future": {
			authDate: testNow + 59,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			raw := signedPayload(map[string]string{
				"auth_date": strconv.FormatInt(c.authDate, 10),
				"user":      `{"id":42}`,
			})
			d, err := svc.Verify(raw)
			if c.err == nil {
				assert.Nil(t, err)
				assert.Equal(t, c.authDate, d.AuthDate)
			} else {
				assert.ErrorIs(t, err, c.err)
			}
		})
	}
}

// An expired payload with a broken signature is reported as a signature
// failure: the hash check runs first.
func TestService_Verify_SignatureBeforeFreshness(t *testing.T) {
	svc := newTestService(time.Hour)
	raw := fmt.Sprintf(
		"auth_date=%d&user=%s&hash=%s",
		testNow-86401,
		url.QueryEscape(`{"id":42}`),
		"0000000000000000000000000000000000000000000000000000000000000000",
	)
	_, err := svc.Verify(raw)
	assert.ErrorIs(t, err, ErrSignature)
}
