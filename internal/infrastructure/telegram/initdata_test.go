package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niti/internal/domain"
)

const testBotToken = "7342037359:AAHI25ES9xCOMPWYWjSoQxMJxz9ajJ_hEEs"

var testNow = time.Date(2025, time.November, 2, 12, 0, 0, 0, time.UTC)

// sign builds init data the way Telegram does: the hash is the hex
// HMAC-SHA256 of the sorted "k=v" lines, keyed by HMAC("WebAppData", token).
func sign(t *testing.T, token string, values url.Values) string {
	t.Helper()
	pairs := make([]string, 0, len(values))
	for k := range values {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(token))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	signed := url.Values{}
	for k, v := range values {
		signed[k] = v
	}
	signed.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return signed.Encode()
}

func payload(authDate time.Time) url.Values {
	return url.Values{
		"auth_date": {strconv.FormatInt(authDate.Unix(), 10)},
		"query_id":  {"AAHdF6IQAAAAAN0XohDhrOrc"},
		"user":      {`{"id":7,"first_name":"Daniil","last_name":"Dev","username":"ksusonic","language_code":"ru","photo_url":"https://t.me/i/userpic/7.jpg"}`},
	}
}

func newTestVerifier(devBypass bool) *Verifier {
	return NewVerifier(testBotToken, 24*time.Hour, devBypass).WithClock(func() time.Time { return testNow })
}

func TestVerify_Valid(t *testing.T) {
	raw := sign(t, testBotToken, payload(testNow.Add(-time.Hour)))

	s, err := newTestVerifier(false).Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.UserID)
	assert.Equal(t, "ksusonic", s.Username)
	assert.Equal(t, "Daniil", s.FirstName)
	assert.Equal(t, "Dev", s.LastName)
	assert.Equal(t, "https://t.me/i/userpic/7.jpg", s.PhotoURL)
	assert.True(t, s.AuthDate.Equal(testNow.Add(-time.Hour)))
}

func TestVerify_WrongToken(t *testing.T) {
	raw := sign(t, "other:token", payload(testNow))

	_, err := newTestVerifier(false).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestVerify_SingleByteMutation(t *testing.T) {
	raw := sign(t, testBotToken, payload(testNow.Add(-time.Minute)))
	v := newTestVerifier(false)

	authStart := strings.Index(raw, "auth_date=") + len("auth_date=")
	authEnd := authStart + strings.IndexByte(raw[authStart:], '&')

	for i := 0; i < len(raw); i++ {
		// auth_date digits may legitimately turn the payload into an
		// expired one, and hex digits of a percent escape decode the same
		// in either case.
		if i >= authStart && i < authEnd {
			continue
		}
		if (i >= 1 && raw[i-1] == '%') || (i >= 2 && raw[i-2] == '%') {
			continue
		}
		mutated := []byte(raw)
		mutated[i] ^= 0x01
		_, err := v.Verify(string(mutated))
		require.Errorf(t, err, "mutation at %d accepted: %q", i, mutated)
		assert.ErrorIsf(t, err, domain.ErrInvalidSignature, "mutation at %d", i)
	}
}

func TestVerify_Expired(t *testing.T) {
	old := testNow.Add(-25 * time.Hour)

	_, err := newTestVerifier(false).Verify(sign(t, testBotToken, payload(old)))
	assert.ErrorIs(t, err, domain.ErrInitDataExpired)

	// A bad signature on an expired payload still reports expiry.
	_, err = newTestVerifier(false).Verify(sign(t, "other:token", payload(old)))
	assert.ErrorIs(t, err, domain.ErrInitDataExpired)
}

func TestVerify_Malformed(t *testing.T) {
	v := newTestVerifier(false)

	_, err := v.Verify("")
	assert.ErrorIs(t, err, domain.ErrInitDataMissing)

	for _, raw := range []string{
		"auth_date=1&user=%7B%7D",
		"hash=abc&user=%7B%7D",
		"hash=abc&auth_date=yesterday",
		"hash=abc;auth_date=1",
	} {
		_, err := v.Verify(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidSignature, raw)
	}
}

func TestVerify_MissingUser(t *testing.T) {
	values := payload(testNow)
	values.Del("user")

	_, err := newTestVerifier(false).Verify(sign(t, testBotToken, values))
	assert.ErrorIs(t, err, domain.ErrSessionUserMissing)
}

func TestVerify_DevBypass(t *testing.T) {
	raw := url.Values{
		"auth_date": {"1"},
		"hash":      {DevSentinelHash},
		"signature": {"some-signature"},
		"user":      {`{"id":1,"first_name":"Daniil","username":"ksusonic"}`},
	}.Encode()

	s, err := newTestVerifier(true).Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.UserID)

	// Without the flag the sentinel is just a wrong hash on stale data.
	_, err = newTestVerifier(false).Verify(raw)
	assert.Error(t, err)

	// The flag does not relax checks for real payloads.
	_, err = newTestVerifier(true).Verify(sign(t, "other:token", payload(testNow)))
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestNewVerifier_DefaultMaxAge(t *testing.T) {
	v := NewVerifier(testBotToken, 0, false)
	assert.Equal(t, DefaultMaxAge, v.maxAge)
}
