package telegram

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/ports/input"
)

// DevSentinelHash marks init data produced by the frontend's mocked Telegram
// environment.
const DevSentinelHash = "some-hash"

// DefaultMaxAge is how long Telegram init data stays valid after auth_date.
const DefaultMaxAge = 24 * time.Hour

var _ input.InitDataVerifier = (*Verifier)(nil)

// Verifier checks Telegram Mini App init data against the bot token.
type Verifier struct {
	botToken  string
	maxAge    time.Duration
	devBypass bool
	now       func() time.Time
}

// NewVerifier creates a Verifier. With devBypass set, payloads carrying
// DevSentinelHash are parsed without signature or expiry checks; callers
// must only enable it outside production.
func NewVerifier(botToken string, maxAge time.Duration, devBypass bool) *Verifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Verifier{
		botToken:  botToken,
		maxAge:    maxAge,
		devBypass: devBypass,
		now:       time.Now,
	}
}

// WithClock returns a copy of v reading the current time from now.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	c := *v
	c.now = now
	return &c
}

// Verify validates raw and returns the session it describes.
//
// Expiry is decided before the signature: an old payload is reported as
// domain.ErrInitDataExpired whether or not it is correctly signed.
func (v *Verifier) Verify(raw string) (*entities.Session, error) {
	if raw == "" {
		return nil, domain.ErrInitDataMissing
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	hash := q.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: hash missing", domain.ErrInvalidSignature)
	}

	if !(v.devBypass && hash == DevSentinelHash) {
		authDate, err := parseAuthDate(q.Get("auth_date"))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
		}
		if authDate.Add(v.maxAge).Before(v.now()) {
			return nil, domain.ErrInitDataExpired
		}
		// Expiry is already checked above against the injectable clock.
		if err := initdata.Validate(raw, v.botToken, 0); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
		}
	}

	parsed, err := initdata.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %v", domain.ErrInvalidSignature, err)
	}
	if parsed.User.ID == 0 {
		return nil, domain.ErrSessionUserMissing
	}

	authDate, _ := parseAuthDate(q.Get("auth_date"))
	return &entities.Session{
		UserID:    parsed.User.ID,
		Username:  parsed.User.Username,
		FirstName: parsed.User.FirstName,
		LastName:  parsed.User.LastName,
		PhotoURL:  parsed.User.PhotoURL,
		AuthDate:  authDate,
	}, nil
}

func parseAuthDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("auth_date missing")
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("auth_date invalid: %w", err)
	}
	return time.Unix(sec, 0), nil
}
