package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrInvalidEventID     = errors.New("event id is required")
	ErrInvalidAction      = errors.New("action must be subscribe or unsubscribe")
	ErrInitDataMissing    = errors.New("init data is missing")
	ErrInvalidSignature   = errors.New("init data signature is invalid")
	ErrInitDataExpired    = errors.New("init data has expired")
	ErrSessionUserMissing = errors.New("init data carries no user")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEventNotFound, "event_not_found"},
	{ErrInvalidEventID, "invalid_event_id"},
	{ErrInvalidAction, "invalid_action"},
	{ErrInitDataMissing, "init_data_missing"},
	{ErrInvalidSignature, "invalid_signature"},
	{ErrInitDataExpired, "init_data_expired"},
	{ErrSessionUserMissing, "session_user_missing"},
}

// Code returns the stable code of the domain error wrapped in err, or "" when
// err does not wrap one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
