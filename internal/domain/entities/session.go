package entities

import "time"

// Session is the Telegram user derived from a verified init data payload.
// It lives for a single request.
type Session struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	PhotoURL  string
	AuthDate  time.Time
}
