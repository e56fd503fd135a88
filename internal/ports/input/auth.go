package input

import "niti/internal/domain/entities"

// InitDataVerifier turns a raw Telegram init data string into a session.
type InitDataVerifier interface {
	Verify(raw string) (*entities.Session, error)
}
