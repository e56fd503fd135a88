package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Moscow is the Europe/Moscow location (MSK, UTC+3 without DST).
var Moscow *time.Location

func init() {
	var err error
	Moscow, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic("tz: load Europe/Moscow: " + err.Error())
	}
}

// Load resolves an IANA zone name. An empty name yields Moscow.
func Load(name string) (*time.Location, error) {
	switch name {
	case "":
		return Moscow, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %q: %w", name, err)
	}
	return loc, nil
}
