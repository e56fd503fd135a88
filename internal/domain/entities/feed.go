package entities

import "time"

// FeedEvent is an event shaped for the feed, with display strings already
// formatted.
type FeedEvent struct {
	ID               int64
	Title            string
	Description      string
	Location         string
	ImageURL         string
	VideoURL         string
	Lineup           []FeedDJ
	ParticipantCount int64
	IsSubscribed     bool
	Date             string
	Time             string
	StartTime        time.Time
}

type FeedDJ struct {
	ID     int64
	Name   string
	Avatar string
	Time   string
	Social SocialLinks
}

// SubscribedEvent is a compact event card for the user's subscriptions list.
type SubscribedEvent struct {
	ID        int64
	Title     string
	Date      string
	Location  string
	ImageURL  string
	StartTime string
}

// SubscriptionResult is the state after a subscribe or unsubscribe action.
// Created is true only when the action inserted a new participation.
type SubscriptionResult struct {
	Created          bool
	ParticipantCount int64
}
