package domain

// Participation statuses accepted by the event_participants.status check constraint.
const (
	StatusGoing = "going"
)

// Subscription actions accepted by the subscription endpoint.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// ValidAction reports whether action is one of the two subscription actions.
func ValidAction(action string) bool {
	return action == ActionSubscribe || action == ActionUnsubscribe
}
