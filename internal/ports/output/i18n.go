package output

// Translator renders user-facing strings: API error messages, subscription
// confirmations and the month names used by the feed's date format.
type Translator interface {
	// T renders the message identified by key for the given locale.
	// data fills template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
