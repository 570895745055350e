package domain

import "time"

// Preference keys read by the thumbnail flow.
const (
	PrefContentTitle       = "contentTitle"
	PrefContentDescription = "contentDescription"
)

// Defaults used when a preference is absent.
const (
	DefaultContentTitle       = "Your Video Title"
	DefaultContentDescription = "Your video description will appear here"
)

// MaxPrefValueLength caps stored preference values in bytes.
const MaxPrefValueLength = 4096

// IsKnownPrefKey reports whether key is one of the supported preference keys.
func IsKnownPrefKey(key string) bool {
	return key == PrefContentTitle || key == PrefContentDescription
}

// Preference is a stored per-client value.
type Preference struct {
	ClientID  string
	Key       string
	Value     string
	UpdatedAt time.Time
}
