package domain

import "time"

// LoadState is the state of an asynchronous step or sub-flow.
type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateReady   LoadState = "ready"
	LoadStateError   LoadState = "error"
)

func (s LoadState) String() string { return string(s) }

// Generation formats sent to the content generator.
const (
	FormatTopics     = "topics"
	FormatSocialPost = "social_post"
)

// MaxPromptLength caps the free-text prompt in characters.
const MaxPromptLength = 2000

// GenerationRequest is a text generation call.
type GenerationRequest struct {
	Query  string
	Format string
}

// GeneratedContent is the result of a prompt submission.
type GeneratedContent struct {
	ID        string
	Prompt    string
	Content   string
	Timestamp time.Time
}

// ThumbnailRequest is a thumbnail generation call.
type ThumbnailRequest struct {
	Title       string
	Description string
}
