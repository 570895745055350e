package domain

// TopicPlatform is the short platform tag shown on a topic card.
type TopicPlatform string

const (
	TopicPlatformLinkedIn  TopicPlatform = "LI"
	TopicPlatformYouTube   TopicPlatform = "YT"
	TopicPlatformInstagram TopicPlatform = "IG"
)

func (p TopicPlatform) String() string { return string(p) }

func (p TopicPlatform) IsValid() bool {
	switch p {
	case TopicPlatformLinkedIn, TopicPlatformYouTube, TopicPlatformInstagram:
		return true
	}
	return false
}

// Topic is a suggested content idea.
type Topic struct {
	ID       string
	Title    string
	Platform TopicPlatform
}

// FindTopic returns the topic with the given id.
func FindTopic(topics []Topic, id string) (Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
