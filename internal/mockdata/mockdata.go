// Package mockdata holds the canned payloads shown while no real generator
// output is available: topics, the content bundle, fallback text and
// placeholder thumbnails.
package mockdata

import (
	"embed"
	"fmt"
	"strings"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

//go:embed content/*.txt
var contentFS embed.FS

// PlaceholderThumbnailURL is shown when thumbnail generation fails.
const PlaceholderThumbnailURL = "https://placehold.co/1280x720/1f2937/ffffff?text=Thumbnail"

const slideSeparator = "\n===\n"

var topics = []domain.Topic{
	{ID: "1", Title: "How to Build Your Personal Brand in 2025", Platform: domain.TopicPlatformLinkedIn},
	{ID: "2", Title: "10 Content Creation Mistakes That Kill Engagement", Platform: domain.TopicPlatformYouTube},
	{ID: "3", Title: "Behind the Scenes: My Creative Process", Platform: domain.TopicPlatformInstagram},
	{ID: "4", Title: "The Psychology of Viral Content", Platform: domain.TopicPlatformLinkedIn},
	{ID: "5", Title: "From Zero to 100K: My Growth Strategy", Platform: domain.TopicPlatformYouTube},
	{ID: "6", Title: "Quick Tips for Better Instagram Stories", Platform: domain.TopicPlatformInstagram},
	{ID: "7", Title: "Networking Secrets Every Creator Should Know", Platform: domain.TopicPlatformLinkedIn},
	{ID: "8", Title: "The Future of Content Creation", Platform: domain.TopicPlatformYouTube},
}

// Topics returns a fresh copy of the eight canned topics.
func Topics() []domain.Topic {
	out := make([]domain.Topic, len(topics))
	copy(out, topics)
	return out
}

// Bundle returns the canned content bundle. The thumbnail is left empty; it
// is produced lazily by the thumbnail flow.
func Bundle() domain.ContentBundle {
	return domain.ContentBundle{
		LinkedInRegular:    mustRead("linkedin_regular.txt"),
		LinkedInCarousel:   strings.Split(mustRead("linkedin_carousel.txt"), slideSeparator),
		YouTubeEducational: mustRead("youtube_educational.txt"),
		YouTubeSketch:      mustRead("youtube_sketch.txt"),
	}
}

// FallbackThumbnail is used when the thumbnail generator fails.
func FallbackThumbnail() domain.Thumbnail {
	return domain.Thumbnail{
		URL:         PlaceholderThumbnailURL,
		Title:       domain.DefaultContentTitle,
		Description: domain.DefaultContentDescription,
	}
}

// DemoText is shown when the generator answers successfully without text.
const DemoText = "Generated content would appear here. This is a demo response showcasing how your content will be displayed with proper formatting and styling."

// FallbackText is shown in place of generated content when the generator is
// unreachable. The prompt is echoed verbatim.
func FallbackText(prompt string) string {
	return `Here's your generated content based on: "` + prompt + `"

This is a comprehensive response that demonstrates the content generation capabilities. The actual response from your backend would replace this mock content.

Key features:
• Contextual understanding
• Structured output
• Relevant insights
• Professional formatting

The content maintains consistency with your prompt while providing valuable, actionable information.`
}

func mustRead(name string) string {
	b, err := contentFS.ReadFile("content/" + name)
	if err != nil {
		panic(fmt.Sprintf("mockdata: missing embedded file %s: %v", name, err))
	}
	return string(b)
}

// Metrics draws cosmetic engagement numbers. intn must behave like
// rand.IntN and return a value in [0, n).
func Metrics(intn func(n int) int) domain.PredictedMetrics {
	return domain.PredictedMetrics{
		Views:    intn(domain.ViewsSpan) + domain.ViewsMin,
		Likes:    intn(domain.LikesSpan) + domain.LikesMin,
		Comments: intn(domain.CommentsSpan) + domain.CommentsMin,
	}
}
