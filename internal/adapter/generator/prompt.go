// Package generator holds what the generator providers share: prompt
// construction and the offline provider.
package generator

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// SystemPrompt is sent as the system message to LLM providers.
const SystemPrompt = `You are a content strategist for independent creators on LinkedIn, YouTube and Instagram.
Write in a confident, practical voice. Never invent statistics. Keep formatting simple:
short paragraphs, plain bullet points with "•", no markdown headings.`

// UserPrompt renders a generation request as the user message for LLM providers.
func UserPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	switch req.Format {
	case domain.FormatTopics:
		b.WriteString("Suggest eight content topics, one per line, each prefixed with its platform code (LI, YT or IG).\n\n")
	case domain.FormatSocialPost:
		b.WriteString("Write a ready-to-publish social media post for the request below.\n\n")
	}
	b.WriteString(req.Query)
	return b.String()
}

// ThumbnailPrompt builds the image prompt for a video thumbnail.
func ThumbnailPrompt(req domain.ThumbnailRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a YouTube thumbnail image for a video titled %q.\n\n", req.Title)
	b.WriteString(`Background: a minimal and energetic pattern with high contrast colors such as red, yellow or orange to create urgency and excitement.

Text layout: large, bold, uppercase text split across 2 to 3 segments. Contrasting color blocks (black, white, yellow) behind the text for emphasis. Bold condensed sans-serif fonts with mild shadows or outlines for legibility.

Visual elements: hand-drawn arrows or shapes pointing toward the text. Optional emoji-style icons or comic effects like bursts, stars or exclamation marks.

Human element: a person on one side with a strong emotional expression (surprise, excitement, shock), with a sticker-style white border around them.

Requirements:
- 16:9 aspect ratio (landscape orientation)
- High contrast and vibrant colors that stand out
- Clear focal point that draws attention
- Professional and polished appearance
- Optimized for small display sizes
- No text overlay (text will be added separately)
- Eye-catching and clickable design`)

	if d := strings.TrimSpace(req.Description); d != "" {
		fmt.Fprintf(&b, "\n\nThe video is about: %s", d)
	}
	b.WriteString("\n\nThe image should be visually striking and make viewers want to click on the video.")
	return b.String()
}

// FirstNonEmpty returns the first argument that is not blank after trimming.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
