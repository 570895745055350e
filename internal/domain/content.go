package domain

import "strings"

// Tab identifies a view of the content bundle.
type Tab string

const (
	TabLinkedInRegular    Tab = "linkedin-regular"
	TabLinkedInCarousel   Tab = "linkedin-carousel"
	TabYouTubeEducational Tab = "youtube-educational"
	TabYouTubeSketch      Tab = "youtube-sketch"
	TabYouTubeThumbnail   Tab = "youtube-thumbnail"
)

// DefaultTab is active when the content step is entered.
const DefaultTab = TabLinkedInRegular

// Tabs lists all tabs in display order.
var Tabs = []Tab{TabLinkedInRegular, TabLinkedInCarousel, TabYouTubeEducational, TabYouTubeSketch, TabYouTubeThumbnail}

// CarouselSeparator joins carousel slides on export.
const CarouselSeparator = "\n\n---\n\n"

func (t Tab) String() string { return string(t) }

func (t Tab) IsValid() bool {
	switch t {
	case TabLinkedInRegular, TabLinkedInCarousel, TabYouTubeEducational, TabYouTubeSketch, TabYouTubeThumbnail:
		return true
	}
	return false
}

// ExportFilename is the name of the downloaded text file for the tab.
func (t Tab) ExportFilename() string {
	return string(t) + "-content.txt"
}

// Thumbnail is a generated or placeholder video thumbnail.
type Thumbnail struct {
	URL         string
	Title       string
	Description string
}

// ContentBundle is everything shown on the content step for one visit.
type ContentBundle struct {
	LinkedInRegular    string
	LinkedInCarousel   []string
	YouTubeEducational string
	YouTubeSketch      string
	YouTubeThumbnail   *Thumbnail
}

// TextFor returns the exportable text of a tab. The thumbnail tab exports
// its title and description.
func (b ContentBundle) TextFor(t Tab) (string, error) {
	switch t {
	case TabLinkedInRegular:
		return b.LinkedInRegular, nil
	case TabLinkedInCarousel:
		return strings.Join(b.LinkedInCarousel, CarouselSeparator), nil
	case TabYouTubeEducational:
		return b.YouTubeEducational, nil
	case TabYouTubeSketch:
		return b.YouTubeSketch, nil
	case TabYouTubeThumbnail:
		if b.YouTubeThumbnail == nil {
			return "", nil
		}
		return b.YouTubeThumbnail.Title + "\n\n" + b.YouTubeThumbnail.Description, nil
	}
	return "", NewValidationError("tab", "unknown tab "+string(t))
}
