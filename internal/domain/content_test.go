package domain

import (
	"errors"
	"testing"
)

func TestContentBundle_TextFor(t *testing.T) {
	t.Parallel()

	b := ContentBundle{
		LinkedInRegular:    "post",
		LinkedInCarousel:   []string{"one", "two", "three"},
		YouTubeEducational: "edu",
		YouTubeSketch:      "sketch",
		YouTubeThumbnail:   &Thumbnail{URL: "https://img", Title: "T", Description: "D"},
	}

	tests := []struct {
		tab  Tab
		want string
	}{
		{TabLinkedInRegular, "post"},
		{TabLinkedInCarousel, "one\n\n---\n\ntwo\n\n---\n\nthree"},
		{TabYouTubeEducational, "edu"},
		{TabYouTubeSketch, "sketch"},
		{TabYouTubeThumbnail, "T\n\nD"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			t.Parallel()
			got, err := b.TextFor(tt.tab)
			if err != nil {
				t.Fatalf("TextFor: %v", err)
			}
			if got != tt.want {
				t.Errorf("TextFor(%q) = %q, want %q", tt.tab, got, tt.want)
			}
		})
	}
}

func TestContentBundle_TextForUnknownTab(t *testing.T) {
	t.Parallel()

	if _, err := (ContentBundle{}).TextFor("tiktok"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTab_ExportFilename(t *testing.T) {
	t.Parallel()

	if got := TabYouTubeSketch.ExportFilename(); got != "youtube-sketch-content.txt" {
		t.Fatalf("ExportFilename() = %q", got)
	}
	if DefaultTab != TabLinkedInRegular {
		t.Fatalf("DefaultTab = %q", DefaultTab)
	}
}

func TestStep_Previous(t *testing.T) {
	t.Parallel()

	tests := map[Step]Step{
		StepOnboarding: StepOnboarding,
		StepOffers:     StepOnboarding,
		StepTopics:     StepOffers,
		StepContent:    StepTopics,
	}
	for from, want := range tests {
		if got := from.Previous(); got != want {
			t.Errorf("%q.Previous() = %q, want %q", from, got, want)
		}
	}
}

func TestPredictedMetrics_InRange(t *testing.T) {
	t.Parallel()

	if !(PredictedMetrics{Views: 2000, Likes: 500, Comments: 50}).InRange() {
		t.Error("lower bounds should be in range")
	}
	if !(PredictedMetrics{Views: 11999, Likes: 1499, Comments: 149}).InRange() {
		t.Error("upper bounds minus one should be in range")
	}
	if (PredictedMetrics{Views: 12000, Likes: 500, Comments: 50}).InRange() {
		t.Error("views 12000 should be out of range")
	}
}
