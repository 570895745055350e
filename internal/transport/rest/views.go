package rest

import (
	"time"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/wizard"
)

type stepResponse struct {
	Step string `json:"step"`
}

type sessionResponse struct {
	SessionID   string          `json:"sessionId"`
	ClientID    string          `json:"clientId"`
	Step        string          `json:"step"`
	Answers     answersResponse `json:"answers"`
	Offers      map[string]bool `json:"offers"`
	Files       []fileResponse  `json:"files"`
	CanContinue bool            `json:"canContinue"`
	TopicID     string          `json:"topicId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type answersResponse struct {
	Socials      []string `json:"socials"`
	Website      string   `json:"website"`
	WebsiteState string   `json:"websiteState"`
	Objective    string   `json:"objective"`
}

type fileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type offerResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

type offersResponse struct {
	Offers      []offerResponse `json:"offers"`
	Files       []fileResponse  `json:"files"`
	CanContinue bool            `json:"canContinue"`
}

type topicResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
}

type generatedContentResponse struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Copied    bool      `json:"copied"`
}

type promptResponse struct {
	Text    string                    `json:"text"`
	State   string                    `json:"state"`
	Content *generatedContentResponse `json:"content,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

type topicsResponse struct {
	State            string          `json:"state"`
	Topics           []topicResponse `json:"topics"`
	SuggestionsState string          `json:"suggestionsState"`
	Suggestions      string          `json:"suggestions,omitempty"`
	Prompt           promptResponse  `json:"prompt"`
}

type thumbnailResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type bundleResponse struct {
	LinkedInRegular    string             `json:"linkedinRegular"`
	LinkedInCarousel   []string           `json:"linkedinCarousel"`
	YouTubeEducational string             `json:"youtubeEducational"`
	YouTubeSketch      string             `json:"youtubeSketch"`
	YouTubeThumbnail   *thumbnailResponse `json:"youtubeThumbnail,omitempty"`
}

type metricsResponse struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

type contentResponse struct {
	State          string           `json:"state"`
	TopicID        string           `json:"topicId"`
	ActiveTab      string           `json:"activeTab"`
	Content        *bundleResponse  `json:"content,omitempty"`
	Metrics        *metricsResponse `json:"metrics,omitempty"`
	ThumbnailState string           `json:"thumbnailState"`
	ThumbnailError string           `json:"thumbnailError,omitempty"`
}

func toSessionResponse(s wizard.Snapshot) sessionResponse {
	return sessionResponse{
		SessionID:   s.ID.String(),
		ClientID:    s.ClientID,
		Step:        s.Step.String(),
		Answers:     toAnswersResponse(s.Answers),
		Offers:      toSelectionMap(s.Offers),
		Files:       toFilesResponse(s.Files),
		CanContinue: s.CanContinue,
		TopicID:     s.TopicID,
		CreatedAt:   s.CreatedAt,
	}
}

func toAnswersResponse(a domain.OnboardingAnswers) answersResponse {
	socials := make([]string, 0, len(a.Socials))
	for _, p := range a.Socials {
		socials = append(socials, p.String())
	}
	return answersResponse{
		Socials:      socials,
		Website:      a.Website,
		WebsiteState: domain.ValidateWebsite(a.Website).String(),
		Objective:    a.Objective.String(),
	}
}

func toSelectionMap(sel domain.OfferSelection) map[string]bool {
	m := make(map[string]bool, 4)
	for _, o := range domain.OfferCatalogue() {
		m[o.ID.String()] = sel.IsSelected(o.ID)
	}
	return m
}

func toFilesResponse(files domain.FileList) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, fileResponse{
			ID:          f.ID.String(),
			Name:        f.Name,
			Size:        f.Size,
			ContentType: f.ContentType,
		})
	}
	return out
}

func toOffersResponse(sel domain.OfferSelection, files domain.FileList) offersResponse {
	catalogue := domain.OfferCatalogue()
	offers := make([]offerResponse, 0, len(catalogue))
	for _, o := range catalogue {
		offers = append(offers, offerResponse{
			ID:          o.ID.String(),
			Title:       o.Title,
			Description: o.Description,
			Selected:    sel.IsSelected(o.ID),
		})
	}
	return offersResponse{
		Offers:      offers,
		Files:       toFilesResponse(files),
		CanContinue: sel.CanContinue(),
	}
}

func toTopicsResponse(v studio.TopicsView) topicsResponse {
	resp := topicsResponse{
		State:            v.State.String(),
		Topics:           make([]topicResponse, 0, len(v.Topics)),
		SuggestionsState: v.SuggestionsState.String(),
		Suggestions:      v.Suggestions,
		Prompt: promptResponse{
			Text:  v.Prompt.Text,
			State: v.Prompt.State.String(),
			Error: v.Prompt.Error,
		},
	}
	for _, t := range v.Topics {
		resp.Topics = append(resp.Topics, topicResponse{ID: t.ID, Title: t.Title, Platform: t.Platform.String()})
	}
	if c := v.Prompt.Content; c != nil {
		copied := false
		for _, id := range v.Prompt.CopiedIDs {
			if id == c.ID {
				copied = true
				break
			}
		}
		resp.Prompt.Content = &generatedContentResponse{
			ID:        c.ID,
			Prompt:    c.Prompt,
			Content:   c.Content,
			Timestamp: c.Timestamp,
			Copied:    copied,
		}
	}
	return resp
}

func toContentResponse(v studio.ContentView) contentResponse {
	resp := contentResponse{
		State:          v.State.String(),
		TopicID:        v.TopicID,
		ActiveTab:      v.ActiveTab.String(),
		ThumbnailState: v.ThumbnailState.String(),
		ThumbnailError: v.ThumbnailError,
	}
	if b := v.Bundle; b != nil {
		resp.Content = &bundleResponse{
			LinkedInRegular:    b.LinkedInRegular,
			LinkedInCarousel:   b.LinkedInCarousel,
			YouTubeEducational: b.YouTubeEducational,
			YouTubeSketch:      b.YouTubeSketch,
		}
		if t := b.YouTubeThumbnail; t != nil {
			resp.Content.YouTubeThumbnail = &thumbnailResponse{URL: t.URL, Title: t.Title, Description: t.Description}
		}
	}
	if m := v.Metrics; m != nil {
		resp.Metrics = &metricsResponse{Views: m.Views, Likes: m.Likes, Comments: m.Comments}
	}
	return resp
}
