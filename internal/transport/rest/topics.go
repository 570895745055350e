package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
)

// TopicsHandler serves the topics step and its prompt sub-flow.
type TopicsHandler struct {
	store sessionGetter
	log   *slog.Logger
}

// NewTopicsHandler creates a TopicsHandler.
func NewTopicsHandler(store sessionGetter, logger *slog.Logger) *TopicsHandler {
	return &TopicsHandler{store: store, log: logger.With("handler", "topics")}
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type copyResponse struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Copied bool   `json:"copied"`
}

type selectTopicResponse struct {
	Step    string          `json:"step"`
	Content contentResponse `json:"content"`
}

func (h *TopicsHandler) flow(w http.ResponseWriter, r *http.Request) (*studio.TopicsFlow, bool) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	f, err := s.Topics()
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	return f, true
}

// Enter handles POST /api/topics/enter.
func (h *TopicsHandler) Enter(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTopicsResponse(s.EnterTopics().View()))
}

// View handles GET /api/topics.
func (h *TopicsHandler) View(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTopicsResponse(f.View()))
}

// SubmitPrompt handles POST /api/topics/prompt. The generation runs in the
// background; poll GET /api/topics for the result.
func (h *TopicsHandler) SubmitPrompt(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}

	var req promptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := f.SubmitPrompt(studio.PromptInput{Prompt: req.Prompt}); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toTopicsResponse(f.View()))
}

// Clear handles POST /api/topics/clear.
func (h *TopicsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}
	f.Clear()
	writeJSON(w, http.StatusOK, toTopicsResponse(f.View()))
}

// Copy handles POST /api/topics/content/{contentID}/copy.
func (h *TopicsHandler) Copy(w http.ResponseWriter, r *http.Request) {
	f, ok := h.flow(w, r)
	if !ok {
		return
	}

	id := r.PathValue("contentID")
	text, err := f.Copy(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, copyResponse{ID: id, Text: text, Copied: true})
}

// Select handles POST /api/topics/{topicID}/select.
func (h *TopicsHandler) Select(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	f, err := s.SelectTopic(r.PathValue("topicID"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selectTopicResponse{
		Step:    s.Step().String(),
		Content: toContentResponse(f.View()),
	})
}
