package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// OnboardingHandler serves the onboarding step.
type OnboardingHandler struct {
	store sessionGetter
	log   *slog.Logger
}

// NewOnboardingHandler creates an OnboardingHandler.
func NewOnboardingHandler(store sessionGetter, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{store: store, log: logger.With("handler", "onboarding")}
}

type answersRequest struct {
	Socials   []string `json:"socials"`
	Website   string   `json:"website"`
	Objective string   `json:"objective"`
}

type websiteRequest struct {
	Website string `json:"website"`
}

type websiteResponse struct {
	Website string `json:"website"`
	State   string `json:"state"`
}

type objectiveRequest struct {
	Objective string `json:"objective"`
}

type socialsResponse struct {
	Socials []string `json:"socials"`
}

// Get handles GET /api/onboarding.
func (h *OnboardingHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnswersResponse(s.Answers()))
}

// Replace handles PUT /api/onboarding.
func (h *OnboardingHandler) Replace(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req answersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	answers := domain.OnboardingAnswers{
		Website:   req.Website,
		Objective: domain.Objective(req.Objective),
	}
	for _, p := range req.Socials {
		answers.Socials = append(answers.Socials, domain.Platform(p))
	}

	if _, err := s.SetAnswers(answers); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnswersResponse(s.Answers()))
}

// ToggleSocial handles POST /api/onboarding/socials/{platform}.
func (h *OnboardingHandler) ToggleSocial(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	socials, err := s.ToggleSocial(domain.Platform(r.PathValue("platform")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := socialsResponse{Socials: make([]string, 0, len(socials))}
	for _, p := range socials {
		resp.Socials = append(resp.Socials, p.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetWebsite handles PUT /api/onboarding/website. An invalid website is not
// an error; the state says so.
func (h *OnboardingHandler) SetWebsite(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req websiteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	state, err := s.SetWebsite(req.Website)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, websiteResponse{Website: req.Website, State: state.String()})
}

// SetObjective handles PUT /api/onboarding/objective.
func (h *OnboardingHandler) SetObjective(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req objectiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := s.SetObjective(domain.Objective(req.Objective)); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnswersResponse(s.Answers()))
}

// Submit handles POST /api/onboarding/submit.
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(h.store, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := s.SubmitOnboarding(); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Step: s.Step().String()})
}
