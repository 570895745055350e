package wizard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
)

// Session is the state of one wizard tab. All methods are safe for
// concurrent use.
type Session struct {
	ID        uuid.UUID
	ClientID  string
	CreatedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	studio flowFactory
	log    *slog.Logger

	mu       sync.Mutex
	lastSeen time.Time
	step     domain.Step
	answers  domain.OnboardingAnswers
	offers   domain.OfferSelection
	files    domain.FileList

	topics       *studio.TopicsFlow
	topicsCancel context.CancelFunc

	content       *studio.ContentFlow
	contentCancel context.CancelFunc
}

// Snapshot is a copy of the session state safe to hand out.
type Snapshot struct {
	ID          uuid.UUID
	ClientID    string
	Step        domain.Step
	Answers     domain.OnboardingAnswers
	Offers      domain.OfferSelection
	Files       domain.FileList
	CanContinue bool
	TopicID     string
	CreatedAt   time.Time
	LastSeen    time.Time
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:          s.ID,
		ClientID:    s.ClientID,
		Step:        s.step,
		Answers:     s.answers.Clone(),
		Offers:      s.offers,
		Files:       s.files.Clone(),
		CanContinue: s.offers.CanContinue(),
		CreatedAt:   s.CreatedAt,
		LastSeen:    s.lastSeen,
	}
	if s.content != nil {
		snap.TopicID = s.content.TopicID()
	}
	return snap
}

// Step returns the current wizard step.
func (s *Session) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Done is closed when the session is torn down.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.cancel()
}

func (s *Session) requireStepLocked(step domain.Step) error {
	if s.step != step {
		return domain.NewConflictError("session is on step " + s.step.String() + ", not " + step.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Onboarding
// ---------------------------------------------------------------------------

// Answers returns a copy of the onboarding answers.
func (s *Session) Answers() domain.OnboardingAnswers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// SetAnswers replaces all onboarding answers at once. The website is stored
// as typed; it is only enforced on submit.
func (s *Session) SetAnswers(a domain.OnboardingAnswers) (domain.URLState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOnboarding); err != nil {
		return "", err
	}

	check := a.Clone()
	check.Website = ""
	if err := check.Validate(); err != nil {
		return "", err
	}

	s.answers = a.Clone()
	return domain.ValidateWebsite(a.Website), nil
}

// ToggleSocial adds or removes a platform.
func (s *Session) ToggleSocial(p domain.Platform) ([]domain.Platform, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOnboarding); err != nil {
		return nil, err
	}
	if err := s.answers.ToggleSocial(p); err != nil {
		return nil, err
	}
	return s.answers.Clone().Socials, nil
}

// SetWebsite stores the website as typed and returns its validation state.
func (s *Session) SetWebsite(raw string) (domain.URLState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOnboarding); err != nil {
		return "", err
	}
	s.answers.Website = raw
	return domain.ValidateWebsite(raw), nil
}

// SetObjective selects exactly one objective.
func (s *Session) SetObjective(o domain.Objective) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOnboarding); err != nil {
		return err
	}
	if !o.IsValid() {
		return domain.NewValidationError("objective", "unknown objective")
	}
	s.answers.Objective = o
	return nil
}

// SubmitOnboarding validates the answers and advances to the offers step.
func (s *Session) SubmitOnboarding() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOnboarding); err != nil {
		return err
	}
	if err := s.answers.Validate(); err != nil {
		return err
	}

	s.step = domain.StepOffers
	s.log.Info("onboarding submitted",
		slog.Int("socials", len(s.answers.Socials)),
		slog.String("objective", s.answers.Objective.String()),
	)
	return nil
}

// ---------------------------------------------------------------------------
// Offers
// ---------------------------------------------------------------------------

// ToggleOffer flips one offer flag.
func (s *Session) ToggleOffer(id domain.OfferID) (domain.OfferSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOffers); err != nil {
		return domain.OfferSelection{}, err
	}
	if err := s.offers.Toggle(id); err != nil {
		return domain.OfferSelection{}, err
	}
	return s.offers, nil
}

// AddFiles stages the PDF files and silently skips everything else.
func (s *Session) AddFiles(files []domain.UploadedFile) (accepted, rejected int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOffers); err != nil {
		return 0, 0, err
	}
	s.files, accepted = s.files.Append(files...)
	return accepted, len(files) - accepted, nil
}

// RemoveFile removes the staged file at index i.
func (s *Session) RemoveFile(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOffers); err != nil {
		return err
	}
	files, err := s.files.RemoveAt(i)
	if err != nil {
		return err
	}
	s.files = files
	return nil
}

// Files returns a copy of the staged files.
func (s *Session) Files() domain.FileList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files.Clone()
}

// ContinueToTopics advances to the topics step. At least one offer must be
// selected.
func (s *Session) ContinueToTopics() (*studio.TopicsFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStepLocked(domain.StepOffers); err != nil {
		return nil, err
	}
	if !s.offers.CanContinue() {
		return nil, domain.NewConflictError("select at least one offer")
	}
	return s.enterTopicsLocked(), nil
}

// ---------------------------------------------------------------------------
// Topics
// ---------------------------------------------------------------------------

// EnterTopics (re)mounts the topics step from any step.
func (s *Session) EnterTopics() *studio.TopicsFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterTopicsLocked()
}

func (s *Session) enterTopicsLocked() *studio.TopicsFlow {
	s.leaveContentLocked()
	if s.topicsCancel != nil {
		s.topicsCancel()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.topicsCancel = cancel
	s.topics = s.studio.MountTopics(ctx, studio.TopicsInput{
		Answers:   s.answers.Clone(),
		Offers:    s.offers,
		FileNames: s.files.Names(),
	})
	s.step = domain.StepTopics
	s.log.Info("topics step entered")
	return s.topics
}

// Topics returns the mounted topics flow.
func (s *Session) Topics() (*studio.TopicsFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepTopics || s.topics == nil {
		return nil, domain.NewConflictError("topics step is not active")
	}
	return s.topics, nil
}

// SelectTopic moves to the content step for a revealed topic.
func (s *Session) SelectTopic(topicID string) (*studio.ContentFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepTopics || s.topics == nil {
		return nil, domain.NewConflictError("topics step is not active")
	}
	if _, err := s.topics.Topic(topicID); err != nil {
		return nil, err
	}
	return s.enterContentLocked(topicID), nil
}

// ---------------------------------------------------------------------------
// Content
// ---------------------------------------------------------------------------

// EnterContent (re)mounts the content step for topicID from any step.
func (s *Session) EnterContent(topicID string) (*studio.ContentFlow, error) {
	topicID = strings.TrimSpace(topicID)
	if topicID == "" {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterContentLocked(topicID), nil
}

func (s *Session) enterContentLocked(topicID string) *studio.ContentFlow {
	s.leaveTopicsLocked()
	s.leaveContentLocked()

	ctx, cancel := context.WithCancel(s.ctx)
	s.contentCancel = cancel
	s.content = s.studio.MountContent(ctx, topicID, s.ClientID)
	s.step = domain.StepContent
	s.log.Info("content step entered", slog.String("topic_id", topicID))
	return s.content
}

func (s *Session) leaveContentLocked() {
	if s.contentCancel != nil {
		s.contentCancel()
	}
	s.content = nil
	s.contentCancel = nil
}

func (s *Session) leaveTopicsLocked() {
	if s.topicsCancel != nil {
		s.topicsCancel()
	}
	s.topics = nil
	s.topicsCancel = nil
}

// Content returns the mounted content flow.
func (s *Session) Content() (*studio.ContentFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepContent || s.content == nil {
		return nil, domain.NewConflictError("content step is not active")
	}
	return s.content, nil
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

// Back moves one step back and returns the new step. Going back to topics
// remounts it; onboarding stays where it is.
func (s *Session) Back() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case domain.StepContent:
		s.enterTopicsLocked()
	case domain.StepTopics:
		s.leaveTopicsLocked()
		s.step = domain.StepOffers
	case domain.StepOffers:
		s.step = domain.StepOnboarding
	}
	return s.step
}
