package studio

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/mockdata"
)

// TopicsFlow is one mount of the topics step.
type TopicsFlow struct {
	svc       *Service
	ctx       context.Context
	log       *slog.Logger
	mountedAt time.Time
	topics    []domain.Topic

	mu sync.Mutex

	suggestionsState domain.LoadState
	suggestions      string

	prompt      string
	promptState domain.LoadState
	promptGen   uint64
	content     *domain.GeneratedContent
	contentSeq  uint64
	promptErr   string

	copied map[string]time.Time

	wg sync.WaitGroup
}

// TopicsView is a point-in-time snapshot of a topics flow.
type TopicsView struct {
	State            domain.LoadState
	Topics           []domain.Topic
	SuggestionsState domain.LoadState
	Suggestions      string
	Prompt           PromptView
}

// PromptView is the prompt sub-flow part of TopicsView.
type PromptView struct {
	Text      string
	State     domain.LoadState
	Content   *domain.GeneratedContent
	Error     string
	CopiedIDs []string
}

// MountTopics enters the topics step. ctx is the session context; background
// requests stop committing once it is cancelled.
func (s *Service) MountTopics(ctx context.Context, in TopicsInput) *TopicsFlow {
	f := &TopicsFlow{
		svc:              s,
		ctx:              ctx,
		log:              s.log.With("flow", "topics"),
		mountedAt:        s.clock.Now(),
		topics:           mockdata.Topics(),
		suggestionsState: domain.LoadStateLoading,
		promptState:      domain.LoadStateIdle,
		copied:           make(map[string]time.Time),
	}

	req := domain.GenerationRequest{Query: in.Query(), Format: domain.FormatTopics}
	f.wg.Add(1)
	go f.fetchSuggestions(req)

	return f
}

func (f *TopicsFlow) fetchSuggestions(req domain.GenerationRequest) {
	defer f.wg.Done()

	ctx, cancel := f.svc.requestContext(f.ctx)
	defer cancel()

	text, err := f.svc.text.Generate(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ctx.Err() != nil {
		f.svc.record(KindTopics, OutcomeDropped)
		return
	}
	if err != nil {
		f.log.WarnContext(f.ctx, "topic suggestions failed", slog.String("error", err.Error()))
		f.suggestionsState = domain.LoadStateError
		f.svc.record(KindTopics, OutcomeFallback)
		return
	}
	f.suggestions = text
	f.suggestionsState = domain.LoadStateReady
	f.svc.record(KindTopics, OutcomeSuccess)
}

// Ready reports whether the topics have been revealed.
func (f *TopicsFlow) Ready() bool {
	return f.svc.elapsed(f.mountedAt, f.svc.cfg.TopicsDelay)
}

// Topic returns a revealed topic by id.
func (f *TopicsFlow) Topic(id string) (domain.Topic, error) {
	if !f.Ready() {
		return domain.Topic{}, domain.NewConflictError("topics are still loading")
	}
	t, ok := domain.FindTopic(f.topics, id)
	if !ok {
		return domain.Topic{}, domain.ErrNotFound
	}
	return t, nil
}

// SubmitPrompt starts a generation for the prompt text. A newer submission or
// Clear supersedes any request still in flight.
func (f *TopicsFlow) SubmitPrompt(in PromptInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	f.promptGen++
	gen := f.promptGen
	f.prompt = in.Prompt
	f.promptState = domain.LoadStateLoading
	f.promptErr = ""
	f.mu.Unlock()

	f.log.InfoContext(f.ctx, "prompt submitted",
		slog.Uint64("generation", gen),
		slog.Int("length", len(in.Prompt)),
	)

	f.wg.Add(1)
	go f.generate(gen, in.Prompt)
	return nil
}

func (f *TopicsFlow) generate(gen uint64, prompt string) {
	defer f.wg.Done()

	ctx, cancel := f.svc.requestContext(f.ctx)
	defer cancel()

	text, err := f.svc.text.Generate(ctx, domain.GenerationRequest{
		Query:  strings.TrimSpace(prompt),
		Format: domain.FormatSocialPost,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.promptGen || f.ctx.Err() != nil {
		f.svc.record(KindPrompt, OutcomeDropped)
		return
	}

	now := f.svc.clock.Now()
	if err == nil {
		if strings.TrimSpace(text) == "" {
			text = mockdata.DemoText
		}
		f.content = f.newContentLocked(now, prompt, text)
		f.promptState = domain.LoadStateReady
		f.promptErr = ""
		f.svc.record(KindPrompt, OutcomeSuccess)
		return
	}

	f.log.WarnContext(f.ctx, "prompt generation failed",
		slog.Uint64("generation", gen),
		slog.String("error", err.Error()),
	)

	if f.svc.cfg.SilentFallback {
		f.content = f.newContentLocked(now, prompt, mockdata.FallbackText(prompt))
		f.promptState = domain.LoadStateReady
		f.promptErr = ""
		f.svc.record(KindPrompt, OutcomeFallback)
		return
	}

	f.content = nil
	f.promptState = domain.LoadStateError
	f.promptErr = "Failed to generate content"
	f.svc.record(KindPrompt, OutcomeError)
}

// newContentLocked stamps content with an id unique within the flow, even for
// results committed in the same millisecond.
func (f *TopicsFlow) newContentLocked(now time.Time, prompt, text string) *domain.GeneratedContent {
	f.contentSeq++
	return &domain.GeneratedContent{
		ID:        strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(f.contentSeq, 10),
		Prompt:    prompt,
		Content:   text,
		Timestamp: now,
	}
}

// Clear resets the prompt sub-flow. In-flight requests are not cancelled but
// their results are discarded.
func (f *TopicsFlow) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.promptGen++
	f.prompt = ""
	f.content = nil
	f.promptErr = ""
	f.promptState = domain.LoadStateIdle
}

// Copy marks the generated content with the given id as copied and returns
// its text.
func (f *TopicsFlow) Copy(id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.content == nil || f.content.ID != id {
		return "", domain.ErrNotFound
	}
	f.copied[id] = f.svc.clock.Now().Add(f.svc.cfg.CopyIndicatorTTL)
	return f.content.Content, nil
}

// IsCopied reports whether the copy indicator for id is still on.
func (f *TopicsFlow) IsCopied(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isCopiedLocked(id, f.svc.clock.Now())
}

func (f *TopicsFlow) isCopiedLocked(id string, now time.Time) bool {
	exp, ok := f.copied[id]
	if !ok {
		return false
	}
	if !now.Before(exp) {
		delete(f.copied, id)
		return false
	}
	return true
}

// View returns the current state of the flow.
func (f *TopicsFlow) View() TopicsView {
	ready := f.Ready()

	f.mu.Lock()
	defer f.mu.Unlock()

	v := TopicsView{
		State:            domain.LoadStateLoading,
		SuggestionsState: f.suggestionsState,
		Suggestions:      f.suggestions,
		Prompt: PromptView{
			Text:  f.prompt,
			State: f.promptState,
			Error: f.promptErr,
		},
	}
	if ready {
		v.State = domain.LoadStateReady
		v.Topics = append([]domain.Topic(nil), f.topics...)
	}
	if f.content != nil {
		c := *f.content
		v.Prompt.Content = &c
	}

	now := f.svc.clock.Now()
	for id := range f.copied {
		if f.isCopiedLocked(id, now) {
			v.Prompt.CopiedIDs = append(v.Prompt.CopiedIDs, id)
		}
	}
	sort.Strings(v.Prompt.CopiedIDs)
	return v
}

// Wait blocks until every background request started by the flow returns.
func (f *TopicsFlow) Wait() {
	f.wg.Wait()
}
