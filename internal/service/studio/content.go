package studio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/mockdata"
)

const thumbnailErrorMessage = "Failed to generate thumbnail. Showing a placeholder instead."

// ContentFlow is one mount of the content step for a topic.
type ContentFlow struct {
	svc       *Service
	ctx       context.Context
	log       *slog.Logger
	clientID  string
	topicID   string
	mountedAt time.Time
	bundle    domain.ContentBundle
	metrics   domain.PredictedMetrics

	mu sync.Mutex

	activeTab   domain.Tab
	thumb       *domain.Thumbnail
	thumbState  domain.LoadState
	thumbErr    string
	thumbGen    uint64
	autoFetched bool

	wg sync.WaitGroup
}

// ContentView is a point-in-time snapshot of a content flow. Bundle and
// Metrics are nil while the step is loading.
type ContentView struct {
	State          domain.LoadState
	TopicID        string
	ActiveTab      domain.Tab
	Bundle         *domain.ContentBundle
	Metrics        *domain.PredictedMetrics
	ThumbnailState domain.LoadState
	ThumbnailError string
}

// ExportResult is the exportable form of the active tab. RedirectURL is set
// instead of Text when the thumbnail image is downloaded.
type ExportResult struct {
	Tab         domain.Tab
	Text        string
	Filename    string
	ContentType string
	RedirectURL string
}

// MountContent enters the content step for topicID. clientID scopes the
// preference lookups of the thumbnail flow.
func (s *Service) MountContent(ctx context.Context, topicID, clientID string) *ContentFlow {
	f := &ContentFlow{
		svc:        s,
		ctx:        ctx,
		log:        s.log.With("flow", "content", slog.String("topic_id", topicID)),
		clientID:   clientID,
		topicID:    topicID,
		mountedAt:  s.clock.Now(),
		bundle:     mockdata.Bundle(),
		metrics:    mockdata.Metrics(s.intn),
		activeTab:  domain.DefaultTab,
		thumbState: domain.LoadStateIdle,
	}
	f.log.InfoContext(ctx, "content step mounted")
	return f
}

// TopicID returns the topic the flow was mounted for.
func (f *ContentFlow) TopicID() string {
	return f.topicID
}

// Ready reports whether the bundle has been revealed.
func (f *ContentFlow) Ready() bool {
	return f.svc.elapsed(f.mountedAt, f.svc.cfg.ContentDelay)
}

// SelectTab switches the active tab. The first activation of the thumbnail
// tab starts a thumbnail fetch when none is present or in flight.
func (f *ContentFlow) SelectTab(tab domain.Tab) error {
	if !tab.IsValid() {
		return domain.NewValidationError("tab", "unknown tab "+string(tab))
	}
	if !f.Ready() {
		return domain.NewConflictError("content is still loading")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.activeTab = tab
	if tab == domain.TabYouTubeThumbnail && !f.autoFetched && f.thumb == nil && f.thumbState != domain.LoadStateLoading {
		f.autoFetched = true
		f.startThumbnailLocked()
	}
	return nil
}

// RegenerateThumbnail re-issues the thumbnail fetch and overwrites the
// current thumbnail when it completes.
func (f *ContentFlow) RegenerateThumbnail() error {
	if !f.Ready() {
		return domain.NewConflictError("content is still loading")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.startThumbnailLocked()
	return nil
}

func (f *ContentFlow) startThumbnailLocked() {
	f.thumbGen++
	gen := f.thumbGen
	f.thumbState = domain.LoadStateLoading
	f.thumbErr = ""

	f.wg.Add(1)
	go f.fetchThumbnail(gen)
}

func (f *ContentFlow) fetchThumbnail(gen uint64) {
	defer f.wg.Done()

	ctx, cancel := f.svc.requestContext(f.ctx)
	defer cancel()

	title := f.pref(ctx, domain.PrefContentTitle, domain.DefaultContentTitle)
	description := f.pref(ctx, domain.PrefContentDescription, domain.DefaultContentDescription)

	url, err := f.svc.thumbs.GenerateThumbnail(ctx, domain.ThumbnailRequest{
		Title:       title,
		Description: description,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.thumbGen || f.ctx.Err() != nil {
		f.svc.record(KindThumbnail, OutcomeDropped)
		return
	}

	if err != nil {
		f.log.WarnContext(f.ctx, "thumbnail generation failed",
			slog.Uint64("generation", gen),
			slog.String("error", err.Error()),
		)
		fallback := mockdata.FallbackThumbnail()
		f.thumb = &fallback
		f.thumbState = domain.LoadStateError
		f.thumbErr = thumbnailErrorMessage
		f.svc.record(KindThumbnail, OutcomeFallback)
		return
	}

	f.thumb = &domain.Thumbnail{URL: url, Title: title, Description: description}
	f.thumbState = domain.LoadStateReady
	f.thumbErr = ""
	f.svc.record(KindThumbnail, OutcomeSuccess)
}

func (f *ContentFlow) pref(ctx context.Context, key, def string) string {
	if f.svc.prefs == nil || f.clientID == "" {
		return def
	}
	v, ok, err := f.svc.prefs.Get(ctx, f.clientID, key)
	if err != nil {
		f.log.WarnContext(ctx, "read preference failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return def
	}
	if !ok || v == "" {
		return def
	}
	return v
}

// View returns the current state of the flow.
func (f *ContentFlow) View() ContentView {
	ready := f.Ready()

	f.mu.Lock()
	defer f.mu.Unlock()

	v := ContentView{
		State:          domain.LoadStateLoading,
		TopicID:        f.topicID,
		ActiveTab:      f.activeTab,
		ThumbnailState: f.thumbState,
		ThumbnailError: f.thumbErr,
	}
	if !ready {
		return v
	}

	v.State = domain.LoadStateReady
	b := f.bundleLocked()
	m := f.metrics
	v.Bundle = &b
	v.Metrics = &m
	return v
}

func (f *ContentFlow) bundleLocked() domain.ContentBundle {
	b := f.bundle
	b.LinkedInCarousel = append([]string(nil), f.bundle.LinkedInCarousel...)
	if f.thumb != nil {
		t := *f.thumb
		b.YouTubeThumbnail = &t
	}
	return b
}

// Export returns the active tab as clipboard text or a downloadable file.
func (f *ContentFlow) Export(in ExportInput) (ExportResult, error) {
	if err := in.Validate(); err != nil {
		return ExportResult{}, err
	}
	if !f.Ready() {
		return ExportResult{}, domain.NewConflictError("content is still loading")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tab := f.activeTab
	res := ExportResult{Tab: tab}

	if tab == domain.TabYouTubeThumbnail && in.Action == ExportDownload {
		if f.thumb == nil {
			return ExportResult{}, domain.NewConflictError("thumbnail is not generated yet")
		}
		res.RedirectURL = f.thumb.URL
		return res, nil
	}

	text, err := f.bundleLocked().TextFor(tab)
	if err != nil {
		return ExportResult{}, err
	}
	res.Text = text
	if in.Action == ExportDownload {
		res.Filename = tab.ExportFilename()
		res.ContentType = "text/plain; charset=utf-8"
	}
	return res, nil
}

// Wait blocks until every background request started by the flow returns.
func (f *ContentFlow) Wait() {
	f.wg.Wait()
}
