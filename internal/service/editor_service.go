package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/internal/editor"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/render"
	"github.com/Notifuse/canvas/pkg/tracing"
)

var ErrTooManySessions = errors.New("too many open editor sessions")

const (
	defaultSessionTTL = 30 * time.Minute
	editorServiceName = "EditorService"
)

// liveSession is one open editor. mu serializes every operation on it.
type liveSession struct {
	mu       sync.Mutex
	id       string
	userID   string
	draftID  string
	session  *editor.Session
	lastUsed time.Time
	closed   bool
}

type EditorServiceConfig struct {
	Drafts      domain.DraftRepository
	Catalog     *blocks.Catalog
	Logger      logger.Logger
	SessionTTL  time.Duration
	MaxBlocks   int
	MaxSessions int
}

// EditorService keeps live editing sessions in memory, one per open editor
type EditorService struct {
	drafts      domain.DraftRepository
	catalog     *blocks.Catalog
	logger      logger.Logger
	sessionTTL  time.Duration
	maxBlocks   int
	maxSessions int

	mu       sync.RWMutex
	sessions map[string]*liveSession

	now   func() time.Time
	newID func() string
}

func NewEditorService(cfg EditorServiceConfig) (*EditorService, error) {
	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		catalog, err = blocks.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load template catalog: %w", err)
		}
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &EditorService{
		drafts:      cfg.Drafts,
		catalog:     catalog,
		logger:      cfg.Logger,
		sessionTTL:  ttl,
		maxBlocks:   cfg.MaxBlocks,
		maxSessions: cfg.MaxSessions,
		sessions:    make(map[string]*liveSession),
		now:         time.Now,
		newID:       uuid.NewString,
	}, nil
}

// Palette returns the insertable block kinds
func (s *EditorService) Palette() []blocks.PaletteEntry {
	return blocks.Palette()
}

// Templates lists the starter templates
func (s *EditorService) Templates() ([]domain.TemplateSummary, error) {
	out := make([]domain.TemplateSummary, 0, len(s.catalog.Templates))
	for _, t := range s.catalog.Templates {
		out = append(out, domain.TemplateSummary{
			Name:        t.Name,
			Description: t.Description,
			Subject:     t.Subject,
			BlockCount:  len(t.Blocks),
		})
	}
	return out, nil
}

// Open starts a session on the seed document, a starter template or a
// saved draft of the current user
func (s *EditorService) Open(ctx context.Context, req domain.OpenEditorRequest) (*domain.EditorState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, editorServiceName, "Open")
	defer span.End()

	if err := req.Validate(); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	opts := []editor.Option{editor.WithMaxBlocks(s.maxBlocks)}
	var draftID string
	var tmpl *blocks.Template

	switch {
	case req.DraftID != "":
		draft, err := s.drafts.GetDraft(ctx, user.ID, req.DraftID)
		if err != nil {
			s.logger.WithField("draft_id", req.DraftID).WithField("error", err.Error()).Error("Failed to load draft into editor")
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
		draftID = draft.ID
		opts = append(opts, editor.WithDocument(draft.Document), editor.WithSubject(draft.Subject))
	case req.Template != "":
		t, err := s.catalog.Find(req.Template)
		if err != nil {
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
		tmpl = &t
	}

	sess := editor.NewSession(opts...)
	if tmpl != nil {
		if err := sess.ApplyTemplate(*tmpl); err != nil {
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
	}

	ls := &liveSession{
		id:       s.newID(),
		userID:   user.ID,
		draftID:  draftID,
		session:  sess,
		lastUsed: s.now(),
	}
	if err := s.register(ctx, ls); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	tracing.AddAttribute(ctx, "editor.session_id", ls.id)
	s.logger.WithFields(map[string]interface{}{
		"session_id": ls.id,
		"user_id":    user.ID,
		"draft_id":   draftID,
		"template":   req.Template,
	}).Info("Editor session opened")

	return s.state(ls), nil
}

func (s *EditorService) register(ctx context.Context, ls *liveSession) error {
	if s.maxSessions > 0 && s.count() >= s.maxSessions {
		s.SweepExpired(ctx)
	}

	s.mu.Lock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		s.logger.WithField("max_sessions", s.maxSessions).Warn("Editor session limit reached")
		return ErrTooManySessions
	}
	s.sessions[ls.id] = ls
	n := len(s.sessions)
	s.mu.Unlock()

	tracing.RecordActiveSessions(ctx, n)
	return nil
}

func (s *EditorService) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// acquire returns the session locked. Unknown, expired and foreign sessions
// all look the same to the caller.
func (s *EditorService) acquire(ctx context.Context, sessionID string) (*liveSession, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	s.mu.RLock()
	ls := s.sessions[sessionID]
	s.mu.RUnlock()
	if ls == nil || ls.userID != user.ID {
		return nil, &domain.ErrEditorSessionNotFound{ID: sessionID}
	}

	ls.mu.Lock()
	if ls.closed {
		ls.mu.Unlock()
		return nil, &domain.ErrEditorSessionNotFound{ID: sessionID}
	}
	if s.expired(ls) {
		ls.closed = true
		ls.mu.Unlock()
		s.remove(ctx, sessionID)
		return nil, &domain.ErrEditorSessionNotFound{ID: sessionID}
	}
	ls.lastUsed = s.now()
	return ls, nil
}

func (s *EditorService) expired(ls *liveSession) bool {
	return s.now().Sub(ls.lastUsed) > s.sessionTTL
}

func (s *EditorService) remove(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	n := len(s.sessions)
	s.mu.Unlock()
	tracing.RecordActiveSessions(ctx, n)
}

func (s *EditorService) state(ls *liveSession) *domain.EditorState {
	return &domain.EditorState{
		SessionID: ls.id,
		DraftID:   ls.draftID,
		UpdatedAt: ls.lastUsed,
		Snapshot:  ls.session.Snapshot(),
	}
}

// mutate runs fn on a locked session and returns the resulting state
func (s *EditorService) mutate(ctx context.Context, method, sessionID string, fn func(*editor.Session) error) (*domain.EditorState, error) {
	ctx, span := tracing.StartServiceSpan(ctx, editorServiceName, method)
	defer span.End()
	tracing.AddAttribute(ctx, "editor.session_id", sessionID)

	ls, err := s.acquire(ctx, sessionID)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	defer ls.mu.Unlock()

	if err := fn(ls.session); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	return s.state(ls), nil
}

func (s *EditorService) State(ctx context.Context, req domain.SessionRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "State", req.SessionID, func(*editor.Session) error { return nil })
}

// Drop applies a complete drag gesture. An ignored drop is not an error:
// the result carries the reason and the document is unchanged.
func (s *EditorService) Drop(ctx context.Context, req domain.DropRequest) (*domain.DropResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result editor.DropResult
	state, err := s.mutate(ctx, "Drop", req.SessionID, func(sess *editor.Session) error {
		result = sess.DropAt(req.Payload, req.TargetIndex)
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := req.Payload.BlockKind
	if req.Payload.IsRelocation() {
		kind = "relocation"
	}
	tracing.RecordDrop(ctx, string(result.Outcome), kind)

	if !result.Changed() {
		s.logger.WithFields(map[string]interface{}{
			"session_id": req.SessionID,
			"reason":     result.Reason,
		}).Debug("Drop ignored")
	}

	return &domain.DropResponse{Result: result, State: state}, nil
}

func (s *EditorService) Select(ctx context.Context, req domain.SelectBlockRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "Select", req.SessionID, func(sess *editor.Session) error {
		return sess.Select(req.BlockID)
	})
}

func (s *EditorService) Edit(ctx context.Context, req domain.EditBlockRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "Edit", req.SessionID, func(sess *editor.Session) error {
		if err := sess.Edit(blocks.Field(req.Field), req.Value); err != nil {
			return err
		}
		if req.Commit {
			return sess.Commit()
		}
		return nil
	})
}

func (s *EditorService) Commit(ctx context.Context, req domain.SessionRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "Commit", req.SessionID, func(sess *editor.Session) error {
		return sess.Commit()
	})
}

func (s *EditorService) Discard(ctx context.Context, req domain.SessionRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "Discard", req.SessionID, func(sess *editor.Session) error {
		return sess.Discard()
	})
}

// Delete removes the given block, or the selected one when no id is given
func (s *EditorService) Delete(ctx context.Context, req domain.DeleteBlockRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "Delete", req.SessionID, func(sess *editor.Session) error {
		if req.BlockID == "" {
			return sess.DeleteSelected()
		}
		return sess.DeleteBlock(req.BlockID)
	})
}

func (s *EditorService) SetPreview(ctx context.Context, req domain.PreviewRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "SetPreview", req.SessionID, func(sess *editor.Session) error {
		sess.SetPreview(req.Preview)
		return nil
	})
}

func (s *EditorService) SetSubject(ctx context.Context, req domain.SubjectRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "SetSubject", req.SessionID, func(sess *editor.Session) error {
		return sess.SetSubject(req.Subject)
	})
}

func (s *EditorService) ApplyTemplate(ctx context.Context, req domain.ApplyTemplateRequest) (*domain.EditorState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t, err := s.catalog.Find(req.Template)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, "ApplyTemplate", req.SessionID, func(sess *editor.Session) error {
		return sess.ApplyTemplate(t)
	})
}

// Render renders a session, or the seed document when no session is given.
// The session lock is released before compiling.
func (s *EditorService) Render(ctx context.Context, req domain.RenderRequest) (*render.Result, error) {
	ctx, span := tracing.StartServiceSpan(ctx, editorServiceName, "Render")
	defer span.End()

	doc := blocks.NewSeedDocument()
	subject := editor.DefaultSubject

	if req.SessionID != "" {
		ls, err := s.acquire(ctx, req.SessionID)
		if err != nil {
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
		doc = ls.session.Document()
		subject = ls.session.Subject()
		ls.mu.Unlock()
	}

	start := time.Now()
	result, err := render.Render(ctx, render.Request{
		Document: doc,
		Options: render.Options{
			Subject:      subject,
			TemplateData: req.TemplateData,
		},
		SkipHTML: req.SkipHTML,
	})
	if err != nil {
		tracing.RecordRender(ctx, start, false)
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("session_id", req.SessionID).WithField("error", err.Error()).Error("Failed to render document")
		return nil, err
	}
	tracing.RecordRender(ctx, start, result.Success)
	tracing.AddAttribute(ctx, "render.success", result.Success)
	if !result.Success && result.Error != nil {
		s.logger.WithField("session_id", req.SessionID).WithField("error", result.Error.Message).Warn("Document did not compile")
	}

	return result, nil
}

// Save writes the session to its draft, creating the draft on first save
func (s *EditorService) Save(ctx context.Context, req domain.SessionRequest) (*domain.Draft, error) {
	ctx, span := tracing.StartServiceSpan(ctx, editorServiceName, "Save")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	ls, err := s.acquire(ctx, req.SessionID)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	defer ls.mu.Unlock()

	draft := &domain.Draft{
		ID:       ls.draftID,
		UserID:   ls.userID,
		Subject:  ls.session.Subject(),
		Document: ls.session.Document(),
	}

	if draft.ID == "" {
		draft.ID = s.newID()
		if err := draft.Validate(); err != nil {
			return nil, err
		}
		if err := s.drafts.CreateDraft(ctx, draft); err != nil {
			s.logger.WithField("session_id", ls.id).WithField("error", err.Error()).Error("Failed to create draft")
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
		ls.draftID = draft.ID
	} else {
		if err := draft.Validate(); err != nil {
			return nil, err
		}
		if err := s.drafts.UpdateDraft(ctx, draft); err != nil {
			s.logger.WithField("draft_id", draft.ID).WithField("error", err.Error()).Error("Failed to update draft")
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
	}

	tracing.AddAttribute(ctx, "draft.id", draft.ID)
	s.logger.WithField("draft_id", draft.ID).WithField("blocks", draft.Document.Len()).Info("Draft saved")
	return draft, nil
}

// Close forgets a session. Unsaved changes are lost.
func (s *EditorService) Close(ctx context.Context, req domain.SessionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	ls, err := s.acquire(ctx, req.SessionID)
	if err != nil {
		return err
	}
	ls.closed = true
	ls.mu.Unlock()

	s.remove(ctx, req.SessionID)
	s.logger.WithField("session_id", req.SessionID).Info("Editor session closed")
	return nil
}

// SweepExpired drops sessions idle for longer than the TTL. Sessions busy
// with an operation are not idle and are skipped.
func (s *EditorService) SweepExpired(ctx context.Context) int {
	s.mu.Lock()
	removed := 0
	for id, ls := range s.sessions {
		if !ls.mu.TryLock() {
			continue
		}
		if s.expired(ls) {
			ls.closed = true
			delete(s.sessions, id)
			removed++
		}
		ls.mu.Unlock()
	}
	n := len(s.sessions)
	s.mu.Unlock()

	tracing.RecordActiveSessions(ctx, n)
	if removed > 0 {
		s.logger.WithField("removed", removed).WithField("active", n).Info("Expired editor sessions swept")
	}
	return removed
}
