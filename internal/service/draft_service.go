package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/render"
	"github.com/Notifuse/canvas/pkg/tracing"
)

type DraftService struct {
	repo      domain.DraftRepository
	logger    logger.Logger
	fromName  string
	fromEmail string
}

type DraftServiceConfig struct {
	Repository domain.DraftRepository
	Logger     logger.Logger
	// FromName and FromEmail are written in exported messages
	FromName  string
	FromEmail string
}

func NewDraftService(cfg DraftServiceConfig) *DraftService {
	return &DraftService{
		repo:      cfg.Repository,
		logger:    cfg.Logger,
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

func (s *DraftService) currentUser(ctx context.Context) (*domain.User, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *DraftService) ListDrafts(ctx context.Context, req domain.ListDraftsRequest) (*domain.ListDraftsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	drafts, total, err := s.repo.ListDrafts(ctx, user.ID, req.Limit, req.Offset)
	if err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to list drafts")
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	summaries := make([]domain.DraftSummary, len(drafts))
	for i, d := range drafts {
		summaries[i] = d.Summary()
	}
	return &domain.ListDraftsResponse{Drafts: summaries, TotalCount: total}, nil
}

func (s *DraftService) GetDraft(ctx context.Context, req domain.GetDraftRequest) (*domain.Draft, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetDraft(ctx, user.ID, req.ID)
}

func (s *DraftService) DeleteDraft(ctx context.Context, req domain.DeleteDraftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	user, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteDraft(ctx, user.ID, req.ID); err != nil {
		s.logger.WithField("draft_id", req.ID).WithField("error", err.Error()).Error("Failed to delete draft")
		return err
	}
	s.logger.WithField("draft_id", req.ID).Info("Draft deleted")
	return nil
}

// ExportDraft renders a saved draft and writes it as a .eml message.
// Nothing is sent.
func (s *DraftService) ExportDraft(ctx context.Context, req domain.ExportDraftRequest) (*domain.DraftExport, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DraftService", "ExportDraft")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := s.repo.GetDraft(ctx, user.ID, req.ID)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	result, err := render.Render(ctx, render.Request{
		Document: draft.Document,
		Options: render.Options{
			Subject:      draft.Subject,
			TemplateData: req.TemplateData,
		},
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to render draft: %w", err)
	}
	if !result.Success {
		msg := "unknown error"
		if result.Error != nil {
			msg = result.Error.Message
		}
		s.logger.WithField("draft_id", draft.ID).WithField("error", msg).Warn("Draft did not compile")
		return nil, fmt.Errorf("failed to render draft: %s", msg)
	}

	message := render.Message{
		FromName:  s.fromName,
		FromEmail: s.fromEmail,
		Subject:   draft.Subject,
		HTML:      result.HTML,
		Text:      result.Text,
	}
	if req.To != "" {
		message.To = []string{req.To}
	}

	content, err := render.EML(message)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("draft_id", draft.ID).WithField("error", err.Error()).Error("Failed to build draft message")
		return nil, err
	}

	tracing.AddAttribute(ctx, "export.bytes", len(content))
	return &domain.DraftExport{
		Filename: exportFilename(draft),
		Content:  content,
	}, nil
}

// exportFilename turns the subject into a safe file name
func exportFilename(d *domain.Draft) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(d.Subject)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-") {
				sb.WriteByte('-')
			}
		}
	}
	name := strings.Trim(sb.String(), "-")
	if name == "" {
		name = "draft-" + d.ID
	}
	if len(name) > 64 {
		name = strings.TrimRight(name[:64], "-")
	}
	return name + ".eml"
}
