package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/Notifuse/canvas/internal/editor"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/render"
)

//go:generate mockgen -destination mocks/mock_editor_service.go -package mocks github.com/Notifuse/canvas/internal/domain EditorService

// EditorState is returned by every editor operation
type EditorState struct {
	SessionID string    `json:"session_id"`
	DraftID   string    `json:"draft_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	editor.Snapshot
}

// DropResponse is the outcome of a drop with the resulting state
type DropResponse struct {
	Result editor.DropResult `json:"result"`
	State  *EditorState      `json:"state"`
}

// TemplateSummary lists a starter template without its blocks
type TemplateSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject,omitempty"`
	BlockCount  int    `json:"block_count"`
}

// EditorService holds live editing sessions. Every call runs to completion
// before the next call on the same session starts.
type EditorService interface {
	Palette() []blocks.PaletteEntry
	Templates() ([]TemplateSummary, error)

	Open(ctx context.Context, req OpenEditorRequest) (*EditorState, error)
	State(ctx context.Context, req SessionRequest) (*EditorState, error)
	Drop(ctx context.Context, req DropRequest) (*DropResponse, error)
	Select(ctx context.Context, req SelectBlockRequest) (*EditorState, error)
	Edit(ctx context.Context, req EditBlockRequest) (*EditorState, error)
	Commit(ctx context.Context, req SessionRequest) (*EditorState, error)
	Discard(ctx context.Context, req SessionRequest) (*EditorState, error)
	Delete(ctx context.Context, req DeleteBlockRequest) (*EditorState, error)
	SetPreview(ctx context.Context, req PreviewRequest) (*EditorState, error)
	SetSubject(ctx context.Context, req SubjectRequest) (*EditorState, error)
	ApplyTemplate(ctx context.Context, req ApplyTemplateRequest) (*EditorState, error)
	// Render renders a session, or the seed document when SessionID is empty
	Render(ctx context.Context, req RenderRequest) (*render.Result, error)
	Save(ctx context.Context, req SessionRequest) (*Draft, error)
	Close(ctx context.Context, req SessionRequest) error

	// SweepExpired drops sessions idle for longer than the configured TTL
	SweepExpired(ctx context.Context) int
}

func validateSessionID(op, id string) error {
	if id == "" {
		return fmt.Errorf("invalid %s request: session_id is required", op)
	}
	if !govalidator.IsUUID(id) {
		return fmt.Errorf("invalid %s request: session_id must be a UUID", op)
	}
	return nil
}

// SessionRequest addresses one editor session
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *SessionRequest) Validate() error {
	return validateSessionID("editor", r.SessionID)
}

func (r *SessionRequest) FromURLParams(queryParams url.Values) error {
	r.SessionID = queryParams.Get("session_id")
	return r.Validate()
}

// OpenEditorRequest opens a session on the seed document, a starter
// template or a saved draft
type OpenEditorRequest struct {
	Template string `json:"template,omitempty"`
	DraftID  string `json:"draft_id,omitempty"`
}

func (r *OpenEditorRequest) Validate() error {
	r.Template = strings.TrimSpace(r.Template)
	if r.Template != "" && r.DraftID != "" {
		return fmt.Errorf("invalid open editor request: template and draft_id are mutually exclusive")
	}
	if r.DraftID != "" && !govalidator.IsUUID(r.DraftID) {
		return fmt.Errorf("invalid open editor request: draft_id must be a UUID")
	}
	return nil
}

// DropRequest carries a complete drag gesture: its payload and the index
// the pointer was over when released (nil when over no block)
type DropRequest struct {
	SessionID   string             `json:"session_id"`
	Payload     editor.DragPayload `json:"payload"`
	TargetIndex *int               `json:"target_index,omitempty"`
}

func (r *DropRequest) Validate() error {
	if err := validateSessionID("drop", r.SessionID); err != nil {
		return err
	}
	if r.Payload.BlockKind == "" && r.Payload.BlockIndex == nil {
		return fmt.Errorf("invalid drop request: payload is empty")
	}
	if r.Payload.BlockIndex != nil && *r.Payload.BlockIndex < 0 {
		return fmt.Errorf("invalid drop request: block_index must be positive")
	}
	return nil
}

type SelectBlockRequest struct {
	SessionID string `json:"session_id"`
	// BlockID empty clears the selection
	BlockID string `json:"block_id"`
}

func (r *SelectBlockRequest) Validate() error {
	return validateSessionID("select", r.SessionID)
}

// EditBlockRequest changes one buffered field of the selected block
type EditBlockRequest struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	// Commit applies the buffer right after the edit
	Commit bool `json:"commit,omitempty"`
}

func (r *EditBlockRequest) Validate() error {
	if err := validateSessionID("edit", r.SessionID); err != nil {
		return err
	}
	field, err := blocks.ParseField(strings.ToLower(strings.TrimSpace(r.Field)))
	if err != nil {
		return fmt.Errorf("invalid edit request: %w", err)
	}
	r.Field = string(field)
	if (field == blocks.FieldURL || field == blocks.FieldSrc) && !IsLinkValue(r.Value) {
		return fmt.Errorf("invalid edit request: %s must be a valid URL", field)
	}
	return nil
}

// IsLinkValue accepts empty values, merge tags, anchors and absolute URLs
func IsLinkValue(v string) bool {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return true
	case strings.Contains(v, "{{"):
		return true
	case strings.HasPrefix(v, "#"), strings.HasPrefix(v, "mailto:"):
		return true
	}
	return govalidator.IsURL(v)
}

type DeleteBlockRequest struct {
	SessionID string `json:"session_id"`
	// BlockID empty deletes the selected block
	BlockID string `json:"block_id,omitempty"`
}

func (r *DeleteBlockRequest) Validate() error {
	return validateSessionID("delete block", r.SessionID)
}

type PreviewRequest struct {
	SessionID string `json:"session_id"`
	Preview   bool   `json:"preview"`
}

func (r *PreviewRequest) Validate() error {
	return validateSessionID("preview", r.SessionID)
}

type SubjectRequest struct {
	SessionID string `json:"session_id"`
	Subject   string `json:"subject"`
}

func (r *SubjectRequest) Validate() error {
	if err := validateSessionID("subject", r.SessionID); err != nil {
		return err
	}
	if len(r.Subject) > MaxSubjectLength {
		return fmt.Errorf("invalid subject request: subject length must be at most %d", MaxSubjectLength)
	}
	return nil
}

type ApplyTemplateRequest struct {
	SessionID string `json:"session_id"`
	Template  string `json:"template"`
}

func (r *ApplyTemplateRequest) Validate() error {
	if err := validateSessionID("apply template", r.SessionID); err != nil {
		return err
	}
	r.Template = strings.TrimSpace(r.Template)
	if r.Template == "" {
		return fmt.Errorf("invalid apply template request: template is required")
	}
	return nil
}

type RenderRequest struct {
	SessionID    string                 `json:"session_id,omitempty"`
	TemplateData map[string]interface{} `json:"template_data,omitempty"`
	SkipHTML     bool                   `json:"skip_html,omitempty"`
}

// FromURLParams reads session_id, skip_html and a JSON encoded data
// parameter
func (r *RenderRequest) FromURLParams(queryParams url.Values) error {
	r.SessionID = queryParams.Get("session_id")
	if r.SessionID != "" {
		if err := validateSessionID("render", r.SessionID); err != nil {
			return err
		}
	}
	if v := queryParams.Get("skip_html"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid render request: skip_html must be a boolean")
		}
		r.SkipHTML = skip
	}
	if v := queryParams.Get("data"); v != "" {
		if err := json.Unmarshal([]byte(v), &r.TemplateData); err != nil {
			return fmt.Errorf("invalid render request: data must be a JSON object")
		}
	}
	return nil
}
