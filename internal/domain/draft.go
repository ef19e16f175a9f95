package domain

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/Notifuse/canvas/pkg/blocks"
)

//go:generate mockgen -destination mocks/mock_draft_repository.go -package mocks github.com/Notifuse/canvas/internal/domain DraftRepository
//go:generate mockgen -destination mocks/mock_draft_service.go -package mocks github.com/Notifuse/canvas/internal/domain DraftService

const (
	DefaultDraftsLimit = 20
	MaxDraftsLimit     = 100
	MaxSubjectLength   = 255
)

// Draft is a saved block document owned by one user
type Draft struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Subject   string           `json:"subject" db:"subject"`
	Document  *blocks.Document `json:"document" db:"document"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// Validate checks the draft before it is written
func (d *Draft) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("invalid draft: id is required")
	}
	if !govalidator.IsUUID(d.ID) {
		return fmt.Errorf("invalid draft: id must be a UUID")
	}
	if d.UserID == "" {
		return fmt.Errorf("invalid draft: user_id is required")
	}
	if len(d.Subject) > MaxSubjectLength {
		return fmt.Errorf("invalid draft: subject length must be at most %d", MaxSubjectLength)
	}
	if d.Document == nil {
		return fmt.Errorf("invalid draft: document is required")
	}
	return nil
}

// DraftSummary is a draft without its document, for listings
type DraftSummary struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	BlockCount int       `json:"block_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Summary drops the document from a draft
func (d *Draft) Summary() DraftSummary {
	n := 0
	if d.Document != nil {
		n = d.Document.Len()
	}
	return DraftSummary{
		ID:         d.ID,
		Subject:    d.Subject,
		BlockCount: n,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type DraftRepository interface {
	// CreateDraft inserts a new draft
	CreateDraft(ctx context.Context, draft *Draft) error

	// UpdateDraft replaces the subject and document of a draft owned by draft.UserID
	UpdateDraft(ctx context.Context, draft *Draft) error

	// GetDraft returns a draft owned by userID
	GetDraft(ctx context.Context, userID, id string) (*Draft, error)

	// ListDrafts returns the drafts of a user, most recently updated first, and the total count
	ListDrafts(ctx context.Context, userID string, limit, offset int) ([]*Draft, int, error)

	// DeleteDraft removes a draft owned by userID
	DeleteDraft(ctx context.Context, userID, id string) error
}

type DraftService interface {
	ListDrafts(ctx context.Context, req ListDraftsRequest) (*ListDraftsResponse, error)
	GetDraft(ctx context.Context, req GetDraftRequest) (*Draft, error)
	DeleteDraft(ctx context.Context, req DeleteDraftRequest) error
	// ExportDraft renders a draft and returns it as an RFC 5322 message
	ExportDraft(ctx context.Context, req ExportDraftRequest) (*DraftExport, error)
}

type ListDraftsRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (r *ListDraftsRequest) FromURLParams(queryParams url.Values) error {
	r.Limit = DefaultDraftsLimit
	if v := queryParams.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid list drafts request: limit must be a valid integer")
		}
		r.Limit = limit
	}
	if v := queryParams.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid list drafts request: offset must be a valid integer")
		}
		r.Offset = offset
	}
	return r.Validate()
}

func (r *ListDraftsRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > MaxDraftsLimit {
		return fmt.Errorf("invalid list drafts request: limit must be between 1 and %d", MaxDraftsLimit)
	}
	if r.Offset < 0 {
		return fmt.Errorf("invalid list drafts request: offset must be positive")
	}
	return nil
}

type ListDraftsResponse struct {
	Drafts     []DraftSummary `json:"drafts"`
	TotalCount int            `json:"total_count"`
}

type GetDraftRequest struct {
	ID string `json:"id"`
}

func (r *GetDraftRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")
	return validateDraftID("get draft", r.ID)
}

type DeleteDraftRequest struct {
	ID string `json:"id"`
}

func (r *DeleteDraftRequest) Validate() error {
	return validateDraftID("delete draft", r.ID)
}

type ExportDraftRequest struct {
	ID string `json:"id"`
	// To is an optional recipient written in the To header
	To string `json:"to,omitempty"`
	// TemplateData feeds the merge tags of the draft
	TemplateData map[string]interface{} `json:"template_data,omitempty"`
}

func (r *ExportDraftRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")
	r.To = strings.TrimSpace(queryParams.Get("to"))
	return r.Validate()
}

func (r *ExportDraftRequest) Validate() error {
	if err := validateDraftID("export draft", r.ID); err != nil {
		return err
	}
	if r.To != "" && !govalidator.IsEmail(r.To) {
		return fmt.Errorf("invalid export draft request: to must be a valid email")
	}
	return nil
}

// DraftExport is a rendered draft serialized as a .eml file
type DraftExport struct {
	Filename string
	Content  []byte
}

func validateDraftID(op, id string) error {
	if id == "" {
		return fmt.Errorf("invalid %s request: id is required", op)
	}
	if !govalidator.IsUUID(id) {
		return fmt.Errorf("invalid %s request: id must be a UUID", op)
	}
	return nil
}
