package editor

import (
	"fmt"
	"strings"

	"github.com/Notifuse/canvas/pkg/blocks"
)

// DefaultSubject is the subject line of a new email
const DefaultSubject = "Welcome to our newsletter"

// Session is one user's editing session: a block document, the subject
// line, the preview flag, the ephemeral drag state and the inspector.
//
// A Session is not safe for concurrent use. Every method runs to completion
// and leaves the session consistent, so callers only need to serialize calls.
type Session struct {
	doc       *blocks.Document
	subject   string
	preview   bool
	drag      dragState
	inspector *Inspector
	newID     func(blocks.Kind) string
	maxBlocks int
}

// Option configures a Session
type Option func(*Session)

// WithDocument starts the session on doc instead of the seed document
func WithDocument(doc *blocks.Document) Option {
	return func(s *Session) {
		if doc != nil {
			s.doc = doc
		}
	}
}

// WithSubject sets the initial subject line
func WithSubject(subject string) Option {
	return func(s *Session) {
		s.subject = subject
	}
}

// WithIDGenerator replaces the block id generator
func WithIDGenerator(gen func(blocks.Kind) string) Option {
	return func(s *Session) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithMaxBlocks caps the number of blocks palette drops may create.
// Zero means no cap.
func WithMaxBlocks(n int) Option {
	return func(s *Session) {
		s.maxBlocks = n
	}
}

// NewSession returns a session on the seed document
func NewSession(opts ...Option) *Session {
	s := &Session{
		subject: DefaultSubject,
		newID:   blocks.NewBlockID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.doc == nil {
		s.doc = blocks.NewSeedDocument()
	}
	s.doc.ClearSelection()
	s.inspector = NewInspector(s.doc)
	return s
}

// Document returns a copy of the current document
func (s *Session) Document() *blocks.Document {
	return s.doc.Clone()
}

// Blocks returns a copy of the block sequence
func (s *Session) Blocks() []blocks.Block {
	return s.doc.Blocks()
}

// Len returns the number of blocks
func (s *Session) Len() int {
	return s.doc.Len()
}

// Subject returns the subject line
func (s *Session) Subject() string {
	return s.subject
}

// Preview reports whether the session is in read-only preview
func (s *Session) Preview() bool {
	return s.preview
}

// Inspector exposes the side-panel state
func (s *Session) Inspector() *Inspector {
	return s.inspector
}

// SelectedID returns the id of the selected block, or ""
func (s *Session) SelectedID() string {
	return s.doc.SelectedID()
}

// SetSubject changes the subject line
func (s *Session) SetSubject(subject string) error {
	if s.preview {
		return ErrPreviewMode
	}
	s.subject = strings.TrimSpace(subject)
	return nil
}

// SetPreview enters or leaves preview. Either transition clears the
// selection, the drag state and the inspector.
func (s *Session) SetPreview(on bool) {
	s.preview = on
	s.doc.ClearSelection()
	s.drag.reset()
	s.inspector.Reset()
}

// TogglePreview flips the preview flag and returns the new value
func (s *Session) TogglePreview() bool {
	s.SetPreview(!s.preview)
	return s.preview
}

// Select moves the selection to id and loads it into the inspector. An
// empty id clears the selection. An unknown id also clears it and returns
// blocks.ErrSelectionNotFound. Uncommitted edits of the previous block are
// dropped.
func (s *Session) Select(id string) error {
	if s.preview {
		return ErrPreviewMode
	}
	if err := s.doc.Select(id); err != nil {
		s.inspector.Reset()
		return err
	}
	if id == "" {
		s.inspector.Reset()
		return nil
	}
	return s.inspector.Load(id)
}

// SelectAt selects the block at index
func (s *Session) SelectAt(index int) error {
	if s.preview {
		return ErrPreviewMode
	}
	b, err := s.doc.At(index)
	if err != nil {
		return err
	}
	return s.Select(b.GetID())
}

// Edit writes value into the inspector buffer for field
func (s *Session) Edit(field blocks.Field, value string) error {
	if s.preview {
		return ErrPreviewMode
	}
	return s.inspector.Edit(field, value)
}

// Commit writes the inspector buffer back to the document
func (s *Session) Commit() error {
	if s.preview {
		return ErrPreviewMode
	}
	return s.inspector.Commit()
}

// Discard drops uncommitted inspector edits
func (s *Session) Discard() error {
	if s.preview {
		return ErrPreviewMode
	}
	return s.inspector.Discard()
}

// DeleteSelected removes the selected block
func (s *Session) DeleteSelected() error {
	id := s.doc.SelectedID()
	if id == "" {
		return ErrNothingSelected
	}
	return s.DeleteBlock(id)
}

// DeleteBlock removes the block with the given id. Removing the block the
// inspector is bound to returns the inspector to Idle.
func (s *Session) DeleteBlock(id string) error {
	if s.preview {
		return ErrPreviewMode
	}
	if err := s.doc.Remove(id); err != nil {
		return err
	}
	if s.inspector.BlockID() == id {
		s.inspector.Reset()
	}
	return nil
}

// ApplyTemplate replaces the document with a fresh copy of t
func (s *Session) ApplyTemplate(t blocks.Template) error {
	if s.preview {
		return ErrPreviewMode
	}
	doc, err := t.Build()
	if err != nil {
		return fmt.Errorf("failed to build template %q: %w", t.Name, err)
	}
	s.replaceDocument(doc)
	if t.Subject != "" {
		s.subject = t.Subject
	}
	return nil
}

// ReplaceDocument swaps in doc, clearing selection, drag and inspector state
func (s *Session) ReplaceDocument(doc *blocks.Document) error {
	if s.preview {
		return ErrPreviewMode
	}
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	s.replaceDocument(doc.Clone())
	return nil
}

func (s *Session) replaceDocument(doc *blocks.Document) {
	doc.ClearSelection()
	s.doc = doc
	s.drag.reset()
	s.inspector.rebind(doc)
}
