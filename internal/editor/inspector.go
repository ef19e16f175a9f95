package editor

import (
	"fmt"

	"github.com/Notifuse/canvas/pkg/blocks"
)

// InspectorState is the editing state of the side panel
type InspectorState string

const (
	// StateIdle means nothing is selected
	StateIdle InspectorState = "idle"
	// StateSelected means the buffer equals the committed block
	StateSelected InspectorState = "selected"
	// StateEditing means the buffer holds uncommitted changes
	StateEditing InspectorState = "editing"
)

// Buffer is the scratch copy of a block's editable fields
type Buffer struct {
	Content string `json:"content,omitempty"`
	Style   string `json:"style,omitempty"`
	URL     string `json:"url,omitempty"`
	Src     string `json:"src,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Height  string `json:"height,omitempty"`
}

// Get returns the buffered value of f
func (b Buffer) Get(f blocks.Field) string {
	switch f {
	case blocks.FieldContent:
		return b.Content
	case blocks.FieldStyle:
		return b.Style
	case blocks.FieldURL:
		return b.URL
	case blocks.FieldSrc:
		return b.Src
	case blocks.FieldAlt:
		return b.Alt
	case blocks.FieldHeight:
		return b.Height
	}
	return ""
}

func (b *Buffer) set(f blocks.Field, value string) {
	switch f {
	case blocks.FieldContent:
		b.Content = value
	case blocks.FieldStyle:
		b.Style = value
	case blocks.FieldURL:
		b.URL = value
	case blocks.FieldSrc:
		b.Src = value
	case blocks.FieldAlt:
		b.Alt = value
	case blocks.FieldHeight:
		b.Height = value
	}
}

func bufferFromBlock(b blocks.Block) Buffer {
	var buf Buffer
	for _, f := range blocks.EditableFields(b.GetKind()) {
		v, _ := b.FieldValue(f)
		buf.set(f, v)
	}
	return buf
}

// Inspector mirrors the selected block into a scratch buffer. Edits stay in
// the buffer until Commit writes them to the document.
type Inspector struct {
	doc       *blocks.Document
	blockID   string
	kind      blocks.Kind
	committed Buffer
	buffer    Buffer
	active    blocks.Field
}

// NewInspector returns an idle inspector bound to doc
func NewInspector(doc *blocks.Document) *Inspector {
	return &Inspector{doc: doc}
}

// State reports the current editing state
func (i *Inspector) State() InspectorState {
	if i.blockID == "" {
		return StateIdle
	}
	if i.buffer != i.committed {
		return StateEditing
	}
	return StateSelected
}

// BlockID returns the id of the block being inspected
func (i *Inspector) BlockID() string {
	return i.blockID
}

// Kind returns the kind of the block being inspected
func (i *Inspector) Kind() blocks.Kind {
	return i.kind
}

// Buffer returns the scratch buffer
func (i *Inspector) Buffer() Buffer {
	return i.buffer
}

// ActiveField returns the field edited last, if any
func (i *Inspector) ActiveField() blocks.Field {
	return i.active
}

// Fields lists the fields the inspected block exposes
func (i *Inspector) Fields() []blocks.Field {
	if i.blockID == "" {
		return nil
	}
	return blocks.EditableFields(i.kind)
}

// Load binds the inspector to the block with the given id, dropping any
// uncommitted edits of the previous block
func (i *Inspector) Load(id string) error {
	b, err := i.doc.Get(id)
	if err != nil {
		i.Reset()
		return err
	}
	i.blockID = id
	i.kind = b.GetKind()
	i.committed = bufferFromBlock(b)
	i.buffer = i.committed
	i.active = ""
	return nil
}

// Reset returns the inspector to Idle
func (i *Inspector) Reset() {
	*i = Inspector{doc: i.doc}
}

// rebind points the inspector at a new document and resets it
func (i *Inspector) rebind(doc *blocks.Document) {
	*i = Inspector{doc: doc}
}

// Edit changes one buffered field. The document is not touched.
func (i *Inspector) Edit(f blocks.Field, value string) error {
	if i.blockID == "" {
		return ErrNothingSelected
	}
	if !blocks.HasField(i.kind, f) {
		return fmt.Errorf("%w: %s on %s", ErrFieldNotEditable, f, i.kind)
	}
	i.buffer.set(f, value)
	i.active = f
	return nil
}

// Value returns the live buffered value of f
func (i *Inspector) Value(f blocks.Field) (string, error) {
	if i.blockID == "" {
		return "", ErrNothingSelected
	}
	if !blocks.HasField(i.kind, f) {
		return "", fmt.Errorf("%w: %s on %s", ErrFieldNotEditable, f, i.kind)
	}
	return i.buffer.Get(f), nil
}

// Patch returns the buffered fields the inspected kind carries
func (i *Inspector) Patch() blocks.Patch {
	var p blocks.Patch
	for _, f := range blocks.EditableFields(i.kind) {
		p.Set(f, i.buffer.Get(f))
	}
	return p
}

// Commit writes the buffer back to the document and returns to Selected
func (i *Inspector) Commit() error {
	if i.blockID == "" {
		return ErrNothingSelected
	}
	if err := i.doc.UpdateFields(i.blockID, i.Patch()); err != nil {
		i.Reset()
		return err
	}
	return i.Load(i.blockID)
}

// Discard reloads the buffer from the document
func (i *Inspector) Discard() error {
	if i.blockID == "" {
		return ErrNothingSelected
	}
	return i.Load(i.blockID)
}
