package blocks

import (
	"fmt"
)

// Document is an ordered sequence of blocks plus the currently selected
// block. Order is rendering order. Identifiers are unique within a document
// and are never handed out twice, even after the block carrying them is
// removed.
//
// A Document is not safe for concurrent use; callers serialize access.
type Document struct {
	blocks     []Block
	selectedID string
	issued     map[string]struct{}
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{issued: make(map[string]struct{})}
}

// NewDocumentFromBlocks builds a document holding copies of the given blocks
// in order
func NewDocumentFromBlocks(list []Block) (*Document, error) {
	doc := NewDocument()
	for i, b := range list {
		if _, err := doc.InsertAt(doc.Len(), b); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	return doc, nil
}

// Len returns the number of blocks
func (d *Document) Len() int {
	return len(d.blocks)
}

// Blocks returns a deep copy of the block sequence
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.clone()
	}
	return out
}

// At returns a copy of the block at index i
func (d *Document) At(i int) (Block, error) {
	if i < 0 || i >= len(d.blocks) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(d.blocks))
	}
	return d.blocks[i].clone(), nil
}

// Get returns a copy of the block with the given id
func (d *Document) Get(id string) (Block, error) {
	i := d.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return d.blocks[i].clone(), nil
}

// IndexOf returns the position of the block with the given id, or -1
func (d *Document) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, b := range d.blocks {
		if b.GetID() == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a block with the given id is present
func (d *Document) Contains(id string) bool {
	return d.IndexOf(id) >= 0
}

// WasIssued reports whether id has ever been used in this document
func (d *Document) WasIssued(id string) bool {
	_, ok := d.issued[id]
	return ok
}

// InsertAt inserts a copy of b at index, clamped to [0, Len()], and returns
// the index the block landed at.
func (d *Document) InsertAt(index int, b Block) (int, error) {
	if b == nil {
		return -1, ErrNilBlock
	}
	id := b.GetID()
	if id == "" {
		return -1, ErrEmptyBlockID
	}
	if !b.GetKind().IsValid() {
		return -1, fmt.Errorf("%w: %q", ErrUnknownKind, string(b.GetKind()))
	}
	if d.WasIssued(id) {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateBlockID, id)
	}
	if d.issued == nil {
		d.issued = make(map[string]struct{})
	}

	index = clamp(index, 0, len(d.blocks))

	d.blocks = append(d.blocks, nil)
	copy(d.blocks[index+1:], d.blocks[index:])
	d.blocks[index] = b.clone()
	d.issued[id] = struct{}{}

	return index, nil
}

// Append inserts a copy of b at the end of the document
func (d *Document) Append(b Block) (int, error) {
	return d.InsertAt(len(d.blocks), b)
}

// MoveTo removes the block at source and reinserts it at target. The target
// is relative to the sequence after removal and is clamped to [0, Len()-1].
// Moving a block onto its own index is a no-op.
func (d *Document) MoveTo(source, target int) error {
	if source < 0 || source >= len(d.blocks) {
		return fmt.Errorf("%w: source %d not in [0,%d)", ErrIndexOutOfRange, source, len(d.blocks))
	}
	target = clamp(target, 0, len(d.blocks)-1)
	if source == target {
		return nil
	}

	moved := d.blocks[source]
	if source < target {
		copy(d.blocks[source:target], d.blocks[source+1:target+1])
	} else {
		copy(d.blocks[target+1:source+1], d.blocks[target:source])
	}
	d.blocks[target] = moved

	return nil
}

// Remove deletes the block with the given id. A selection pointing at the
// removed block is cleared.
func (d *Document) Remove(id string) error {
	i := d.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	copy(d.blocks[i:], d.blocks[i+1:])
	d.blocks[len(d.blocks)-1] = nil
	d.blocks = d.blocks[:len(d.blocks)-1]

	if d.selectedID == id {
		d.selectedID = ""
	}
	return nil
}

// UpdateFields applies patch to the block with the given id. Only fields the
// block's kind carries are written; id and kind never change.
func (d *Document) UpdateFields(id string, patch Patch) error {
	i := d.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	d.blocks[i].apply(patch)
	return nil
}

// Select points the selection at id. An empty id clears the selection. An id
// that is not in the document also clears it and returns ErrSelectionNotFound,
// so the selection never refers to a missing block.
func (d *Document) Select(id string) error {
	if id == "" {
		d.selectedID = ""
		return nil
	}
	if !d.Contains(id) {
		d.selectedID = ""
		return fmt.Errorf("%w: %s", ErrSelectionNotFound, id)
	}
	d.selectedID = id
	return nil
}

// ClearSelection drops the selection pointer
func (d *Document) ClearSelection() {
	d.selectedID = ""
}

// SelectedID returns the id of the selected block, or "" when nothing is selected
func (d *Document) SelectedID() string {
	return d.selectedID
}

// Selected returns a copy of the selected block and whether one is selected
func (d *Document) Selected() (Block, bool) {
	i := d.IndexOf(d.selectedID)
	if i < 0 {
		return nil, false
	}
	return d.blocks[i].clone(), true
}

// Clone returns an independent copy including selection and issued ids
func (d *Document) Clone() *Document {
	c := &Document{
		blocks:     d.Blocks(),
		selectedID: d.selectedID,
		issued:     make(map[string]struct{}, len(d.issued)),
	}
	for id := range d.issued {
		c.issued[id] = struct{}{}
	}
	return c
}

// Kinds returns the kind of each block in order
func (d *Document) Kinds() []Kind {
	out := make([]Kind, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.GetKind()
	}
	return out
}

// IDs returns the id of each block in order
func (d *Document) IDs() []string {
	out := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.GetID()
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
