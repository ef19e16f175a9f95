package editor

import (
	"fmt"

	"github.com/Notifuse/canvas/pkg/blocks"
)

// DragPayload is what a drag carries. BlockKind is set for a palette drag,
// BlockIndex for the relocation of an existing block. When both are set the
// relocation wins.
type DragPayload struct {
	BlockKind  string `json:"block_kind,omitempty"`
	BlockIndex *int   `json:"block_index,omitempty"`
}

// IsRelocation reports whether the payload moves an existing block
func (p DragPayload) IsRelocation() bool {
	return p.BlockIndex != nil
}

// DropOutcome tells what a drop did to the document
type DropOutcome string

const (
	OutcomeInserted DropOutcome = "inserted"
	OutcomeMoved    DropOutcome = "moved"
	OutcomeIgnored  DropOutcome = "ignored"
)

// DropResult describes the effect of a drop. Index and BlockID are set when
// the document changed; Err explains an ignored drop.
type DropResult struct {
	Outcome DropOutcome `json:"outcome"`
	Index   int         `json:"index"`
	BlockID string      `json:"block_id,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Err     error       `json:"-"`
}

// Changed reports whether the drop mutated the document
func (r DropResult) Changed() bool {
	return r.Outcome == OutcomeInserted || r.Outcome == OutcomeMoved
}

func ignored(err error) DropResult {
	return DropResult{Outcome: OutcomeIgnored, Index: -1, Reason: err.Error(), Err: err}
}

type dragState struct {
	payload   *DragPayload
	overIndex *int
}

func (d *dragState) reset() {
	d.payload = nil
	d.overIndex = nil
}

// DragSnapshot is the observable drag state
type DragSnapshot struct {
	Payload   *DragPayload `json:"payload,omitempty"`
	OverIndex *int         `json:"over_index,omitempty"`
}

// Drag returns the current drag state
func (s *Session) Drag() DragSnapshot {
	var snap DragSnapshot
	if s.drag.payload != nil {
		p := *s.drag.payload
		if p.BlockIndex != nil {
			idx := *p.BlockIndex
			p.BlockIndex = &idx
		}
		snap.Payload = &p
	}
	if s.drag.overIndex != nil {
		idx := *s.drag.overIndex
		snap.OverIndex = &idx
	}
	return snap
}

// StartPaletteDrag begins dragging a new block of the given kind
func (s *Session) StartPaletteDrag(kind string) error {
	if s.preview {
		return ErrPreviewMode
	}
	k, err := blocks.ParseKind(kind)
	if err != nil {
		return err
	}
	s.drag.payload = &DragPayload{BlockKind: string(k)}
	s.drag.overIndex = nil
	return nil
}

// StartBlockDrag begins relocating the block at index
func (s *Session) StartBlockDrag(index int) error {
	if s.preview {
		return ErrPreviewMode
	}
	if index < 0 || index >= s.doc.Len() {
		return fmt.Errorf("%w: %d", blocks.ErrIndexOutOfRange, index)
	}
	idx := index
	s.drag.payload = &DragPayload{BlockIndex: &idx}
	s.drag.overIndex = nil
	return nil
}

// DragOver records the block index currently under the pointer
func (s *Session) DragOver(index int) error {
	if s.preview {
		return ErrPreviewMode
	}
	if s.drag.payload == nil {
		return ErrNoDragInProgress
	}
	idx := index
	s.drag.overIndex = &idx
	return nil
}

// DragLeave forgets the hovered index, so a drop lands outside any block
func (s *Session) DragLeave() {
	s.drag.overIndex = nil
}

// CancelDrag abandons the current drag
func (s *Session) CancelDrag() {
	s.drag.reset()
}

// Drop completes the current drag on the hovered index and resets the drag
// state whatever the outcome
func (s *Session) Drop() DropResult {
	payload, over := s.drag.payload, s.drag.overIndex
	s.drag.reset()

	if s.preview {
		return ignored(ErrPreviewMode)
	}
	if payload == nil {
		return ignored(ErrNoDragInProgress)
	}
	return s.DropAt(*payload, over)
}

// DropAt applies payload at target. A nil target means the drop happened
// outside any block: a palette drop appends, a relocation is ignored.
func (s *Session) DropAt(payload DragPayload, target *int) DropResult {
	if s.preview {
		return ignored(ErrPreviewMode)
	}

	if payload.BlockIndex != nil {
		return s.relocate(*payload.BlockIndex, target)
	}
	if payload.BlockKind != "" {
		return s.insert(payload.BlockKind, target)
	}
	return ignored(ErrEmptyPayload)
}

func (s *Session) relocate(source int, target *int) DropResult {
	if target == nil {
		return ignored(ErrNoDropTarget)
	}
	moved, err := s.doc.At(source)
	if err != nil {
		return ignored(err)
	}

	// target is relative to the sequence without the moved block
	dest := *target
	if dest < 0 {
		dest = 0
	}
	if last := s.doc.Len() - 1; dest > last {
		dest = last
	}
	if dest == source {
		return ignored(ErrSamePosition)
	}

	if err := s.doc.MoveTo(source, dest); err != nil {
		return ignored(err)
	}

	return DropResult{
		Outcome: OutcomeMoved,
		Index:   s.doc.IndexOf(moved.GetID()),
		BlockID: moved.GetID(),
	}
}

func (s *Session) insert(kind string, target *int) DropResult {
	k, err := blocks.ParseKind(kind)
	if err != nil {
		return ignored(err)
	}
	if s.maxBlocks > 0 && s.doc.Len() >= s.maxBlocks {
		return ignored(ErrDocumentFull)
	}

	b, err := blocks.NewBlock(k, s.newID(k))
	if err != nil {
		return ignored(err)
	}

	index := s.doc.Len()
	if target != nil {
		index = *target
	}
	at, err := s.doc.InsertAt(index, b)
	if err != nil {
		return ignored(err)
	}

	return DropResult{
		Outcome: OutcomeInserted,
		Index:   at,
		BlockID: b.GetID(),
	}
}
