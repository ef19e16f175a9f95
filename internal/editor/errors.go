package editor

import "errors"

var (
	// ErrPreviewMode is returned for any mutation attempted while the session
	// shows the read-only preview
	ErrPreviewMode = errors.New("editor is in preview mode")

	ErrNothingSelected  = errors.New("no block selected")
	ErrFieldNotEditable = errors.New("field is not editable for the selected block")
	ErrEmptyPayload     = errors.New("drag payload carries neither a block kind nor a block index")
	ErrNoDropTarget     = errors.New("relocation dropped outside any block")
	ErrSamePosition     = errors.New("block dropped onto its own position")
	ErrNoDragInProgress = errors.New("no drag in progress")
	ErrDocumentFull     = errors.New("document has reached its maximum number of blocks")
)
