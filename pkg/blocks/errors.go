package blocks

import "errors"

var (
	// ErrUnknownKind is returned when a kind token is outside the fixed kind set
	ErrUnknownKind = errors.New("unknown block kind")
	// ErrIndexOutOfRange is returned by MoveTo when the source index does not
	// address a block
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrSelectionNotFound is returned by Select for an id that is not in the document
	ErrSelectionNotFound = errors.New("selected block not found")

	ErrBlockNotFound    = errors.New("block not found")
	ErrDuplicateBlockID = errors.New("block id already used in document")
	ErrNilBlock         = errors.New("block is nil")
	ErrEmptyBlockID     = errors.New("block id is empty")
	ErrUnknownField     = errors.New("unknown block field")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrTemplateNotFound = errors.New("template not found")
)
