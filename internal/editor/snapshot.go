package editor

import "github.com/Notifuse/canvas/pkg/blocks"

// InspectorSnapshot is the observable inspector state
type InspectorSnapshot struct {
	State       InspectorState `json:"state"`
	BlockID     string         `json:"block_id,omitempty"`
	Kind        blocks.Kind    `json:"kind,omitempty"`
	Fields      []blocks.Field `json:"fields,omitempty"`
	Buffer      *Buffer        `json:"buffer,omitempty"`
	ActiveField blocks.Field   `json:"active_field,omitempty"`
}

// Snapshot is a point-in-time copy of a session
type Snapshot struct {
	Subject    string             `json:"subject"`
	Preview    bool               `json:"preview"`
	SelectedID string             `json:"selected_id,omitempty"`
	Blocks     []blocks.BlockJSON `json:"blocks"`
	Inspector  InspectorSnapshot  `json:"inspector"`
	Drag       DragSnapshot       `json:"drag"`
}

// Snapshot copies the session state
func (s *Session) Snapshot() Snapshot {
	list := s.doc.Blocks()
	records := make([]blocks.BlockJSON, len(list))
	for i, b := range list {
		records[i] = blocks.ToBlockJSON(b)
	}

	insp := InspectorSnapshot{State: s.inspector.State()}
	if insp.State != StateIdle {
		buf := s.inspector.Buffer()
		insp.BlockID = s.inspector.BlockID()
		insp.Kind = s.inspector.Kind()
		insp.Fields = s.inspector.Fields()
		insp.Buffer = &buf
		insp.ActiveField = s.inspector.ActiveField()
	}

	return Snapshot{
		Subject:    s.subject,
		Preview:    s.preview,
		SelectedID: s.doc.SelectedID(),
		Blocks:     records,
		Inspector:  insp,
		Drag:       s.Drag(),
	}
}
