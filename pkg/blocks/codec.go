package blocks

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// BlockJSON is the serialized form of a single block. Fields the kind does
// not carry are omitted on encode and ignored on decode.
type BlockJSON struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Style   string `json:"style,omitempty"`
	Content string `json:"content,omitempty"`
	Src     string `json:"src,omitempty"`
	Alt     string `json:"alt,omitempty"`
	URL     string `json:"url,omitempty"`
	Height  string `json:"height,omitempty"`
}

// ToBlockJSON flattens a typed block into its record form
func ToBlockJSON(b Block) BlockJSON {
	rec := BlockJSON{
		ID:    b.GetID(),
		Kind:  b.GetKind(),
		Style: b.GetStyle(),
	}
	switch v := b.(type) {
	case *HeaderBlock:
		rec.Content = v.Content
	case *TextBlock:
		rec.Content = v.Content
	case *SocialBlock:
		rec.Content = v.Content
	case *FooterBlock:
		rec.Content = v.Content
	case *ImageBlock:
		rec.Src = v.Src
		rec.Alt = v.Alt
	case *ButtonBlock:
		rec.Content = v.Content
		rec.URL = v.URL
	case *SpacerBlock:
		rec.Height = v.Height
	}
	return rec
}

// ToBlock builds the typed block for the record's kind
func (r BlockJSON) ToBlock() (Block, error) {
	if r.ID == "" {
		return nil, ErrEmptyBlockID
	}
	base := Base{ID: r.ID, Style: r.Style}

	switch r.Kind {
	case KindHeader:
		return &HeaderBlock{Base: base, Content: r.Content}, nil
	case KindText:
		return &TextBlock{Base: base, Content: r.Content}, nil
	case KindImage:
		return &ImageBlock{Base: base, Src: r.Src, Alt: r.Alt}, nil
	case KindButton:
		return &ButtonBlock{Base: base, Content: r.Content, URL: r.URL}, nil
	case KindSpacer:
		return &SpacerBlock{Base: base, Height: r.Height}, nil
	case KindDivider:
		return &DividerBlock{Base: base}, nil
	case KindSocial:
		return &SocialBlock{Base: base, Content: r.Content}, nil
	case KindFooter:
		return &FooterBlock{Base: base, Content: r.Content}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(r.Kind))
}

// MarshalBlock encodes a single block
func MarshalBlock(b Block) ([]byte, error) {
	if b == nil {
		return nil, ErrNilBlock
	}
	return json.Marshal(ToBlockJSON(b))
}

// UnmarshalBlock decodes a single block, checking the kind discriminant
// before decoding the payload
func UnmarshalBlock(data []byte) (Block, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed block JSON", ErrInvalidDocument)
	}
	kindResult := gjson.GetBytes(data, "kind")
	if !kindResult.Exists() {
		return nil, fmt.Errorf("%w: missing kind", ErrInvalidDocument)
	}
	if _, err := ParseKind(kindResult.String()); err != nil {
		return nil, err
	}

	var rec BlockJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block JSON: %w", err)
	}
	return rec.ToBlock()
}

// UnmarshalBlocks decodes a JSON array of blocks
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blocks array: %w", err)
	}
	out := make([]Block, len(raw))
	for i, r := range raw {
		b, err := UnmarshalBlock(r)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal block at index %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

// MarshalJSON implements json.Marshaler. Selection is editor state and is
// not persisted.
func (d *Document) MarshalJSON() ([]byte, error) {
	records := make([]BlockJSON, len(d.blocks))
	for i, b := range d.blocks {
		records[i] = ToBlockJSON(b)
	}
	return json.Marshal(struct {
		Blocks []BlockJSON `json:"blocks"`
	}{Blocks: records})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded document has no
// selection and its issued ids are the ids it contains.
func (d *Document) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed document JSON", ErrInvalidDocument)
	}
	blocksResult := gjson.GetBytes(data, "blocks")
	if !blocksResult.IsArray() {
		return fmt.Errorf("%w: blocks must be an array", ErrInvalidDocument)
	}

	list, err := UnmarshalBlocks([]byte(blocksResult.Raw))
	if err != nil {
		return err
	}
	decoded, err := NewDocumentFromBlocks(list)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	*d = *decoded
	return nil
}

// ParseDocument validates data against the document schema and decodes it
func ParseDocument(data []byte) (*Document, error) {
	if err := ValidateDocumentJSON(data); err != nil {
		return nil, err
	}
	doc := NewDocument()
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// Value implements driver.Valuer for database storage
func (d *Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for database retrieval
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = *NewDocument()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("type assertion to []byte failed")
	}

	return d.UnmarshalJSON(data)
}
