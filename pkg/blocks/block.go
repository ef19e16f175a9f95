package blocks

import (
	"fmt"
	"strings"
)

// Kind identifies one of the block variants an email can be built from
type Kind string

const (
	KindHeader  Kind = "header"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindButton  Kind = "button"
	KindSpacer  Kind = "spacer"
	KindDivider Kind = "divider"
	KindSocial  Kind = "social"
	KindFooter  Kind = "footer"
)

// Kinds lists every supported kind in palette order
var Kinds = []Kind{
	KindHeader,
	KindText,
	KindImage,
	KindButton,
	KindSpacer,
	KindDivider,
	KindSocial,
	KindFooter,
}

// ParseKind converts a palette token into a Kind
func ParseKind(token string) (Kind, error) {
	k := Kind(strings.TrimSpace(token))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, token)
	}
	return k, nil
}

// IsValid reports whether k belongs to the fixed kind set
func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Field names an editable attribute of a block
type Field string

const (
	FieldContent Field = "content"
	FieldStyle   Field = "style"
	FieldURL     Field = "url"
	FieldSrc     Field = "src"
	FieldAlt     Field = "alt"
	FieldHeight  Field = "height"
)

// ParseField converts a field token into a Field
func ParseField(token string) (Field, error) {
	switch f := Field(token); f {
	case FieldContent, FieldStyle, FieldURL, FieldSrc, FieldAlt, FieldHeight:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, token)
	}
}

// EditableFields returns the fields a block of the given kind carries.
// Style is common to every kind.
func EditableFields(k Kind) []Field {
	switch k {
	case KindHeader, KindText, KindSocial, KindFooter:
		return []Field{FieldContent, FieldStyle}
	case KindImage:
		return []Field{FieldSrc, FieldAlt, FieldStyle}
	case KindButton:
		return []Field{FieldContent, FieldURL, FieldStyle}
	case KindSpacer:
		return []Field{FieldHeight, FieldStyle}
	case KindDivider:
		return []Field{FieldStyle}
	default:
		return nil
	}
}

// HasField reports whether blocks of kind k carry field f
func HasField(k Kind, f Field) bool {
	for _, candidate := range EditableFields(k) {
		if candidate == f {
			return true
		}
	}
	return false
}

// Block is one renderable unit of an email. The set of implementations is
// closed: every kind has exactly one payload shape.
type Block interface {
	GetID() string
	GetKind() Kind
	GetStyle() string
	// FieldValue returns the value of f and whether the kind carries it
	FieldValue(f Field) (string, bool)

	clone() Block
	apply(p Patch)
}

// Base holds the attributes shared by every block
type Base struct {
	ID    string
	Style string
}

func (b *Base) GetID() string {
	if b == nil {
		return ""
	}
	return b.ID
}

func (b *Base) GetStyle() string {
	if b == nil {
		return ""
	}
	return b.Style
}

func (b *Base) applyStyle(p Patch) {
	if p.Style != nil {
		b.Style = *p.Style
	}
}

type HeaderBlock struct {
	Base
	Content string
}

type TextBlock struct {
	Base
	Content string
}

type ImageBlock struct {
	Base
	Src string
	Alt string
}

type ButtonBlock struct {
	Base
	Content string
	URL     string
}

type SpacerBlock struct {
	Base
	Height string
}

type DividerBlock struct {
	Base
}

type SocialBlock struct {
	Base
	Content string
}

type FooterBlock struct {
	Base
	Content string
}

func (b *HeaderBlock) GetKind() Kind  { return KindHeader }
func (b *TextBlock) GetKind() Kind    { return KindText }
func (b *ImageBlock) GetKind() Kind   { return KindImage }
func (b *ButtonBlock) GetKind() Kind  { return KindButton }
func (b *SpacerBlock) GetKind() Kind  { return KindSpacer }
func (b *DividerBlock) GetKind() Kind { return KindDivider }
func (b *SocialBlock) GetKind() Kind  { return KindSocial }
func (b *FooterBlock) GetKind() Kind  { return KindFooter }

func (b *HeaderBlock) clone() Block  { c := *b; return &c }
func (b *TextBlock) clone() Block    { c := *b; return &c }
func (b *ImageBlock) clone() Block   { c := *b; return &c }
func (b *ButtonBlock) clone() Block  { c := *b; return &c }
func (b *SpacerBlock) clone() Block  { c := *b; return &c }
func (b *DividerBlock) clone() Block { c := *b; return &c }
func (b *SocialBlock) clone() Block  { c := *b; return &c }
func (b *FooterBlock) clone() Block  { c := *b; return &c }

func (b *HeaderBlock) FieldValue(f Field) (string, bool) {
	return contentFieldValue(&b.Base, b.Content, f)
}

func (b *TextBlock) FieldValue(f Field) (string, bool) {
	return contentFieldValue(&b.Base, b.Content, f)
}

func (b *SocialBlock) FieldValue(f Field) (string, bool) {
	return contentFieldValue(&b.Base, b.Content, f)
}

func (b *FooterBlock) FieldValue(f Field) (string, bool) {
	return contentFieldValue(&b.Base, b.Content, f)
}

func (b *ImageBlock) FieldValue(f Field) (string, bool) {
	switch f {
	case FieldSrc:
		return b.Src, true
	case FieldAlt:
		return b.Alt, true
	case FieldStyle:
		return b.Style, true
	}
	return "", false
}

func (b *ButtonBlock) FieldValue(f Field) (string, bool) {
	switch f {
	case FieldContent:
		return b.Content, true
	case FieldURL:
		return b.URL, true
	case FieldStyle:
		return b.Style, true
	}
	return "", false
}

func (b *SpacerBlock) FieldValue(f Field) (string, bool) {
	switch f {
	case FieldHeight:
		return b.Height, true
	case FieldStyle:
		return b.Style, true
	}
	return "", false
}

func (b *DividerBlock) FieldValue(f Field) (string, bool) {
	if f == FieldStyle {
		return b.Style, true
	}
	return "", false
}

func contentFieldValue(base *Base, content string, f Field) (string, bool) {
	switch f {
	case FieldContent:
		return content, true
	case FieldStyle:
		return base.Style, true
	}
	return "", false
}

func (b *HeaderBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Content != nil {
		b.Content = *p.Content
	}
}

func (b *TextBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Content != nil {
		b.Content = *p.Content
	}
}

func (b *SocialBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Content != nil {
		b.Content = *p.Content
	}
}

func (b *FooterBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Content != nil {
		b.Content = *p.Content
	}
}

func (b *ImageBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Src != nil {
		b.Src = *p.Src
	}
	if p.Alt != nil {
		b.Alt = *p.Alt
	}
}

func (b *ButtonBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
}

func (b *SpacerBlock) apply(p Patch) {
	b.applyStyle(p)
	if p.Height != nil {
		b.Height = *p.Height
	}
}

func (b *DividerBlock) apply(p Patch) {
	b.applyStyle(p)
}

// Patch is a partial field update. Nil fields are left untouched and fields
// the target kind does not carry are ignored.
type Patch struct {
	Content *string `json:"content,omitempty"`
	Style   *string `json:"style,omitempty"`
	URL     *string `json:"url,omitempty"`
	Src     *string `json:"src,omitempty"`
	Alt     *string `json:"alt,omitempty"`
	Height  *string `json:"height,omitempty"`
}

// Set stores value into the patch slot for f
func (p *Patch) Set(f Field, value string) {
	v := value
	switch f {
	case FieldContent:
		p.Content = &v
	case FieldStyle:
		p.Style = &v
	case FieldURL:
		p.URL = &v
	case FieldSrc:
		p.Src = &v
	case FieldAlt:
		p.Alt = &v
	case FieldHeight:
		p.Height = &v
	}
}

// IsEmpty reports whether the patch carries no field at all
func (p Patch) IsEmpty() bool {
	return p.Content == nil && p.Style == nil && p.URL == nil &&
		p.Src == nil && p.Alt == nil && p.Height == nil
}

// GetKindDisplayName returns a human-readable name for a kind
func GetKindDisplayName(k Kind) string {
	switch k {
	case KindHeader:
		return "Header"
	case KindText:
		return "Text Block"
	case KindImage:
		return "Image"
	case KindButton:
		return "Button"
	case KindSpacer:
		return "Spacer"
	case KindDivider:
		return "Divider"
	case KindSocial:
		return "Social Links"
	case KindFooter:
		return "Footer"
	default:
		s := string(k)
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// GetKindCategory groups kinds for the palette
func GetKindCategory(k Kind) string {
	switch k {
	case KindHeader, KindText, KindFooter:
		return "Text"
	case KindImage, KindButton, KindSocial:
		return "Content"
	case KindSpacer, KindDivider:
		return "Spacing"
	default:
		return "Other"
	}
}
