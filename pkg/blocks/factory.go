package blocks

import (
	"fmt"

	"github.com/google/uuid"
)

// Default values handed to blocks created from the palette
const (
	DefaultImageSrc = "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=800&q=80"

	DefaultHeaderStyle  = "text-2xl font-bold text-center py-4"
	DefaultTextStyle    = "text-base mb-4"
	DefaultImageStyle   = "w-full h-48 object-cover rounded-lg mb-4"
	DefaultButtonStyle  = "bg-blue-600 text-white px-4 py-2 rounded-md inline-block mx-auto"
	DefaultDividerStyle = "border-t border-gray-200 my-4"
	DefaultSocialStyle  = "text-center mb-2"
	DefaultFooterStyle  = "text-sm text-center text-gray-500 mt-4"
	DefaultSpacerHeight = "h-8"
	DefaultButtonURL    = "https://example.com"
	DefaultFooterText   = "© 2023 Your Company. All rights reserved."
)

// NewBlockID returns a fresh identifier for a block of the given kind
func NewBlockID(k Kind) string {
	return fmt.Sprintf("%s-%s", k, uuid.New().String())
}

// NewBlock creates a block of kind k carrying the palette defaults.
// An empty id is replaced by a freshly generated one.
func NewBlock(k Kind, id string) (Block, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	if id == "" {
		id = NewBlockID(k)
	}

	switch k {
	case KindHeader:
		return &HeaderBlock{Base: Base{ID: id, Style: DefaultHeaderStyle}, Content: "New Header"}, nil
	case KindText:
		return &TextBlock{Base: Base{ID: id, Style: DefaultTextStyle}, Content: "Add your text here"}, nil
	case KindImage:
		return &ImageBlock{Base: Base{ID: id, Style: DefaultImageStyle}, Src: DefaultImageSrc, Alt: "Image"}, nil
	case KindButton:
		return &ButtonBlock{Base: Base{ID: id, Style: DefaultButtonStyle}, Content: "Click Me", URL: DefaultButtonURL}, nil
	case KindSpacer:
		return &SpacerBlock{Base: Base{ID: id}, Height: DefaultSpacerHeight}, nil
	case KindDivider:
		return &DividerBlock{Base: Base{ID: id, Style: DefaultDividerStyle}}, nil
	case KindSocial:
		return &SocialBlock{Base: Base{ID: id, Style: DefaultSocialStyle}, Content: "Follow Us"}, nil
	case KindFooter:
		return &FooterBlock{Base: Base{ID: id, Style: DefaultFooterStyle}, Content: DefaultFooterText}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// NewBlockFromToken parses token and creates a block with a fresh id
func NewBlockFromToken(token string) (Block, error) {
	k, err := ParseKind(token)
	if err != nil {
		return nil, err
	}
	return NewBlock(k, "")
}

// PaletteEntry describes one kind offered for insertion
type PaletteEntry struct {
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Fields   []Field `json:"fields"`
}

// Palette returns the fixed catalog of insertable kinds
func Palette() []PaletteEntry {
	entries := make([]PaletteEntry, 0, len(Kinds))
	for _, k := range Kinds {
		entries = append(entries, PaletteEntry{
			Kind:     k,
			Name:     GetKindDisplayName(k),
			Category: GetKindCategory(k),
			Fields:   EditableFields(k),
		})
	}
	return entries
}

// NewSeedDocument returns the starter newsletter every new editor opens with
func NewSeedDocument() *Document {
	doc := NewDocument()
	seed := []Block{
		&HeaderBlock{Base: Base{ID: "header-1", Style: DefaultHeaderStyle}, Content: "Welcome to Our Newsletter"},
		&ImageBlock{Base: Base{ID: "image-1", Style: DefaultImageStyle}, Src: DefaultImageSrc, Alt: "Header image"},
		&TextBlock{Base: Base{ID: "text-1", Style: DefaultTextStyle}, Content: "Hello there! We're excited to have you join our community."},
		&TextBlock{Base: Base{ID: "text-2", Style: DefaultTextStyle}, Content: "Check out our latest updates and news below."},
		&ButtonBlock{Base: Base{ID: "button-1", Style: DefaultButtonStyle}, Content: "Read More", URL: DefaultButtonURL},
		&SpacerBlock{Base: Base{ID: "spacer-1"}, Height: DefaultSpacerHeight},
		&DividerBlock{Base: Base{ID: "divider-1", Style: DefaultDividerStyle}},
		&FooterBlock{Base: Base{ID: "footer-1", Style: DefaultFooterStyle}, Content: DefaultFooterText},
	}
	for _, b := range seed {
		// seed ids are distinct, insertion cannot fail
		_, _ = doc.InsertAt(doc.Len(), b)
	}
	return doc
}
