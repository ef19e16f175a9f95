package blocks

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// TemplateBlock describes one block of a starter template. Nil fields keep
// the palette default of the kind.
type TemplateBlock struct {
	Kind    Kind    `yaml:"kind" json:"kind"`
	Style   *string `yaml:"style,omitempty" json:"style,omitempty"`
	Content *string `yaml:"content,omitempty" json:"content,omitempty"`
	URL     *string `yaml:"url,omitempty" json:"url,omitempty"`
	Src     *string `yaml:"src,omitempty" json:"src,omitempty"`
	Alt     *string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Height  *string `yaml:"height,omitempty" json:"height,omitempty"`
}

// Template is a named starter layout
type Template struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Subject     string          `yaml:"subject" json:"subject"`
	Blocks      []TemplateBlock `yaml:"blocks" json:"blocks"`
}

// Catalog holds the starter templates in display order
type Catalog struct {
	Templates []Template `yaml:"templates" json:"templates"`
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// ParseCatalog decodes and checks a YAML template catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Templates))
	for i, t := range c.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("template %d: name is required", i)
		}
		key := strings.ToLower(t.Name)
		if seen[key] {
			return nil, fmt.Errorf("template %q declared twice", t.Name)
		}
		seen[key] = true
		for j, b := range t.Blocks {
			if !b.Kind.IsValid() {
				return nil, fmt.Errorf("template %q block %d: %w: %q", t.Name, j, ErrUnknownKind, string(b.Kind))
			}
		}
	}
	return &c, nil
}

// DefaultCatalog returns the embedded starter templates
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// Names lists template names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Templates))
	for i, t := range c.Templates {
		names[i] = t.Name
	}
	return names
}

// Find looks a template up by name, ignoring case
func (c *Catalog) Find(name string) (Template, error) {
	for _, t := range c.Templates {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

// Build creates a new document from the template with fresh block ids
func (t Template) Build() (*Document, error) {
	doc := NewDocument()
	for i, tb := range t.Blocks {
		b, err := NewBlock(tb.Kind, "")
		if err != nil {
			return nil, fmt.Errorf("template %q block %d: %w", t.Name, i, err)
		}
		b.apply(Patch{
			Style:   tb.Style,
			Content: tb.Content,
			URL:     tb.URL,
			Src:     tb.Src,
			Alt:     tb.Alt,
			Height:  tb.Height,
		})
		if _, err := doc.Append(b); err != nil {
			return nil, fmt.Errorf("template %q block %d: %w", t.Name, i, err)
		}
	}
	return doc, nil
}
