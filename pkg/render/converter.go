package render

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Notifuse/canvas/pkg/blocks"
)

const (
	bodyBackground    = "#f3f4f6"
	sectionBackground = "#ffffff"
	defaultFontFamily = "Helvetica, Arial, sans-serif"
	defaultTextColor  = "#111827"
)

// socialNetworks are the icons shown under a social block
var socialNetworks = []string{"facebook", "twitter", "youtube", "github"}

// Options controls the MJML document produced for a block list
type Options struct {
	Subject     string
	PreviewText string
	// TemplateData feeds Liquid merge tags found in block fields
	TemplateData map[string]interface{}
	// SocialURL is used as the link of every social icon
	SocialURL string
}

// Converter turns block documents into MJML markup
type Converter struct {
	mergeTags *MergeTagEngine
}

// NewConverter returns a converter with the default merge-tag limits
func NewConverter() *Converter {
	return &Converter{mergeTags: NewMergeTagEngine()}
}

// NewConverterWithEngine returns a converter using the given merge-tag engine
func NewConverterWithEngine(engine *MergeTagEngine) *Converter {
	return &Converter{mergeTags: engine}
}

// ConvertToMJML renders the document with the default converter
func ConvertToMJML(ctx context.Context, doc *blocks.Document, opts Options) (string, error) {
	return NewConverter().Convert(ctx, doc.Blocks(), opts)
}

// Convert renders an ordered block list as a complete MJML document
func (c *Converter) Convert(ctx context.Context, list []blocks.Block, opts Options) (string, error) {
	var sb strings.Builder

	sb.WriteString("<mjml>\n")
	sb.WriteString("  <mj-head>\n")
	if opts.Subject != "" {
		sb.WriteString(fmt.Sprintf("    <mj-title>%s</mj-title>\n", escapeContent(opts.Subject)))
	}
	if opts.PreviewText != "" {
		sb.WriteString(fmt.Sprintf("    <mj-preview>%s</mj-preview>\n", escapeContent(opts.PreviewText)))
	}
	sb.WriteString("    <mj-attributes>\n")
	sb.WriteString(fmt.Sprintf("      <mj-all font-family=\"%s\" />\n", defaultFontFamily))
	sb.WriteString(fmt.Sprintf("      <mj-text color=\"%s\" line-height=\"1.5\" />\n", defaultTextColor))
	sb.WriteString("    </mj-attributes>\n")
	sb.WriteString("  </mj-head>\n")
	sb.WriteString(fmt.Sprintf("  <mj-body background-color=\"%s\">\n", bodyBackground))
	sb.WriteString(fmt.Sprintf("    <mj-section background-color=\"%s\">\n", sectionBackground))
	sb.WriteString("      <mj-column>\n")

	for i, b := range list {
		if b == nil {
			return "", fmt.Errorf("block at index %d is nil", i)
		}
		markup, err := c.convertBlock(ctx, b, opts)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(markup, "\n") {
			sb.WriteString("        ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("      </mj-column>\n")
	sb.WriteString("    </mj-section>\n")
	sb.WriteString("  </mj-body>\n")
	sb.WriteString("</mjml>\n")

	return sb.String(), nil
}

func (c *Converter) field(ctx context.Context, b blocks.Block, f blocks.Field, data map[string]interface{}) (string, error) {
	v, _ := b.FieldValue(f)
	out, err := c.mergeTags.Render(ctx, v, data)
	if err != nil {
		return "", fmt.Errorf("block %s field %s: %w", b.GetID(), f, err)
	}
	return out, nil
}

func (c *Converter) convertBlock(ctx context.Context, b blocks.Block, opts Options) (string, error) {
	attrs := styleAttributes(b.GetStyle())
	if style := strings.TrimSpace(b.GetStyle()); style != "" {
		attrs["css-class"] = style
	}

	switch b.GetKind() {
	case blocks.KindHeader, blocks.KindText, blocks.KindFooter:
		content, err := c.field(ctx, b, blocks.FieldContent, opts.TemplateData)
		if err != nil {
			return "", err
		}
		if b.GetKind() == blocks.KindHeader {
			setDefault(attrs, "font-size", "24px")
			setDefault(attrs, "font-weight", "bold")
		}
		return fmt.Sprintf("<mj-text%s>%s</mj-text>", formatAttributes(attrs), escapeContent(content)), nil

	case blocks.KindSocial:
		content, err := c.field(ctx, b, blocks.FieldContent, opts.TemplateData)
		if err != nil {
			return "", err
		}
		setDefault(attrs, "align", "center")
		link := opts.SocialURL
		if link == "" {
			link = blocks.DefaultButtonURL
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("<mj-text%s>%s</mj-text>\n", formatAttributes(attrs), escapeContent(content)))
		sb.WriteString("<mj-social mode=\"horizontal\" align=\"center\" icon-size=\"32px\">\n")
		for _, network := range socialNetworks {
			sb.WriteString(fmt.Sprintf("  <mj-social-element name=\"%s\" href=\"%s\" />\n", network, escapeAttributeValue(link, "href")))
		}
		sb.WriteString("</mj-social>")
		return sb.String(), nil

	case blocks.KindImage:
		src, err := c.field(ctx, b, blocks.FieldSrc, opts.TemplateData)
		if err != nil {
			return "", err
		}
		alt, err := c.field(ctx, b, blocks.FieldAlt, opts.TemplateData)
		if err != nil {
			return "", err
		}
		delete(attrs, "font-size")
		delete(attrs, "font-weight")
		attrs["src"] = src
		attrs["alt"] = alt
		return fmt.Sprintf("<mj-image%s />", formatAttributes(attrs)), nil

	case blocks.KindButton:
		label, err := c.field(ctx, b, blocks.FieldContent, opts.TemplateData)
		if err != nil {
			return "", err
		}
		href, err := c.field(ctx, b, blocks.FieldURL, opts.TemplateData)
		if err != nil {
			return "", err
		}
		attrs["href"] = href
		setDefault(attrs, "background-color", "#2563eb")
		setDefault(attrs, "color", "#ffffff")
		setDefault(attrs, "align", "center")
		return fmt.Sprintf("<mj-button%s>%s</mj-button>", formatAttributes(attrs), escapeContent(label)), nil

	case blocks.KindSpacer:
		height, _ := b.FieldValue(blocks.FieldHeight)
		return fmt.Sprintf("<mj-spacer height=\"%s\" />", spacingToPixels(height)), nil

	case blocks.KindDivider:
		divider := map[string]string{
			"border-width": "1px",
			"border-color": "#e5e7eb",
		}
		if v, ok := attrs["border-color"]; ok {
			divider["border-color"] = v
		}
		if v, ok := attrs["css-class"]; ok {
			divider["css-class"] = v
		}
		return fmt.Sprintf("<mj-divider%s />", formatAttributes(divider)), nil
	}

	return "", fmt.Errorf("%w: %q", blocks.ErrUnknownKind, string(b.GetKind()))
}

func setDefault(attrs map[string]string, key, value string) {
	if _, ok := attrs[key]; !ok {
		attrs[key] = value
	}
}

// formatAttributes renders attributes in key order with a leading space
func formatAttributes(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf(" %s=\"%s\"", k, escapeAttributeValue(attrs[k], k)))
	}
	return sb.String()
}

func escapeAttributeValue(value string, attributeName string) string {
	isURLAttribute := attributeName == "src" || attributeName == "href"
	looksLikeURL := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "//")

	if !(isURLAttribute && looksLikeURL) {
		value = strings.ReplaceAll(value, "&", "&amp;")
	}
	value = strings.ReplaceAll(value, "\"", "&quot;")
	value = strings.ReplaceAll(value, "'", "&#39;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}

func escapeContent(content string) string {
	content = strings.ReplaceAll(content, "&", "&amp;")
	content = strings.ReplaceAll(content, "<", "&lt;")
	content = strings.ReplaceAll(content, ">", "&gt;")
	return content
}
