package render

import (
	"context"
	"fmt"
	"strings"

	mjmlgo "github.com/Boostport/mjml-go"

	"github.com/Notifuse/canvas/pkg/blocks"
)

// Request describes one rendering of a block document
type Request struct {
	Document *blocks.Document
	Options  Options
	// SkipHTML stops after the MJML step
	SkipHTML bool
}

// Result holds every rendering of a document. Error is set when a step
// failed; the outputs produced before the failing step are kept.
type Result struct {
	Success bool          `json:"success"`
	MJML    string        `json:"mjml,omitempty"`
	HTML    string        `json:"html,omitempty"`
	Text    string        `json:"text,omitempty"`
	Error   *mjmlgo.Error `json:"error,omitempty"`
}

// CompileHTML compiles MJML markup into email HTML
func CompileHTML(ctx context.Context, mjml string) (string, error) {
	html, err := mjmlgo.ToHTML(ctx, mjml)
	if err != nil {
		return "", fmt.Errorf("failed to compile MJML: %w", err)
	}
	return decodeURLEntities(html), nil
}

// Render converts the document to MJML, compiles it to HTML and derives a
// plain-text alternative
func Render(ctx context.Context, req Request) (*Result, error) {
	if req.Document == nil {
		return nil, fmt.Errorf("document cannot be nil")
	}

	mjml, err := NewConverter().Convert(ctx, req.Document.Blocks(), req.Options)
	if err != nil {
		return &Result{
			Success: false,
			Error:   &mjmlgo.Error{Message: err.Error()},
		}, nil
	}
	if req.SkipHTML {
		return &Result{Success: true, MJML: mjml}, nil
	}

	html, err := mjmlgo.ToHTML(ctx, mjml)
	if err != nil {
		return &Result{
			Success: false,
			MJML:    mjml,
			Error:   &mjmlgo.Error{Message: err.Error()},
		}, nil
	}
	html = decodeURLEntities(html)

	text, err := PlainText(html)
	if err != nil {
		return nil, err
	}

	return &Result{
		Success: true,
		MJML:    mjml,
		HTML:    html,
		Text:    text,
	}, nil
}

// decodeURLEntities restores raw ampersands inside href and src values,
// which the MJML compiler leaves entity-encoded and breaks query strings
func decodeURLEntities(html string) string {
	var sb strings.Builder
	rest := html
	for {
		i := indexURLAttribute(rest)
		if i < 0 {
			sb.WriteString(rest)
			break
		}
		start := i + strings.IndexByte(rest[i:], '"') + 1
		end := strings.IndexByte(rest[start:], '"')
		if end < 0 {
			sb.WriteString(rest)
			break
		}
		end += start
		sb.WriteString(rest[:start])
		sb.WriteString(strings.ReplaceAll(rest[start:end], "&amp;", "&"))
		rest = rest[end:]
	}
	return sb.String()
}

func indexURLAttribute(s string) int {
	h := strings.Index(s, `href="`)
	r := strings.Index(s, `src="`)
	switch {
	case h < 0:
		return r
	case r < 0:
		return h
	case h < r:
		return h
	default:
		return r
	}
}
