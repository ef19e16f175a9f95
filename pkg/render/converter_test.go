package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/canvas/pkg/blocks"
)

func TestConvertToMJML_SeedDocument(t *testing.T) {
	mjml, err := ConvertToMJML(context.Background(), blocks.NewSeedDocument(), Options{
		Subject:     "Welcome to our newsletter",
		PreviewText: "News & updates",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(mjml, "<mjml>"))
	assert.Contains(t, mjml, "<mj-title>Welcome to our newsletter</mj-title>")
	assert.Contains(t, mjml, "<mj-preview>News &amp; updates</mj-preview>")
	assert.Contains(t, mjml, `align="center" css-class="text-2xl font-bold text-center py-4" font-size="24px" font-weight="bold">Welcome to Our Newsletter</mj-text>`)
	assert.Contains(t, mjml, `<mj-image alt="Header image"`)
	assert.Contains(t, mjml, `href="https://example.com"`)
	assert.Contains(t, mjml, ">Read More</mj-button>")
	assert.Contains(t, mjml, `<mj-spacer height="32px" />`)
	assert.Contains(t, mjml, `<mj-divider border-color="#e5e7eb" border-width="1px"`)
	assert.Contains(t, mjml, "© 2023 Your Company. All rights reserved.")

	// blocks keep document order
	header := strings.Index(mjml, "Welcome to Our Newsletter</mj-text>")
	button := strings.Index(mjml, "Read More</mj-button>")
	footer := strings.Index(mjml, "© 2023")
	assert.True(t, header < button && button < footer)
}

func TestConverter_MergeTags(t *testing.T) {
	doc := blocks.NewDocument()
	_, err := doc.Append(&blocks.TextBlock{Base: blocks.Base{ID: "t"}, Content: "Hi {{ contact.first_name }}!"})
	require.NoError(t, err)
	_, err = doc.Append(&blocks.ButtonBlock{Base: blocks.Base{ID: "b"}, Content: "Open", URL: "https://example.com/u/{{ contact.id }}"})
	require.NoError(t, err)

	mjml, err := ConvertToMJML(context.Background(), doc, Options{
		TemplateData: map[string]interface{}{
			"contact": map[string]interface{}{"first_name": "<Ada>", "id": "42"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, mjml, ">Hi &lt;Ada&gt;!</mj-text>")
	assert.Contains(t, mjml, `href="https://example.com/u/42"`)
}

func TestConverter_MergeTagError(t *testing.T) {
	doc := blocks.NewDocument()
	_, err := doc.Append(&blocks.TextBlock{Base: blocks.Base{ID: "broken"}, Content: "{% if %}"})
	require.NoError(t, err)

	_, err = ConvertToMJML(context.Background(), doc, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block broken field content")
}

func TestConverter_SocialBlock(t *testing.T) {
	doc := blocks.NewDocument()
	social, err := blocks.NewBlock(blocks.KindSocial, "s")
	require.NoError(t, err)
	_, err = doc.Append(social)
	require.NoError(t, err)

	mjml, err := ConvertToMJML(context.Background(), doc, Options{SocialURL: "https://notifuse.com"})
	require.NoError(t, err)
	assert.Contains(t, mjml, ">Follow Us</mj-text>")
	assert.Equal(t, 4, strings.Count(mjml, "<mj-social-element"))
	assert.Contains(t, mjml, `href="https://notifuse.com"`)
}

func TestConverter_NilBlock(t *testing.T) {
	_, err := NewConverter().Convert(context.Background(), []blocks.Block{nil}, Options{})
	assert.Error(t, err)
}

func TestStyleAttributes(t *testing.T) {
	attrs := styleAttributes("text-sm text-center text-gray-500 mt-4")
	assert.Equal(t, map[string]string{
		"font-size": "14px",
		"align":     "center",
		"color":     "#6b7280",
	}, attrs)

	attrs = styleAttributes(blocks.DefaultButtonStyle)
	assert.Equal(t, "#2563eb", attrs["background-color"])
	assert.Equal(t, "#ffffff", attrs["color"])
	assert.Equal(t, "6px", attrs["border-radius"])

	assert.Empty(t, styleAttributes(""))
}

func TestSpacingToPixels(t *testing.T) {
	assert.Equal(t, "32px", spacingToPixels("h-8"))
	assert.Equal(t, "48px", spacingToPixels("h-12"))
	assert.Equal(t, "20px", spacingToPixels("20px"))
	assert.Equal(t, "32px", spacingToPixels("tall"))
}

func TestMergeTagEngine(t *testing.T) {
	engine := NewMergeTagEngine()

	out, err := engine.Render(context.Background(), "plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)

	out, err = engine.Render(context.Background(), "Hello {{ name | upcase }}", map[string]interface{}{"name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello ADA", out)

	out, err = engine.Render(context.Background(), "Hi {{ missing }}", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi ", out)

	small := NewMergeTagEngineWithLimits(time.Second, 8)
	_, err = small.Render(context.Background(), "{{ a }}{{ b }}{{ c }}", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum allowed size")
}
