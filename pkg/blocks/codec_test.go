package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockSummary struct {
	Kind    Kind
	Content string
	URL     string
	Src     string
	Alt     string
	Height  string
	Style   string
}

func summarize(d *Document) []blockSummary {
	out := make([]blockSummary, 0, d.Len())
	for _, b := range d.Blocks() {
		rec := ToBlockJSON(b)
		out = append(out, blockSummary{
			Kind:    rec.Kind,
			Content: rec.Content,
			URL:     rec.URL,
			Src:     rec.Src,
			Alt:     rec.Alt,
			Height:  rec.Height,
			Style:   rec.Style,
		})
	}
	return out
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := NewSeedDocument()
	social, _ := NewBlock(KindSocial, "")
	_, err := doc.InsertAt(7, social)
	require.NoError(t, err)
	require.NoError(t, doc.UpdateFields("text-1", Patch{Content: strPtr("Hi {{ contact.first_name }}")}))
	require.NoError(t, doc.MoveTo(4, 1))
	require.NoError(t, doc.Select("text-2"))

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	decoded := NewDocument()
	require.NoError(t, json.Unmarshal(data, decoded))

	assert.Equal(t, summarize(doc), summarize(decoded))
	assert.Equal(t, doc.IDs(), decoded.IDs())
	assert.Equal(t, "", decoded.SelectedID(), "selection is not persisted")
	for _, id := range doc.IDs() {
		assert.True(t, decoded.WasIssued(id))
	}
}

func TestDocument_MarshalJSON_Shape(t *testing.T) {
	doc := NewDocument()
	_, err := doc.Append(&SpacerBlock{Base: Base{ID: "s1"}, Height: "h-4"})
	require.NoError(t, err)
	_, err = doc.Append(&ButtonBlock{Base: Base{ID: "b1", Style: "btn"}, Content: "Go", URL: "https://example.com"})
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"blocks":[
		{"id":"s1","kind":"spacer","height":"h-4"},
		{"id":"b1","kind":"button","style":"btn","content":"Go","url":"https://example.com"}
	]}`, string(data))
}

func TestUnmarshalBlock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    Kind
		wantErr error
	}{
		{name: "header", input: `{"id":"h","kind":"header","content":"Hello"}`, kind: KindHeader},
		{name: "divider", input: `{"id":"d","kind":"divider","style":"border-t"}`, kind: KindDivider},
		{name: "foreign field ignored", input: `{"id":"s","kind":"spacer","url":"https://x"}`, kind: KindSpacer},
		{name: "unknown kind", input: `{"id":"v","kind":"video"}`, wantErr: ErrUnknownKind},
		{name: "missing kind", input: `{"id":"v"}`, wantErr: ErrInvalidDocument},
		{name: "missing id", input: `{"kind":"text"}`, wantErr: ErrEmptyBlockID},
		{name: "malformed", input: `{"id":`, wantErr: ErrInvalidDocument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := UnmarshalBlock([]byte(tc.input))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, b.GetKind())
		})
	}
}

func TestMarshalBlock(t *testing.T) {
	_, err := MarshalBlock(nil)
	assert.ErrorIs(t, err, ErrNilBlock)

	data, err := MarshalBlock(&ImageBlock{Base: Base{ID: "i"}, Src: "https://x/y.png", Alt: "y"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"i","kind":"image","src":"https://x/y.png","alt":"y"}`, string(data))
}

func TestDocument_UnmarshalJSON_Errors(t *testing.T) {
	tests := map[string]string{
		"not json":       `nope`,
		"blocks missing": `{}`,
		"blocks object":  `{"blocks":{}}`,
		"duplicate ids":  `{"blocks":[{"id":"a","kind":"text"},{"id":"a","kind":"text"}]}`,
		"unknown kind":   `{"blocks":[{"id":"a","kind":"carousel"}]}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			doc := NewSeedDocument()
			err := json.Unmarshal([]byte(input), doc)
			assert.Error(t, err)
			// a failed decode leaves the receiver untouched
			assert.Equal(t, 8, doc.Len())
		})
	}
}

func TestDocument_ValueScan(t *testing.T) {
	doc := NewSeedDocument()
	v, err := doc.Value()
	require.NoError(t, err)

	var scanned Document
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, doc.IDs(), scanned.IDs())

	var fromString Document
	require.NoError(t, fromString.Scan(string(v.([]byte))))
	assert.Equal(t, 8, fromString.Len())

	var fromNil Document
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, 0, fromNil.Len())

	assert.Error(t, fromNil.Scan(42))

	var nilDoc *Document
	nv, err := nilDoc.Value()
	require.NoError(t, err)
	assert.Nil(t, nv)
}
