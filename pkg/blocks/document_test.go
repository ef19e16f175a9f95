package blocks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func contentOf(t *testing.T, d *Document, id string) string {
	t.Helper()
	b, err := d.Get(id)
	require.NoError(t, err)
	v, _ := b.FieldValue(FieldContent)
	return v
}

func without(ids []string, i int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func TestDocument_InsertAt_PreservesOrder(t *testing.T) {
	base := NewSeedDocument()
	before := base.IDs()

	for index := -2; index <= base.Len()+2; index++ {
		t.Run(fmt.Sprintf("index_%d", index), func(t *testing.T) {
			doc := base.Clone()
			b, err := NewBlock(KindText, "")
			require.NoError(t, err)

			at, err := doc.InsertAt(index, b)
			require.NoError(t, err)

			expected := index
			if expected < 0 {
				expected = 0
			}
			if expected > len(before) {
				expected = len(before)
			}
			assert.Equal(t, expected, at)
			assert.Equal(t, len(before)+1, doc.Len())
			assert.Equal(t, before, without(doc.IDs(), at))
			assert.Equal(t, b.GetID(), doc.IDs()[at])
		})
	}
}

func TestDocument_InsertAt_Rejects(t *testing.T) {
	doc := NewSeedDocument()

	_, err := doc.InsertAt(0, nil)
	assert.ErrorIs(t, err, ErrNilBlock)

	dup, _ := NewBlock(KindText, "text-1")
	_, err = doc.InsertAt(0, dup)
	assert.ErrorIs(t, err, ErrDuplicateBlockID)

	empty := &TextBlock{Content: "no id"}
	_, err = doc.InsertAt(0, empty)
	assert.ErrorIs(t, err, ErrEmptyBlockID)

	assert.Equal(t, 8, doc.Len())
}

func TestDocument_IDsNeverReused(t *testing.T) {
	doc := NewSeedDocument()
	require.NoError(t, doc.Remove("text-2"))
	assert.False(t, doc.Contains("text-2"))
	assert.True(t, doc.WasIssued("text-2"))

	again, _ := NewBlock(KindText, "text-2")
	_, err := doc.InsertAt(0, again)
	assert.ErrorIs(t, err, ErrDuplicateBlockID)
	assert.Equal(t, 7, doc.Len())
}

func TestDocument_InsertAt_CopiesBlock(t *testing.T) {
	doc := NewDocument()
	b := &TextBlock{Base: Base{ID: "t"}, Content: "original"}
	_, err := doc.Append(b)
	require.NoError(t, err)

	b.Content = "mutated after insert"
	assert.Equal(t, "original", contentOf(t, doc, "t"))

	got, _ := doc.Get("t")
	got.(*TextBlock).Content = "mutated copy"
	assert.Equal(t, "original", contentOf(t, doc, "t"))
}

func TestDocument_MoveTo_AllPairs(t *testing.T) {
	base := NewSeedDocument()
	ids := base.IDs()

	for source := 0; source < len(ids); source++ {
		for target := 0; target < len(ids); target++ {
			doc := base.Clone()
			require.NoError(t, doc.MoveTo(source, target))

			got := doc.IDs()
			assert.Len(t, got, len(ids))
			assert.Equal(t, ids[source], got[target], "source %d target %d", source, target)
			// the remaining blocks keep their relative order
			assert.Equal(t, without(ids, source), without(got, target))
		}
	}
}

func TestDocument_MoveTo_SameIndexIsNoop(t *testing.T) {
	doc := NewSeedDocument()
	require.NoError(t, doc.Select("text-1"))
	before := doc.IDs()

	for i := 0; i < doc.Len(); i++ {
		require.NoError(t, doc.MoveTo(i, i))
		assert.Equal(t, before, doc.IDs())
	}
	assert.Equal(t, "text-1", doc.SelectedID())
}

func TestDocument_MoveTo_OutOfRange(t *testing.T) {
	doc := NewSeedDocument()
	before := doc.IDs()

	assert.ErrorIs(t, doc.MoveTo(-1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, doc.MoveTo(8, 0), ErrIndexOutOfRange)
	assert.Equal(t, before, doc.IDs())

	// target is clamped
	require.NoError(t, doc.MoveTo(0, 100))
	assert.Equal(t, "header-1", doc.IDs()[7])
	require.NoError(t, doc.MoveTo(7, -5))
	assert.Equal(t, before, doc.IDs())

	empty := NewDocument()
	assert.ErrorIs(t, empty.MoveTo(0, 0), ErrIndexOutOfRange)
}

func TestDocument_Remove(t *testing.T) {
	t.Run("non-selected block keeps selection", func(t *testing.T) {
		doc := NewSeedDocument()
		require.NoError(t, doc.Select("header-1"))
		require.NoError(t, doc.Remove("button-1"))
		assert.Equal(t, "header-1", doc.SelectedID())
		assert.Equal(t, 7, doc.Len())
	})

	t.Run("selected block clears selection", func(t *testing.T) {
		doc := NewSeedDocument()
		require.NoError(t, doc.Select("button-1"))
		require.NoError(t, doc.Remove("button-1"))
		assert.Equal(t, "", doc.SelectedID())
		_, ok := doc.Selected()
		assert.False(t, ok)
	})

	t.Run("unknown id", func(t *testing.T) {
		doc := NewSeedDocument()
		require.NoError(t, doc.Select("text-1"))
		assert.ErrorIs(t, doc.Remove("nope"), ErrBlockNotFound)
		assert.Equal(t, 8, doc.Len())
		assert.Equal(t, "text-1", doc.SelectedID())
	})
}

func TestDocument_UpdateFields_NeverChangesIdentity(t *testing.T) {
	patch := Patch{
		Content: strPtr("changed"),
		Style:   strPtr("changed-style"),
		URL:     strPtr("https://changed.example.com"),
		Src:     strPtr("https://img.example.com/x.png"),
		Alt:     strPtr("changed alt"),
		Height:  strPtr("h-16"),
	}

	doc := NewSeedDocument()
	for _, id := range doc.IDs() {
		before, _ := doc.Get(id)
		require.NoError(t, doc.UpdateFields(id, patch))
		after, _ := doc.Get(id)

		assert.Equal(t, before.GetID(), after.GetID())
		assert.Equal(t, before.GetKind(), after.GetKind())
		assert.Equal(t, "changed-style", after.GetStyle())

		for _, f := range []Field{FieldContent, FieldURL, FieldSrc, FieldAlt, FieldHeight} {
			v, ok := after.FieldValue(f)
			assert.Equal(t, HasField(after.GetKind(), f), ok, "%s/%s", id, f)
			if !ok {
				assert.Empty(t, v)
			}
		}
	}
}

func TestDocument_UpdateFields_Partial(t *testing.T) {
	doc := NewSeedDocument()
	require.NoError(t, doc.UpdateFields("button-1", Patch{URL: strPtr("https://notifuse.com")}))

	b, err := doc.Get("button-1")
	require.NoError(t, err)
	btn := b.(*ButtonBlock)
	assert.Equal(t, "Read More", btn.Content)
	assert.Equal(t, "https://notifuse.com", btn.URL)
	assert.Equal(t, DefaultButtonStyle, btn.Style)

	assert.ErrorIs(t, doc.UpdateFields("missing", Patch{}), ErrBlockNotFound)
}

func TestDocument_Select(t *testing.T) {
	doc := NewSeedDocument()

	require.NoError(t, doc.Select("image-1"))
	assert.Equal(t, "image-1", doc.SelectedID())
	sel, ok := doc.Selected()
	require.True(t, ok)
	assert.Equal(t, KindImage, sel.GetKind())

	err := doc.Select("ghost")
	assert.ErrorIs(t, err, ErrSelectionNotFound)
	assert.Equal(t, "", doc.SelectedID())

	require.NoError(t, doc.Select("text-1"))
	require.NoError(t, doc.Select(""))
	assert.Equal(t, "", doc.SelectedID())
}

func TestDocument_Scenario_DropTextAtIndexTwo(t *testing.T) {
	doc := NewSeedDocument()
	originalAtTwo := doc.IDs()[2]

	b, err := NewBlock(KindText, "")
	require.NoError(t, err)
	at, err := doc.InsertAt(2, b)
	require.NoError(t, err)

	assert.Equal(t, 2, at)
	assert.Equal(t, 9, doc.Len())
	assert.Equal(t, KindText, doc.Kinds()[2])
	assert.Equal(t, b.GetID(), doc.IDs()[2])
	assert.Equal(t, originalAtTwo, doc.IDs()[3])
	assert.Equal(t, KindText, doc.Kinds()[3])
}

func TestDocument_Scenario_MoveButtonFirst(t *testing.T) {
	doc := NewSeedDocument()
	before := doc.IDs()

	require.NoError(t, doc.MoveTo(4, 0))

	after := doc.IDs()
	assert.Equal(t, 8, doc.Len())
	assert.Equal(t, KindButton, doc.Kinds()[0])
	assert.Equal(t, before[:4], after[1:5])
	assert.Equal(t, before[5:], after[5:])
}

func TestDocument_Scenario_EditThenDeleteOther(t *testing.T) {
	doc := NewSeedDocument()
	first := doc.IDs()[0]

	require.NoError(t, doc.Select(first))
	require.NoError(t, doc.UpdateFields(first, Patch{Content: strPtr("Hi")}))
	require.NoError(t, doc.Remove(doc.IDs()[5]))

	assert.Equal(t, first, doc.SelectedID())
	assert.Equal(t, 0, doc.IndexOf(first))
	assert.Equal(t, "Hi", contentOf(t, doc, first))
}

func TestDocument_Scenario_DeleteSelected(t *testing.T) {
	doc := NewSeedDocument()
	require.NoError(t, doc.Select("divider-1"))
	require.NoError(t, doc.Remove("divider-1"))
	assert.Equal(t, "", doc.SelectedID())
}

func TestDocument_Clone_IsIndependent(t *testing.T) {
	doc := NewSeedDocument()
	require.NoError(t, doc.Select("text-1"))

	c := doc.Clone()
	require.NoError(t, c.UpdateFields("text-1", Patch{Content: strPtr("clone only")}))
	require.NoError(t, c.Remove("footer-1"))

	assert.Equal(t, 8, doc.Len())
	assert.NotEqual(t, "clone only", contentOf(t, doc, "text-1"))
	assert.Equal(t, "text-1", c.SelectedID())
	assert.True(t, c.WasIssued("footer-1"))
}

func TestDocument_At(t *testing.T) {
	doc := NewSeedDocument()
	b, err := doc.At(7)
	require.NoError(t, err)
	assert.Equal(t, "footer-1", b.GetID())

	_, err = doc.At(8)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, -1, doc.IndexOf(""))
}
