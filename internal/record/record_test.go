package record

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_TopLevel(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("message", String("Hello, world!")))

	assert.Equal(t, map[string]any{"message": "Hello, world!"}, r.Plain())
}

func TestSet_Nested(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("message.text", String("Hello, world!")))

	want := map[string]any{
		"message": map[string]any{"text": "Hello, world!"},
	}
	if diff := cmp.Diff(want, r.Plain()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_DisjointPathsCommute(t *testing.T) {
	first := New()
	require.NoError(t, first.Set("a.b", String("x")))
	require.NoError(t, first.Set("a.c", String("y")))

	second := New()
	require.NoError(t, second.Set("a.c", String("y")))
	require.NoError(t, second.Set("a.b", String("x")))

	want := map[string]any{"a": map[string]any{"b": "x", "c": "y"}}
	if diff := cmp.Diff(want, first.Plain()); diff != "" {
		t.Fatalf("first order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, second.Plain()); diff != "" {
		t.Fatalf("second order mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_LastWriteWins(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("title", String("first")))
	require.NoError(t, r.Set("title", List("second", "third")))

	got, ok := r.Get("title")
	require.True(t, ok)
	values, ok := got.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"second", "third"}, values)
}

func TestSet_ConflictReplacingRecordWithLeaf(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("a.b", String("x")))

	err := r.Set("a", String("flat"))
	require.ErrorIs(t, err, ErrPathConflict)
	assert.Contains(t, err.Error(), `"a" holds a record`)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": "x"}}, r.Plain())

	require.ErrorIs(t, r.Set("a", Null()), ErrPathConflict)
	require.NoError(t, r.Set("a", Nested(Record{"c": String("y")})))
	assert.Equal(t, map[string]any{"a": map[string]any{"c": "y"}}, r.Plain())
}

func TestSet_ConflictThroughScalar(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("a", String("scalar")))

	err := r.Set("a.b.c", String("x"))
	require.ErrorIs(t, err, ErrPathConflict)
	assert.Contains(t, err.Error(), `"a" holds a string`)
	assert.Equal(t, map[string]any{"a": "scalar"}, r.Plain())
}

func TestSet_ConflictDeepLeavesRecordUntouched(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("a.b", Null()))

	err := r.Set("a.b.c", String("x"))
	require.ErrorIs(t, err, ErrPathConflict)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": nil}}, r.Plain())
}

func TestSet_InvalidPaths(t *testing.T) {
	for _, path := range []string{"", ".", "a.", ".a", "a..b"} {
		t.Run(path, func(t *testing.T) {
			err := New().Set(path, String("x"))
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("applicant.name", String("Ada")))
	require.NoError(t, r.Set("applicant.email", Null()))

	name, ok := r.Get("applicant.name")
	require.True(t, ok)
	text, isText := name.Text()
	assert.True(t, isText)
	assert.Equal(t, "Ada", text)

	email, ok := r.Get("applicant.email")
	require.True(t, ok)
	assert.True(t, email.IsNull())

	_, ok = r.Get("applicant.phone")
	assert.False(t, ok)
	_, ok = r.Get("applicant.name.first")
	assert.False(t, ok)
	_, ok = r.Get("")
	assert.False(t, ok)

	nested, ok := r.Get("applicant")
	require.True(t, ok)
	assert.Equal(t, KindRecord, nested.Kind())
}

func TestValue_MarshalJSON(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("title", String("Some title")))
	require.NoError(t, r.Set("themes", List("Topic A", "Topic B")))
	require.NoError(t, r.Set("extra.note", Null()))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Some title","themes":["Topic A","Topic B"],"extra":{"note":null}}`, string(data))
}

func TestList_CopiesInput(t *testing.T) {
	input := []string{"a", "b"}
	v := List(input...)
	input[0] = "changed"

	got, _ := v.Strings()
	assert.Equal(t, []string{"a", "b"}, got)
}
