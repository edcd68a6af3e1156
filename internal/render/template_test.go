package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_RenderRecord(t *testing.T) {
	tpl, err := FromString("# {{ data.title }}\n{% for theme in data.themes %}- {{ theme }}\n{% endfor %}")
	require.NoError(t, err)

	out, err := tpl.Render(map[string]any{
		"data": map[string]any{
			"title":  "Some title",
			"themes": []string{"Topic A", "Topic B"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Some title\n- Topic A\n- Topic B\n", out)
}

func TestTemplate_NestedAndNull(t *testing.T) {
	tpl, err := FromString("{{ data.contact.email|default:\"n/a\" }}")
	require.NoError(t, err)

	out, err := tpl.Render(map[string]any{
		"data": map[string]any{"contact": map[string]any{"email": nil}},
	})
	require.NoError(t, err)
	assert.Equal(t, "n/a", out)
}

func TestTemplate_DoesNotMutateInput(t *testing.T) {
	tpl, err := FromString("{{ data.title }}")
	require.NoError(t, err)

	input := map[string]any{"data": map[string]any{"title": "x"}}
	want := map[string]any{"data": map[string]any{"title": "x"}}

	first, err := tpl.Render(input)
	require.NoError(t, err)
	second, err := tpl.Render(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	if diff := cmp.Diff(want, input); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestTemplate_SanitizeFilter(t *testing.T) {
	tpl, err := FromString("{{ data.pitch|sanitize }}|{{ data.tags|sanitize }}")
	require.NoError(t, err)

	out, err := tpl.Render(map[string]any{
		"data": map[string]any{
			"pitch": "<b>Bold</b> & <i>it</i>",
			"tags":  []string{"<em>a</em>", "b"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bold & it|a, b", out)
}

func TestTemplate_SanitizeFilterEncodedMarkup(t *testing.T) {
	tpl, err := FromString("{{ data.pitch|sanitize }}")
	require.NoError(t, err)

	out, err := tpl.Render(map[string]any{"data": map[string]any{"pitch": "&lt;b&gt;bold&lt;/b&gt; claim"}})
	require.NoError(t, err)
	assert.NotContains(t, out, "<b>")
	assert.Equal(t, "bold claim", out)
}

func TestTemplate_LabelSlugFilter(t *testing.T) {
	tpl, err := FromString("{{ data.theme|labelslug }}")
	require.NoError(t, err)

	out, err := tpl.Render(map[string]any{"data": map[string]any{"theme": "Astronomy & Physics"}})
	require.NoError(t, err)
	assert.Equal(t, "astronomy-and-physics", out)
}

func TestFromString_ParseError(t *testing.T) {
	_, err := FromString("{% for x in %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse template")
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.njk")
	require.NoError(t, os.WriteFile(path, []byte("Hello {{ data.name }}"), 0o644))

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, path, tpl.Name())

	out, err := tpl.Render(map[string]any{"data": map[string]any{"name": "Ada"}})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", out)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.njk"))
	require.Error(t, err)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "plain text", Sanitize("plain text"))
	assert.Equal(t, "a < b", Sanitize("a &lt; b"))
	assert.Equal(t, "link", Sanitize(`<a href="javascript:alert(1)">link</a>`))
	assert.Equal(t, "x", Sanitize("&lt;b&gt;x&lt;/b&gt;"))
	assert.Equal(t, "", Sanitize("&amp;lt;script&amp;gt;"))
	assert.Equal(t, "Tom & Jerry", Sanitize("Tom &amp; Jerry"))
}
