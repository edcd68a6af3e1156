package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/models"
	"github.com/TWRT/catalyst-bridge/internal/record"
)

func raw(path string) mapping.FieldMapping {
	return mapping.FieldMapping{Path: path, Type: mapping.FieldTypeRaw}
}

func TestMapFields_TopLevel(t *testing.T) {
	response := models.FormResponse{
		"123456": {Value: models.StringValue("Hello, world!")},
	}

	rec, err := MapFields(response, map[string]mapping.FieldMapping{"123456": raw("message")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "Hello, world!"}, rec.Plain())
}

func TestMapFields_Nested(t *testing.T) {
	response := models.FormResponse{
		"123456": {Value: models.StringValue("Hello, world!")},
	}

	rec, err := MapFields(response, map[string]mapping.FieldMapping{"123456": raw("message.text")})
	require.NoError(t, err)

	want := map[string]any{"message": map[string]any{"text": "Hello, world!"}}
	if diff := cmp.Diff(want, rec.Plain()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestMapFields_RawListUnmodified(t *testing.T) {
	response := models.FormResponse{
		"5678": {Type: "CHECKBOX", Index: 2, Title: "Themes", Value: models.ListValue("Topic A", " Topic B ")},
	}

	rec, err := MapFields(response, map[string]mapping.FieldMapping{"5678": raw("themes")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"themes": []string{"Topic A", " Topic B "}}, rec.Plain())
}

func TestMapFields_MissingFieldsAreNull(t *testing.T) {
	fields := map[string]mapping.FieldMapping{
		"1": raw("name"),
		"2": raw("contact.email"),
		"3": {Path: "themes", Type: mapping.FieldTypeCSV},
	}

	rec, err := MapFields(models.FormResponse{"1": {Value: models.StringValue("Ada")}}, fields)
	require.NoError(t, err)

	for _, field := range fields {
		_, ok := rec.Get(field.Path)
		assert.True(t, ok, "path %q missing", field.Path)
	}

	email, _ := rec.Get("contact.email")
	assert.True(t, email.IsNull())
	themes, _ := rec.Get("themes")
	assert.True(t, themes.IsNull())
	name, _ := rec.Get("name")
	assert.False(t, name.IsNull())
}

func TestMapFields_EmptyResponse(t *testing.T) {
	rec, err := MapFields(nil, map[string]mapping.FieldMapping{"1": raw("a.b")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": nil}}, rec.Plain())
}

func TestMapFields_CSV(t *testing.T) {
	response := models.FormResponse{
		"123456": {Value: models.ListValue("Hello world!, My name is Geoff")},
	}

	rec, err := MapFields(response, map[string]mapping.FieldMapping{
		"123456": {Path: "message", Type: mapping.FieldTypeCSV},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": []string{"Hello world!", "My name is Geoff"}}, rec.Plain())
}

func TestMapFields_Text(t *testing.T) {
	response := models.FormResponse{
		"1": {Value: models.ListValue("first", "second")},
	}

	rec, err := MapFields(response, map[string]mapping.FieldMapping{
		"1": {Path: "answer", Type: mapping.FieldTypeText},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": "first"}, rec.Plain())
}

func TestMapFields_SamePathLastIDWins(t *testing.T) {
	response := models.FormResponse{
		"1": {Value: models.StringValue("from one")},
		"2": {Value: models.StringValue("from two")},
	}

	rec, err := MapFields(response, map[string]mapping.FieldMapping{
		"2": raw("answer"),
		"1": raw("answer"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": "from two"}, rec.Plain())
}

func TestMapFields_PathConflict(t *testing.T) {
	response := models.FormResponse{
		"1": {Value: models.StringValue("first")},
		"2": {Value: models.StringValue("second")},
	}

	for name, fields := range map[string]map[string]mapping.FieldMapping{
		"leaf first":   {"1": raw("contact"), "2": raw("contact.email")},
		"nested first": {"1": raw("contact.email"), "2": raw("contact")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := MapFields(response, fields)
			require.ErrorIs(t, err, record.ErrPathConflict)
			assert.Contains(t, err.Error(), "map field 2")
		})
	}
}

func TestMapFields_MissingOverlappingFieldsConflict(t *testing.T) {
	_, err := MapFields(nil, map[string]mapping.FieldMapping{
		"1": raw("contact.email"),
		"2": raw("contact"),
	})
	require.ErrorIs(t, err, record.ErrPathConflict)
}
