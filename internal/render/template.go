// Package render renders card descriptions from Jinja style templates.
//
// Templates receive the context {"data": record}. Two filters are available
// on top of the pongo2 built-ins: "sanitize" strips any HTML from a form
// answer, and "labelslug" produces the same slug used for label names.
package render

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/TWRT/catalyst-bridge/internal/slug"
)

var (
	filtersOnce    sync.Once
	sanitizePolicy *bluemonday.Policy
)

// Template is a compiled card template. It is safe for concurrent use.
type Template struct {
	name string
	tpl  *pongo2.Template
}

// LoadTemplate compiles the template file at path.
func LoadTemplate(path string) (*Template, error) {
	registerFilters()

	tpl, err := pongo2.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", path, err)
	}
	return &Template{name: path, tpl: tpl}, nil
}

// FromString compiles an inline template.
func FromString(src string) (*Template, error) {
	registerFilters()

	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{name: "inline", tpl: tpl}, nil
}

func (t *Template) Name() string {
	return t.name
}

// Render executes the template. data is copied before execution and never
// modified.
func (t *Template) Render(data map[string]any) (string, error) {
	if t == nil || t.tpl == nil {
		return "", errors.New("render: template is nil")
	}

	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = value
	}

	out, err := t.tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("execute template %s: %w", t.name, err)
	}
	return out, nil
}

const maxSanitizePasses = 8

// Sanitize removes all HTML markup from s, keeping the text content.
// Entity-encoded markup ("&lt;b&gt;") is decoded and stripped as well, so
// the result never contains a tag.
func Sanitize(s string) string {
	registerFilters()
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(sanitizePolicy.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	// Still changing: keep the escaped form rather than decoding it.
	return sanitizePolicy.Sanitize(s)
}

func registerFilters() {
	filtersOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()

		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
		if !pongo2.FilterExists("labelslug") {
			_ = pongo2.RegisterFilter("labelslug", filterLabelSlug)
		}
	})
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	if in.CanSlice() && !in.IsString() {
		parts := make([]string, 0, in.Len())
		in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
			parts = append(parts, Sanitize(key.String()))
			return true
		}, func() {})
		return pongo2.AsSafeValue(strings.Join(parts, ", ")), nil
	}
	return pongo2.AsSafeValue(Sanitize(in.String())), nil
}

func filterLabelSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(slug.Make(in.String())), nil
}
