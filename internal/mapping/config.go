// Package mapping describes how a form response becomes a structured record
// and which record values turn into board labels.
package mapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/TWRT/catalyst-bridge/internal/record"
)

type FieldType string

const (
	// FieldTypeRaw writes the answer exactly as received.
	FieldTypeRaw FieldType = "raw"
	// FieldTypeText keeps a single string; a list collapses to its first element.
	FieldTypeText FieldType = "text"
	// FieldTypeCSV splits a comma separated answer into trimmed parts.
	FieldTypeCSV FieldType = "csv"
)

type FieldMapping struct {
	Path string    `yaml:"path" json:"path"`
	Type FieldType `yaml:"type,omitempty" json:"type,omitempty"`
}

type LabelMapping struct {
	Prefix string `yaml:"prefix" json:"prefix"`
	Color  string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Config is the mapping document. Fields is keyed by form field id, Labels by
// record path.
type Config struct {
	TitleKey string                  `yaml:"titleKey" json:"titleKey"`
	Fields   map[string]FieldMapping `yaml:"fields" json:"fields"`
	Labels   map[string]LabelMapping `yaml:"labels" json:"labels"`
}

// Label colors accepted by Trello. An empty color creates a colorless label.
var labelColors = map[string]struct{}{
	"green": {}, "yellow": {}, "orange": {}, "red": {}, "purple": {},
	"blue": {}, "sky": {}, "lime": {}, "pink": {}, "black": {},
	"green_dark": {}, "yellow_dark": {}, "orange_dark": {}, "red_dark": {}, "purple_dark": {},
	"blue_dark": {}, "sky_dark": {}, "lime_dark": {}, "pink_dark": {}, "black_dark": {},
	"green_light": {}, "yellow_light": {}, "orange_light": {}, "red_light": {}, "purple_light": {},
	"blue_light": {}, "sky_light": {}, "lime_light": {}, "pink_light": {}, "black_light": {},
}

// FieldIDs returns the mapped field ids in sorted order.
func (c *Config) FieldIDs() []string {
	ids := make([]string, 0, len(c.Fields))
	for id := range c.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LabelPaths returns the label source paths in sorted order.
func (c *Config) LabelPaths() []string {
	paths := make([]string, 0, len(c.Labels))
	for path := range c.Labels {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Validate reports every structural problem in the document at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.TitleKey) == "" {
		errs = append(errs, errors.New("titleKey is required"))
	} else if err := record.ValidatePath(c.TitleKey); err != nil {
		errs = append(errs, fmt.Errorf("titleKey: %w", err))
	}

	if len(c.Fields) == 0 {
		errs = append(errs, errors.New("fields must map at least one form field"))
	}
	for _, id := range c.FieldIDs() {
		field := c.Fields[id]
		if strings.TrimSpace(id) == "" {
			errs = append(errs, errors.New("fields: empty field id"))
			continue
		}
		if err := record.ValidatePath(field.Path); err != nil {
			errs = append(errs, fmt.Errorf("fields[%s].path: %w", id, err))
		}
		switch field.Type {
		case FieldTypeRaw, FieldTypeText, FieldTypeCSV:
		default:
			errs = append(errs, fmt.Errorf("fields[%s].type: unknown type %q", id, field.Type))
		}
	}
	errs = append(errs, c.overlappingFields()...)

	for _, path := range c.LabelPaths() {
		label := c.Labels[path]
		if err := record.ValidatePath(path); err != nil {
			errs = append(errs, fmt.Errorf("labels[%s]: %w", path, err))
		}
		if strings.TrimSpace(label.Prefix) == "" {
			errs = append(errs, fmt.Errorf("labels[%s].prefix is required", path))
		}
		if label.Color != "" {
			if _, ok := labelColors[label.Color]; !ok {
				errs = append(errs, fmt.Errorf("labels[%s].color: unknown color %q", path, label.Color))
			}
		}
	}

	return errors.Join(errs...)
}

// overlappingFields reports field paths that are a dotted prefix of another
// field's path: one of the two answers could never be stored.
func (c *Config) overlappingFields() []error {
	var errs []error
	ids := c.FieldIDs()
	for _, id := range ids {
		for _, other := range ids {
			parent, child := c.Fields[id].Path, c.Fields[other].Path
			if parent == "" || !strings.HasPrefix(child, parent+".") {
				continue
			}
			errs = append(errs, fmt.Errorf("fields[%s].path %q overlaps fields[%s].path %q", id, parent, other, child))
		}
	}
	return errs
}

// Warnings lists configuration that is valid but will never have an effect,
// such as a label path no field writes to.
func (c *Config) Warnings() []string {
	written := make(map[string]struct{}, len(c.Fields))
	for _, field := range c.Fields {
		written[field.Path] = struct{}{}
	}

	var warnings []string
	if _, ok := written[c.TitleKey]; !ok && c.TitleKey != "" {
		warnings = append(warnings, fmt.Sprintf("titleKey %q is not written by any field; cards will have no title", c.TitleKey))
	}
	for _, path := range c.LabelPaths() {
		if _, ok := written[path]; !ok {
			warnings = append(warnings, fmt.Sprintf("label path %q is not written by any field; it will never produce labels", path))
		}
	}
	return warnings
}
