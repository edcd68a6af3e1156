package service

import (
	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/models"
	"github.com/TWRT/catalyst-bridge/internal/record"
	"github.com/TWRT/catalyst-bridge/internal/slug"
)

type labelOptions struct {
	dedupe bool
}

type LabelOption func(*labelOptions)

// WithDedupe collapses labels sharing a canonical name: only the first
// create or link for a given name is kept.
func WithDedupe() LabelOption {
	return func(o *labelOptions) {
		o.dedupe = true
	}
}

// LabelName is the canonical board label name for a record value.
func LabelName(prefix, value string) string {
	return prefix + ":" + slug.Make(value)
}

// FindLabels decides, for every value found at the configured label paths,
// whether an existing board label is linked or a new one created. Paths are
// visited in sorted order and values in list order. Values that are neither
// a string nor a list of strings, and values with an empty slug, are skipped.
func FindLabels(
	rec record.Record,
	labels map[string]mapping.LabelMapping,
	existing []models.Label,
	opts ...LabelOption,
) []models.MatchedLabel {
	var o labelOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	byName := make(map[string]string, len(existing))
	for _, label := range existing {
		if _, ok := byName[label.Name]; !ok {
			byName[label.Name] = label.ID
		}
	}

	cfg := mapping.Config{Labels: labels}
	seen := make(map[string]struct{})
	matches := make([]models.MatchedLabel, 0)

	for _, path := range cfg.LabelPaths() {
		label := labels[path]

		value, ok := rec.Get(path)
		if !ok {
			continue
		}

		for _, v := range labelValues(value) {
			// Blank or punctuation-only answers have no slug to label with.
			valueSlug := slug.Make(v)
			if valueSlug == "" {
				continue
			}
			name := label.Prefix + ":" + valueSlug

			if o.dedupe {
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
			}

			if id, ok := byName[name]; ok {
				matches = append(matches, models.LinkLabel(id))
			} else {
				matches = append(matches, models.CreateLabel(name, label.Color))
			}
		}
	}

	return matches
}

func labelValues(value record.Value) []string {
	if text, ok := value.Text(); ok {
		return []string{text}
	}
	if list, ok := value.Strings(); ok {
		return list
	}
	return nil
}
