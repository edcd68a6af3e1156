package service

import (
	"fmt"
	"strings"

	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/models"
	"github.com/TWRT/catalyst-bridge/internal/record"
)

// MapFields builds the structured record for a response. Every mapped field
// id yields exactly one path; ids missing from the response are written as
// null. Fields are applied in sorted id order, so when two ids share a path
// the greater id wins.
func MapFields(response models.FormResponse, fields map[string]mapping.FieldMapping) (record.Record, error) {
	cfg := mapping.Config{Fields: fields}
	rec := record.New()

	for _, id := range cfg.FieldIDs() {
		field := fields[id]

		value := record.Null()
		if answer, ok := response[id]; ok {
			value = convertAnswer(answer.Value, field.Type)
		}

		if err := rec.Set(field.Path, value); err != nil {
			return nil, fmt.Errorf("map field %s to %q: %w", id, field.Path, err)
		}
	}

	return rec, nil
}

func convertAnswer(value models.FieldValue, fieldType mapping.FieldType) record.Value {
	switch fieldType {
	case mapping.FieldTypeText:
		return record.String(value.Text())
	case mapping.FieldTypeCSV:
		parts := strings.Split(value.Text(), ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return record.List(out...)
	}

	if value.IsList() {
		return record.List(value.Strings()...)
	}
	return record.String(value.Text())
}
