package service

import (
	"fmt"
	"strings"

	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/models"
	"github.com/TWRT/catalyst-bridge/internal/record"
)

// Renderer turns the template context {"data": record} into card text.
type Renderer interface {
	Render(data map[string]any) (string, error)
}

type RendererFunc func(data map[string]any) (string, error)

func (f RendererFunc) Render(data map[string]any) (string, error) {
	return f(data)
}

// GenerateCard maps the response, renders the body and matches labels
// against the labels already on the board.
func GenerateCard(
	response models.FormResponse,
	cfg *mapping.Config,
	existing []models.Label,
	renderer Renderer,
	opts ...LabelOption,
) (*models.NewCard, error) {
	if cfg == nil {
		return nil, fmt.Errorf("generate card: mapping config is nil")
	}
	if renderer == nil {
		return nil, fmt.Errorf("generate card: renderer is nil")
	}

	rec, err := MapFields(response, cfg.Fields)
	if err != nil {
		return nil, fmt.Errorf("generate card: %w", err)
	}

	body, err := renderer.Render(map[string]any{"data": rec.Plain()})
	if err != nil {
		return nil, fmt.Errorf("render card body: %w", err)
	}

	return &models.NewCard{
		Title:  cardTitle(rec, cfg.TitleKey),
		Body:   body,
		Labels: FindLabels(rec, cfg.Labels, existing, opts...),
	}, nil
}

func cardTitle(rec record.Record, titleKey string) *string {
	value, ok := rec.Get(titleKey)
	if !ok {
		return nil
	}
	if text, ok := value.Text(); ok {
		return &text
	}
	if list, ok := value.Strings(); ok {
		joined := strings.Join(list, ", ")
		return &joined
	}
	return nil
}
