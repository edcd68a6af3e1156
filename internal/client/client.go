package client

import (
	"context"

	"github.com/TWRT/catalyst-bridge/internal/models"
)

type LabelProvider interface {
	FetchLabels(ctx context.Context, boardID string) ([]models.Label, error)
}

type LabelCreator interface {
	CreateLabel(ctx context.Context, boardID string, label models.Label) (*models.Label, error)
}

type CardCreator interface {
	CreateCard(ctx context.Context, req models.CardRequest) (*models.Card, error)
}

// CardWriter is what reconciling a card against a board needs.
type CardWriter interface {
	LabelCreator
	CardCreator
}

type BoardClient interface {
	LabelProvider
	CardWriter
}
