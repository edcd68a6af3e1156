package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TWRT/catalyst-bridge/internal/client"
	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/models"
)

// HookService runs the whole pipeline for one form submission: fetch the
// board labels, generate the card and reconcile it against the board.
type HookService struct {
	board     client.BoardClient
	config    *mapping.Config
	renderer  Renderer
	boardID   string
	listID    string
	labelOpts []LabelOption
	logger    *slog.Logger
}

type HookOption func(*HookService)

func WithLogger(logger *slog.Logger) HookOption {
	return func(s *HookService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLabelDedupe enables WithDedupe when matching labels.
func WithLabelDedupe(enabled bool) HookOption {
	return func(s *HookService) {
		if enabled {
			s.labelOpts = append(s.labelOpts, WithDedupe())
		}
	}
}

func NewHookService(
	board client.BoardClient,
	config *mapping.Config,
	renderer Renderer,
	boardID string,
	listID string,
	opts ...HookOption,
) *HookService {
	s := &HookService{
		board:    board,
		config:   config,
		renderer: renderer,
		boardID:  boardID,
		listID:   listID,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview generates the card without touching the board beyond reading its
// labels.
func (s *HookService) Preview(ctx context.Context, response models.FormResponse) (*models.NewCard, error) {
	labels, err := s.board.FetchLabels(ctx, s.boardID)
	if err != nil {
		return nil, fmt.Errorf("fetch board labels: %w", err)
	}

	card, err := GenerateCard(response, s.config, labels, s.renderer, s.labelOpts...)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "card generated",
		"board_id", s.boardID,
		"existing_labels", len(labels),
		"matched_labels", len(card.Labels),
	)
	return card, nil
}

func (s *HookService) Process(ctx context.Context, response models.FormResponse) (*Reconciled, error) {
	card, err := s.Preview(ctx, response)
	if err != nil {
		return nil, err
	}

	result, err := ReconcileCard(ctx, card, s.board, s.boardID, s.listID)
	if err != nil {
		s.logger.ErrorContext(ctx, "card reconciliation failed",
			"board_id", s.boardID,
			"list_id", s.listID,
			"error", err,
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "card created",
		"board_id", s.boardID,
		"card_id", result.Card.ID,
		"created_labels", len(result.CreatedLabels),
	)
	return result, nil
}
